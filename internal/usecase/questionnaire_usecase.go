package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"
	"go-careercompass-backend/pkg/events"

	"github.com/go-playground/validator/v10"
)

const (
	freeTextMinWords = 10
	freeTextMaxWords = 200
)

// draft is one identity's in-progress wizard state. It lives server-side so
// a page reload resumes mid-wizard, and it is discarded wholesale on
// sign-out or successful submission.
type draft struct {
	mu      sync.Mutex
	step    domain.Step
	answers domain.AnswerSet
}

type questionnaireUsecase struct {
	answers  domain.AnswersRepository
	status   domain.StatusRepository
	resumes  domain.ResumeStore
	validate *validator.Validate
	events   *events.Logger

	mu     sync.Mutex
	drafts map[string]*draft
}

func NewQuestionnaireUsecase(
	answers domain.AnswersRepository,
	status domain.StatusRepository,
	resumes domain.ResumeStore,
	validate *validator.Validate,
	ev *events.Logger,
) domain.QuestionnaireUsecase {
	return &questionnaireUsecase{
		answers:  answers,
		status:   status,
		resumes:  resumes,
		validate: validate,
		events:   ev,
		drafts:   make(map[string]*draft),
	}
}

func (u *questionnaireUsecase) draftFor(userID string, create bool) *draft {
	u.mu.Lock()
	defer u.mu.Unlock()
	d, ok := u.drafts[userID]
	if !ok && create {
		d = &draft{step: domain.StepHome}
		u.drafts[userID] = d
	}
	return d
}

func (u *questionnaireUsecase) Start(ctx context.Context, userID string) (domain.Step, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return "", err
	}

	d := u.draftFor(userID, true)
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.step == domain.StepHome {
		u.events.Transition(events.ComponentQuestionnaire, userID, string(domain.StepHome), string(domain.StepQ1))
		d.step = domain.StepQ1
	}
	return d.step, nil
}

func (u *questionnaireUsecase) Current(ctx context.Context, userID string) (*domain.QuestionnaireState, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	d := u.draftFor(userID, true)
	d.mu.Lock()
	defer d.mu.Unlock()

	// The resume bytes never leave the server; only their presence does.
	answers := d.answers
	answers.Resume = nil

	return &domain.QuestionnaireState{
		Step:      d.step,
		Answers:   answers,
		HasResume: d.answers.Resume != nil,
	}, nil
}

func (u *questionnaireUsecase) CurrentStep(userID string) domain.Step {
	d := u.draftFor(userID, false)
	if d == nil {
		return domain.StepHome
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// SubmitStep validates one step and advances the wizard. A failed validation
// re-enters the same step and leaves the answer set untouched. Submitting q4
// runs the final upload + upsert.
func (u *questionnaireUsecase) SubmitStep(ctx context.Context, userID string, step domain.Step, sub domain.StepSubmission) (domain.Step, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return "", err
	}
	if !step.IsQuestion() {
		return "", apperror.BadRequest("unknown questionnaire step: " + string(step))
	}

	d := u.draftFor(userID, false)
	if d == nil {
		return "", apperror.BadRequest("questionnaire has not been started")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.step != step {
		return d.step, apperror.BadRequest(
			fmt.Sprintf("cannot submit %s while on step %s", step, d.step))
	}

	switch step {
	case domain.StepQ1:
		if sub.Profile == nil {
			return d.step, apperror.BadRequest("profile answers are required")
		}
		if err := u.validate.Struct(sub.Profile); err != nil {
			return d.step, apperror.BadRequest("Validation failed: " + err.Error())
		}
		d.answers.Q1 = sub.Profile
		if sub.Resume != nil {
			d.answers.Resume = sub.Resume
		}
	case domain.StepQ2, domain.StepQ3, domain.StepQ4:
		text, err := validateFreeText(step, sub.Text)
		if err != nil {
			return d.step, err
		}
		switch step {
		case domain.StepQ2:
			d.answers.Q2 = text
		case domain.StepQ3:
			d.answers.Q3 = text
		case domain.StepQ4:
			d.answers.Q4 = text
		}
	}

	next := step.Next()
	u.events.Transition(events.ComponentQuestionnaire, userID, string(step), string(next))

	if next != domain.StepFinished {
		d.step = next
		return d.step, nil
	}

	if err := u.finalize(ctx, userID, d); err != nil {
		return d.step, err
	}

	// Successful submission: the answer set leaves orchestrator memory.
	u.mu.Lock()
	delete(u.drafts, userID)
	u.mu.Unlock()

	return domain.StepFinished, nil
}

// finalize uploads the resume (if any) and performs the single atomic upsert
// of the assembled answer set. On resume failure the wizard returns to q1;
// on upsert failure it stays at q4. The workflow phase advances only after a
// successful upsert.
func (u *questionnaireUsecase) finalize(ctx context.Context, userID string, d *draft) error {
	var resumeURL *string
	if d.answers.Resume != nil {
		started := time.Now()
		url, err := u.resumes.StoreResume(ctx, d.answers.Resume.Name, d.answers.Resume.Data)
		u.events.Latency(events.ComponentQuestionnaire, "resume_upload", time.Since(started))
		if err != nil {
			d.step = domain.StepQ1
			appErr := apperror.ResumeUpload(err)
			u.events.Failure(events.ComponentQuestionnaire, userID, appErr.Kind, err)
			return appErr
		}
		resumeURL = &url
	}

	record := &domain.SubmittedAnswers{
		UserID:          userID,
		Age:             d.answers.Q1.Age,
		FieldOfWork:     d.answers.Q1.FieldOfWork,
		CurrentPosition: d.answers.Q1.CurrentPosition,
		Gender:          d.answers.Q1.Gender,
		MaritalStatus:   d.answers.Q1.MaritalStatus,
		Education:       d.answers.Q1.Education,
		WorkExperience:  d.answers.Q1.WorkExperience,
		ResumeURL:       resumeURL,
		Q2:              d.answers.Q2,
		Q3:              d.answers.Q3,
		Q4:              d.answers.Q4,
	}

	if err := u.answers.UpsertAnswers(ctx, record); err != nil {
		d.step = domain.StepQ4
		appErr := apperror.Submission(err)
		u.events.Failure(events.ComponentQuestionnaire, userID, appErr.Kind, err)
		return appErr
	}

	if err := u.status.SetPhase(ctx, userID, domain.PhaseInfoSubmitted); err != nil {
		// The answer set is persisted; the phase will be re-derived from it
		// on the next classification, so this is not a submission failure.
		u.events.Failure(events.ComponentQuestionnaire, userID, apperror.KindProfileLookup, err)
	}

	u.events.Transition(events.ComponentWorkflow, userID,
		domain.PhaseNew.String(), domain.PhaseInfoSubmitted.String())
	return nil
}

func (u *questionnaireUsecase) Back(ctx context.Context, userID string) (domain.Step, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return "", err
	}

	d := u.draftFor(userID, false)
	if d == nil {
		return domain.StepHome, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.step.Prev()
	if prev != d.step {
		u.events.Transition(events.ComponentQuestionnaire, userID, string(d.step), string(prev))
		d.step = prev
	}
	return d.step, nil
}

func (u *questionnaireUsecase) Reset(userID string) {
	u.mu.Lock()
	delete(u.drafts, userID)
	u.mu.Unlock()
}

// validateFreeText enforces the 10-200 word bound on q2-q4 and returns the
// trimmed text.
func validateFreeText(step domain.Step, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperror.BadRequest(fmt.Sprintf("Answer for %s is required", step))
	}

	words := len(strings.Fields(trimmed))
	if words < freeTextMinWords {
		return "", apperror.BadRequest(
			fmt.Sprintf("Answer for %s must be at least %d words (got %d)", step, freeTextMinWords, words))
	}
	if words > freeTextMaxWords {
		return "", apperror.BadRequest(
			fmt.Sprintf("Answer for %s must be at most %d words (got %d)", step, freeTextMaxWords, words))
	}

	return trimmed, nil
}

// requireIdentity verifies the context identity matches the requested user.
func requireIdentity(ctx context.Context, userID string) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only act on your own workflow")
	}
	return nil
}
