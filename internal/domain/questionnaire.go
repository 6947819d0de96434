package domain

import (
	"context"
	"time"
)

// ============================================================================
// Questionnaire Wizard
// ============================================================================

// Step is the wizard position. The entry state is StepHome; StepFinished is
// only ever observed transiently in a submission response.
type Step string

const (
	StepHome     Step = "home"
	StepQ1       Step = "q1"
	StepQ2       Step = "q2"
	StepQ3       Step = "q3"
	StepQ4       Step = "q4"
	StepFinished Step = "finished"
)

// IsQuestion reports whether the step is one of q1..q4.
func (s Step) IsQuestion() bool {
	switch s {
	case StepQ1, StepQ2, StepQ3, StepQ4:
		return true
	}
	return false
}

// Next returns the step a valid submission advances to.
func (s Step) Next() Step {
	switch s {
	case StepHome:
		return StepQ1
	case StepQ1:
		return StepQ2
	case StepQ2:
		return StepQ3
	case StepQ3:
		return StepQ4
	case StepQ4:
		return StepFinished
	}
	return s
}

// Prev returns the step back-navigation returns to.
func (s Step) Prev() Step {
	switch s {
	case StepQ1:
		return StepHome
	case StepQ2:
		return StepQ1
	case StepQ3:
		return StepQ2
	case StepQ4:
		return StepQ3
	}
	return s
}

// ProfileAnswers is the structured step-1 payload.
type ProfileAnswers struct {
	Age             int    `json:"age" form:"age" validate:"required,gt=0"`
	FieldOfWork     string `json:"field_of_work" form:"field_of_work" validate:"required"`
	CurrentPosition string `json:"current_position" form:"current_position" validate:"required"`
	Gender          string `json:"gender" form:"gender" validate:"required"`
	MaritalStatus   string `json:"marital_status" form:"marital_status" validate:"required"`
	Education       string `json:"education" form:"education" validate:"required"`
	WorkExperience  string `json:"work_experience" form:"work_experience" validate:"required"`
}

// ResumeFile is an optional upload attached at step 1. The bytes stay in the
// draft until final submission; the actual upload is deferred to then.
type ResumeFile struct {
	Name string
	Data []byte
}

// AnswerSet accumulates wizard responses. It is mutable only through the
// questionnaire usecase until final submission.
type AnswerSet struct {
	Q1     *ProfileAnswers `json:"q1,omitempty"`
	Resume *ResumeFile     `json:"-"`
	Q2     string          `json:"q2,omitempty"`
	Q3     string          `json:"q3,omitempty"`
	Q4     string          `json:"q4,omitempty"`
}

// StepSubmission carries one step's payload. Exactly one of Profile (with
// optional Resume) or Text is set, depending on the step.
type StepSubmission struct {
	Profile *ProfileAnswers
	Resume  *ResumeFile
	Text    string
}

// QuestionnaireState hydrates a step re-entry: the current step plus any
// previously entered values so back/forward navigation never drops input.
type QuestionnaireState struct {
	Step      Step      `json:"step"`
	Answers   AnswerSet `json:"answers"`
	HasResume bool      `json:"has_resume"`
}

// SubmittedAnswers is the persisted user_info record, assembled once from
// the full AnswerSet at final submission.
type SubmittedAnswers struct {
	UserID          string    `json:"user_id"`
	Age             int       `json:"age"`
	FieldOfWork     string    `json:"field_of_work"`
	CurrentPosition string    `json:"current_position"`
	Gender          string    `json:"gender"`
	MaritalStatus   string    `json:"marital_status"`
	Education       string    `json:"education"`
	WorkExperience  string    `json:"work_experience"`
	ResumeURL       *string   `json:"resume_url,omitempty"`
	Q2              string    `json:"q2"`
	Q3              string    `json:"q3"`
	Q4              string    `json:"q4"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type AnswersRepository interface {
	// GetAnswers returns ErrNotFound when the user has not submitted.
	GetAnswers(ctx context.Context, userID string) (*SubmittedAnswers, error)
	HasAnswers(ctx context.Context, userID string) (bool, error)
	// UpsertAnswers inserts or updates the record keyed by user id, atomically.
	UpsertAnswers(ctx context.Context, answers *SubmittedAnswers) error
}

// ResumeStore uploads a resume and resolves its public URL.
type ResumeStore interface {
	StoreResume(ctx context.Context, originalName string, data []byte) (string, error)
}

type QuestionnaireUsecase interface {
	// Start moves a fresh draft from home to q1, or returns the step of an
	// existing draft unchanged.
	Start(ctx context.Context, userID string) (Step, error)
	// Current returns the draft state for step hydration.
	Current(ctx context.Context, userID string) (*QuestionnaireState, error)
	// SubmitStep validates one step and advances. Submitting q4 triggers the
	// final resume upload + upsert. The returned step is the one to render.
	SubmitStep(ctx context.Context, userID string, step Step, sub StepSubmission) (Step, error)
	// Back moves one step backwards without revalidation.
	Back(ctx context.Context, userID string) (Step, error)
	// CurrentStep returns the draft step without hydrating answers.
	CurrentStep(userID string) Step
	// Reset discards the draft entirely.
	Reset(userID string)
}
