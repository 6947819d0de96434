package usecase

import (
	"context"
	"errors"
	"time"

	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"
	"go-careercompass-backend/pkg/events"
)

type workflowUsecase struct {
	status        domain.StatusRepository
	answers       domain.AnswersRepository
	plans         domain.PlanRepository
	questionnaire domain.QuestionnaireUsecase
	plan          domain.PlanUsecase
	chat          domain.ChatUsecase
	events        *events.Logger

	resolveTimeout time.Duration
	planMaxWait    time.Duration
}

func NewWorkflowUsecase(
	status domain.StatusRepository,
	answers domain.AnswersRepository,
	plans domain.PlanRepository,
	questionnaire domain.QuestionnaireUsecase,
	plan domain.PlanUsecase,
	chat domain.ChatUsecase,
	ev *events.Logger,
	resolveTimeout time.Duration,
	planMaxWait time.Duration,
) domain.WorkflowUsecase {
	return &workflowUsecase{
		status:         status,
		answers:        answers,
		plans:          plans,
		questionnaire:  questionnaire,
		plan:           plan,
		chat:           chat,
		events:         ev,
		resolveTimeout: resolveTimeout,
		planMaxWait:    planMaxWait,
	}
}

// ClassifyPhase derives the workflow phase from stored records in fixed
// order, short-circuiting: no submitted answers -> NEW; a theme ->
// PLAN_READY; a live pending request -> PLAN_REQUESTED; else INFO_SUBMITTED.
// A missing record is a valid outcome at every lookup, never an error.
func (u *workflowUsecase) ClassifyPhase(ctx context.Context, userID string) (domain.WorkflowPhase, error) {
	submitted, err := u.answers.HasAnswers(ctx, userID)
	if err != nil {
		return domain.PhaseNew, u.lookupFailure(ctx, userID, err)
	}
	if !submitted {
		return domain.PhaseNew, nil
	}

	hasTheme, err := u.plans.HasTheme(ctx, userID)
	if err != nil {
		return domain.PhaseNew, u.lookupFailure(ctx, userID, err)
	}
	if hasTheme {
		return domain.PhasePlanReady, nil
	}

	status, err := u.status.GetStatus(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PhaseInfoSubmitted, nil
		}
		return domain.PhaseNew, u.lookupFailure(ctx, userID, err)
	}
	if pendingRequest(status, u.planMaxWait) {
		return domain.PhasePlanRequested, nil
	}

	return domain.PhaseInfoSubmitted, nil
}

// ResolveState classifies the user and assembles the single visible state
// the presentation layer renders, bounded by the session resolution timeout.
func (u *workflowUsecase) ResolveState(ctx context.Context, userID string) (*domain.ViewState, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, u.resolveTimeout)
	defer cancel()

	started := time.Now()
	phase, err := u.ClassifyPhase(ctx, userID)
	u.events.Latency(events.ComponentWorkflow, "resolve_state", time.Since(started))
	if err != nil {
		return nil, err
	}

	state := &domain.ViewState{
		Phase:      phase,
		PhaseLabel: phase.String(),
		View:       "home",
	}

	switch phase {
	case domain.PhaseNew:
		step := u.questionnaire.CurrentStep(userID)
		if step.IsQuestion() {
			state.View = "questionnaire"
			state.Step = step
		}
	case domain.PhaseInfoSubmitted, domain.PhasePlanRequested:
		planStatus, statusErr := u.plan.Status(ctx, userID)
		if statusErr != nil {
			return nil, statusErr
		}
		state.PlanState = planStatus.State
		state.PlanProgress = planStatus.Progress
		if planStatus.State == domain.PlanPolling || planStatus.State == domain.PlanRequesting {
			state.View = "plan-pending"
		} else if planStatus.State == domain.PlanReady {
			state.View = "plan-ready"
		}
	case domain.PhasePlanReady:
		state.View = "plan-ready"
		state.PlanState = domain.PlanReady
		state.PlanProgress = 100
	}

	return state, nil
}

// SignOut clears every piece of server-held state for the identity before
// the caller renders the unauthenticated view: questionnaire draft, plan
// coordinator (cancelling any scheduled poll) and chat window. Nothing of
// one identity survives into the next sign-in.
func (u *workflowUsecase) SignOut(userID string) {
	u.questionnaire.Reset(userID)
	u.plan.CancelFor(userID)
	u.chat.Reset(userID)
	u.events.Transition(events.ComponentSession, userID, "authenticated", "signed_out")
}

// lookupFailure maps a store failure during classification to the error the
// caller surfaces: the deadline produces SessionTimeout, anything else a
// ProfileLookupError. Reported exactly once.
func (u *workflowUsecase) lookupFailure(ctx context.Context, userID string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		appErr := apperror.SessionTimeout()
		u.events.Failure(events.ComponentWorkflow, userID, appErr.Kind, err)
		return appErr
	}
	appErr := apperror.ProfileLookup(err)
	u.events.Failure(events.ComponentWorkflow, userID, appErr.Kind, err)
	return appErr
}
