package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/internal/usecase"
	"go-careercompass-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type workflowFixture struct {
	status  *MockStatusRepo
	answers *MockAnswersRepo
	plans   *MockPlanRepo
	planner *MockPlannerClient

	questionnaire domain.QuestionnaireUsecase
	plan          domain.PlanUsecase
	chat          domain.ChatUsecase
	workflow      domain.WorkflowUsecase
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		status:  new(MockStatusRepo),
		answers: new(MockAnswersRepo),
		plans:   new(MockPlanRepo),
		planner: new(MockPlannerClient),
	}
	f.questionnaire = usecase.NewQuestionnaireUsecase(f.answers, f.status, new(MockResumeStore), validator.New(), nil)
	f.plan = usecase.NewPlanUsecase(f.plans, f.answers, f.status, f.planner, nil, time.Hour, 15*time.Minute)
	f.chat = usecase.NewChatUsecase(new(MockAssistantClient), nil)
	f.workflow = usecase.NewWorkflowUsecase(
		f.status, f.answers, f.plans,
		f.questionnaire, f.plan, f.chat,
		nil, 15*time.Second, 15*time.Minute,
	)
	return f
}

func TestClassifyPhase(t *testing.T) {
	recent := time.Now().Add(-time.Minute)
	stale := time.Now().Add(-time.Hour)

	tests := []struct {
		name       string
		hasAnswers bool
		hasTheme   bool
		status     *domain.UserStatus
		statusErr  error
		want       domain.WorkflowPhase
	}{
		{
			name:       "no submitted answers is NEW",
			hasAnswers: false,
			want:       domain.PhaseNew,
		},
		{
			name:       "answers without theme or marker is INFO_SUBMITTED",
			hasAnswers: true,
			statusErr:  domain.ErrNotFound,
			want:       domain.PhaseInfoSubmitted,
		},
		{
			name:       "an existing theme wins regardless of the stored marker",
			hasAnswers: true,
			hasTheme:   true,
			want:       domain.PhasePlanReady,
		},
		{
			name:       "a live pending request is PLAN_REQUESTED",
			hasAnswers: true,
			status:     &domain.UserStatus{UserID: "user1", Status: domain.PhasePlanRequested, PlanRequestedAt: &recent},
			want:       domain.PhasePlanRequested,
		},
		{
			name:       "a stale pending request degrades to INFO_SUBMITTED",
			hasAnswers: true,
			status:     &domain.UserStatus{UserID: "user1", Status: domain.PhasePlanRequested, PlanRequestedAt: &stale},
			want:       domain.PhaseInfoSubmitted,
		},
		{
			name:       "a marker without a timestamp is not pending",
			hasAnswers: true,
			status:     &domain.UserStatus{UserID: "user1", Status: domain.PhasePlanRequested},
			want:       domain.PhaseInfoSubmitted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newWorkflowFixture()
			f.answers.On("HasAnswers", mock.Anything, "user1").Return(tc.hasAnswers, nil)
			f.plans.On("HasTheme", mock.Anything, "user1").Return(tc.hasTheme, nil)
			if tc.status != nil || tc.statusErr != nil {
				f.status.On("GetStatus", mock.Anything, "user1").Return(tc.status, tc.statusErr)
			}

			phase, err := f.workflow.ClassifyPhase(context.Background(), "user1")
			assert.NoError(t, err)
			assert.Equal(t, tc.want, phase)
		})
	}
}

func TestClassifyPhaseFailures(t *testing.T) {
	t.Run("A store failure maps to a profile lookup error", func(t *testing.T) {
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(false, errors.New("connection refused"))

		_, err := f.workflow.ClassifyPhase(context.Background(), "user1")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindProfileLookup, appErr.Kind)
	})

	t.Run("A deadline during classification maps to a session timeout", func(t *testing.T) {
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(false, context.DeadlineExceeded)

		_, err := f.workflow.ClassifyPhase(context.Background(), "user1")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindSessionTimeout, appErr.Kind)
	})
}

func TestResolveState(t *testing.T) {
	t.Run("A new user without a draft lands on home", func(t *testing.T) {
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(false, nil)

		state, err := f.workflow.ResolveState(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PhaseNew, state.Phase)
		assert.Equal(t, "home", state.View)
	})

	t.Run("A new user with a mid-wizard draft resumes the questionnaire", func(t *testing.T) {
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(false, nil)

		_, err := f.questionnaire.Start(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		state, err := f.workflow.ResolveState(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, "questionnaire", state.View)
		assert.Equal(t, domain.StepQ1, state.Step)
	})

	t.Run("A submitted user with an idle coordinator sees home", func(t *testing.T) {
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(true, nil)
		f.plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)
		f.status.On("GetStatus", mock.Anything, "user1").Return(nil, domain.ErrNotFound)

		state, err := f.workflow.ResolveState(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PhaseInfoSubmitted, state.Phase)
		assert.Equal(t, "home", state.View)
	})

	t.Run("A pending request resumes as the plan-pending view", func(t *testing.T) {
		recent := time.Now().Add(-time.Minute)
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(true, nil)
		f.plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)
		f.status.On("GetStatus", mock.Anything, "user1").Return(&domain.UserStatus{
			UserID:          "user1",
			Status:          domain.PhasePlanRequested,
			PlanRequestedAt: &recent,
		}, nil)
		defer f.plan.Shutdown()

		state, err := f.workflow.ResolveState(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PhasePlanRequested, state.Phase)
		assert.Equal(t, "plan-pending", state.View)
		assert.Equal(t, domain.PlanPolling, state.PlanState)
	})

	t.Run("A generated plan renders ready with full progress", func(t *testing.T) {
		f := newWorkflowFixture()
		f.answers.On("HasAnswers", mock.Anything, "user1").Return(true, nil)
		f.plans.On("HasTheme", mock.Anything, "user1").Return(true, nil)

		state, err := f.workflow.ResolveState(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PhasePlanReady, state.Phase)
		assert.Equal(t, "plan-ready", state.View)
		assert.Equal(t, 100, state.PlanProgress)
	})

	t.Run("Identity mismatch is rejected before any store access", func(t *testing.T) {
		f := newWorkflowFixture()
		_, err := f.workflow.ResolveState(identityCtx("user1"), "user2")
		assert.Error(t, err)
		f.answers.AssertNotCalled(t, "HasAnswers", mock.Anything, mock.Anything)
	})
}

func TestSignOut(t *testing.T) {
	f := newWorkflowFixture()
	ctx := identityCtx("user1")

	// Build up state across every concern.
	_, err := f.questionnaire.Start(ctx, "user1")
	assert.NoError(t, err)

	f.planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
	f.answers.On("HasAnswers", mock.Anything, "user1").Return(true, nil)
	f.status.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
	f.plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)
	f.status.On("GetStatus", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
	_, err = f.plan.RequestPlan(ctx, "user1")
	assert.NoError(t, err)

	f.workflow.SignOut("user1")

	t.Run("The questionnaire draft is gone", func(t *testing.T) {
		assert.Equal(t, domain.StepHome, f.questionnaire.CurrentStep("user1"))
	})

	t.Run("The plan coordinator is torn down", func(t *testing.T) {
		s, err := f.plan.Status(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanIdle, s.State)
	})

	t.Run("The chat window is empty", func(t *testing.T) {
		assert.Empty(t, f.chat.Messages("user1"))
	})
}
