package usecase_test

import (
	"errors"
	"testing"
	"time"

	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/internal/usecase"
	"go-careercompass-backend/pkg/apperror"
	"go-careercompass-backend/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newPlanUC builds a plan usecase for a user who has already submitted the
// questionnaire; the prerequisite guard has its own tests.
func newPlanUC(plans *MockPlanRepo, status *MockStatusRepo, planner *MockPlannerClient, pollInterval, maxWait time.Duration) domain.PlanUsecase {
	answers := new(MockAnswersRepo)
	answers.On("HasAnswers", mock.Anything, mock.Anything).Return(true, nil)
	return usecase.NewPlanUsecase(plans, answers, status, planner, nil, pollInterval, maxWait)
}

func sampleTheme() *domain.PlanTheme {
	return &domain.PlanTheme{
		UserID: "user1",
		Months: []string{"Foundations", "Networking", "Interviewing"},
	}
}

func sampleTasks() []domain.TaskOutline {
	return []domain.TaskOutline{
		{ID: 1, UserID: "user1", Month: 1, Outline: "Update resume", Status: domain.TaskCompleted},
		{ID: 2, UserID: "user1", Month: 1, Outline: "Publish portfolio", Status: domain.TaskNotStarted},
		{ID: 3, UserID: "user1", Month: 2, Outline: "Attend meetup", Status: domain.TaskNotStarted},
	}
}

func TestPlanRequestGuards(t *testing.T) {
	t.Run("Should fail when context identity does not match", func(t *testing.T) {
		uc := newPlanUC(new(MockPlanRepo), new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)
		_, err := uc.RequestPlan(identityCtx("user1"), "user2")
		assert.Error(t, err)
	})

	t.Run("A user without a submitted answer set cannot request a plan", func(t *testing.T) {
		planner := new(MockPlannerClient)
		answers := new(MockAnswersRepo)
		answers.On("HasAnswers", mock.Anything, "fresh-user").Return(false, nil)
		uc := usecase.NewPlanUsecase(new(MockPlanRepo), answers, new(MockStatusRepo), planner, nil, time.Second, time.Minute)

		status, err := uc.RequestPlan(identityCtx("fresh-user"), "fresh-user")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Complete the questionnaire")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
		assert.Equal(t, apperror.KindPlanRequest, appErr.Kind)

		assert.Equal(t, domain.PlanIdle, status.State)
		planner.AssertNotCalled(t, "RequestGeneration", mock.Anything, mock.Anything)
	})

	t.Run("Planner failure surfaces its message and moves to failed", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(errors.New("quota exceeded"))
		statusRepo := new(MockStatusRepo)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)
		uc := newPlanUC(plans, statusRepo, planner, time.Second, time.Minute)

		status, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindPlanRequest, appErr.Kind)

		assert.Equal(t, domain.PlanFailed, status.State)
		assert.Equal(t, "quota exceeded", status.Message)
		statusRepo.AssertNotCalled(t, "MarkPlanRequested", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("A second request while polling is rejected with a conflict", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)
		uc := newPlanUC(plans, statusRepo, planner, time.Hour, 2*time.Hour)
		defer uc.Shutdown()

		status, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanPolling, status.State)

		_, err = uc.RequestPlan(identityCtx("user1"), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already in progress")
		planner.AssertNumberOfCalls(t, "RequestGeneration", 1)
	})

	t.Run("A stored theme rejects new requests even after a restart", func(t *testing.T) {
		planner := new(MockPlannerClient)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(true, nil)
		uc := newPlanUC(plans, new(MockStatusRepo), planner, time.Second, time.Minute)

		status, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been generated")
		assert.Equal(t, domain.PlanReady, status.State)
		planner.AssertNotCalled(t, "RequestGeneration", mock.Anything, mock.Anything)
	})
}

func TestPlanPollingLifecycle(t *testing.T) {
	t.Run("Plan becomes ready within one tick of the theme appearing", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		statusRepo.On("SetPhase", mock.Anything, "user1", domain.PhasePlanReady).Return(nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil).Twice()
		plans.On("HasTheme", mock.Anything, "user1").Return(true, nil)

		uc := newPlanUC(plans, statusRepo, planner, 20*time.Millisecond, 5*time.Second)
		defer uc.Shutdown()

		_, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			s, err := uc.Status(identityCtx("user1"), "user1")
			return err == nil && s.State == domain.PlanReady && s.Progress == 100
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("Progress advances but never completes while the theme is absent", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)

		uc := newPlanUC(plans, statusRepo, planner, 10*time.Millisecond, 5*time.Second)
		defer uc.Shutdown()

		_, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			s, err := uc.Status(identityCtx("user1"), "user1")
			return err == nil && s.Progress > 0
		}, 2*time.Second, 10*time.Millisecond)

		s, err := uc.Status(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanPolling, s.State)
		assert.LessOrEqual(t, s.Progress, 95)
	})

	t.Run("Polling past the wall-clock budget fails with a timeout", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)

		uc := newPlanUC(plans, statusRepo, planner, 10*time.Millisecond, 60*time.Millisecond)
		defer uc.Shutdown()

		_, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			s, err := uc.Status(identityCtx("user1"), "user1")
			return err == nil && s.State == domain.PlanFailed
		}, 2*time.Second, 10*time.Millisecond)

		s, _ := uc.Status(identityCtx("user1"), "user1")
		assert.Equal(t, apperror.PlanGenerationTimeout().Message, s.Message)
	})

	t.Run("A timeout reports its failure event exactly once", func(t *testing.T) {
		core, observed := observer.New(zap.WarnLevel)
		ev := events.NewWithZap(zap.New(core), "test")

		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)
		answers := new(MockAnswersRepo)
		answers.On("HasAnswers", mock.Anything, "user1").Return(true, nil)

		uc := usecase.NewPlanUsecase(plans, answers, statusRepo, planner, ev, 10*time.Millisecond, 40*time.Millisecond)
		defer uc.Shutdown()

		_, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			s, err := uc.Status(identityCtx("user1"), "user1")
			return err == nil && s.State == domain.PlanFailed
		}, 2*time.Second, 10*time.Millisecond)

		// Give any straggling ticks a chance to misfire before counting.
		time.Sleep(100 * time.Millisecond)

		timeouts := 0
		for _, entry := range observed.All() {
			for _, f := range entry.Context {
				if f.Key == "kind" && f.String == apperror.KindPlanGenerationTimeout {
					timeouts++
				}
			}
		}
		assert.Equal(t, 1, timeouts)
	})

	t.Run("A store failure during polling moves to failed", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, errors.New("connection reset"))

		uc := newPlanUC(plans, statusRepo, planner, 10*time.Millisecond, 5*time.Second)
		defer uc.Shutdown()

		_, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			s, err := uc.Status(identityCtx("user1"), "user1")
			return err == nil && s.State == domain.PlanFailed && s.Message == "connection reset"
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("CancelFor stops polling and discards coordinator state", func(t *testing.T) {
		planner := new(MockPlannerClient)
		planner.On("RequestGeneration", mock.Anything, "user1").Return(nil)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("MarkPlanRequested", mock.Anything, "user1", mock.Anything).Return(nil)
		statusRepo.On("GetStatus", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)

		uc := newPlanUC(plans, statusRepo, planner, 10*time.Millisecond, 5*time.Second)

		_, err := uc.RequestPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)

		uc.CancelFor("user1")

		// The rebuilt coordinator finds no theme and no pending marker.
		s, err := uc.Status(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanIdle, s.State)
	})
}

func TestPlanStatusRebuild(t *testing.T) {
	t.Run("An existing theme reports ready after a reload", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(true, nil)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		s, err := uc.Status(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanReady, s.State)
		assert.Equal(t, 100, s.Progress)
	})

	t.Run("A live pending request resumes polling", func(t *testing.T) {
		requestedAt := time.Now().Add(-time.Minute)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("GetStatus", mock.Anything, "user1").Return(&domain.UserStatus{
			UserID:          "user1",
			Status:          domain.PhasePlanRequested,
			PlanRequestedAt: &requestedAt,
		}, nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)

		uc := newPlanUC(plans, statusRepo, new(MockPlannerClient), time.Hour, 15*time.Minute)
		defer uc.Shutdown()

		s, err := uc.Status(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanPolling, s.State)
	})

	t.Run("A stale pending request stays idle", func(t *testing.T) {
		requestedAt := time.Now().Add(-time.Hour)
		statusRepo := new(MockStatusRepo)
		statusRepo.On("GetStatus", mock.Anything, "user1").Return(&domain.UserStatus{
			UserID:          "user1",
			Status:          domain.PhasePlanRequested,
			PlanRequestedAt: &requestedAt,
		}, nil)
		plans := new(MockPlanRepo)
		plans.On("HasTheme", mock.Anything, "user1").Return(false, nil)

		uc := newPlanUC(plans, statusRepo, new(MockPlannerClient), time.Hour, 15*time.Minute)

		s, err := uc.Status(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PlanIdle, s.State)
	})
}

func TestPlanViewAssembly(t *testing.T) {
	t.Run("Tasks group by month and empty months render as empty lists", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
		plans.On("ListTasks", mock.Anything, "user1").Return(sampleTasks(), nil)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		view, err := uc.GetPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Len(t, view.Months, 3)
		assert.Len(t, view.Months[0].Tasks, 2)
		assert.Len(t, view.Months[1].Tasks, 1)
		assert.NotNil(t, view.Months[2].Tasks)
		assert.Len(t, view.Months[2].Tasks, 0)
		assert.Equal(t, "Networking", view.Months[1].Theme)
	})

	t.Run("Completion metric is completed over total to one decimal", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
		plans.On("ListTasks", mock.Anything, "user1").Return(sampleTasks(), nil)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		view, err := uc.GetPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, 33.3, view.Progress)
	})

	t.Run("An empty task set reports zero progress", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
		plans.On("ListTasks", mock.Anything, "user1").Return([]domain.TaskOutline{}, nil)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		view, err := uc.GetPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, float64(0), view.Progress)
	})

	t.Run("Missing plan maps to not found", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		_, err := uc.GetPlan(identityCtx("user1"), "user1")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestTaskStatusUpdates(t *testing.T) {
	t.Run("A successful update recomputes the metric", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
		plans.On("ListTasks", mock.Anything, "user1").Return(sampleTasks(), nil)
		plans.On("UpdateTaskStatus", mock.Anything, "user1", int64(2), domain.TaskCompleted).Return(nil)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		view, err := uc.SetTaskStatus(identityCtx("user1"), "user1", 2, domain.TaskCompleted)
		assert.NoError(t, err)
		assert.Equal(t, 66.7, view.Progress)
	})

	t.Run("A rejected write leaves the visible plan unchanged", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
		plans.On("ListTasks", mock.Anything, "user1").Return(sampleTasks(), nil)
		plans.On("UpdateTaskStatus", mock.Anything, "user1", int64(2), domain.TaskCompleted).
			Return(errors.New("permission denied"))
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		_, err := uc.SetTaskStatus(identityCtx("user1"), "user1", 2, domain.TaskCompleted)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindTaskUpdate, appErr.Kind)

		view, err := uc.GetPlan(identityCtx("user1"), "user1")
		assert.NoError(t, err)
		assert.Equal(t, 33.3, view.Progress)
	})

	t.Run("An unknown task id maps to not found", func(t *testing.T) {
		plans := new(MockPlanRepo)
		plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
		plans.On("ListTasks", mock.Anything, "user1").Return(sampleTasks(), nil)
		plans.On("UpdateTaskStatus", mock.Anything, "user1", int64(42), domain.TaskCompleted).
			Return(domain.ErrNotFound)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		_, err := uc.SetTaskStatus(identityCtx("user1"), "user1", 42, domain.TaskCompleted)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("An invalid status value is rejected before any store call", func(t *testing.T) {
		plans := new(MockPlanRepo)
		uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

		_, err := uc.SetTaskStatus(identityCtx("user1"), "user1", 1, domain.TaskStatus("DONE"))
		assert.Error(t, err)
		plans.AssertNotCalled(t, "UpdateTaskStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPlanExport(t *testing.T) {
	plans := new(MockPlanRepo)
	plans.On("GetTheme", mock.Anything, "user1").Return(sampleTheme(), nil)
	plans.On("ListTasks", mock.Anything, "user1").Return(sampleTasks(), nil)
	uc := newPlanUC(plans, new(MockStatusRepo), new(MockPlannerClient), time.Second, time.Minute)

	data, err := uc.ExportPlan(identityCtx("user1"), "user1")
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx is a zip container
	assert.Equal(t, []byte("PK"), data[:2])
}
