package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"
	"go-careercompass-backend/pkg/events"

	"github.com/xuri/excelize/v2"
)

const (
	// progressPerTick advances the cosmetic indicator each poll; capped
	// below 100 so only a ready plan shows complete.
	progressPerTick = 5
	progressCap     = 95
)

// coordinator is the per-identity plan-generation state machine:
// idle -> requesting -> polling -> ready | failed.
type coordinator struct {
	mu       sync.Mutex
	state    domain.PlanState
	progress int
	message  string
	cancel   context.CancelFunc
}

func (c *coordinator) snapshot() *domain.PlanStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &domain.PlanStatus{
		State:    c.state,
		Progress: c.progress,
		Message:  c.message,
	}
}

// planView caches the loaded task collection for write-through updates.
type planView struct {
	mu    sync.Mutex
	tasks []domain.TaskOutline
}

type planUsecase struct {
	plans   domain.PlanRepository
	answers domain.AnswersRepository
	status  domain.StatusRepository
	planner domain.PlannerClient
	events  *events.Logger

	pollInterval time.Duration
	maxWait      time.Duration

	mu     sync.Mutex
	coords map[string]*coordinator
	views  map[string]*planView
}

func NewPlanUsecase(
	plans domain.PlanRepository,
	answers domain.AnswersRepository,
	status domain.StatusRepository,
	planner domain.PlannerClient,
	ev *events.Logger,
	pollInterval time.Duration,
	maxWait time.Duration,
) domain.PlanUsecase {
	return &planUsecase{
		plans:        plans,
		answers:      answers,
		status:       status,
		planner:      planner,
		events:       ev,
		pollInterval: pollInterval,
		maxWait:      maxWait,
		coords:       make(map[string]*coordinator),
		views:        make(map[string]*planView),
	}
}

func (u *planUsecase) coordFor(userID string) *coordinator {
	u.mu.Lock()
	defer u.mu.Unlock()
	c, ok := u.coords[userID]
	if !ok {
		c = &coordinator{state: domain.PlanIdle}
		u.coords[userID] = c
	}
	return c
}

// RequestPlan issues the generation job. State-guarded: a second request is
// rejected while one is requesting or polling, and once ready there is
// nothing left to request.
func (u *planUsecase) RequestPlan(ctx context.Context, userID string) (*domain.PlanStatus, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	c := u.coordFor(userID)

	// Generation runs against the submitted answer set; a user who has not
	// completed the questionnaire has nothing to generate from.
	submitted, err := u.answers.HasAnswers(ctx, userID)
	if err != nil {
		return c.snapshot(), apperror.ProfileLookup(err)
	}
	if !submitted {
		return c.snapshot(), apperror.PlanRequestRejected("Complete the questionnaire before requesting a plan")
	}

	// A theme already in the store means generation finished, possibly
	// before this process started; never issue a duplicate job for it.
	exists, err := u.plans.HasTheme(ctx, userID)
	if err != nil {
		return c.snapshot(), apperror.ProfileLookup(err)
	}
	if exists {
		c.mu.Lock()
		c.state = domain.PlanReady
		c.progress = 100
		c.mu.Unlock()
		return c.snapshot(), apperror.Conflict("Your plan has already been generated")
	}

	c.mu.Lock()
	switch c.state {
	case domain.PlanRequesting, domain.PlanPolling:
		c.mu.Unlock()
		return c.snapshot(), apperror.Conflict("A plan generation request is already in progress")
	case domain.PlanReady:
		c.mu.Unlock()
		return c.snapshot(), apperror.Conflict("Your plan has already been generated")
	}
	u.events.Transition(events.ComponentPlan, userID, string(c.state), string(domain.PlanRequesting))
	c.state = domain.PlanRequesting
	c.progress = 0
	c.message = ""
	c.mu.Unlock()

	started := time.Now()
	err = u.planner.RequestGeneration(ctx, userID)
	u.events.Latency(events.ComponentPlan, "generate_plan_request", time.Since(started))

	if err != nil {
		c.mu.Lock()
		c.state = domain.PlanFailed
		c.message = err.Error()
		c.mu.Unlock()
		appErr := apperror.PlanRequest(err.Error(), err)
		u.events.Failure(events.ComponentPlan, userID, appErr.Kind, err)
		return c.snapshot(), appErr
	}

	if err := u.status.MarkPlanRequested(ctx, userID, time.Now()); err != nil {
		// The job is already running; the phase will catch up on the next
		// classification from the theme record itself.
		u.events.Failure(events.ComponentPlan, userID, apperror.KindProfileLookup, err)
	}

	u.startPolling(userID, c)
	return c.snapshot(), nil
}

// startPolling transitions the coordinator to polling and spawns the
// cancellable poll loop. Any prior loop for this coordinator is cancelled
// first so at most one runs per identity.
func (u *planUsecase) startPolling(userID string, c *coordinator) {
	pollCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	u.events.Transition(events.ComponentPlan, userID, string(c.state), string(domain.PlanPolling))
	c.state = domain.PlanPolling
	c.cancel = cancel
	c.mu.Unlock()

	go u.pollLoop(pollCtx, userID, c)
}

// pollLoop checks for the theme record at a fixed interval. A missing record
// just reschedules; presence is terminal. The wall-clock deadline bounds a
// stuck backend job.
func (u *planUsecase) pollLoop(ctx context.Context, userID string, c *coordinator) {
	ticker := time.NewTicker(u.pollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(u.maxWait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			c.mu.Lock()
			timedOut := c.state == domain.PlanPolling
			if timedOut {
				c.state = domain.PlanFailed
				c.message = apperror.PlanGenerationTimeout().Message
			}
			c.mu.Unlock()
			if timedOut {
				u.events.Failure(events.ComponentPlan, userID, apperror.KindPlanGenerationTimeout, nil)
			}
			return
		case <-ticker.C:
			done := u.pollOnce(ctx, userID, c)
			if done {
				return
			}
		}
	}
}

// pollOnce performs one existence check. Returns true when polling should
// stop. A cancelled context is never applied to coordinator state.
func (u *planUsecase) pollOnce(ctx context.Context, userID string, c *coordinator) bool {
	exists, err := u.plans.HasTheme(ctx, userID)
	if ctx.Err() != nil {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.PlanPolling {
		return true
	}

	if err != nil {
		c.state = domain.PlanFailed
		c.message = err.Error()
		u.events.Failure(events.ComponentPlan, userID, apperror.KindPlanRequest, err)
		return true
	}

	if !exists {
		if c.progress+progressPerTick <= progressCap {
			c.progress += progressPerTick
		}
		return false
	}

	c.state = domain.PlanReady
	c.progress = 100
	u.events.Transition(events.ComponentPlan, userID, string(domain.PlanPolling), string(domain.PlanReady))

	// Persist the phase outside the poll context so cancellation between
	// the check and the write cannot strand a half-applied transition.
	go func() {
		writeCtx, cancelWrite := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelWrite()
		if err := u.status.SetPhase(writeCtx, userID, domain.PhasePlanReady); err != nil {
			u.events.Failure(events.ComponentPlan, userID, apperror.KindProfileLookup, err)
		}
	}()

	return true
}

// Status reports the coordinator snapshot. After a reload the coordinator is
// rebuilt from stored records: an existing theme is ready, a non-stale
// pending request resumes polling, anything else is idle.
func (u *planUsecase) Status(ctx context.Context, userID string) (*domain.PlanStatus, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	c := u.coordFor(userID)

	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if state != domain.PlanIdle {
		return c.snapshot(), nil
	}

	exists, err := u.plans.HasTheme(ctx, userID)
	if err != nil {
		return nil, apperror.ProfileLookup(err)
	}
	if exists {
		c.mu.Lock()
		c.state = domain.PlanReady
		c.progress = 100
		c.mu.Unlock()
		return c.snapshot(), nil
	}

	status, err := u.status.GetStatus(ctx, userID)
	if err != nil && err != domain.ErrNotFound {
		return nil, apperror.ProfileLookup(err)
	}
	if err == nil && pendingRequest(status, u.maxWait) {
		u.startPolling(userID, c)
	}

	return c.snapshot(), nil
}

// pendingRequest reports whether the stored status is a live PLAN_REQUESTED
// marker. A request older than the polling budget is stale and no longer
// counts as pending.
func pendingRequest(s *domain.UserStatus, maxWait time.Duration) bool {
	if s == nil || s.Status != domain.PhasePlanRequested || s.PlanRequestedAt == nil {
		return false
	}
	return time.Since(*s.PlanRequestedAt) < maxWait
}

func (u *planUsecase) CancelFor(userID string) {
	u.mu.Lock()
	c := u.coords[userID]
	delete(u.coords, userID)
	delete(u.views, userID)
	u.mu.Unlock()

	if c != nil {
		c.mu.Lock()
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.mu.Unlock()
	}
}

func (u *planUsecase) Shutdown() {
	u.mu.Lock()
	coords := make([]*coordinator, 0, len(u.coords))
	for _, c := range u.coords {
		coords = append(coords, c)
	}
	u.coords = make(map[string]*coordinator)
	u.views = make(map[string]*planView)
	u.mu.Unlock()

	for _, c := range coords {
		c.mu.Lock()
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.mu.Unlock()
	}
}

// ===========================================================================
// Task progress tracking
// ===========================================================================

func (u *planUsecase) viewFor(userID string) *planView {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, ok := u.views[userID]
	if !ok {
		v = &planView{}
		u.views[userID] = v
	}
	return v
}

func (u *planUsecase) GetPlan(ctx context.Context, userID string) (*domain.PlanView, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	theme, err := u.plans.GetTheme(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Your plan has not been generated yet")
		}
		return nil, apperror.ProfileLookup(err)
	}

	tasks, err := u.plans.ListTasks(ctx, userID)
	if err != nil {
		return nil, apperror.ProfileLookup(err)
	}

	v := u.viewFor(userID)
	v.mu.Lock()
	v.tasks = tasks
	view := assembleView(theme, v.tasks)
	v.mu.Unlock()

	return view, nil
}

// SetTaskStatus is strictly write-through: the store write happens first and
// only success mutates the in-memory collection and recomputes the metric.
func (u *planUsecase) SetTaskStatus(ctx context.Context, userID string, taskID int64, status domain.TaskStatus) (*domain.PlanView, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperror.BadRequest("invalid task status: " + string(status))
	}

	theme, err := u.plans.GetTheme(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Your plan has not been generated yet")
		}
		return nil, apperror.ProfileLookup(err)
	}

	v := u.viewFor(userID)
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.tasks == nil {
		tasks, listErr := u.plans.ListTasks(ctx, userID)
		if listErr != nil {
			return nil, apperror.ProfileLookup(listErr)
		}
		v.tasks = tasks
	}

	if err := u.plans.UpdateTaskStatus(ctx, userID, taskID, status); err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound(fmt.Sprintf("task %d not found", taskID))
		}
		appErr := apperror.TaskUpdate(err)
		u.events.Failure(events.ComponentTasks, userID, appErr.Kind, err)
		return nil, appErr
	}

	for i := range v.tasks {
		if v.tasks[i].ID == taskID {
			u.events.Transition(events.ComponentTasks, userID, string(v.tasks[i].Status), string(status))
			v.tasks[i].Status = status
			break
		}
	}

	return assembleView(theme, v.tasks), nil
}

// assembleView groups tasks by month against the theme's month list. Months
// without tasks get an empty list, never an error.
func assembleView(theme *domain.PlanTheme, tasks []domain.TaskOutline) *domain.PlanView {
	byMonth := make(map[int][]domain.TaskOutline, len(theme.Months))
	for _, t := range tasks {
		byMonth[t.Month] = append(byMonth[t.Month], t)
	}

	months := make([]domain.MonthPlan, 0, len(theme.Months))
	for i, themeText := range theme.Months {
		month := i + 1
		monthTasks := byMonth[month]
		if monthTasks == nil {
			monthTasks = []domain.TaskOutline{}
		}
		months = append(months, domain.MonthPlan{
			Month: month,
			Theme: themeText,
			Tasks: monthTasks,
		})
	}

	return &domain.PlanView{
		Months:   months,
		Progress: progressMetric(tasks),
	}
}

// progressMetric is completed/total x 100 to one decimal place; 0 for an
// empty task set.
func progressMetric(tasks []domain.TaskOutline) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			completed++
		}
	}
	pct := float64(completed) / float64(len(tasks)) * 100
	return math.Round(pct*10) / 10
}

// ===========================================================================
// Plan export
// ===========================================================================

// ExportPlan renders the plan as an xlsx workbook: one row per task with its
// month, theme and status.
func (u *planUsecase) ExportPlan(ctx context.Context, userID string) ([]byte, error) {
	if err := requireIdentity(ctx, userID); err != nil {
		return nil, err
	}

	view, err := u.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Career Plan"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"MONTH", "THEME", "TASK", "STATUS"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheetName, "A1", "D1", headerStyle)

	row := 2
	for _, m := range view.Months {
		if len(m.Tasks) == 0 {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.Month)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), m.Theme)
			row++
			continue
		}
		for _, t := range m.Tasks {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.Month)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), m.Theme)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Outline)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(t.Status))
			row++
		}
	}

	_ = f.SetColWidth(sheetName, "B", "C", 50)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return buf.Bytes(), nil
}
