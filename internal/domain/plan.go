package domain

import (
	"context"
	"time"
)

// ============================================================================
// Plan Generation
// ============================================================================

// PlanState tracks the generation coordinator for one identity.
type PlanState string

const (
	PlanIdle       PlanState = "idle"
	PlanRequesting PlanState = "requesting"
	PlanPolling    PlanState = "polling"
	PlanReady      PlanState = "ready"
	PlanFailed     PlanState = "failed"
)

// PlanStatus is the coordinator snapshot served to the presentation layer.
// Progress is cosmetic: it climbs a fixed increment per poll tick, capped
// below 100, and reaches 100 only when the plan is ready.
type PlanStatus struct {
	State    PlanState `json:"state"`
	Progress int       `json:"progress"`
	Message  string    `json:"message,omitempty"`
}

// PlanTheme holds the backend-generated monthly themes, ordered by month.
// Read-only to this service.
type PlanTheme struct {
	UserID    string    `json:"user_id"`
	Months    []string  `json:"months"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskStatus transitions are unordered: any direction is allowed.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "NOT_STARTED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskOutline is one actionable item within a month.
type TaskOutline struct {
	ID      int64      `json:"id"`
	UserID  string     `json:"user_id"`
	Month   int        `json:"month"`
	Outline string     `json:"task_outline"`
	Status  TaskStatus `json:"status"`
}

// PlanView is the loaded plan: themes, tasks grouped by month (a month with
// no tasks maps to an empty list) and the aggregate completion metric.
type PlanView struct {
	Months   []MonthPlan `json:"months"`
	Progress float64     `json:"progress"`
}

type MonthPlan struct {
	Month int           `json:"month"`
	Theme string        `json:"theme"`
	Tasks []TaskOutline `json:"tasks"`
}

type PlanRepository interface {
	// GetTheme returns ErrNotFound while generation has not completed.
	GetTheme(ctx context.Context, userID string) (*PlanTheme, error)
	HasTheme(ctx context.Context, userID string) (bool, error)
	ListTasks(ctx context.Context, userID string) ([]TaskOutline, error)
	UpdateTaskStatus(ctx context.Context, userID string, taskID int64, status TaskStatus) error
}

// PlannerClient triggers the external plan-generation job.
type PlannerClient interface {
	RequestGeneration(ctx context.Context, userID string) error
}

type PlanUsecase interface {
	// RequestPlan issues the generation job and begins polling. Guarded by
	// coordinator state: not issuable while one is requesting or polling.
	RequestPlan(ctx context.Context, userID string) (*PlanStatus, error)
	// Status returns the coordinator snapshot, resuming polling for a
	// non-stale pending request after a reload.
	Status(ctx context.Context, userID string) (*PlanStatus, error)
	// GetPlan loads themes and tasks for display.
	GetPlan(ctx context.Context, userID string) (*PlanView, error)
	// SetTaskStatus writes through to the store; only on success does the
	// in-memory view mutate and the metric recompute.
	SetTaskStatus(ctx context.Context, userID string, taskID int64, status TaskStatus) (*PlanView, error)
	// ExportPlan renders the plan as an xlsx workbook.
	ExportPlan(ctx context.Context, userID string) ([]byte, error)
	// CancelFor tears down the coordinator and stops any scheduled poll.
	CancelFor(userID string)
	// Shutdown cancels every live coordinator.
	Shutdown()
}
