package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound marks the distinguished "record does not exist" outcome.
// Throughout the workflow core it is a valid state, never a failure.
var ErrNotFound = errors.New("record not found")

// WorkflowPhase is the coarse progress marker stored per user. Values match
// the user_status.status column.
type WorkflowPhase int

const (
	PhaseNew           WorkflowPhase = 0
	PhaseInfoSubmitted WorkflowPhase = 1
	PhasePlanRequested WorkflowPhase = 2
	PhasePlanReady     WorkflowPhase = 3
)

func (p WorkflowPhase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseInfoSubmitted:
		return "info_submitted"
	case PhasePlanRequested:
		return "plan_requested"
	case PhasePlanReady:
		return "plan_ready"
	}
	return "unknown"
}

// UserStatus is the user_status row.
type UserStatus struct {
	UserID          string        `json:"user_id"`
	Status          WorkflowPhase `json:"status"`
	PlanRequestedAt *time.Time    `json:"plan_requested_at,omitempty"`
}

// ViewState is the composite state the presentation layer renders from.
// Exactly one view is active at a time.
type ViewState struct {
	Phase        WorkflowPhase `json:"phase"`
	PhaseLabel   string        `json:"phase_label"`
	View         string        `json:"view"` // home | questionnaire | plan-pending | plan-ready
	Step         Step          `json:"step,omitempty"`
	PlanState    PlanState     `json:"plan_state,omitempty"`
	PlanProgress int           `json:"plan_progress"`
}

type StatusRepository interface {
	// GetStatus returns ErrNotFound when no row exists for the user.
	GetStatus(ctx context.Context, userID string) (*UserStatus, error)
	SetPhase(ctx context.Context, userID string, phase WorkflowPhase) error
	// MarkPlanRequested sets the phase to PhasePlanRequested and records the
	// request timestamp used for staleness checks.
	MarkPlanRequested(ctx context.Context, userID string, at time.Time) error
}

type WorkflowUsecase interface {
	// ClassifyPhase derives the phase purely from stored records.
	ClassifyPhase(ctx context.Context, userID string) (WorkflowPhase, error)
	// ResolveState classifies the user and assembles the visible view state,
	// bounded by the session resolution timeout.
	ResolveState(ctx context.Context, userID string) (*ViewState, error)
	// SignOut clears all server-held state for the identity: questionnaire
	// draft, plan coordinator (cancelling any polling) and chat window.
	SignOut(userID string)
}
