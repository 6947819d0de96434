package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-careercompass-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type statusRepo struct {
	db *pgxpool.Pool
}

func NewStatusRepository(db *pgxpool.Pool) domain.StatusRepository {
	return &statusRepo{db: db}
}

func (r *statusRepo) GetStatus(ctx context.Context, userID string) (*domain.UserStatus, error) {
	query := `SELECT user_id, status, plan_requested_at FROM user_status WHERE user_id = $1`

	var s domain.UserStatus
	var requestedAt *time.Time
	err := r.db.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Status, &requestedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user status: %w", err)
	}
	s.PlanRequestedAt = requestedAt

	return &s, nil
}

func (r *statusRepo) SetPhase(ctx context.Context, userID string, phase domain.WorkflowPhase) error {
	query := `
		INSERT INTO user_status (user_id, status)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status
	`
	if _, err := r.db.Exec(ctx, query, userID, int(phase)); err != nil {
		return fmt.Errorf("failed to set workflow phase: %w", err)
	}
	return nil
}

func (r *statusRepo) MarkPlanRequested(ctx context.Context, userID string, at time.Time) error {
	query := `
		INSERT INTO user_status (user_id, status, plan_requested_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET status = EXCLUDED.status, plan_requested_at = EXCLUDED.plan_requested_at
	`
	if _, err := r.db.Exec(ctx, query, userID, int(domain.PhasePlanRequested), at); err != nil {
		return fmt.Errorf("failed to mark plan requested: %w", err)
	}
	return nil
}
