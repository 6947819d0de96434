package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-careercompass-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type planRepo struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) domain.PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) GetTheme(ctx context.Context, userID string) (*domain.PlanTheme, error) {
	query := `SELECT user_id, months, created_at FROM user_plan_theme WHERE user_id = $1`

	var t domain.PlanTheme
	var months []string
	err := r.db.QueryRow(ctx, query, userID).Scan(&t.UserID, pq.Array(&months), &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get plan theme: %w", err)
	}
	t.Months = months

	return &t, nil
}

func (r *planRepo) HasTheme(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_plan_theme WHERE user_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check plan theme: %w", err)
	}
	return exists, nil
}

func (r *planRepo) ListTasks(ctx context.Context, userID string) ([]domain.TaskOutline, error) {
	query := `
		SELECT id, user_id, month, task_outline, status
		FROM user_plan_taskoutline
		WHERE user_id = $1
		ORDER BY month ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.TaskOutline
	for rows.Next() {
		var t domain.TaskOutline
		if err := rows.Scan(&t.ID, &t.UserID, &t.Month, &t.Outline, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

func (r *planRepo) UpdateTaskStatus(ctx context.Context, userID string, taskID int64, status domain.TaskStatus) error {
	query := `
		UPDATE user_plan_taskoutline
		SET status = $3
		WHERE id = $1 AND user_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, taskID, userID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
