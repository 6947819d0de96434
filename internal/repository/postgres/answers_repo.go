package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-careercompass-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type answersRepo struct {
	db *pgxpool.Pool
}

func NewAnswersRepository(db *pgxpool.Pool) domain.AnswersRepository {
	return &answersRepo{db: db}
}

func (r *answersRepo) GetAnswers(ctx context.Context, userID string) (*domain.SubmittedAnswers, error) {
	query := `
		SELECT user_id, age, field_of_work, current_position, gender,
		       marital_status, education, work_experience, resume_url,
		       q2, q3, q4, submitted_at
		FROM user_info
		WHERE user_id = $1
	`

	var a domain.SubmittedAnswers
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&a.UserID, &a.Age, &a.FieldOfWork, &a.CurrentPosition, &a.Gender,
		&a.MaritalStatus, &a.Education, &a.WorkExperience, &a.ResumeURL,
		&a.Q2, &a.Q3, &a.Q4, &a.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submitted answers: %w", err)
	}

	return &a, nil
}

func (r *answersRepo) HasAnswers(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_info WHERE user_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check submitted answers: %w", err)
	}
	return exists, nil
}

// UpsertAnswers persists the full answer set in one statement so a
// half-written record is never observable.
func (r *answersRepo) UpsertAnswers(ctx context.Context, a *domain.SubmittedAnswers) error {
	query := `
		INSERT INTO user_info (
			user_id, age, field_of_work, current_position, gender,
			marital_status, education, work_experience, resume_url,
			q2, q3, q4, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			field_of_work = EXCLUDED.field_of_work,
			current_position = EXCLUDED.current_position,
			gender = EXCLUDED.gender,
			marital_status = EXCLUDED.marital_status,
			education = EXCLUDED.education,
			work_experience = EXCLUDED.work_experience,
			resume_url = EXCLUDED.resume_url,
			q2 = EXCLUDED.q2,
			q3 = EXCLUDED.q3,
			q4 = EXCLUDED.q4,
			submitted_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		a.UserID, a.Age, a.FieldOfWork, a.CurrentPosition, a.Gender,
		a.MaritalStatus, a.Education, a.WorkExperience, a.ResumeURL,
		a.Q2, a.Q3, a.Q4,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answers: %w", err)
	}
	return nil
}
