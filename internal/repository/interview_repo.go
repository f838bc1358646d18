package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"placement-panic/internal/models"
)

type PostgresInterviewRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresInterviewRepo(pool *pgxpool.Pool) *PostgresInterviewRepo {
	return &PostgresInterviewRepo{pool: pool}
}

const interviewColumns = `id, user_id, category, difficulty, duration, questions_answered,
	total_questions, average_rating, ratings, completed_at`

func (r *PostgresInterviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	iv.ID = uuid.New()
	if iv.CompletedAt.IsZero() {
		iv.CompletedAt = time.Now().UTC()
	}
	if iv.Ratings == nil {
		iv.Ratings = []int{}
	}

	ratings, err := json.Marshal(iv.Ratings)
	if err != nil {
		return fmt.Errorf("failed to encode ratings: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO interviews (`+interviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		iv.ID, iv.UserID, iv.Category, iv.Difficulty, iv.Duration, iv.QuestionsAnswered,
		iv.TotalQuestions, iv.AverageRating, ratings, iv.CompletedAt,
	)
	return mapPgError(err)
}

func (r *PostgresInterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	iv := &models.Interview{}
	var ratings []byte

	err := r.pool.QueryRow(ctx, "SELECT "+interviewColumns+" FROM interviews WHERE id = $1", id).Scan(
		&iv.ID, &iv.UserID, &iv.Category, &iv.Difficulty, &iv.Duration, &iv.QuestionsAnswered,
		&iv.TotalQuestions, &iv.AverageRating, &ratings, &iv.CompletedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	if err := decodeRatings(ratings, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *PostgresInterviewRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Interview, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+interviewColumns+" FROM interviews WHERE user_id = $1 ORDER BY completed_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := make([]*models.Interview, 0)
	for rows.Next() {
		iv := &models.Interview{}
		var ratings []byte
		if err := rows.Scan(
			&iv.ID, &iv.UserID, &iv.Category, &iv.Difficulty, &iv.Duration, &iv.QuestionsAnswered,
			&iv.TotalQuestions, &iv.AverageRating, &ratings, &iv.CompletedAt,
		); err != nil {
			return nil, err
		}
		if err := decodeRatings(ratings, iv); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (r *PostgresInterviewRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM interviews WHERE user_id = $1", userID).Scan(&n)
	return n, err
}

func decodeRatings(raw []byte, iv *models.Interview) error {
	iv.Ratings = []int{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &iv.Ratings); err != nil {
		return fmt.Errorf("failed to decode ratings for interview %s: %w", iv.ID, err)
	}
	return nil
}
