package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"placement-panic/internal/models"
)

type PostgresQuestionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresQuestionRepo(pool *pgxpool.Pool) *PostgresQuestionRepo {
	return &PostgresQuestionRepo{pool: pool}
}

func (r *PostgresQuestionRepo) Create(ctx context.Context, q *models.Question) error {
	q.ID = uuid.New()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO questions (id, text, category, difficulty) VALUES ($1, $2, $3, $4)",
		q.ID, q.Text, q.Category, q.Difficulty,
	)
	return mapPgError(err)
}

func (r *PostgresQuestionRepo) ListByCategoryAndDifficulty(ctx context.Context, category, difficulty string) ([]*models.Question, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, text, category, difficulty FROM questions WHERE category = $1 AND difficulty = $2",
		category, difficulty,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		q := &models.Question{}
		if err := rows.Scan(&q.ID, &q.Text, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *PostgresQuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	return n, err
}
