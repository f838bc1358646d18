package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"placement-panic/internal/models"
)

// SQLiteRepositories returns repositories backed by an already opened and
// migrated SQLite database.
func SQLiteRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:      &SQLiteUserRepo{db: db},
		Questions:  &SQLiteQuestionRepo{db: db},
		Interviews: &SQLiteInterviewRepo{db: db},
	}
}

type SQLiteUserRepo struct {
	db *sql.DB
}

func (r *SQLiteUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, college, year, target_role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Email, user.PasswordHash, user.Name,
		user.College, user.Year, user.TargetRole, user.CreatedAt,
	)
	return mapSQLiteError(err)
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanOne(ctx, "WHERE id = ?", id.String())
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(ctx, "WHERE email = ?", email)
}

func (r *SQLiteUserRepo) scanOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var (
		user models.User
		id   string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, name, college, year, target_role, created_at FROM users "+where, arg,
	).Scan(&id, &user.Email, &user.PasswordHash, &user.Name, &user.College, &user.Year, &user.TargetRole, &user.CreatedAt)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return &user, nil
}

type SQLiteQuestionRepo struct {
	db *sql.DB
}

func (r *SQLiteQuestionRepo) Create(ctx context.Context, q *models.Question) error {
	q.ID = uuid.New()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO questions (id, text, category, difficulty) VALUES (?, ?, ?, ?)",
		q.ID.String(), q.Text, q.Category, q.Difficulty,
	)
	return mapSQLiteError(err)
}

func (r *SQLiteQuestionRepo) ListByCategoryAndDifficulty(ctx context.Context, category, difficulty string) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, text, category, difficulty FROM questions WHERE category = ? AND difficulty = ?",
		category, difficulty,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		var (
			q  models.Question
			id string
		)
		if err := rows.Scan(&id, &q.Text, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}
		if q.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid question id %q: %w", id, err)
		}
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

func (r *SQLiteQuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	return n, err
}

type SQLiteInterviewRepo struct {
	db *sql.DB
}

func (r *SQLiteInterviewRepo) Create(ctx context.Context, iv *models.Interview) error {
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

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interviews (`+interviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.ID.String(), iv.UserID.String(), iv.Category, iv.Difficulty, iv.Duration, iv.QuestionsAnswered,
		iv.TotalQuestions, iv.AverageRating, string(ratings), iv.CompletedAt,
	)
	return mapSQLiteError(err)
}

func (r *SQLiteInterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+interviewColumns+" FROM interviews WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews, err := scanSQLiteInterviews(rows)
	if err != nil {
		return nil, err
	}
	if len(interviews) == 0 {
		return nil, ErrNotFound
	}
	return interviews[0], nil
}

func (r *SQLiteInterviewRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Interview, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+interviewColumns+" FROM interviews WHERE user_id = ? ORDER BY completed_at DESC, id DESC",
		userID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteInterviews(rows)
}

func (r *SQLiteInterviewRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM interviews WHERE user_id = ?", userID.String()).Scan(&n)
	return n, err
}

func scanSQLiteInterviews(rows *sql.Rows) ([]*models.Interview, error) {
	interviews := make([]*models.Interview, 0)
	for rows.Next() {
		var (
			iv         models.Interview
			id, userID string
			ratings    string
		)
		if err := rows.Scan(
			&id, &userID, &iv.Category, &iv.Difficulty, &iv.Duration, &iv.QuestionsAnswered,
			&iv.TotalQuestions, &iv.AverageRating, &ratings, &iv.CompletedAt,
		); err != nil {
			return nil, err
		}

		var err error
		if iv.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid interview id %q: %w", id, err)
		}
		if iv.UserID, err = uuid.Parse(userID); err != nil {
			return nil, fmt.Errorf("invalid owner id %q: %w", userID, err)
		}
		if err := decodeRatings([]byte(ratings), &iv); err != nil {
			return nil, err
		}
		interviews = append(interviews, &iv)
	}
	return interviews, rows.Err()
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrConflict
	}
	return err
}
