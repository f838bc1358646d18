package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"placement-panic/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, q *models.Question) error
	ListByCategoryAndDifficulty(ctx context.Context, category, difficulty string) ([]*models.Question, error)
	Count(ctx context.Context) (int, error)
}

// InterviewRepository stores completed interviews. There is no update or
// delete: an interview is immutable once created.
type InterviewRepository interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	// ListByUser returns the user's interviews, newest first. Ties on
	// CompletedAt are broken by descending ID.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Interview, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type Repositories struct {
	Users      UserRepository
	Questions  QuestionRepository
	Interviews InterviewRepository
}
