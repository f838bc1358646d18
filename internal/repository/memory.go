package repository

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"placement-panic/internal/models"
)

// MemoryStore keeps users, questions and interviews in process memory. It is
// used for local development (STORAGE_TYPE=memory) and in tests.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*models.User
	questions  map[uuid.UUID]*models.Question
	interviews map[uuid.UUID]*models.Interview
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uuid.UUID]*models.User),
		questions:  make(map[uuid.UUID]*models.Question),
		interviews: make(map[uuid.UUID]*models.Interview),
	}
}

func (s *MemoryStore) Repositories() *Repositories {
	return &Repositories{
		Users:      &memoryUserRepo{s},
		Questions:  &memoryQuestionRepo{s},
		Interviews: &memoryInterviewRepo{s},
	}
}

type memoryUserRepo struct{ s *MemoryStore }

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrConflict
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type memoryQuestionRepo struct{ s *MemoryStore }

func (r *memoryQuestionRepo) Create(ctx context.Context, q *models.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q.ID = uuid.New()
	cp := *q
	r.s.questions[q.ID] = &cp
	return nil
}

func (r *memoryQuestionRepo) ListByCategoryAndDifficulty(ctx context.Context, category, difficulty string) ([]*models.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	questions := make([]*models.Question, 0)
	for _, q := range r.s.questions {
		if q.Category == category && q.Difficulty == difficulty {
			cp := *q
			questions = append(questions, &cp)
		}
	}
	return questions, nil
}

func (r *memoryQuestionRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.questions), nil
}

type memoryInterviewRepo struct{ s *MemoryStore }

func (r *memoryInterviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	iv.ID = uuid.New()
	if iv.CompletedAt.IsZero() {
		iv.CompletedAt = time.Now().UTC()
	}
	if iv.Ratings == nil {
		iv.Ratings = []int{}
	}
	r.s.interviews[iv.ID] = copyInterview(iv)
	return nil
}

func (r *memoryInterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	iv, ok := r.s.interviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyInterview(iv), nil
}

func (r *memoryInterviewRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Interview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	interviews := make([]*models.Interview, 0)
	for _, iv := range r.s.interviews {
		if iv.UserID == userID {
			interviews = append(interviews, copyInterview(iv))
		}
	}
	// Map iteration order is random, so equal timestamps fall back to ID.
	sort.SliceStable(interviews, func(i, j int) bool {
		a, b := interviews[i], interviews[j]
		if !a.CompletedAt.Equal(b.CompletedAt) {
			return a.CompletedAt.After(b.CompletedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
	return interviews, nil
}

func (r *memoryInterviewRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, iv := range r.s.interviews {
		if iv.UserID == userID {
			n++
		}
	}
	return n, nil
}

// Stored interviews are copied in and out so callers cannot mutate them.
func copyInterview(iv *models.Interview) *models.Interview {
	cp := *iv
	cp.Ratings = append([]int{}, iv.Ratings...)
	return &cp
}
