package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"placement-panic/internal/models"
	"placement-panic/internal/repository"
)

type fakeQueue struct {
	mu   sync.Mutex
	jobs []*models.Job
	err  error
}

func (q *fakeQueue) Enqueue(ctx context.Context, job *models.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type publishedEvent struct {
	userID uuid.UUID
	msg    models.WSMessage
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishToUser(ctx context.Context, userID uuid.UUID, msg models.WSMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{userID: userID, msg: msg})
	return nil
}

// brokenCache fails every call, standing in for an unreachable Redis.
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(ctx context.Context, key string) (string, error) { return "", errCacheDown }

func (brokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errCacheDown
}

func (brokenCache) Del(ctx context.Context, keys ...string) error { return errCacheDown }

func (brokenCache) Incr(ctx context.Context, key string) (int64, error) { return 0, errCacheDown }

// gatedInterviewRepo holds ListByUser until release is closed, after
// signalling on entered. Only the first call is held.
type gatedInterviewRepo struct {
	repository.InterviewRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedInterviewRepo(inner repository.InterviewRepository) *gatedInterviewRepo {
	return &gatedInterviewRepo{
		InterviewRepository: inner,
		entered:             make(chan struct{}),
		release:             make(chan struct{}),
	}
}

func (r *gatedInterviewRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Interview, error) {
	list, err := r.InterviewRepository.ListByUser(ctx, userID)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.entered)
		<-r.release
	}
	return list, err
}
