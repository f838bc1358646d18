package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"placement-panic/internal/models"
	"placement-panic/internal/repository"
	"placement-panic/internal/services"
)

const (
	maxRetries  = 3
	popTimeout  = 5 * time.Second
	lockTimeout = 5 * time.Minute
)

// Mailer sends the emails produced by background jobs.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendSessionReport(ctx context.Context, to, name string, iv *models.Interview, fb *models.Feedback) error
}

type Pool struct {
	redis       *redis.Client
	users       repository.UserRepository
	interviews  repository.InterviewRepository
	mailer      Mailer
	workerCount int
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

func NewPool(
	redisClient *redis.Client,
	users repository.UserRepository,
	interviews repository.InterviewRepository,
	mailer Mailer,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		users:       users,
		interviews:  interviews,
		mailer:      mailer,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	log.Printf("Started %d worker goroutines", p.workerCount)
}

// Stop signals the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.stopChan)
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		result, err := p.redis.BLPop(ctx, popTimeout, Queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("Worker %d: BLPOP failed: %v", id, err)
				time.Sleep(time.Second)
			}
			continue
		}

		if len(result) < 2 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse job: %v", id, err)
			continue
		}

		lockKey := fmt.Sprintf("job_lock:%s", job.ID)
		locked, err := p.redis.SetNX(ctx, lockKey, "1", lockTimeout).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: processing job %s (type: %s)", id, job.ID, job.Type)

		if err := p.process(ctx, &job); err != nil {
			p.handleFailure(&job, err)
		} else {
			log.Printf("Job %s completed successfully", job.ID)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) process(ctx context.Context, job *models.Job) error {
	switch job.Type {
	case models.JobWelcomeEmail:
		return p.processWelcome(ctx, job)
	case models.JobSessionReport:
		return p.processSessionReport(ctx, job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (p *Pool) processWelcome(ctx context.Context, job *models.Job) error {
	user, err := p.users.GetByID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	return p.mailer.SendWelcomeEmail(ctx, user.Email, user.Name)
}

func (p *Pool) processSessionReport(ctx context.Context, job *models.Job) error {
	iv, err := p.interviews.GetByID(ctx, job.ReferenceID)
	if err != nil {
		return fmt.Errorf("failed to get interview: %w", err)
	}
	if iv.UserID != job.UserID {
		return fmt.Errorf("interview %s does not belong to user %s", iv.ID, job.UserID)
	}

	user, err := p.users.GetByID(ctx, iv.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return p.mailer.SendSessionReport(ctx, user.Email, user.Name, iv, services.ComputeFeedback(iv))
}

func (p *Pool) handleFailure(job *models.Job, err error) {
	job.RetryCount++

	// Missing rows will not appear on retry.
	if errors.Is(err, repository.ErrNotFound) || job.RetryCount >= maxRetries {
		log.Printf("Job %s failed permanently: %v", job.ID, err)
		return
	}

	log.Printf("Job %s failed (attempt %d): %v, retrying", job.ID, job.RetryCount, err)

	jobBytes, _ := json.Marshal(job)
	backoff := time.Duration(1<<uint(job.RetryCount)) * time.Second
	time.AfterFunc(backoff, func() {
		p.redis.RPush(context.Background(), jobQueueName(job.Type), string(jobBytes))
	})
}
