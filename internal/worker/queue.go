package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"placement-panic/internal/models"
)

func jobQueueName(jobType string) string {
	return "queue:" + jobType
}

// Queues lists every Redis list the pool consumes.
var Queues = []string{
	jobQueueName(models.JobSessionReport),
	jobQueueName(models.JobWelcomeEmail),
}

// RedisQueue pushes jobs onto per-type Redis lists.
type RedisQueue struct {
	redis *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{redis: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := q.redis.RPush(ctx, jobQueueName(job.Type), data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue %s job: %w", job.Type, err)
	}
	return nil
}
