package services

import (
	"context"

	"github.com/google/uuid"

	"placement-panic/internal/models"
)

// JobQueue accepts background jobs for the worker pool.
type JobQueue interface {
	Enqueue(ctx context.Context, job *models.Job) error
}

// EventPublisher pushes a message to every live connection of a user.
type EventPublisher interface {
	PublishToUser(ctx context.Context, userID uuid.UUID, msg models.WSMessage) error
}
