package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"placement-panic/internal/models"
)

func userChannel(userID uuid.UUID) string {
	return "user_updates:" + userID.String()
}

// Publisher sends WebSocket messages through Redis so that whichever server
// instance holds the user's connection delivers them.
type Publisher struct {
	redis *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{redis: client}
}

func (p *Publisher) PublishToUser(ctx context.Context, userID uuid.UUID, msg models.WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return p.redis.Publish(ctx, userChannel(userID), data).Err()
}
