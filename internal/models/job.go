package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobWelcomeEmail  = "welcome-email"
	JobSessionReport = "session-report"
)

// Job is a unit of background work pushed onto a Redis list and consumed by
// the worker pool. ReferenceID points at the interview for session reports
// and is nil for welcome emails.
type Job struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Type        string    `json:"type"`
	ReferenceID uuid.UUID `json:"reference_id"`
	RetryCount  int       `json:"retry_count"`
	CreatedAt   time.Time `json:"created_at"`
}
