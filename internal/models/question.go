package models

import "github.com/google/uuid"

type Question struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
}
