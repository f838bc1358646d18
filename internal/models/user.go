package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	College      *string   `json:"college"`
	Year         *string   `json:"year"`
	TargetRole   *string   `json:"target_role"`
	CreatedAt    time.Time `json:"created_at"`
}

type SignupRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	College    *string `json:"college"`
	Year       *string `json:"year"`
	TargetRole *string `json:"target_role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResponse is returned by signup and login so the client can render the
// user without a second round trip.
type AuthResponse struct {
	User *User `json:"user"`
	AuthTokens
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
