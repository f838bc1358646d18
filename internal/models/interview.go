package models

import (
	"time"

	"github.com/google/uuid"
)

// Interview is one completed practice session. It is written once and never
// updated.
type Interview struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Category          string    `json:"category"`
	Difficulty        string    `json:"difficulty"`
	Duration          int       `json:"duration"`
	QuestionsAnswered int       `json:"questions_answered"`
	TotalQuestions    int       `json:"total_questions"`
	AverageRating     int       `json:"average_rating"`
	Ratings           []int     `json:"ratings"`
	CompletedAt       time.Time `json:"completed_at"`
}

type CreateInterviewRequest struct {
	Category          string `json:"category"`
	Difficulty        string `json:"difficulty"`
	Duration          int    `json:"duration"`
	QuestionsAnswered int    `json:"questions_answered"`
	TotalQuestions    int    `json:"total_questions"`
	AverageRating     int    `json:"average_rating"`
	Ratings           []int  `json:"ratings"`
}

type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// UserStats is the dashboard view over all of a user's interviews. It is
// derived on every request and never stored.
type UserStats struct {
	TotalInterviews     int            `json:"total_interviews"`
	AverageScore        float64        `json:"average_score"`
	BestScore           int            `json:"best_score"`
	PanicReductionIndex int            `json:"panic_reduction_index"`
	RecentSessions      []*Interview   `json:"recent_sessions"`
	CategoryBreakdown   map[string]int `json:"category_breakdown"`
	DifficultyBreakdown map[string]int `json:"difficulty_breakdown"`
	ScoreHistory        []ScorePoint   `json:"score_history"`
}

type Feedback struct {
	OverallMessage string   `json:"overall_message"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	Tips           []string `json:"tips"`
}
