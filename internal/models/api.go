package models

// WebSocket message envelope
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const EventInterviewCompleted = "interview_completed"

// InterviewCompletedEvent is pushed to the owner's open WebSocket
// connections after a session is saved.
type InterviewCompletedEvent struct {
	InterviewID     string `json:"interview_id"`
	Category        string `json:"category"`
	AverageRating   int    `json:"average_rating"`
	TotalInterviews int    `json:"total_interviews"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
