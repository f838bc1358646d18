package handlers

import (
	"net/http"
	"strconv"

	"placement-panic/internal/services"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Random serves GET /questions/random?category=&difficulty=&count=
func (h *QuestionHandler) Random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	count := 0
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleServiceError(w, r, &services.ValidationError{Fields: map[string]string{"count": "Count must be a number"}})
			return
		}
		count = n
	}

	questions, err := h.questionService.Random(r.Context(), q.Get("category"), q.Get("difficulty"), count)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.questionService.Catalog())
}
