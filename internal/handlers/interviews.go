package handlers

import (
	"net/http"

	"placement-panic/internal/middleware"
	"placement-panic/internal/models"
	"placement-panic/internal/services"
)

type InterviewHandler struct {
	interviewService *services.InterviewService
}

func NewInterviewHandler(interviewService *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInterviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	iv, err := h.interviewService.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, iv)
}

func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.interviewService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"interviews": interviews,
	})
}

func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	iv, err := h.interviewService.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, iv)
}

// Stats serves the dashboard. A user with no interviews gets zero values.
func (h *InterviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.interviewService.Stats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *InterviewHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	fb, err := h.interviewService.Feedback(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fb)
}
