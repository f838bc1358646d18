package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placement-panic/internal/cache"
	"placement-panic/internal/handlers"
	"placement-panic/internal/middleware"
	"placement-panic/internal/models"
	"placement-panic/internal/repository"
	"placement-panic/internal/services"
	"placement-panic/internal/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repos := repository.NewMemoryStore().Repositories()
	if _, err := repository.SeedQuestions(context.Background(), repos.Questions); err != nil {
		t.Fatalf("SeedQuestions: %v", err)
	}
	store := cache.NewMemoryStore()
	jwtAuth := middleware.NewJWTAuth("test-secret")
	limiter := middleware.NewRateLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)

	h := New(
		jwtAuth,
		limiter,
		handlers.NewAuthHandler(services.NewAuthService(repos.Users, store, jwtAuth, nil)),
		handlers.NewQuestionHandler(services.NewQuestionService(repos.Questions, 10)),
		handlers.NewInterviewHandler(services.NewInterviewService(repos.Interviews, store, time.Minute, nil, nil)),
		websocket.NewHub(nil, jwtAuth),
		"http://localhost:5173",
	)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a request id on every response")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/interviews", "/api/v1/interviews/stats", "/api/v1/auth/me"} {
		resp := do(t, http.MethodGet, srv.URL+path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestPracticeFlow(t *testing.T) {
	srv := newTestServer(t)
	api := srv.URL + "/api/v1"

	resp := do(t, http.MethodPost, api+"/auth/signup", "", map[string]string{
		"email": "flow@example.com", "password": "secret1", "name": "Flow",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", resp.StatusCode)
	}
	var auth models.AuthResponse
	json.NewDecoder(resp.Body).Decode(&auth)
	token := auth.AccessToken

	resp = do(t, http.MethodGet, api+"/questions/random?category=DSA&difficulty=easy&count=3", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("questions: expected 200, got %d", resp.StatusCode)
	}
	var questions []models.Question
	json.NewDecoder(resp.Body).Decode(&questions)
	if len(questions) == 0 {
		t.Fatal("expected questions")
	}

	resp = do(t, http.MethodPost, api+"/interviews", token, map[string]interface{}{
		"category":           "DSA",
		"difficulty":         "easy",
		"duration":           5,
		"questions_answered": len(questions),
		"total_questions":    len(questions),
		"ratings":            []int{5, 4, 5}[:len(questions)],
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create interview: expected 201, got %d", resp.StatusCode)
	}
	var iv models.Interview
	json.NewDecoder(resp.Body).Decode(&iv)

	resp = do(t, http.MethodGet, api+"/interviews/stats", token, nil)
	var stats models.UserStats
	json.NewDecoder(resp.Body).Decode(&stats)
	if stats.TotalInterviews != 1 || stats.PanicReductionIndex != 5 || len(stats.RecentSessions) != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	resp = do(t, http.MethodGet, api+"/interviews/"+iv.ID.String()+"/feedback", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("feedback: expected 200, got %d", resp.StatusCode)
	}
	var fb models.Feedback
	json.NewDecoder(resp.Body).Decode(&fb)
	if len(fb.Strengths) != 3 || len(fb.Tips) != 4 {
		t.Errorf("unexpected feedback %+v", fb)
	}

	resp = do(t, http.MethodPost, api+"/auth/refresh", "", map[string]string{"refresh_token": auth.RefreshToken})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("refresh: expected 200, got %d", resp.StatusCode)
	}
}
