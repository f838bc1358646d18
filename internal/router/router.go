package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"placement-panic/internal/handlers"
	"placement-panic/internal/middleware"
	"placement-panic/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	questionHandler *handlers.QuestionHandler,
	interviewHandler *handlers.InterviewHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Middleware)
				r.Post("/signup", authHandler.Signup)
				r.Post("/login", authHandler.Login)
			})
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Question Routes (public) ────
		r.Route("/questions", func(r chi.Router) {
			r.Get("/random", questionHandler.Random)
			r.Get("/catalog", questionHandler.Catalog)
		})

		// ──── Interview Routes ────
		r.Route("/interviews", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", interviewHandler.Create)
			r.Get("/", interviewHandler.List)
			r.Get("/stats", interviewHandler.Stats)
			r.Get("/{id}", interviewHandler.Get)
			r.Get("/{id}/feedback", interviewHandler.Feedback)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}

// DefaultAuthLimiter allows 10 signup/login attempts per minute per IP.
func DefaultAuthLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(10, time.Minute)
}
