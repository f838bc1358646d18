package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placement-panic/internal/app"
	"placement-panic/internal/cache"
	"placement-panic/internal/config"
	"placement-panic/internal/database"
	"placement-panic/internal/handlers"
	"placement-panic/internal/middleware"
	"placement-panic/internal/repository"
	"placement-panic/internal/router"
	"placement-panic/internal/services"
	"placement-panic/internal/websocket"
	"placement-panic/internal/worker"
)

func main() {
	log.Println("🚀 Starting Placement Panic backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	ctx := context.Background()

	// ──── Step 2: Open Storage and Apply Migrations ────
	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("✗ Storage initialization failed: %v", err)
	}
	defer storage.Close()
	repos := storage.Repos
	log.Printf("✓ Storage ready (%s)", cfg.StorageType)

	seeded, err := repository.SeedQuestions(ctx, repos.Questions)
	if err != nil {
		log.Fatalf("✗ Question seed failed: %v", err)
	}
	if seeded > 0 {
		log.Printf("✓ Seeded %d questions", seeded)
	}

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Initialize Email Transport ────
	emailService, err := services.NewEmailService(ctx, services.EmailConfig{
		Provider:     cfg.EmailProvider,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUser:     cfg.SMTPUser,
		SMTPPass:     cfg.SMTPPass,
		SMTPFrom:     cfg.SMTPFrom,
		SESRegion:    cfg.SESRegion,
		SESFromEmail: cfg.SESFromEmail,
		SESFromName:  cfg.SESFromName,
		FrontendURL:  cfg.FrontendURL,
	})
	if err != nil {
		log.Fatalf("✗ Email transport initialization failed: %v", err)
	}
	log.Printf("✓ Email transport initialized (%s)", cfg.EmailProvider)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	cacheStore := cache.NewRedisStore(redisClients.Cache)
	jobQueue := worker.NewRedisQueue(redisClients.Cache)
	publisher := websocket.NewPublisher(redisClients.Cache)

	authService := services.NewAuthService(repos.Users, cacheStore, jwtAuth, jobQueue)
	questionService := services.NewQuestionService(repos.Questions, cfg.QuestionCountDefault)
	interviewService := services.NewInterviewService(repos.Interviews, cacheStore, cfg.StatsCacheTTL, publisher, jobQueue)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)

	// ──── Step 5: Start Job Worker Pool ────
	workerPool := worker.NewPool(redisClients.Cache, repos.Users, repos.Interviews, emailService, 3)
	workerPool.Start()
	log.Println("✓ Worker pool started (3 goroutines)")

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	authLimiter := router.DefaultAuthLimiter()
	r := router.New(
		jwtAuth,
		authLimiter,
		authHandler,
		questionHandler,
		interviewHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()
		authLimiter.Stop()
		wsHub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Placement Panic ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
