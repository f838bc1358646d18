package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"placement-panic/internal/cache"
	"placement-panic/internal/models"
	"placement-panic/internal/repository"
)

type InterviewService struct {
	interviews repository.InterviewRepository
	cache      cache.Store
	cacheTTL   time.Duration
	events     EventPublisher
	jobs       JobQueue
}

func NewInterviewService(
	interviews repository.InterviewRepository,
	cacheStore cache.Store,
	cacheTTL time.Duration,
	events EventPublisher,
	jobs JobQueue,
) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		cache:      cacheStore,
		cacheTTL:   cacheTTL,
		events:     events,
		jobs:       jobs,
	}
}

func (s *InterviewService) Create(ctx context.Context, userID uuid.UUID, req models.CreateInterviewRequest) (*models.Interview, error) {
	if err := validateInterview(&req); err != nil {
		return nil, err
	}

	ratings := req.Ratings
	if ratings == nil {
		ratings = []int{}
	}

	iv := &models.Interview{
		UserID:            userID,
		Category:          req.Category,
		Difficulty:        req.Difficulty,
		Duration:          req.Duration,
		QuestionsAnswered: req.QuestionsAnswered,
		TotalQuestions:    req.TotalQuestions,
		AverageRating:     req.AverageRating,
		Ratings:           ratings,
	}

	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to save interview: %w", err)
	}

	s.bumpStatsGeneration(ctx, userID)
	s.notifyCompleted(ctx, iv)

	if s.jobs != nil {
		job := &models.Job{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        models.JobSessionReport,
			ReferenceID: iv.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			log.Printf("failed to enqueue session report for interview %s: %v", iv.ID, err)
		}
	}

	return iv, nil
}

func (s *InterviewService) List(ctx context.Context, userID uuid.UUID) ([]*models.Interview, error) {
	interviews, err := s.interviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	if interviews == nil {
		interviews = []*models.Interview{}
	}
	return interviews, nil
}

// Get returns the interview if it belongs to userID.
func (s *InterviewService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Interview, error) {
	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Message: "Interview not found"}
		}
		return nil, err
	}
	if iv.UserID != userID {
		return nil, &ForbiddenError{Message: "You do not have access to this interview"}
	}
	return iv, nil
}

// Stats is cached per history generation. The generation is read before the
// interviews are loaded, so a result computed while an insert lands is
// written under a key no later reader asks for.
func (s *InterviewService) Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	key, cacheable := s.statsKey(ctx, userID)

	var cached models.UserStats
	if cacheable && s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	interviews, err := s.interviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interviews: %w", err)
	}

	stats := ComputeStats(interviews)
	if cacheable {
		s.store(ctx, key, stats)
	}
	return stats, nil
}

func (s *InterviewService) Feedback(ctx context.Context, userID, id uuid.UUID) (*models.Feedback, error) {
	iv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// Interviews are immutable, so cached feedback never goes stale.
	key := cache.FeedbackKey(id)

	var cached models.Feedback
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	fb := ComputeFeedback(iv)
	s.store(ctx, key, fb)
	return fb, nil
}

func (s *InterviewService) notifyCompleted(ctx context.Context, iv *models.Interview) {
	if s.events == nil {
		return
	}

	total, err := s.interviews.CountByUser(ctx, iv.UserID)
	if err != nil {
		log.Printf("failed to count interviews for user %s: %v", iv.UserID, err)
	}

	err = s.events.PublishToUser(ctx, iv.UserID, models.WSMessage{
		Type: models.EventInterviewCompleted,
		Payload: models.InterviewCompletedEvent{
			InterviewID:     iv.ID.String(),
			Category:        iv.Category,
			AverageRating:   iv.AverageRating,
			TotalInterviews: total,
		},
	})
	if err != nil {
		log.Printf("failed to publish interview_completed for user %s: %v", iv.UserID, err)
	}
}

// Cache failures are logged and otherwise ignored; the database is the
// source of truth.

func (s *InterviewService) lookup(ctx context.Context, key string, v interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := cache.GetJSON(ctx, s.cache, key, v)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		log.Printf("cache read %s failed: %v", key, err)
	}
	return err == nil
}

func (s *InterviewService) store(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, key, v, s.cacheTTL); err != nil {
		log.Printf("cache write %s failed: %v", key, err)
	}
}

// statsKey returns the cache key for the user's current stats generation.
// It reports false when the generation cannot be read.
func (s *InterviewService) statsKey(ctx context.Context, userID uuid.UUID) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	genKey := cache.StatsGenKey(userID)
	raw, err := s.cache.Get(ctx, genKey)
	if errors.Is(err, cache.ErrMiss) {
		return cache.StatsKey(userID, 0), true
	}
	if err != nil {
		log.Printf("cache read %s failed: %v", genKey, err)
		return "", false
	}

	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("cache value %s is not a generation: %q", genKey, raw)
		return "", false
	}
	return cache.StatsKey(userID, gen), true
}

func (s *InterviewService) bumpStatsGeneration(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, cache.StatsGenKey(userID)); err != nil {
		log.Printf("cache incr %s failed: %v", cache.StatsGenKey(userID), err)
	}
}

// validateInterview checks a submitted session and fills in AverageRating
// from the per-question ratings when the client left it at zero.
func validateInterview(req *models.CreateInterviewRequest) error {
	fieldErrors := make(map[string]string)

	if !models.IsValidCategory(req.Category) {
		fieldErrors["category"] = "Unknown category"
	}
	if !models.IsValidDifficulty(req.Difficulty) {
		fieldErrors["difficulty"] = "Unknown difficulty"
	}
	if !models.IsValidDuration(req.Duration) {
		fieldErrors["duration"] = "Duration must be 5, 10 or 15 minutes"
	}
	if req.TotalQuestions < 1 {
		fieldErrors["total_questions"] = "Total questions must be at least 1"
	}
	if req.QuestionsAnswered < 0 || (req.TotalQuestions >= 1 && req.QuestionsAnswered > req.TotalQuestions) {
		fieldErrors["questions_answered"] = "Questions answered must be between 0 and total questions"
	}
	if req.TotalQuestions >= 1 && len(req.Ratings) > req.TotalQuestions {
		fieldErrors["ratings"] = "More ratings than questions"
	}
	for _, r := range req.Ratings {
		if r < models.MinRating || r > models.MaxRating {
			fieldErrors["ratings"] = fmt.Sprintf("Ratings must be between %d and %d", models.MinRating, models.MaxRating)
			break
		}
	}

	if req.AverageRating == 0 && len(req.Ratings) > 0 && fieldErrors["ratings"] == "" {
		req.AverageRating = roundedRatingMean(req.Ratings)
	}
	if req.AverageRating < models.MinRating || req.AverageRating > models.MaxRating {
		fieldErrors["average_rating"] = fmt.Sprintf("Average rating must be between %d and %d", models.MinRating, models.MaxRating)
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}

// roundedRatingMean is the integer mean of ratings, rounding halves up.
func roundedRatingMean(ratings []int) int {
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	n := len(ratings)
	return (2*sum + n) / (2 * n)
}
