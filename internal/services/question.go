package services

import (
	"context"
	"fmt"
	"math/rand"

	"placement-panic/internal/models"
	"placement-panic/internal/repository"
)

const maxQuestionCount = 50

type QuestionService struct {
	questions    repository.QuestionRepository
	defaultCount int
	shuffle      func(n int, swap func(i, j int))
}

func NewQuestionService(questions repository.QuestionRepository, defaultCount int) *QuestionService {
	return &QuestionService{
		questions:    questions,
		defaultCount: clampCount(defaultCount, 10),
		shuffle:      rand.Shuffle,
	}
}

// Random returns up to count distinct questions for the pair, drawn
// uniformly. A count of zero or less means the configured default.
func (s *QuestionService) Random(ctx context.Context, category, difficulty string, count int) ([]*models.Question, error) {
	fieldErrors := make(map[string]string)
	if category == "" {
		fieldErrors["category"] = "Category is required"
	} else if !models.IsValidCategory(category) {
		fieldErrors["category"] = "Unknown category"
	}
	if difficulty == "" {
		fieldErrors["difficulty"] = "Difficulty is required"
	} else if !models.IsValidDifficulty(difficulty) {
		fieldErrors["difficulty"] = "Unknown difficulty"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	count = clampCount(count, s.defaultCount)

	pool, err := s.questions.ListByCategoryAndDifficulty(ctx, category, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if pool == nil {
		pool = []*models.Question{}
	}

	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if count < len(pool) {
		pool = pool[:count]
	}
	return pool, nil
}

func (s *QuestionService) Catalog() models.Catalog {
	return models.Catalog{
		Categories:   models.Categories,
		Difficulties: models.Difficulties,
		Durations:    models.Durations,
	}
}

func clampCount(n, def int) int {
	if n <= 0 {
		n = def
	}
	if n < 1 {
		n = 1
	}
	if n > maxQuestionCount {
		n = maxQuestionCount
	}
	return n
}
