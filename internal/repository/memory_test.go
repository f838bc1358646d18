package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"placement-panic/internal/models"
)

func TestMemoryUserRepo_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	user := &models.User{Email: "asha@example.com", PasswordHash: "hash", Name: "Asha"}
	if err := repos.Users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected Create to assign an id")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected Create to set created_at")
	}

	byID, err := repos.Users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("expected email %q, got %q", user.Email, byID.Email)
	}

	byEmail, err := repos.Users.GetByEmail(ctx, "ASHA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected id %s, got %s", user.ID, byEmail.ID)
	}
}

func TestMemoryUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	if err := repos.Users.Create(ctx, &models.User{Email: "dup@example.com", Name: "One"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repos.Users.Create(ctx, &models.User{Email: "Dup@Example.com", Name: "Two"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryUserRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	if _, err := repos.Users.GetByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repos.Users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByEmail: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryQuestionRepo_FiltersByPair(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	questions := []models.Question{
		{Text: "q1", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
		{Text: "q2", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
		{Text: "q3", Category: models.CategoryDSA, Difficulty: models.DifficultyHard},
		{Text: "q4", Category: models.CategoryJava, Difficulty: models.DifficultyEasy},
	}
	for i := range questions {
		if err := repos.Questions.Create(ctx, &questions[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repos.Questions.ListByCategoryAndDifficulty(ctx, models.CategoryDSA, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	for _, q := range got {
		if q.Category != models.CategoryDSA || q.Difficulty != models.DifficultyEasy {
			t.Errorf("unexpected question %+v", q)
		}
	}

	none, err := repos.Questions.ListByCategoryAndDifficulty(ctx, models.CategoryHR, models.DifficultyHard)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}

	n, err := repos.Questions.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 4 {
		t.Errorf("expected count 4, got %d", n)
	}
}

func TestMemoryInterviewRepo_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	owner := uuid.New()
	other := uuid.New()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{base.Add(time.Hour), base, base.Add(2 * time.Hour)} {
		iv := &models.Interview{
			UserID:            owner,
			Category:          models.CategoryDSA,
			Difficulty:        models.DifficultyEasy,
			Duration:          10,
			QuestionsAnswered: 3,
			TotalQuestions:    5,
			AverageRating:     i + 1,
			CompletedAt:       at,
		}
		if err := repos.Interviews.Create(ctx, iv); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repos.Interviews.Create(ctx, &models.Interview{UserID: other, AverageRating: 5, TotalQuestions: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repos.Interviews.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 interviews, got %d", len(list))
	}
	// Fixture times are base+1h, base, base+2h for ratings 1, 2, 3.
	wantRatings := []int{3, 1, 2}
	for i, iv := range list {
		if iv.AverageRating != wantRatings[i] {
			t.Errorf("position %d: expected rating %d, got %d", i, wantRatings[i], iv.AverageRating)
		}
		if iv.UserID != owner {
			t.Errorf("position %d: interview belongs to %s", i, iv.UserID)
		}
	}

	empty, err := repos.Interviews.ListByUser(ctx, uuid.New())
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestMemoryInterviewRepo_EqualTimesOrderedByID(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()
	owner := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		iv := &models.Interview{UserID: owner, AverageRating: 3, TotalQuestions: 5, CompletedAt: at}
		if err := repos.Interviews.Create(ctx, iv); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	first, err := repos.Interviews.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	for i := 1; i < len(first); i++ {
		if bytes.Compare(first[i-1].ID[:], first[i].ID[:]) <= 0 {
			t.Fatalf("position %d: expected descending IDs for equal timestamps", i)
		}
	}

	for round := 0; round < 5; round++ {
		again, err := repos.Interviews.ListByUser(ctx, owner)
		if err != nil {
			t.Fatalf("ListByUser: %v", err)
		}
		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("round %d: order changed at position %d", round, i)
			}
		}
	}
}

func TestMemoryInterviewRepo_CountByUser(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()
	owner := uuid.New()

	for i := 0; i < 3; i++ {
		repos.Interviews.Create(ctx, &models.Interview{UserID: owner, AverageRating: 3, TotalQuestions: 5})
	}
	repos.Interviews.Create(ctx, &models.Interview{UserID: uuid.New(), AverageRating: 3, TotalQuestions: 5})

	tests := []struct {
		name   string
		userID uuid.UUID
		want   int
	}{
		{"owner", owner, 3},
		{"unknown user", uuid.New(), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := repos.Interviews.CountByUser(ctx, tc.userID)
			if err != nil {
				t.Fatalf("CountByUser: %v", err)
			}
			if n != tc.want {
				t.Errorf("expected %d, got %d", tc.want, n)
			}
		})
	}
}

func TestMemoryInterviewRepo_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	iv := &models.Interview{UserID: uuid.New(), AverageRating: 3, TotalQuestions: 5}
	if err := repos.Interviews.Create(ctx, iv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if iv.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if iv.CompletedAt.IsZero() {
		t.Error("expected completed_at to be set")
	}
	if iv.Ratings == nil {
		t.Error("expected ratings to default to an empty slice")
	}
}

func TestMemoryInterviewRepo_StoredCopyIsIsolated(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	iv := &models.Interview{UserID: uuid.New(), AverageRating: 4, TotalQuestions: 3, Ratings: []int{4, 4, 5}}
	if err := repos.Interviews.Create(ctx, iv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	iv.Ratings[0] = 1
	iv.AverageRating = 1

	got, err := repos.Interviews.GetByID(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AverageRating != 4 || got.Ratings[0] != 4 {
		t.Errorf("stored interview was mutated through caller pointer: %+v", got)
	}

	got.Ratings[1] = 1
	again, _ := repos.Interviews.GetByID(ctx, iv.ID)
	if again.Ratings[1] != 4 {
		t.Error("stored interview was mutated through returned pointer")
	}

	if _, err := repos.Interviews.GetByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
