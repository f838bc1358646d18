package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"placement-panic/internal/cache"
	"placement-panic/internal/middleware"
	"placement-panic/internal/models"
	"placement-panic/internal/repository"
)

func newTestAuthService() (*AuthService, *cache.MemoryStore, *fakeQueue) {
	tokens := cache.NewMemoryStore()
	queue := &fakeQueue{}
	users := repository.NewMemoryStore().Repositories().Users
	return NewAuthService(users, tokens, middleware.NewJWTAuth("test-secret"), queue), tokens, queue
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	tests := []struct {
		name   string
		req    models.SignupRequest
		fields []string
	}{
		{"bad email", models.SignupRequest{Email: "not-an-email", Password: "secret1", Name: "Asha"}, []string{"email"}},
		{"short password", models.SignupRequest{Email: "a@example.com", Password: "12345", Name: "Asha"}, []string{"password"}},
		{"short name", models.SignupRequest{Email: "a@example.com", Password: "secret1", Name: "A"}, []string{"name"}},
		{"everything wrong", models.SignupRequest{}, []string{"email", "password", "name"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tc.fields) {
				t.Errorf("expected %d field errors, got %v", len(tc.fields), verr.Fields)
			}
			for _, f := range tc.fields {
				if verr.Fields[f] == "" {
					t.Errorf("expected error for field %q", f)
				}
			}
		})
	}
}

func TestSignup_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, tokens, queue := newTestAuthService()

	college := "  IIT Madras "
	resp, err := svc.Signup(ctx, models.SignupRequest{
		Email:    " Priya@Example.com ",
		Password: "secret1",
		Name:     "Priya",
		College:  &college,
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if resp.User.Email != "priya@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.User.College == nil || *resp.User.College != "IIT Madras" {
		t.Errorf("expected trimmed college, got %v", resp.User.College)
	}
	if resp.User.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected tokens to be issued")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("expected expires_in 900, got %d", resp.ExpiresIn)
	}

	if stored, err := tokens.Get(ctx, cache.RefreshKey(resp.RefreshToken)); err != nil || stored != resp.User.ID.String() {
		t.Errorf("expected refresh token stored for user, got %q (%v)", stored, err)
	}

	if len(queue.jobs) != 1 || queue.jobs[0].Type != models.JobWelcomeEmail || queue.jobs[0].UserID != resp.User.ID {
		t.Errorf("expected one welcome email job, got %+v", queue.jobs)
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "PRIYA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("expected same user, got %s", login.User.ID)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	req := models.SignupRequest{Email: "dup@example.com", Password: "secret1", Name: "Dup"}
	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("first Signup: %v", err)
	}

	_, err := svc.Signup(ctx, req)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	if _, err := svc.Signup(ctx, models.SignupRequest{Email: "k@example.com", Password: "secret1", Name: "Kiran"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	for _, req := range []models.LoginRequest{
		{Email: "k@example.com", Password: "wrong-pass"},
		{Email: "unknown@example.com", Password: "secret1"},
	} {
		_, err := svc.Login(ctx, req)
		var uerr *UnauthorizedError
		if !errors.As(err, &uerr) {
			t.Fatalf("expected UnauthorizedError for %s, got %v", req.Email, err)
		}
		if uerr.Message != "Invalid email or password" {
			t.Errorf("unexpected message %q", uerr.Message)
		}
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	svc, tokens, _ := newTestAuthService()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "r@example.com", Password: "secret1", Name: "Rohan"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("expected a new refresh token")
	}
	if _, err := tokens.Get(ctx, cache.RefreshKey(resp.RefreshToken)); !errors.Is(err, cache.ErrMiss) {
		t.Error("expected old refresh token to be deleted")
	}

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	var uerr *UnauthorizedError
	if !errors.As(err, &uerr) {
		t.Errorf("expected reused token to be rejected, got %v", err)
	}

	_, err = svc.Refresh(ctx, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for empty token, got %v", err)
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "l@example.com", Password: "secret1", Name: "Lata"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := svc.Logout(ctx, resp.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	var uerr *UnauthorizedError
	if !errors.As(err, &uerr) {
		t.Errorf("expected UnauthorizedError after logout, got %v", err)
	}
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "m@example.com", Password: "secret1", Name: "Meena"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	user, err := svc.Me(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Name != "Meena" {
		t.Errorf("expected Meena, got %q", user.Name)
	}

	_, err = svc.Me(ctx, uuid.New())
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestSignup_QueueFailureDoesNotFailSignup(t *testing.T) {
	svc, _, queue := newTestAuthService()
	queue.err = errors.New("redis down")

	if _, err := svc.Signup(context.Background(), models.SignupRequest{Email: "q@example.com", Password: "secret1", Name: "Qadir"}); err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}
}
