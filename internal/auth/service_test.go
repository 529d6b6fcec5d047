package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketly/internal/shared/config"
	"ticketly/internal/users"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	byEmail map[string]*users.User
	byID    map[uuid.UUID]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*users.User),
		byID:    make(map[uuid.UUID]*users.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *users.User) error {
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	if user, ok := r.byID[id]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
	return NewService(repo, cfg, logger.New()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	resp, err := service.Register(ctx, RegisterRequest{
		Name:     "Asha Rao",
		Email:    "Asha@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
	if resp.User.Role != users.RoleUser {
		t.Errorf("role = %q, want USER", resp.User.Role)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("token pair is incomplete")
	}

	login, err := service.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login user id = %v, want %v", login.User.ID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	req := RegisterRequest{Name: "A", Email: "dup@example.com", Password: "password123"}
	if _, err := service.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := service.Register(ctx, req); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("second register = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterRequest{Name: "A", Email: "a@example.com", Password: "password123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshTokens(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	resp, err := service.Register(ctx, RegisterRequest{Name: "A", Email: "r@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := service.RefreshTokens(ctx, resp.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("refreshed token pair is incomplete")
	}

	// Access tokens must not work as refresh tokens
	if _, err := service.RefreshTokens(ctx, resp.Tokens.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh with access token = %v, want ErrInvalidToken", err)
	}

	if _, err := service.RefreshTokens(ctx, "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token = %v, want ErrInvalidToken", err)
	}
}
