package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/taskvault/api/internal/domain"
	"github.com/taskvault/api/internal/repository"
	"github.com/taskvault/api/internal/validation"
	"github.com/taskvault/api/pkg/crypto"
	jwtpkg "github.com/taskvault/api/pkg/jwt"
)

type userRepoStub struct {
	byEmail   map[string]*domain.User
	created   []*domain.User
	createErr error
}

func (s *userRepoStub) CreateUser(_ context.Context, user *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, user)
	return nil
}

func (s *userRepoStub) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *userRepoStub) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTokenService() jwtpkg.Service {
	return jwtpkg.NewService(jwtpkg.Config{
		Secret:   "test-secret",
		Issuer:   "taskvault",
		Audience: "taskvault-api",
		TTL:      time.Hour,
	})
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := New(&userRepoStub{}, newTokenService(), newLogger())

	_, err := svc.Register(context.Background(), "", "not-an-email", "short")
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"userName", "email", "password"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected field error for %q, got %v", field, verr.Fields)
		}
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repo := &userRepoStub{}
	svc := New(repo, newTokenService(), newLogger())

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "password-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
	if err := crypto.ComparePassword(repo.created[0].PasswordHash, "password-1"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmailIsValidationError(t *testing.T) {
	repo := &userRepoStub{createErr: repository.ErrConflict}
	svc := New(repo, newTokenService(), newLogger())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "password-1")
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Fatalf("expected email field error, got %v", verr.Fields)
	}
}

func TestLoginFailureModesAreIndistinguishable(t *testing.T) {
	hash, err := crypto.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &userRepoStub{byEmail: map[string]*domain.User{
		"alice@example.com": {ID: "user-1", Username: "alice", Email: "alice@example.com", PasswordHash: hash},
	}}
	svc := New(repo, newTokenService(), newLogger())

	_, wrongPassword := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "whatever")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}

func TestLoginIssuesResolvableToken(t *testing.T) {
	hash, err := crypto.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &userRepoStub{byEmail: map[string]*domain.User{
		"alice@example.com": {ID: "user-1", Username: "alice", Email: "alice@example.com", PasswordHash: hash},
	}}
	svc := New(repo, newTokenService(), newLogger())

	token, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	subject, err := svc.Authorize(token)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

func TestAuthorizeRejectsMissingSubject(t *testing.T) {
	tokens := newTokenService()
	svc := New(&userRepoStub{}, tokens, newLogger())

	token, err := tokens.Issue("", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Authorize(token); !errors.Is(err, jwtpkg.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthorizeRejectsEmptyToken(t *testing.T) {
	svc := New(&userRepoStub{}, newTokenService(), newLogger())
	if _, err := svc.Authorize("  "); !errors.Is(err, jwtpkg.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
