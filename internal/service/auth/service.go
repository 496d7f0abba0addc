package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/domain"
	"github.com/taskvault/api/internal/repository"
	"github.com/taskvault/api/internal/validation"
	"github.com/taskvault/api/pkg/crypto"
	jwtpkg "github.com/taskvault/api/pkg/jwt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// Callers must not distinguish the two in responses.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

const minPasswordLength = 8

// Service handles registration, login and bearer-token authorization.
type Service struct {
	users  repository.UserRepository
	tokens jwtpkg.Service
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, tokens jwtpkg.Service, logger *slog.Logger) Service {
	return Service{users: users, tokens: tokens, logger: logger}
}

// Register creates a new identity. Input problems and duplicate emails are
// reported as validation errors.
func (s Service) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	verr := validation.NewError()
	if username == "" {
		verr.Add("userName", "is required")
	}
	if email == "" {
		verr.Add("email", "is required")
	} else if !strings.Contains(email, "@") {
		verr.Add("email", "is not a valid address")
	}
	if len(password) < minPasswordLength {
		verr.Add("password", "must be at least 8 characters")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			verr.Add("email", "is already registered")
			return nil, verr
		}
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password collapse into the same error.
func (s Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("login failed", "reason", "unknown email")
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Warn("login failed", "reason", "password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Authorize validates a bearer token and resolves the subject identifier it
// carries. A token without a subject claim is treated as invalid. Each
// attempt is logged with its failure subtype; the caller surfaces every
// failure as the same unauthorized response.
func (s Service) Authorize(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		s.logger.Warn("token validation failed", "reason", "empty token")
		return "", jwtpkg.ErrInvalidToken
	}
	claims, err := s.tokens.Parse(trimmed)
	if err != nil {
		s.logger.Warn("token validation failed", "reason", err)
		return "", err
	}
	subject := claims.SubjectID()
	if subject == "" {
		s.logger.Warn("token validation failed", "reason", "missing subject claim")
		return "", jwtpkg.ErrInvalidToken
	}
	s.logger.Debug("token validated", "user_id", subject)
	return subject, nil
}
