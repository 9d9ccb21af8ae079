package auth

import (
	"context"
	"errors"
	"strings"

	domain "userhub/backend/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// Service verifies credentials and exchanges them for access tokens.
type Service struct {
	users  domain.Repository
	tokens TokenManager
}

// NewService constructs an auth service.
func NewService(users domain.Repository, tokens TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// SignIn validates the supplied credentials and returns a signed access
// token. A missing account and a wrong password produce the identical
// ErrInvalidCredentials; any other repository error propagates unmodified.
func (s *Service) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	password := creds.Password
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Generate(Identity{Subject: account.ID, Email: account.Email})
}
