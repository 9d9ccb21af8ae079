package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	domain "userhub/backend/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// ErrWeakPassword is returned when a password fails the strength rule.
var ErrWeakPassword = fmt.Errorf(
	"password must contain %d characters minimum and have at least one uppercase letter and one special symbol",
	minPasswordLength,
)

// Service provides user management use cases.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a user service around the provided repository.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// CreateInput defines the payload to create a new user.
type CreateInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateInput defines the payload to update a user. Nil fields are left
// untouched.
type UpdateInput struct {
	Email    *string
	Name     *string
	Password *string
}

// List returns all users, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Get retrieves a single user by its identifier.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Create persists a new user with the provided details.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the persisted user.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.User, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing.ID != id {
				return nil, domain.ErrEmailExists
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("name is required")
		}
		user.Name = name
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	user.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the target user.
func (s *Service) Delete(ctx context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// normalizeID trims the identifier and enforces the UUID format. A
// malformed id cannot exist in the store, so it reports ErrNotFound before
// any query is issued; the users.id column is typed UUID and would reject
// the value anyway.
func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("user id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !special {
		return ErrWeakPassword
	}
	return nil
}
