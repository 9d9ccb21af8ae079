package user

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. Unknown email and
	// wrong password both collapse into this error so callers cannot
	// distinguish the two.
	ErrInvalidCredentials = errors.New("provided login data is incorrect")
	// ErrEmailExists signals that another user already owns the email.
	ErrEmailExists = errors.New("email already registered")
	// ErrNotFound indicates a missing user.
	ErrNotFound = errors.New("user not found")
)

// User models the account entity persisted in storage.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}
