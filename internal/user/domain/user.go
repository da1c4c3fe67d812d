// Package domain defines the user entity and the authentication errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/errors"
)

// User is an account that owns credential records.
type User struct {
	ID       uuid.UUID
	Username string
	// PasswordHash is a PHC-formatted Argon2id hash embedding its own salt and cost.
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Username string
	Password string
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameTaken indicates a user with the same username already exists.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrInvalidCredentials is returned for both an unknown username and a wrong
	// password so callers cannot tell which usernames exist.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
