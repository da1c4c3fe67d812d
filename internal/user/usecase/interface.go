// Package usecase implements registration and login for vault users.
package usecase

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/allisson/passvault/internal/user/domain"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	// Create inserts user. Returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *userDomain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	// Register creates a new user with a salted hash of the password.
	Register(ctx context.Context, input userDomain.RegisterUserInput) (*userDomain.User, error)

	// Login verifies credentials. Unknown usernames and wrong passwords both
	// return ErrInvalidCredentials.
	Login(ctx context.Context, input userDomain.LoginInput) (*userDomain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}
