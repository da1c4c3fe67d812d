// Package service issues and verifies session tokens.
package service

import (
	"github.com/google/uuid"

	authDomain "github.com/allisson/passvault/internal/auth/domain"
)

// SessionService creates and validates signed session tokens.
type SessionService interface {
	// Issue signs a token whose subject is userID.
	Issue(userID uuid.UUID) (*authDomain.Session, error)

	// Verify returns the user id carried by a valid token, or ErrInvalidToken.
	Verify(token string) (uuid.UUID, error)
}
