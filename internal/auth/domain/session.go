// Package domain defines session types and authentication errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/errors"
)

// SessionIssuer is the value placed in the iss claim of every session token.
const SessionIssuer = "passvault"

// Session is a signed token identifying the owner of subsequent vault requests.
type Session struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// Authentication errors.
var (
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens alike.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrMissingToken indicates the Authorization header is absent or malformed.
	ErrMissingToken = errors.Wrap(errors.ErrUnauthorized, "missing bearer token")
)
