// Package http provides the session middleware and request-context helpers.
package http

import (
	"context"

	"github.com/google/uuid"
)

// ownerIDKey is a context key type for storing the authenticated owner id.
type ownerIDKey struct{}

// WithOwnerID stores the authenticated user id in the context.
func WithOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerIDKey{}, ownerID)
}

// GetOwnerID retrieves the authenticated user id from the context.
func GetOwnerID(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(ownerIDKey{}).(uuid.UUID)
	return ownerID, ok && ownerID != uuid.Nil
}
