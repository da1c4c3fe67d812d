// Package service provides the password hashing used for user accounts.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/passvault/internal/errors"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns a PHC-formatted hash with a fresh random salt.
	Hash(password string) (string, error)

	// Compare reports whether password matches hash. Malformed hashes never match.
	Compare(password, hash string) bool
}

type argon2Hasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates an Argon2id hasher with the interactive policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &argon2Hasher{hasher: hasher}, nil
}

func (a *argon2Hasher) Hash(password string) (string, error) {
	hash, err := a.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Compare is constant-time with respect to the stored hash.
func (a *argon2Hasher) Compare(password, hash string) bool {
	ok, err := a.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}
