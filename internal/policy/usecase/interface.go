// Package usecase exposes the password policy operations to the HTTP and CLI layers.
package usecase

import (
	"context"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

// PasswordPolicy is the generator/scorer consumed by the use cases.
type PasswordPolicy interface {
	Generate(length int, includeSymbols bool) (string, error)
	Score(password string) policyDomain.Report
}

// PolicyUseCase generates passwords and checks their strength.
type PolicyUseCase interface {
	// Generate returns a password of the requested length together with its report.
	Generate(ctx context.Context, length int, includeSymbols bool) (*policyDomain.GeneratedPassword, error)

	// CheckStrength scores password.
	CheckStrength(ctx context.Context, password string) (*policyDomain.Report, error)
}
