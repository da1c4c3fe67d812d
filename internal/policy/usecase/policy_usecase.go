package usecase

import (
	"context"
	"fmt"

	apperrors "github.com/allisson/passvault/internal/errors"
	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

type policyUseCase struct {
	policy PasswordPolicy
}

// NewPolicyUseCase creates a PolicyUseCase backed by policy.
func NewPolicyUseCase(policy PasswordPolicy) PolicyUseCase {
	return &policyUseCase{policy: policy}
}

func (p *policyUseCase) Generate(
	_ context.Context,
	length int,
	includeSymbols bool,
) (*policyDomain.GeneratedPassword, error) {
	password, err := p.policy.Generate(length, includeSymbols)
	if err != nil {
		return nil, err
	}
	return &policyDomain.GeneratedPassword{
		Password: password,
		Report:   p.policy.Score(password),
	}, nil
}

func (p *policyUseCase) CheckStrength(_ context.Context, password string) (*policyDomain.Report, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	report := p.policy.Score(password)
	return &report, nil
}
