// Package mocks provides mock implementations of the policy use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

// MockPolicyUseCase is a mock implementation of PolicyUseCase.
type MockPolicyUseCase struct {
	mock.Mock
}

// Generate mocks the Generate method of PolicyUseCase.
func (m *MockPolicyUseCase) Generate(
	ctx context.Context,
	length int,
	includeSymbols bool,
) (*policyDomain.GeneratedPassword, error) {
	args := m.Called(ctx, length, includeSymbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.GeneratedPassword), args.Error(1)
}

// CheckStrength mocks the CheckStrength method of PolicyUseCase.
func (m *MockPolicyUseCase) CheckStrength(ctx context.Context, password string) (*policyDomain.Report, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policyDomain.Report), args.Error(1)
}
