// Package mocks provides testify mocks for the vault use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of usecase.VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

func (m *MockVaultUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*vaultDomain.RecordView, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.RecordView), args.Error(1)
}

func (m *MockVaultUseCase) Add(
	ctx context.Context,
	ownerID uuid.UUID,
	input vaultDomain.AddRecordInput,
) (*vaultDomain.AddRecordOutput, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.AddRecordOutput), args.Error(1)
}

func (m *MockVaultUseCase) Get(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
) (*vaultDomain.RecordView, error) {
	args := m.Called(ctx, ownerID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.RecordView), args.Error(1)
}

func (m *MockVaultUseCase) Update(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
	patch vaultDomain.RecordPatch,
) error {
	args := m.Called(ctx, ownerID, recordID, patch)
	return args.Error(0)
}
