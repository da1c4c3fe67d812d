// Package usecase implements ownership-scoped access to credential records.
package usecase

import (
	"context"

	"github.com/google/uuid"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

// RecordRepository persists credential records. Every read and write is
// filtered by owner; a record of another owner is reported as ErrRecordNotFound.
type RecordRepository interface {
	Create(ctx context.Context, record *vaultDomain.Record) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*vaultDomain.Record, error)
	GetByID(ctx context.Context, ownerID, recordID uuid.UUID) (*vaultDomain.Record, error)
	Update(ctx context.Context, ownerID, recordID uuid.UUID, changes vaultDomain.RecordChanges) error
}

// SecretCipher encrypts and decrypts record secrets.
type SecretCipher interface {
	Encrypt(plaintext string) ([]byte, error)
	Decrypt(ciphertext []byte) (string, error)
}

// StrengthScorer rates a plaintext secret.
type StrengthScorer interface {
	Score(password string) policyDomain.Report
}

// VaultUseCase lists, adds, reads and updates the records of one owner.
type VaultUseCase interface {
	// List returns every record of ownerID ordered by creation time. A record
	// whose secret cannot be decrypted carries Err instead of failing the list.
	List(ctx context.Context, ownerID uuid.UUID) ([]*vaultDomain.RecordView, error)

	// Add encrypts and stores a new record.
	Add(ctx context.Context, ownerID uuid.UUID, input vaultDomain.AddRecordInput) (*vaultDomain.AddRecordOutput, error)

	// Get returns one decrypted record.
	Get(ctx context.Context, ownerID, recordID uuid.UUID) (*vaultDomain.RecordView, error)

	// Update applies the non-nil slots of patch atomically with the ownership check.
	Update(ctx context.Context, ownerID, recordID uuid.UUID, patch vaultDomain.RecordPatch) error
}
