package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/metrics"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, v.metrics, metrics.DomainVault, operation, start, err)
}

// List records metrics for record listing.
func (v *vaultUseCaseWithMetrics) List(ctx context.Context, ownerID uuid.UUID) ([]*vaultDomain.RecordView, error) {
	start := time.Now()
	views, err := v.next.List(ctx, ownerID)
	v.record(ctx, "record_list", start, err)
	return views, err
}

// Add records metrics for record creation.
func (v *vaultUseCaseWithMetrics) Add(
	ctx context.Context,
	ownerID uuid.UUID,
	input vaultDomain.AddRecordInput,
) (*vaultDomain.AddRecordOutput, error) {
	start := time.Now()
	output, err := v.next.Add(ctx, ownerID, input)
	v.record(ctx, "record_add", start, err)
	return output, err
}

// Get records metrics for single record reads.
func (v *vaultUseCaseWithMetrics) Get(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
) (*vaultDomain.RecordView, error) {
	start := time.Now()
	view, err := v.next.Get(ctx, ownerID, recordID)
	v.record(ctx, "record_get", start, err)
	return view, err
}

// Update records metrics for record updates.
func (v *vaultUseCaseWithMetrics) Update(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
	patch vaultDomain.RecordPatch,
) error {
	start := time.Now()
	err := v.next.Update(ctx, ownerID, recordID, patch)
	v.record(ctx, "record_update", start, err)
	return err
}
