package usecase

import (
	"context"
	"time"

	"github.com/allisson/passvault/internal/metrics"
	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

// policyUseCaseWithMetrics decorates PolicyUseCase with metrics instrumentation.
type policyUseCaseWithMetrics struct {
	next    PolicyUseCase
	metrics metrics.BusinessMetrics
}

// NewPolicyUseCaseWithMetrics wraps a PolicyUseCase with metrics recording.
func NewPolicyUseCaseWithMetrics(useCase PolicyUseCase, m metrics.BusinessMetrics) PolicyUseCase {
	return &policyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *policyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, p.metrics, metrics.DomainPolicy, operation, start, err)
}

// Generate records metrics for password generation.
func (p *policyUseCaseWithMetrics) Generate(
	ctx context.Context,
	length int,
	includeSymbols bool,
) (*policyDomain.GeneratedPassword, error) {
	start := time.Now()
	generated, err := p.next.Generate(ctx, length, includeSymbols)
	p.record(ctx, "password_generate", start, err)
	return generated, err
}

// CheckStrength records metrics for strength checks.
func (p *policyUseCaseWithMetrics) CheckStrength(ctx context.Context, password string) (*policyDomain.Report, error) {
	start := time.Now()
	report, err := p.next.CheckStrength(ctx, password)
	p.record(ctx, "strength_check", start, err)
	return report, err
}
