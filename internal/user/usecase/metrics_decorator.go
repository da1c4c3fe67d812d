package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/metrics"
	userDomain "github.com/allisson/passvault/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, u.metrics, metrics.DomainAuth, operation, start, err)
}

// Register records metrics for user registration.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input userDomain.RegisterUserInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "user_register", start, err)
	return user, err
}

// Login records metrics for login attempts.
func (u *userUseCaseWithMetrics) Login(ctx context.Context, input userDomain.LoginInput) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Login(ctx, input)
	u.record(ctx, "user_login", start, err)
	return user, err
}

// GetUserByID records metrics for user lookups.
func (u *userUseCaseWithMetrics) GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByID(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}
