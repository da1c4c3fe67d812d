package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
	userDomain "github.com/allisson/passvault/internal/user/domain"
	userService "github.com/allisson/passvault/internal/user/service"
	appValidation "github.com/allisson/passvault/internal/validation"
)

// dummyPassword is hashed once at construction; logins for unknown usernames
// are verified against that hash so both failure paths cost the same.
const dummyPassword = "passvault-timing-equalizer"

// UserUseCase handles registration and login.
type UserUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher userService.PasswordHasher
	dummyHash      string
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordHasher userService.PasswordHasher,
) (UseCase, error) {
	dummyHash, err := passwordHasher.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}

	return &UserUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		dummyHash:      dummyHash,
	}, nil
}

func validateCredentials(username, password string) error {
	err := validation.Errors{
		"username": validation.Validate(username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.MaxRunes(255),
		),
		"password": validation.Validate(password,
			validation.Required.Error("password is required"),
			appValidation.MaxRunes(128),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// Register creates a new user.
func (uc *UserUseCase) Register(
	ctx context.Context,
	input userDomain.RegisterUserInput,
) (*userDomain.User, error) {
	username := strings.TrimSpace(input.Username)
	if err := validateCredentials(username, input.Password); err != nil {
		return nil, err
	}

	hash, err := uc.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies username and password.
func (uc *UserUseCase) Login(ctx context.Context, input userDomain.LoginInput) (*userDomain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, userDomain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			uc.passwordHasher.Compare(input.Password, uc.dummyHash)
			return nil, userDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.passwordHasher.Compare(input.Password, user.PasswordHash) {
		return nil, userDomain.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
