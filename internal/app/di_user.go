package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/passvault/internal/auth/http"
	"github.com/allisson/passvault/internal/database"
	userHTTP "github.com/allisson/passvault/internal/user/http"
	userRepository "github.com/allisson/passvault/internal/user/repository"
	userService "github.com/allisson/passvault/internal/user/service"
	userUseCase "github.com/allisson/passvault/internal/user/usecase"
)

// UserRepository returns the user repository for DB_DRIVER.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		repo, err := c.initUserRepository()
		if err != nil {
			c.setErr("userRepo", err)
			return
		}
		c.userRepo = repo
	})
	if err := c.getErr("userRepo"); err != nil {
		return nil, err
	}
	return c.userRepo, nil
}

// PasswordHasher returns the Argon2id hasher for account passwords.
func (c *Container) PasswordHasher() (userService.PasswordHasher, error) {
	c.passwordHasherInit.Do(func() {
		hasher, err := userService.NewPasswordHasher()
		if err != nil {
			c.setErr("passwordHasher", err)
			return
		}
		c.passwordHasher = hasher
	})
	if err := c.getErr("passwordHasher"); err != nil {
		return nil, err
	}
	return c.passwordHasher, nil
}

// UserUseCase returns registration and login, decorated with metrics.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		uc, err := c.initUserUseCase()
		if err != nil {
			c.setErr("userUseCase", err)
			return
		}
		c.userUseCase = uc
	})
	if err := c.getErr("userUseCase"); err != nil {
		return nil, err
	}
	return c.userUseCase, nil
}

// UserHandler returns the register and login handlers.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	uc, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}

	sessions, err := c.SessionService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for user handler: %w", err)
	}

	return userHTTP.NewUserHandler(uc, sessions, c.Logger()), nil
}

// AuthenticationMiddleware returns the bearer session middleware guarding the
// vault routes.
func (c *Container) AuthenticationMiddleware() (gin.HandlerFunc, error) {
	sessions, err := c.SessionService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for auth middleware: %w", err)
	}

	uc, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for auth middleware: %w", err)
	}

	return authHTTP.AuthenticationMiddleware(sessions, uc, c.Logger()), nil
}

func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return userRepository.NewMySQLUserRepository(db), nil
	case database.DriverPostgres:
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for user use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	uc, err := userUseCase.NewUserUseCase(txManager, userRepo, hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to create user use case: %w", err)
	}

	return userUseCase.NewUserUseCaseWithMetrics(uc, bm), nil
}
