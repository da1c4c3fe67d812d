package app

import (
	"context"
	"fmt"

	"github.com/allisson/passvault/internal/database"
	vaultHTTP "github.com/allisson/passvault/internal/vault/http"
	vaultRepository "github.com/allisson/passvault/internal/vault/repository"
	vaultUseCase "github.com/allisson/passvault/internal/vault/usecase"
)

// RecordRepository returns the credential record repository for DB_DRIVER.
func (c *Container) RecordRepository() (vaultUseCase.RecordRepository, error) {
	c.recordRepoInit.Do(func() {
		repo, err := c.initRecordRepository()
		if err != nil {
			c.setErr("recordRepo", err)
			return
		}
		c.recordRepo = repo
	})
	if err := c.getErr("recordRepo"); err != nil {
		return nil, err
	}
	return c.recordRepo, nil
}

// VaultUseCase returns the owner-scoped record operations, decorated with metrics.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	c.vaultUseCaseInit.Do(func() {
		uc, err := c.initVaultUseCase()
		if err != nil {
			c.setErr("vaultUseCase", err)
			return
		}
		c.vaultUseCase = uc
	})
	if err := c.getErr("vaultUseCase"); err != nil {
		return nil, err
	}
	return c.vaultUseCase, nil
}

// RecordHandler returns the /v1/passwords handlers.
func (c *Container) RecordHandler() (*vaultHTTP.RecordHandler, error) {
	uc, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for record handler: %w", err)
	}
	return vaultHTTP.NewRecordHandler(uc, c.Logger()), nil
}

func (c *Container) initRecordRepository() (vaultUseCase.RecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return vaultRepository.NewMySQLRecordRepository(db), nil
	case database.DriverPostgres:
		return vaultRepository.NewPostgreSQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for vault use case: %w", err)
	}

	recordRepo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for vault use case: %w", err)
	}

	cipher, err := c.CipherService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher service for vault use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	uc := vaultUseCase.NewVaultUseCase(txManager, recordRepo, cipher, c.PasswordPolicy(), nil)
	return vaultUseCase.NewVaultUseCaseWithMetrics(uc, bm), nil
}
