package app

import (
	"context"
	"fmt"

	authService "github.com/allisson/passvault/internal/auth/service"
	"github.com/allisson/passvault/internal/config"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	cryptoService "github.com/allisson/passvault/internal/crypto/service"
)

// KMSKeeper returns the keeper wrapping the key file, or nil when KMS_KEY_URI
// is empty.
func (c *Container) KMSKeeper(ctx context.Context) (cryptoDomain.KMSKeeper, error) {
	c.kmsKeeperInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}
		keeper, err := cryptoService.OpenKMSKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			c.setErr("kmsKeeper", err)
			return
		}
		c.kmsKeeper = keeper
	})
	if err := c.getErr("kmsKeeper"); err != nil {
		return nil, err
	}
	return c.kmsKeeper, nil
}

// KeyProvider returns the backend selected by KEY_PROVIDER.
func (c *Container) KeyProvider(ctx context.Context) (cryptoService.KeyProvider, error) {
	c.keyProviderInit.Do(func() {
		provider, err := c.initKeyProvider(ctx)
		if err != nil {
			c.setErr("keyProvider", err)
			return
		}
		c.keyProvider = provider
	})
	if err := c.getErr("keyProvider"); err != nil {
		return nil, err
	}
	return c.keyProvider, nil
}

// VaultKey loads the vault key, creating it on first start.
func (c *Container) VaultKey(ctx context.Context) (*cryptoDomain.VaultKey, error) {
	c.vaultKeyInit.Do(func() {
		provider, err := c.KeyProvider(ctx)
		if err != nil {
			c.setErr("vaultKey", err)
			return
		}
		key, err := provider.LoadOrCreate(ctx)
		if err != nil {
			c.setErr("vaultKey", err)
			return
		}
		c.vaultKey = key
	})
	if err := c.getErr("vaultKey"); err != nil {
		return nil, err
	}
	return c.vaultKey, nil
}

// CipherService returns the secret cipher for CIPHER_ALGORITHM.
func (c *Container) CipherService(ctx context.Context) (*cryptoService.CipherService, error) {
	c.cipherServiceInit.Do(func() {
		svc, err := c.initCipherService(ctx)
		if err != nil {
			c.setErr("cipherService", err)
			return
		}
		c.cipherService = svc
	})
	if err := c.getErr("cipherService"); err != nil {
		return nil, err
	}
	return c.cipherService, nil
}

// SessionService returns the session token issuer and verifier.
func (c *Container) SessionService(ctx context.Context) (authService.SessionService, error) {
	c.sessionSvcInit.Do(func() {
		key, err := c.VaultKey(ctx)
		if err != nil {
			c.setErr("sessionService", fmt.Errorf("failed to get vault key for session service: %w", err))
			return
		}
		svc, err := authService.NewSessionService(key, c.config.AuthTokenExpiration)
		if err != nil {
			c.setErr("sessionService", err)
			return
		}
		c.sessionSvc = svc
	})
	if err := c.getErr("sessionService"); err != nil {
		return nil, err
	}
	return c.sessionSvc, nil
}

func (c *Container) initKeyProvider(ctx context.Context) (cryptoService.KeyProvider, error) {
	switch c.config.KeyProvider {
	case config.KeyProviderFile:
		keeper, err := c.KMSKeeper(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get kms keeper for key provider: %w", err)
		}
		return cryptoService.NewFileKeyProvider(c.config.KeyFilePath, keeper), nil
	case config.KeyProviderKeyring:
		return cryptoService.NewKeyringKeyProvider(c.config.KeyKeyringService, c.config.KeyKeyringAccount), nil
	default:
		return nil, fmt.Errorf("%w: unsupported key provider %q",
			cryptoDomain.ErrKeyProviderFailure, c.config.KeyProvider)
	}
}

func (c *Container) initCipherService(ctx context.Context) (*cryptoService.CipherService, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.CipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid CIPHER_ALGORITHM %q: %w", c.config.CipherAlgorithm, err)
	}

	key, err := c.VaultKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault key for cipher service: %w", err)
	}

	return cryptoService.NewCipherService(key, alg, cryptoService.NewAEADManager())
}
