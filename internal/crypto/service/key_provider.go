package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/zalando/go-keyring"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// generateKey returns KeySize bytes from crypto/rand.
func generateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

func keyProviderError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", cryptoDomain.ErrKeyProviderFailure, msg)
	}
	return fmt.Errorf("%w: %s: %w", cryptoDomain.ErrKeyProviderFailure, msg, err)
}

// FileKeyProvider persists the vault key as a base64 file. When a keeper is
// configured the file holds the KMS ciphertext of the key instead of the key.
type FileKeyProvider struct {
	path   string
	keeper cryptoDomain.KMSKeeper
}

// NewFileKeyProvider creates a provider for path. keeper may be nil.
func NewFileKeyProvider(path string, keeper cryptoDomain.KMSKeeper) *FileKeyProvider {
	return &FileKeyProvider{path: path, keeper: keeper}
}

// Exists reports whether the key file is present.
func (p *FileKeyProvider) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(p.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, keyProviderError("failed to stat key file", err)
}

// LoadOrCreate reads the key file, or generates a key and writes the file with
// 0600 permissions before returning it. When several processes race, the
// first published file wins and the others load it.
func (p *FileKeyProvider) LoadOrCreate(ctx context.Context) (*cryptoDomain.VaultKey, error) {
	content, err := os.ReadFile(p.path)
	if err == nil {
		return p.decode(ctx, content)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, keyProviderError("failed to read key file", err)
	}

	key, err := generateKey()
	if err != nil {
		return nil, keyProviderError("failed to create key", err)
	}
	defer memguard.WipeBytes(key)

	stored := key
	if p.keeper != nil {
		stored, err = p.keeper.Encrypt(ctx, key)
		if err != nil {
			return nil, keyProviderError("failed to wrap key with KMS", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return nil, keyProviderError("failed to create key directory", err)
	}

	if err := publishKeyFile(p.path, []byte(base64.StdEncoding.EncodeToString(stored))); err != nil {
		if !errors.Is(err, os.ErrExist) {
			return nil, keyProviderError("failed to write key file", err)
		}
		// Another process published its key first; that file is complete.
		content, err := os.ReadFile(p.path)
		if err != nil {
			return nil, keyProviderError("failed to read key file", err)
		}
		return p.decode(ctx, content)
	}

	return cryptoDomain.NewVaultKey(key)
}

// publishKeyFile writes content to a private temp file next to path and
// hard-links it into place, so path never exists half-written. It returns an
// error matching os.ErrExist when path is already present.
func publishKeyFile(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Link(tmp.Name(), path)
}

func (p *FileKeyProvider) decode(ctx context.Context, content []byte) (*cryptoDomain.VaultKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(content)))
	if err != nil {
		return nil, keyProviderError("key file is not valid base64", err)
	}

	if p.keeper != nil {
		unwrapped, err := p.keeper.Decrypt(ctx, raw)
		if err != nil {
			return nil, keyProviderError("failed to unwrap key with KMS", err)
		}
		raw = unwrapped
	}

	if len(raw) != cryptoDomain.KeySize {
		memguard.WipeBytes(raw)
		return nil, keyProviderError("key file has invalid key size", nil)
	}
	return cryptoDomain.NewVaultKey(raw)
}

// KeyringKeyProvider stores the vault key in the OS keyring
// (Keychain, Secret Service or Windows Credential Manager).
type KeyringKeyProvider struct {
	service string
	account string
}

// NewKeyringKeyProvider creates a provider for the given keyring entry.
func NewKeyringKeyProvider(service, account string) *KeyringKeyProvider {
	return &KeyringKeyProvider{service: service, account: account}
}

// Exists reports whether the keyring entry is present.
func (p *KeyringKeyProvider) Exists(_ context.Context) (bool, error) {
	_, err := keyring.Get(p.service, p.account)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	return false, keyProviderError("failed to read keyring", err)
}

// LoadOrCreate reads the keyring entry, creating it when absent.
func (p *KeyringKeyProvider) LoadOrCreate(_ context.Context) (*cryptoDomain.VaultKey, error) {
	encoded, err := keyring.Get(p.service, p.account)
	if err == nil {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, keyProviderError("keyring entry is not valid base64", err)
		}
		if len(raw) != cryptoDomain.KeySize {
			memguard.WipeBytes(raw)
			return nil, keyProviderError("keyring entry has invalid key size", nil)
		}
		return cryptoDomain.NewVaultKey(raw)
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, keyProviderError("failed to read keyring", err)
	}

	key, err := generateKey()
	if err != nil {
		return nil, keyProviderError("failed to create key", err)
	}
	if err := keyring.Set(p.service, p.account, base64.StdEncoding.EncodeToString(key)); err != nil {
		memguard.WipeBytes(key)
		return nil, keyProviderError("failed to write keyring", err)
	}
	return cryptoDomain.NewVaultKey(key)
}
