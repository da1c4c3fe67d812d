// Package service provides the cryptographic services of the vault: AEAD ciphers,
// the secret cipher built on the vault key, and the providers that load that key.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length in bytes.
	NonceSize() int

	// Overhead returns the authentication tag length in bytes.
	Overhead() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyProvider loads the vault key, creating and persisting it on first use.
type KeyProvider interface {
	// LoadOrCreate returns the persisted key, generating it when absent.
	// Any failure is reported as ErrKeyProviderFailure.
	LoadOrCreate(ctx context.Context) (*cryptoDomain.VaultKey, error)

	// Exists reports whether a key has already been persisted.
	Exists(ctx context.Context) (bool, error)
}
