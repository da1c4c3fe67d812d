package domain

import (
	"errors"

	apperrors "github.com/allisson/passvault/internal/errors"
)

// Cryptographic error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly KeySize bytes.
	ErrInvalidKeySize = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid key size")

	// ErrEncryptionFailed indicates a secret could not be sealed.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates a ciphertext was malformed, truncated, of an unknown
	// version or failed authentication. The cause is deliberately not distinguished.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyProviderFailure indicates the vault key could not be loaded or created.
	// The application must not start when this is returned.
	ErrKeyProviderFailure = errors.New("key provider failure")
)
