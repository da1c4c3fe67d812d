package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// ciphertextVersion is the leading byte of every sealed secret. It is also
// bound into the tag as associated data.
const ciphertextVersion byte = 1

// CipherService seals and opens stored secrets with the vault key.
//
// Output layout: version(1) || nonce || ciphertext+tag. The value is
// self-contained; no other column is needed to decrypt it.
type CipherService struct {
	aead AEAD
}

// NewCipherService builds the AEAD for alg from the vault key. The key is only
// exposed for the duration of the call.
func NewCipherService(
	key *cryptoDomain.VaultKey,
	alg cryptoDomain.Algorithm,
	aeadManager AEADManager,
) (*CipherService, error) {
	buf, err := key.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open vault key: %w", err)
	}
	defer buf.Destroy()

	aead, err := aeadManager.CreateCipher(buf.Bytes(), alg)
	if err != nil {
		return nil, err
	}
	return &CipherService{aead: aead}, nil
}

// Encrypt seals plaintext. Two calls with the same input produce different output.
func (c *CipherService) Encrypt(plaintext string) ([]byte, error) {
	header := []byte{ciphertextVersion}
	sealed, nonce, err := c.aead.Encrypt([]byte(plaintext), header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrEncryptionFailed, err)
	}

	out := make([]byte, 0, len(header)+len(nonce)+len(sealed))
	out = append(out, header...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Decrypt opens a value produced by Encrypt. Every failure, including a
// truncated value or an unknown version, returns ErrDecryptionFailed.
func (c *CipherService) Decrypt(ciphertext []byte) (string, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < 1+nonceSize+c.aead.Overhead() {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	if ciphertext[0] != ciphertextVersion {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	nonce := ciphertext[1 : 1+nonceSize]
	sealed := ciphertext[1+nonceSize:]
	plaintext, err := c.aead.Decrypt(sealed, nonce, ciphertext[:1])
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
