package domain

import (
	"github.com/awnumar/memguard"
)

// VaultKey holds the 256-bit symmetric key that protects every stored secret.
// The key material lives in an encrypted memguard enclave and is only exposed
// through short-lived locked buffers.
type VaultKey struct {
	enclave *memguard.Enclave
}

// NewVaultKey seals key into an enclave. The source slice is wiped.
func NewVaultKey(key []byte) (*VaultKey, error) {
	if len(key) != KeySize {
		memguard.WipeBytes(key)
		return nil, ErrInvalidKeySize
	}
	return &VaultKey{enclave: memguard.NewEnclave(key)}, nil
}

// Open decrypts the enclave into a locked buffer. Callers must Destroy it.
func (k *VaultKey) Open() (*memguard.LockedBuffer, error) {
	return k.enclave.Open()
}

// Size returns the key length in bytes.
func (k *VaultKey) Size() int {
	return k.enclave.Size()
}
