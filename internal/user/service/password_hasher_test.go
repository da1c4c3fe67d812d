package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher, err := NewPasswordHasher()
	require.NoError(t, err)

	t.Run("Success_HashIsPHCArgon2id", func(t *testing.T) {
		hash, err := hasher.Hash("Secr3t!")
		require.NoError(t, err)
		assert.Contains(t, hash, "$argon2id$")
		assert.NotContains(t, hash, "Secr3t!")
	})

	t.Run("Success_SaltIsPerHash", func(t *testing.T) {
		hash1, err := hasher.Hash("Secr3t!")
		require.NoError(t, err)
		hash2, err := hasher.Hash("Secr3t!")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("Success_VerifyCorrectPassword", func(t *testing.T) {
		for _, password := range []string{"Secr3t!", "pässwörd", "a much longer passphrase with spaces"} {
			hash, err := hasher.Hash(password)
			require.NoError(t, err)
			assert.True(t, hasher.Compare(password, hash), "password %q", password)
		}
	})

	t.Run("Error_WrongPasswordFails", func(t *testing.T) {
		hash, err := hasher.Hash("Secr3t!")
		require.NoError(t, err)
		assert.False(t, hasher.Compare("wrong", hash))
		assert.False(t, hasher.Compare("secr3t!", hash))
		assert.False(t, hasher.Compare("Secr3t! ", hash))
	})

	t.Run("Error_MalformedHashFails", func(t *testing.T) {
		assert.False(t, hasher.Compare("Secr3t!", ""))
		assert.False(t, hasher.Compare("Secr3t!", "not-a-hash"))
		assert.False(t, hasher.Compare("Secr3t!", "$argon2id$v=19$m=1,t=1,p=1$bad$bad"))
	})
}
