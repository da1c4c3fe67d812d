package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now time.Time) *SessionStore {
	t.Helper()
	store := NewSessionStore(filepath.Join(t.TempDir(), "passvault", "session.json"))
	store.now = func() time.Time { return now }
	return store
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	store := newTestStore(t, now)

	session := &Session{
		ServerURL: "http://localhost:8080",
		Username:  "alice",
		UserID:    "0192b0d4-0000-7000-8000-000000000001",
		Token:     "token-1",
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, store.Save(session))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	dirInfo, err := os.Stat(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, session.Token, loaded.Token)
	assert.Equal(t, session.Username, loaded.Username)
	assert.True(t, session.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestSessionStore_SaveTightensExistingFile(t *testing.T) {
	store := newTestStore(t, time.Now())
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{}"), 0o644))

	require.NoError(t, store.Save(&Session{Token: "t"}))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSessionStore_Load(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	t.Run("missing file", func(t *testing.T) {
		_, err := newTestStore(t, now).Load()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired token", func(t *testing.T) {
		store := newTestStore(t, now)
		require.NoError(t, store.Save(&Session{Token: "t", ExpiresAt: now}))

		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSession)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("empty token", func(t *testing.T) {
		store := newTestStore(t, now)
		require.NoError(t, store.Save(&Session{Username: "alice"}))

		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("corrupt file", func(t *testing.T) {
		store := newTestStore(t, now)
		require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
		require.NoError(t, os.WriteFile(store.Path(), []byte("not json"), 0o600))

		_, err := store.Load()
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoSession)
	})
}

func TestSessionStore_Clear(t *testing.T) {
	store := newTestStore(t, time.Now())
	require.NoError(t, store.Save(&Session{Token: "t"}))

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Clear()
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDefaultSessionPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/passvault-config")
	t.Setenv("HOME", "/tmp/passvault-home")
	t.Setenv("AppData", "/tmp/passvault-appdata")

	path, err := DefaultSessionPath()
	require.NoError(t, err)
	assert.Equal(t, "session.json", filepath.Base(path))
	assert.Equal(t, "passvault", filepath.Base(filepath.Dir(path)))
}
