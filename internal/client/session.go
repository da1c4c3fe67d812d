package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoSession is returned when no usable login session is stored.
var ErrNoSession = errors.New("not logged in: run 'passvault login' first")

// Session is what login persists for later commands.
type Session struct {
	ServerURL string    `json:"server_url"`
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionStore keeps one Session as JSON in a file only the owner can read.
type SessionStore struct {
	path string
	now  func() time.Time
}

// NewSessionStore returns a store backed by path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path, now: time.Now}
}

// DefaultSessionPath is passvault/session.json under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "passvault", "session.json"), nil
}

// Path returns the backing file.
func (s *SessionStore) Path() string {
	return s.path
}

// Load returns the stored session. A missing, empty or expired session is
// ErrNoSession.
func (s *SessionStore) Load() (*Session, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(content, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}
	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w (session expired at %s)", ErrNoSession, session.ExpiresAt.Format(time.RFC3339))
	}
	return &session, nil
}

// Save replaces the stored session. The file is created with 0600 and its
// directory with 0700.
func (s *SessionStore) Save(session *Session) error {
	content, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict session file: %w", err)
	}
	return nil
}

// Clear removes the stored session and reports whether one existed.
func (s *SessionStore) Clear() (bool, error) {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove session file: %w", err)
	}
	return true, nil
}
