package service

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/passvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// sessionKeyInfo versions the HKDF derivation so the signing key can be changed
// without touching the vault key.
const sessionKeyInfo = "session-signing-v1"

type sessionService struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewSessionService derives an HS256 signing key from the vault key and returns
// a service issuing tokens valid for ttl.
func NewSessionService(vaultKey *cryptoDomain.VaultKey, ttl time.Duration) (SessionService, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}

	signingKey, err := deriveSigningKey(vaultKey)
	if err != nil {
		return nil, err
	}

	return &sessionService{
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func deriveSigningKey(vaultKey *cryptoDomain.VaultKey) ([]byte, error) {
	buf, err := vaultKey.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open vault key: %w", err)
	}
	defer buf.Destroy()

	reader := hkdf.New(sha256.New, buf.Bytes(), nil, []byte(sessionKeyInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, fmt.Errorf("failed to derive session signing key: %w", err)
	}
	return signingKey, nil
}

// Issue signs a token for userID that expires after the configured ttl.
func (s *sessionService) Issue(userID uuid.UUID) (*authDomain.Session, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    authDomain.SessionIssuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &authDomain.Session{
		UserID:    userID,
		Token:     signed,
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the subject.
func (s *sessionService) Verify(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(authDomain.SessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, authDomain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, authDomain.ErrInvalidToken
	}
	return userID, nil
}
