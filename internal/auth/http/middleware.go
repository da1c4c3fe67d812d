package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/passvault/internal/auth/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
	"github.com/allisson/passvault/internal/httputil"
	userDomain "github.com/allisson/passvault/internal/user/domain"
)

// TokenVerifier validates a session token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// UserLookup confirms that the subject of a token still exists.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// AuthenticationMiddleware requires "Authorization: Bearer <token>" (scheme is
// case-insensitive), verifies the session token and stores the owner id in the
// request context for GetOwnerID.
//
// Every failure answers 401, including tokens of users that no longer exist.
// Lookup failures other than not-found answer 500.
func AuthenticationMiddleware(verifier TokenVerifier, users UserLookup, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			c.Abort()
			return
		}

		ownerID, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		if _, err := users.GetUserByID(c.Request.Context(), ownerID); err != nil {
			if apperrors.Is(err, userDomain.ErrUserNotFound) {
				logger.Debug("authentication failed: token subject no longer exists",
					slog.String("user_id", ownerID.String()))
				err = authDomain.ErrInvalidToken
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithOwnerID(c.Request.Context(), ownerID))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
