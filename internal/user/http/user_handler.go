// Package http provides the registration and login handlers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/passvault/internal/auth/domain"
	"github.com/allisson/passvault/internal/httputil"
	"github.com/allisson/passvault/internal/user/http/dto"
	userUseCase "github.com/allisson/passvault/internal/user/usecase"
	customValidation "github.com/allisson/passvault/internal/validation"
)

// SessionIssuer signs a session token for an authenticated user.
type SessionIssuer interface {
	Issue(userID uuid.UUID) (*authDomain.Session, error)
}

// UserHandler handles registration and login.
type UserHandler struct {
	userUseCase   userUseCase.UseCase
	sessionIssuer SessionIssuer
	logger        *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userUseCase userUseCase.UseCase,
	sessionIssuer SessionIssuer,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		sessionIssuer: sessionIssuer,
		logger:        logger,
	}
}

// RegisterHandler creates a user account.
// POST /v1/register - 201 with the new user id, 400 when the username is taken.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.CredentialsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), req.ToRegisterUserInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, dto.MapUserToRegisterResponse(user))
}

// LoginHandler verifies credentials and issues a session token.
// POST /v1/login - 401 for an unknown user and a wrong password alike.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req dto.CredentialsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Login(c.Request.Context(), req.ToLoginInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	session, err := h.sessionIssuer.Issue(user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToLoginResponse(session))
}
