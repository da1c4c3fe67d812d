// Package http provides HTTP handlers for credential records. Every route
// runs behind the session middleware; the owner is taken from the request
// context, never from the body.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/passvault/internal/auth/http"
	apperrors "github.com/allisson/passvault/internal/errors"
	"github.com/allisson/passvault/internal/httputil"
	customValidation "github.com/allisson/passvault/internal/validation"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
	"github.com/allisson/passvault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/passvault/internal/vault/usecase"
)

// RecordHandler handles credential record requests.
type RecordHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(vaultUseCase vaultUseCase.VaultUseCase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		vaultUseCase: vaultUseCase,
		logger:       logger,
	}
}

// ListHandler returns every record of the caller.
// GET /v1/passwords
func (h *RecordHandler) ListHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	views, err := h.vaultUseCase.List(c.Request.Context(), ownerID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	for _, view := range views {
		if view.Err != nil {
			h.logger.Error("credential record could not be decrypted",
				slog.String("record_id", view.ID.String()),
				slog.String("owner_id", ownerID.String()))
		}
	}

	c.JSON(http.StatusOK, dto.MapRecordViewsToResponse(views))
}

// GetHandler returns one record of the caller.
// GET /v1/passwords/:id
func (h *RecordHandler) GetHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	recordID, ok := h.recordID(c)
	if !ok {
		return
	}

	view, err := h.vaultUseCase.Get(c.Request.Context(), ownerID, recordID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordViewToResponse(view))
}

// AddHandler stores a new record.
// POST /v1/passwords - 201 with the record id and the strength of the password.
func (h *RecordHandler) AddHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req dto.AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.vaultUseCase.Add(c.Request.Context(), ownerID, req.ToAddRecordInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAddRecordOutputToResponse(output))
}

// UpdateHandler changes the fields present in the body.
// PUT /v1/passwords/:id - 404 whether the record is missing or not the caller's.
func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	recordID, ok := h.recordID(c)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.vaultUseCase.Update(c.Request.Context(), ownerID, recordID, req.ToRecordPatch()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

func (h *RecordHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := authHTTP.GetOwnerID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return ownerID, true
}

// recordID parses :id. A malformed id answers like an unknown one.
func (h *RecordHandler) recordID(c *gin.Context) (uuid.UUID, bool) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, vaultDomain.ErrRecordNotFound, h.logger)
		return uuid.Nil, false
	}
	return recordID, true
}
