// Package http provides HTTP handlers for password generation and strength checks.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/passvault/internal/httputil"
	"github.com/allisson/passvault/internal/policy/http/dto"
	policyUseCase "github.com/allisson/passvault/internal/policy/usecase"
	customValidation "github.com/allisson/passvault/internal/validation"
)

// PolicyHandler handles HTTP requests for the password policy.
type PolicyHandler struct {
	policyUseCase policyUseCase.PolicyUseCase
	logger        *slog.Logger
}

// NewPolicyHandler creates a new policy handler.
func NewPolicyHandler(policyUseCase policyUseCase.PolicyUseCase, logger *slog.Logger) *PolicyHandler {
	return &PolicyHandler{
		policyUseCase: policyUseCase,
		logger:        logger,
	}
}

// GenerateHandler generates a password.
// POST /v1/generate-password - an empty body uses length 12 with symbols.
func (h *PolicyHandler) GenerateHandler(c *gin.Context) {
	var req dto.GeneratePasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	generated, err := h.policyUseCase.Generate(
		c.Request.Context(),
		req.LengthOrDefault(),
		req.IncludeSymbolsOrDefault(),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GeneratePasswordResponse{
		Password: generated.Password,
		Strength: dto.MapReportToResponse(generated.Report),
	})
}

// CheckStrengthHandler scores a password.
// POST /v1/check-strength - returns 400 when password is absent.
func (h *PolicyHandler) CheckStrengthHandler(c *gin.Context) {
	var req dto.CheckStrengthRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	report, err := h.policyUseCase.CheckStrength(c.Request.Context(), req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReportToResponse(*report))
}
