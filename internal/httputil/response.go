// Package httputil writes the JSON error bodies shared by every handler.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/passvault/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorMapping turns a base error into a response. An empty message means
// the error text is safe to show.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Not-found and unauthorized carry fixed messages: a foreign record must look
// like a missing one, an unknown user like a wrong password.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusBadRequest, "conflict", ""},
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Invalid credentials"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

// HandleErrorGin maps err to a status and JSON body. Unknown errors become a
// 500 whose body never includes the error text.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	mapping := internalError
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			mapping = m
			break
		}
	}

	response := ErrorResponse{Error: mapping.code, Message: mapping.message}
	if response.Message == "" {
		response.Message = err.Error()
	}

	if logger != nil {
		level := slog.LevelWarn
		if mapping.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", mapping.status),
			slog.String("error_code", mapping.code),
			slog.Any("error", err),
		)
	}

	_ = c.Error(err)
	c.JSON(mapping.status, response)
}

// HandleBadRequestGin answers 400 for a body or parameter that cannot be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeBadRequest(c, "bad_request", err, logger)
}

// HandleValidationErrorGin answers 400 for a request that decoded but failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeBadRequest(c, "validation_error", err, logger)
}

func writeBadRequest(c *gin.Context, code string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn(code, slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: code, Message: err.Error()})
}
