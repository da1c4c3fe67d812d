package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/passvault/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectedMsg    string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "record not found"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
			expectedMsg:    "The requested resource was not found",
		},
		{
			name:           "conflict",
			err:            apperrors.Wrap(apperrors.ErrConflict, "username already exists"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "conflict",
			expectedMsg:    "username already exists: conflict",
		},
		{
			name:           "invalid input",
			err:            fmt.Errorf("%w: title: cannot be blank.", apperrors.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
			expectedMsg:    "invalid input: title: cannot be blank.",
		},
		{
			name:           "unauthorized",
			err:            apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
			expectedMsg:    "Invalid credentials",
		},
		{
			name:           "forbidden",
			err:            apperrors.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedError:  "forbidden",
			expectedMsg:    "You don't have permission to access this resource",
		},
		{
			name:           "internal error hides details",
			err:            errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedError, resp.Error)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}

	t.Run("records the error on the context", func(t *testing.T) {
		c, _ := newTestContext()
		err := apperrors.Wrap(apperrors.ErrNotFound, "record not found")

		HandleErrorGin(c, err, logger)

		require.Len(t, c.Errors, 1)
		assert.ErrorIs(t, c.Errors.Last().Err, apperrors.ErrNotFound)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, logger)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleErrorGin_LogLevel(t *testing.T) {
	tests := []struct {
		err   error
		level string
	}{
		{err: apperrors.ErrNotFound, level: "level=WARN"},
		{err: apperrors.ErrUnauthorized, level: "level=WARN"},
		{err: errors.New("connection refused"), level: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			c, _ := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "request failed")
		})
	}
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("password: cannot be blank."), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "validation_error", resp.Error)
	assert.Equal(t, "password: cannot be blank.", resp.Message)
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("invalid record id"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "bad_request", resp.Error)
	assert.Equal(t, "invalid record id", resp.Message)
}
