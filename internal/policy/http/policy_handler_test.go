package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
	"github.com/allisson/passvault/internal/policy/http/dto"
	usecaseMocks "github.com/allisson/passvault/internal/policy/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*PolicyHandler, *usecaseMocks.MockPolicyUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &usecaseMocks.MockPolicyUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPolicyHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestPolicyHandler_GenerateHandler(t *testing.T) {
	generated := &policyDomain.GeneratedPassword{
		Password: "Ab3kd9Xq2LmP",
		Report: policyDomain.Report{
			Strength: "Strong",
			Score:    4,
			Missing:  []string{policyDomain.CriterionSpecial},
		},
	}

	t.Run("Success_EmptyBodyUsesDefaults", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Generate", mock.Anything, 12, true).Return(generated, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/generate-password", nil)
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.GeneratePasswordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Ab3kd9Xq2LmP", response.Password)
		assert.Equal(t, "Strong", response.Strength.Strength)
		assert.Equal(t, 4, response.Strength.Score)
		assert.Equal(t, []string{"Special character"}, response.Strength.Missing)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_CustomParameters", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Generate", mock.Anything, 16, false).Return(generated, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/generate-password",
			map[string]any{"length": 16, "include_symbols": false})
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_LengthOutOfRange", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/generate-password", map[string]any{"length": 500})
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/generate-password", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("{invalid")))
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPolicyHandler_CheckStrengthHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		report := &policyDomain.Report{
			Strength: "Weak",
			Score:    1,
			Missing: []string{
				policyDomain.CriterionLength,
				policyDomain.CriterionUppercase,
				policyDomain.CriterionNumber,
				policyDomain.CriterionSpecial,
			},
		}
		mockUseCase.On("CheckStrength", mock.Anything, "abc").Return(report, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/check-strength", map[string]string{"password": "abc"})
		handler.CheckStrengthHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"strength":"Weak","score":1,"missing":["At least 8 characters","Uppercase letter","Number","Special character"]}`,
			w.Body.String(),
		)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EmptyMissingIsArray", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		report := &policyDomain.Report{Strength: "Strong", Score: 5}
		mockUseCase.On("CheckStrength", mock.Anything, "S3cure!Pass").Return(report, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/check-strength", map[string]string{"password": "S3cure!Pass"})
		handler.CheckStrengthHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"strength":"Strong","score":5,"missing":[]}`, w.Body.String())
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/check-strength", map[string]string{})
		handler.CheckStrengthHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "validation_error", response["error"])
		mockUseCase.AssertNotCalled(t, "CheckStrength", mock.Anything, mock.Anything)
	})

	t.Run("Error_EmptyBody", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/check-strength", nil)
		handler.CheckStrengthHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
