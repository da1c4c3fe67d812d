package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/passvault/internal/errors"
	vaultDto "github.com/allisson/passvault/internal/vault/http/dto"
)

func newTestServer(t *testing.T, register func(router *gin.Engine)) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	c, err := New(server.URL+"/", server.Client())
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://example.com", "http://", "://bad"} {
		c, err := New(raw, nil)
		assert.Error(t, err, raw)
		assert.Nil(t, c, raw)
	}

	c, err := New("https://vault.example.com/api/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://vault.example.com/api/v1/login", c.baseURL.JoinPath("/v1/login").String())
}

func TestClient_Login(t *testing.T) {
	expiresAt := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	c := newTestServer(t, func(router *gin.Engine) {
		router.POST("/v1/login", func(ctx *gin.Context) {
			assert.Equal(t, "application/json", ctx.GetHeader("Content-Type"))
			assert.Empty(t, ctx.GetHeader("Authorization"))

			var body map[string]string
			assert.NoError(t, ctx.ShouldBindJSON(&body))
			assert.Equal(t, map[string]string{"username": "alice", "password": "pw1"}, body)

			ctx.JSON(http.StatusOK, gin.H{
				"user_id":    "0192b0d4-0000-7000-8000-000000000001",
				"message":    "Login successful",
				"token":      "token-1",
				"expires_at": expiresAt,
			})
		})
	})

	resp, err := c.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", resp.Token)
	assert.Equal(t, "0192b0d4-0000-7000-8000-000000000001", resp.UserID)
	assert.True(t, expiresAt.Equal(resp.ExpiresAt))
}

func TestClient_SendsBearerToken(t *testing.T) {
	c := newTestServer(t, func(router *gin.Engine) {
		router.GET("/v1/passwords", func(ctx *gin.Context) {
			if ctx.GetHeader("Authorization") != "Bearer token-1" {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid credentials"})
				return
			}
			ctx.JSON(http.StatusOK, []gin.H{{"id": "r1", "title": "email", "password": "hunter2", "expired": true}})
		})
	})

	_, err := c.ListPasswords(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	records, err := c.WithToken("token-1").ListPasswords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hunter2", records[0].Password)
	assert.True(t, records[0].Expired)
	assert.Empty(t, c.token)
}

func TestClient_UpdatePasswordSendsOnlyPresentFields(t *testing.T) {
	c := newTestServer(t, func(router *gin.Engine) {
		router.PUT("/v1/passwords/:id", func(ctx *gin.Context) {
			assert.Equal(t, "r1", ctx.Param("id"))

			var body map[string]any
			assert.NoError(t, ctx.ShouldBindJSON(&body))
			assert.Equal(t, "webmail", body["title"])
			assert.Equal(t, float64(0), body["expires_days"])
			assert.Nil(t, body["password"])
			assert.Nil(t, body["url"])

			ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
		})
	})

	title, days := "webmail", 0
	resp, err := c.WithToken("t").UpdatePassword(context.Background(), "r1", vaultDto.UpdateRecordRequest{
		Title:       &title,
		ExpiresDays: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "Password updated successfully", resp.Message)
}

func TestClient_GenerateAndCheck(t *testing.T) {
	c := newTestServer(t, func(router *gin.Engine) {
		router.POST("/v1/generate-password", func(ctx *gin.Context) {
			var body map[string]any
			assert.NoError(t, ctx.ShouldBindJSON(&body))
			assert.Equal(t, float64(16), body["length"])
			assert.Equal(t, true, body["include_symbols"])
			ctx.JSON(http.StatusOK, gin.H{
				"password": "Ab1!Ab1!Ab1!Ab1!",
				"strength": gin.H{"strength": "Strong", "score": 5, "missing": []string{}},
			})
		})
		router.POST("/v1/check-strength", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"strength": "Fair", "score": 2, "missing": []string{"Uppercase letter"}})
		})
	})

	generated, err := c.GeneratePassword(context.Background(), 16, true)
	require.NoError(t, err)
	assert.Equal(t, "Strong", generated.Strength.Strength)

	report, err := c.CheckStrength(context.Background(), "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Score)
	assert.Equal(t, []string{"Uppercase letter"}, report.Missing)
}

func TestClient_Errors(t *testing.T) {
	c := newTestServer(t, func(router *gin.Engine) {
		router.POST("/v1/register", func(ctx *gin.Context) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "username already exists"})
		})
		router.PUT("/v1/passwords/:id", func(ctx *gin.Context) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "The requested resource was not found"})
		})
		router.GET("/v1/passwords", func(ctx *gin.Context) {
			ctx.String(http.StatusBadGateway, "upstream down")
		})
	})
	ctx := context.Background()

	_, err := c.Register(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.EqualError(t, err, "username already exists")

	_, err = c.UpdatePassword(ctx, "missing", vaultDto.UpdateRecordRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = c.ListPasswords(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.EqualError(t, err, "request failed with status 502")
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(url, nil)
	require.NoError(t, err)

	_, err = c.CheckStrength(context.Background(), "x")
	assert.Error(t, err)
	var apiErr *APIError
	assert.NotErrorAs(t, err, &apiErr)
}
