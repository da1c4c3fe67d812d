package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/passvault/internal/client"
	apperrors "github.com/allisson/passvault/internal/errors"
	policyHttp "github.com/allisson/passvault/internal/policy/http"
	userDto "github.com/allisson/passvault/internal/user/http/dto"
	vaultDto "github.com/allisson/passvault/internal/vault/http/dto"
)

// fakeAPI serves the /v1 contract from memory. The password tool routes use
// the real policy handler.
type fakeAPI struct {
	mu      sync.Mutex
	users   map[string]string
	records map[string][]*vaultDto.RecordResponse
	now     time.Time
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	api := &fakeAPI{
		users:   map[string]string{},
		records: map[string][]*vaultDto.RecordResponse{},
		now:     time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	policyHandler := policyHttp.NewPolicyHandler(newPolicyUseCase(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	v1 := router.Group("/v1")
	v1.POST("/register", api.register)
	v1.POST("/login", api.login)
	v1.POST("/generate-password", policyHandler.GenerateHandler)
	v1.POST("/check-strength", policyHandler.CheckStrengthHandler)
	passwords := v1.Group("/passwords", api.authenticate)
	passwords.GET("", api.list)
	passwords.POST("", api.add)
	passwords.PUT("/:id", api.update)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return api, server.URL
}

func (a *fakeAPI) register(c *gin.Context) {
	var req userDto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Validate() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid credentials body"})
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.users[req.Username]; ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "username already exists"})
		return
	}
	a.users[req.Username] = req.Password
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": "id-" + req.Username})
}

func (a *fakeAPI) login(c *gin.Context) {
	var req userDto.CredentialsRequest
	_ = c.ShouldBindJSON(&req)
	a.mu.Lock()
	defer a.mu.Unlock()
	if pw, ok := a.users[req.Username]; !ok || pw != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":    "id-" + req.Username,
		"message":    "Login successful",
		"token":      "token-" + req.Username,
		"expires_at": time.Now().Add(time.Hour),
	})
}

func (a *fakeAPI) authenticate(c *gin.Context) {
	username := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer token-")
	a.mu.Lock()
	_, ok := a.users[username]
	a.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid credentials"})
		return
	}
	c.Set("owner", username)
}

func (a *fakeAPI) list(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*vaultDto.RecordResponse, 0)
	out = append(out, a.records[c.GetString("owner")]...)
	c.JSON(http.StatusOK, out)
}

func (a *fakeAPI) add(c *gin.Context) {
	var req vaultDto.AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Validate() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "title and password are required"})
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	owner := c.GetString("owner")
	record := &vaultDto.RecordResponse{
		ID:        fmt.Sprintf("rec-%d", len(a.records[owner])+1),
		Title:     req.Title,
		Password:  req.Password,
		URL:       req.URL,
		Username:  req.Username,
		CreatedAt: a.now,
	}
	if req.ExpiresDays != nil && *req.ExpiresDays > 0 {
		expiresAt := a.now.AddDate(0, 0, *req.ExpiresDays)
		record.ExpiresAt = &expiresAt
	}
	a.records[owner] = append(a.records[owner], record)
	c.JSON(http.StatusCreated, gin.H{"message": "Password added successfully", "id": record.ID})
}

func (a *fakeAPI) update(c *gin.Context) {
	var req vaultDto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Validate() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid update"})
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, record := range a.records[c.GetString("owner")] {
		if record.ID != c.Param("id") {
			continue
		}
		if req.Title != nil {
			record.Title = *req.Title
		}
		if req.Password != nil {
			record.Password = *req.Password
		}
		if req.URL != nil {
			record.URL = *req.URL
		}
		if req.Username != nil {
			record.Username = *req.Username
		}
		if req.ExpiresDays != nil {
			record.ExpiresAt = nil
			if *req.ExpiresDays > 0 {
				expiresAt := a.now.AddDate(0, 0, *req.ExpiresDays)
				record.ExpiresAt = &expiresAt
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "The requested resource was not found"})
}

func (a *fakeAPI) stored(owner string) []*vaultDto.RecordResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.records[owner]
}

func (a *fakeAPI) edit(owner string, i int, fn func(record *vaultDto.RecordResponse)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.records[owner][i])
}

type clientFixture struct {
	api    *fakeAPI
	server string
	store  *client.SessionStore
	anon   *client.Client
}

func setupClient(t *testing.T) *clientFixture {
	t.Helper()
	api, serverURL := newFakeAPI(t)
	anon, err := client.New(serverURL, nil)
	require.NoError(t, err)
	return &clientFixture{
		api:    api,
		server: serverURL,
		store:  client.NewSessionStore(filepath.Join(t.TempDir(), "session.json")),
		anon:   anon,
	}
}

// loggedIn registers and logs in username and returns a client carrying the
// saved token.
func (f *clientFixture) loggedIn(t *testing.T, username string) *client.Client {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, RunRegister(ctx, f.anon, io.Discard, username, "pw1"))
	require.NoError(t, RunLogin(ctx, f.anon, f.store, f.server, io.Discard, username, "pw1"))

	session, err := f.store.Load()
	require.NoError(t, err)
	return f.anon.WithToken(session.Token)
}

func TestRunRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := setupClient(t)

	var out bytes.Buffer
	require.NoError(t, RunRegister(ctx, f.anon, &out, "alice", "pw1"))
	assert.Equal(t, "User registered successfully (id: id-alice)\n", out.String())

	err := RunRegister(ctx, f.anon, io.Discard, "alice", "other")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.ErrorContains(t, err, "username already exists")

	err = RunLogin(ctx, f.anon, f.store, f.server, io.Discard, "alice", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = f.store.Load()
	assert.ErrorIs(t, err, client.ErrNoSession)

	out.Reset()
	require.NoError(t, RunLogin(ctx, f.anon, f.store, f.server, &out, "alice", "pw1"))
	assert.True(t, strings.HasPrefix(out.String(), "Login successful"))

	session, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "id-alice", session.UserID)
	assert.Equal(t, "token-alice", session.Token)
	assert.Equal(t, f.server, session.ServerURL)
}

func TestRunLogout(t *testing.T) {
	f := setupClient(t)
	f.loggedIn(t, "alice")

	var out bytes.Buffer
	require.NoError(t, RunLogout(f.store, &out))
	require.NoError(t, RunLogout(f.store, &out))
	assert.Equal(t, "Logged out successfully\nAlready logged out\n", out.String())

	_, err := f.store.Load()
	assert.ErrorIs(t, err, client.ErrNoSession)
}

func TestRunAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("given password prints strength first", func(t *testing.T) {
		f := setupClient(t)
		c := f.loggedIn(t, "alice")

		var out bytes.Buffer
		require.NoError(t, RunAdd(ctx, c, &out, AddOptions{
			Title:       "email",
			Password:    "hunter2",
			URL:         "https://mail.example.com",
			Username:    "alice@example.com",
			ExpiresDays: ptr(1),
		}))
		assert.Equal(t,
			"Password strength: Fair\n"+
				"Missing: At least 8 characters, Uppercase letter, Special character\n"+
				"Password added successfully (id: rec-1)\n",
			out.String())

		stored := f.api.stored("alice")
		require.Len(t, stored, 1)
		assert.Equal(t, "hunter2", stored[0].Password)
		require.NotNil(t, stored[0].ExpiresAt)
	})

	for _, tc := range []struct {
		name string
		opts AddOptions
	}{
		{name: "missing password is generated", opts: AddOptions{Title: "bank"}},
		{name: "generate overrides given password", opts: AddOptions{Title: "bank", Password: "hunter2", Generate: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := setupClient(t)
			c := f.loggedIn(t, "alice")

			var out bytes.Buffer
			require.NoError(t, RunAdd(ctx, c, &out, tc.opts))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 3)
			generated := strings.TrimPrefix(lines[0], "Generated password: ")
			assert.Len(t, generated, AddGeneratedLength)
			assert.True(t, strings.HasPrefix(lines[1], "Strength: "))

			stored := f.api.stored("alice")
			require.Len(t, stored, 1)
			assert.Equal(t, generated, stored[0].Password)
		})
	}

	t.Run("rejected by the server", func(t *testing.T) {
		f := setupClient(t)
		c := f.loggedIn(t, "alice")

		err := RunAdd(ctx, c, io.Discard, AddOptions{Password: "hunter2"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Empty(t, f.api.stored("alice"))
	})
}

func TestRunList(t *testing.T) {
	ctx := context.Background()
	f := setupClient(t)
	c := f.loggedIn(t, "alice")

	var out bytes.Buffer
	require.NoError(t, RunList(ctx, c, &out, FormatText))
	assert.Equal(t, "No passwords found\n", out.String())

	require.NoError(t, RunAdd(ctx, c, io.Discard, AddOptions{
		Title: "email", Password: "hunter2", URL: "https://mail.example.com", Username: "alice", ExpiresDays: ptr(2),
	}))
	require.NoError(t, RunAdd(ctx, c, io.Discard, AddOptions{Title: "bank", Password: "Xy9!abcdef"}))
	f.api.edit("alice", 1, func(record *vaultDto.RecordResponse) { record.Expired = true })

	out.Reset()
	require.NoError(t, RunList(ctx, c, &out, FormatText))
	assert.Equal(t, "Your passwords:\n"+listSeparator+"\n"+
		"ID: rec-1 | email | alice | Active\n"+
		"   URL: https://mail.example.com\n"+
		"   Password: hunter2\n"+
		"   Expires: 2026-10-18\n"+
		listSeparator+"\n"+
		"ID: rec-2 | bank |  | EXPIRED\n"+
		"   Password: Xy9!abcdef\n"+
		listSeparator+"\n",
		out.String())

	out.Reset()
	require.NoError(t, RunList(ctx, c, &out, FormatJSON))
	var records []vaultDto.RecordResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Xy9!abcdef", records[1].Password)

	err := RunList(ctx, c, io.Discard, "yaml")
	assert.ErrorContains(t, err, "invalid format")

	_, err = f.anon.ListPasswords(ctx)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRunList_DecryptionFailure(t *testing.T) {
	ctx := context.Background()
	f := setupClient(t)
	c := f.loggedIn(t, "alice")
	require.NoError(t, RunAdd(ctx, c, io.Discard, AddOptions{Title: "email", Password: "hunter2"}))
	f.api.edit("alice", 0, func(record *vaultDto.RecordResponse) {
		record.Password = ""
		record.Error = "Decryption failed"
	})

	var out bytes.Buffer
	require.NoError(t, RunList(ctx, c, &out, FormatText))
	assert.Contains(t, out.String(), "   Error: Decryption failed\n")
	assert.NotContains(t, out.String(), "Password:")
}

func TestRunUpdate(t *testing.T) {
	ctx := context.Background()
	f := setupClient(t)
	c := f.loggedIn(t, "alice")
	require.NoError(t, RunAdd(ctx, c, io.Discard, AddOptions{
		Title: "email", Password: "hunter2", URL: "https://old.example.com", ExpiresDays: ptr(3),
	}))

	var out bytes.Buffer
	require.NoError(t, RunUpdate(ctx, c, &out, "rec-1", vaultDto.UpdateRecordRequest{
		Title:       ptr("webmail"),
		ExpiresDays: ptr(0),
	}))
	assert.Equal(t, "Password updated successfully\n", out.String())

	stored := f.api.stored("alice")[0]
	assert.Equal(t, "webmail", stored.Title)
	assert.Equal(t, "hunter2", stored.Password)
	assert.Equal(t, "https://old.example.com", stored.URL)
	assert.Nil(t, stored.ExpiresAt)

	out.Reset()
	require.NoError(t, RunUpdate(ctx, c, &out, "rec-1", vaultDto.UpdateRecordRequest{Password: ptr("N3w!Password")}))
	assert.Equal(t, "Password strength: Strong\nPassword updated successfully\n", out.String())
	assert.Equal(t, "N3w!Password", f.api.stored("alice")[0].Password)

	err := RunUpdate(ctx, c, io.Discard, "rec-9", vaultDto.UpdateRecordRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	bob := f.loggedIn(t, "bob")
	err = RunUpdate(ctx, bob, io.Discard, "rec-1", vaultDto.UpdateRecordRequest{Title: ptr("stolen")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "webmail", f.api.stored("alice")[0].Title)
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("alice\r\ns3cret\n"), &out)

	username, err := p.Value("", "Username")
	require.NoError(t, err)
	password, err := p.Secret("", "Password")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "s3cret", password)
	assert.Equal(t, "Username: Password: ", out.String())

	given, err := p.Value("bob", "Username")
	require.NoError(t, err)
	assert.Equal(t, "bob", given)

	_, err = p.Value("", "Title")
	assert.ErrorContains(t, err, "no input provided")

	last, err := NewPrompter(strings.NewReader("no-newline"), io.Discard).Secret("", "Password")
	require.NoError(t, err)
	assert.Equal(t, "no-newline", last)
}

func ptr[T any](v T) *T { return &v }
