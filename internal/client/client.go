// Package client calls the passvault HTTP API on behalf of the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/allisson/passvault/internal/errors"
	"github.com/allisson/passvault/internal/httputil"
	policyDto "github.com/allisson/passvault/internal/policy/http/dto"
	userDto "github.com/allisson/passvault/internal/user/http/dto"
	vaultDto "github.com/allisson/passvault/internal/vault/http/dto"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Unwrap maps the status to the matching base error so callers can use
// errors.Is(err, apperrors.ErrUnauthorized) and friends.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return apperrors.ErrInvalidInput
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	default:
		return nil
	}
}

// Client is a thin JSON client for the /v1 routes.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

// New returns a client for baseURL. A nil httpClient gets a default with a
// request timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: expected http(s)://host[:port]", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) (*userDto.RegisterResponse, error) {
	var out userDto.RegisterResponse
	body := userDto.CredentialsRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*userDto.LoginResponse, error) {
	var out userDto.LoginResponse
	body := userDto.CredentialsRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPasswords returns every record of the session owner.
func (c *Client) ListPasswords(ctx context.Context) ([]vaultDto.RecordResponse, error) {
	var out []vaultDto.RecordResponse
	if err := c.do(ctx, http.MethodGet, "/v1/passwords", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPassword stores a new record.
func (c *Client) AddPassword(
	ctx context.Context,
	req vaultDto.AddRecordRequest,
) (*vaultDto.AddRecordResponse, error) {
	var out vaultDto.AddRecordResponse
	if err := c.do(ctx, http.MethodPost, "/v1/passwords", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePassword patches the record id. Nil request fields encode as null,
// which the server treats as absent.
func (c *Client) UpdatePassword(
	ctx context.Context,
	id string,
	req vaultDto.UpdateRecordRequest,
) (*vaultDto.MessageResponse, error) {
	var out vaultDto.MessageResponse
	path := "/v1/passwords/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePassword asks the server for a random password.
func (c *Client) GeneratePassword(
	ctx context.Context,
	length int,
	includeSymbols bool,
) (*policyDto.GeneratePasswordResponse, error) {
	var out policyDto.GeneratePasswordResponse
	body := policyDto.GeneratePasswordRequest{Length: &length, IncludeSymbols: &includeSymbols}
	if err := c.do(ctx, http.MethodPost, "/v1/generate-password", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckStrength scores password on the server.
func (c *Client) CheckStrength(ctx context.Context, password string) (*policyDto.StrengthResponse, error) {
	var out policyDto.StrengthResponse
	body := policyDto.CheckStrengthRequest{Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/check-strength", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.baseURL.Host, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody httputil.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Code = errBody.Error
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
