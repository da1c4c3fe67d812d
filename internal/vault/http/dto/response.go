package dto

import (
	"time"

	policyDto "github.com/allisson/passvault/internal/policy/http/dto"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

// RecordResponse is one entry of GET /v1/passwords.
type RecordResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Password  string     `json:"password"` //nolint:gosec // decrypted for its owner
	URL       string     `json:"url"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	Expired   bool       `json:"expired"`
	Error     string     `json:"error,omitempty"`
}

// AddRecordResponse is returned with 201 after a record is stored.
type AddRecordResponse struct {
	Message  string                     `json:"message"`
	ID       string                     `json:"id"`
	Strength policyDto.StrengthResponse `json:"strength"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// MapRecordViewToResponse converts a decrypted record to its wire form.
func MapRecordViewToResponse(view *vaultDomain.RecordView) RecordResponse {
	response := RecordResponse{
		ID:        view.ID.String(),
		Title:     view.Title,
		Password:  view.Secret,
		URL:       view.URL,
		Username:  view.AccountUsername,
		CreatedAt: view.CreatedAt,
		ExpiresAt: view.ExpiresAt,
		Expired:   view.Expired,
	}
	if view.Err != nil {
		response.Error = "Decryption failed"
	}
	return response
}

// MapRecordViewsToResponse converts a listing; an empty listing encodes as [].
func MapRecordViewsToResponse(views []*vaultDomain.RecordView) []RecordResponse {
	responses := make([]RecordResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, MapRecordViewToResponse(view))
	}
	return responses
}

// MapAddRecordOutputToResponse builds the creation response.
func MapAddRecordOutputToResponse(output *vaultDomain.AddRecordOutput) AddRecordResponse {
	return AddRecordResponse{
		Message:  "Password added successfully",
		ID:       output.Record.ID.String(),
		Strength: policyDto.MapReportToResponse(output.Strength),
	}
}
