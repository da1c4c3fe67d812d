// Package dto provides data transfer objects for the credential record endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/passvault/internal/validation"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
)

// AddRecordRequest is the body of POST /v1/passwords.
type AddRecordRequest struct {
	Title       string `json:"title"`
	Password    string `json:"password"` //nolint:gosec // plaintext accepted for encryption
	URL         string `json:"url"`
	Username    string `json:"username"`
	ExpiresDays *int   `json:"expires_days"`
}

// Validate checks that title and password are present and the expiry is bounded.
func (r *AddRecordRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
		validation.Field(&r.ExpiresDays, validation.Max(vaultDomain.MaxExpiresDays)),
	)
	return appValidation.WrapValidationError(err)
}

// ToAddRecordInput converts the request into use case input.
func (r AddRecordRequest) ToAddRecordInput() vaultDomain.AddRecordInput {
	return vaultDomain.AddRecordInput{
		Title:           r.Title,
		Secret:          r.Password,
		URL:             r.URL,
		AccountUsername: r.Username,
		ExpiresDays:     r.ExpiresDays,
	}
}

// UpdateRecordRequest is the body of PUT /v1/passwords/:id. Absent fields
// are left unchanged.
type UpdateRecordRequest struct {
	Title       *string `json:"title"`
	Password    *string `json:"password"` //nolint:gosec // plaintext accepted for encryption
	URL         *string `json:"url"`
	Username    *string `json:"username"`
	ExpiresDays *int    `json:"expires_days"`
}

// Validate rejects present-but-empty title and password.
func (r *UpdateRecordRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty.Error("password must not be empty"),
		),
		validation.Field(&r.ExpiresDays, validation.Max(vaultDomain.MaxExpiresDays)),
	)
	return appValidation.WrapValidationError(err)
}

// ToRecordPatch converts the request into a patch.
func (r UpdateRecordRequest) ToRecordPatch() vaultDomain.RecordPatch {
	return vaultDomain.RecordPatch{
		Title:           r.Title,
		Secret:          r.Password,
		URL:             r.URL,
		AccountUsername: r.Username,
		ExpiresDays:     r.ExpiresDays,
	}
}
