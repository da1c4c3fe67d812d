// Package dto provides data transfer objects for the password policy endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

// GeneratePasswordRequest contains the optional generation parameters.
type GeneratePasswordRequest struct {
	Length         *int  `json:"length"`
	IncludeSymbols *bool `json:"include_symbols"`
}

// Validate checks if the generate request is valid.
func (r *GeneratePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Length,
			validation.NilOrNotEmpty,
			validation.Min(policyDomain.MinLength),
			validation.Max(policyDomain.MaxLength),
		),
	)
}

// LengthOrDefault returns the requested length or DefaultLength.
func (r *GeneratePasswordRequest) LengthOrDefault() int {
	if r.Length == nil {
		return policyDomain.DefaultLength
	}
	return *r.Length
}

// IncludeSymbolsOrDefault returns the requested flag, defaulting to true.
func (r *GeneratePasswordRequest) IncludeSymbolsOrDefault() bool {
	if r.IncludeSymbols == nil {
		return true
	}
	return *r.IncludeSymbols
}

// CheckStrengthRequest contains the password to score.
type CheckStrengthRequest struct {
	Password string `json:"password"`
}

// Validate checks if the check strength request is valid.
func (r *CheckStrengthRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}
