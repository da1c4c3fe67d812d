// Package validation holds the jellydator/validation rules shared by the vault DTOs
// and use cases.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/passvault/internal/errors"
)

// WrapValidationError converts a validation failure into an ErrInvalidInput so
// the HTTP layer answers 400 with the field messages.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// MaxRunes validates that a string holds at most max characters, counting
// runes rather than bytes so multi-byte titles are not penalised.
func MaxRunes(max int) validation.Rule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			return len([]rune(s)) <= max
		},
		validation.NewError("validation_max_runes", "is too long").
			SetParams(map[string]any{"max": max}),
	)
}
