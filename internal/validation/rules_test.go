package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/passvault/internal/errors"
)

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{name: "regular value", value: "email", shouldErr: false},
		{name: "value with spaces", value: "  email  ", shouldErr: false},
		{name: "only spaces", value: "   ", shouldErr: true},
		{name: "tabs and newlines", value: "\t\n", shouldErr: true},
		{name: "empty is left to Required", value: "", shouldErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, NotBlank)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaxRunes(t *testing.T) {
	rule := MaxRunes(3)

	assert.NoError(t, validation.Validate("abc", rule))
	assert.NoError(t, validation.Validate("äöü", rule))
	assert.Error(t, validation.Validate("abcd", rule))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("title: cannot be blank."))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "title: cannot be blank.")
}
