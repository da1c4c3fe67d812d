// Package domain defines the password policy types: generation bounds,
// strength criteria and the strength report.
package domain

import (
	apperrors "github.com/allisson/passvault/internal/errors"
)

// Generation bounds.
const (
	DefaultLength = 12
	MinLength     = 1
	MaxLength     = 128
)

// Character sets.
const (
	Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	Digits  = "0123456789"
	// Symbols is the set mixed into generated passwords.
	Symbols = "!@#$%^&*"
	// SpecialCharacters is the set accepted by the "Special character" criterion.
	SpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

// Criterion names, in evaluation order.
const (
	CriterionLength    = "At least 8 characters"
	CriterionUppercase = "Uppercase letter"
	CriterionLowercase = "Lowercase letter"
	CriterionNumber    = "Number"
	CriterionSpecial   = "Special character"
)

// MaxScore is the number of criteria.
const MaxScore = 5

// StrengthLabels maps min(score, 4) to a label.
var StrengthLabels = [...]string{"Very Weak", "Weak", "Fair", "Good", "Strong"}

// Report is the strength assessment of a password.
type Report struct {
	Strength string
	Score    int
	// Missing lists the unmet criteria in evaluation order. Never nil.
	Missing []string
}

// GeneratedPassword pairs a generated password with its report.
type GeneratedPassword struct {
	Password string
	Report   Report
}

// ErrInvalidLength indicates a generation length outside [MinLength, MaxLength].
var ErrInvalidLength = apperrors.Wrap(apperrors.ErrInvalidInput, "password length must be between 1 and 128")
