// Package service implements password generation and strength scoring.
package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

type criterion struct {
	name string
	met  func(password string) bool
}

var criteria = []criterion{
	{policyDomain.CriterionLength, func(p string) bool { return utf8.RuneCountInString(p) >= 8 }},
	{policyDomain.CriterionUppercase, containsRange('A', 'Z')},
	{policyDomain.CriterionLowercase, containsRange('a', 'z')},
	{policyDomain.CriterionNumber, containsRange('0', '9')},
	{policyDomain.CriterionSpecial, func(p string) bool {
		return strings.ContainsAny(p, policyDomain.SpecialCharacters)
	}},
}

func containsRange(lo, hi rune) func(string) bool {
	return func(p string) bool {
		return strings.ContainsFunc(p, func(r rune) bool { return r >= lo && r <= hi })
	}
}

// PasswordPolicy generates and scores passwords. It is stateless.
type PasswordPolicy struct{}

// NewPasswordPolicy creates a PasswordPolicy.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{}
}

// Generate returns a password of length characters drawn uniformly from
// letters and digits, plus Symbols when includeSymbols is set.
func (p *PasswordPolicy) Generate(length int, includeSymbols bool) (string, error) {
	if length < policyDomain.MinLength || length > policyDomain.MaxLength {
		return "", policyDomain.ErrInvalidLength
	}

	alphabet := policyDomain.Letters + policyDomain.Digits
	if includeSymbols {
		alphabet += policyDomain.Symbols
	}

	password := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		password[i] = alphabet[n.Int64()]
	}

	return string(password), nil
}

// Score evaluates password against every criterion in order.
func (p *PasswordPolicy) Score(password string) policyDomain.Report {
	report := policyDomain.Report{Missing: []string{}}
	for _, c := range criteria {
		if c.met(password) {
			report.Score++
		} else {
			report.Missing = append(report.Missing, c.name)
		}
	}
	report.Strength = policyDomain.StrengthLabels[min(report.Score, len(policyDomain.StrengthLabels)-1)]
	return report
}
