package dto

import (
	policyDomain "github.com/allisson/passvault/internal/policy/domain"
)

// StrengthResponse is the wire form of a strength report.
type StrengthResponse struct {
	Strength string   `json:"strength"`
	Score    int      `json:"score"`
	Missing  []string `json:"missing"`
}

// MapReportToResponse converts a domain report to an API response.
func MapReportToResponse(report policyDomain.Report) StrengthResponse {
	missing := report.Missing
	if missing == nil {
		missing = []string{}
	}
	return StrengthResponse{
		Strength: report.Strength,
		Score:    report.Score,
		Missing:  missing,
	}
}

// GeneratePasswordResponse contains a generated password and its report.
type GeneratePasswordResponse struct {
	Password string           `json:"password"` //nolint:gosec // generated for the caller
	Strength StrengthResponse `json:"strength"`
}
