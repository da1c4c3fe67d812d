package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	policyDomain "github.com/allisson/passvault/internal/policy/domain"
	policyUseCase "github.com/allisson/passvault/internal/policy/usecase"
)

type strengthResult struct {
	Strength string   `json:"strength"`
	Score    int      `json:"score"`
	Missing  []string `json:"missing"`
}

type generateResult struct {
	Password string         `json:"password"`
	Strength strengthResult `json:"strength"`
}

func toStrengthResult(report policyDomain.Report) strengthResult {
	return strengthResult{Strength: report.Strength, Score: report.Score, Missing: report.Missing}
}

// RunGeneratePassword prints a new password with its strength. It works
// offline; no database or vault key is needed.
func RunGeneratePassword(
	ctx context.Context,
	uc policyUseCase.PolicyUseCase,
	w io.Writer,
	length int,
	includeSymbols bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	generated, err := uc.Generate(ctx, length, includeSymbols)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		return writeJSON(w, generateResult{
			Password: generated.Password,
			Strength: toStrengthResult(generated.Report),
		})
	}

	_, err = fmt.Fprintf(w, "Generated password: %s\nStrength: %s\n", generated.Password, generated.Report.Strength)
	return err
}

// RunCheckStrength prints the strength of password and the criteria it misses.
func RunCheckStrength(
	ctx context.Context,
	uc policyUseCase.PolicyUseCase,
	w io.Writer,
	password string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	report, err := uc.CheckStrength(ctx, password)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		return writeJSON(w, toStrengthResult(*report))
	}

	if _, err := fmt.Fprintf(w, "Strength: %s (%d/%d)\n", report.Strength, report.Score, policyDomain.MaxScore); err != nil {
		return err
	}
	if len(report.Missing) > 0 {
		_, err = fmt.Fprintf(w, "Missing: %s\n", strings.Join(report.Missing, ", "))
	}
	return err
}
