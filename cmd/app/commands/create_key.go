package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/passvault/internal/crypto/service"
)

type createKeyResult struct {
	Provider string `json:"provider"`
	Location string `json:"location"`
	Created  bool   `json:"created"`
	KeySize  int    `json:"key_size"`
}

// RunCreateKey makes sure the vault key exists, creating it when absent. An
// existing key is loaded and validated but never replaced. The key material
// is never printed.
func RunCreateKey(
	ctx context.Context,
	provider cryptoService.KeyProvider,
	providerName, location string,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	existed, err := provider.Exists(ctx)
	if err != nil {
		return err
	}

	key, err := provider.LoadOrCreate(ctx)
	if err != nil {
		return err
	}

	result := createKeyResult{
		Provider: providerName,
		Location: location,
		Created:  !existed,
		KeySize:  key.Size(),
	}
	logger.Info("vault key ready",
		slog.String("provider", providerName),
		slog.Bool("created", result.Created),
	)

	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if result.Created {
		_, err = fmt.Fprintf(w, "Created a new %d-byte vault key (%s: %s)\n", result.KeySize, providerName, location)
	} else {
		_, err = fmt.Fprintf(w, "Vault key already exists (%s: %s), nothing to do\n", providerName, location)
	}
	return err
}
