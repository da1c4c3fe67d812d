package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
	"github.com/allisson/passvault/internal/app"
	"github.com/allisson/passvault/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					gin.SetMode(cfg.GetGinMode())
					return commands.RunServer(ctx, container, version)
				})
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				})
			},
		},
		{
			Name:  "create-key",
			Usage: "Create the vault key if it does not exist yet",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					provider, err := container.KeyProvider(ctx)
					if err != nil {
						return err
					}
					return commands.RunCreateKey(
						ctx,
						provider,
						cfg.KeyProvider,
						keyLocation(cfg),
						container.Logger(),
						cmd.Root().Writer,
						cmd.String("format"),
					)
				})
			},
		},
	}
	cmds = append(cmds, getPolicyCommands()...)
	return append(cmds, getClientCommands()...)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text' or 'json'",
	}
}

// keyLocation names where the configured provider keeps the vault key.
func keyLocation(cfg *config.Config) string {
	if cfg.KeyProvider == config.KeyProviderKeyring {
		return cfg.KeyKeyringService + "/" + cfg.KeyKeyringAccount
	}
	return cfg.KeyFilePath
}

// withContainer validates the configuration and runs fn with a container
// that is shut down afterwards.
func withContainer(ctx context.Context, fn func(cfg *config.Config, container *app.Container) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)
	defer func() {
		if err := container.Shutdown(context.WithoutCancel(ctx)); err != nil {
			container.Logger().Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	return fn(cfg, container)
}
