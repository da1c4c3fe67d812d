// Package main provides the entry point for the passvault CLI.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand(version string, w io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "passvault",
		Usage:   "Encrypted credential vault",
		Version: version,
		Writer:  w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file before any .env lookup",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if path := cmd.String("env-file"); path != "" {
				return ctx, godotenv.Load(path)
			}
			return ctx, nil
		},
		Commands: getCommands(version),
	}
}

func main() {
	if err := newRootCommand(version, os.Stdout).Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
