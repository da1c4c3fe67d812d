package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
	"github.com/allisson/passvault/internal/app"
	"github.com/allisson/passvault/internal/config"
	policyDomain "github.com/allisson/passvault/internal/policy/domain"
	policyUseCase "github.com/allisson/passvault/internal/policy/usecase"
)

// offlinePolicy builds the policy use case without metrics, database or key.
func offlinePolicy() policyUseCase.PolicyUseCase {
	container := app.NewContainer(config.Load())
	return policyUseCase.NewPolicyUseCase(container.PasswordPolicy())
}

func getPolicyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-password",
			Usage: "Generate a random password and show its strength",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   policyDomain.DefaultLength,
					Usage:   "Password length (1-128)",
				},
				&cli.BoolFlag{
					Name:  "no-symbols",
					Usage: "Use letters and digits only",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGeneratePassword(
					ctx,
					offlinePolicy(),
					cmd.Root().Writer,
					int(cmd.Int("length")),
					!cmd.Bool("no-symbols"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "check-strength",
			Usage: "Score a password against the strength criteria",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Password to check",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCheckStrength(
					ctx,
					offlinePolicy(),
					cmd.Root().Writer,
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
	}
}
