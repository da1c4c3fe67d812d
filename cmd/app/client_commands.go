package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
	"github.com/allisson/passvault/internal/client"
	vaultDto "github.com/allisson/passvault/internal/vault/http/dto"
)

const defaultServerURL = "http://localhost:8080"

func serverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "server",
		Value:   defaultServerURL,
		Sources: cli.EnvVars("PASSVAULT_SERVER"),
		Usage:   "Base URL of the passvault API",
	}
}

func sessionFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "session-file",
		Sources: cli.EnvVars("PASSVAULT_SESSION_FILE"),
		Usage:   "Where login stores the session (default: <user config dir>/passvault/session.json)",
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username (prompted when omitted)"},
		&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password (prompted when omitted)"},
		serverFlag(),
		sessionFileFlag(),
	}
}

func sessionStore(cmd *cli.Command) (*client.SessionStore, error) {
	path := cmd.String("session-file")
	if path == "" {
		var err error
		if path, err = client.DefaultSessionPath(); err != nil {
			return nil, err
		}
	}
	return client.NewSessionStore(path), nil
}

// sessionClient returns a client carrying the stored token. The server saved
// at login is used unless --server is given.
func sessionClient(cmd *cli.Command) (*client.Client, error) {
	store, err := sessionStore(cmd)
	if err != nil {
		return nil, err
	}
	session, err := store.Load()
	if err != nil {
		return nil, err
	}

	serverURL := session.ServerURL
	if serverURL == "" || cmd.IsSet("server") {
		serverURL = cmd.String("server")
	}
	c, err := client.New(serverURL, nil)
	if err != nil {
		return nil, err
	}
	return c.WithToken(session.Token), nil
}

func readCredentials(cmd *cli.Command) (string, string, error) {
	prompter := commands.NewPrompter(cmd.Root().Reader, cmd.Root().Writer)
	username, err := prompter.Value(cmd.String("username"), "Username")
	if err != nil {
		return "", "", err
	}
	password, err := prompter.Secret(cmd.String("password"), "Password")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func optionalString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

func optionalInt(cmd *cli.Command, name string) *int {
	if !cmd.IsSet(name) {
		return nil
	}
	v := int(cmd.Int(name))
	return &v
}

func getClientCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "register",
			Usage: "Create an account on the server",
			Flags: credentialFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				c, err := client.New(cmd.String("server"), nil)
				if err != nil {
					return err
				}
				username, password, err := readCredentials(cmd)
				if err != nil {
					return err
				}
				return commands.RunRegister(ctx, c, cmd.Root().Writer, username, password)
			},
		},
		{
			Name:  "login",
			Usage: "Log in and save the session for the other client commands",
			Flags: credentialFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				serverURL := cmd.String("server")
				c, err := client.New(serverURL, nil)
				if err != nil {
					return err
				}
				store, err := sessionStore(cmd)
				if err != nil {
					return err
				}
				username, password, err := readCredentials(cmd)
				if err != nil {
					return err
				}
				return commands.RunLogin(ctx, c, store, serverURL, cmd.Root().Writer, username, password)
			},
		},
		{
			Name:  "logout",
			Usage: "Remove the saved session",
			Flags: []cli.Flag{sessionFileFlag()},
			Action: func(_ context.Context, cmd *cli.Command) error {
				store, err := sessionStore(cmd)
				if err != nil {
					return err
				}
				return commands.RunLogout(store, cmd.Root().Writer)
			},
		},
		{
			Name:  "list",
			Usage: "List the saved passwords",
			Flags: []cli.Flag{formatFlag(), serverFlag(), sessionFileFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				c, err := sessionClient(cmd)
				if err != nil {
					return err
				}
				return commands.RunList(ctx, c, cmd.Root().Writer, cmd.String("format"))
			},
		},
		{
			Name:  "add",
			Usage: "Save a password, generating one when none is given",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Record title (prompted when omitted)"},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password to store (generated when omitted)"},
				&cli.StringFlag{Name: "url", Usage: "Website URL"},
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username or email"},
				&cli.IntFlag{Name: "expires-days", Usage: "Expire the record after this many days"},
				&cli.BoolFlag{Name: "generate", Aliases: []string{"g"}, Usage: "Generate the password even if one is given"},
				serverFlag(),
				sessionFileFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				c, err := sessionClient(cmd)
				if err != nil {
					return err
				}
				prompter := commands.NewPrompter(cmd.Root().Reader, cmd.Root().Writer)
				title, err := prompter.Value(cmd.String("title"), "Title")
				if err != nil {
					return err
				}
				return commands.RunAdd(ctx, c, cmd.Root().Writer, commands.AddOptions{
					Title:       title,
					Password:    cmd.String("password"),
					URL:         cmd.String("url"),
					Username:    cmd.String("username"),
					ExpiresDays: optionalInt(cmd, "expires-days"),
					Generate:    cmd.Bool("generate"),
				})
			},
		},
		{
			Name:      "update",
			Usage:     "Change fields of a saved password",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password"},
				&cli.StringFlag{Name: "url", Usage: "New website URL"},
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "New account username"},
				&cli.IntFlag{Name: "expires-days", Usage: "New expiry in days; 0 removes it"},
				serverFlag(),
				sessionFileFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.Args().First()
				if id == "" {
					return errors.New("missing record id: passvault update <id> [flags]")
				}
				c, err := sessionClient(cmd)
				if err != nil {
					return err
				}
				return commands.RunUpdate(ctx, c, cmd.Root().Writer, id, vaultDto.UpdateRecordRequest{
					Title:       optionalString(cmd, "title"),
					Password:    optionalString(cmd, "password"),
					URL:         optionalString(cmd, "url"),
					Username:    optionalString(cmd, "username"),
					ExpiresDays: optionalInt(cmd, "expires-days"),
				})
			},
		},
	}
}
