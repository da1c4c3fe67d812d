package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/allisson/passvault/internal/client"
	vaultDto "github.com/allisson/passvault/internal/vault/http/dto"
)

// AddGeneratedLength is the length used when add generates the password.
const AddGeneratedLength = 16

const listSeparator = "--------------------------------------------------------------------------------"

// RunRegister creates an account on the server.
func RunRegister(ctx context.Context, c *client.Client, w io.Writer, username, password string) error {
	resp, err := c.Register(ctx, username, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	_, err = fmt.Fprintf(w, "User registered successfully (id: %s)\n", resp.UserID)
	return err
}

// RunLogin logs in and stores the session for later commands.
func RunLogin(
	ctx context.Context,
	c *client.Client,
	store *client.SessionStore,
	serverURL string,
	w io.Writer,
	username, password string,
) error {
	resp, err := c.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	err = store.Save(&client.Session{
		ServerURL: serverURL,
		Username:  username,
		UserID:    resp.UserID,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Login successful (session expires %s)\n", resp.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return err
}

// RunLogout forgets the stored session.
func RunLogout(store *client.SessionStore, w io.Writer) error {
	removed, err := store.Clear()
	if err != nil {
		return err
	}
	if !removed {
		_, err = fmt.Fprintln(w, "Already logged out")
		return err
	}
	_, err = fmt.Fprintln(w, "Logged out successfully")
	return err
}

// RunList prints every record of the logged in user.
func RunList(ctx context.Context, c *client.Client, w io.Writer, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	records, err := c.ListPasswords(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch passwords: %w", err)
	}

	if format == FormatJSON {
		if records == nil {
			records = []vaultDto.RecordResponse{}
		}
		return writeJSON(w, records)
	}

	if len(records) == 0 {
		_, err = fmt.Fprintln(w, "No passwords found")
		return err
	}

	var b strings.Builder
	b.WriteString("Your passwords:\n" + listSeparator + "\n")
	for _, r := range records {
		status := "Active"
		if r.Expired {
			status = "EXPIRED"
		}
		fmt.Fprintf(&b, "ID: %s | %s | %s | %s\n", r.ID, r.Title, r.Username, status)
		if r.URL != "" {
			fmt.Fprintf(&b, "   URL: %s\n", r.URL)
		}
		if r.Error != "" {
			fmt.Fprintf(&b, "   Error: %s\n", r.Error)
		} else {
			fmt.Fprintf(&b, "   Password: %s\n", r.Password)
		}
		if r.ExpiresAt != nil {
			fmt.Fprintf(&b, "   Expires: %s\n", r.ExpiresAt.Format("2006-01-02"))
		}
		b.WriteString(listSeparator + "\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// AddOptions are the inputs of the add command.
type AddOptions struct {
	Title       string
	Password    string
	URL         string
	Username    string
	ExpiresDays *int
	Generate    bool
}

// RunAdd stores a record. Without a password, or with Generate set, the
// server generates one of AddGeneratedLength characters first. The strength
// is printed before the record is stored.
func RunAdd(ctx context.Context, c *client.Client, w io.Writer, opts AddOptions) error {
	password := opts.Password
	if opts.Generate || password == "" {
		generated, err := c.GeneratePassword(ctx, AddGeneratedLength, true)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		password = generated.Password
		if _, err := fmt.Fprintf(w, "Generated password: %s\nStrength: %s\n", password, generated.Strength.Strength); err != nil {
			return err
		}
	} else if err := printStrength(ctx, c, w, password, true); err != nil {
		return err
	}

	resp, err := c.AddPassword(ctx, vaultDto.AddRecordRequest{
		Title:       opts.Title,
		Password:    password,
		URL:         opts.URL,
		Username:    opts.Username,
		ExpiresDays: opts.ExpiresDays,
	})
	if err != nil {
		return fmt.Errorf("failed to add password: %w", err)
	}
	_, err = fmt.Fprintf(w, "Password added successfully (id: %s)\n", resp.ID)
	return err
}

// RunUpdate patches a record; only fields set in req are changed.
func RunUpdate(ctx context.Context, c *client.Client, w io.Writer, id string, req vaultDto.UpdateRecordRequest) error {
	if req.Password != nil && *req.Password != "" {
		if err := printStrength(ctx, c, w, *req.Password, false); err != nil {
			return err
		}
	}

	if _, err := c.UpdatePassword(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	_, err := fmt.Fprintln(w, "Password updated successfully")
	return err
}

func printStrength(ctx context.Context, c *client.Client, w io.Writer, password string, withMissing bool) error {
	report, err := c.CheckStrength(ctx, password)
	if err != nil {
		return fmt.Errorf("failed to check password strength: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Password strength: %s\n", report.Strength); err != nil {
		return err
	}
	if withMissing && len(report.Missing) > 0 {
		_, err = fmt.Fprintf(w, "Missing: %s\n", strings.Join(report.Missing, ", "))
	}
	return err
}
