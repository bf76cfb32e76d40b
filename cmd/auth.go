package main

import (
	"cmp"
	"context"
	"fmt"

	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a token and stores the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	resp, err := r.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	if err := r.session.Login(resp.Data.Token, resp.Data.UserID); err != nil {
		return err
	}

	r.logger.Info("logged in", "user", resp.Data.UserID)
	return r.writePlain("✓ Login successful!\n")
}

// AuthSignup registers a new account.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.Register(ctx, cmd.String("username"), cmd.String("email"), cmd.String("password")); err != nil {
		return err
	}
	r.writePlain("✓ Signup successful! You can now log in.\n")
	return r.writePlain("Run 'evloca auth login -u %s' to continue.\n", cmd.String("username"))
}

// AuthLogout clears the session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.LoggedIn() {
		return r.writePlain("Not logged in.\n")
	}
	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out.\n")
}

type authStatus struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	API      string `json:"api"`
}

// AuthStatus reports the stored session without contacting the API.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	snap := r.session.Snapshot()
	status := authStatus{LoggedIn: snap.Token != "", UserID: snap.User, API: r.config.API.BaseURL}
	if snap.Profile != nil {
		status.Username = snap.Profile.Username
	}

	return r.emit(cmd, status, func() error {
		if !status.LoggedIn {
			return r.writePlain("Not logged in. (API: %s)\n", status.API)
		}
		r.writePlain("✓ Logged in as %s\n", cmp.Or(status.Username, status.UserID))
		return r.writePlain("  API: %s\n", status.API)
	})
}
