package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getList       = GetList
)

// Register asks for an e-mail, requests a verification code for it, then
// collects the rest of the account data and creates the account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.RequestRegisterCode(ctx, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "A verification code was sent to", email)

	code, err := getSimpleText(a.reader, "Enter verification code", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, models.Registration{
		Username: username,
		Password: password,
		Email:    email,
		Code:     code,
	}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login prompts for credentials, offering the last used username.
func (a *App) Login(ctx context.Context) error {
	prompt := "Enter username"
	last := a.authService.LastUsername(ctx)
	if last != "" {
		prompt = fmt.Sprintf("Enter username [%s]", last)
	}

	username, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if username == "" {
		username = last
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, username, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "username", username, "error", err)
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Logged in as %s\n", a.displayName())
	return nil
}

// Logout ends the session. Local state is dropped even when the server
// call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.session = nil
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Forget logs out and erases the locally remembered data.
func (a *App) Forget(ctx context.Context) error {
	n, err := a.authService.Forget(ctx)
	a.session = nil
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged out, %d local entries removed\n", n)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	s, err := a.authService.Whoami(ctx)
	if err != nil {
		return err
	}
	a.session = s

	fmt.Fprintf(a.out, "user: %s (id %d)\n", a.displayName(), s.UserID)
	if !s.ExpiresAt.IsZero() {
		state := "valid"
		if s.Expired(time.Now()) {
			state = "expired, refreshed on next request"
		}
		fmt.Fprintf(a.out, "access token: %s until %s\n", state, s.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// Passwd changes the password of the logged-in user.
func (a *App) Passwd(ctx context.Context) error {
	oldPassword, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	newPassword, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	if err := a.authService.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// ResetPassword runs the e-mailed code flow.
func (a *App) ResetPassword(ctx context.Context) error {
	if err := a.authService.RequestPasswordReset(ctx); err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the code from the e-mail", a.out)
	if err != nil {
		return err
	}
	newPassword, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	if err := a.authService.ResetPassword(ctx, newPassword, code); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password reset")
	return nil
}
