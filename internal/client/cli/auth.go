package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate.
//
// The method first attempts an online login. If the server is unavailable
// (errors.Is(err, client.ErrUnavailable)), it falls back to offline login
// against the locally cached verifier. On success the session holder is
// signed in and the mode becomes ModeOnline or ModeOffline; when both
// attempts fail the mode becomes ModeDisabled.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var (
		acc   models.Account
		token string
		mode  = ModeOnline
	)

	acc, token, err = a.authService.OnlineLogin(ctx, userName, password)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			a.logger.Warn(ctx, "login unsuccessful", "username", userName, "error", err)
			if errors.Is(err, client.ErrUnauthorized) {
				fmt.Fprintln(a.out, "Login failed: invalid credentials")
			} else {
				fmt.Fprintf(a.out, "Login failed: %v\n", err)
			}
			return err
		}

		a.logger.Warn(ctx, "server unavailable, trying offline login")
		acc, err = a.authService.OfflineLogin(ctx, userName, password)
		if err != nil {
			a.logger.Warn(ctx, "offline login unsuccessful", "error", err)
			fmt.Fprintln(a.out, "Login failed: server unavailable and no matching offline credentials")
			a.setMode(ModeDisabled)
			return err
		}
		mode = ModeOffline
		token = ""
	}

	if err := a.holder.Login(ctx, acc, token); err != nil {
		a.logger.Error(ctx, "could not persist session", "error", err)
		return err
	}
	a.api.SetToken(token)
	a.setMode(mode)
	fmt.Fprintf(a.out, "Welcome, %s!\n", acc.Username)

	if mode == ModeOnline {
		_ = a.Refresh(ctx)
	}
	return nil
}

// Logout signs the operator out and forgets the bearer token. Cached
// offline credentials stay so a later offline login still works.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.view.Query = ""
	if err := a.holder.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Forget removes the cached offline credentials. The current session is
// kept; the next offline login needs a fresh online login first.
func (a *App) Forget(ctx context.Context) error {
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		a.logger.Error(ctx, "clear offline data failed", "error", err)
		fmt.Fprintf(a.out, "Error: forget failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Offline credentials removed")
	return nil
}

// handleAPIError reports err to the operator. An unauthorized response
// means the token is no longer accepted, so the operator is logged out.
func (a *App) handleAPIError(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn() {
		a.logger.Warn(ctx, "session rejected by server, logging out", "op", op)
		fmt.Fprintln(a.out, "Session expired, please login again")
		_ = a.Logout(ctx)
		return err
	}
	fmt.Fprintf(a.out, "Error: %s failed: %v\n", op, err)
	return err
}
