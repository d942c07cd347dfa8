package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if acc, ok := a.holder.CurrentUser(); ok {
		s = acc.Username + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the previous session, fetches the user collection once,
// starts the connectivity watcher and runs the REPL until the operator exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to UserDesk (type 'help' for commands)")

	if err := a.holder.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}
	if acc, ok := a.holder.CurrentUser(); ok {
		a.api.SetToken(a.holder.Token())
		fmt.Fprintf(a.out, "Signed in as %s\n", acc.Username)
	}

	a.checkOnline(ctx)
	if a.Mode() == ModeOnline {
		if _, err := a.userService.Fetch(ctx); err != nil {
			a.logger.Warn(ctx, "initial fetch failed", "error", err)
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
