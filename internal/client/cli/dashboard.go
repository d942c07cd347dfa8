package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/export"
)

// Analytics fetches the collection independently and prints the dashboard.
func (a *App) Analytics(ctx context.Context) error {
	snap, err := a.aggregator.Fetch(ctx)
	if err != nil {
		return a.handleAPIError(ctx, "load analytics", err)
	}
	fmt.Fprintln(a.out, renderDashboard(snap))
	return nil
}

// Export writes a report of the current collection and a fresh analytics
// snapshot. With S3 configured path is ignored.
func (a *App) Export(ctx context.Context, path string) error {
	snap, err := a.aggregator.Fetch(ctx)
	if err != nil {
		return a.handleAPIError(ctx, "export", err)
	}

	report := export.NewReport(a.holder.Users(), snap, snap.Now)
	where, err := a.newExporter(path).Export(ctx, report)
	if err != nil {
		a.logger.Error(ctx, "export failed", "error", err)
		fmt.Fprintf(a.out, "Error: export failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Report written to %s\n", where)
	return nil
}
