package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/analytics"
	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/client/export"
	"github.com/dmitrijs2005/userdesk/internal/client/services"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/filex"
	"github.com/dmitrijs2005/userdesk/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// reportsDir receives exports written without an explicit path.
const reportsDir = "reports"

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	api         client.Client
	holder      *session.Holder
	authService services.AuthService
	userService services.UserService
	aggregator  *analytics.Aggregator
	sorter      *directory.Sorter
	view        directory.View
	reader      *bufio.Reader
	out         io.Writer

	newExporter func(path string) export.Exporter

	mu   sync.RWMutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, fmt.Errorf("time zone: %w", err)
	}

	sorter, err := directory.NewSorter(c.Locale)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	repos := client.NewRepositories(db)

	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	holder := session.NewHolder(repos.Metadata, logger)

	a := &App{
		config:      c,
		logger:      logger.With("module", "cli"),
		db:          db,
		api:         api,
		holder:      holder,
		authService: services.NewAuthService(api, repos.Metadata),
		userService: services.NewUserService(api, holder, logger),
		aggregator:  analytics.NewAggregator(api, logger, loc),
		sorter:      sorter,
		view:        directory.View{Key: directory.DefaultSortKey},
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	a.newExporter = a.defaultExporter
	return a, nil
}

func (a *App) defaultExporter(path string) export.Exporter {
	if a.config.ExportToS3() {
		return export.NewS3Exporter(export.S3Config{
			Bucket:       a.config.S3Bucket,
			Region:       a.config.S3Region,
			BaseEndpoint: a.config.S3BaseEndpoint,
			AccessKey:    a.config.S3AccessKey,
			SecretKey:    a.config.S3SecretKey,
		})
	}
	if path == "" {
		name := fmt.Sprintf("userdesk-report-%s.json", time.Now().Format("20060102-150405"))
		dir, err := filex.EnsureSubDir(reportsDir)
		if err != nil {
			a.logger.Warn(context.Background(), "cannot create reports directory", "error", err)
			return export.FileExporter{Path: name}
		}
		path = filepath.Join(dir, name)
	}
	return export.FileExporter{Path: path}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

// Run starts the console and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.holder.IsAuthenticated()
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(ctx)
	cancel()

	if err != nil {
		if a.Mode() != ModeDisabled {
			a.setMode(ModeOffline)
		}
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode between online and offline until ctx is done. A non-positive
// interval disables the watcher.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
