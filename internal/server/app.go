// Package server wires storage, services and the REST API together and runs
// the HTTP server until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
	"github.com/dmitrijs2005/userdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userdesk/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp opens storage (PostgreSQL when a DSN is configured, memory
// otherwise), runs migrations and builds the HTTP handler.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, using in-memory storage")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		var err error
		db, err = repomanager.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	authService, err := services.NewAuthService(c, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	userService := services.NewUserService(db, rm, logger)

	api := httpapi.NewServer(userService, authService, logger, c.CORSOrigins)

	return &App{config: c, logger: logger, db: db, handler: api.Handler()}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address and serves until ctx is cancelled
// or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.ListenAddr, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	defer app.close()

	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func (app *App) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "close db", "error", err)
		}
	}
}
