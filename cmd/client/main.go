package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userdesk/internal/client/cli"
	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
