package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/server"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
