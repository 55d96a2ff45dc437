package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	rootconfig "github.com/hsdfat8/kitcheck/config"
	"github.com/hsdfat8/kitcheck/internal/config"
	"github.com/hsdfat8/kitcheck/internal/logger"
	"github.com/hsdfat8/kitcheck/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to ./config.yaml)")
	flag.Parse()

	rootconfig.LoadEnv()

	log := observability.New("kitcheck-main", "info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}
	observability.SetLevel(cfg.Logging.Level)

	if cfg.Metrics.Enabled {
		logger.InitMetrics()
	}

	ctx := context.Background()

	app := &Application{cfg: cfg, logger: log}
	if err := app.initializeDatabase(ctx); err != nil {
		log.Fatalw("Failed to initialize database", "type", cfg.Database.Type, "error", err)
	}

	registry, err := initializeAdapterRegistry(cfg, log)
	if err != nil {
		log.Fatalw("Failed to load adapter table", "file", cfg.Engine.AdapterFile, "error", err)
	}

	kitService := app.initializeService(registry)
	if err := seedCatalog(ctx, cfg, kitService, log); err != nil {
		log.Fatalw("Failed to seed catalog", "file", cfg.Engine.CatalogSeedFile, "error", err)
	}

	app.httpServer = initializeHTTPServer(cfg, kitService, app.database, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.shutdown(ctx)
}
