package main

import (
	"context"
	"fmt"

	"github.com/hsdfat8/kitcheck/internal/adapters/factory"
	httpAdapter "github.com/hsdfat8/kitcheck/internal/adapters/http"
	"github.com/hsdfat8/kitcheck/internal/adapters/memory"
	"github.com/hsdfat8/kitcheck/internal/adapters/postgres"
	"github.com/hsdfat8/kitcheck/internal/config"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/internal/domain/service"
	"github.com/hsdfat8/kitcheck/internal/kitfile"
	"github.com/hsdfat8/kitcheck/internal/observability"
	"github.com/hsdfat8/kitcheck/pkg/logic"
	"github.com/hsdfat8/kitcheck/pkg/repository"
)

// Application holds the application state
type Application struct {
	cfg        *config.Config
	logger     observability.Logger
	database   ports.DatabaseAdapter
	httpServer *httpAdapter.Server
}

// initializeDatabase connects the configured backend and applies pending
// Postgres migrations when autoMigrate is on
func (app *Application) initializeDatabase(ctx context.Context) error {
	adapter, err := factory.NewDatabaseAdapterFactory().CreateAndConnectAdapter(ctx, app.cfg.DatabaseAdapterConfig())
	if err != nil {
		return err
	}
	app.database = adapter

	if pg, ok := adapter.(*postgres.PostgresAdapter); ok && app.cfg.Database.Postgres.AutoMigrate {
		if err := pg.Migrator().Migrate(ctx); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	app.logger.Infow("✓ Database initialized", "type", adapter.GetType())
	return nil
}

// initializeService wires repositories and engine options into the kit service.
// Dismissals are per-process presentation state and always live in memory.
func (app *Application) initializeService(registry repository.AdapterRegistry) ports.KitService {
	kitService := service.NewKitService(
		app.database.GetCatalogRepository(),
		app.database.GetKitRepository(),
		memory.NewInMemoryDismissalRepository(),
		registry,
		logic.WithHeavyLensThreshold(app.cfg.Engine.HeavyLensThresholdKg),
	)
	app.logger.Info("✓ Kit service initialized")
	return kitService
}

// initializeAdapterRegistry extends the built-in adapter table with the
// configured adapter file, if any
func initializeAdapterRegistry(cfg *config.Config, log observability.Logger) (*repository.InMemoryAdapterRegistry, error) {
	registry := repository.NewDefaultAdapterRegistry()
	if cfg.Engine.AdapterFile == "" {
		return registry, nil
	}

	adapters, err := kitfile.LoadAdapters(cfg.Engine.AdapterFile)
	if err != nil {
		return nil, err
	}
	for _, a := range adapters {
		if err := registry.Add(a); err != nil {
			return nil, fmt.Errorf("adapter %s %s: %w", a.Brand, a.Model, err)
		}
	}

	log.Infow("✓ Adapter table loaded", "file", cfg.Engine.AdapterFile, "added", len(adapters), "total", len(registry.List()))
	return registry, nil
}

// seedCatalog upserts every item of the configured catalog seed file
func seedCatalog(ctx context.Context, cfg *config.Config, kitService ports.KitService, log observability.Logger) error {
	if cfg.Engine.CatalogSeedFile == "" {
		return nil
	}

	specs, err := kitfile.LoadCatalog(cfg.Engine.CatalogSeedFile)
	if err != nil {
		return err
	}
	for i := range specs {
		if err := kitService.UpsertEquipment(ctx, &specs[i]); err != nil {
			return fmt.Errorf("equipment %s: %w", specs[i].ID, err)
		}
	}

	log.Infow("✓ Catalog seeded", "file", cfg.Engine.CatalogSeedFile, "items", len(specs))
	return nil
}

// initializeHTTPServer configures and starts the HTTP server
func initializeHTTPServer(cfg *config.Config, kitService ports.KitService, database ports.DatabaseAdapter, log observability.Logger) *httpAdapter.Server {
	httpServerConfig := httpAdapter.ServerConfig{
		ListenAddr:   fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		EnableH2C:    cfg.Server.EnableHTTP2,
	}

	opts := httpAdapter.RouterOptions{Database: database}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}

	httpServer := httpAdapter.NewServer(httpServerConfig, kitService, opts)
	if err := httpServer.Start(); err != nil {
		log.Fatalw("Failed to start HTTP server", "error", err)
	}

	log.Infow("✓ HTTP server listening", "address", httpServer.Addr(), "mode", httpServerConfig.Mode())
	return httpServer
}

// shutdown performs graceful shutdown of all services
func (app *Application) shutdown(ctx context.Context) {
	app.logger.Info("Shutting down server...")

	if app.httpServer != nil {
		if err := app.httpServer.Stop(); err != nil {
			app.logger.Errorw("HTTP server shutdown error", "error", err)
		}
	}

	if app.database != nil {
		if err := app.database.Disconnect(ctx); err != nil {
			app.logger.Errorw("Database disconnect error", "error", err)
		}
	}

	app.logger.Info("Server stopped gracefully")
}
