package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// PostgresAdapter implements the DatabaseAdapter interface for PostgreSQL
type PostgresAdapter struct {
	db          *sqlx.DB
	config      *ports.PostgresConfig
	catalogRepo ports.CatalogRepository
	kitRepo     ports.KitRepository
}

// NewPostgresAdapter creates a new PostgreSQL database adapter
func NewPostgresAdapter(config *ports.PostgresConfig) *PostgresAdapter {
	return &PostgresAdapter{
		config: config,
	}
}

// NewPostgresAdapterWithDB wraps an existing connection, used by tests and
// by callers that manage the pool themselves
func NewPostgresAdapterWithDB(db *sqlx.DB, config *ports.PostgresConfig) *PostgresAdapter {
	a := &PostgresAdapter{db: db, config: config}
	a.initRepositories()
	return a
}

// Connect establishes a connection to the PostgreSQL database
func (a *PostgresAdapter) Connect(ctx context.Context) error {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		a.config.Host,
		a.config.Port,
		a.config.User,
		a.config.Password,
		a.config.Database,
		a.config.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(a.config.MaxOpenConns)
	db.SetMaxIdleConns(a.config.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(a.config.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(a.config.ConnMaxIdleTime) * time.Second)

	a.db = db
	a.initRepositories()

	return nil
}

func (a *PostgresAdapter) initRepositories() {
	a.catalogRepo = NewCatalogRepository(a.db)
	a.kitRepo = NewKitRepository(a.db)
}

// Disconnect closes the database connection
func (a *PostgresAdapter) Disconnect(ctx context.Context) error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (a *PostgresAdapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return fmt.Errorf("database not connected")
	}
	return a.db.PingContext(ctx)
}

// GetType returns the database type
func (a *PostgresAdapter) GetType() ports.DatabaseType {
	return ports.DatabaseTypePostgreSQL
}

// GetCatalogRepository returns the catalog repository
func (a *PostgresAdapter) GetCatalogRepository() ports.CatalogRepository {
	return a.catalogRepo
}

// GetKitRepository returns the kit repository
func (a *PostgresAdapter) GetKitRepository() ports.KitRepository {
	return a.kitRepo
}

// Migrator returns a schema migrator bound to the adapter's connection
func (a *PostgresAdapter) Migrator() *Migrator {
	return NewMigrator(a.db)
}

// HealthCheck performs a health check on the database
func (a *PostgresAdapter) HealthCheck(ctx context.Context) error {
	if err := a.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := a.db.GetContext(ctx, &result, "SELECT 1"); err != nil {
		return fmt.Errorf("health check query failed: %w", err)
	}

	return nil
}

// GetConnectionStats returns database connection statistics
func (a *PostgresAdapter) GetConnectionStats() ports.ConnectionStats {
	if a.db == nil {
		return ports.ConnectionStats{DatabaseType: string(ports.DatabaseTypePostgreSQL)}
	}
	stats := a.db.Stats()

	return ports.ConnectionStats{
		OpenConnections:  stats.OpenConnections,
		IdleConnections:  stats.Idle,
		MaxConnections:   a.config.MaxOpenConns,
		DatabaseType:     string(ports.DatabaseTypePostgreSQL),
		ConnectionString: fmt.Sprintf("%s:%d/%s", a.config.Host, a.config.Port, a.config.Database),
		Healthy:          a.Ping(context.Background()) == nil,
	}
}

// OptimizeDatabase runs VACUUM ANALYZE on the catalog and kit tables
func (a *PostgresAdapter) OptimizeDatabase(ctx context.Context) error {
	tables := []string{"equipment", "kits", "kit_entries"}

	for _, table := range tables {
		if _, err := a.db.ExecContext(ctx, fmt.Sprintf("VACUUM ANALYZE %s", table)); err != nil {
			return fmt.Errorf("failed to optimize table %s: %w", table, err)
		}
	}

	return nil
}
