package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hsdfat8/kitcheck/internal/observability"
)

//go:embed schema.sql
var schemaFS embed.FS

const initialSchema = "initial_schema"

// Migrator handles database schema migrations
type Migrator struct {
	db  *sqlx.DB
	log observability.Logger
}

// NewMigrator creates a new database migrator
func NewMigrator(db *sqlx.DB) *Migrator {
	return &Migrator{db: db, log: observability.New("migrator", "")}
}

// Migrate applies the embedded schema once and records it
func (m *Migrator) Migrate(ctx context.Context) error {
	m.log.Infow("Starting database migration")

	if err := m.createMigrationTable(ctx); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	applied, err := m.isMigrationApplied(ctx, initialSchema)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		m.log.Infow("Initial schema already applied, skipping")
		return nil
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	sum := sha256.Sum256(schemaSQL)
	if err := m.recordMigration(ctx, tx, initialSchema, "Applied equipment and kit schema from schema.sql", hex.EncodeToString(sum[:])); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	m.log.Infow("Database migration completed")
	return nil
}

func (m *Migrator) createMigrationTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			description TEXT,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			checksum VARCHAR(64)
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Migrator) isMigrationApplied(ctx context.Context, migrationName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM schema_migrations WHERE migration_name = $1`
	if err := m.db.GetContext(ctx, &count, query, migrationName); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Migrator) recordMigration(ctx context.Context, tx *sqlx.Tx, migrationName, description, checksum string) error {
	query := `
		INSERT INTO schema_migrations (migration_name, description, applied_at, checksum)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (migration_name) DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query, migrationName, description, time.Now(), checksum)
	return err
}

// MigrationRecord represents a migration record
type MigrationRecord struct {
	MigrationName string    `db:"migration_name"`
	Description   string    `db:"description"`
	AppliedAt     time.Time `db:"applied_at"`
	Checksum      string    `db:"checksum"`
}

// GetMigrationStatus returns the applied migrations, newest first
func (m *Migrator) GetMigrationStatus(ctx context.Context) ([]MigrationRecord, error) {
	var migrations []MigrationRecord
	query := `
		SELECT migration_name, COALESCE(description, '') AS description, applied_at, COALESCE(checksum, '') AS checksum
		FROM schema_migrations
		ORDER BY applied_at DESC
	`
	err := m.db.SelectContext(ctx, &migrations, query)
	return migrations, err
}

// VerifySchema checks that the tables, function and view of the schema exist
func (m *Migrator) VerifySchema(ctx context.Context) error {
	checks := []struct {
		kind  string
		query string
		names []string
	}{
		{
			kind:  "table",
			query: `SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			names: []string{"equipment", "kits", "kit_entries", "schema_migrations"},
		},
		{
			kind:  "function",
			query: `SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1)`,
			names: []string{"update_updated_at_column"},
		},
		{
			kind:  "view",
			query: `SELECT EXISTS(SELECT 1 FROM information_schema.views WHERE table_name = $1)`,
			names: []string{"equipment_by_category"},
		},
	}

	for _, check := range checks {
		for _, name := range check.names {
			var exists bool
			if err := m.db.GetContext(ctx, &exists, check.query, name); err != nil {
				return fmt.Errorf("failed to check %s %s: %w", check.kind, name, err)
			}
			if !exists {
				return fmt.Errorf("%s %s does not exist", check.kind, name)
			}
			m.log.Debugw("Schema object present", "kind", check.kind, "name", name)
		}
	}

	m.log.Infow("Schema verification completed")
	return nil
}
