package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// txBeginner is satisfied by *sqlx.DB. A repository built on a *sqlx.Tx
// writes straight through the caller's transaction.
type txBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// kitRepository implements ports.KitRepository on PostgreSQL.
// Entries live in kit_entries and keep their input order through position.
type kitRepository struct {
	db dbExecutor
}

// NewKitRepository creates a new PostgreSQL kit repository
func NewKitRepository(db dbExecutor) ports.KitRepository {
	return &kitRepository{db: db}
}

// Get retrieves a kit with its entries
func (r *kitRepository) Get(ctx context.Context, id string) (*models.Kit, error) {
	var kit models.Kit
	err := r.db.GetContext(ctx, &kit, `SELECT id, name, created_at, updated_at FROM kits WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get kit: %w", err)
	}

	query := `
		SELECT id, equipment_id, assigned_unit, quantity
		FROM kit_entries
		WHERE kit_id = $1
		ORDER BY position
	`
	entries := []models.InventoryEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, id); err != nil {
		return nil, fmt.Errorf("failed to get kit entries: %w", err)
	}
	kit.Entries = entries

	return &kit, nil
}

// Save inserts or replaces a kit and all of its entries atomically
func (r *kitRepository) Save(ctx context.Context, kit *models.Kit) error {
	beginner, ok := r.db.(txBeginner)
	if !ok {
		return r.save(ctx, r.db, kit)
	}

	tx, err := beginner.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.save(ctx, tx, kit); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit kit: %w", err)
	}
	return nil
}

func (r *kitRepository) save(ctx context.Context, exec dbExecutor, kit *models.Kit) error {
	query := `
		INSERT INTO kits (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING created_at, updated_at
	`
	var stamps struct {
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := exec.GetContext(ctx, &stamps, query, kit.ID, kit.Name); err != nil {
		return fmt.Errorf("failed to save kit: %w", err)
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM kit_entries WHERE kit_id = $1`, kit.ID); err != nil {
		return fmt.Errorf("failed to clear kit entries: %w", err)
	}

	insert := `
		INSERT INTO kit_entries (kit_id, id, position, equipment_id, assigned_unit, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, entry := range kit.Entries {
		if _, err := exec.ExecContext(ctx, insert, kit.ID, entry.ID, i, entry.EquipmentID, entry.AssignedUnit, entry.Quantity); err != nil {
			return fmt.Errorf("failed to save kit entry %s: %w", entry.ID, err)
		}
	}

	kit.CreatedAt = stamps.CreatedAt
	kit.UpdatedAt = stamps.UpdatedAt
	return nil
}

// Delete removes a kit; its entries go with it through ON DELETE CASCADE
func (r *kitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM kits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete kit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// List retrieves kit headers without entries
func (r *kitRepository) List(ctx context.Context, offset, limit int) ([]*models.Kit, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM kits
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	var kits []*models.Kit
	if err := r.db.SelectContext(ctx, &kits, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list kits: %w", err)
	}

	return kits, nil
}
