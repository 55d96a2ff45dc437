package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

const equipmentColumns = `id, category, subcategory, brand, model, name, mount, sensor_coverage,
		       weight_kg, power, battery_profile, media_profile, compatible_codecs,
		       dependencies, compatibility_tags, compatible_with, specs, created_at, updated_at`

// equipmentRow is the flat database shape of a catalog entry. Nested profiles
// and string lists are stored as JSONB and travel as text.
type equipmentRow struct {
	ID                string          `db:"id"`
	Category          string          `db:"category"`
	Subcategory       sql.NullString  `db:"subcategory"`
	Brand             string          `db:"brand"`
	Model             string          `db:"model"`
	Name              sql.NullString  `db:"name"`
	Mount             sql.NullString  `db:"mount"`
	SensorCoverage    sql.NullString  `db:"sensor_coverage"`
	WeightKg          sql.NullFloat64 `db:"weight_kg"`
	Power             sql.NullString  `db:"power"`
	BatteryProfile    sql.NullString  `db:"battery_profile"`
	MediaProfile      sql.NullString  `db:"media_profile"`
	CompatibleCodecs  string          `db:"compatible_codecs"`
	Dependencies      string          `db:"dependencies"`
	CompatibilityTags string          `db:"compatibility_tags"`
	CompatibleWith    sql.NullString  `db:"compatible_with"`
	Specs             sql.NullString  `db:"specs"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// catalogRepository implements ports.CatalogRepository on PostgreSQL
type catalogRepository struct {
	db dbExecutor
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(db dbExecutor) ports.CatalogRepository {
	return &catalogRepository{db: db}
}

// Get retrieves a catalog entry by id
func (r *catalogRepository) Get(ctx context.Context, id string) (*models.EquipmentSpec, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`

	var row equipmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return row.toSpec()
}

// Upsert inserts or replaces a catalog entry, keeping the original created_at
func (r *catalogRepository) Upsert(ctx context.Context, spec *models.EquipmentSpec) error {
	row, err := newEquipmentRow(spec)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO equipment (
			id, category, subcategory, brand, model, name, mount, sensor_coverage,
			weight_kg, power, battery_profile, media_profile, compatible_codecs,
			dependencies, compatibility_tags, compatible_with, specs
		) VALUES (
			:id, :category, :subcategory, :brand, :model, :name, :mount, :sensor_coverage,
			:weight_kg, :power, :battery_profile, :media_profile, :compatible_codecs,
			:dependencies, :compatibility_tags, :compatible_with, :specs
		)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			subcategory = EXCLUDED.subcategory,
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			name = EXCLUDED.name,
			mount = EXCLUDED.mount,
			sensor_coverage = EXCLUDED.sensor_coverage,
			weight_kg = EXCLUDED.weight_kg,
			power = EXCLUDED.power,
			battery_profile = EXCLUDED.battery_profile,
			media_profile = EXCLUDED.media_profile,
			compatible_codecs = EXCLUDED.compatible_codecs,
			dependencies = EXCLUDED.dependencies,
			compatibility_tags = EXCLUDED.compatibility_tags,
			compatible_with = EXCLUDED.compatible_with,
			specs = EXCLUDED.specs
		RETURNING created_at, updated_at
	`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var stamps struct {
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := stmt.GetContext(ctx, &stamps, row); err != nil {
		return fmt.Errorf("failed to upsert equipment: %w", err)
	}

	spec.CreatedAt = stamps.CreatedAt
	spec.UpdatedAt = stamps.UpdatedAt
	return nil
}

// Delete removes a catalog entry
func (r *catalogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
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

// List retrieves catalog entries ordered by id with pagination
func (r *catalogRepository) List(ctx context.Context, offset, limit int) ([]*models.EquipmentSpec, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	var rows []equipmentRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	return rowsToSpecs(rows)
}

// ListByCategory retrieves catalog entries of one category with pagination
func (r *catalogRepository) ListByCategory(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE category = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	var rows []equipmentRow
	if err := r.db.SelectContext(ctx, &rows, query, category, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list equipment by category: %w", err)
	}

	return rowsToSpecs(rows)
}

// Snapshot returns the whole catalog ordered by id
func (r *catalogRepository) Snapshot(ctx context.Context) ([]models.EquipmentSpec, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY id`

	var rows []equipmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	specs := make([]models.EquipmentSpec, 0, len(rows))
	for i := range rows {
		spec, err := rows[i].toSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, *spec)
	}
	return specs, nil
}

// Count returns the number of catalog entries
func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM equipment`); err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return count, nil
}

func rowsToSpecs(rows []equipmentRow) ([]*models.EquipmentSpec, error) {
	specs := make([]*models.EquipmentSpec, 0, len(rows))
	for i := range rows {
		spec, err := rows[i].toSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func newEquipmentRow(spec *models.EquipmentSpec) (*equipmentRow, error) {
	row := &equipmentRow{
		ID:             spec.ID,
		Category:       string(spec.Category),
		Subcategory:    nullString(spec.Subcategory),
		Brand:          spec.Brand,
		Model:          spec.Model,
		Name:           nullString(spec.Name),
		Mount:          nullString(spec.Mount),
		SensorCoverage: nullString(string(spec.SensorCoverage)),
		CompatibleWith: nullString(spec.CompatibleWith),
	}
	if spec.WeightKg != nil {
		row.WeightKg = sql.NullFloat64{Float64: *spec.WeightKg, Valid: true}
	}
	if len(spec.Specs) > 0 {
		row.Specs = sql.NullString{String: string(spec.Specs), Valid: true}
	}

	var err error
	if row.Power, err = nullJSON(spec.Power, spec.Power == nil); err != nil {
		return nil, err
	}
	if row.BatteryProfile, err = nullJSON(spec.BatteryProfile, spec.BatteryProfile == nil); err != nil {
		return nil, err
	}
	if row.MediaProfile, err = nullJSON(spec.MediaProfile, spec.MediaProfile == nil); err != nil {
		return nil, err
	}
	if row.CompatibleCodecs, err = jsonList(spec.CompatibleCodecs); err != nil {
		return nil, err
	}
	if row.Dependencies, err = jsonList(spec.Dependencies); err != nil {
		return nil, err
	}
	if row.CompatibilityTags, err = jsonList(spec.CompatibilityTags); err != nil {
		return nil, err
	}
	return row, nil
}

func (row *equipmentRow) toSpec() (*models.EquipmentSpec, error) {
	spec := &models.EquipmentSpec{
		ID:             row.ID,
		Category:       models.Category(row.Category),
		Subcategory:    row.Subcategory.String,
		Brand:          row.Brand,
		Model:          row.Model,
		Name:           row.Name.String,
		Mount:          row.Mount.String,
		SensorCoverage: models.SensorCoverage(row.SensorCoverage.String),
		CompatibleWith: row.CompatibleWith.String,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.WeightKg.Valid {
		w := row.WeightKg.Float64
		spec.WeightKg = &w
	}
	if row.Specs.Valid && row.Specs.String != "" {
		spec.Specs = json.RawMessage(row.Specs.String)
	}

	if err := decodeNullJSON(row.Power, &spec.Power); err != nil {
		return nil, fmt.Errorf("failed to decode power profile of %s: %w", row.ID, err)
	}
	if err := decodeNullJSON(row.BatteryProfile, &spec.BatteryProfile); err != nil {
		return nil, fmt.Errorf("failed to decode battery profile of %s: %w", row.ID, err)
	}
	if err := decodeNullJSON(row.MediaProfile, &spec.MediaProfile); err != nil {
		return nil, fmt.Errorf("failed to decode media profile of %s: %w", row.ID, err)
	}
	if err := decodeList(row.CompatibleCodecs, &spec.CompatibleCodecs); err != nil {
		return nil, fmt.Errorf("failed to decode codecs of %s: %w", row.ID, err)
	}
	if err := decodeList(row.Dependencies, &spec.Dependencies); err != nil {
		return nil, fmt.Errorf("failed to decode dependencies of %s: %w", row.ID, err)
	}
	if err := decodeList(row.CompatibilityTags, &spec.CompatibilityTags); err != nil {
		return nil, fmt.Errorf("failed to decode tags of %s: %w", row.ID, err)
	}
	return spec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullJSON(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode column: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func jsonList(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list column: %w", err)
	}
	return string(b), nil
}

func decodeNullJSON[T any](col sql.NullString, dest **T) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		return err
	}
	*dest = &v
	return nil
}

func decodeList(col string, dest *[]string) error {
	if col == "" || col == "null" || col == "[]" {
		return nil
	}
	return json.Unmarshal([]byte(col), dest)
}
