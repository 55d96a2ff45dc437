package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/internal/logger"
	"github.com/hsdfat8/kitcheck/internal/observability"
	"github.com/hsdfat8/kitcheck/pkg/logic"
	"github.com/hsdfat8/kitcheck/pkg/repository"
)

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrKitNotFound       = errors.New("kit not found")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotCameraBody     = errors.New("equipment is not a camera body")
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// kitService implements the KitService interface
type kitService struct {
	catalog    ports.CatalogRepository
	kits       ports.KitRepository
	dismissals ports.DismissalRepository
	adapters   repository.AdapterRegistry
	options    []logic.Option
	logger     observability.Logger // Optional custom logger
}

// NewKitService creates a new kit service instance. A nil adapter registry
// falls back to the built-in adapter table.
func NewKitService(
	catalog ports.CatalogRepository,
	kits ports.KitRepository,
	dismissals ports.DismissalRepository,
	adapters repository.AdapterRegistry,
	opts ...logic.Option,
) ports.KitService {
	if adapters == nil {
		adapters = repository.NewDefaultAdapterRegistry()
	}
	return &kitService{
		catalog:    catalog,
		kits:       kits,
		dismissals: dismissals,
		adapters:   adapters,
		options:    append([]logic.Option{logic.WithRegistry(adapters)}, opts...),
	}
}

// SetLogger sets a custom logger for this service instance
func (s *kitService) SetLogger(l observability.Logger) {
	s.logger = l
}

// getLogger returns the custom logger if set, otherwise returns the global logger
func (s *kitService) getLogger() observability.Logger {
	if s.logger != nil {
		return s.logger
	}
	return observability.Log
}

// ValidateEntries runs the engine over ad-hoc entries
func (s *kitService) ValidateEntries(ctx context.Context, entries []models.InventoryEntry, catalog []models.EquipmentSpec) ([]models.CompatibilityWarning, error) {
	start := time.Now()
	s.getLogger().Infow("ValidateEntries started", "entries", len(entries), "inline_catalog", catalog != nil)

	if catalog == nil {
		snapshot, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		catalog = snapshot
	}

	warnings := logic.Validate(entries, catalog, s.options...)
	s.recordValidation("entries", warnings, start)

	s.getLogger().Infow("ValidateEntries completed", "entries", len(entries), "warnings", len(warnings), "duration", time.Since(start))
	return warnings, nil
}

// ValidateKit loads a kit and the catalog, validates, and drops dismissed warnings
func (s *kitService) ValidateKit(ctx context.Context, kitID string) (*ports.ValidationReport, error) {
	start := time.Now()
	s.getLogger().Infow("ValidateKit started", "kit_id", kitID)

	kit, err := s.GetKit(ctx, kitID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	warnings := logic.Validate(kit.Entries, catalog, s.options...)
	s.recordValidation("kit", warnings, start)

	dismissals, err := s.dismissalSet(ctx, kitID)
	if err != nil {
		return nil, err
	}
	report := ports.NewValidationReport(kitID, warnings, dismissals)

	s.getLogger().Infow("ValidateKit completed",
		"kit_id", kitID,
		"entries", len(kit.Entries),
		"errors", report.ErrorCount,
		"warnings", report.WarningCount,
		"dismissed", len(report.Dismissed),
		"duration", time.Since(start))
	return report, nil
}

// SuggestAccessories ranks catalog items for a camera body
func (s *kitService) SuggestAccessories(ctx context.Context, equipmentID string) ([]logic.Suggestion, error) {
	host, err := s.GetEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if !logic.IsCameraBody(host) {
		s.getLogger().Warnw("SuggestAccessories rejected host", "equipment_id", equipmentID, "category", host.Category)
		return nil, fmt.Errorf("%w: %s", ErrNotCameraBody, equipmentID)
	}

	catalog, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := logic.SuggestAccessories(host, catalog)
	for _, sg := range suggestions {
		logger.SuggestionsTotal.WithLabelValues(sg.Layer.String()).Inc()
	}

	s.getLogger().Infow("SuggestAccessories completed", "equipment_id", equipmentID, "suggestions", len(suggestions))
	return suggestions, nil
}

// FindAdapters queries the adapter registry
func (s *kitService) FindAdapters(ctx context.Context, fromMount, toMount string) ([]models.Adapter, error) {
	from, to := strings.TrimSpace(fromMount), strings.TrimSpace(toMount)
	if from == "" && to == "" {
		return s.adapters.List(), nil
	}

	var result []models.Adapter
	for _, a := range s.adapters.List() {
		if from != "" && !strings.EqualFold(strings.TrimSpace(a.FromMount), from) {
			continue
		}
		if to != "" && !strings.EqualFold(strings.TrimSpace(a.ToMount), to) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (s *kitService) DismissWarning(ctx context.Context, kitID string, key models.DismissalKey) error {
	if err := validateDismissal(key); err != nil {
		return err
	}
	if _, err := s.GetKit(ctx, kitID); err != nil {
		return err
	}
	if err := s.dismissals.Dismiss(ctx, kitID, key); err != nil {
		return fmt.Errorf("failed to dismiss warning: %w", err)
	}
	s.getLogger().Infow("Warning dismissed", "kit_id", kitID, "item_id", key.ItemID, "type", key.Type)
	return nil
}

func (s *kitService) RestoreWarning(ctx context.Context, kitID string, key models.DismissalKey) error {
	if err := validateDismissal(key); err != nil {
		return err
	}
	if err := s.dismissals.Restore(ctx, kitID, key); err != nil {
		return fmt.Errorf("failed to restore warning: %w", err)
	}
	s.getLogger().Infow("Warning restored", "kit_id", kitID, "item_id", key.ItemID, "type", key.Type)
	return nil
}

// ListDismissed returns the dismissed keys of a kit ordered by item and type
func (s *kitService) ListDismissed(ctx context.Context, kitID string) ([]models.DismissalKey, error) {
	set, err := s.dismissalSet(ctx, kitID)
	if err != nil {
		return nil, err
	}
	keys := make([]models.DismissalKey, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sortDismissals(keys)
	return keys, nil
}

func (s *kitService) GetEquipment(ctx context.Context, id string) (*models.EquipmentSpec, error) {
	start := time.Now()
	spec, err := s.catalog.Get(ctx, id)
	logger.DatabaseQueryDuration.WithLabelValues("catalog_get").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
		}
		s.getLogger().Errorw("Failed to load equipment", "equipment_id", id, "error", err)
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return spec, nil
}

func (s *kitService) ListEquipment(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error) {
	offset, limit = page(offset, limit)
	if category == "" {
		return s.catalog.List(ctx, offset, limit)
	}
	if err := models.ValidateCategory(category); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.catalog.ListByCategory(ctx, category, offset, limit)
}

func (s *kitService) UpsertEquipment(ctx context.Context, spec *models.EquipmentSpec) error {
	if err := models.ValidateEquipmentSpec(spec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if spec.SensorCoverage != "" {
		spec.SensorCoverage, _ = models.ParseSensorCoverage(string(spec.SensorCoverage))
	}

	start := time.Now()
	err := s.catalog.Upsert(ctx, spec)
	logger.DatabaseQueryDuration.WithLabelValues("catalog_upsert").Observe(time.Since(start).Seconds())
	if err != nil {
		s.getLogger().Errorw("Failed to upsert equipment", "equipment_id", spec.ID, "error", err)
		return fmt.Errorf("failed to upsert equipment: %w", err)
	}

	s.refreshCatalogSize(ctx)
	s.getLogger().Infow("Equipment upserted", "equipment_id", spec.ID, "category", spec.Category)
	return nil
}

func (s *kitService) DeleteEquipment(ctx context.Context, id string) error {
	if err := s.catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
		}
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	s.refreshCatalogSize(ctx)
	s.getLogger().Infow("Equipment deleted", "equipment_id", id)
	return nil
}

func (s *kitService) GetKit(ctx context.Context, id string) (*models.Kit, error) {
	start := time.Now()
	kit, err := s.kits.Get(ctx, id)
	logger.DatabaseQueryDuration.WithLabelValues("kit_get").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrKitNotFound, id)
		}
		s.getLogger().Errorw("Failed to load kit", "kit_id", id, "error", err)
		return nil, fmt.Errorf("failed to get kit: %w", err)
	}
	return kit, nil
}

func (s *kitService) ListKits(ctx context.Context, offset, limit int) ([]*models.Kit, error) {
	offset, limit = page(offset, limit)
	return s.kits.List(ctx, offset, limit)
}

// SaveKit validates and stores a kit. Entries referencing unknown equipment
// are accepted; the engine skips them.
func (s *kitService) SaveKit(ctx context.Context, kit *models.Kit) error {
	if err := models.ValidateKit(kit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := s.kits.Save(ctx, kit); err != nil {
		s.getLogger().Errorw("Failed to save kit", "kit_id", kit.ID, "error", err)
		return fmt.Errorf("failed to save kit: %w", err)
	}
	s.getLogger().Infow("Kit saved", "kit_id", kit.ID, "entries", len(kit.Entries))
	return nil
}

func (s *kitService) DeleteKit(ctx context.Context, id string) error {
	if err := s.kits.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrKitNotFound, id)
		}
		return fmt.Errorf("failed to delete kit: %w", err)
	}
	if err := s.dismissals.Clear(ctx, id); err != nil {
		s.getLogger().Warnw("Failed to clear dismissals", "kit_id", id, "error", err)
	}
	s.getLogger().Infow("Kit deleted", "kit_id", id)
	return nil
}

func (s *kitService) snapshot(ctx context.Context) ([]models.EquipmentSpec, error) {
	start := time.Now()
	catalog, err := s.catalog.Snapshot(ctx)
	logger.DatabaseQueryDuration.WithLabelValues("catalog_snapshot").Observe(time.Since(start).Seconds())
	if err != nil {
		s.getLogger().Errorw("Failed to load catalog snapshot", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.CatalogSize.Set(float64(len(catalog)))
	return catalog, nil
}

func (s *kitService) dismissalSet(ctx context.Context, kitID string) (models.DismissalSet, error) {
	set, err := s.dismissals.List(ctx, kitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dismissals: %w", err)
	}
	return set, nil
}

func (s *kitService) refreshCatalogSize(ctx context.Context) {
	if n, err := s.catalog.Count(ctx); err == nil {
		logger.CatalogSize.Set(float64(n))
	}
}

func (s *kitService) recordValidation(source string, warnings []models.CompatibilityWarning, start time.Time) {
	result := "clean"
	for _, w := range warnings {
		logger.WarningsTotal.WithLabelValues(string(w.Type), string(w.Severity)).Inc()
		if w.Severity == models.SeverityError {
			result = "errors"
		} else if result == "clean" {
			result = "warnings"
		}
	}
	logger.ValidationTotal.WithLabelValues(source, result).Inc()
	logger.ValidationDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

func validateDismissal(key models.DismissalKey) error {
	if strings.TrimSpace(key.ItemID) == "" {
		return fmt.Errorf("%w: missing item id", ErrInvalidRequest)
	}
	if err := models.ValidateWarningType(key.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func page(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}

func sortDismissals(keys []models.DismissalKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ItemID != keys[j].ItemID {
			return keys[i].ItemID < keys[j].ItemID
		}
		return keys[i].Type < keys[j].Type
	})
}
