package ports

import (
	"context"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/pkg/logic"
)

// KitService defines the kit validation operations
// This is the primary port for the kitcheck domain
type KitService interface {
	// ValidateEntries validates ad-hoc entries against the stored catalog,
	// or against catalog when it is non-nil
	ValidateEntries(ctx context.Context, entries []models.InventoryEntry, catalog []models.EquipmentSpec) ([]models.CompatibilityWarning, error)

	// ValidateKit validates a stored kit and applies its dismissals
	ValidateKit(ctx context.Context, kitID string) (*ValidationReport, error)

	// SuggestAccessories ranks catalog accessories for a camera body
	SuggestAccessories(ctx context.Context, equipmentID string) ([]logic.Suggestion, error)

	// FindAdapters looks up adapters for a lens mount on a camera mount
	FindAdapters(ctx context.Context, fromMount, toMount string) ([]models.Adapter, error)

	DismissWarning(ctx context.Context, kitID string, key models.DismissalKey) error
	RestoreWarning(ctx context.Context, kitID string, key models.DismissalKey) error
	ListDismissed(ctx context.Context, kitID string) ([]models.DismissalKey, error)

	GetEquipment(ctx context.Context, id string) (*models.EquipmentSpec, error)
	ListEquipment(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error)
	UpsertEquipment(ctx context.Context, spec *models.EquipmentSpec) error
	DeleteEquipment(ctx context.Context, id string) error

	GetKit(ctx context.Context, id string) (*models.Kit, error)
	ListKits(ctx context.Context, offset, limit int) ([]*models.Kit, error)
	SaveKit(ctx context.Context, kit *models.Kit) error
	DeleteKit(ctx context.Context, id string) error
}

// ValidationReport is the result of validating a stored kit
type ValidationReport struct {
	KitID        string                        `json:"kitId"`
	Warnings     []models.CompatibilityWarning `json:"warnings"`
	Dismissed    []models.CompatibilityWarning `json:"dismissed,omitempty"`
	ErrorCount   int                           `json:"errorCount"`
	WarningCount int                           `json:"warningCount"`
}

// NewValidationReport splits warnings by the dismissal set and counts the
// active ones by severity
func NewValidationReport(kitID string, warnings []models.CompatibilityWarning, dismissals models.DismissalSet) *ValidationReport {
	active, dismissed := dismissals.Partition(warnings)
	report := &ValidationReport{KitID: kitID, Warnings: active, Dismissed: dismissed}
	for _, w := range active {
		switch w.Severity {
		case models.SeverityError:
			report.ErrorCount++
		case models.SeverityWarning:
			report.WarningCount++
		}
	}
	return report
}
