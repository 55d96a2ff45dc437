package logic

import (
	"fmt"
	"strings"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// ResolveDependencies checks that every declared companion is present in the
// same unit. Matching is a case-insensitive substring test against the other
// entries' display name, brand+model and model. One warning is produced per
// entry, listing every unmet requirement.
func ResolveDependencies(entries []models.InventoryEntry, specs map[string]*models.EquipmentSpec) []models.CompatibilityWarning {
	units := make(map[string][]int)
	for i, entry := range entries {
		units[entry.AssignedUnit] = append(units[entry.AssignedUnit], i)
	}

	var warnings []models.CompatibilityWarning
	for i, entry := range entries {
		spec, ok := specs[entry.EquipmentID]
		if !ok || len(spec.Dependencies) == 0 {
			continue
		}

		var missing []string
		for _, requirement := range spec.Dependencies {
			if strings.TrimSpace(requirement) == "" {
				continue
			}
			if !companionPresent(requirement, i, entries, units[entry.AssignedUnit], specs) {
				missing = append(missing, strings.TrimSpace(requirement))
			}
		}
		if len(missing) == 0 {
			continue
		}

		warnings = append(warnings, models.CompatibilityWarning{
			ItemID:   entry.ID,
			Type:     models.WarningTypeDependency,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("%s is missing required companion items: %s", spec.DisplayName(), strings.Join(missing, ", ")),
			Solution: fmt.Sprintf("Add %s to unit %s", strings.Join(missing, " and "), entry.AssignedUnit),
			Missing:  missing,
		})
	}
	return warnings
}

// companionPresent compares entries by position; ids may be blank or repeated
func companionPresent(requirement string, self int, entries []models.InventoryEntry, unit []int, specs map[string]*models.EquipmentSpec) bool {
	for _, idx := range unit {
		if idx == self {
			continue
		}
		spec, ok := specs[entries[idx].EquipmentID]
		if !ok {
			continue
		}
		if containsFold(spec.DisplayName(), requirement) ||
			containsFold(spec.BrandModel(), requirement) ||
			containsFold(spec.Model, requirement) {
			return true
		}
	}
	return false
}
