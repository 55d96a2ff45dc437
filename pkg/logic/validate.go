package logic

import (
	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// Validate runs every compatibility check over a kit snapshot. It never
// fails: entries referencing unknown equipment are skipped, and missing
// fields suppress the checks that need them. The result is not sorted.
func Validate(entries []models.InventoryEntry, catalog []models.EquipmentSpec, opts ...Option) []models.CompatibilityWarning {
	o := newOptions(opts)
	specs := indexCatalog(catalog)
	hosts := resolveHosts(entries, specs)

	warnings := make([]models.CompatibilityWarning, 0)
	for i, entry := range entries {
		spec, ok := specs[entry.EquipmentID]
		if !ok {
			continue
		}
		hostIdx, hasHost := hosts[entry.AssignedUnit]
		if !hasHost {
			continue
		}
		hostSpec := specs[entries[hostIdx].EquipmentID]

		if spec.Category == models.CategoryLens {
			warnings = append(warnings, ResolveMount(entry.ID, spec, hostSpec, o.Registry)...)
			warnings = append(warnings, ResolveCoverage(entry.ID, spec, hostSpec)...)
		}
		if i != hostIdx && spec.Category != models.CategoryCamera {
			warnings = append(warnings, EvaluateHardware(entry.ID, hostSpec, spec, o)...)
		}
	}

	return append(warnings, ResolveDependencies(entries, specs)...)
}

// indexCatalog maps equipment ids to specs; the first duplicate wins
func indexCatalog(catalog []models.EquipmentSpec) map[string]*models.EquipmentSpec {
	specs := make(map[string]*models.EquipmentSpec, len(catalog))
	for i := range catalog {
		if _, exists := specs[catalog[i].ID]; exists {
			continue
		}
		specs[catalog[i].ID] = &catalog[i]
	}
	return specs
}

// resolveHosts picks the first CAMERA entry of each unit, in input order.
// Hosts are tracked by position so entries without ids still resolve.
func resolveHosts(entries []models.InventoryEntry, specs map[string]*models.EquipmentSpec) map[string]int {
	hosts := make(map[string]int)
	for i, entry := range entries {
		if _, taken := hosts[entry.AssignedUnit]; taken {
			continue
		}
		if spec, ok := specs[entry.EquipmentID]; ok && spec.Category == models.CategoryCamera {
			hosts[entry.AssignedUnit] = i
		}
	}
	return hosts
}

// HostFor returns the host camera spec of a unit, if any
func HostFor(unit string, entries []models.InventoryEntry, catalog []models.EquipmentSpec) (*models.EquipmentSpec, bool) {
	specs := indexCatalog(catalog)
	idx, ok := resolveHosts(entries, specs)[unit]
	if !ok {
		return nil, false
	}
	return specs[entries[idx].EquipmentID], true
}
