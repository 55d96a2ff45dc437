package logic

import (
	"strings"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// OverrideRule is a vendor-specific exception keyed on brand+model substrings.
// Every Contains token must appear and no Excludes token may appear
// (case-insensitive). The peripheral is matched against its brand, model,
// name and media type.
type OverrideRule struct {
	Name               string
	PrimaryContains    []string
	PrimaryExcludes    []string
	PeripheralContains []string
	PeripheralExcludes []string
	Type               models.WarningType
	Severity           models.Severity
	Message            string
	Solution           string
}

// DefaultOverrideRules returns the built-in override table, in priority order
func DefaultOverrideRules() []OverrideRule {
	return []OverrideRule{
		{
			Name:               "komodo-cfexpress",
			PrimaryContains:    []string{"red", "komodo"},
			PeripheralContains: []string{"cfexpress"},
			Type:               models.WarningTypeMedia,
			Severity:           models.SeverityError,
			Message:            "RED Komodo records to CFast 2.0 only; CFexpress media cannot be used",
			Solution:           "Swap for RED-approved CFast 2.0 cards",
		},
		{
			Name:               "venice2-rialto1",
			PrimaryContains:    []string{"sony", "venice 2"},
			PeripheralContains: []string{"rialto"},
			PeripheralExcludes: []string{"rialto 2"},
			Type:               models.WarningTypeGeneral,
			Severity:           models.SeverityError,
			Message:            "The original Rialto extension system does not support Venice 2 image blocks",
			Solution:           "Use the Rialto 2 extension system with Venice 2",
		},
		{
			Name:               "venice1-rialto2",
			PrimaryContains:    []string{"sony", "venice"},
			PrimaryExcludes:    []string{"venice 2"},
			PeripheralContains: []string{"rialto 2"},
			Type:               models.WarningTypeGeneral,
			Severity:           models.SeverityError,
			Message:            "Rialto 2 requires a Venice 2 body; it does not fit the original Venice",
			Solution:           "Use the original Rialto extension system with Venice",
		},
		{
			Name:               "alexa35-compact-drive-1tb",
			PrimaryContains:    []string{"arri", "alexa 35"},
			PeripheralContains: []string{"compact drive", "1tb"},
			Type:               models.WarningTypeMedia,
			Severity:           models.SeverityWarning,
			Message:            "Compact Drive 1TB cannot sustain ARRIRAW at high frame rates on Alexa 35",
			Solution:           "Use Compact Drive 2TB for high-speed ARRIRAW",
		},
	}
}

func overrideHaystack(spec *models.EquipmentSpec, withMedia bool) string {
	parts := []string{spec.Brand, spec.Model, spec.Name}
	if withMedia && spec.MediaProfile != nil {
		parts = append(parts, spec.MediaProfile.MediaType)
	}
	return lower(strings.Join(parts, " "))
}

func matchesTokens(haystack string, contains, excludes []string) bool {
	for _, token := range contains {
		if !strings.Contains(haystack, lower(token)) {
			return false
		}
	}
	for _, token := range excludes {
		if strings.Contains(haystack, lower(token)) {
			return false
		}
	}
	return true
}

// Matches reports whether the rule applies to the pair
func (r OverrideRule) Matches(primary, peripheral *models.EquipmentSpec) bool {
	if primary == nil || peripheral == nil {
		return false
	}
	if len(r.PrimaryContains) == 0 && len(r.PeripheralContains) == 0 {
		return false
	}
	return matchesTokens(overrideHaystack(primary, false), r.PrimaryContains, r.PrimaryExcludes) &&
		matchesTokens(overrideHaystack(peripheral, true), r.PeripheralContains, r.PeripheralExcludes)
}

// applyOverrides returns the warning of the first matching rule, if any
func applyOverrides(rules []OverrideRule, itemID string, primary, peripheral *models.EquipmentSpec) []models.CompatibilityWarning {
	for _, r := range rules {
		if !r.Matches(primary, peripheral) {
			continue
		}
		return []models.CompatibilityWarning{{
			ItemID:   itemID,
			Type:     r.Type,
			Severity: r.Severity,
			Message:  r.Message,
			Solution: r.Solution,
		}}
	}
	return nil
}
