package models

import "errors"

// WarningType classifies a compatibility diagnostic
type WarningType string

const (
	WarningTypeMount      WarningType = "MOUNT"
	WarningTypeSensor     WarningType = "SENSOR"
	WarningTypePower      WarningType = "POWER"
	WarningTypeMedia      WarningType = "MEDIA"
	WarningTypeWeight     WarningType = "WEIGHT"
	WarningTypeDependency WarningType = "DEPENDENCY"
	WarningTypeGeneral    WarningType = "GENERAL"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityError   Severity = "ERROR"   // Blocks the pairing
	SeverityWarning Severity = "WARNING" // Fixable or advisory
)

// Adapter is a physical or electronic mount adapter. FromMount is the lens
// side, ToMount the camera side.
type Adapter struct {
	FromMount              string `json:"fromMount" yaml:"fromMount"`
	ToMount                string `json:"toMount" yaml:"toMount"`
	Brand                  string `json:"brand" yaml:"brand"`
	Model                  string `json:"model,omitempty" yaml:"model,omitempty"`
	MaintainsInfinityFocus bool   `json:"maintainsInfinityFocus" yaml:"maintainsInfinityFocus"`
	Notes                  string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// CompatibilityWarning is one diagnostic produced by a validation pass
type CompatibilityWarning struct {
	ItemID            string      `json:"itemId"`
	Type              WarningType `json:"type"`
	Severity          Severity    `json:"severity"`
	Message           string      `json:"message"`
	Solution          string      `json:"solution,omitempty"`
	SuggestedAdapters []Adapter   `json:"suggestedAdapters,omitempty"`
	Missing           []string    `json:"missing,omitempty"` // unmet dependency strings
}

var ErrInvalidWarningType = errors.New("invalid warning type")

// AllWarningTypes returns all valid warning types
func AllWarningTypes() []WarningType {
	return []WarningType{
		WarningTypeMount,
		WarningTypeSensor,
		WarningTypePower,
		WarningTypeMedia,
		WarningTypeWeight,
		WarningTypeDependency,
		WarningTypeGeneral,
	}
}

// ValidateWarningType checks if the warning type is valid
func ValidateWarningType(t WarningType) error {
	for _, wt := range AllWarningTypes() {
		if wt == t {
			return nil
		}
	}
	return ErrInvalidWarningType
}

// DismissalKey identifies a dismissed warning within a kit
type DismissalKey struct {
	ItemID string      `json:"itemId"`
	Type   WarningType `json:"type"`
}

// DismissalSet is the presentation-side set of dismissed warnings
type DismissalSet map[DismissalKey]struct{}

// Contains reports whether the warning has been dismissed
func (s DismissalSet) Contains(w CompatibilityWarning) bool {
	if s == nil {
		return false
	}
	_, ok := s[DismissalKey{ItemID: w.ItemID, Type: w.Type}]
	return ok
}

// Partition splits warnings into active and dismissed, keeping input order
func (s DismissalSet) Partition(warnings []CompatibilityWarning) (active, dismissed []CompatibilityWarning) {
	active = make([]CompatibilityWarning, 0, len(warnings))
	for _, w := range warnings {
		if s.Contains(w) {
			dismissed = append(dismissed, w)
			continue
		}
		active = append(active, w)
	}
	return active, dismissed
}
