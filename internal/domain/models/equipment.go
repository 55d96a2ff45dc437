package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Category represents the catalog category of a piece of equipment
type Category string

const (
	CategoryCamera  Category = "CAMERA"
	CategoryLens    Category = "LENS"
	CategorySupport Category = "SUPPORT"
	CategoryMedia   Category = "MEDIA"
	CategoryFilter  Category = "FILTER"
	CategoryGrip    Category = "GRIP"
	CategoryComms   Category = "COMMS"
	CategoryOther   Category = "OTHER"
)

// SensorCoverage is a sensor size (cameras) or image circle (lenses)
type SensorCoverage string

const (
	CoverageS35 SensorCoverage = "S35" // Super 35
	CoverageFF  SensorCoverage = "FF"  // Full frame / VistaVision
	CoverageLF  SensorCoverage = "LF"  // Large format / 65mm
)

// PowerProfile describes the power input of a camera body
type PowerProfile struct {
	MinVoltage float64 `json:"minVoltage,omitempty" yaml:"minVoltage,omitempty" bson:"min_voltage,omitempty"`
	MaxVoltage float64 `json:"maxVoltage,omitempty" yaml:"maxVoltage,omitempty" bson:"max_voltage,omitempty"`
	MountType  string  `json:"mountType,omitempty" yaml:"mountType,omitempty" bson:"mount_type,omitempty"`
}

// BatteryProfile describes the output of a battery or power plate
type BatteryProfile struct {
	Voltage   float64 `json:"voltage,omitempty" yaml:"voltage,omitempty" bson:"voltage,omitempty"`
	MountType string  `json:"mountType,omitempty" yaml:"mountType,omitempty" bson:"mount_type,omitempty"`
}

// MediaProfile carries recording slots on cameras, and media type plus
// certified codecs on media items
type MediaProfile struct {
	Slots           []string `json:"slots,omitempty" yaml:"slots,omitempty" bson:"slots,omitempty"`
	MediaType       string   `json:"mediaType,omitempty" yaml:"mediaType,omitempty" bson:"media_type,omitempty"`
	CertifiedCodecs []string `json:"certifiedCodecs,omitempty" yaml:"certifiedCodecs,omitempty" bson:"certified_codecs,omitempty"`
}

// EquipmentSpec represents one catalog entry
type EquipmentSpec struct {
	ID                string          `json:"id" yaml:"id" bson:"_id"`
	Category          Category        `json:"category" yaml:"category" bson:"category"`
	Subcategory       string          `json:"subcategory,omitempty" yaml:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Brand             string          `json:"brand" yaml:"brand" bson:"brand"`
	Model             string          `json:"model" yaml:"model" bson:"model"`
	Name              string          `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Mount             string          `json:"mount,omitempty" yaml:"mount,omitempty" bson:"mount,omitempty"`
	SensorCoverage    SensorCoverage  `json:"sensorCoverage,omitempty" yaml:"sensorCoverage,omitempty" bson:"sensor_coverage,omitempty"`
	WeightKg          *float64        `json:"weightKg,omitempty" yaml:"weightKg,omitempty" bson:"weight_kg,omitempty"`
	Power             *PowerProfile   `json:"power,omitempty" yaml:"power,omitempty" bson:"power,omitempty"`
	BatteryProfile    *BatteryProfile `json:"batteryProfile,omitempty" yaml:"batteryProfile,omitempty" bson:"battery_profile,omitempty"`
	MediaProfile      *MediaProfile   `json:"mediaProfile,omitempty" yaml:"mediaProfile,omitempty" bson:"media_profile,omitempty"`
	CompatibleCodecs  []string        `json:"compatibleCodecs,omitempty" yaml:"compatibleCodecs,omitempty" bson:"compatible_codecs,omitempty"`
	Dependencies      []string        `json:"dependencies,omitempty" yaml:"dependencies,omitempty" bson:"dependencies,omitempty"`
	CompatibilityTags []string        `json:"compatibilityTags,omitempty" yaml:"compatibilityTags,omitempty" bson:"compatibility_tags,omitempty"`
	CompatibleWith    string          `json:"compatibleWith,omitempty" yaml:"compatibleWith,omitempty" bson:"compatible_with,omitempty"`
	Specs             json.RawMessage `json:"specs,omitempty" yaml:"-" bson:"specs,omitempty"`
	CreatedAt         time.Time       `json:"createdAt,omitempty" yaml:"-" bson:"created_at,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt,omitempty" yaml:"-" bson:"updated_at,omitempty"`
}

// SpecsBlob holds the keys recognised inside the free-form specs JSON.
// A key whose value has the wrong type is left unset and recorded in
// KeyErrors; the other keys are still read.
type SpecsBlob struct {
	Coverage       string
	CompatibleWith string
	WeightKg       *float64
	KeyErrors      map[string]error
}

var (
	ErrMissingID       = errors.New("missing equipment id")
	ErrInvalidCategory = errors.New("invalid equipment category")
	ErrInvalidCoverage = errors.New("invalid sensor coverage")
	ErrInvalidWeight   = errors.New("weight must not be negative")
	ErrInvalidSpecs    = errors.New("specs must be a JSON object")
)

// DisplayName returns the explicit name, or brand and model joined
func (e *EquipmentSpec) DisplayName() string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(e.Brand) + " " + strings.TrimSpace(e.Model))
}

// BrandModel returns "brand model" regardless of any display name
func (e *EquipmentSpec) BrandModel() string {
	return strings.TrimSpace(strings.TrimSpace(e.Brand) + " " + strings.TrimSpace(e.Model))
}

// ParseSpecs decodes the free-form specs blob. An empty blob yields a zero
// SpecsBlob and no error. An error is returned only when the blob is not a
// JSON object; recognised keys are decoded one by one.
func (e *EquipmentSpec) ParseSpecs() (SpecsBlob, error) {
	var blob SpecsBlob
	raw := strings.TrimSpace(string(e.Specs))
	if raw == "" || raw == "null" {
		return blob, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Specs, &fields); err != nil {
		return SpecsBlob{}, err
	}

	decode := func(key string, dst any) {
		value, ok := fields[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(value, dst); err != nil {
			if blob.KeyErrors == nil {
				blob.KeyErrors = make(map[string]error)
			}
			blob.KeyErrors[key] = err
		}
	}

	var weight *float64
	decode("coverage", &blob.Coverage)
	decode("compatibleWith", &blob.CompatibleWith)
	decode("weightKg", &weight)
	if _, bad := blob.KeyErrors["weightKg"]; !bad {
		blob.WeightKg = weight
	}
	return blob, nil
}

// AllCategories returns all valid equipment categories
func AllCategories() []Category {
	return []Category{
		CategoryCamera,
		CategoryLens,
		CategorySupport,
		CategoryMedia,
		CategoryFilter,
		CategoryGrip,
		CategoryComms,
		CategoryOther,
	}
}

// ValidateCategory checks if the category is valid
func ValidateCategory(category Category) error {
	for _, c := range AllCategories() {
		if c == category {
			return nil
		}
	}
	return ErrInvalidCategory
}

// ParseSensorCoverage maps catalog coverage strings ("Super 35", "Full Frame",
// "VV", "65mm", ...) onto the three ranked classes. Formats smaller than
// Super 35 (S16, MFT) are not ranked and report false.
func ParseSensorCoverage(value string) (SensorCoverage, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.NewReplacer("-", " ", "_", " ").Replace(v)
	v = strings.Join(strings.Fields(v), " ")

	switch v {
	case "S35", "SUPER 35", "SUPER35", "SUPER 35MM", "APS C", "APSC":
		return CoverageS35, true
	case "FF", "FULL FRAME", "FULLFRAME", "VV", "VISTAVISION", "VISTA VISION", "FF VV":
		return CoverageFF, true
	case "LF", "LARGE FORMAT", "LARGEFORMAT", "65", "65MM", "MEDIUM FORMAT", "ALEXA 65":
		return CoverageLF, true
	}
	return "", false
}

// Rank orders coverage classes S35 < FF < LF. Unknown values rank 0.
func (c SensorCoverage) Rank() int {
	switch c {
	case CoverageS35:
		return 1
	case CoverageFF:
		return 2
	case CoverageLF:
		return 3
	default:
		return 0
	}
}

// ValidateEquipmentSpec checks the fields required to store a catalog entry.
// The compatibility engine never calls this; it tolerates partial specs.
func ValidateEquipmentSpec(spec *EquipmentSpec) error {
	if spec == nil || strings.TrimSpace(spec.ID) == "" {
		return ErrMissingID
	}
	if err := ValidateCategory(spec.Category); err != nil {
		return err
	}
	if spec.SensorCoverage != "" {
		if _, ok := ParseSensorCoverage(string(spec.SensorCoverage)); !ok {
			return ErrInvalidCoverage
		}
	}
	if spec.WeightKg != nil && *spec.WeightKg < 0 {
		return ErrInvalidWeight
	}
	if len(spec.Specs) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(spec.Specs, &obj); err != nil {
			return ErrInvalidSpecs
		}
	}
	return nil
}

// Clone returns a deep copy of the spec
func (e *EquipmentSpec) Clone() *EquipmentSpec {
	if e == nil {
		return nil
	}
	c := *e
	if e.WeightKg != nil {
		w := *e.WeightKg
		c.WeightKg = &w
	}
	if e.Power != nil {
		p := *e.Power
		c.Power = &p
	}
	if e.BatteryProfile != nil {
		b := *e.BatteryProfile
		c.BatteryProfile = &b
	}
	if e.MediaProfile != nil {
		m := *e.MediaProfile
		m.Slots = cloneStrings(m.Slots)
		m.CertifiedCodecs = cloneStrings(m.CertifiedCodecs)
		c.MediaProfile = &m
	}
	c.CompatibleCodecs = cloneStrings(e.CompatibleCodecs)
	c.Dependencies = cloneStrings(e.Dependencies)
	c.CompatibilityTags = cloneStrings(e.CompatibilityTags)
	if e.Specs != nil {
		c.Specs = append(json.RawMessage(nil), e.Specs...)
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
