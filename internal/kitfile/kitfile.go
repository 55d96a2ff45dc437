// Package kitfile reads and writes kits, catalogs and adapter tables as YAML.
package kitfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/observability"
)

// catalogItem lets YAML catalogs carry the free-form specs blob as a nested
// mapping; it is re-encoded as JSON on load.
type catalogItem struct {
	models.EquipmentSpec `yaml:",inline"`
	Specs                map[string]any `yaml:"specs,omitempty"`
}

type catalogDocument struct {
	Equipment []catalogItem `yaml:"equipment"`
}

type adapterDocument struct {
	Adapters []models.Adapter `yaml:"adapters"`
}

// LoadKit reads a kit file
func LoadKit(path string) (*models.Kit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	kit, err := ReadKit(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kit, nil
}

// ReadKit decodes a kit document. Entries without a quantity count as one,
// and missing kit or entry ids are generated.
func ReadKit(r io.Reader) (*models.Kit, error) {
	var kit models.Kit
	if err := yaml.NewDecoder(r).Decode(&kit); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty kit document")
		}
		return nil, fmt.Errorf("decode kit: %w", err)
	}

	for i := range kit.Entries {
		if kit.Entries[i].Quantity == 0 {
			kit.Entries[i].Quantity = 1
		}
	}
	AssignIDs(&kit)

	if err := models.ValidateKit(&kit); err != nil {
		return nil, err
	}
	return &kit, nil
}

// WriteKit encodes a kit document
func WriteKit(w io.Writer, kit *models.Kit) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(kit); err != nil {
		return fmt.Errorf("encode kit: %w", err)
	}
	return enc.Close()
}

// AssignIDs fills in a random kit id and entry ids where they are blank
func AssignIDs(kit *models.Kit) {
	if kit == nil {
		return
	}
	if strings.TrimSpace(kit.ID) == "" {
		kit.ID = uuid.NewString()
	}
	AssignEntryIDs(kit.Entries)
}

// AssignEntryIDs fills in random ids on entries where they are blank
func AssignEntryIDs(entries []models.InventoryEntry) {
	for i := range entries {
		if strings.TrimSpace(entries[i].ID) == "" {
			entries[i].ID = uuid.NewString()
		}
	}
}

// LoadCatalog reads a catalog file
func LoadCatalog(path string) ([]models.EquipmentSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	specs, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// ReadCatalog decodes a catalog document. Categories are upper-cased and
// recognised coverage spellings are normalised before validation. An
// unrecognised coverage or a negative weight is cleared with a warning so the
// item stays usable; a missing id or unknown category rejects the document.
// The first item with a given id wins.
func ReadCatalog(r io.Reader) ([]models.EquipmentSpec, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	specs := make([]models.EquipmentSpec, 0, len(doc.Equipment))
	seen := make(map[string]struct{}, len(doc.Equipment))
	for i, item := range doc.Equipment {
		spec := item.EquipmentSpec
		if _, dup := seen[spec.ID]; dup {
			observability.Log.Warnw("Ignoring duplicate equipment id", "equipment_id", spec.ID, "index", i)
			continue
		}
		spec.Category = models.Category(strings.ToUpper(strings.TrimSpace(string(spec.Category))))
		if spec.SensorCoverage != "" {
			if c, ok := models.ParseSensorCoverage(string(spec.SensorCoverage)); ok {
				spec.SensorCoverage = c
			} else {
				observability.Log.Warnw("Ignoring unrecognised sensor coverage", "equipment_id", spec.ID, "coverage", spec.SensorCoverage)
				spec.SensorCoverage = ""
			}
		}
		if spec.WeightKg != nil && *spec.WeightKg < 0 {
			observability.Log.Warnw("Ignoring negative weight", "equipment_id", spec.ID, "weight_kg", *spec.WeightKg)
			spec.WeightKg = nil
		}
		if len(item.Specs) > 0 {
			raw, err := json.Marshal(item.Specs)
			if err != nil {
				return nil, fmt.Errorf("equipment %d (%s): encode specs: %w", i, spec.ID, err)
			}
			spec.Specs = raw
		}
		if err := models.ValidateEquipmentSpec(&spec); err != nil {
			return nil, fmt.Errorf("equipment %d (%s): %w", i, spec.ID, err)
		}
		seen[spec.ID] = struct{}{}
		specs = append(specs, spec)
	}
	return specs, nil
}

// LoadAdapters reads an adapter table file
func LoadAdapters(path string) ([]models.Adapter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	adapters, err := ReadAdapters(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return adapters, nil
}

// ReadAdapters decodes an adapter table document
func ReadAdapters(r io.Reader) ([]models.Adapter, error) {
	var doc adapterDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode adapters: %w", err)
	}
	return doc.Adapters, nil
}
