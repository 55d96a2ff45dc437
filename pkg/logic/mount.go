package logic

import (
	"fmt"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// flangeFocalDistanceMM holds flange focal distances keyed by normalized mount.
// A lens can only be adapted to a body whose flange distance is shorter.
var flangeFocalDistanceMM = map[string]float64{
	"PV":      57.15,
	"PL":      52.00,
	"B4":      48.00,
	"F":       46.50,
	"LPL":     44.00,
	"EF":      44.00,
	"MFT":     19.25,
	"RF":      20.00,
	"L-MOUNT": 20.00,
	"L":       20.00,
	"E-MOUNT": 18.00,
	"E":       18.00,
	"FE":      18.00,
	"EF-M":    18.00,
	"X":       17.70,
	"Z":       16.00,
}

type mountPair struct {
	lens   string
	camera string
}

// mountSolutions are canned remedies for fixable pairs, keyed lens -> camera
var mountSolutions = map[mountPair]string{
	{"PL", "LPL"}:     "Fit the ARRI PL-to-LPL adapter; lens data contacts are passed through.",
	{"PL", "E-MOUNT"}: "Use a locking PL-to-E-Mount adapter and support the lens on rods.",
	{"PL", "RF"}:      "Fit the Canon PL-RF mount adapter; Cooke /i data passes through.",
	{"PL", "L-MOUNT"}: "Use a PL-to-L-Mount adapter with a locking ring.",
	{"EF", "E-MOUNT"}: "Use an electronic EF-to-E adapter to keep iris and focus control.",
	{"EF", "RF"}:      "Use the Canon EF-EOS R adapter; full electronic communication is kept.",
	{"EF", "L-MOUNT"}: "Use an electronic EF-to-L adapter.",
	{"F", "E-MOUNT"}:  "Use an F-to-E adapter with a manual aperture ring for G lenses.",
	{"PV", "PL"}:      "Panavision PV lenses need a Panavision-supplied PV-to-PL conversion; contact the rental house.",
}

// IsImpossibleMount reports whether the lens flange is shorter than the
// camera's, which no adapter can compensate for without optics
func IsImpossibleMount(lensMount, cameraMount string) bool {
	lensFlange, ok := flangeFocalDistanceMM[normalize(lensMount)]
	if !ok {
		return false
	}
	cameraFlange, ok := flangeFocalDistanceMM[normalize(cameraMount)]
	if !ok {
		return false
	}
	return lensFlange < cameraFlange
}

// CannedMountSolution returns the static remedy text for a fixable pair
func CannedMountSolution(lensMount, cameraMount string) (string, bool) {
	s, ok := mountSolutions[mountPair{normalize(lensMount), normalize(cameraMount)}]
	return s, ok
}

// ResolveMount checks a lens against its unit's host camera. It returns at
// most one MOUNT warning; missing data never produces one.
func ResolveMount(itemID string, lens, camera *models.EquipmentSpec, registry AdapterLookup) []models.CompatibilityWarning {
	if lens == nil || camera == nil {
		return nil
	}
	lensMount, cameraMount := normalize(lens.Mount), normalize(camera.Mount)
	if lensMount == "" || cameraMount == "" || lensMount == cameraMount {
		return nil
	}

	if IsImpossibleMount(lensMount, cameraMount) {
		return []models.CompatibilityWarning{{
			ItemID:   itemID,
			Type:     models.WarningTypeMount,
			Severity: models.SeverityError,
			Message: fmt.Sprintf("%s (%s) cannot be mounted on %s (%s): the lens flange distance is too short, no adapter can fix this mismatch",
				lens.DisplayName(), lensMount, camera.DisplayName(), cameraMount),
			Solution: fmt.Sprintf("Replace with a %s lens", cameraMount),
		}}
	}

	var adapters []models.Adapter
	if registry != nil {
		adapters = registry.FindCompatibleAdapters(lensMount, cameraMount)
	}
	solution, canned := CannedMountSolution(lensMount, cameraMount)

	if len(adapters) == 0 && !canned {
		return []models.CompatibilityWarning{{
			ItemID:   itemID,
			Type:     models.WarningTypeMount,
			Severity: models.SeverityError,
			Message: fmt.Sprintf("%s (%s) does not fit %s (%s) and no known adapter exists",
				lens.DisplayName(), lensMount, camera.DisplayName(), cameraMount),
		}}
	}

	if solution == "" {
		solution = fmt.Sprintf("Use a %s-to-%s adapter", lensMount, cameraMount)
	}
	return []models.CompatibilityWarning{{
		ItemID:   itemID,
		Type:     models.WarningTypeMount,
		Severity: models.SeverityWarning,
		Message: fmt.Sprintf("%s (%s) needs an adapter to fit %s (%s)",
			lens.DisplayName(), lensMount, camera.DisplayName(), cameraMount),
		Solution:          solution,
		SuggestedAdapters: adapters,
	}}
}

// lensCoverage reads the structured coverage first and falls back to the
// specs blob. An unparsable blob leaves coverage unknown.
func lensCoverage(lens *models.EquipmentSpec) (models.SensorCoverage, bool) {
	if c, ok := models.ParseSensorCoverage(string(lens.SensorCoverage)); ok {
		return c, true
	}
	blob, err := lens.ParseSpecs()
	if err != nil {
		return "", false
	}
	return models.ParseSensorCoverage(blob.Coverage)
}

// ResolveCoverage warns when the lens image circle is smaller than the sensor
func ResolveCoverage(itemID string, lens, camera *models.EquipmentSpec) []models.CompatibilityWarning {
	if lens == nil || camera == nil {
		return nil
	}
	cameraCoverage, ok := models.ParseSensorCoverage(string(camera.SensorCoverage))
	if !ok {
		return nil
	}
	coverage, ok := lensCoverage(lens)
	if !ok || coverage.Rank() >= cameraCoverage.Rank() {
		return nil
	}

	return []models.CompatibilityWarning{{
		ItemID:   itemID,
		Type:     models.WarningTypeSensor,
		Severity: models.SeverityWarning,
		Message: fmt.Sprintf("%s covers %s but %s has a %s sensor; expect vignetting",
			lens.DisplayName(), coverage, camera.DisplayName(), cameraCoverage),
		Solution: fmt.Sprintf("Switch the camera to a %s sensor mode or choose a lens covering %s", coverage, cameraCoverage),
	}}
}
