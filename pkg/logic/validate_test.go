package logic

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/pkg/repository"
)

func camera(id, brand, model, mount string, coverage models.SensorCoverage) models.EquipmentSpec {
	return models.EquipmentSpec{ID: id, Category: models.CategoryCamera, Subcategory: "body", Brand: brand, Model: model, Mount: mount, SensorCoverage: coverage}
}

func lens(id, brand, model, mount string, coverage models.SensorCoverage) models.EquipmentSpec {
	return models.EquipmentSpec{ID: id, Category: models.CategoryLens, Brand: brand, Model: model, Mount: mount, SensorCoverage: coverage}
}

func entry(id, equipmentID, unit string) models.InventoryEntry {
	return models.InventoryEntry{ID: id, EquipmentID: equipmentID, AssignedUnit: unit, Quantity: 1}
}

func ofType(warnings []models.CompatibilityWarning, t models.WarningType) []models.CompatibilityWarning {
	var out []models.CompatibilityWarning
	for _, w := range warnings {
		if w.Type == t {
			out = append(out, w)
		}
	}
	return out
}

func kg(v float64) *float64 { return &v }

func TestValidate_MountReflexivity(t *testing.T) {
	mounts := []string{"PL", "LPL", "E-Mount", "RF", "EF", "pl", " lpl "}
	for _, cameraMount := range mounts {
		for _, lensMount := range mounts {
			if normalize(cameraMount) != normalize(lensMount) {
				continue
			}
			catalog := []models.EquipmentSpec{
				camera("cam", "ARRI", "Alexa Mini", cameraMount, ""),
				lens("lens", "Zeiss", "CP.3", lensMount, ""),
			}
			entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}

			warnings := Validate(entries, catalog)
			assert.Empty(t, ofType(warnings, models.WarningTypeMount), "camera %q lens %q", cameraMount, lensMount)
		}
	}
}

func TestValidate_ImpossibleMount(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "ARRI", "Alexa Mini LF", "PL", models.CoverageLF),
		lens("lens", "Sony", "FE 24-70 GM", "E-Mount", ""),
	}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}

	mount := ofType(Validate(entries, catalog), models.WarningTypeMount)
	require.Len(t, mount, 1)
	assert.Equal(t, models.SeverityError, mount[0].Severity)
	assert.Equal(t, "e2", mount[0].ItemID)
	assert.Empty(t, mount[0].SuggestedAdapters)
	assert.Contains(t, mount[0].Message, "no adapter can fix")
}

func TestValidate_AdapterFound(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "ARRI", "Alexa 35", "LPL", models.CoverageS35),
		lens("lens", "Cooke", "S4/i 32mm", "PL", ""),
	}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}

	warnings := Validate(entries, catalog)
	require.Len(t, warnings, 1)
	w := warnings[0]
	assert.Equal(t, models.WarningTypeMount, w.Type)
	assert.Equal(t, models.SeverityWarning, w.Severity)
	assert.Equal(t, "e2", w.ItemID)
	require.NotEmpty(t, w.SuggestedAdapters)
	assert.Equal(t, "PL", w.SuggestedAdapters[0].FromMount)
	assert.Equal(t, "LPL", w.SuggestedAdapters[0].ToMount)
	assert.NotEmpty(t, w.Solution)
}

func TestValidate_CannedSolutionWithoutAdapter(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "Sony", "FX6", "E-Mount", models.CoverageFF),
		lens("lens", "Canon", "CN-E 50mm", "EF", models.CoverageFF),
	}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}

	empty := repository.NewInMemoryAdapterRegistry(nil)
	mount := ofType(Validate(entries, catalog, WithRegistry(empty)), models.WarningTypeMount)
	require.Len(t, mount, 1)
	assert.Equal(t, models.SeverityWarning, mount[0].Severity)
	assert.Empty(t, mount[0].SuggestedAdapters)
	assert.Contains(t, mount[0].Solution, "EF-to-E")
}

func TestValidate_NoKnownAdapter(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "Blackmagic", "URSA Broadcast", "B4", models.CoverageS35),
		lens("lens", "Cooke", "S4/i 50mm", "PL", ""),
	}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}

	mount := ofType(Validate(entries, catalog), models.WarningTypeMount)
	require.Len(t, mount, 1)
	assert.Equal(t, models.SeverityError, mount[0].Severity)
	assert.Contains(t, mount[0].Message, "no known adapter")
}

func TestValidate_MissingDataNeverWarns(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "RED", "V-Raptor", "", models.CoverageFF),
		lens("lens", "Cooke", "S7/i", "PL", ""),
		lens("orphan", "Zeiss", "Supreme Prime", "PL", models.CoverageS35),
	}
	entries := []models.InventoryEntry{
		entry("e1", "cam", "A"),
		entry("e2", "lens", "A"),
		entry("e3", "orphan", "B"),
		entry("e4", "not-in-catalog", "A"),
	}

	assert.Empty(t, Validate(entries, catalog))
}

func TestValidate_CoverageMonotonicity(t *testing.T) {
	coverages := []models.SensorCoverage{models.CoverageS35, models.CoverageFF, models.CoverageLF}
	for _, cameraCoverage := range coverages {
		for _, lensCoverage := range coverages {
			t.Run(fmt.Sprintf("%s camera %s lens", cameraCoverage, lensCoverage), func(t *testing.T) {
				catalog := []models.EquipmentSpec{
					camera("cam", "ARRI", "Alexa", "PL", cameraCoverage),
					lens("lens", "Zeiss", "Master Prime", "PL", lensCoverage),
				}
				entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}

				sensor := ofType(Validate(entries, catalog), models.WarningTypeSensor)
				if lensCoverage.Rank() < cameraCoverage.Rank() {
					require.Len(t, sensor, 1)
					assert.Equal(t, models.SeverityWarning, sensor[0].Severity)
				} else {
					assert.Empty(t, sensor)
				}
			})
		}
	}
}

func TestValidate_CoverageFromSpecsBlob(t *testing.T) {
	vintage := lens("lens", "Canon", "K35", "PL", "")
	vintage.Specs = json.RawMessage(`{"coverage":"Super 35"}`)
	broken := lens("broken", "Canon", "K35", "PL", "")
	broken.Specs = json.RawMessage(`{coverage`)

	catalog := []models.EquipmentSpec{camera("cam", "ARRI", "Alexa Mini LF", "PL", models.CoverageLF), vintage, broken}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A"), entry("e3", "broken", "A")}

	sensor := ofType(Validate(entries, catalog), models.WarningTypeSensor)
	require.Len(t, sensor, 1)
	assert.Equal(t, "e2", sensor[0].ItemID)
}

func TestValidate_MistypedSpecsKeySkipsOnlyItsCheck(t *testing.T) {
	vintage := lens("lens", "Canon", "K35", "PL", "")
	vintage.Specs = json.RawMessage(`{"coverage":"Super 35","weightKg":"1.2 kg"}`)

	catalog := []models.EquipmentSpec{camera("cam", "ARRI", "Alexa Mini LF", "PL", models.CoverageLF), vintage}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}
	warnings := Validate(entries, catalog, WithHeavyLensThreshold(0.5))

	sensor := ofType(warnings, models.WarningTypeSensor)
	require.Len(t, sensor, 1)
	assert.Equal(t, "e2", sensor[0].ItemID)
	assert.Empty(t, ofType(warnings, models.WarningTypeWeight))
}

func TestValidate_SmallFormatCoverageSkipped(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "ARRI", "Alexa 35", "PL", models.CoverageS35),
		lens("s16", "Zeiss", "Ultra 16", "PL", "Super 16"),
		lens("mft", "Olympus", "12mm", "PL", "MFT"),
	}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "s16", "A"), entry("e3", "mft", "A")}

	assert.Empty(t, ofType(Validate(entries, catalog), models.WarningTypeSensor))
}

func TestValidate_PowerThreshold(t *testing.T) {
	cam := camera("cam", "Sony", "Venice 2", "PL", models.CoverageFF)
	cam.Power = &models.PowerProfile{MinVoltage: 20, MaxVoltage: 34, MountType: "B-Mount"}
	battery := models.EquipmentSpec{ID: "bat", Category: models.CategorySupport, Brand: "IDX", Model: "Duo-C150",
		BatteryProfile: &models.BatteryProfile{Voltage: 14.4, MountType: "V-Mount"}}

	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "bat", "A")}
	power := ofType(Validate(entries, []models.EquipmentSpec{cam, battery}), models.WarningTypePower)
	require.Len(t, power, 2)

	severities := map[models.Severity]int{}
	for _, w := range power {
		assert.Equal(t, "e2", w.ItemID)
		severities[w.Severity]++
	}
	assert.Equal(t, 1, severities[models.SeverityError])
	assert.Equal(t, 1, severities[models.SeverityWarning])

	battery.BatteryProfile.MountType = "b-mount"
	power = ofType(Validate(entries, []models.EquipmentSpec{cam, battery}), models.WarningTypePower)
	require.Len(t, power, 1)
	assert.Equal(t, models.SeverityError, power[0].Severity)
}

func TestValidate_Dependency(t *testing.T) {
	monitor := models.EquipmentSpec{ID: "mon", Category: models.CategoryOther, Brand: "SmallHD", Model: "Cine 7",
		Dependencies: []string{"Extension Cable", "90 Degree SDI"}}
	cable := models.EquipmentSpec{ID: "cable", Category: models.CategoryOther, Brand: "ARRI", Model: "Extension Cable 2m"}
	elsewhere := models.EquipmentSpec{ID: "sdi", Category: models.CategoryOther, Brand: "Kondor", Model: "90 Degree SDI"}

	entries := []models.InventoryEntry{entry("e1", "mon", "A"), entry("e2", "cable", "A"), entry("e3", "sdi", "B")}
	deps := ofType(Validate(entries, []models.EquipmentSpec{monitor, cable, elsewhere}), models.WarningTypeDependency)

	require.Len(t, deps, 1)
	assert.Equal(t, "e1", deps[0].ItemID)
	assert.Equal(t, models.SeverityWarning, deps[0].Severity)
	assert.Equal(t, []string{"90 Degree SDI"}, deps[0].Missing)
	assert.Contains(t, deps[0].Message, "90 Degree SDI")
	assert.NotContains(t, deps[0].Message, "Extension Cable,")
}

func TestValidate_EntriesWithoutIDs(t *testing.T) {
	cam := camera("cam", "Sony", "Venice 2", "PL", models.CoverageFF)
	cam.Power = &models.PowerProfile{MinVoltage: 20, MountType: "B-Mount"}
	battery := models.EquipmentSpec{ID: "bat", Category: models.CategorySupport, Brand: "IDX", Model: "Duo-C150",
		BatteryProfile: &models.BatteryProfile{Voltage: 14.4, MountType: "V-Mount"}}
	monitor := models.EquipmentSpec{ID: "mon", Category: models.CategoryOther, Brand: "SmallHD", Model: "Cine 7",
		Dependencies: []string{"Duo"}}
	catalog := []models.EquipmentSpec{cam, battery, monitor}

	for _, id := range []string{"", "same"} {
		t.Run(fmt.Sprintf("id %q", id), func(t *testing.T) {
			entries := []models.InventoryEntry{entry(id, "cam", "A"), entry(id, "bat", "A"), entry(id, "mon", "A")}
			warnings := Validate(entries, catalog)

			assert.Len(t, ofType(warnings, models.WarningTypePower), 2)
			assert.Empty(t, ofType(warnings, models.WarningTypeDependency))
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	cam := camera("cam", "Sony", "Venice 2", "LPL", models.CoverageLF)
	cam.Power = &models.PowerProfile{MinVoltage: 20, MountType: "B-Mount"}
	catalog := []models.EquipmentSpec{
		cam,
		lens("l1", "Cooke", "S4/i", "PL", models.CoverageS35),
		lens("l2", "Sony", "G Master", "E-Mount", models.CoverageFF),
		{ID: "bat", Category: models.CategorySupport, Brand: "IDX", Model: "Duo", BatteryProfile: &models.BatteryProfile{Voltage: 14.4, MountType: "V-Mount"}},
		{ID: "mon", Category: models.CategoryOther, Brand: "SmallHD", Model: "Cine 7", Dependencies: []string{"Cable"}},
	}
	entries := []models.InventoryEntry{
		entry("e1", "cam", "A"), entry("e2", "l1", "A"), entry("e3", "l2", "A"), entry("e4", "bat", "A"), entry("e5", "mon", "A"),
	}

	first := Validate(entries, catalog)
	second := Validate(entries, catalog)
	assert.NotEmpty(t, first)
	assert.ElementsMatch(t, first, second)
}

func TestValidate_ScenarioAlexa35CookeS4(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("alexa35", "ARRI", "Alexa 35", "LPL", ""),
		lens("s4", "Cooke", "S4/i 50mm", "PL", ""),
	}
	entries := []models.InventoryEntry{entry("a-cam", "alexa35", "A"), entry("a-lens", "s4", "A")}

	warnings := Validate(entries, catalog)
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarningTypeMount, warnings[0].Type)
	assert.Equal(t, models.SeverityWarning, warnings[0].Severity)
	assert.Equal(t, "a-lens", warnings[0].ItemID)
}

func TestValidate_ScenarioVenice2MasterPrime(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("venice2", "Sony", "Venice 2", "PL", models.CoverageFF),
		lens("mp", "ARRI", "Master Prime 40mm", "PL", models.CoverageS35),
	}
	entries := []models.InventoryEntry{entry("b-cam", "venice2", "B"), entry("b-lens", "mp", "B")}

	warnings := Validate(entries, catalog)
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarningTypeSensor, warnings[0].Type)
	assert.Equal(t, models.SeverityWarning, warnings[0].Severity)
	assert.Equal(t, "b-lens", warnings[0].ItemID)
	assert.Empty(t, ofType(warnings, models.WarningTypeMount))
}

func TestValidate_FirstCameraIsHost(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("lpl", "ARRI", "Alexa 35", "LPL", ""),
		camera("pl", "ARRI", "Alexa Mini", "PL", ""),
		lens("lens", "Cooke", "S4/i", "PL", ""),
	}
	entries := []models.InventoryEntry{entry("e0", "lens", "A"), entry("e1", "lpl", "A"), entry("e2", "pl", "A")}

	warnings := Validate(entries, catalog)
	require.Len(t, warnings, 1)
	assert.Equal(t, "e0", warnings[0].ItemID)
	assert.Contains(t, warnings[0].Message, "Alexa 35")

	host, ok := HostFor("A", entries, catalog)
	require.True(t, ok)
	assert.Equal(t, "lpl", host.ID)
	_, ok = HostFor("Z", entries, catalog)
	assert.False(t, ok)
}

func TestValidate_DuplicateCatalogIDFirstWins(t *testing.T) {
	catalog := []models.EquipmentSpec{
		camera("cam", "ARRI", "Alexa Mini", "PL", ""),
		camera("cam", "Sony", "FX6", "E-Mount", ""),
		lens("lens", "Cooke", "S4/i", "PL", ""),
	}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "lens", "A")}
	assert.Empty(t, Validate(entries, catalog))
}

func TestValidate_HeavyLensThreshold(t *testing.T) {
	zoom := lens("zoom", "Angenieux", "Optimo 24-290", "PL", "")
	zoom.WeightKg = kg(11)
	catalog := []models.EquipmentSpec{camera("cam", "ARRI", "Alexa Mini", "PL", ""), zoom}
	entries := []models.InventoryEntry{entry("e1", "cam", "A"), entry("e2", "zoom", "A")}

	weight := ofType(Validate(entries, catalog), models.WarningTypeWeight)
	require.Len(t, weight, 1)
	assert.Contains(t, weight[0].Solution, "rod")

	assert.Empty(t, ofType(Validate(entries, catalog, WithHeavyLensThreshold(12)), models.WarningTypeWeight))
}

func TestValidate_EmptyInputs(t *testing.T) {
	warnings := Validate(nil, nil)
	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}
