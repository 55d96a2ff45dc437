package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/pkg/logic"
)

func fixture() (*models.Kit, []models.EquipmentSpec, []models.CompatibilityWarning) {
	kit := &models.Kit{ID: "kit-1", Name: "Two units", Entries: []models.InventoryEntry{
		{ID: "b-cam", EquipmentID: "venice2", AssignedUnit: "B", Quantity: 1},
		{ID: "b-lens", EquipmentID: "mp", AssignedUnit: "B", Quantity: 1},
		{ID: "a-cam", EquipmentID: "alexa35", AssignedUnit: "A", Quantity: 1},
		{ID: "a-lens", EquipmentID: "s4", AssignedUnit: "A", Quantity: 2},
	}}
	catalog := []models.EquipmentSpec{
		{ID: "alexa35", Category: models.CategoryCamera, Brand: "ARRI", Model: "Alexa 35", Mount: "LPL"},
		{ID: "s4", Category: models.CategoryLens, Brand: "Cooke", Model: "S4/i 50mm", Mount: "PL"},
		{ID: "venice2", Category: models.CategoryCamera, Brand: "Sony", Model: "Venice 2", Mount: "PL"},
		{ID: "mp", Category: models.CategoryLens, Brand: "ARRI", Model: "Master Prime 40mm", Mount: "PL"},
	}
	warnings := []models.CompatibilityWarning{
		{ItemID: "b-lens", Type: models.WarningTypeSensor, Severity: models.SeverityWarning, Message: "Lens may vignette"},
		{ItemID: "a-lens", Type: models.WarningTypeMount, Severity: models.SeverityError, Message: "PL lens on LPL camera",
			Solution: "Use an adapter", SuggestedAdapters: []models.Adapter{{Brand: "ARRI", Model: "PL-to-LPL"}}},
		{ItemID: "ghost", Type: models.WarningTypeGeneral, Severity: models.SeverityWarning, Message: "Unknown entry"},
	}
	return kit, catalog, warnings
}

func TestResolveRowsOrdering(t *testing.T) {
	kit, catalog, warnings := fixture()

	rows := resolveRows(kit, catalog, warnings)
	require.Len(t, rows, 3)

	assert.Equal(t, "", rows[0].unit)
	assert.Equal(t, "ghost", rows[0].item)
	assert.Equal(t, "A", rows[1].unit)
	assert.Equal(t, "Cooke S4/i 50mm", rows[1].item)
	assert.Equal(t, "B", rows[2].unit)

	cells := rows[1].cells()
	assert.Equal(t, "Use an adapter; adapters: ARRI PL-to-LPL", cells[5])
}

func TestRenderWarnings(t *testing.T) {
	kit, catalog, warnings := fixture()

	var buf bytes.Buffer
	require.NoError(t, RenderWarnings(&buf, kit, catalog, warnings))

	out := buf.String()
	assert.Contains(t, out, "UNIT")
	assert.Contains(t, out, "PL lens on LPL camera")
	assert.Contains(t, out, "1 error(s), 2 warning(s)")
	assert.NotContains(t, out, "╭", "non-terminal output stays ASCII")
	assert.Less(t, strings.Index(out, "Cooke S4/i 50mm"), strings.Index(out, "Master Prime"))
}

func TestRenderWarnings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderWarnings(&buf, nil, nil, nil))
	assert.Equal(t, "No compatibility warnings.\n", buf.String())
}

func TestWriteWorkbook(t *testing.T) {
	kit, catalog, warnings := fixture()

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, kit, catalog, warnings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Warnings", "Kit"}, f.GetSheetList())

	rows, err := f.GetRows("Warnings")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, warningHeaders, rows[0])
	assert.Equal(t, "MOUNT", rows[2][2])
	assert.Equal(t, "ERROR", rows[2][3])

	kitRows, err := f.GetRows("Kit")
	require.NoError(t, err)
	require.Len(t, kitRows, 5)
	assert.Equal(t, []string{"a-lens", "A", "s4", "Cooke S4/i 50mm", "LENS", "PL", "2"}, kitRows[4])
}

func TestRenderSuggestions(t *testing.T) {
	host := &models.EquipmentSpec{ID: "alexa35", Category: models.CategoryCamera, Brand: "ARRI", Model: "Alexa 35"}
	suggestions := []logic.Suggestion{
		{Item: models.EquipmentSpec{ID: "cage", Category: models.CategorySupport, Brand: "Wooden Camera", Model: "Cage"},
			Layer: logic.LayerUniversalKeyword, Reason: "universal essential: cage"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSuggestions(&buf, host, suggestions))
	assert.Contains(t, strings.ToLower(buf.String()), "accessories for arri alexa 35")
	assert.Contains(t, buf.String(), "universal essential: cage")

	buf.Reset()
	require.NoError(t, RenderSuggestions(&buf, host, nil))
	assert.Equal(t, "No accessories found for ARRI Alexa 35.\n", buf.String())
}

func TestRenderAdapters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderAdapters(&buf, []models.Adapter{
		{FromMount: "EF", ToMount: "LPL", Brand: "ARRI", Model: "LPL to EF Adapter", MaintainsInfinityFocus: true},
	}))
	assert.Contains(t, buf.String(), "ARRI LPL to EF Adapter")
	assert.Contains(t, buf.String(), "yes")

	buf.Reset()
	require.NoError(t, RenderAdapters(&buf, nil))
	assert.Equal(t, "No adapters found.\n", buf.String())
}
