package logic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

func TestEvaluateHardware_Media(t *testing.T) {
	alexa := &models.EquipmentSpec{ID: "cam", Category: models.CategoryCamera, Brand: "ARRI", Model: "Alexa Mini",
		MediaProfile:     &models.MediaProfile{Slots: []string{"CFast 2.0", "Codex Compact Drive"}},
		CompatibleCodecs: []string{"ARRIRAW", "ProRes 4444 XQ"},
	}

	tests := []struct {
		name   string
		media  models.MediaProfile
		expect []models.Severity
	}{
		{
			name:  "Slot and codec match",
			media: models.MediaProfile{MediaType: "cfast 2.0", CertifiedCodecs: []string{"prores 4444 xq"}},
		},
		{
			name:   "Wrong slot",
			media:  models.MediaProfile{MediaType: "SxS Pro+"},
			expect: []models.Severity{models.SeverityError},
		},
		{
			name:   "Codec not certified",
			media:  models.MediaProfile{MediaType: "CFast 2.0", CertifiedCodecs: []string{"XAVC"}},
			expect: []models.Severity{models.SeverityWarning},
		},
		{
			name:   "Wrong slot and codec",
			media:  models.MediaProfile{MediaType: "SD", CertifiedCodecs: []string{"H.264"}},
			expect: []models.Severity{models.SeverityError, models.SeverityWarning},
		},
		{
			name:  "No media type declared",
			media: models.MediaProfile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media := tt.media
			card := &models.EquipmentSpec{ID: "card", Category: models.CategoryMedia, Brand: "Angelbird", Model: "Card", MediaProfile: &media}
			warnings := EvaluateHardware("e2", alexa, card, DefaultOptions())

			require.Len(t, warnings, len(tt.expect))
			for i, w := range warnings {
				assert.Equal(t, models.WarningTypeMedia, w.Type)
				assert.Equal(t, tt.expect[i], w.Severity)
				assert.Equal(t, "e2", w.ItemID)
			}
		})
	}
}

func TestEvaluateHardware_HostRestriction(t *testing.T) {
	venice2 := &models.EquipmentSpec{ID: "cam", Category: models.CategoryCamera, Brand: "Sony", Model: "Venice 2"}
	fx6 := &models.EquipmentSpec{ID: "cam2", Category: models.CategoryCamera, Brand: "Sony", Model: "FX6"}

	plate := &models.EquipmentSpec{ID: "plate", Category: models.CategorySupport, Brand: "Wooden Camera", Model: "Venice 2 Baseplate", CompatibleWith: "sony-venice-2"}
	assert.Empty(t, EvaluateHardware("e2", venice2, plate, DefaultOptions()))

	warnings := EvaluateHardware("e2", fx6, plate, DefaultOptions())
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarningTypeGeneral, warnings[0].Type)
	assert.Equal(t, models.SeverityError, warnings[0].Severity)

	blobOnly := &models.EquipmentSpec{ID: "cage", Category: models.CategorySupport, Brand: "Tilta", Model: "Cage",
		Specs: json.RawMessage(`{"compatibleWith":"Sony Venice 2"}`)}
	assert.Len(t, EvaluateHardware("e3", fx6, blobOnly, DefaultOptions()), 1)

	broken := &models.EquipmentSpec{ID: "cage", Category: models.CategorySupport, Brand: "Tilta", Model: "Cage", Specs: json.RawMessage(`nope`)}
	assert.Empty(t, EvaluateHardware("e4", fx6, broken, DefaultOptions()))
}

func TestEvaluateHardware_LensWeightFromBlob(t *testing.T) {
	cam := &models.EquipmentSpec{ID: "cam", Category: models.CategoryCamera, Brand: "ARRI", Model: "Alexa 35"}
	heavy := &models.EquipmentSpec{ID: "zoom", Category: models.CategoryLens, Brand: "Fujinon", Model: "Premista 28-100",
		Specs: json.RawMessage(`{"weightKg": 3.8}`)}
	light := &models.EquipmentSpec{ID: "prime", Category: models.CategoryLens, Brand: "Zeiss", Model: "CP.3", WeightKg: kg(0.9),
		Specs: json.RawMessage(`{"weightKg": 5}`)}

	warnings := EvaluateHardware("e2", cam, heavy, DefaultOptions())
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarningTypeWeight, warnings[0].Type)
	assert.Equal(t, models.SeverityWarning, warnings[0].Severity)

	assert.Empty(t, EvaluateHardware("e3", cam, light, DefaultOptions()))
}

func TestEvaluateHardware_NilSpecs(t *testing.T) {
	cam := &models.EquipmentSpec{ID: "cam", Category: models.CategoryCamera}
	assert.Nil(t, EvaluateHardware("e1", nil, cam, DefaultOptions()))
	assert.Nil(t, EvaluateHardware("e1", cam, nil, DefaultOptions()))
}

func TestOverrides(t *testing.T) {
	komodo := &models.EquipmentSpec{ID: "komodo", Category: models.CategoryCamera, Brand: "RED", Model: "Komodo 6K",
		MediaProfile: &models.MediaProfile{Slots: []string{"CFast 2.0"}}}
	venice := &models.EquipmentSpec{ID: "venice", Category: models.CategoryCamera, Brand: "Sony", Model: "Venice"}
	venice2 := &models.EquipmentSpec{ID: "venice2", Category: models.CategoryCamera, Brand: "Sony", Model: "Venice 2"}
	alexa35 := &models.EquipmentSpec{ID: "alexa35", Category: models.CategoryCamera, Brand: "ARRI", Model: "Alexa 35"}

	cfexpress := &models.EquipmentSpec{ID: "cfx", Category: models.CategoryMedia, Brand: "Angelbird", Model: "AV Pro",
		MediaProfile: &models.MediaProfile{MediaType: "CFexpress Type B"}}
	rialto := &models.EquipmentSpec{ID: "rialto", Category: models.CategorySupport, Brand: "Sony", Model: "Rialto"}
	rialto2 := &models.EquipmentSpec{ID: "rialto2", Category: models.CategorySupport, Brand: "Sony", Model: "Rialto 2"}
	drive1tb := &models.EquipmentSpec{ID: "cd1", Category: models.CategoryMedia, Brand: "Codex", Model: "Compact Drive 1TB"}
	drive2tb := &models.EquipmentSpec{ID: "cd2", Category: models.CategoryMedia, Brand: "Codex", Model: "Compact Drive 2TB"}

	tests := []struct {
		name       string
		primary    *models.EquipmentSpec
		peripheral *models.EquipmentSpec
		rule       string
	}{
		{name: "Komodo with CFexpress", primary: komodo, peripheral: cfexpress, rule: "komodo-cfexpress"},
		{name: "Venice 2 with Rialto", primary: venice2, peripheral: rialto, rule: "venice2-rialto1"},
		{name: "Venice 2 with Rialto 2", primary: venice2, peripheral: rialto2},
		{name: "Venice with Rialto 2", primary: venice, peripheral: rialto2, rule: "venice1-rialto2"},
		{name: "Venice with Rialto", primary: venice, peripheral: rialto},
		{name: "Alexa 35 with 1TB drive", primary: alexa35, peripheral: drive1tb, rule: "alexa35-compact-drive-1tb"},
		{name: "Alexa 35 with 2TB drive", primary: alexa35, peripheral: drive2tb},
	}

	rules := DefaultOverrideRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matched string
			for _, r := range rules {
				if r.Matches(tt.primary, tt.peripheral) {
					matched = r.Name
					break
				}
			}
			assert.Equal(t, tt.rule, matched)
		})
	}

	// the generic slot check still runs after an override fires
	warnings := EvaluateHardware("e2", komodo, cfexpress, DefaultOptions())
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, "CFast")
	assert.Equal(t, models.SeverityError, warnings[1].Severity)

	assert.Len(t, EvaluateHardware("e2", komodo, cfexpress, newOptions([]Option{WithOverrides(nil)})), 1)
}

func TestIsImpossibleMount(t *testing.T) {
	assert.True(t, IsImpossibleMount("E-Mount", "PL"))
	assert.True(t, IsImpossibleMount("rf", "lpl"))
	assert.False(t, IsImpossibleMount("PL", "E-Mount"))
	assert.False(t, IsImpossibleMount("EF", "LPL"))
	assert.False(t, IsImpossibleMount("Unknown", "PL"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "sony-venice-2", slug("Sony Venice 2"))
	assert.Equal(t, "sony-venice-2", slug("  sony_venice--2 "))
	assert.Equal(t, "", slug("  "))
}
