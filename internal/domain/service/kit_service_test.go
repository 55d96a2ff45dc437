package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsdfat8/kitcheck/internal/adapters/memory"
	"github.com/hsdfat8/kitcheck/internal/adapters/mocks"
	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/pkg/logic"
	"github.com/hsdfat8/kitcheck/pkg/repository"
)

func testCatalog() []models.EquipmentSpec {
	return []models.EquipmentSpec{
		{ID: "alexa35", Category: models.CategoryCamera, Subcategory: "body", Brand: "ARRI", Model: "Alexa 35", Mount: "LPL", SensorCoverage: models.CoverageS35},
		{ID: "s4", Category: models.CategoryLens, Brand: "Cooke", Model: "S4/i 50mm", Mount: "PL"},
		{ID: "venice2", Category: models.CategoryCamera, Subcategory: "body", Brand: "Sony", Model: "Venice 2", Mount: "PL", SensorCoverage: models.CoverageFF},
		{ID: "mp", Category: models.CategoryLens, Brand: "ARRI", Model: "Master Prime 40mm", Mount: "PL", SensorCoverage: models.CoverageS35},
		{ID: "cage", Category: models.CategorySupport, Brand: "Tilta", Model: "Camera Cage"},
	}
}

func setupService(t *testing.T) (ports.KitService, *mocks.MockCatalogRepository, *mocks.MockKitRepository) {
	t.Helper()
	catalog := mocks.NewMockCatalogRepository()
	catalog.AddSpec(testCatalog()...)
	kits := mocks.NewMockKitRepository()
	kits.AddKit(&models.Kit{ID: "kit-1", Name: "Two units", Entries: []models.InventoryEntry{
		{ID: "a-cam", EquipmentID: "alexa35", AssignedUnit: "A", Quantity: 1},
		{ID: "a-lens", EquipmentID: "s4", AssignedUnit: "A", Quantity: 1},
		{ID: "b-cam", EquipmentID: "venice2", AssignedUnit: "B", Quantity: 1},
		{ID: "b-lens", EquipmentID: "mp", AssignedUnit: "B", Quantity: 1},
	}})

	svc := NewKitService(catalog, kits, memory.NewInMemoryDismissalRepository(), nil)
	return svc, catalog, kits
}

func TestValidateKit(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	report, err := svc.ValidateKit(ctx, "kit-1")
	require.NoError(t, err)
	assert.Equal(t, "kit-1", report.KitID)
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, 0, report.ErrorCount)
	assert.Equal(t, 2, report.WarningCount)

	byItem := map[string]models.WarningType{}
	for _, w := range report.Warnings {
		byItem[w.ItemID] = w.Type
	}
	assert.Equal(t, models.WarningTypeMount, byItem["a-lens"])
	assert.Equal(t, models.WarningTypeSensor, byItem["b-lens"])

	_, err = svc.ValidateKit(ctx, "missing")
	assert.ErrorIs(t, err, ErrKitNotFound)
}

func TestDismissAndRestoreWarning(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	key := models.DismissalKey{ItemID: "b-lens", Type: models.WarningTypeSensor}

	require.NoError(t, svc.DismissWarning(ctx, "kit-1", key))

	report, err := svc.ValidateKit(ctx, "kit-1")
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	require.Len(t, report.Dismissed, 1)
	assert.Equal(t, "b-lens", report.Dismissed[0].ItemID)
	assert.Equal(t, 1, report.WarningCount)

	keys, err := svc.ListDismissed(ctx, "kit-1")
	require.NoError(t, err)
	assert.Equal(t, []models.DismissalKey{key}, keys)

	require.NoError(t, svc.RestoreWarning(ctx, "kit-1", key))
	report, err = svc.ValidateKit(ctx, "kit-1")
	require.NoError(t, err)
	assert.Len(t, report.Warnings, 2)
	assert.Empty(t, report.Dismissed)

	err = svc.DismissWarning(ctx, "kit-1", models.DismissalKey{ItemID: "b-lens", Type: "BOGUS"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	err = svc.DismissWarning(ctx, "missing", key)
	assert.ErrorIs(t, err, ErrKitNotFound)
}

func TestValidateEntries(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	entries := []models.InventoryEntry{
		{ID: "1", EquipmentID: "alexa35", AssignedUnit: "A", Quantity: 1},
		{ID: "2", EquipmentID: "s4", AssignedUnit: "A", Quantity: 1},
	}

	warnings, err := svc.ValidateEntries(ctx, entries, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarningTypeMount, warnings[0].Type)

	inline := []models.EquipmentSpec{
		{ID: "alexa35", Category: models.CategoryCamera, Brand: "ARRI", Model: "Alexa 35", Mount: "PL"},
		{ID: "s4", Category: models.CategoryLens, Brand: "Cooke", Model: "S4/i", Mount: "PL"},
	}
	warnings, err = svc.ValidateEntries(ctx, entries, inline)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateEntries_CatalogFailure(t *testing.T) {
	svc, catalog, _ := setupService(t)
	catalog.SnapshotFunc = func(ctx context.Context) ([]models.EquipmentSpec, error) {
		return nil, errors.New("connection reset")
	}

	_, err := svc.ValidateEntries(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidateEntries_CustomOptions(t *testing.T) {
	catalog := mocks.NewMockCatalogRepository()
	catalog.AddSpec(testCatalog()...)
	svc := NewKitService(catalog, mocks.NewMockKitRepository(), memory.NewInMemoryDismissalRepository(),
		repository.NewInMemoryAdapterRegistry(nil))

	warnings, err := svc.ValidateEntries(context.Background(), []models.InventoryEntry{
		{ID: "1", EquipmentID: "alexa35", AssignedUnit: "A", Quantity: 1},
		{ID: "2", EquipmentID: "s4", AssignedUnit: "A", Quantity: 1},
	}, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, models.SeverityWarning, warnings[0].Severity, "canned PL to LPL solution keeps this a warning")
	assert.Empty(t, warnings[0].SuggestedAdapters)

	heavy := 2.5
	catalog.AddSpec(models.EquipmentSpec{ID: "zoom", Category: models.CategoryLens, Brand: "Angenieux", Model: "EZ-1", Mount: "LPL", WeightKg: &heavy})
	svc = NewKitService(catalog, mocks.NewMockKitRepository(), memory.NewInMemoryDismissalRepository(), nil,
		logic.WithHeavyLensThreshold(3))
	warnings, err = svc.ValidateEntries(context.Background(), []models.InventoryEntry{
		{ID: "1", EquipmentID: "alexa35", AssignedUnit: "A", Quantity: 1},
		{ID: "2", EquipmentID: "zoom", AssignedUnit: "A", Quantity: 1},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestSuggestAccessories(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	suggestions, err := svc.SuggestAccessories(ctx, "venice2")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "cage", suggestions[0].Item.ID)

	_, err = svc.SuggestAccessories(ctx, "s4")
	assert.ErrorIs(t, err, ErrNotCameraBody)

	_, err = svc.SuggestAccessories(ctx, "missing")
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestFindAdapters(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	all, err := svc.FindAdapters(ctx, "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	fromEF, err := svc.FindAdapters(ctx, "ef", "")
	require.NoError(t, err)
	for _, a := range fromEF {
		assert.Equal(t, "EF", a.FromMount)
	}

	exact, err := svc.FindAdapters(ctx, "PL", "LPL")
	require.NoError(t, err)
	assert.Len(t, exact, 1)
}

func TestEquipmentCRUD(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	spec := &models.EquipmentSpec{ID: "fx6", Category: models.CategoryCamera, Brand: "Sony", Model: "FX6", SensorCoverage: "Full Frame"}
	require.NoError(t, svc.UpsertEquipment(ctx, spec))

	stored, err := svc.GetEquipment(ctx, "fx6")
	require.NoError(t, err)
	assert.Equal(t, models.CoverageFF, stored.SensorCoverage)

	err = svc.UpsertEquipment(ctx, &models.EquipmentSpec{ID: "bad", Category: "DRONE"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	cameras, err := svc.ListEquipment(ctx, models.CategoryCamera, 0, 0)
	require.NoError(t, err)
	assert.Len(t, cameras, 3)

	_, err = svc.ListEquipment(ctx, "DRONE", 0, 10)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	require.NoError(t, svc.DeleteEquipment(ctx, "fx6"))
	_, err = svc.GetEquipment(ctx, "fx6")
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
	assert.ErrorIs(t, svc.DeleteEquipment(ctx, "fx6"), ErrEquipmentNotFound)
}

func TestKitCRUD(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	kit := &models.Kit{ID: "kit-2", Name: "Splinter", Entries: []models.InventoryEntry{
		{ID: "e1", EquipmentID: "venice2", AssignedUnit: "C", Quantity: 1},
	}}
	require.NoError(t, svc.SaveKit(ctx, kit))

	stored, err := svc.GetKit(ctx, "kit-2")
	require.NoError(t, err)
	assert.Equal(t, "Splinter", stored.Name)

	kits, err := svc.ListKits(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, kits, 2)

	err = svc.SaveKit(ctx, &models.Kit{ID: "kit-3", Entries: []models.InventoryEntry{{ID: "e1", EquipmentID: "x"}}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	require.NoError(t, svc.DismissWarning(ctx, "kit-2", models.DismissalKey{ItemID: "e1", Type: models.WarningTypeGeneral}))
	require.NoError(t, svc.DeleteKit(ctx, "kit-2"))
	keys, err := svc.ListDismissed(ctx, "kit-2")
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.ErrorIs(t, svc.DeleteKit(ctx, "kit-2"), ErrKitNotFound)
}
