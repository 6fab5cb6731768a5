package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

func TestInventory_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.Inventory{
		Stocks: []model.StockPreset{
			{ID: "abc", Name: "MDF 18mm", Size: model.Rect{W: 2440, H: 1220}, CostPerSheet: 45},
		},
		Offcuts: []model.Offcut{
			{ID: "off1", SheetLabel: "MDF 18mm", Size: model.Rect{W: 300, H: 200}},
		},
	}
	require.NoError(t, SaveInventory(path, inv))

	loaded, err := LoadInventory(path)
	require.NoError(t, err)
	require.Len(t, loaded.Stocks, 1)
	assert.Equal(t, "MDF 18mm", loaded.Stocks[0].Name)
	assert.Equal(t, 45.0, loaded.Stocks[0].CostPerSheet)
	require.Len(t, loaded.Offcuts, 1)
	assert.Equal(t, "off1", loaded.Offcuts[0].ID)
}

func TestLoadInventory_MissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv, err := LoadInventory(path)
	require.NoError(t, err)
	assert.NotEmpty(t, inv.Stocks, "default inventory should ship with presets")
	assert.FileExists(t, path)
}

func TestImportInventory_MergesSkippingDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imported.json")

	existing := model.Inventory{
		Stocks:  []model.StockPreset{{ID: "keep", Name: "Existing", Size: model.Rect{W: 1000, H: 500}}},
		Offcuts: []model.Offcut{{ID: "off1", Size: model.Rect{W: 200, H: 100}}},
	}
	imported := model.Inventory{
		Stocks: []model.StockPreset{
			{ID: "keep", Name: "Duplicate", Size: model.Rect{W: 1, H: 1}},
			{ID: "new", Name: "New preset", Size: model.Rect{W: 1220, H: 610}},
		},
		Offcuts: []model.Offcut{
			{ID: "off1", Size: model.Rect{W: 1, H: 1}},
			{ID: "off2", Size: model.Rect{W: 400, H: 300}},
		},
	}
	require.NoError(t, SaveInventory(path, imported))

	merged, err := ImportInventory(path, existing)
	require.NoError(t, err)
	require.Len(t, merged.Stocks, 2)
	assert.Equal(t, "Existing", merged.Stocks[0].Name, "duplicate IDs keep the existing entry")
	assert.Equal(t, "new", merged.Stocks[1].ID)
	require.Len(t, merged.Offcuts, 2)
	assert.Equal(t, 200.0, merged.Offcuts[0].Size.W)
}
