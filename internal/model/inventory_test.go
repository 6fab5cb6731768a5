package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_AddAndRemoveStock(t *testing.T) {
	inv := Inventory{}
	preset := NewStockPreset("MDF 2440x1220", 2440, 1220)

	inv.AddStock(preset)
	require.Len(t, inv.Stocks, 1)

	assert.True(t, inv.RemoveStock(preset.ID))
	assert.Empty(t, inv.Stocks)
	assert.False(t, inv.RemoveStock("missing"))
}

func TestInventory_BankAndTakeOffcut(t *testing.T) {
	inv := Inventory{}
	offcut := Offcut{ID: "abc12345", SheetLabel: "Birch", Size: Rect{W: 500, H: 300}}

	inv.BankOffcuts([]Offcut{offcut})
	require.Len(t, inv.Offcuts, 1)

	sheet, ok := inv.TakeOffcut("abc12345")
	require.True(t, ok)
	assert.Equal(t, "Offcut Birch", sheet.Label)
	assert.Equal(t, Rect{W: 500, H: 300}, sheet.Size)
	assert.Empty(t, inv.Offcuts, "taking an offcut removes it")

	_, ok = inv.TakeOffcut("abc12345")
	assert.False(t, ok)
}

func TestInventory_AvailableStocks(t *testing.T) {
	inv := DefaultInventory()
	inv.BankOffcuts([]Offcut{{ID: "x", SheetLabel: "B", Size: Rect{W: 400, H: 200}}})

	stocks := inv.AvailableStocks(5)
	require.Len(t, stocks, len(inv.Stocks)+1)
	for _, s := range stocks[:len(inv.Stocks)] {
		assert.Equal(t, 5, s.Quantity)
	}
	assert.Equal(t, 1, stocks[len(stocks)-1].Quantity, "offcuts are single sheets")
}

func TestStockPreset_ToStockSheet(t *testing.T) {
	p := NewStockPreset("Ply", 2440, 1220)
	p.CostPerSheet = 45

	s := p.ToStockSheet(3)
	assert.Equal(t, "Ply", s.Label)
	assert.Equal(t, 3, s.Quantity)
	assert.Equal(t, 45.0, s.CostPerSheet)
}
