package model

import "github.com/google/uuid"

// StockPreset represents a reusable stock sheet definition, e.g. a standard
// panel size the shop keeps on hand.
type StockPreset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Size         Rect    `json:"size"`
	CostPerSheet float64 `json:"cost_per_sheet,omitempty"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, width, height float64) StockPreset {
	return StockPreset{
		ID:   uuid.New().String()[:8],
		Name: name,
		Size: Rect{W: width, H: height},
	}
}

// ToStockSheet converts a StockPreset into a StockSheet with the given quantity.
func (sp StockPreset) ToStockSheet(qty int) StockSheet {
	sheet := NewStockSheet(sp.Name, sp.Size.W, sp.Size.H, qty)
	sheet.CostPerSheet = sp.CostPerSheet
	return sheet
}

// Inventory holds the saved stock presets and banked offcuts.
type Inventory struct {
	Stocks  []StockPreset `json:"stocks"`
	Offcuts []Offcut      `json:"offcuts"`
}

// DefaultInventory returns an inventory populated with common panel sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Full sheet 2440x1220", 2440, 1220),
			NewStockPreset("Half sheet 1220x1220", 1220, 1220),
			NewStockPreset("Quarter sheet 1220x610", 1220, 610),
		},
	}
}

// AddStock appends a preset to the inventory.
func (inv *Inventory) AddStock(p StockPreset) {
	inv.Stocks = append(inv.Stocks, p)
}

// RemoveStock removes a preset by ID. Returns true if found.
func (inv *Inventory) RemoveStock(id string) bool {
	for i, p := range inv.Stocks {
		if p.ID == id {
			inv.Stocks = append(inv.Stocks[:i], inv.Stocks[i+1:]...)
			return true
		}
	}
	return false
}

// BankOffcuts stores reusable offcuts from a finished run so they can be
// offered as stock for the next one.
func (inv *Inventory) BankOffcuts(offcuts []Offcut) {
	inv.Offcuts = append(inv.Offcuts, offcuts...)
}

// TakeOffcut removes an offcut by ID and returns it as a stock sheet.
func (inv *Inventory) TakeOffcut(id string) (StockSheet, bool) {
	for i, o := range inv.Offcuts {
		if o.ID == id {
			inv.Offcuts = append(inv.Offcuts[:i], inv.Offcuts[i+1:]...)
			return o.ToStockSheet(), true
		}
	}
	return StockSheet{}, false
}

// AvailableStocks expands the inventory into stock sheets: each preset with
// the requested quantity, followed by every banked offcut as a single sheet.
func (inv Inventory) AvailableStocks(qtyPerPreset int) []StockSheet {
	var stocks []StockSheet
	for _, p := range inv.Stocks {
		stocks = append(stocks, p.ToStockSheet(qtyPerPreset))
	}
	for _, o := range inv.Offcuts {
		stocks = append(stocks, o.ToStockSheet())
	}
	return stocks
}
