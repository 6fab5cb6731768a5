package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID           string  `json:"id"`
	SheetLabel   string  `json:"sheet_label"` // Which sheet it came from
	SheetIndex   int     `json:"sheet_index"` // Index of the source layout in the solution
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Size         Rect    `json:"size"`
	CostPerSheet float64 `json:"cost_per_sheet,omitempty"` // Inherited cost proportional to area
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Size.Area()
}

// ToStockSheet converts an offcut into a stock sheet for reuse in a
// future run.
func (o Offcut) ToStockSheet() StockSheet {
	sheet := NewStockSheet("Offcut "+o.SheetLabel, o.Size.W, o.Size.H, 1)
	sheet.CostPerSheet = o.CostPerSheet
	return sheet
}

// DetectOffcuts collects the free leaves of a sheet layout that are large
// enough to be worth keeping. The cut tree already excludes sub-MinOffcut
// strips, so minSize here only tightens the threshold further.
func DetectOffcuts(layout SheetLayout, minSize float64) []Offcut {
	var offcuts []Offcut
	for _, leaf := range layout.FreeLeaves() {
		if leaf.Region.MinDim() < minSize {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: layout.Sheet.Label,
			SheetIndex: layout.SheetIndex,
			X:          leaf.X,
			Y:          leaf.Y,
			Size:       leaf.Region,
		})
	}

	// Inherit cost proportional to area
	if layout.Sheet.CostPerSheet > 0 {
		totalArea := layout.Sheet.Size.Area()
		for i := range offcuts {
			offcuts[i].CostPerSheet = (offcuts[i].Area() / totalArea) * layout.Sheet.CostPerSheet
		}
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across all sheets of a solution.
func DetectAllOffcuts(sol Solution, minSize float64) []Offcut {
	var all []Offcut
	for _, layout := range sol.Layouts {
		all = append(all, DetectOffcuts(layout, minSize)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
