package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
// It is an area-based estimate made before optimization, useful for
// quoting material before a layout exists.
type PurchaseEstimate struct {
	TotalPieceArea    float64 `json:"total_piece_area"`    // Total area of all pieces incl. kerf allowance (sq mm)
	SheetArea         float64 `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g. 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	CostPerSheet      float64 `json:"cost_per_sheet"`      // Price used for estimation
	Kerf              float64 `json:"kerf"`                // Kerf width used in calculation
}

// EstimatePurchase computes how many sheets to buy for a given cut list.
// Each piece is padded by one kerf width per side pair, and the result is
// inflated by wastePercent to cover packing losses.
func EstimatePurchase(pieces []Piece, sheet Rect, kerf, wastePercent, costPerSheet float64) PurchaseEstimate {
	var totalPieceArea float64
	for _, p := range pieces {
		totalPieceArea += (p.Size.W + kerf) * (p.Size.H + kerf) * float64(p.Quantity)
	}

	sheetArea := sheet.Area()
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPieceArea: totalPieceArea,
			WastePercent:   wastePercent,
			Kerf:           kerf,
		}
	}

	exactSheets := totalPieceArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPieceArea:    totalPieceArea,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * costPerSheet,
		CostPerSheet:      costPerSheet,
		Kerf:              kerf,
	}
}
