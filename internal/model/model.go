package model

import "github.com/google/uuid"

// RotationPolicy controls whether pieces may be rotated 90 degrees.
type RotationPolicy int

const (
	RotationPerPiece RotationPolicy = iota // Honor each piece's CanRotate flag
	RotationAll                            // Every piece may rotate
	RotationNone                           // No piece may rotate
)

func (rp RotationPolicy) String() string {
	switch rp {
	case RotationAll:
		return "all"
	case RotationNone:
		return "none"
	default:
		return "per-piece"
	}
}

// StockSheet represents an available sheet of material to cut from.
// Quantity 0 means unbounded supply.
type StockSheet struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Size         Rect    `json:"size"`
	Quantity     int     `json:"quantity"`
	CostPerSheet float64 `json:"cost_per_sheet,omitempty"`
}

func NewStockSheet(label string, w, h float64, qty int) StockSheet {
	return StockSheet{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Size:     Rect{W: w, H: h},
		Quantity: qty,
	}
}

// Unbounded reports whether the sheet supply is unlimited.
func (s StockSheet) Unbounded() bool {
	return s.Quantity == 0
}

// Piece represents a required piece to be cut.
type Piece struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Size      Rect   `json:"size"`
	Quantity  int    `json:"quantity"`
	CanRotate bool   `json:"can_rotate"`
}

func NewPiece(label string, w, h float64, qty int) Piece {
	return Piece{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Size:      Rect{W: w, H: h},
		Quantity:  qty,
		CanRotate: true,
	}
}

// CutParams holds the cutting parameters for one optimization run.
type CutParams struct {
	// Kerf is the material width removed by every cut, in mm. Kerf applies
	// between two split children, never at a sheet's outer boundary.
	Kerf float64 `json:"kerf"`
	// MinOffcut is the minimum width or height for a leftover to remain in
	// the reusable pool. Smaller leftovers are unusable waste.
	MinOffcut float64 `json:"min_offcut"`
	// Rotation is the global rotation policy.
	Rotation RotationPolicy `json:"rotation"`
	// EdgeTrim shrinks the usable area on every sheet edge, in mm.
	EdgeTrim float64 `json:"edge_trim"`
}

func DefaultCutParams() CutParams {
	return CutParams{
		Kerf:      3.2,
		MinOffcut: 50.0,
		Rotation:  RotationPerPiece,
		EdgeTrim:  0,
	}
}

// AllowRotate resolves the effective rotation permission for a piece.
func (p CutParams) AllowRotate(piece Piece) bool {
	switch p.Rotation {
	case RotationAll:
		return true
	case RotationNone:
		return false
	default:
		return piece.CanRotate
	}
}

// Placement represents one piece instance placed on a sheet.
type Placement struct {
	PieceID    string  `json:"piece_id"`
	Label      string  `json:"label"`
	SheetIndex int     `json:"sheet_index"` // Index into the solution's layout order
	X          float64 `json:"x"`           // mm from the sheet's left edge
	Y          float64 `json:"y"`           // mm from the sheet's bottom edge
	W          float64 `json:"w"`           // Footprint width after orientation choice
	H          float64 `json:"h"`           // Footprint height after orientation choice
	Rotated    bool    `json:"rotated"`
}

// Footprint returns the placed rectangle dimensions.
func (p Placement) Footprint() Rect {
	return Rect{W: p.W, H: p.H}
}

// InfeasiblePiece reports required quantity that could not be placed.
// It is an expected partial outcome, not an error.
type InfeasiblePiece struct {
	PieceID  string `json:"piece_id"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// Solution is the unit returned to the caller: the winning set of sheet
// layouts in usage order plus everything that could not be placed.
type Solution struct {
	Strategy   string            `json:"strategy"`
	Layouts    []SheetLayout     `json:"layouts"`
	Infeasible []InfeasiblePiece `json:"infeasible,omitempty"`
}

// SheetsUsed returns the number of sheet instances consumed.
func (s Solution) SheetsUsed() int {
	return len(s.Layouts)
}

// PlacedCount returns the total number of placed piece instances.
func (s Solution) PlacedCount() int {
	total := 0
	for _, l := range s.Layouts {
		total += len(l.Placements())
	}
	return total
}

// UnplacedCount returns the total number of piece instances that could not
// be placed.
func (s Solution) UnplacedCount() int {
	total := 0
	for _, ip := range s.Infeasible {
		total += ip.Quantity
	}
	return total
}

// TotalWaste returns the total unusable plus unused area across all sheets.
func (s Solution) TotalWaste() float64 {
	var total float64
	for _, l := range s.Layouts {
		total += l.WasteArea()
	}
	return total
}

// TotalCutLength returns the summed length of all guillotine cuts.
func (s Solution) TotalCutLength() float64 {
	var total float64
	for _, l := range s.Layouts {
		total += l.CutLength()
	}
	return total
}

// TotalEfficiency returns overall material usage percentage.
func (s Solution) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, l := range s.Layouts {
		usedArea += l.UsedArea()
		totalArea += l.Sheet.Size.Area()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}
