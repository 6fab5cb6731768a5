package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockSheet_GeneratesShortID(t *testing.T) {
	s := NewStockSheet("Plywood", 2440, 1220, 3)

	assert.Len(t, s.ID, 8)
	assert.Equal(t, "Plywood", s.Label)
	assert.Equal(t, Rect{W: 2440, H: 1220}, s.Size)
	assert.False(t, s.Unbounded())

	unbounded := NewStockSheet("Endless", 2440, 1220, 0)
	assert.True(t, unbounded.Unbounded())
}

func TestNewPiece_DefaultsToRotatable(t *testing.T) {
	p := NewPiece("Door", 600, 400, 2)

	assert.Len(t, p.ID, 8)
	assert.True(t, p.CanRotate)
	assert.Equal(t, 2, p.Quantity)
}

func TestCutParams_AllowRotate(t *testing.T) {
	rotatable := NewPiece("A", 100, 50, 1)
	fixed := NewPiece("B", 100, 50, 1)
	fixed.CanRotate = false

	perPiece := CutParams{Rotation: RotationPerPiece}
	assert.True(t, perPiece.AllowRotate(rotatable))
	assert.False(t, perPiece.AllowRotate(fixed))

	all := CutParams{Rotation: RotationAll}
	assert.True(t, all.AllowRotate(fixed))

	none := CutParams{Rotation: RotationNone}
	assert.False(t, none.AllowRotate(rotatable))
}

func TestRotationPolicy_StringRoundTrip(t *testing.T) {
	for _, rp := range []RotationPolicy{RotationPerPiece, RotationAll, RotationNone} {
		assert.Equal(t, rp, ParseRotationPolicy(rp.String()))
	}
	assert.Equal(t, RotationPerPiece, ParseRotationPolicy("nonsense"))
}

func TestSolution_Totals(t *testing.T) {
	sheet := NewStockSheet("S", 1000, 600, 1)

	buildLayout := func(index int) SheetLayout {
		root := &CutNode{Region: sheet.Size}
		bottom, _, err := root.Split(AxisHorizontal, 200, 0)
		require.NoError(t, err)
		bottom.Placement = &Placement{Label: "A", W: 1000, H: 200}
		return SheetLayout{Sheet: sheet, SheetIndex: index, Root: root}
	}

	sol := Solution{
		Strategy: "best-area-fit",
		Layouts:  []SheetLayout{buildLayout(0), buildLayout(1)},
		Infeasible: []InfeasiblePiece{
			{Label: "X", Quantity: 3},
		},
	}

	assert.Equal(t, 2, sol.SheetsUsed())
	assert.Equal(t, 2, sol.PlacedCount())
	assert.Equal(t, 3, sol.UnplacedCount())
	assert.InDelta(t, 2*400000.0, sol.TotalWaste(), 1e-6)
	assert.InDelta(t, 2000.0, sol.TotalCutLength(), 1e-6)
	assert.InDelta(t, 100.0*400000.0/1200000.0, sol.TotalEfficiency(), 1e-6)
}

func TestDefaultCutParams(t *testing.T) {
	p := DefaultCutParams()

	assert.Equal(t, 3.2, p.Kerf)
	assert.Equal(t, 50.0, p.MinOffcut)
	assert.Equal(t, RotationPerPiece, p.Rotation)
	assert.Equal(t, 0.0, p.EdgeTrim)
}
