package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

func TestDimFits(t *testing.T) {
	assert.True(t, dimFits(100, 100, 5), "exact fit needs no cut, kerf irrelevant")
	assert.True(t, dimFits(100, 110, 5), "cut leaves a 5mm remainder beyond the kerf")
	assert.False(t, dimFits(100, 104, 5), "remainder would be consumed by the kerf")
	assert.False(t, dimFits(100, 105, 5), "cut would land exactly on the far edge")
	assert.False(t, dimFits(120, 100, 0), "too big outright")
}

func TestRegionFits_Rotation(t *testing.T) {
	region := model.Rect{W: 300, H: 500}
	piece := model.Rect{W: 400, H: 200}

	assert.False(t, regionFits(piece, region, false, 0))
	assert.True(t, regionFits(piece, region, true, 0))
}

func TestChooseOrientation_PrefersLargerSingleLeftover(t *testing.T) {
	// In a tall 600x1000 region the unrotated 400x300 leaves a 600x700 top
	// strip (420k mm2); rotated, the best leftover is only 600x600 (360k).
	region := model.Rect{W: 600, H: 1000}
	piece := model.Rect{W: 400, H: 300}

	fp, rotated, ok := chooseOrientation(piece, region, true, 0)
	require.True(t, ok)
	assert.False(t, rotated)
	assert.Equal(t, piece, fp)

	// In a wide 1000x600 region rotating to 300x400 leaves a 700x600 right
	// strip, beating the unrotated 600x600.
	fp, rotated, ok = chooseOrientation(piece, model.Rect{W: 1000, H: 600}, true, 0)
	require.True(t, ok)
	assert.True(t, rotated)
	assert.Equal(t, model.Rect{W: 300, H: 400}, fp)
}

func TestChooseOrientation_RotatesWhenOnlyRotatedFits(t *testing.T) {
	region := model.Rect{W: 300, H: 500}
	piece := model.Rect{W: 400, H: 200}

	fp, rotated, ok := chooseOrientation(piece, region, true, 0)
	require.True(t, ok)
	assert.True(t, rotated)
	assert.Equal(t, model.Rect{W: 200, H: 400}, fp)
}

func TestChooseOrientation_TiePrefersUnrotated(t *testing.T) {
	region := model.Rect{W: 500, H: 500}
	piece := model.Rect{W: 300, H: 200}

	// Both orientations leave the same largest leftover by symmetry.
	fp, rotated, ok := chooseOrientation(piece, region, true, 0)
	require.True(t, ok)
	assert.False(t, rotated)
	assert.Equal(t, piece, fp)
}

func TestSheetPacker_PlaceRecordsSplitsAndPlacement(t *testing.T) {
	sheet := model.NewStockSheet("S", 1000, 600, 1)
	params := model.CutParams{Kerf: 4, MinOffcut: 50}
	pk := newSheetPacker(sheet, 0, params)
	piece := model.NewPiece("A", 400, 300, 1)

	placement, err := pk.place(pk.regions[0], piece, piece.Size, false)
	require.NoError(t, err)

	assert.Equal(t, 0.0, placement.X)
	assert.Equal(t, 0.0, placement.Y)
	assert.Equal(t, 400.0, placement.W)
	assert.Equal(t, 300.0, placement.H)

	layout := pk.layout()
	require.Len(t, layout.Placements(), 1)
	assert.Empty(t, VerifyLayout(layout))
	assert.Len(t, pk.regions, 2, "two leftovers pooled")
}

func TestSheetPacker_EdgeTrimShrinksRoot(t *testing.T) {
	sheet := model.NewStockSheet("S", 1000, 600, 1)
	params := model.CutParams{EdgeTrim: 10}
	pk := newSheetPacker(sheet, 0, params)

	assert.Equal(t, model.Rect{W: 980, H: 580}, pk.root.Region)
	assert.Equal(t, 10.0, pk.root.X)
	assert.Equal(t, 10.0, pk.root.Y)
}

func TestSheetPacker_SubMinOffcutLeftoverBecomesWaste(t *testing.T) {
	sheet := model.NewStockSheet("S", 1000, 330, 1)
	params := model.CutParams{Kerf: 0, MinOffcut: 50}
	pk := newSheetPacker(sheet, 0, params)
	piece := model.NewPiece("A", 1000, 300, 1)

	_, err := pk.place(pk.regions[0], piece, piece.Size, false)
	require.NoError(t, err)

	assert.Empty(t, pk.regions, "30mm strip is below MinOffcut, not pooled")

	wasteLeaves := 0
	pk.layout().Root.Visit(func(n *model.CutNode) {
		if n.Waste {
			wasteLeaves++
		}
	})
	assert.Equal(t, 1, wasteLeaves)
}

func TestSheetPacker_ExactFitConsumesRegionWithoutCuts(t *testing.T) {
	sheet := model.NewStockSheet("S", 400, 300, 1)
	params := model.CutParams{Kerf: 5, MinOffcut: 50}
	pk := newSheetPacker(sheet, 0, params)
	piece := model.NewPiece("A", 400, 300, 1)

	_, err := pk.place(pk.regions[0], piece, piece.Size, false)
	require.NoError(t, err)

	layout := pk.layout()
	assert.Equal(t, 0.0, layout.CutLength(), "exact fit needs no cut")
	assert.Equal(t, 0.0, layout.KerfArea())
	assert.Empty(t, pk.regions)
}
