package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouarzazisaid0/wood-opcut/internal/engine"
	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

func testSolution(t *testing.T) (model.Solution, model.CutParams) {
	t.Helper()
	params := model.CutParams{Kerf: 4, MinOffcut: 50, Rotation: model.RotationPerPiece}
	req, err := model.Validate(
		[]model.StockSheet{model.NewStockSheet("Birch Ply", 1000, 600, 2)},
		[]model.Piece{
			model.NewPiece("Door", 400, 300, 2),
			model.NewPiece("Shelf", 600, 200, 1),
			model.NewPiece("Huge", 3000, 50, 1),
		},
		params)
	require.NoError(t, err)

	sol, err := engine.NewCoordinator().Optimize(context.Background(), req)
	require.NoError(t, err)
	return *sol, params
}

func TestExportPDF_WritesFile(t *testing.T) {
	sol, params := testSolution(t)
	path := filepath.Join(t.TempDir(), "layout.pdf")

	require.NoError(t, ExportPDF(path, sol, params))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "PDF should have real content")
}

func TestExportPDF_EmptySolutionFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := ExportPDF(path, model.Solution{}, model.DefaultCutParams())
	assert.Error(t, err)
}

func TestExportDXF_WritesFile(t *testing.T) {
	sol, _ := testSolution(t)
	path := filepath.Join(t.TempDir(), "layout.dxf")

	require.NoError(t, ExportDXF(path, sol))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, layerSheet)
	assert.Contains(t, content, layerPieces)
	assert.Contains(t, content, layerCuts)
}

func TestExportDXF_EmptySolutionFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	assert.Error(t, ExportDXF(path, model.Solution{}))
}

func TestExportLabels_WritesFile(t *testing.T) {
	sol, _ := testSolution(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, sol))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestExportLabels_NoPlacementsFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	assert.Error(t, ExportLabels(path, model.Solution{}))
}

func TestCollectLabelInfos(t *testing.T) {
	sol, _ := testSolution(t)

	labels := CollectLabelInfos(sol)
	require.Len(t, labels, sol.PlacedCount())

	seen := map[string]bool{}
	for _, l := range labels {
		assert.NotEmpty(t, l.PieceLabel)
		assert.Equal(t, "Birch Ply", l.SheetLabel)
		assert.GreaterOrEqual(t, l.SheetIndex, 1, "sheet numbers are 1-based")
		assert.Positive(t, l.Width)
		assert.Positive(t, l.Height)
		seen[l.PieceLabel] = true
	}
	assert.True(t, seen["Door"])
	assert.True(t, seen["Shelf"])
	assert.False(t, seen["Huge"], "unplaced pieces get no label")
}
