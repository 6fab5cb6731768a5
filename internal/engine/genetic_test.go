package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// smallGeneticConfig keeps test runtime short.
func smallGeneticConfig() GeneticConfig {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 10
	cfg.Generations = 15
	return cfg
}

func TestGenetic_PlacesAllPieces(t *testing.T) {
	req := mustValidate(t,
		[]model.StockSheet{model.NewStockSheet("Sheet", 1000, 600, 2)},
		[]model.Piece{
			model.NewPiece("A", 400, 300, 2),
			model.NewPiece("B", 600, 200, 1),
			model.NewPiece("C", 200, 150, 3),
		},
		zeroKerfParams())

	layouts, infeasible, err := GeneticWithConfig(smallGeneticConfig()).Pack(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, infeasible)
	placed := 0
	for _, l := range layouts {
		assert.Empty(t, VerifyLayout(l))
		placed += len(l.Placements())
	}
	assert.Equal(t, 6, placed)
}

func TestGenetic_DeterministicAcrossRuns(t *testing.T) {
	build := func() *model.Request {
		return mustValidate(t,
			[]model.StockSheet{model.NewStockSheet("Sheet", 1000, 600, 3)},
			[]model.Piece{
				model.NewPiece("A", 450, 350, 2),
				model.NewPiece("B", 600, 250, 2),
				model.NewPiece("C", 300, 200, 2),
			},
			model.CutParams{Kerf: 3, MinOffcut: 40, Rotation: model.RotationPerPiece})
	}

	first, _, err := GeneticWithConfig(smallGeneticConfig()).Pack(context.Background(), build())
	require.NoError(t, err)
	second, _, err := GeneticWithConfig(smallGeneticConfig()).Pack(context.Background(), build())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second), "fixed seed gives identical runs")
	for i := range first {
		fp := first[i].Placements()
		sp := second[i].Placements()
		require.Equal(t, len(fp), len(sp))
		for j := range fp {
			assert.Equal(t, fp[j].X, sp[j].X)
			assert.Equal(t, fp[j].Y, sp[j].Y)
			assert.Equal(t, fp[j].Label, sp[j].Label)
		}
	}
}

func TestGenetic_EmptyRequestYieldsNothing(t *testing.T) {
	req := &model.Request{
		Stocks: []model.StockSheet{model.NewStockSheet("Sheet", 1000, 600, 1)},
		Params: zeroKerfParams(),
	}

	layouts, infeasible, err := Genetic().Pack(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, layouts)
	assert.Empty(t, infeasible)
}

func TestGenetic_CancellationStopsEvolution(t *testing.T) {
	req := mustValidate(t,
		[]model.StockSheet{model.NewStockSheet("Sheet", 2440, 1220, 0)},
		[]model.Piece{model.NewPiece("A", 300, 200, 40)},
		zeroKerfParams())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Genetic().Pack(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}
