package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

func TestLoadRequestFile_FullRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	content := `{
		"stocks": [
			{"label": "Plywood", "width": 2440, "height": 1220, "quantity": 3, "cost_per_sheet": 55}
		],
		"pieces": [
			{"label": "Shelf", "width": 800, "height": 300, "quantity": 4},
			{"label": "Door", "width": 600, "height": 720, "quantity": 2, "can_rotate": false}
		],
		"params": {"kerf": 2.5, "min_offcut": 80, "rotation": "all", "edge_trim": 5}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	stocks, pieces, params, err := LoadRequestFile(path)
	require.NoError(t, err)

	require.Len(t, stocks, 1)
	assert.Equal(t, "Plywood", stocks[0].Label)
	assert.Equal(t, 3, stocks[0].Quantity)
	assert.Equal(t, 55.0, stocks[0].CostPerSheet)
	assert.NotEmpty(t, stocks[0].ID, "missing IDs are generated")

	require.Len(t, pieces, 2)
	assert.True(t, pieces[0].CanRotate, "rotation defaults to allowed")
	assert.False(t, pieces[1].CanRotate)

	assert.Equal(t, 2.5, params.Kerf)
	assert.Equal(t, 80.0, params.MinOffcut)
	assert.Equal(t, model.RotationAll, params.Rotation)
	assert.Equal(t, 5.0, params.EdgeTrim)
}

func TestLoadRequestFile_DefaultsWhenParamsOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	content := `{
		"stocks": [{"label": "S", "width": 1000, "height": 500, "quantity": 1}],
		"pieces": [{"label": "P", "width": 100, "height": 100, "quantity": 1}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, _, params, err := LoadRequestFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCutParams(), params)
}

func TestLoadRequestFile_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, _, _, err := LoadRequestFile(path)
	assert.Error(t, err)
}

func TestSaveSolution_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.json")

	sol := model.Solution{Strategy: "best-area"}
	require.NoError(t, SaveSolution(path, sol))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.Solution
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "best-area", decoded.Strategy)
}
