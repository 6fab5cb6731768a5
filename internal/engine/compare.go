package engine

import (
	"context"
	"fmt"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// ComparisonScenario defines a named set of cut parameters to compare.
type ComparisonScenario struct {
	Name   string
	Params model.CutParams
}

// ComparisonResult holds the optimization result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Solution      *model.Solution
	Err           error
	SheetsUsed    int
	WastePercent  float64
	CutLength     float64
	UnplacedCount int
}

// CompareScenarios validates and optimizes the same stock and piece set
// under each scenario's parameters, enabling side-by-side what-if
// comparison (thinner blade, no edge trim, rotation disabled).
func CompareScenarios(ctx context.Context, c *Coordinator, scenarios []ComparisonScenario, stocks []model.StockSheet, pieces []model.Piece) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res := ComparisonResult{Scenario: scenario}

		req, err := model.Validate(stocks, pieces, scenario.Params)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		sol, err := c.Optimize(ctx, req)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Solution = sol
		res.SheetsUsed = sol.SheetsUsed()
		res.WastePercent = 100.0 - sol.TotalEfficiency()
		res.CutLength = sol.TotalCutLength()
		res.UnplacedCount = sol.UnplacedCount()
		results = append(results, res)
	}
	return results
}

// BuildDefaultScenarios generates what-if scenarios around a base
// parameter set.
func BuildDefaultScenarios(base model.CutParams) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Parameters", Params: base},
	}

	if base.Kerf > 1.0 {
		tight := base
		tight.Kerf = base.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Kerf %.1fmm (half)", tight.Kerf),
			Params: tight,
		})
	}

	if base.EdgeTrim > 0 {
		noTrim := base
		noTrim.EdgeTrim = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Edge Trim",
			Params: noTrim,
		})
	}

	if base.Rotation != model.RotationAll {
		rotAll := base
		rotAll.Rotation = model.RotationAll
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Rotation Allowed Everywhere",
			Params: rotAll,
		})
	}

	return scenarios
}
