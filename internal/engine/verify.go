package engine

import (
	"fmt"
	"math"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// VerifyLayout checks a sheet layout against the core invariants: every
// placement lies within the sheet bounds, no two placements overlap, and
// used + waste + kerf area equals the sheet area exactly. It returns
// human-readable problem descriptions; an empty slice means the layout is
// sound. Strategies are expected to always produce sound layouts, so this
// is a test and debugging gate, not a production code path.
func VerifyLayout(layout model.SheetLayout) []string {
	var problems []string
	sheet := layout.Sheet.Size
	placements := layout.Placements()

	for i, p := range placements {
		if p.X < -model.Epsilon || p.Y < -model.Epsilon ||
			p.X+p.W > sheet.W+model.Epsilon || p.Y+p.H > sheet.H+model.Epsilon {
			problems = append(problems, fmt.Sprintf(
				"placement %q at (%.1f, %.1f) %gx%g exceeds sheet bounds %gx%g",
				p.Label, p.X, p.Y, p.W, p.H, sheet.W, sheet.H))
		}
		for j := i + 1; j < len(placements); j++ {
			q := placements[j]
			if p.X < q.X+q.W-model.Epsilon && p.X+p.W > q.X+model.Epsilon &&
				p.Y < q.Y+q.H-model.Epsilon && p.Y+p.H > q.Y+model.Epsilon {
				problems = append(problems, fmt.Sprintf(
					"placements %q and %q overlap on sheet %d",
					p.Label, q.Label, layout.SheetIndex))
			}
		}
	}

	// Sum waste from the tree leaves directly rather than through the
	// derived WasteArea, so the accounting check is independent.
	var leafWaste float64
	layout.Root.Visit(func(n *model.CutNode) {
		if n.IsLeaf() && n.Placement == nil {
			leafWaste += n.Region.Area()
		}
	})
	trimBorder := sheet.Area() - layout.Root.Region.Area()

	total := layout.UsedArea() + leafWaste + trimBorder + layout.KerfArea()
	if math.Abs(total-sheet.Area()) > 1e-3 {
		problems = append(problems, fmt.Sprintf(
			"area accounting off by %.6f mm2 on sheet %d (used %.1f + waste %.1f + kerf %.1f != %.1f)",
			total-sheet.Area(), layout.SheetIndex,
			layout.UsedArea(), leafWaste+trimBorder, layout.KerfArea(), sheet.Area()))
	}

	problems = append(problems, verifyTree(layout.Root)...)
	return problems
}

// verifyTree checks the cut-tree structural invariant: each split node's
// children plus the kerf strip cover the parent region exactly.
func verifyTree(node *model.CutNode) []string {
	var problems []string
	node.Visit(func(n *model.CutNode) {
		if n.IsLeaf() {
			return
		}
		childArea := n.First.Region.Area() + n.Second.Region.Area() + n.KerfLoss()
		if math.Abs(childArea-n.Region.Area()) > 1e-3 {
			problems = append(problems, fmt.Sprintf(
				"split at (%.1f, %.1f): children + kerf cover %.3f mm2 of a %.3f mm2 region",
				n.X, n.Y, childArea, n.Region.Area()))
		}
	})
	return problems
}

// VerifySolution verifies every layout of a solution.
func VerifySolution(sol *model.Solution) []string {
	var problems []string
	for _, l := range sol.Layouts {
		problems = append(problems, VerifyLayout(l)...)
	}
	return problems
}
