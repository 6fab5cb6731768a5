package engine

import (
	"context"
	"sort"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// PackFunc is the contract every placement strategy implements: pack the
// request's pieces onto sheet instances, reporting what could not be
// placed. Strategies are pure over the request snapshot and poll ctx at
// piece-placement granularity.
type PackFunc func(ctx context.Context, req *model.Request) ([]model.SheetLayout, []model.InfeasiblePiece, error)

// Strategy is a named packing heuristic. Strategies are standalone values
// closed over their ordering and tie-break rules, not an inheritance
// hierarchy; the coordinator runs them all and keeps the best result.
type Strategy struct {
	Name string
	Pack PackFunc
}

// DefaultStrategies returns the full strategy set in deterministic order.
// The order matters: the lowest index wins ties in the coordinator.
func DefaultStrategies() []Strategy {
	return []Strategy{
		BestAreaFit(),
		FirstFitDecreasingHeight(),
		BestFitDecreasingWidth(),
		Genetic(),
	}
}

// BestAreaFit sorts pieces by decreasing area and places each into the
// smallest open region that fits, opening a new sheet only as a last
// resort.
func BestAreaFit() Strategy {
	return Strategy{
		Name: "best-area-fit",
		Pack: heuristicPack(orderByAreaDesc, chooseBestArea),
	}
}

// FirstFitDecreasingHeight sorts pieces by decreasing height then width and
// places each into the first open region, in creation order, that fits.
func FirstFitDecreasingHeight() Strategy {
	return Strategy{
		Name: "first-fit-decreasing-height",
		Pack: heuristicPack(orderByHeightDesc, chooseFirstFit),
	}
}

// BestFitDecreasingWidth sorts pieces by decreasing width then height with
// best-area region choice.
func BestFitDecreasingWidth() Strategy {
	return Strategy{
		Name: "best-fit-decreasing-width",
		Pack: heuristicPack(orderByWidthDesc, chooseBestArea),
	}
}

func orderByAreaDesc(instances []model.Piece) {
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Size.Area() > instances[j].Size.Area()
	})
}

func orderByHeightDesc(instances []model.Piece) {
	sort.SliceStable(instances, func(i, j int) bool {
		if instances[i].Size.H != instances[j].Size.H {
			return instances[i].Size.H > instances[j].Size.H
		}
		return instances[i].Size.W > instances[j].Size.W
	})
}

func orderByWidthDesc(instances []model.Piece) {
	sort.SliceStable(instances, func(i, j int) bool {
		if instances[i].Size.W != instances[j].Size.W {
			return instances[i].Size.W > instances[j].Size.W
		}
		return instances[i].Size.H > instances[j].Size.H
	})
}

// chooseFn selects an open region for a piece across all opened sheet
// instances, or nil when nothing fits.
type chooseFn func(packers []*sheetPacker, piece model.Rect, allowRotate bool, kerf float64) (*sheetPacker, *region)

// chooseBestArea picks the smallest fitting region; ties go to the lowest
// sheet index, then the lowest region creation index.
func chooseBestArea(packers []*sheetPacker, piece model.Rect, allowRotate bool, kerf float64) (*sheetPacker, *region) {
	var bestPacker *sheetPacker
	var bestRegion *region
	bestArea := -1.0

	for _, pk := range packers {
		for _, r := range pk.regions {
			if !regionFits(piece, r.node.Region, allowRotate, kerf) {
				continue
			}
			area := r.node.Region.Area()
			if bestRegion == nil || area < bestArea-model.Epsilon {
				bestPacker, bestRegion, bestArea = pk, r, area
			}
		}
	}
	return bestPacker, bestRegion
}

// chooseFirstFit picks the first fitting region in sheet order, then region
// creation order.
func chooseFirstFit(packers []*sheetPacker, piece model.Rect, allowRotate bool, kerf float64) (*sheetPacker, *region) {
	for _, pk := range packers {
		ordered := make([]*region, len(pk.regions))
		copy(ordered, pk.regions)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })
		for _, r := range ordered {
			if regionFits(piece, r.node.Region, allowRotate, kerf) {
				return pk, r
			}
		}
	}
	return nil, nil
}

// expandInstances flattens pieces into single-quantity instances.
func expandInstances(pieces []model.Piece) []model.Piece {
	var out []model.Piece
	for _, p := range pieces {
		for i := 0; i < p.Quantity; i++ {
			inst := p
			inst.Quantity = 1
			out = append(out, inst)
		}
	}
	return out
}

// stockPool tracks remaining sheet supply during one pack run.
type stockPool struct {
	stocks    []model.StockSheet
	remaining []int // -1 = unbounded
}

func newStockPool(stocks []model.StockSheet) *stockPool {
	pool := &stockPool{stocks: stocks, remaining: make([]int, len(stocks))}
	for i, s := range stocks {
		if s.Unbounded() {
			pool.remaining[i] = -1
		} else {
			pool.remaining[i] = s.Quantity
		}
	}
	return pool
}

// open consumes one unit of the smallest available stock whose usable
// region fits the piece, returning false when supply is exhausted.
func (sp *stockPool) open(req *model.Request, piece model.Rect, allowRotate bool) (model.StockSheet, bool) {
	best := -1
	bestArea := 0.0
	for i, s := range sp.stocks {
		if sp.remaining[i] == 0 {
			continue
		}
		if !regionFits(piece, req.Usable(s), allowRotate, req.Params.Kerf) {
			continue
		}
		area := s.Size.Area()
		if best < 0 || area < bestArea {
			best = i
			bestArea = area
		}
	}
	if best < 0 {
		return model.StockSheet{}, false
	}
	if sp.remaining[best] > 0 {
		sp.remaining[best]--
	}
	return sp.stocks[best], true
}

// heuristicPack builds the shared pack loop for the ordering/region-choice
// heuristics. The loop owns all mutable state; the request is read-only.
func heuristicPack(order func([]model.Piece), choose chooseFn) PackFunc {
	return func(ctx context.Context, req *model.Request) ([]model.SheetLayout, []model.InfeasiblePiece, error) {
		instances := expandInstances(req.Pieces)
		order(instances)

		pool := newStockPool(req.Stocks)
		var packers []*sheetPacker
		skip := make(map[string]string) // piece ID -> reason
		var infeasible []model.InfeasiblePiece
		infeasibleIdx := make(map[string]int)

		report := func(p model.Piece, reason string) {
			if i, ok := infeasibleIdx[p.ID]; ok {
				infeasible[i].Quantity++
				return
			}
			infeasibleIdx[p.ID] = len(infeasible)
			infeasible = append(infeasible, model.InfeasiblePiece{
				PieceID:  p.ID,
				Label:    p.Label,
				Quantity: 1,
				Reason:   reason,
			})
		}

		for _, inst := range instances {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			if reason, skipped := skip[inst.ID]; skipped {
				report(inst, reason)
				continue
			}

			allowRotate := req.Params.AllowRotate(inst)
			pk, reg := choose(packers, inst.Size, allowRotate, req.Params.Kerf)
			if reg == nil {
				sheet, ok := pool.open(req, inst.Size, allowRotate)
				if !ok {
					reason := "no remaining sheet can fit this piece"
					skip[inst.ID] = reason
					report(inst, reason)
					continue
				}
				pk = newSheetPacker(sheet, len(packers), req.Params)
				packers = append(packers, pk)
				reg = pk.regions[0]
			}

			fp, rotated, ok := chooseOrientation(inst.Size, reg.node.Region, allowRotate, req.Params.Kerf)
			if !ok {
				// choose() guarantees a fit; reaching here is a defect.
				return nil, nil, &model.GeometryError{
					Region: reg.node.Region,
					Offset: inst.Size.W,
					Kerf:   req.Params.Kerf,
				}
			}
			if _, err := pk.place(reg, inst, fp, rotated); err != nil {
				return nil, nil, err
			}
		}

		layouts := make([]model.SheetLayout, 0, len(packers))
		for _, pk := range packers {
			layouts = append(layouts, pk.layout())
		}
		return layouts, infeasible, nil
	}
}
