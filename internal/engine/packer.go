package engine

import (
	"math"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// region is one open rectangular area on a sheet instance that has not yet
// been assigned to a placement or discarded as waste. Each region tracks
// the cut-tree leaf it corresponds to, so every placement records exactly
// the guillotine splits that produced it.
type region struct {
	node *model.CutNode
	seq  int // Creation order within the packer, used for tie-breaks
}

// sheetPacker owns one sheet instance: its open-region pool and the cut
// tree being built. Strategies never share packers.
type sheetPacker struct {
	sheet      model.StockSheet
	sheetIndex int
	params     model.CutParams
	root       *model.CutNode
	regions    []*region
	nextSeq    int
	placed     int
}

func newSheetPacker(sheet model.StockSheet, index int, params model.CutParams) *sheetPacker {
	trim := params.EdgeTrim
	root := &model.CutNode{
		X: trim,
		Y: trim,
		Region: model.Rect{
			W: sheet.Size.W - 2*trim,
			H: sheet.Size.H - 2*trim,
		},
	}
	p := &sheetPacker{
		sheet:      sheet,
		sheetIndex: index,
		params:     params,
		root:       root,
	}
	p.addRegion(root)
	return p
}

func (p *sheetPacker) addRegion(node *model.CutNode) {
	p.regions = append(p.regions, &region{node: node, seq: p.nextSeq})
	p.nextSeq++
}

func (p *sheetPacker) removeRegion(r *region) {
	for i, reg := range p.regions {
		if reg == r {
			p.regions = append(p.regions[:i], p.regions[i+1:]...)
			return
		}
	}
}

// layout freezes the packer state into an immutable SheetLayout.
func (p *sheetPacker) layout() model.SheetLayout {
	return model.SheetLayout{
		Sheet:      p.sheet,
		SheetIndex: p.sheetIndex,
		Root:       p.root,
	}
}

// dimFits reports whether a piece dimension can occupy a region dimension:
// either an exact fit (no cut needed along that axis) or small enough that
// a cut leaves a real remainder beyond the kerf strip.
func dimFits(v, dim, kerf float64) bool {
	if math.Abs(v-dim) <= model.Epsilon {
		return true
	}
	return v+kerf < dim-model.Epsilon
}

// footprintFits reports whether a w x h footprint can be placed into a
// region of the given dimensions.
func footprintFits(fp, reg model.Rect, kerf float64) bool {
	return dimFits(fp.W, reg.W, kerf) && dimFits(fp.H, reg.H, kerf)
}

// regionFits reports whether the piece fits the region in some permitted
// orientation.
func regionFits(piece model.Rect, reg model.Rect, allowRotate bool, kerf float64) bool {
	if footprintFits(piece, reg, kerf) {
		return true
	}
	if allowRotate && piece.W != piece.H {
		return footprintFits(piece.Rotated(), reg, kerf)
	}
	return false
}

// largestLeftover returns the area of the larger of the two free
// rectangles that would remain after placing fp into reg. Used both to
// choose the piece orientation and the first split axis.
func largestLeftover(fp, reg model.Rect, kerf float64) float64 {
	var top, right float64
	if rem := reg.H - fp.H - kerf; rem > 0 {
		top = reg.W * rem
	}
	if rem := reg.W - fp.W - kerf; rem > 0 {
		right = rem * reg.H
	}
	return math.Max(top, right)
}

// chooseOrientation picks the footprint for a piece in a region: of the
// orientations that fit, the one leaving the larger single leftover free
// rectangle wins; on a tie the unrotated orientation is preferred.
func chooseOrientation(piece model.Rect, reg model.Rect, allowRotate bool, kerf float64) (fp model.Rect, rotated, ok bool) {
	normalFits := footprintFits(piece, reg, kerf)
	rotatedRect := piece.Rotated()
	rotFits := allowRotate && piece.W != piece.H && footprintFits(rotatedRect, reg, kerf)

	switch {
	case normalFits && rotFits:
		if largestLeftover(rotatedRect, reg, kerf) > largestLeftover(piece, reg, kerf)+model.Epsilon {
			return rotatedRect, true, true
		}
		return piece, false, true
	case normalFits:
		return piece, false, true
	case rotFits:
		return rotatedRect, true, true
	default:
		return model.Rect{}, false, false
	}
}

// place cuts the chosen region down to the piece footprint, recording every
// guillotine split in the tree, and registers the placement. Leftovers
// whose smaller dimension is below MinOffcut become waste leaves; the rest
// join the open-region pool.
func (p *sheetPacker) place(r *region, piece model.Piece, fp model.Rect, rotated bool) (*model.Placement, error) {
	p.removeRegion(r)
	node := r.node
	kerf := p.params.Kerf

	exactW := math.Abs(fp.W-node.Region.W) <= model.Epsilon
	exactH := math.Abs(fp.H-node.Region.H) <= model.Epsilon

	if !exactW && !exactH {
		// Two cuts needed. Cut first along the axis that produces the
		// larger leftover rectangle, so thin unusable strips are rare.
		topArea := node.Region.W * (node.Region.H - fp.H - kerf)
		rightArea := (node.Region.W - fp.W - kerf) * node.Region.H
		if topArea >= rightArea {
			kept, leftover, err := node.Split(model.AxisHorizontal, fp.H, kerf)
			if err != nil {
				return nil, err
			}
			p.admitLeftover(leftover)
			node = kept
		} else {
			kept, leftover, err := node.Split(model.AxisVertical, fp.W, kerf)
			if err != nil {
				return nil, err
			}
			p.admitLeftover(leftover)
			node = kept
		}
		exactW = math.Abs(fp.W-node.Region.W) <= model.Epsilon
		exactH = math.Abs(fp.H-node.Region.H) <= model.Epsilon
	}

	if !exactH {
		kept, leftover, err := node.Split(model.AxisHorizontal, fp.H, kerf)
		if err != nil {
			return nil, err
		}
		p.admitLeftover(leftover)
		node = kept
	} else if !exactW {
		kept, leftover, err := node.Split(model.AxisVertical, fp.W, kerf)
		if err != nil {
			return nil, err
		}
		p.admitLeftover(leftover)
		node = kept
	}

	placement := &model.Placement{
		PieceID:    piece.ID,
		Label:      piece.Label,
		SheetIndex: p.sheetIndex,
		X:          node.X,
		Y:          node.Y,
		W:          fp.W,
		H:          fp.H,
		Rotated:    rotated,
	}
	node.Placement = placement
	p.placed++
	return placement, nil
}

// admitLeftover either returns a leftover region to the open pool or marks
// it as unusable waste when its smaller dimension is below MinOffcut.
func (p *sheetPacker) admitLeftover(node *model.CutNode) {
	if node.Region.MinDim() < p.params.MinOffcut-model.Epsilon {
		node.Waste = true
		return
	}
	p.addRegion(node)
}
