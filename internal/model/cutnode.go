package model

// CutNode is one node of the binary guillotine cut tree describing how a
// rectangular region of a sheet is used. A node is either a terminal region
// (holding one placement, a reusable offcut, or unusable waste) or a split
// node whose two children are disjoint and, together with the kerf strip,
// cover the parent region exactly.
type CutNode struct {
	// Absolute position of the region's lower-left corner on the sheet.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Region Rect    `json:"region"`

	// Split fields. First is the bottom (horizontal cut) or left (vertical
	// cut) child, Second the remainder beyond the kerf strip. Both are nil
	// on terminal nodes. Offset is local to the region origin.
	Axis   Axis     `json:"axis,omitempty"`
	Offset float64  `json:"offset,omitempty"`
	Kerf   float64  `json:"kerf,omitempty"`
	First  *CutNode `json:"first,omitempty"`
	Second *CutNode `json:"second,omitempty"`

	// Terminal fields. Placement is nil for free or waste regions. Waste
	// marks a leftover below the minimum useful offcut size.
	Placement *Placement `json:"placement,omitempty"`
	Waste     bool       `json:"waste,omitempty"`
}

// IsLeaf reports whether the node is a terminal region.
func (n *CutNode) IsLeaf() bool {
	return n.First == nil
}

// Split turns a terminal node into a split node, creating two child leaves.
// The offset is validated against the node region before any mutation.
func (n *CutNode) Split(axis Axis, offset, kerf float64) (*CutNode, *CutNode, error) {
	first, second, err := SplitRect(n.Region, axis, offset, kerf)
	if err != nil {
		return nil, nil, err
	}
	n.Axis = axis
	n.Offset = offset
	n.Kerf = kerf
	n.First = &CutNode{X: n.X, Y: n.Y, Region: first}
	if axis == AxisHorizontal {
		n.Second = &CutNode{X: n.X, Y: n.Y + offset + kerf, Region: second}
	} else {
		n.Second = &CutNode{X: n.X + offset + kerf, Y: n.Y, Region: second}
	}
	return n.First, n.Second, nil
}

// CutLength returns the length of this node's cut. Zero for leaves.
func (n *CutNode) CutLength() float64 {
	if n.IsLeaf() {
		return 0
	}
	if n.Axis == AxisHorizontal {
		return n.Region.W
	}
	return n.Region.H
}

// KerfLoss returns the area removed by this node's cut. Zero for leaves.
func (n *CutNode) KerfLoss() float64 {
	return n.CutLength() * n.Kerf
}

// Visit walks the tree depth-first, parent before children, first child
// before second. The order is deterministic, which render idempotence
// depends on.
func (n *CutNode) Visit(fn func(*CutNode)) {
	if n == nil {
		return
	}
	fn(n)
	n.First.Visit(fn)
	n.Second.Visit(fn)
}

// SheetLayout is one consumed sheet instance with its completed cut tree.
// It is produced once by a placement strategy and immutable thereafter.
type SheetLayout struct {
	Sheet      StockSheet `json:"sheet"`
	SheetIndex int        `json:"sheet_index"`
	Root       *CutNode   `json:"root"`
}

// Placements collects all placements in deterministic tree order.
func (l SheetLayout) Placements() []Placement {
	var out []Placement
	l.Root.Visit(func(n *CutNode) {
		if n.Placement != nil {
			out = append(out, *n.Placement)
		}
	})
	return out
}

// UsedArea returns the total area of placed pieces on this sheet.
func (l SheetLayout) UsedArea() float64 {
	var total float64
	l.Root.Visit(func(n *CutNode) {
		if n.Placement != nil {
			total += n.Region.Area()
		}
	})
	return total
}

// KerfArea returns the total area lost to kerf on this sheet.
func (l SheetLayout) KerfArea() float64 {
	var total float64
	l.Root.Visit(func(n *CutNode) {
		total += n.KerfLoss()
	})
	return total
}

// WasteArea returns everything that is neither a placed piece nor kerf:
// unusable strips, unconsumed offcuts, and any edge trim border.
func (l SheetLayout) WasteArea() float64 {
	return l.Sheet.Size.Area() - l.UsedArea() - l.KerfArea()
}

// CutLength returns the total length of all cuts on this sheet.
func (l SheetLayout) CutLength() float64 {
	var total float64
	l.Root.Visit(func(n *CutNode) {
		total += n.CutLength()
	})
	return total
}

// Efficiency returns the used-area percentage of this sheet.
func (l SheetLayout) Efficiency() float64 {
	ta := l.Sheet.Size.Area()
	if ta == 0 {
		return 0
	}
	return (l.UsedArea() / ta) * 100.0
}

// FreeLeaves returns the terminal free regions still reusable as offcuts,
// in deterministic tree order.
func (l SheetLayout) FreeLeaves() []*CutNode {
	var out []*CutNode
	l.Root.Visit(func(n *CutNode) {
		if n.IsLeaf() && n.Placement == nil && !n.Waste {
			out = append(out, n)
		}
	})
	return out
}
