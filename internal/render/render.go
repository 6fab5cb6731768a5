// Package render converts a solution's cut trees into ordered sequences of
// primitive draw commands. The output is backend-agnostic: any raster or
// vector consumer (PDF, DXF, a canvas) can replay the commands without the
// core depending on a graphics library.
package render

import (
	"fmt"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// Style classifies what a command draws so backends can pick colors and
// line weights.
type Style int

const (
	StyleSheet  Style = iota // Stock sheet outline / background
	StylePiece               // A placed piece
	StyleOffcut              // Reusable leftover region
	StyleWaste               // Unusable waste strip
	StyleCut                 // A guillotine cut line
	StyleText                // Annotation text
)

func (s Style) String() string {
	switch s {
	case StyleSheet:
		return "sheet"
	case StylePiece:
		return "piece"
	case StyleOffcut:
		return "offcut"
	case StyleWaste:
		return "waste"
	case StyleCut:
		return "cut"
	default:
		return "text"
	}
}

// Command is one primitive draw instruction. Coordinates are sheet
// coordinates in mm, origin at the sheet's lower-left corner.
type Command interface {
	command()
}

// MoveTo starts a new path at (X, Y).
type MoveTo struct {
	X, Y float64
}

// LineTo continues the current path to (X, Y).
type LineTo struct {
	X, Y  float64
	Style Style
}

// FillRect draws a filled rectangle. Seq numbers piece fills in placement
// order so backends can cycle a color palette.
type FillRect struct {
	X, Y, W, H float64
	Style      Style
	Seq        int
}

// StrokeRect draws a rectangle outline.
type StrokeRect struct {
	X, Y, W, H float64
	Style      Style
}

// Label draws annotation text anchored at (X, Y).
type Label struct {
	X, Y  float64
	Text  string
	Size  float64 // Text height in mm
	Style Style
}

func (MoveTo) command()     {}
func (LineTo) command()     {}
func (FillRect) command()   {}
func (StrokeRect) command() {}
func (Label) command()      {}

// SheetDrawing is the draw-command sequence for one sheet layout.
type SheetDrawing struct {
	Sheet      model.StockSheet
	SheetIndex int
	Size       model.Rect // Drawing extent (the stock sheet dimensions)
	Commands   []Command
}

// Sheet renders one sheet layout into draw commands. It is a pure function
// of the layout: calling it twice yields identical sequences. The cut
// tree's invariants are trusted; no geometry is re-derived.
func Sheet(layout model.SheetLayout) SheetDrawing {
	d := SheetDrawing{
		Sheet:      layout.Sheet,
		SheetIndex: layout.SheetIndex,
		Size:       layout.Sheet.Size,
	}

	d.Commands = append(d.Commands, FillRect{
		W: layout.Sheet.Size.W, H: layout.Sheet.Size.H, Style: StyleSheet,
	})
	d.Commands = append(d.Commands, StrokeRect{
		W: layout.Sheet.Size.W, H: layout.Sheet.Size.H, Style: StyleSheet,
	})

	pieceSeq := 0
	layout.Root.Visit(func(n *model.CutNode) {
		switch {
		case !n.IsLeaf():
			d.Commands = append(d.Commands, cutCommands(n)...)
		case n.Placement != nil:
			d.Commands = append(d.Commands, placementCommands(n, pieceSeq)...)
			pieceSeq++
		case n.Waste:
			d.Commands = append(d.Commands, FillRect{
				X: n.X, Y: n.Y, W: n.Region.W, H: n.Region.H, Style: StyleWaste,
			})
		default:
			d.Commands = append(d.Commands, FillRect{
				X: n.X, Y: n.Y, W: n.Region.W, H: n.Region.H, Style: StyleOffcut,
			})
		}
	})

	return d
}

// Solution renders every sheet of a solution, in usage order.
func Solution(sol model.Solution) []SheetDrawing {
	drawings := make([]SheetDrawing, 0, len(sol.Layouts))
	for _, layout := range sol.Layouts {
		drawings = append(drawings, Sheet(layout))
	}
	return drawings
}

// cutCommands emits the cut line through the middle of the kerf strip,
// spanning the node region edge to edge, plus the offset annotation.
func cutCommands(n *model.CutNode) []Command {
	mid := n.Offset + n.Kerf/2
	var from, to MoveTo
	if n.Axis == model.AxisHorizontal {
		from = MoveTo{X: n.X, Y: n.Y + mid}
		to = MoveTo{X: n.X + n.Region.W, Y: n.Y + mid}
	} else {
		from = MoveTo{X: n.X + mid, Y: n.Y}
		to = MoveTo{X: n.X + mid, Y: n.Y + n.Region.H}
	}
	return []Command{
		from,
		LineTo{X: to.X, Y: to.Y, Style: StyleCut},
		Label{
			X:     from.X,
			Y:     from.Y,
			Text:  fmt.Sprintf("%s @ %.1f", n.Axis, n.Offset),
			Size:  2.5,
			Style: StyleCut,
		},
	}
}

// placementCommands emits the piece fill, outline and centered label.
func placementCommands(n *model.CutNode, seq int) []Command {
	p := n.Placement
	text := fmt.Sprintf("%s %.0fx%.0f", p.Label, p.W, p.H)
	if p.Rotated {
		text += " R"
	}
	return []Command{
		FillRect{X: n.X, Y: n.Y, W: n.Region.W, H: n.Region.H, Style: StylePiece, Seq: seq},
		StrokeRect{X: n.X, Y: n.Y, W: n.Region.W, H: n.Region.H, Style: StylePiece},
		Label{
			X:     n.X + n.Region.W/2,
			Y:     n.Y + n.Region.H/2,
			Text:  text,
			Size:  4,
			Style: StyleText,
		},
	}
}
