// Package model defines the geometry primitives, request model, and cut
// tree representation shared by every placement strategy and renderer.
// All dimensions are millimetres. Coordinates have their origin at a
// sheet's lower left corner, X growing right and Y growing up.
package model

import "fmt"

// Epsilon is the tolerance for all floating point dimension comparisons.
// Two lengths closer than Epsilon are the same length.
const Epsilon = 1e-6

// Rect is an axis-aligned rectangle size. It carries no position.
type Rect struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the rectangle area.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Rotated returns the rectangle turned 90 degrees.
func (r Rect) Rotated() Rect {
	return Rect{W: r.H, H: r.W}
}

// MinDim returns the smaller of the two dimensions.
func (r Rect) MinDim() float64 {
	if r.W < r.H {
		return r.W
	}
	return r.H
}

// MaxDim returns the larger of the two dimensions.
func (r Rect) MaxDim() float64 {
	if r.W > r.H {
		return r.W
	}
	return r.H
}

// FitsIn reports whether the rectangle fits inside the container in at
// least one permitted orientation. Kerf plays no role here; this is the
// pure containment check used for oversize detection.
func (r Rect) FitsIn(container Rect, allowRotate bool) bool {
	if r.W <= container.W+Epsilon && r.H <= container.H+Epsilon {
		return true
	}
	if allowRotate {
		return r.H <= container.W+Epsilon && r.W <= container.H+Epsilon
	}
	return false
}

// Axis identifies the direction of a guillotine cut.
type Axis int

const (
	// AxisHorizontal cuts parallel to the X axis, splitting a region into
	// a bottom and a top part.
	AxisHorizontal Axis = iota
	// AxisVertical cuts parallel to the Y axis, splitting a region into a
	// left and a right part.
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// GeometryError reports a split that would violate region bounds. It is
// always a defect in the caller, never a recoverable condition.
type GeometryError struct {
	Region Rect
	Axis   Axis
	Offset float64
	Kerf   float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid %s split at offset %.3f (kerf %.3f) in %.3fx%.3f region",
		e.Axis, e.Offset, e.Kerf, e.Region.W, e.Region.H)
}

// SplitRect cuts a region in two along the given axis. The first result
// keeps the offset dimension, the second keeps what remains beyond the
// kerf strip. Both results must have positive extent; a split that would
// leave either side empty returns a GeometryError.
func SplitRect(region Rect, axis Axis, offset, kerf float64) (Rect, Rect, error) {
	dim := region.H
	if axis == AxisVertical {
		dim = region.W
	}
	if offset <= Epsilon || offset+kerf >= dim-Epsilon {
		return Rect{}, Rect{}, &GeometryError{Region: region, Axis: axis, Offset: offset, Kerf: kerf}
	}

	remainder := dim - offset - kerf
	if axis == AxisHorizontal {
		return Rect{W: region.W, H: offset}, Rect{W: region.W, H: remainder}, nil
	}
	return Rect{W: offset, H: region.H}, Rect{W: remainder, H: region.H}, nil
}
