package model

import "math"

// Point represents a 2D point in page coordinates
type Point struct {
	X, Y float64
}

// BBox represents an axis-aligned bounding box in corner form.
// The origin is the top-left of the page with Y increasing downward,
// so Y0 is the top edge and Y1 the bottom edge. A well-formed box has
// X0 <= X1 and Y0 <= Y1 with all coordinates non-negative.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// NewBBox creates a bounding box from corner coordinates
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X0
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X1
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y0
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y1
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.X0 + b.X1) / 2,
		Y: (b.Y0 + b.Y1) / 2,
	}
}

// Contains reports whether a point lies inside the box, edges included
func (b BBox) Contains(p Point) bool {
	return p.X >= b.X0 && p.X <= b.X1 &&
		p.Y >= b.Y0 && p.Y <= b.Y1
}

// Intersects reports whether two boxes overlap. Boxes that merely touch
// along an edge count as overlapping.
func (b BBox) Intersects(other BBox) bool {
	return !(b.X1 < other.X0 ||
		other.X1 < b.X0 ||
		b.Y1 < other.Y0 ||
		other.Y1 < b.Y0)
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Area returns the area of the box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Valid reports whether the box is well-formed
func (b BBox) Valid() bool {
	return b.X0 >= 0 && b.Y0 >= 0 && b.X0 <= b.X1 && b.Y0 <= b.Y1
}
