// Package model defines the geometric primitives and record types shared
// by every stage of the extraction pipeline: quads and bounding boxes as
// produced by an OCR detector, reconstructed lines, and the final
// extraction result.
//
// Coordinates are raster coordinates: the origin is the top-left corner
// of the page image and Y grows downward.
package model

import "math"

// Point represents a 2D point
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Quad is a quadrilateral as emitted by a text detector. The four
// corner points may arrive in any order; no winding is assumed.
type Quad [4]Point

// Bounds returns the axis-aligned bounding box of the quad. Because it
// only looks at min/max coordinates, arbitrary point ordering is
// tolerated. A degenerate quad yields a zero-area box.
func (q Quad) Bounds() BBox {
	minX, minY := q[0].X, q[0].Y
	maxX, maxY := q[0].X, q[0].Y
	for _, p := range q[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BBox represents an axis-aligned bounding box
type BBox struct {
	X      float64 `json:"x"` // Left
	Y      float64 `json:"y"` // Top (raster coordinate system)
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// CenterX returns the horizontal center coordinate
func (b BBox) CenterX() float64 {
	return b.X + b.Width/2
}

// CenterY returns the vertical center coordinate
func (b BBox) CenterY() float64 {
	return b.Y + b.Height/2
}

// TopLeft returns the top-left corner
func (b BBox) TopLeft() Point {
	return Point{X: b.X, Y: b.Y}
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
