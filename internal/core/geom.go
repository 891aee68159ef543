// Package core provides fundamental types and utilities shared by the
// simulation and the terminal platform. It has no Bubble Tea dependency so
// game logic stays pure and testable.
package core

import "math"

// Rect is an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is an axis-aligned box in world pixels, described by its edges.
type RectF struct {
	Left, Top, Right, Bottom float64
}

// CenteredRect builds a box of size w x h centered on (cx, cy).
func CenteredRect(cx, cy, w, h float64) RectF {
	return RectF{
		Left:   cx - w/2,
		Top:    cy - h/2,
		Right:  cx + w/2,
		Bottom: cy + h/2,
	}
}

// Width returns the horizontal extent of the box.
func (r RectF) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the box.
func (r RectF) Height() float64 { return r.Bottom - r.Top }

// Intersects reports whether the two boxes overlap.
// Touching edges do not count as an overlap.
func (r RectF) Intersects(other RectF) bool {
	return r.Left < other.Right &&
		r.Right > other.Left &&
		r.Top < other.Bottom &&
		r.Bottom > other.Top
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp maps t in [0,1] onto [a,b].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Round converts a world coordinate to the nearest integer cell.
func Round(v float64) int {
	return int(math.Round(v))
}
