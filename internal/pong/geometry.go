package pong

import "math"

// Vec2 is a point or a vector in arena units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Bounds is the playable rectangle, origin at the top-left corner with y
// growing downwards.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the arena.
func (b Bounds) Center() Vec2 {
	return Vec2{X: b.Width * 0.5, Y: b.Height * 0.5}
}

// Rect is an axis-aligned box described by its two corners.
type Rect struct {
	Min Vec2
	Max Vec2
}

// RectAround returns the box of the given size centered on c.
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{
		Min: Vec2{X: c.X - w*0.5, Y: c.Y - h*0.5},
		Max: Vec2{X: c.X + w*0.5, Y: c.Y + h*0.5},
	}
}

// Overlaps reports whether r and o share interior area. Boxes that only touch
// along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X &&
		r.Max.X > o.Min.X &&
		r.Min.Y < o.Max.Y &&
		r.Max.Y > o.Min.Y
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
