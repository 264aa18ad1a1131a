// pkg/geom/geom.go
package geom

import "math"

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Norm returns the unit vector in v's direction, or zero for a zero vector.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Arena is the playfield: a rectangle whose center hosts the tower/base.
type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the arena midpoint.
func (a Arena) Center() Vec2 { return Vec2{a.Width / 2, a.Height / 2} }

// SpawnRadius is the ring enemies materialize on: just inside the shorter
// half-extent so spawn points always sit in bounds.
func (a Arena) SpawnRadius(margin float64) float64 {
	r := math.Min(a.Width, a.Height)/2 - margin
	if r < 1 {
		r = 1
	}
	return r
}

// Contains reports whether p lies inside the arena rectangle.
func (a Arena) Contains(p Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= a.Width && p.Y <= a.Height
}
