package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec2 is a world-space point or direction in pixels.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

// Norm returns the unit vector of v, or the zero vector when v is (near) zero.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Lerp interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(v.X, o.X, t), Y: Lerp(v.Y, o.Y, t)}
}
