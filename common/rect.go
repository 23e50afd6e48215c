package common

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ClampPoint returns the point inside r nearest to p.
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{X: Clamp(p.X, r.X, r.X+r.Width), Y: Clamp(p.Y, r.Y, r.Y+r.Height)}
}
