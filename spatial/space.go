package spatial

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/nav"
)

// Space is a Provider backed by a Chipmunk space holding the level's solid
// cells as merged static boxes.
type Space struct {
	space  *cp.Space
	bounds common.Rect
	boxes  int
}

// NewSpace builds static collision for the solid cells of geo.
func NewSpace(geo nav.Geometry) (*Space, error) {
	if geo.Width <= 0 || geo.Height <= 0 || geo.CellSize <= 0 || len(geo.Solid) != geo.Width*geo.Height {
		return nil, fmt.Errorf("spatial: build space: %w", nav.ErrMalformedGeometry)
	}
	s := &Space{
		space: cp.NewSpace(),
		bounds: common.Rect{
			Width:  float64(geo.Width) * geo.CellSize,
			Height: float64(geo.Height) * geo.CellSize,
		},
	}
	s.addSolidCells(geo)
	return s, nil
}

// addSolidCells greedily merges runs of solid cells into rectangles so the
// space holds as few shapes as possible.
func (s *Space) addSolidCells(geo nav.Geometry) {
	processed := make([]bool, geo.Width*geo.Height)
	for y := 0; y < geo.Height; y++ {
		for x := 0; x < geo.Width; x++ {
			idx := y*geo.Width + x
			if processed[idx] {
				continue
			}
			if !geo.Solid[idx] {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < geo.Width {
				idx2 := y*geo.Width + (x + w)
				if processed[idx2] || !geo.Solid[idx2] {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < geo.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*geo.Width + xi
					if processed[idx2] || !geo.Solid[idx2] {
						break heightLoop
					}
				}
				h++
			}

			x0 := float64(x) * geo.CellSize
			y0 := float64(y) * geo.CellSize
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*geo.CellSize, T: y0 + float64(h)*geo.CellSize}
			shape := cp.NewBox2(s.space.StaticBody, bb, 0)
			s.space.AddShape(shape)
			s.boxes++

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*geo.Width+xx] = true
				}
			}
		}
	}
}

// Boxes returns how many static shapes the solid cells were merged into.
func (s *Space) Boxes() int { return s.boxes }

func (s *Space) Bounds() common.Rect { return s.bounds }

// HasLineOfSight reports whether the segment a-b touches no solid shape.
func (s *Space) HasLineOfSight(a, b common.Vec2) bool {
	if a == b {
		return s.IsWalkable(a)
	}
	hit := s.space.SegmentQueryFirst(toVector(a), toVector(b), 0, cp.SHAPE_FILTER_ALL)
	return hit.Shape == nil
}

// IsWalkable reports whether p is inside the level and not inside a solid shape.
func (s *Space) IsWalkable(p common.Vec2) bool {
	if !s.bounds.Contains(p) {
		return false
	}
	info := s.space.PointQueryNearest(toVector(p), 0, cp.SHAPE_FILTER_ALL)
	return info == nil || info.Shape == nil
}

func (s *Space) Distance(a, b common.Vec2) float64 {
	return a.Dist(b)
}

func toVector(v common.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
