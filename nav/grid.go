package nav

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/enemycore/common"
)

var (
	ErrMalformedGeometry = errors.New("nav: malformed geometry")
	ErrNoPathFound       = errors.New("nav: no path found")
)

// Geometry is the level layout the grid is built from. Solid is row-major,
// Width*Height long.
type Geometry struct {
	Width    int
	Height   int
	CellSize float64
	Solid    []bool
}

// Cell is a discrete grid coordinate.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is the walkability map of one level. It is immutable after BuildGrid
// and safe to share between systems.
type Grid struct {
	width    int
	height   int
	cellSize float64
	walkable []bool
}

// BuildGrid discretizes level geometry into walkable and blocked cells.
func BuildGrid(geo Geometry) (*Grid, error) {
	if geo.Width <= 0 || geo.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedGeometry, geo.Width, geo.Height)
	}
	if geo.CellSize <= 0 || math.IsNaN(geo.CellSize) || math.IsInf(geo.CellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrMalformedGeometry, geo.CellSize)
	}
	if len(geo.Solid) != geo.Width*geo.Height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrMalformedGeometry, len(geo.Solid), geo.Width, geo.Height)
	}

	walkable := make([]bool, len(geo.Solid))
	for i, solid := range geo.Solid {
		walkable[i] = !solid
	}
	return &Grid{
		width:    geo.Width,
		height:   geo.Height,
		cellSize: geo.CellSize,
		walkable: walkable,
	}, nil
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

func (g *Grid) CellSize() float64 { return g.cellSize }

// Bounds is the world-space rectangle covered by the grid.
func (g *Grid) Bounds() common.Rect {
	return common.Rect{Width: float64(g.width) * g.cellSize, Height: float64(g.height) * g.cellSize}
}

func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// IsWalkable reports whether c is inside the grid and not blocked.
func (g *Grid) IsWalkable(c Cell) bool {
	if g == nil || !g.InBounds(c) {
		return false
	}
	return g.walkable[c.Y*g.width+c.X]
}

// WalkableAt reports whether the world position lies in a walkable cell.
// Positions outside the level are never walkable.
func (g *Grid) WalkableAt(p common.Vec2) bool {
	if g == nil || !g.Bounds().Contains(p) {
		return false
	}
	return g.IsWalkable(g.WorldToCell(p))
}

// WorldToCell maps a world position to its cell, clamped to the grid.
func (g *Grid) WorldToCell(p common.Vec2) Cell {
	cx := int(math.Floor(p.X / g.cellSize))
	cy := int(math.Floor(p.Y / g.cellSize))
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= g.width {
		cx = g.width - 1
	}
	if cy >= g.height {
		cy = g.height - 1
	}
	return Cell{X: cx, Y: cy}
}

// CellToWorld returns the centre of c.
func (g *Grid) CellToWorld(c Cell) common.Vec2 {
	half := g.cellSize * 0.5
	return common.Vec2{
		X: float64(c.X)*g.cellSize + half,
		Y: float64(c.Y)*g.cellSize + half,
	}
}

// ClampToNavigable returns the point nearest to `to` reachable by walking a
// straight line from `from` without entering a blocked cell. `to` is first
// clamped into the level bounds. When `from` itself is blocked, `to` is
// returned if walkable, otherwise `from`.
func (g *Grid) ClampToNavigable(from, to common.Vec2) common.Vec2 {
	b := g.Bounds()
	const inset = 1e-6
	to = common.Vec2{
		X: common.Clamp(to.X, 0, b.Width-inset),
		Y: common.Clamp(to.Y, 0, b.Height-inset),
	}
	if !g.WalkableAt(from) {
		if g.WalkableAt(to) {
			return to
		}
		return from
	}

	delta := to.Sub(from)
	step := g.cellSize / 4
	steps := int(math.Ceil(delta.Len() / step))
	last := from
	for i := 1; i <= steps; i++ {
		p := from.Add(delta.Scale(float64(i) / float64(steps)))
		if !g.WalkableAt(p) {
			return last
		}
		last = p
	}
	return to
}
