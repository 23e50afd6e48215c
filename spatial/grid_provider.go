package spatial

import (
	"math"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/nav"
)

// GridProvider answers spatial queries straight from a navigation grid. Line of
// sight samples the segment at quarter-cell steps.
type GridProvider struct {
	Grid *nav.Grid
}

func NewGridProvider(g *nav.Grid) *GridProvider {
	return &GridProvider{Grid: g}
}

func (p *GridProvider) HasLineOfSight(a, b common.Vec2) bool {
	if p == nil || p.Grid == nil {
		return false
	}
	delta := b.Sub(a)
	step := p.Grid.CellSize() / 4
	steps := int(math.Ceil(delta.Len() / step))
	if steps == 0 {
		return p.Grid.WalkableAt(a)
	}
	for i := 0; i <= steps; i++ {
		if !p.Grid.WalkableAt(a.Add(delta.Scale(float64(i) / float64(steps)))) {
			return false
		}
	}
	return true
}

func (p *GridProvider) IsWalkable(pos common.Vec2) bool {
	return p != nil && p.Grid.WalkableAt(pos)
}

func (p *GridProvider) Distance(a, b common.Vec2) float64 {
	return a.Dist(b)
}
