package system

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/spatial"
)

// MovementSystem integrates movement intents. Each axis is applied on its own
// and rejected if it would end in blocked space. Stationary archetypes are
// never moved.
type MovementSystem struct {
	provider spatial.Provider
}

func NewMovementSystem(provider spatial.Provider) *MovementSystem {
	return &MovementSystem{provider: provider}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := worldClock(w).DT
	if dt <= 0 {
		return
	}

	ecs.ForEach3(w, component.StatsComponent, component.BodyComponent, component.IntentComponent,
		func(_ ecs.Entity, stats *component.Stats, body *component.Body, intent *component.Intent) {
			body.Velocity = common.Vec2{}
			if stats.Archetype == component.SeashellPearl || intent.Move.IsZero() {
				return
			}

			start := body.Position
			pos := start
			if next := (common.Vec2{X: pos.X + intent.Move.X*dt, Y: pos.Y}); s.walkable(next) {
				pos = next
			}
			if next := (common.Vec2{X: pos.X, Y: pos.Y + intent.Move.Y*dt}); s.walkable(next) {
				pos = next
			}
			body.Position = pos
			body.Velocity = pos.Sub(start).Scale(1 / dt)
		})
}

func (s *MovementSystem) walkable(p common.Vec2) bool {
	return s.provider == nil || s.provider.IsWalkable(p)
}
