package system

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/nav"
)

const DefaultPredictionWindow = 3.0

// Predict extrapolates the last sighting to now and clamps the result to
// navigable space.
func Predict(m component.Memory, now float64, grid *nav.Grid) common.Vec2 {
	elapsed := now - m.LastObservation
	if elapsed < 0 {
		elapsed = 0
	}
	raw := m.LastKnownPosition.Add(m.LastKnownVelocity.Scale(elapsed))
	if grid == nil {
		return raw
	}
	return grid.ClampToNavigable(m.LastKnownPosition, raw)
}

// PredictionSystem keeps a position estimate for smart enemies that lost
// sight of the player, until the last sighting is older than the window.
type PredictionSystem struct {
	grid   *nav.Grid
	window float64
}

func NewPredictionSystem(grid *nav.Grid, window float64) *PredictionSystem {
	if window <= 0 {
		window = DefaultPredictionWindow
	}
	return &PredictionSystem{grid: grid, window: window}
}

func (s *PredictionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := worldClock(w).Now

	ecs.ForEach3(w, component.SmartComponent, component.MemoryComponent, component.PerceptionComponent,
		func(_ ecs.Entity, _ *component.Smart, m *component.Memory, p *component.Perception) {
			if p.PlayerVisible {
				m.HasEstimate = false
				return
			}
			age, seen := m.Age(now)
			if !seen || age > s.window {
				m.HasEstimate = false
				return
			}
			m.Estimate = Predict(*m, now, s.grid)
			m.HasEstimate = true
		})
}
