package system

import (
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
)

// ClockSystem advances world time by one fixed step.
type ClockSystem struct {
	dt float64
}

func NewClockSystem(dt float64) *ClockSystem {
	return &ClockSystem{dt: dt}
}

func (s *ClockSystem) Update(w *ecs.World) {
	c, ok := ecs.Singleton(w, component.ClockComponent)
	if !ok {
		return
	}
	c.Tick++
	c.DT = s.dt
	c.Now += s.dt
}
