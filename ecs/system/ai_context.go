package system

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/nav"
	"github.com/milk9111/enemycore/spatial"
)

// AIContext is everything a policy may read or write for one enemy during one
// tick. Optional components are nil when the enemy does not carry them.
type AIContext struct {
	World  *ecs.World
	Entity ecs.Entity
	Now    float64
	DT     float64

	Stats      *component.Stats
	Body       *component.Body
	State      *component.AIState
	Perception *component.Perception
	Combat     *component.Combat
	Intent     *component.Intent

	Memory *component.Memory
	Patrol *component.Patrol
	Guard  *component.Guard
	Smart  *component.Smart
	Plan   *component.PathPlan

	Player  component.PlayerObservation
	Zone    common.Rect
	HasZone bool

	Planner  *nav.Planner
	Provider spatial.Provider
}

// Position is the enemy's current centre.
func (c *AIContext) Position() common.Vec2 {
	return c.Body.Position
}

// InState reports whether the FSM is in any of the given states.
func (c *AIContext) InState(states ...component.StateID) bool {
	for _, s := range states {
		if c.State.Current == s {
			return true
		}
	}
	return false
}

func newAIContext(w *ecs.World, e ecs.Entity, clk component.Clock, obs component.PlayerObservation, zones map[string]common.Rect) (*AIContext, bool) {
	stats, ok := ecs.Get(w, e, component.StatsComponent)
	if !ok {
		return nil, false
	}
	body, ok := ecs.Get(w, e, component.BodyComponent)
	if !ok {
		return nil, false
	}
	state, ok := ecs.Get(w, e, component.AIStateComponent)
	if !ok {
		return nil, false
	}
	perception, ok := ecs.Get(w, e, component.PerceptionComponent)
	if !ok {
		return nil, false
	}
	combat, ok := ecs.Get(w, e, component.CombatComponent)
	if !ok {
		return nil, false
	}
	intent, ok := ecs.Get(w, e, component.IntentComponent)
	if !ok {
		return nil, false
	}

	ctx := &AIContext{
		World:      w,
		Entity:     e,
		Now:        clk.Now,
		DT:         clk.DT,
		Stats:      stats,
		Body:       body,
		State:      state,
		Perception: perception,
		Combat:     combat,
		Intent:     intent,
		Player:     obs,
	}
	if m, ok := ecs.Get(w, e, component.MemoryComponent); ok {
		ctx.Memory = m
	}
	if p, ok := ecs.Get(w, e, component.PatrolComponent); ok {
		ctx.Patrol = p
	}
	if g, ok := ecs.Get(w, e, component.GuardComponent); ok {
		ctx.Guard = g
		ctx.Zone, ctx.HasZone = zones[g.ZoneID]
	}
	if s, ok := ecs.Get(w, e, component.SmartComponent); ok {
		ctx.Smart = s
	}
	if p, ok := ecs.Get(w, e, component.PathPlanComponent); ok {
		ctx.Plan = p
	}
	return ctx, true
}

func worldClock(w *ecs.World) component.Clock {
	if c, ok := ecs.Singleton(w, component.ClockComponent); ok {
		return *c
	}
	return component.Clock{}
}

func playerObservation(w *ecs.World) (component.PlayerObservation, bool) {
	if o, ok := ecs.Singleton(w, component.PlayerObservationComponent); ok {
		return *o, true
	}
	return component.PlayerObservation{}, false
}

func zoneRects(w *ecs.World) map[string]common.Rect {
	out := map[string]common.Rect{}
	ecs.ForEach(w, component.ZoneComponent, func(_ ecs.Entity, z *component.Zone) {
		out[z.ID] = z.Bounds
	})
	return out
}
