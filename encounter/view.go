package encounter

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
)

// EnemyView is a read-only snapshot of one enemy for rendering and tools.
type EnemyView struct {
	Entity        ecs.Entity
	Archetype     component.Archetype
	State         component.StateID
	Position      common.Vec2
	FacingLeft    bool
	Health        float64
	MaxHealth     float64
	VisionRange   float64
	MeleeRange    float64
	HalfWidth     float64
	HalfHeight    float64
	RecoveryTimer float64
	Smart         bool
	Evading       bool
	PlayerVisible bool
	Estimate      *common.Vec2
	Path          []common.Vec2
	Zone          string
}

// Enemies returns a snapshot of every live enemy in spawn order.
func (e *Encounter) Enemies() []EnemyView {
	var out []EnemyView
	w := e.world
	ecs.ForEach3(w, component.StatsComponent, component.BodyComponent, component.AIStateComponent,
		func(ent ecs.Entity, s *component.Stats, b *component.Body, st *component.AIState) {
			v := EnemyView{
				Entity:      ent,
				Archetype:   s.Archetype,
				State:       st.Current,
				Position:    b.Position,
				FacingLeft:  b.FacingLeft,
				VisionRange: s.VisionRange,
				MeleeRange:  s.MeleeRange,
				HalfWidth:   s.HalfWidth,
				HalfHeight:  s.HalfHeight,
				Smart:       ecs.Has(w, ent, component.SmartComponent),
			}
			if h, ok := ecs.Get(w, ent, component.HealthComponent); ok {
				v.Health, v.MaxHealth = h.Current, h.Max
			}
			if c, ok := ecs.Get(w, ent, component.CombatComponent); ok {
				v.RecoveryTimer = c.RecoveryTimer
			}
			if in, ok := ecs.Get(w, ent, component.IntentComponent); ok {
				v.Evading = in.Evading
			}
			if p, ok := ecs.Get(w, ent, component.PerceptionComponent); ok {
				v.PlayerVisible = p.PlayerVisible
			}
			if m, ok := ecs.Get(w, ent, component.MemoryComponent); ok && m.HasEstimate {
				est := m.Estimate
				v.Estimate = &est
			}
			if plan, ok := ecs.Get(w, ent, component.PathPlanComponent); ok && plan.Valid && !plan.Direct {
				v.Path = append([]common.Vec2(nil), plan.Waypoints[min(plan.Next, len(plan.Waypoints)):]...)
			}
			if g, ok := ecs.Get(w, ent, component.GuardComponent); ok {
				v.Zone = g.ZoneID
			}
			out = append(out, v)
		})
	return out
}

// Enemy returns the snapshot of a single enemy.
func (e *Encounter) Enemy(ent ecs.Entity) (EnemyView, bool) {
	for _, v := range e.Enemies() {
		if v.Entity == ent {
			return v, true
		}
	}
	return EnemyView{}, false
}
