package system

import (
	"math"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/spatial"
)

// PerceptionSystem refreshes every enemy's view of the player and of player
// threats, and records sightings in memory.
type PerceptionSystem struct {
	provider spatial.Provider
}

func NewPerceptionSystem(provider spatial.Provider) *PerceptionSystem {
	return &PerceptionSystem{provider: provider}
}

func (s *PerceptionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clk := worldClock(w)
	obs, ok := playerObservation(w)
	zones := zoneRects(w)

	ecs.ForEach3(w, component.StatsComponent, component.BodyComponent, component.PerceptionComponent,
		func(e ecs.Entity, stats *component.Stats, body *component.Body, perception *component.Perception) {
			if !ok {
				*perception = component.Perception{}
				return
			}
			smart, _ := ecs.Get(w, e, component.SmartComponent)
			*perception = Observe(*stats, *body, smart, obs, s.provider)

			if g, ok := ecs.Get(w, e, component.GuardComponent); ok {
				if zone, ok := zones[g.ZoneID]; ok {
					perception.PlayerInZone = obs.Alive() && zone.Contains(obs.Position)
				}
			}

			if perception.PlayerVisible {
				if m, ok := ecs.Get(w, e, component.MemoryComponent); ok {
					m.HasObservation = true
					m.LastKnownPosition = obs.Position
					m.LastKnownVelocity = obs.Velocity
					m.LastObservation = clk.Now
					m.HasEstimate = false
				}
			}
		})
}

// Observe computes what an enemy perceives this tick. It has no side effects.
func Observe(stats component.Stats, body component.Body, smart *component.Smart, obs component.PlayerObservation, provider spatial.Provider) component.Perception {
	var p component.Perception
	if provider == nil {
		return p
	}

	dist := provider.Distance(body.Position, obs.Position)
	p.DistanceToPlayer = dist
	if obs.Alive() {
		p.InMeleeRange = dist <= stats.MeleeRange
		p.PlayerVisible = dist <= stats.VisionRange &&
			inVisionCone(stats, body, obs.Position, dist) &&
			provider.HasLineOfSight(body.Position, obs.Position)
	}

	if smart == nil {
		return p
	}
	for _, group := range [][]component.Threat{obs.Projectiles, obs.Grenades} {
		for _, th := range group {
			if provider.Distance(body.Position, th.Position) > stats.VisionRange {
				continue
			}
			if !provider.HasLineOfSight(body.Position, th.Position) {
				continue
			}
			p.Threats = append(p.Threats, th)
		}
	}
	return p
}

// inVisionCone applies the optional facing cone. Anything within melee range
// is sensed regardless of facing.
func inVisionCone(stats component.Stats, body component.Body, target common.Vec2, dist float64) bool {
	if stats.VisionAngle <= 0 || stats.VisionAngle >= 360 || dist <= stats.MeleeRange || dist == 0 {
		return true
	}
	dir := target.Sub(body.Position).Scale(1 / dist)
	cos := dir.Dot(common.Vec2{X: body.Facing()})
	half := stats.VisionAngle / 2 * math.Pi / 180
	return cos >= math.Cos(half)
}
