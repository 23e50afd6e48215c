package combat

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
)

// Request is one attack intent with everything needed to validate it.
type Request struct {
	Attacker    ecs.Entity
	Stats       component.Stats
	State       component.StateID
	Kind        component.AttackKind
	Combat      component.Combat
	Origin      common.Vec2
	Distance    float64
	LineOfSight bool
	PlayerAlive bool
	Tick        uint64
}

// Resolver validates attack requests and emits damage for the valid ones.
// Invalid requests are dropped and counted, never surfaced as errors.
type Resolver struct {
	Emitter  *Emitter
	Resolved int
	Rejected int
}

func NewResolver() *Resolver {
	return &Resolver{Emitter: &Emitter{}}
}

// Resolve returns the damage event for a valid request.
func (r *Resolver) Resolve(req Request) (DamageEvent, bool) {
	if r == nil {
		return DamageEvent{}, false
	}
	if !Valid(req) {
		r.Rejected++
		return DamageEvent{}, false
	}

	evt := DamageEvent{
		Attacker:  req.Attacker,
		Archetype: req.Stats.Archetype,
		Kind:      req.Kind,
		Amount:    Damage(req.Stats, req.Kind),
		Tick:      req.Tick,
		Origin:    req.Origin,
	}
	r.Resolved++
	r.Emitter.Emit(evt)
	return evt, true
}

// Valid reports whether req satisfies every attack precondition.
func Valid(req Request) bool {
	if !req.PlayerAlive || !AttackState(req.Stats.Archetype, req.State, req.Kind) {
		return false
	}
	if req.Combat.Stunned() {
		return false
	}
	// SeashellPearl has no recovery and bites every tick.
	if req.Stats.HasRecovery() && req.Combat.RecoveryTimer > 0 {
		return false
	}
	switch req.Kind {
	case component.AttackBite:
		return req.Stats.BiteDamage > 0 && req.Distance <= req.Stats.MeleeRange
	case component.AttackShoot:
		return req.Stats.CanShoot() &&
			req.Combat.ShootTimer <= 0 &&
			req.LineOfSight &&
			req.Distance <= req.Stats.VisionRange
	default:
		return false
	}
}

// AttackState reports whether an archetype may perform kind while in state.
// PinkStar bites on contact during its chase.
func AttackState(a component.Archetype, state component.StateID, kind component.AttackKind) bool {
	switch kind {
	case component.AttackBite:
		if a == component.PinkStar {
			return state == component.StateChase
		}
		return state == component.StateAttackBite
	case component.AttackShoot:
		return a != component.PinkStar && state == component.StateAttackShoot
	}
	return false
}

// Damage is the amount an attack of kind deals for the given stats.
func Damage(s component.Stats, kind component.AttackKind) float64 {
	switch kind {
	case component.AttackBite:
		return s.BiteDamage
	case component.AttackShoot:
		return s.ShootDamage
	}
	return 0
}
