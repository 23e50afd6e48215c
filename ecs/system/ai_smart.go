package system

import (
	"math"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
)

// SmartPolicy decorates the FierceTooth policy. It keeps chasing a predicted
// position after losing sight of the player and dodges incoming threats.
type SmartPolicy struct {
	Base *FierceToothPolicy
}

func (p *SmartPolicy) Sense(ctx *AIContext, enqueue func(component.EventID)) {
	tracking := !ctx.Perception.PlayerVisible && ctx.Memory != nil && ctx.Memory.HasEstimate
	p.Base.Sense(ctx, func(ev component.EventID) {
		if tracking && ev == component.EventLosesPlayer {
			ev = component.EventTracksPlayer
		}
		enqueue(ev)
	})
}

func (p *SmartPolicy) Steer(ctx *AIContext) {
	target := ctx.Player.Position
	if !ctx.Perception.PlayerVisible && ctx.Memory != nil && ctx.Memory.HasEstimate {
		target = ctx.Memory.Estimate
	}
	p.Base.steerToward(ctx, target)

	if !ctx.InState(component.StateChase, component.StateAttackShoot) {
		return
	}
	if move, ok := evade(ctx); ok {
		ctx.Intent.Move = move
		ctx.Intent.Attack = component.AttackNone
		ctx.Intent.Evading = true
	}
}

// evade returns a dodge vector for the most pressing visible threat. Grenades
// within reach are fled directly; approaching projectiles are sidestepped
// perpendicular to their path.
func evade(ctx *AIContext) (common.Vec2, bool) {
	if ctx.Smart == nil {
		return common.Vec2{}, false
	}
	pos := ctx.Body.Position
	speed := ctx.Stats.MoveSpeed

	var (
		best     common.Vec2
		bestDist = math.Inf(1)
		found    bool
	)
	for _, th := range ctx.Perception.Threats {
		if th.Kind != component.ThreatGrenade {
			continue
		}
		d := pos.Dist(th.Position)
		if d > ctx.Smart.GrenadeReaction || d >= bestDist {
			continue
		}
		away := pos.Sub(th.Position).Norm()
		if away.IsZero() {
			away = common.Vec2{X: -ctx.Body.Facing()}
		}
		best, bestDist, found = away.Scale(speed), d, true
	}
	if found {
		return best, true
	}

	for _, th := range ctx.Perception.Threats {
		if th.Kind != component.ThreatProjectile {
			continue
		}
		toEnemy := pos.Sub(th.Position)
		d := toEnemy.Len()
		if d > ctx.Smart.ProjectileReaction || d >= bestDist {
			continue
		}
		if th.Velocity.Dot(toEnemy) <= 0 {
			continue
		}
		side := th.Velocity.Perp().Norm()
		if side.Dot(toEnemy) < 0 {
			side = side.Scale(-1)
		}
		best, bestDist, found = side.Scale(speed), d, true
	}
	return best, found
}
