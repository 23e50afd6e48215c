package system

import "github.com/milk9111/enemycore/ecs/component"

// PinkStarPolicy guards a danger zone. It engages only while the player is
// inside the zone and the recovery window has passed, and walks home when the
// player leaves.
type PinkStarPolicy struct{}

func (PinkStarPolicy) Sense(ctx *AIContext, enqueue func(component.EventID)) {
	inZone := ctx.Perception.PlayerInZone
	if !inZone {
		enqueue(component.EventPlayerOutsideZone)
	}
	if ctx.State.Current == component.StateRecover && ctx.Combat.Ready() {
		enqueue(component.EventTimerExpired)
	}
	if inZone {
		if ctx.Combat.Ready() {
			enqueue(component.EventEngage)
		}
		enqueue(component.EventPlayerInZone)
	}
	if ctx.State.Current == component.StateReturn && ctx.Guard != nil &&
		ctx.Body.Position.Dist(ctx.Guard.Home) <= arriveTolerance {
		enqueue(component.EventReachedHome)
	}
}

func (PinkStarPolicy) Steer(ctx *AIContext) {
	switch ctx.State.Current {
	case component.StatePatrol:
		patrol(ctx, ctx.Stats.PatrolSpeed)
	case component.StateChase:
		followPlan(ctx, ctx.Player.Position, ctx.Stats.MoveSpeed)
		ctx.Intent.Attack = component.AttackBite
	case component.StateRecover:
		face(ctx.Body, ctx.Player.Position.X)
	case component.StateReturn:
		if ctx.Guard != nil {
			followPlan(ctx, ctx.Guard.Home, ctx.Stats.MoveSpeed)
		}
	}
}
