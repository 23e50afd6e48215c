package system

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
)

// FierceToothPolicy patrols, shoots from range, closes in to bite and backs
// off to recover after a bite lands.
type FierceToothPolicy struct{}

func (FierceToothPolicy) Sense(ctx *AIContext, enqueue func(component.EventID)) {
	if ctx.State.Current == component.StateRecover && ctx.Combat.Ready() {
		enqueue(component.EventTimerExpired)
	}
	if !ctx.Perception.PlayerVisible {
		enqueue(component.EventLosesPlayer)
		return
	}
	if ctx.Perception.InMeleeRange {
		enqueue(component.EventInMeleeRange)
	} else {
		enqueue(component.EventOutMeleeRange)
	}
	enqueue(component.EventSeesPlayer)
}

func (p FierceToothPolicy) Steer(ctx *AIContext) {
	p.steerToward(ctx, ctx.Player.Position)
}

// steerToward is shared with the smart decorator, which may substitute a
// predicted target for the player's position.
func (FierceToothPolicy) steerToward(ctx *AIContext, target common.Vec2) {
	switch ctx.State.Current {
	case component.StatePatrol:
		patrol(ctx, ctx.Stats.PatrolSpeed)
	case component.StateChase:
		seekHorizontal(ctx, target, ctx.Stats.MoveSpeed)
	case component.StateAttackShoot:
		seekHorizontal(ctx, target, ctx.Stats.MoveSpeed)
		ctx.Intent.Attack = component.AttackShoot
	case component.StateAttackBite:
		seekHorizontal(ctx, target, ctx.Stats.MoveSpeed)
		ctx.Intent.Attack = component.AttackBite
	case component.StateRecover:
		face(ctx.Body, target.X)
	}
}
