package system

import "github.com/milk9111/enemycore/ecs/component"

// SeashellPearlPolicy never moves. It shoots what it sees and bites whatever
// stays in reach, every tick.
type SeashellPearlPolicy struct{}

func (SeashellPearlPolicy) Sense(ctx *AIContext, enqueue func(component.EventID)) {
	if ctx.Perception.InMeleeRange {
		enqueue(component.EventInMeleeRange)
	} else {
		enqueue(component.EventOutMeleeRange)
	}
	if ctx.Perception.PlayerVisible {
		enqueue(component.EventSeesPlayer)
	} else {
		enqueue(component.EventLosesPlayer)
	}
}

func (SeashellPearlPolicy) Steer(ctx *AIContext) {
	switch ctx.State.Current {
	case component.StateAttackShoot:
		face(ctx.Body, ctx.Player.Position.X)
		ctx.Intent.Attack = component.AttackShoot
	case component.StateAttackBite:
		face(ctx.Body, ctx.Player.Position.X)
		ctx.Intent.Attack = component.AttackBite
	}
}
