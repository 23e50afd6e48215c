package combat

import (
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
)

// DamageEvent is a resolved enemy attack against the player.
type DamageEvent struct {
	Attacker  ecs.Entity
	Archetype component.Archetype
	Kind      component.AttackKind
	Amount    float64
	Tick      uint64
	Origin    common.Vec2
}

// Handler receives resolved damage events.
type Handler func(evt DamageEvent)

// Emitter fans damage events out to its handlers in registration order.
type Emitter struct {
	Handlers []Handler
}

func (e *Emitter) Subscribe(h Handler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends an event to all handlers.
func (e *Emitter) Emit(evt DamageEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// PlayerController is the player-side boundary this core may mutate.
type PlayerController interface {
	ApplyDamage(amount float64)
	SetSprintSuppressed(suppressed bool)
}
