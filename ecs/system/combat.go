package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/combat"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/logging"
	"github.com/milk9111/enemycore/spatial"
)

// EventSink receives FSM events raised while resolving combat.
type EventSink interface {
	Fire(w *ecs.World, e ecs.Entity, ev component.EventID) bool
}

// CombatSystem ticks attack timers, validates attack intents through the
// resolver and routes damage to the player controller.
type CombatSystem struct {
	resolver   *combat.Resolver
	provider   spatial.Provider
	controller combat.PlayerController
	sink       EventSink
	logger     *zap.Logger
}

func NewCombatSystem(resolver *combat.Resolver, provider spatial.Provider, controller combat.PlayerController, sink EventSink, logger *zap.Logger) *CombatSystem {
	if resolver == nil {
		resolver = combat.NewResolver()
	}
	return &CombatSystem{
		resolver:   resolver,
		provider:   provider,
		controller: controller,
		sink:       sink,
		logger:     logging.OrNop(logger),
	}
}

func (s *CombatSystem) Resolver() *combat.Resolver { return s.resolver }

// SetController replaces the player controller damage is routed to.
func (s *CombatSystem) SetController(c combat.PlayerController) { s.controller = c }

func (s *CombatSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clk := worldClock(w)

	ecs.ForEach(w, component.CombatComponent, func(_ ecs.Entity, c *component.Combat) {
		c.RecoveryTimer = tickDown(c.RecoveryTimer, clk.DT)
		c.ShootTimer = tickDown(c.ShootTimer, clk.DT)
		c.HitStunTimer = tickDown(c.HitStunTimer, clk.DT)
	})

	obs, ok := playerObservation(w)
	if !ok {
		return
	}

	for _, e := range ecs.Query(w, component.IntentComponent) {
		intent, _ := ecs.Get(w, e, component.IntentComponent)
		if intent.Attack == component.AttackNone {
			continue
		}
		// Killed this tick; removal happens in cleanup.
		if h, ok := ecs.Get(w, e, component.HealthComponent); ok && !h.Alive() {
			intent.Attack = component.AttackNone
			continue
		}
		stats, ok1 := ecs.Get(w, e, component.StatsComponent)
		body, ok2 := ecs.Get(w, e, component.BodyComponent)
		state, ok3 := ecs.Get(w, e, component.AIStateComponent)
		cmb, ok4 := ecs.Get(w, e, component.CombatComponent)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}

		req := combat.Request{
			Attacker:    e,
			Stats:       *stats,
			State:       state.Current,
			Kind:        intent.Attack,
			Combat:      *cmb,
			Origin:      body.Position,
			Distance:    body.Position.Dist(obs.Position),
			PlayerAlive: obs.Alive(),
			Tick:        clk.Tick,
		}
		if s.provider != nil {
			req.Distance = s.provider.Distance(body.Position, obs.Position)
			req.LineOfSight = s.provider.HasLineOfSight(body.Position, obs.Position)
		}

		evt, ok := s.resolver.Resolve(req)
		if !ok {
			continue
		}
		s.apply(w, e, stats, cmb, evt)
	}
}

func (s *CombatSystem) apply(w *ecs.World, e ecs.Entity, stats *component.Stats, cmb *component.Combat, evt combat.DamageEvent) {
	switch evt.Kind {
	case component.AttackShoot:
		cmb.Shots++
		cmb.ShootTimer = stats.ShootCooldown
	case component.AttackBite:
		cmb.Bites++
		if stats.HasRecovery() {
			cmb.RecoveryTimer = stats.RecoveryDuration
			if s.sink != nil {
				s.sink.Fire(w, e, component.EventBiteLanded)
			}
		}
	}

	if s.controller != nil {
		s.controller.ApplyDamage(evt.Amount)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: evt})
	s.logger.Info("enemy attack landed",
		zap.Stringer("entity", e),
		zap.Stringer("archetype", evt.Archetype),
		zap.Stringer("attack", evt.Kind),
		zap.Float64("amount", evt.Amount),
		zap.Uint64("tick", evt.Tick),
	)
}

func tickDown(v, dt float64) float64 {
	v -= dt
	if v < 0 {
		return 0
	}
	return v
}
