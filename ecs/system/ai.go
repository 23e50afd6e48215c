package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/logging"
	"github.com/milk9111/enemycore/nav"
	"github.com/milk9111/enemycore/spatial"
)

const defaultMaxTransitions = 4

// Policy is one archetype's decision logic. Sense enqueues FSM events in
// priority order; Steer writes the intent for the settled state.
type Policy interface {
	Sense(ctx *AIContext, enqueue func(component.EventID))
	Steer(ctx *AIContext)
}

// Transition records one FSM state change.
type Transition struct {
	Entity    ecs.Entity
	Archetype component.Archetype
	From      component.StateID
	To        component.StateID
	Event     component.EventID
	At        float64
}

type AIOptions struct {
	Planner        *nav.Planner
	Provider       spatial.Provider
	PostReturn     PostReturnPolicy
	MaxTransitions int
	Logger         *zap.Logger
}

// AISystem runs every enemy's state machine once per tick.
type AISystem struct {
	tables         map[component.Archetype]Table
	policies       map[component.Archetype]Policy
	smart          Policy
	planner        *nav.Planner
	provider       spatial.Provider
	postReturn     PostReturnPolicy
	maxTransitions int
	logger         *zap.Logger
}

func NewAISystem(opts AIOptions) *AISystem {
	if opts.MaxTransitions <= 0 {
		opts.MaxTransitions = defaultMaxTransitions
	}
	if opts.PostReturn == nil {
		opts.PostReturn = FixedPostReturn(component.StatePatrol)
	}
	fierce := &FierceToothPolicy{}
	return &AISystem{
		tables: map[component.Archetype]Table{
			component.FierceTooth:   FierceToothTable(),
			component.SeashellPearl: SeashellPearlTable(),
			component.PinkStar:      PinkStarTable(),
		},
		policies: map[component.Archetype]Policy{
			component.FierceTooth:   fierce,
			component.SeashellPearl: &SeashellPearlPolicy{},
			component.PinkStar:      &PinkStarPolicy{},
		},
		smart:          &SmartPolicy{Base: fierce},
		planner:        opts.Planner,
		provider:       opts.Provider,
		postReturn:     opts.PostReturn,
		maxTransitions: opts.MaxTransitions,
		logger:         logging.OrNop(opts.Logger),
	}
}

// SetPostReturn swaps the post-return policy, e.g. after a script reload.
func (s *AISystem) SetPostReturn(p PostReturnPolicy) {
	if p != nil {
		s.postReturn = p
	}
}

func (s *AISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clk := worldClock(w)
	obs, _ := playerObservation(w)
	zones := zoneRects(w)

	for _, e := range ecs.Query(w, component.AITagComponent) {
		ctx, ok := s.context(w, e, clk, obs, zones)
		if !ok {
			continue
		}
		*ctx.Intent = component.Intent{}
		if h, ok := ecs.Get(w, e, component.HealthComponent); ok && !h.Alive() {
			continue
		}

		table, policy, ok := s.behaviour(ctx)
		if !ok {
			continue
		}
		s.clampState(ctx, table)

		var pending []component.EventID
		if irq, ok := ecs.Get(w, e, component.AIStateInterruptComponent); ok && len(irq.Events) > 0 {
			pending = append(pending, irq.Events...)
			irq.Events = irq.Events[:0]
		}

		s.settle(ctx, table, policy, pending)
		policy.Steer(ctx)
	}
}

// Fire applies a single event to an enemy's FSM outside the regular update,
// so effects resolved later in the tick (a landed bite) take hold at once.
func (s *AISystem) Fire(w *ecs.World, e ecs.Entity, ev component.EventID) bool {
	if s == nil || w == nil {
		return false
	}
	ctx, ok := s.context(w, e, worldClock(w), component.PlayerObservation{}, zoneRects(w))
	if !ok {
		return false
	}
	table, ok := s.tables[ctx.Stats.Archetype]
	if !ok {
		return false
	}
	s.clampState(ctx, table)
	next, ok := table.Next(ctx.State.Current, ev)
	if !ok {
		return false
	}
	s.transition(ctx, next, ev)
	return true
}

func (s *AISystem) context(w *ecs.World, e ecs.Entity, clk component.Clock, obs component.PlayerObservation, zones map[string]common.Rect) (*AIContext, bool) {
	ctx, ok := newAIContext(w, e, clk, obs, zones)
	if !ok {
		return nil, false
	}
	ctx.Planner = s.planner
	ctx.Provider = s.provider
	return ctx, true
}

func (s *AISystem) behaviour(ctx *AIContext) (Table, Policy, bool) {
	a := ctx.Stats.Archetype
	table, ok := s.tables[a]
	if !ok {
		return Table{}, nil, false
	}
	policy := s.policies[a]
	if a == component.FierceTooth && ctx.Smart != nil {
		policy = s.smart
	}
	return table, policy, policy != nil
}

func (s *AISystem) clampState(ctx *AIContext, table Table) {
	if ctx.State.Current == "" {
		ctx.State.Current = table.Initial
		ctx.State.EnteredAt = ctx.Now
		return
	}
	if table.Knows(ctx.State.Current) {
		return
	}
	s.logger.Warn("ai state clamped to default",
		zap.Stringer("entity", ctx.Entity),
		zap.Stringer("archetype", ctx.Stats.Archetype),
		zap.String("state", string(ctx.State.Current)),
		zap.String("default", string(table.Initial)),
	)
	ctx.State.Previous = ctx.State.Current
	ctx.State.Current = table.Initial
	ctx.State.EnteredAt = ctx.Now
	if ctx.Plan != nil {
		ctx.Plan.Invalidate()
	}
}

// settle processes events until the state stops changing, re-sensing after
// every transition so chained transitions finish within one tick.
func (s *AISystem) settle(ctx *AIContext, table Table, policy Policy, pending []component.EventID) {
	for i := 0; i < s.maxTransitions; i++ {
		events := pending
		pending = nil
		policy.Sense(ctx, func(ev component.EventID) {
			if ev != "" {
				events = append(events, ev)
			}
		})

		changed := false
		for _, ev := range events {
			next, ok := table.Next(ctx.State.Current, ev)
			if !ok {
				continue
			}
			s.transition(ctx, next, ev)
			changed = true
			break
		}
		if !changed {
			return
		}
	}
}

func (s *AISystem) transition(ctx *AIContext, next component.StateID, ev component.EventID) {
	if ev == component.EventReachedHome {
		next = s.postReturn.Next(ctx)
	}
	prev := ctx.State.Current
	ctx.State.Previous = prev
	ctx.State.Current = next
	ctx.State.EnteredAt = ctx.Now

	// Path plans belong to a single Chase or Return leg.
	if ctx.Plan != nil {
		ctx.Plan.Invalidate()
	}

	s.logger.Debug("ai transition",
		zap.Stringer("entity", ctx.Entity),
		zap.Stringer("archetype", ctx.Stats.Archetype),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.String("event", string(ev)),
	)
	ctx.World.Events().Push(ecs.Event{
		Type: ecs.EventTransition,
		Data: Transition{
			Entity:    ctx.Entity,
			Archetype: ctx.Stats.Archetype,
			From:      prev,
			To:        next,
			Event:     ev,
			At:        ctx.Now,
		},
	})
}
