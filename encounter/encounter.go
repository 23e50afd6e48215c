// Package encounter wires the level, the enemy roster and the AI systems into
// one per-frame update.
package encounter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/enemycore/combat"
	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/ecs/system"
	"github.com/milk9111/enemycore/levels"
	"github.com/milk9111/enemycore/logging"
	"github.com/milk9111/enemycore/nav"
	"github.com/milk9111/enemycore/prefabs"
	"github.com/milk9111/enemycore/spatial"
)

const defaultPatrolHalfWidth = 96.0

type Options struct {
	Level  *levels.Level
	Config config.Config
	// Roster defaults to the archetype prefabs.
	Roster prefabs.Roster
	// Provider defaults to a chipmunk space built from the level geometry.
	Provider   spatial.Provider
	Controller combat.PlayerController
	Logger     *zap.Logger
}

// TickResult is everything the host needs to react to after one tick.
type TickResult struct {
	Tick          uint64
	Damage        []combat.DamageEvent
	StatusEffects []component.StatusEffect
	Transitions   []system.Transition
	Deaths        []system.EnemyDied
}

// Encounter owns the ECS world for one level.
type Encounter struct {
	level     *levels.Level
	roster    prefabs.Roster
	world     *ecs.World
	scheduler *ecs.Scheduler
	grid      *nav.Grid
	provider  spatial.Provider
	planner   *nav.Planner

	ai     *system.AISystem
	combat *system.CombatSystem
	status *system.StatusEffectSystem

	clock  ecs.Entity
	player ecs.Entity
	zones  map[string]ecs.Entity
	guards map[string]ecs.Entity
	logger *zap.Logger
}

// New builds the navigation grid, spawns the level's zones and enemies and
// prepares the systems. Any error here makes the level unplayable.
func New(opts Options) (*Encounter, error) {
	if opts.Level == nil {
		return nil, fmt.Errorf("encounter: level is required")
	}
	logger := logging.OrNop(opts.Logger)
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}
	if err := opts.Level.Validate(); err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}

	grid, err := nav.BuildGrid(opts.Level.Geometry())
	if err != nil {
		return nil, fmt.Errorf("encounter: build grid: %w", err)
	}

	provider := opts.Provider
	if provider == nil {
		space, err := spatial.NewSpace(opts.Level.Geometry())
		if err != nil {
			return nil, fmt.Errorf("encounter: %w", err)
		}
		provider = space
	}

	roster := opts.Roster
	if roster == nil {
		roster, err = prefabs.LoadRoster(cfg.Player.BaseSpeed)
		if err != nil {
			return nil, fmt.Errorf("encounter: %w", err)
		}
	} else if err := prefabs.ValidateRoster(roster, cfg.Player.BaseSpeed); err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}

	postReturn, err := system.NewPostReturnPolicy(cfg.AI.PostReturn, cfg.AI.PostReturnScript, logger)
	if err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}

	enc := &Encounter{
		level:    opts.Level,
		roster:   roster,
		world:    ecs.NewWorld(),
		grid:     grid,
		provider: provider,
		planner:  nav.NewPlanner(grid, cfg.Simulation.ReplanInterval.Seconds(), logger),
		zones:    map[string]ecs.Entity{},
		guards:   map[string]ecs.Entity{},
		logger:   logger,
	}

	enc.ai = system.NewAISystem(system.AIOptions{
		Planner:        enc.planner,
		Provider:       provider,
		PostReturn:     postReturn,
		MaxTransitions: cfg.Simulation.MaxTransitionsPerTick,
		Logger:         logger,
	})
	enc.combat = system.NewCombatSystem(combat.NewResolver(), provider, opts.Controller, enc.ai, logger)
	enc.status = system.NewStatusEffectSystem(opts.Controller, logger)
	enc.scheduler = ecs.NewScheduler(
		system.NewClockSystem(cfg.Simulation.DT()),
		system.NewPerceptionSystem(provider),
		system.NewPredictionSystem(grid, cfg.Simulation.PredictionWindow.Seconds()),
		enc.ai,
		system.NewMovementSystem(provider),
		enc.combat,
		enc.status,
		system.NewCleanupSystem(logger),
	)

	if err := enc.spawnLevel(); err != nil {
		return nil, err
	}
	logger.Info("encounter ready",
		zap.String("level", opts.Level.Name),
		zap.Int("enemies", len(opts.Level.Enemies)),
		zap.Int("zones", len(opts.Level.Zones)),
	)
	return enc, nil
}

func (e *Encounter) spawnLevel() error {
	w := e.world
	e.clock = w.CreateEntity()
	if err := ecs.Add(w, e.clock, component.ClockComponent, component.Clock{}); err != nil {
		return fmt.Errorf("encounter: add clock: %w", err)
	}

	e.player = w.CreateEntity()
	if err := ecs.Add(w, e.player, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		return fmt.Errorf("encounter: add player tag: %w", err)
	}
	if err := ecs.Add(w, e.player, component.PlayerObservationComponent, component.PlayerObservation{
		Position: e.level.PlayerSpawn.Vec(),
	}); err != nil {
		return fmt.Errorf("encounter: add player observation: %w", err)
	}
	if err := ecs.Add(w, e.player, component.PlayerStatusComponent, component.PlayerStatus{}); err != nil {
		return fmt.Errorf("encounter: add player status: %w", err)
	}

	for _, z := range e.level.Zones {
		ent := w.CreateEntity()
		if err := ecs.Add(w, ent, component.ZoneComponent, component.Zone{ID: z.ID, Bounds: z.Rect()}); err != nil {
			return fmt.Errorf("encounter: add zone %s: %w", z.ID, err)
		}
		e.zones[z.ID] = ent
	}

	for _, p := range e.level.Enemies {
		if _, err := e.Spawn(p); err != nil {
			return err
		}
	}
	return nil
}

// Spawn creates one enemy from a placement record.
func (e *Encounter) Spawn(p levels.Placement) (ecs.Entity, error) {
	spec, ok := e.roster[p.Archetype]
	if !ok {
		return 0, fmt.Errorf("encounter: %w: no tuning for %s", prefabs.ErrInvalidSpec, p.Archetype)
	}
	if p.Archetype == component.PinkStar {
		if _, ok := e.zones[p.Zone]; !ok {
			return 0, fmt.Errorf("encounter: %w %q", levels.ErrUnknownZone, p.Zone)
		}
		if _, taken := e.guards[p.Zone]; taken {
			return 0, fmt.Errorf("encounter: %w %q", levels.ErrZoneAlreadyGuarded, p.Zone)
		}
	}

	w := e.world
	ent := w.CreateEntity()
	stats := spec.Stats()
	pos := p.Position()

	adds := []func() error{
		func() error { return ecs.Add(w, ent, component.AITagComponent, component.AITag{}) },
		func() error { return ecs.Add(w, ent, component.EnemyTagComponent, component.EnemyTag{}) },
		func() error { return ecs.Add(w, ent, component.StatsComponent, stats) },
		func() error { return ecs.Add(w, ent, component.BodyComponent, component.Body{Position: pos}) },
		func() error {
			return ecs.Add(w, ent, component.HealthComponent, component.Health{Current: stats.MaxHealth, Max: stats.MaxHealth})
		},
		func() error { return ecs.Add(w, ent, component.AIStateComponent, component.AIState{}) },
		func() error { return ecs.Add(w, ent, component.AIStateInterruptComponent, component.AIStateInterrupt{}) },
		func() error { return ecs.Add(w, ent, component.PerceptionComponent, component.Perception{}) },
		func() error { return ecs.Add(w, ent, component.MemoryComponent, component.Memory{}) },
		func() error { return ecs.Add(w, ent, component.CombatComponent, component.Combat{}) },
		func() error { return ecs.Add(w, ent, component.IntentComponent, component.Intent{}) },
	}

	switch p.Archetype {
	case component.FierceTooth:
		minX, maxX := p.PatrolMinX, p.PatrolMaxX
		if minX == 0 && maxX == 0 {
			minX, maxX = pos.X-defaultPatrolHalfWidth, pos.X+defaultPatrolHalfWidth
		}
		adds = append(adds, func() error {
			return ecs.Add(w, ent, component.PatrolComponent, component.Patrol{MinX: minX, MaxX: maxX, Dir: 1})
		})
		if p.Smart {
			adds = append(adds, func() error {
				return ecs.Add(w, ent, component.SmartComponent, component.Smart{
					ProjectileReaction: spec.Smart.ProjectileReaction,
					GrenadeReaction:    spec.Smart.GrenadeReaction,
				})
			})
		}
	case component.PinkStar:
		adds = append(adds,
			func() error {
				return ecs.Add(w, ent, component.GuardComponent, component.Guard{ZoneID: p.Zone, Home: pos, PatrolRadius: spec.PatrolRadius})
			},
			func() error {
				return ecs.Add(w, ent, component.PatrolComponent, component.Patrol{
					MinX: pos.X - spec.PatrolRadius, MaxX: pos.X + spec.PatrolRadius, Dir: 1,
				})
			},
			func() error { return ecs.Add(w, ent, component.PathPlanComponent, component.PathPlan{}) },
		)
	}

	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(ent)
			return 0, fmt.Errorf("encounter: spawn %s: %w", p.Archetype, err)
		}
	}
	if p.Archetype == component.PinkStar {
		e.guards[p.Zone] = ent
	}
	e.logger.Debug("enemy spawned",
		zap.Stringer("entity", ent),
		zap.Stringer("archetype", p.Archetype),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
		zap.Bool("smart", p.Smart),
	)
	return ent, nil
}

// Tick runs one fixed step against the given player snapshot.
func (e *Encounter) Tick(obs component.PlayerObservation) TickResult {
	if o, ok := ecs.Get(e.world, e.player, component.PlayerObservationComponent); ok {
		*o = obs
	}
	e.scheduler.Update(e.world)

	var res TickResult
	if c, ok := ecs.Get(e.world, e.clock, component.ClockComponent); ok {
		res.Tick = c.Tick
	}
	for _, evt := range e.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case combat.DamageEvent:
			res.Damage = append(res.Damage, data)
		case component.StatusEffect:
			res.StatusEffects = append(res.StatusEffects, data)
		case system.Transition:
			res.Transitions = append(res.Transitions, data)
		case system.EnemyDied:
			delete(e.guards, e.zoneOf(data.Entity))
			res.Deaths = append(res.Deaths, data)
		}
	}
	return res
}

func (e *Encounter) zoneOf(ent ecs.Entity) string {
	for id, g := range e.guards {
		if g == ent {
			return id
		}
	}
	return ""
}

// DamageEnemy applies player damage to an enemy and starts its hit stun.
// Hits landing while the enemy is stunned are ignored and report false. Smart
// enemies turn toward the attacker. The enemy is removed at the end of the next tick if this kills
// it.
func (e *Encounter) DamageEnemy(ent ecs.Entity, amount float64, from common.Vec2) bool {
	h, ok := ecs.Get(e.world, ent, component.HealthComponent)
	if !ok || !h.Alive() {
		return false
	}
	cmb, hasCombat := ecs.Get(e.world, ent, component.CombatComponent)
	if hasCombat && cmb.Stunned() {
		e.logger.Debug("hit ignored while stunned",
			zap.Stringer("entity", ent),
			zap.Float64("stun", cmb.HitStunTimer),
		)
		return false
	}
	lethal := h.Damage(amount)
	if stats, ok := ecs.Get(e.world, ent, component.StatsComponent); ok && hasCombat {
		cmb.HitStunTimer = stats.HitStun
	}
	if ecs.Has(e.world, ent, component.SmartComponent) {
		if body, ok := ecs.Get(e.world, ent, component.BodyComponent); ok && from.X != body.Position.X {
			body.FacingLeft = from.X < body.Position.X
		}
	}
	e.logger.Debug("enemy damaged",
		zap.Stringer("entity", ent),
		zap.Float64("amount", amount),
		zap.Float64("health", h.Current),
		zap.Bool("lethal", lethal),
	)
	return true
}

// ApplyStats replaces the tuning of every live enemy of spec's archetype and
// returns how many were updated. Current health is capped at the new maximum.
func (e *Encounter) ApplyStats(spec prefabs.ArchetypeSpec) int {
	if err := spec.Validate(); err != nil {
		e.logger.Warn("ignoring invalid archetype spec", zap.String("name", spec.Name), zap.Error(err))
		return 0
	}
	e.roster[spec.Archetype] = spec
	stats := spec.Stats()

	n := 0
	ecs.ForEach2(e.world, component.StatsComponent, component.HealthComponent, func(ent ecs.Entity, s *component.Stats, h *component.Health) {
		if s.Archetype != spec.Archetype {
			return
		}
		*s = stats
		h.Max = stats.MaxHealth
		if h.Current > h.Max {
			h.Current = h.Max
		}
		if sm, ok := ecs.Get(e.world, ent, component.SmartComponent); ok {
			sm.ProjectileReaction = spec.Smart.ProjectileReaction
			sm.GrenadeReaction = spec.Smart.GrenadeReaction
		}
		if g, ok := ecs.Get(e.world, ent, component.GuardComponent); ok {
			g.PatrolRadius = spec.PatrolRadius
		}
		n++
	})
	e.logger.Info("archetype stats applied", zap.Stringer("archetype", spec.Archetype), zap.Int("enemies", n))
	return n
}

// SetPostReturn swaps the PinkStar post-return policy.
func (e *Encounter) SetPostReturn(p system.PostReturnPolicy) { e.ai.SetPostReturn(p) }

// SetController routes damage and status effects to a new player controller.
func (e *Encounter) SetController(c combat.PlayerController) {
	e.combat.SetController(c)
	e.status.SetController(c)
}

func (e *Encounter) World() *ecs.World { return e.world }

func (e *Encounter) Grid() *nav.Grid { return e.grid }

func (e *Encounter) Planner() *nav.Planner { return e.planner }

func (e *Encounter) Provider() spatial.Provider { return e.provider }

func (e *Encounter) Level() *levels.Level { return e.level }

func (e *Encounter) Resolver() *combat.Resolver { return e.combat.Resolver() }

// Now returns the simulation time in seconds.
func (e *Encounter) Now() float64 {
	if c, ok := ecs.Get(e.world, e.clock, component.ClockComponent); ok {
		return c.Now
	}
	return 0
}
