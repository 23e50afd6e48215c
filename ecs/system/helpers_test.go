package system

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/nav"
	"github.com/milk9111/enemycore/spatial"
)

const testDT = 1.0 / 60.0

var (
	fierceStats = component.Stats{
		Archetype: component.FierceTooth, MaxHealth: 80, VisionRange: 320, MeleeRange: 50,
		PatrolSpeed: 120, MoveSpeed: 180, BiteDamage: 30, ShootDamage: 10, ShootCooldown: 1,
		RecoveryDuration: 2, HalfWidth: 12, HalfHeight: 12,
	}
	seashellStats = component.Stats{
		Archetype: component.SeashellPearl, MaxHealth: 120, VisionRange: 400, MeleeRange: 40,
		BiteDamage: 40, ShootDamage: 15, ShootCooldown: 0.53, HalfWidth: 14, HalfHeight: 10,
	}
	pinkStats = component.Stats{
		Archetype: component.PinkStar, MaxHealth: 500, VisionRange: 480, MeleeRange: 40,
		PatrolSpeed: 60, MoveSpeed: 240, BiteDamage: 90, RecoveryDuration: 5.83,
		HalfWidth: 14, HalfHeight: 14,
	}
)

// corridor is a 20x5 room of 32px cells with an open interior from x=32 to
// x=608 and y=32 to y=128.
var corridor = []string{
	"####################",
	"#..................#",
	"#..................#",
	"#..................#",
	"####################",
}

type fakeController struct {
	damage     []float64
	suppressed []bool
}

func (f *fakeController) ApplyDamage(amount float64) { f.damage = append(f.damage, amount) }

func (f *fakeController) SetSprintSuppressed(v bool) { f.suppressed = append(f.suppressed, v) }

type harness struct {
	world    *ecs.World
	grid     *nav.Grid
	provider spatial.Provider
	ai       *AISystem
	ctrl     *fakeController
	sched    *ecs.Scheduler
	player   ecs.Entity
	events   []ecs.Event
}

func gridFromRows(t testing.TB, cellSize float64, rows ...string) *nav.Grid {
	t.Helper()
	geo := nav.Geometry{Width: len(rows[0]), Height: len(rows), CellSize: cellSize}
	for _, row := range rows {
		for _, ch := range row {
			geo.Solid = append(geo.Solid, ch == '#')
		}
	}
	g, err := nav.BuildGrid(geo)
	require.NoError(t, err)
	return g
}

func newHarness(t testing.TB, logger *zap.Logger, rows ...string) *harness {
	t.Helper()
	grid := gridFromRows(t, 32, rows...)
	provider := spatial.NewGridProvider(grid)
	ctrl := &fakeController{}
	ai := NewAISystem(AIOptions{
		Planner:  nav.NewPlanner(grid, nav.DefaultReplanInterval, logger),
		Provider: provider,
		Logger:   logger,
	})

	w := ecs.NewWorld()
	clock := w.CreateEntity()
	require.NoError(t, ecs.Add(w, clock, component.ClockComponent, component.Clock{}))
	player := w.CreateEntity()
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, player, component.PlayerObservationComponent, component.PlayerObservation{}))
	require.NoError(t, ecs.Add(w, player, component.PlayerStatusComponent, component.PlayerStatus{}))

	return &harness{
		world:    w,
		grid:     grid,
		provider: provider,
		ai:       ai,
		ctrl:     ctrl,
		player:   player,
		sched: ecs.NewScheduler(
			NewClockSystem(testDT),
			NewPerceptionSystem(provider),
			NewPredictionSystem(grid, DefaultPredictionWindow),
			ai,
			NewMovementSystem(provider),
			NewCombatSystem(nil, provider, ctrl, ai, logger),
			NewStatusEffectSystem(ctrl, logger),
			NewCleanupSystem(logger),
		),
	}
}

func (h *harness) spawn(t testing.TB, stats component.Stats, pos common.Vec2) ecs.Entity {
	t.Helper()
	w := h.world
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.AITagComponent, component.AITag{}))
	require.NoError(t, ecs.Add(w, e, component.EnemyTagComponent, component.EnemyTag{}))
	require.NoError(t, ecs.Add(w, e, component.StatsComponent, stats))
	require.NoError(t, ecs.Add(w, e, component.BodyComponent, component.Body{Position: pos}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent, component.Health{Current: stats.MaxHealth, Max: stats.MaxHealth}))
	require.NoError(t, ecs.Add(w, e, component.AIStateComponent, component.AIState{}))
	require.NoError(t, ecs.Add(w, e, component.AIStateInterruptComponent, component.AIStateInterrupt{}))
	require.NoError(t, ecs.Add(w, e, component.PerceptionComponent, component.Perception{}))
	require.NoError(t, ecs.Add(w, e, component.MemoryComponent, component.Memory{}))
	require.NoError(t, ecs.Add(w, e, component.CombatComponent, component.Combat{}))
	require.NoError(t, ecs.Add(w, e, component.IntentComponent, component.Intent{}))
	return e
}

func (h *harness) spawnFierceTooth(t testing.TB, pos common.Vec2, smart bool) ecs.Entity {
	t.Helper()
	e := h.spawn(t, fierceStats, pos)
	require.NoError(t, ecs.Add(h.world, e, component.PatrolComponent, component.Patrol{MinX: pos.X - 96, MaxX: pos.X + 96, Dir: 1}))
	if smart {
		require.NoError(t, ecs.Add(h.world, e, component.SmartComponent, component.Smart{ProjectileReaction: 100, GrenadeReaction: 150}))
	}
	return e
}

func (h *harness) spawnPinkStar(t testing.TB, home common.Vec2, zone component.Zone) ecs.Entity {
	t.Helper()
	z := h.world.CreateEntity()
	require.NoError(t, ecs.Add(h.world, z, component.ZoneComponent, zone))

	e := h.spawn(t, pinkStats, home)
	require.NoError(t, ecs.Add(h.world, e, component.GuardComponent, component.Guard{ZoneID: zone.ID, Home: home, PatrolRadius: 64}))
	require.NoError(t, ecs.Add(h.world, e, component.PatrolComponent, component.Patrol{MinX: home.X - 64, MaxX: home.X + 64, Dir: 1}))
	require.NoError(t, ecs.Add(h.world, e, component.PathPlanComponent, component.PathPlan{}))
	return e
}

// step runs one tick with the player at pos and returns the tick's events.
func (h *harness) step(obs component.PlayerObservation) []ecs.Event {
	o, _ := ecs.Get(h.world, h.player, component.PlayerObservationComponent)
	*o = obs
	h.sched.Update(h.world)
	evts := h.world.Events().Drain()
	h.events = append(h.events, evts...)
	return evts
}

func (h *harness) stepAt(pos common.Vec2) []ecs.Event {
	return h.step(component.PlayerObservation{Position: pos, Health: 100})
}

func (h *harness) state(e ecs.Entity) component.StateID {
	st, ok := ecs.Get(h.world, e, component.AIStateComponent)
	if !ok {
		return ""
	}
	return st.Current
}

func (h *harness) body(e ecs.Entity) *component.Body {
	b, _ := ecs.Get(h.world, e, component.BodyComponent)
	return b
}

func (h *harness) combat(e ecs.Entity) *component.Combat {
	c, _ := ecs.Get(h.world, e, component.CombatComponent)
	return c
}

func (h *harness) intent(e ecs.Entity) *component.Intent {
	in, _ := ecs.Get(h.world, e, component.IntentComponent)
	return in
}

func (h *harness) now() float64 {
	return worldClock(h.world).Now
}

func transitionsOf(evts []ecs.Event) []Transition {
	var out []Transition
	for _, evt := range evts {
		if tr, ok := evt.Data.(Transition); ok {
			out = append(out, tr)
		}
	}
	return out
}

func getMemory(h *harness, e ecs.Entity) (component.Memory, bool) {
	m, ok := ecs.Get(h.world, e, component.MemoryComponent)
	if !ok {
		return component.Memory{}, false
	}
	return *m, true
}

func mustState(t testing.TB, h *harness, e ecs.Entity) *component.AIState {
	t.Helper()
	st, ok := ecs.Get(h.world, e, component.AIStateComponent)
	require.True(t, ok)
	return st
}

func mustInterrupt(t testing.TB, h *harness, e ecs.Entity) *component.AIStateInterrupt {
	t.Helper()
	irq, ok := ecs.Get(h.world, e, component.AIStateInterruptComponent)
	require.True(t, ok)
	return irq
}

func setObservation(h *harness, obs component.PlayerObservation) {
	o, _ := ecs.Get(h.world, h.player, component.PlayerObservationComponent)
	*o = obs
}

func mustPerception(t testing.TB, h *harness, e ecs.Entity) *component.Perception {
	t.Helper()
	p, ok := ecs.Get(h.world, e, component.PerceptionComponent)
	require.True(t, ok)
	return p
}

func mustMemory(t testing.TB, h *harness, e ecs.Entity) *component.Memory {
	t.Helper()
	m, ok := ecs.Get(h.world, e, component.MemoryComponent)
	require.True(t, ok)
	return m
}
