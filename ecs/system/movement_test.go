package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
)

func TestClockSystemAdvances(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.ClockComponent, component.Clock{}))

	sys := NewClockSystem(0.25)
	for i := 0; i < 4; i++ {
		sys.Update(w)
	}
	c, _ := ecs.Get(w, e, component.ClockComponent)
	assert.Equal(t, uint64(4), c.Tick)
	assert.Equal(t, 0.25, c.DT)
	assert.InDelta(t, 1.0, c.Now, 1e-12)
}

func TestMovementSystem(t *testing.T) {
	h := newHarness(t, nil, walled...)
	NewClockSystem(0.5).Update(h.world)
	sys := NewMovementSystem(h.provider)

	ft := h.spawn(t, fierceStats, common.V(300, 80))
	ss := h.spawn(t, seashellStats, common.V(200, 80))

	h.intent(ft).Move = common.V(20, 0)
	h.intent(ss).Move = common.V(100, 0)
	sys.Update(h.world)
	assert.Equal(t, common.V(310, 80), h.body(ft).Position)
	assert.Equal(t, common.V(20, 0), h.body(ft).Velocity)
	assert.Equal(t, common.V(200, 80), h.body(ss).Position, "seashell pearls never move")
	assert.Equal(t, common.Vec2{}, h.body(ss).Velocity)

	h.intent(ft).Move = common.V(40, 40)
	sys.Update(h.world)
	assert.Equal(t, common.V(310, 100), h.body(ft).Position, "blocked axis is dropped")

	h.intent(ft).Move = common.Vec2{}
	sys.Update(h.world)
	assert.Equal(t, common.Vec2{}, h.body(ft).Velocity)
}

func TestCleanupSystemRemovesDeadEnemies(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	alive := h.spawn(t, fierceStats, common.V(100, 80))
	dead := h.spawn(t, seashellStats, common.V(200, 80))
	hp, _ := ecs.Get(h.world, dead, component.HealthComponent)
	require.True(t, hp.Damage(1000))

	NewCleanupSystem(nil).Update(h.world)

	assert.True(t, h.world.IsAlive(alive))
	assert.False(t, h.world.IsAlive(dead))
	evts := h.world.Events().Drain()
	require.Len(t, evts, 1)
	assert.Equal(t, ecs.EventEnemyDied, evts[0].Type)
	assert.Equal(t, EnemyDied{Entity: dead, Archetype: component.SeashellPearl}, evts[0].Data)
}

func TestStatusEffectSystemOnlyReportsChanges(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	ps := h.spawnPinkStar(t, common.V(464, 80), den)
	sys := NewStatusEffectSystem(h.ctrl, nil)

	setObservation(h, component.PlayerObservation{Position: common.V(400, 80), Health: 100})
	sys.Update(h.world)
	assert.Empty(t, h.ctrl.suppressed, "patrolling guard does not suppress")

	mustState(t, h, ps).Current = component.StateChase
	sys.Update(h.world)
	sys.Update(h.world)
	assert.Equal(t, []bool{true}, h.ctrl.suppressed)

	evts := h.world.Events().Drain()
	require.Len(t, evts, 1)
	assert.Equal(t, component.StatusEffect{SprintSuppressed: true, ZoneID: "den"}, evts[0].Data)

	hp, _ := ecs.Get(h.world, ps, component.HealthComponent)
	hp.Damage(hp.Current)
	sys.Update(h.world)
	assert.Equal(t, []bool{true, false}, h.ctrl.suppressed, "a dead guard lifts suppression")
}
