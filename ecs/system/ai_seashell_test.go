package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
)

func TestSeashellPearlBitesEveryTickWithoutMoving(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	start := common.V(320, 80)
	ss := h.spawn(t, seashellStats, start)

	const n = 10
	for i := 0; i < n; i++ {
		h.stepAt(common.V(350, 80))
	}

	assert.Equal(t, component.StateAttackBite, h.state(ss))
	assert.Len(t, h.ctrl.damage, n)
	for _, d := range h.ctrl.damage {
		assert.Equal(t, seashellStats.BiteDamage, d)
	}
	assert.Equal(t, start, h.body(ss).Position)
	assert.Equal(t, n, h.combat(ss).Bites)
}

func TestDeadSeashellPearlStopsBiting(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	ss := h.spawn(t, seashellStats, common.V(320, 80))

	h.stepAt(common.V(350, 80))
	require.Len(t, h.ctrl.damage, 1)

	hp, ok := ecs.Get(h.world, ss, component.HealthComponent)
	require.True(t, ok)
	hp.Damage(hp.Current)

	h.stepAt(common.V(350, 80))
	assert.Len(t, h.ctrl.damage, 1, "no bite on the tick it died")
	assert.False(t, h.world.IsAlive(ss), "removed at cleanup")
}

func TestSeashellPearlShootsOnCooldown(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	ss := h.spawn(t, seashellStats, common.V(320, 80))

	for i := 0; i < 60; i++ {
		h.stepAt(common.V(580, 80))
	}
	assert.Equal(t, component.StateAttackShoot, h.state(ss))
	assert.Equal(t, []float64{15, 15}, h.ctrl.damage)
}

func TestSeashellPearlIdlesWithoutSight(t *testing.T) {
	h := newHarness(t, nil,
		"####################",
		"#.........#........#",
		"#.........#........#",
		"#.........#........#",
		"####################",
	)
	ss := h.spawn(t, seashellStats, common.V(200, 80))

	h.stepAt(common.V(400, 80))
	assert.Equal(t, component.StateIdle, h.state(ss))

	h.stepAt(common.V(280, 80))
	assert.Equal(t, component.StateAttackShoot, h.state(ss))

	h.stepAt(common.V(400, 80))
	assert.Equal(t, component.StateIdle, h.state(ss))
	assert.Equal(t, []float64{15}, h.ctrl.damage)
}
