package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/spatial"
)

func TestObserve(t *testing.T) {
	provider := spatial.NewGridProvider(gridFromRows(t, 32, walled...))
	coned := fierceStats
	coned.VisionAngle = 90
	short := fierceStats
	short.VisionRange = 100

	cases := []struct {
		name    string
		stats   component.Stats
		body    component.Body
		player  common.Vec2
		health  float64
		visible bool
		melee   bool
	}{
		{name: "in range", stats: fierceStats, body: component.Body{Position: common.V(100, 80)}, player: common.V(250, 80), health: 100, visible: true},
		{name: "long range", stats: seashellStats, body: component.Body{Position: common.V(40, 80)}, player: common.V(300, 80), health: 100, visible: true},
		{name: "beyond vision", stats: short, body: component.Body{Position: common.V(100, 80)}, player: common.V(250, 80), health: 100},
		{name: "wall in the way", stats: fierceStats, body: component.Body{Position: common.V(300, 80)}, player: common.V(400, 80), health: 100},
		{name: "in melee range", stats: fierceStats, body: component.Body{Position: common.V(100, 80)}, player: common.V(140, 80), health: 100, visible: true, melee: true},
		{name: "dead player", stats: fierceStats, body: component.Body{Position: common.V(100, 80)}, player: common.V(140, 80)},
		{name: "cone ahead", stats: coned, body: component.Body{Position: common.V(100, 80)}, player: common.V(200, 90), health: 100, visible: true},
		{name: "cone behind", stats: coned, body: component.Body{Position: common.V(200, 80), FacingLeft: false}, player: common.V(100, 80), health: 100},
		{name: "cone behind but close", stats: coned, body: component.Body{Position: common.V(200, 80)}, player: common.V(160, 80), health: 100, visible: true, melee: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Observe(tc.stats, tc.body, nil, component.PlayerObservation{Position: tc.player, Health: tc.health}, provider)
			assert.Equal(t, tc.visible, p.PlayerVisible)
			assert.Equal(t, tc.melee, p.InMeleeRange)
			assert.InDelta(t, tc.body.Position.Dist(tc.player), p.DistanceToPlayer, 1e-9)
		})
	}
}

func TestObserveThreatsOnlyForSmartEnemies(t *testing.T) {
	provider := spatial.NewGridProvider(gridFromRows(t, 32, walled...))
	body := component.Body{Position: common.V(200, 80)}
	obs := component.PlayerObservation{
		Position: common.V(250, 80),
		Health:   100,
		Projectiles: []component.Threat{
			{Kind: component.ThreatProjectile, Position: common.V(150, 80)},
			{Kind: component.ThreatProjectile, Position: common.V(400, 80)},
		},
		Grenades: []component.Threat{
			{Kind: component.ThreatGrenade, Position: common.V(260, 100)},
		},
	}

	plain := Observe(fierceStats, body, nil, obs, provider)
	assert.Empty(t, plain.Threats)

	smart := Observe(fierceStats, body, &component.Smart{ProjectileReaction: 100, GrenadeReaction: 150}, obs, provider)
	assert.Equal(t, []component.Threat{obs.Projectiles[0], obs.Grenades[0]}, smart.Threats, "threats behind the wall are not seen")
}

func TestPerceptionSystemTracksZoneAndMemory(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	ps := h.spawnPinkStar(t, common.V(464, 80), den)

	NewClockSystem(testDT).Update(h.world)
	sys := NewPerceptionSystem(h.provider)

	setObservation(h, component.PlayerObservation{Position: common.V(400, 80), Velocity: common.V(10, 0), Health: 100})
	sys.Update(h.world)

	p := mustPerception(t, h, ps)
	assert.True(t, p.PlayerInZone)
	assert.True(t, p.PlayerVisible)
	mem, _ := getMemory(h, ps)
	assert.True(t, mem.HasObservation)
	assert.Equal(t, common.V(400, 80), mem.LastKnownPosition)
	assert.Equal(t, common.V(10, 0), mem.LastKnownVelocity)
	assert.InDelta(t, testDT, mem.LastObservation, 1e-12)

	setObservation(h, component.PlayerObservation{Position: common.V(100, 80), Health: 100})
	sys.Update(h.world)
	assert.False(t, mustPerception(t, h, ps).PlayerInZone)

	setObservation(h, component.PlayerObservation{Position: common.V(400, 80)})
	sys.Update(h.world)
	assert.False(t, mustPerception(t, h, ps).PlayerInZone, "a dead player is never in the zone")
	mem, _ = getMemory(h, ps)
	assert.Equal(t, common.V(100, 80), mem.LastKnownPosition, "memory keeps the last sighting")
}
