package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/enemycore/ecs/component"
)

var (
	fierceTooth = component.Stats{
		Archetype: component.FierceTooth, VisionRange: 320, MeleeRange: 50,
		BiteDamage: 30, ShootDamage: 10, ShootCooldown: 1, RecoveryDuration: 2,
	}
	seashell = component.Stats{
		Archetype: component.SeashellPearl, VisionRange: 400, MeleeRange: 40,
		BiteDamage: 40, ShootDamage: 15, ShootCooldown: 0.5,
	}
	pinkStar = component.Stats{
		Archetype: component.PinkStar, MeleeRange: 40, BiteDamage: 90, RecoveryDuration: 5.8,
	}
)

func TestResolverValidation(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want bool
	}{
		{
			name: "fierce tooth bite in range",
			req:  Request{Stats: fierceTooth, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 40, PlayerAlive: true},
			want: true,
		},
		{
			name: "bite out of range",
			req:  Request{Stats: fierceTooth, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 60, PlayerAlive: true},
		},
		{
			name: "bite while recovering",
			req: Request{Stats: fierceTooth, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 10,
				Combat: component.Combat{RecoveryTimer: 0.5}, PlayerAlive: true},
		},
		{
			name: "bite from wrong state",
			req:  Request{Stats: fierceTooth, State: component.StateChase, Kind: component.AttackBite, Distance: 10, PlayerAlive: true},
		},
		{
			name: "shoot needs line of sight",
			req:  Request{Stats: fierceTooth, State: component.StateAttackShoot, Kind: component.AttackShoot, Distance: 200, PlayerAlive: true},
		},
		{
			name: "shoot on cooldown",
			req: Request{Stats: fierceTooth, State: component.StateAttackShoot, Kind: component.AttackShoot, Distance: 200,
				LineOfSight: true, Combat: component.Combat{ShootTimer: 0.2}, PlayerAlive: true},
		},
		{
			name: "shoot ready",
			req: Request{Stats: fierceTooth, State: component.StateAttackShoot, Kind: component.AttackShoot, Distance: 200,
				LineOfSight: true, PlayerAlive: true},
			want: true,
		},
		{
			name: "seashell bite ignores recovery timer",
			req: Request{Stats: seashell, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 20,
				Combat: component.Combat{RecoveryTimer: 3}, PlayerAlive: true},
			want: true,
		},
		{
			name: "pink star bites from chase",
			req:  Request{Stats: pinkStar, State: component.StateChase, Kind: component.AttackBite, Distance: 30, PlayerAlive: true},
			want: true,
		},
		{
			name: "pink star never shoots",
			req:  Request{Stats: pinkStar, State: component.StateAttackShoot, Kind: component.AttackShoot, LineOfSight: true, PlayerAlive: true},
		},
		{
			name: "stunned enemy cannot bite",
			req: Request{Stats: seashell, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 20,
				Combat: component.Combat{HitStunTimer: 1}, PlayerAlive: true},
		},
		{
			name: "dead player",
			req:  Request{Stats: fierceTooth, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 10},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Valid(tc.req))
		})
	}
}

func TestResolverEmitsAndCounts(t *testing.T) {
	r := NewResolver()
	var got []DamageEvent
	r.Emitter.Subscribe(func(evt DamageEvent) { got = append(got, evt) })

	evt, ok := r.Resolve(Request{Stats: fierceTooth, State: component.StateAttackBite, Kind: component.AttackBite, Distance: 10, PlayerAlive: true, Tick: 7})
	require.True(t, ok)
	assert.Equal(t, 30.0, evt.Amount)
	assert.Equal(t, component.AttackBite, evt.Kind)
	assert.Equal(t, uint64(7), evt.Tick)

	_, ok = r.Resolve(Request{Stats: fierceTooth, State: component.StateIdle, Kind: component.AttackBite, PlayerAlive: true})
	assert.False(t, ok)

	assert.Equal(t, 1, r.Resolved)
	assert.Equal(t, 1, r.Rejected)
	assert.Len(t, got, 1)
}

func TestBiteOutdamagesShoot(t *testing.T) {
	for _, s := range []component.Stats{fierceTooth, seashell} {
		assert.Greater(t, Damage(s, component.AttackBite), Damage(s, component.AttackShoot), s.Archetype.String())
	}
	assert.Zero(t, Damage(fierceTooth, component.AttackNone))
}
