package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/levels"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []common.Vec2
		wantErr bool
	}{
		{name: "empty", in: "  "},
		{name: "single", in: "80,432", want: []common.Vec2{{X: 80, Y: 432}}},
		{name: "loop", in: "80, 432; 1000,432 ;80,432", want: []common.Vec2{{X: 80, Y: 432}, {X: 1000, Y: 432}, {X: 80, Y: 432}}},
		{name: "missing comma", in: "80 432", wantErr: true},
		{name: "not a number", in: "80,abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePath(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScriptedPlayerLoopsWaypoints(t *testing.T) {
	cfg := config.Default().Player
	p := newScriptedPlayer([]common.Vec2{{X: 0, Y: 0}, {X: 30, Y: 0}})

	for i := 0; i < 10; i++ {
		p.step(cfg, false, 0.1)
	}
	// 180 px/s reaches the far point in two steps and comes back.
	assert.LessOrEqual(t, p.position.X, 30.0)
	assert.GreaterOrEqual(t, p.position.X, 0.0)
	assert.Equal(t, 0.0, p.position.Y)

	p.SetSprintSuppressed(true)
	p.step(cfg, true, 0.1)
	assert.False(t, p.sprinting)
}

func TestScriptedPlayerStopsWhenDead(t *testing.T) {
	p := newScriptedPlayer([]common.Vec2{{X: 0, Y: 0}, {X: 300, Y: 0}})
	p.ApplyDamage(60)
	p.ApplyDamage(60)
	p.ApplyDamage(60)
	assert.Equal(t, 0.0, p.health)
	assert.Equal(t, 120.0, p.damageTaken)
	assert.Equal(t, 2, p.hitsTaken)

	p.step(config.Default().Player, false, 0.1)
	assert.Equal(t, common.Vec2{}, p.position)
}

func TestRunStandingAtSpawn(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("cove.json")
	require.NoError(t, err)

	rep, err := run(config.Default(), lvl, runOptions{Ticks: 120}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, uint64(120), rep.Ticks)
	assert.InDelta(t, 2.0, rep.Seconds, 1e-9)
	assert.Equal(t, "cove", rep.Level)
	assert.Len(t, rep.Survivors, 4)
	assert.Empty(t, rep.Deaths)
}

func TestRunIsDeterministic(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("cove.json")
	require.NoError(t, err)
	opts := runOptions{
		Ticks:       600,
		Path:        []common.Vec2{{X: 80, Y: 432}, {X: 1100, Y: 432}},
		HitInterval: 0.5,
		HitDamage:   25,
		HitRange:    48,
	}

	a, err := run(config.Default(), lvl, opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	b, err := run(config.Default(), lvl, opts, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Transitions)
}
