package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
)

func openRows(w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	return rows
}

func TestPredictExtrapolatesInOpenSpace(t *testing.T) {
	grid := gridFromRows(t, 10, openRows(100, 100)...)

	rapid.Check(t, func(t *rapid.T) {
		m := component.Memory{
			HasObservation:    true,
			LastKnownPosition: common.V(rapid.Float64Range(350, 650).Draw(t, "px"), rapid.Float64Range(350, 650).Draw(t, "py")),
			LastKnownVelocity: common.V(rapid.Float64Range(-100, 100).Draw(t, "vx"), rapid.Float64Range(-100, 100).Draw(t, "vy")),
			LastObservation:   rapid.Float64Range(0, 10).Draw(t, "seen"),
		}
		elapsed := rapid.Float64Range(0, DefaultPredictionWindow).Draw(t, "elapsed")
		now := m.LastObservation + elapsed

		want := m.LastKnownPosition.Add(m.LastKnownVelocity.Scale(now - m.LastObservation))
		got := Predict(m, now, grid)
		if got.Dist(want) > 1e-9 {
			t.Fatalf("Predict = %v, want %v", got, want)
		}
	})
}

func TestPredictStaysNavigable(t *testing.T) {
	grid := gridFromRows(t, 32,
		"##########",
		"#........#",
		"#...##...#",
		"#...##...#",
		"#........#",
		"##########",
	)

	rapid.Check(t, func(t *rapid.T) {
		start := common.V(rapid.Float64Range(32, 288).Draw(t, "px"), rapid.Float64Range(32, 160).Draw(t, "py"))
		if !grid.WalkableAt(start) {
			t.Skip("start inside a wall")
		}
		m := component.Memory{
			HasObservation:    true,
			LastKnownPosition: start,
			LastKnownVelocity: common.V(rapid.Float64Range(-400, 400).Draw(t, "vx"), rapid.Float64Range(-400, 400).Draw(t, "vy")),
		}
		got := Predict(m, rapid.Float64Range(0, 3).Draw(t, "now"), grid)
		if !grid.WalkableAt(got) {
			t.Fatalf("prediction %v is not walkable", got)
		}
	})
}

func TestPredictionSystemWindow(t *testing.T) {
	h := newHarness(t, nil, corridor...)
	ft := h.spawnFierceTooth(t, common.V(200, 80), true)
	plain := h.spawnFierceTooth(t, common.V(300, 80), false)

	seen := component.Memory{
		HasObservation:    true,
		LastKnownPosition: common.V(100, 80),
		LastKnownVelocity: common.V(30, 0),
	}
	*mustMemory(t, h, ft) = seen
	*mustMemory(t, h, plain) = seen

	clock := NewClockSystem(0.5)
	sys := NewPredictionSystem(h.grid, 1)

	clock.Update(h.world)
	sys.Update(h.world)
	mem, _ := getMemory(h, ft)
	require.True(t, mem.HasEstimate)
	assert.InDelta(t, 115, mem.Estimate.X, 1e-9)
	mem, _ = getMemory(h, plain)
	assert.False(t, mem.HasEstimate, "only smart enemies predict")

	clock.Update(h.world)
	sys.Update(h.world)
	mem, _ = getMemory(h, ft)
	require.True(t, mem.HasEstimate)
	assert.InDelta(t, 130, mem.Estimate.X, 1e-9)

	clock.Update(h.world)
	sys.Update(h.world)
	mem, _ = getMemory(h, ft)
	assert.False(t, mem.HasEstimate, "estimate dropped after the window")
}
