package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/enemycore/common"
)

// gridFromRows builds a grid where '#' is solid and anything else is open.
func gridFromRows(t testing.TB, cellSize float64, rows ...string) *Grid {
	t.Helper()
	geo := Geometry{Width: len(rows[0]), Height: len(rows), CellSize: cellSize}
	for _, row := range rows {
		for _, ch := range row {
			geo.Solid = append(geo.Solid, ch == '#')
		}
	}
	g, err := BuildGrid(geo)
	require.NoError(t, err)
	return g
}

func TestBuildGridRejectsMalformedGeometry(t *testing.T) {
	cases := []struct {
		name string
		geo  Geometry
	}{
		{name: "zero width", geo: Geometry{Width: 0, Height: 2, CellSize: 16}},
		{name: "negative height", geo: Geometry{Width: 2, Height: -1, CellSize: 16}},
		{name: "zero cell size", geo: Geometry{Width: 1, Height: 1, CellSize: 0, Solid: []bool{false}}},
		{name: "short solid slice", geo: Geometry{Width: 2, Height: 2, CellSize: 16, Solid: []bool{false}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := BuildGrid(tc.geo)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrMalformedGeometry)
		})
	}
}

func TestGridCellMapping(t *testing.T) {
	g := gridFromRows(t, 32,
		"....",
		".#..",
		"....",
	)

	assert.Equal(t, common.Rect{Width: 128, Height: 96}, g.Bounds())
	assert.Equal(t, Cell{X: 1, Y: 1}, g.WorldToCell(common.V(40, 33)))
	assert.Equal(t, common.V(48, 48), g.CellToWorld(Cell{X: 1, Y: 1}))
	assert.False(t, g.IsWalkable(Cell{X: 1, Y: 1}))
	assert.True(t, g.IsWalkable(Cell{X: 0, Y: 0}))
	assert.False(t, g.IsWalkable(Cell{X: 4, Y: 0}))

	t.Run("world to cell clamps", func(t *testing.T) {
		assert.Equal(t, Cell{X: 0, Y: 0}, g.WorldToCell(common.V(-50, -1)))
		assert.Equal(t, Cell{X: 3, Y: 2}, g.WorldToCell(common.V(999, 999)))
	})

	t.Run("walkable at rejects outside", func(t *testing.T) {
		assert.False(t, g.WalkableAt(common.V(-1, 10)))
		assert.False(t, g.WalkableAt(common.V(48, 48)))
		assert.True(t, g.WalkableAt(common.V(100, 80)))
	})
}

func TestClampToNavigable(t *testing.T) {
	g := gridFromRows(t, 10,
		"......",
		"...#..",
		"......",
	)

	t.Run("open target unchanged", func(t *testing.T) {
		got := g.ClampToNavigable(common.V(5, 25), common.V(55, 25))
		assert.Equal(t, common.V(55, 25), got)
	})

	t.Run("stops before wall", func(t *testing.T) {
		got := g.ClampToNavigable(common.V(5, 15), common.V(55, 15))
		assert.Less(t, got.X, 30.0)
		assert.GreaterOrEqual(t, got.X, 27.5)
		assert.True(t, g.WalkableAt(got))
	})

	t.Run("clamps to level bounds", func(t *testing.T) {
		got := g.ClampToNavigable(common.V(5, 5), common.V(500, 5))
		assert.InDelta(t, 60, got.X, 1e-3)
		assert.True(t, g.WalkableAt(got))
	})
}
