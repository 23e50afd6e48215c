package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFindPathShortestAroundWall(t *testing.T) {
	g := gridFromRows(t, 16,
		".....",
		".###.",
		".....",
	)

	path, err := FindPath(g, Cell{X: 1, Y: 0}, Cell{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, 4.0, path.Cost)
	assert.Len(t, path.Cells, 5)
	assert.Equal(t, Cell{X: 1, Y: 0}, path.Cells[0])
	assert.Equal(t, Cell{X: 1, Y: 2}, path.Cells[len(path.Cells)-1])
	assertContiguous(t, g, path)

	wps := path.Waypoints(g)
	require.Len(t, wps, 4)
	assert.Equal(t, g.CellToWorld(Cell{X: 1, Y: 2}), wps[3])
}

func TestFindPathNoRoute(t *testing.T) {
	g := gridFromRows(t, 16,
		"..#..",
		"..#..",
		"..#..",
	)

	_, err := FindPath(g, Cell{X: 0, Y: 0}, Cell{X: 4, Y: 2})
	assert.ErrorIs(t, err, ErrNoPathFound)

	_, err = FindPath(g, Cell{X: 0, Y: 0}, Cell{X: 2, Y: 1})
	assert.ErrorIs(t, err, ErrNoPathFound, "blocked goal")

	_, err = FindPath(g, Cell{X: -1, Y: 0}, Cell{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrNoPathFound, "out of range start")
}

func TestFindPathSameCell(t *testing.T) {
	g := gridFromRows(t, 16, "...")
	path, err := FindPath(g, Cell{X: 1, Y: 0}, Cell{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, path.Cost)
	assert.Empty(t, path.Waypoints(g))
}

func TestFindPathTieBreakIsDeterministic(t *testing.T) {
	g := gridFromRows(t, 16,
		"...",
		"...",
		"...",
	)

	first, err := FindPath(g, Cell{X: 0, Y: 0}, Cell{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}}, first.Cells)

	for i := 0; i < 5; i++ {
		again, err := FindPath(g, Cell{X: 0, Y: 0}, Cell{X: 2, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, first.Cells, again.Cells)
	}
}

func TestFindPathMatchesBreadthFirstDistance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 9).Draw(rt, "w")
		h := rapid.IntRange(1, 9).Draw(rt, "h")
		solid := rapid.SliceOfN(rapid.Bool(), w*h, w*h).Draw(rt, "solid")
		g, err := BuildGrid(Geometry{Width: w, Height: h, CellSize: 8, Solid: solid})
		if err != nil {
			rt.Fatalf("build: %v", err)
		}
		start := Cell{X: rapid.IntRange(0, w-1).Draw(rt, "sx"), Y: rapid.IntRange(0, h-1).Draw(rt, "sy")}
		goal := Cell{X: rapid.IntRange(0, w-1).Draw(rt, "gx"), Y: rapid.IntRange(0, h-1).Draw(rt, "gy")}

		want, reachable := bfsDistance(g, start, goal)
		path, err := FindPath(g, start, goal)
		if !reachable {
			if err == nil {
				rt.Fatalf("expected no path from %s to %s, got %v", start, goal, path.Cells)
			}
			return
		}
		if err != nil {
			rt.Fatalf("expected path of cost %d: %v", want, err)
		}
		if path.Cost != float64(want) || len(path.Cells) != want+1 {
			rt.Fatalf("cost %v (%d cells), want %d", path.Cost, len(path.Cells), want)
		}
	})
}

func bfsDistance(g *Grid, start, goal Cell) (int, bool) {
	if !g.IsWalkable(start) || !g.IsWalkable(goal) {
		return 0, false
	}
	dist := map[Cell]int{start: 0}
	queue := []Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur], true
		}
		for _, nb := range g.neighbors(cur) {
			if _, seen := dist[nb]; seen || !g.IsWalkable(nb) {
				continue
			}
			dist[nb] = dist[cur] + 1
			queue = append(queue, nb)
		}
	}
	return 0, false
}

func assertContiguous(t *testing.T, g *Grid, path Path) {
	t.Helper()
	for i := 1; i < len(path.Cells); i++ {
		a, b := path.Cells[i-1], path.Cells[i]
		dx, dy := a.X-b.X, a.Y-b.Y
		assert.Equal(t, 1, dx*dx+dy*dy, "step %d", i)
		assert.True(t, g.IsWalkable(b))
	}
}
