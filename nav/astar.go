package nav

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/milk9111/enemycore/common"
)

// Path is a sequence of cells from start to goal inclusive.
type Path struct {
	Cells []Cell
	Cost  float64
}

// Waypoints converts the path to world-space cell centres, omitting the start
// cell the walker already occupies.
func (p Path) Waypoints(g *Grid) []common.Vec2 {
	if len(p.Cells) <= 1 {
		return nil
	}
	out := make([]common.Vec2, 0, len(p.Cells)-1)
	for _, c := range p.Cells[1:] {
		out = append(out, g.CellToWorld(c))
	}
	return out
}

// FindPath runs A* over the 4-neighbour grid with unit step cost and a
// straight-line heuristic. Frontier cells with equal priority are expanded in
// discovery order.
func FindPath(g *Grid, start, goal Cell) (Path, error) {
	if g == nil {
		return Path{}, ErrNoPathFound
	}
	if !g.IsWalkable(start) || !g.IsWalkable(goal) {
		return Path{}, fmt.Errorf("%w: %s -> %s blocked endpoint", ErrNoPathFound, start, goal)
	}
	if start == goal {
		return Path{Cells: []Cell{start}}, nil
	}

	n := g.width * g.height
	cameFrom := make([]int, n)
	gScore := make([]float64, n)
	closed := make([]bool, n)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}

	startIdx := g.index(start)
	goalIdx := g.index(goal)
	gScore[startIdx] = 0

	open := &openSet{}
	var seq uint64
	heap.Push(open, &openItem{cell: start, f: heuristic(start, goal), seq: seq})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		curIdx := g.index(current.cell)
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			cells := reconstructPath(g, cameFrom, startIdx, goalIdx)
			return Path{Cells: cells, Cost: gScore[goalIdx]}, nil
		}

		for _, nb := range g.neighbors(current.cell) {
			idx := g.index(nb)
			if closed[idx] || !g.walkable[idx] {
				continue
			}
			tentative := gScore[curIdx] + 1
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				seq++
				heap.Push(open, &openItem{cell: nb, f: tentative + heuristic(nb, goal), seq: seq})
			}
		}
	}

	return Path{}, fmt.Errorf("%w: %s -> %s unreachable", ErrNoPathFound, start, goal)
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}

func (g *Grid) neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	if c.X > 0 {
		out = append(out, Cell{X: c.X - 1, Y: c.Y})
	}
	if c.X < g.width-1 {
		out = append(out, Cell{X: c.X + 1, Y: c.Y})
	}
	if c.Y > 0 {
		out = append(out, Cell{X: c.X, Y: c.Y - 1})
	}
	if c.Y < g.height-1 {
		out = append(out, Cell{X: c.X, Y: c.Y + 1})
	}
	return out
}

func reconstructPath(g *Grid, cameFrom []int, startIdx, goalIdx int) []Cell {
	path := make([]Cell, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, Cell{X: cur % g.width, Y: cur / g.width})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func heuristic(a, b Cell) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

type openItem struct {
	cell  Cell
	f     float64
	seq   uint64
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
