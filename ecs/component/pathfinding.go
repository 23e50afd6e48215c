package component

import "github.com/milk9111/enemycore/common"

// PathPlan is a cached waypoint sequence toward a target snapshot.
type PathPlan struct {
	Waypoints      []common.Vec2
	Next           int
	TargetSnapshot common.Vec2
	ComputedAt     float64
	Valid          bool
	// Direct is set when no path was found; the owner walks straight at the target.
	Direct bool
}

// Current returns the waypoint being steered toward.
func (p *PathPlan) Current() (common.Vec2, bool) {
	if p == nil || !p.Valid || p.Direct || p.Next >= len(p.Waypoints) {
		return common.Vec2{}, false
	}
	return p.Waypoints[p.Next], true
}

// Exhausted reports whether the final waypoint has been reached.
func (p *PathPlan) Exhausted() bool {
	return p != nil && p.Valid && !p.Direct && p.Next >= len(p.Waypoints)
}

// Advance moves to the next waypoint.
func (p *PathPlan) Advance() {
	if p == nil || p.Next >= len(p.Waypoints) {
		return
	}
	p.Next++
}

// Invalidate discards the plan so the next request recomputes it.
func (p *PathPlan) Invalidate() {
	if p == nil {
		return
	}
	*p = PathPlan{}
}

var PathPlanComponent = NewComponent[PathPlan]()
