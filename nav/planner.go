package nav

import (
	"errors"

	"go.uber.org/zap"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
)

const DefaultReplanInterval = 1.0

// Planner rate-limits path searches. A cached plan is reused until it is
// invalidated, exhausted, or older than the replan interval.
type Planner struct {
	grid     *Grid
	interval float64
	logger   *zap.Logger
	searches int
}

func NewPlanner(grid *Grid, interval float64, logger *zap.Logger) *Planner {
	if interval <= 0 {
		interval = DefaultReplanInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{grid: grid, interval: interval, logger: logger}
}

func (p *Planner) Grid() *Grid { return p.grid }

func (p *Planner) Interval() float64 { return p.interval }

// Searches returns how many times FindPath has been invoked.
func (p *Planner) Searches() int { return p.searches }

// NeedsReplan reports whether plan must be recomputed at time now.
func (p *Planner) NeedsReplan(plan *component.PathPlan, now float64) bool {
	if plan == nil || !plan.Valid {
		return true
	}
	if now-plan.ComputedAt >= p.interval {
		return true
	}
	return plan.Exhausted()
}

// Plan refreshes plan toward target when required and reports whether a search
// ran. When no path exists the plan is marked Direct and still cached for the
// full interval.
func (p *Planner) Plan(plan *component.PathPlan, from, target common.Vec2, now float64) bool {
	if plan == nil || p.grid == nil || !p.NeedsReplan(plan, now) {
		return false
	}

	p.searches++
	start := p.grid.WorldToCell(from)
	goal := p.grid.WorldToCell(target)
	path, err := FindPath(p.grid, start, goal)

	*plan = component.PathPlan{
		TargetSnapshot: target,
		ComputedAt:     now,
		Valid:          true,
	}
	if err != nil {
		if errors.Is(err, ErrNoPathFound) {
			p.logger.Debug("path fallback to direct approach",
				zap.Stringer("start", start),
				zap.Stringer("goal", goal),
			)
		}
		plan.Direct = true
		return true
	}

	plan.Waypoints = path.Waypoints(p.grid)
	if len(plan.Waypoints) == 0 {
		plan.Direct = true
	}
	return true
}
