package system

import (
	"math"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
)

const arriveTolerance = 4.0

// face turns the body toward x.
func face(body *component.Body, x float64) {
	dx := x - body.Position.X
	if math.Abs(dx) < 1e-6 {
		return
	}
	body.FacingLeft = dx < 0
}

// seekHorizontal walks along x toward target at speed without overshooting.
func seekHorizontal(ctx *AIContext, target common.Vec2, speed float64) {
	dx := target.X - ctx.Body.Position.X
	face(ctx.Body, target.X)
	if math.Abs(dx) <= arriveTolerance || speed <= 0 {
		return
	}
	step := speed
	if ctx.DT > 0 && math.Abs(dx)/ctx.DT < speed {
		step = math.Abs(dx) / ctx.DT
	}
	ctx.Intent.Move = common.Vec2{X: math.Copysign(step, dx)}
	ctx.Intent.Target = target
}

// seek moves straight toward target at speed without overshooting.
func seek(ctx *AIContext, target common.Vec2, speed float64) {
	delta := target.Sub(ctx.Body.Position)
	face(ctx.Body, target.X)
	dist := delta.Len()
	ctx.Intent.Target = target
	if dist <= 1e-9 || speed <= 0 {
		return
	}
	step := speed
	if ctx.DT > 0 && dist/ctx.DT < speed {
		step = dist / ctx.DT
	}
	ctx.Intent.Move = delta.Scale(step / dist)
}

// followPlan refreshes the enemy's path plan toward target and steers along
// it. Without a usable path it approaches the target directly.
func followPlan(ctx *AIContext, target common.Vec2, speed float64) {
	if ctx.Plan == nil || ctx.Planner == nil {
		seek(ctx, target, speed)
		return
	}
	pos := ctx.Body.Position
	ctx.Planner.Plan(ctx.Plan, pos, target, ctx.Now)

	for {
		wp, ok := ctx.Plan.Current()
		if !ok {
			break
		}
		if pos.Dist(wp) > arriveTolerance {
			seek(ctx, wp, speed)
			return
		}
		ctx.Plan.Advance()
	}
	seek(ctx, target, speed)
}

// patrol walks between the patrol bounds and turns around at either end or
// when the way ahead is blocked.
func patrol(ctx *AIContext, speed float64) {
	p := ctx.Patrol
	if p == nil || speed <= 0 {
		return
	}
	if p.Dir == 0 {
		p.Dir = 1
	}
	x := ctx.Body.Position.X
	switch {
	case x >= p.MaxX-arriveTolerance && p.Dir > 0:
		p.Dir = -1
	case x <= p.MinX+arriveTolerance && p.Dir < 0:
		p.Dir = 1
	}
	if ctx.Provider != nil {
		probe := ctx.Body.Position.Add(common.Vec2{X: p.Dir * (ctx.Stats.HalfWidth + 1)})
		if !ctx.Provider.IsWalkable(probe) {
			p.Dir = -p.Dir
		}
	}
	edge := p.MaxX
	if p.Dir < 0 {
		edge = p.MinX
	}
	seekHorizontal(ctx, common.Vec2{X: edge, Y: ctx.Body.Position.Y}, speed)
}
