package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/logging"
	"github.com/milk9111/enemycore/prefabs"
)

// PostReturnPolicy picks the state a PinkStar resumes once it is back home.
type PostReturnPolicy interface {
	Next(ctx *AIContext) component.StateID
}

// FixedPostReturn always resumes the same state.
type FixedPostReturn component.StateID

func (f FixedPostReturn) Next(*AIContext) component.StateID {
	return component.StateID(f)
}

// NewPostReturnPolicy builds the policy named by mode: "idle", "patrol" or
// "script".
func NewPostReturnPolicy(mode, script string, logger *zap.Logger) (PostReturnPolicy, error) {
	switch mode {
	case "", "patrol":
		return FixedPostReturn(component.StatePatrol), nil
	case "idle":
		return FixedPostReturn(component.StateIdle), nil
	case "script":
		return NewScriptPostReturn(script, logger)
	}
	return nil, fmt.Errorf("system: unknown post-return policy %q", mode)
}

// ScriptPostReturn asks a tengo script. The script sees home_x, home_y,
// zone_w, zone_h, patrol_radius and returns (trips home so far) and must set
// next to "idle" or "patrol".
type ScriptPostReturn struct {
	name     string
	compiled *tengo.Compiled
	returns  map[ecs.Entity]int
	logger   *zap.Logger
}

func NewScriptPostReturn(name string, logger *zap.Logger) (*ScriptPostReturn, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("system: post-return script name is empty")
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	for _, v := range []string{"home_x", "home_y", "zone_w", "zone_h", "patrol_radius"} {
		_ = script.Add(v, 0.0)
	}
	_ = script.Add("returns", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile %s: %w", name, err)
	}
	return &ScriptPostReturn{
		name:     name,
		compiled: compiled,
		returns:  map[ecs.Entity]int{},
		logger:   logging.OrNop(logger),
	}, nil
}

func (p *ScriptPostReturn) Next(ctx *AIContext) component.StateID {
	next, err := p.run(ctx)
	if err != nil {
		p.logger.Warn("post-return script failed, patrolling",
			zap.String("script", p.name),
			zap.Stringer("entity", ctx.Entity),
			zap.Error(err),
		)
		return component.StatePatrol
	}
	return next
}

func (p *ScriptPostReturn) run(ctx *AIContext) (component.StateID, error) {
	count := p.returns[ctx.Entity]
	p.returns[ctx.Entity] = count + 1

	vars := map[string]any{
		"home_x":        0.0,
		"home_y":        0.0,
		"zone_w":        ctx.Zone.Width,
		"zone_h":        ctx.Zone.Height,
		"patrol_radius": 0.0,
		"returns":       count,
	}
	if ctx.Guard != nil {
		vars["home_x"] = ctx.Guard.Home.X
		vars["home_y"] = ctx.Guard.Home.Y
		vars["patrol_radius"] = ctx.Guard.PatrolRadius
	}
	for k, v := range vars {
		if err := p.compiled.Set(k, v); err != nil {
			return "", err
		}
	}
	if err := p.compiled.Run(); err != nil {
		return "", err
	}
	if !p.compiled.IsDefined("next") {
		return "", fmt.Errorf("script did not define next")
	}
	switch next := component.StateID(strings.TrimSpace(p.compiled.Get("next").String())); next {
	case component.StateIdle, component.StatePatrol:
		return next, nil
	default:
		return "", fmt.Errorf("script chose unsupported state %q", next)
	}
}
