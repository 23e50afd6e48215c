package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/encounter"
	"github.com/milk9111/enemycore/levels"
)

// runOptions describes one headless run.
type runOptions struct {
	Ticks       int
	Path        []common.Vec2
	Sprint      bool
	HitInterval float64
	HitDamage   float64
	HitRange    float64
}

// scriptedPlayer walks a waypoint loop and takes whatever the enemies deal.
type scriptedPlayer struct {
	position   common.Vec2
	velocity   common.Vec2
	health     float64
	suppressed bool
	sprinting  bool

	path []common.Vec2
	next int

	damageTaken float64
	hitsTaken   int
}

func newScriptedPlayer(path []common.Vec2) *scriptedPlayer {
	p := &scriptedPlayer{health: 100, path: path}
	if len(path) > 0 {
		p.position = path[0]
		p.next = 1 % len(path)
	}
	return p
}

func (p *scriptedPlayer) ApplyDamage(amount float64) {
	if p.health <= 0 {
		return
	}
	p.health = max(p.health-amount, 0)
	p.damageTaken += amount
	p.hitsTaken++
}

func (p *scriptedPlayer) SetSprintSuppressed(suppressed bool) { p.suppressed = suppressed }

func (p *scriptedPlayer) step(cfg config.PlayerConfig, sprint bool, dt float64) {
	p.velocity = common.Vec2{}
	p.sprinting = false
	if p.health <= 0 || len(p.path) < 2 {
		return
	}
	speed := cfg.BaseSpeed
	if sprint && !p.suppressed {
		speed = cfg.SprintSpeed
		p.sprinting = true
	}
	target := p.path[p.next]
	d := target.Sub(p.position)
	reach := speed * dt
	if d.Len() <= reach {
		p.position = target
		p.next = (p.next + 1) % len(p.path)
		p.velocity = d.Scale(1 / dt)
		return
	}
	p.velocity = d.Norm().Scale(speed)
	p.position = p.position.Add(p.velocity.Scale(dt))
}

func (p *scriptedPlayer) observation() component.PlayerObservation {
	return component.PlayerObservation{
		Position:    p.position,
		Velocity:    p.velocity,
		IsSprinting: p.sprinting,
		Health:      p.health,
	}
}

type survivor struct {
	Archetype string  `yaml:"archetype"`
	State     string  `yaml:"state"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Health    float64 `yaml:"health"`
}

type report struct {
	RunID        string         `yaml:"run_id"`
	Level        string         `yaml:"level"`
	Ticks        uint64         `yaml:"ticks"`
	Seconds      float64        `yaml:"seconds"`
	PlayerHealth float64        `yaml:"player_health"`
	DamageTaken  float64        `yaml:"damage_taken"`
	HitsTaken    int            `yaml:"hits_taken"`
	Suppressions int            `yaml:"sprint_suppressions"`
	PathSearches int            `yaml:"path_searches"`
	Transitions  map[string]int `yaml:"transitions"`
	Deaths       []string       `yaml:"deaths,omitempty"`
	Survivors    []survivor     `yaml:"survivors"`
}

// run drives an encounter on lvl for opts.Ticks fixed steps.
func run(cfg config.Config, lvl *levels.Level, opts runOptions, logger *zap.Logger) (report, error) {
	if len(opts.Path) == 0 {
		opts.Path = []common.Vec2{lvl.PlayerSpawn.Vec()}
	}
	player := newScriptedPlayer(opts.Path)
	enc, err := encounter.New(encounter.Options{
		Level:      lvl,
		Config:     cfg,
		Controller: player,
		Logger:     logger,
	})
	if err != nil {
		return report{}, err
	}

	rep := report{
		Level:       lvl.Name,
		Transitions: map[string]int{},
	}
	dt := cfg.Simulation.DT()
	sinceHit := 0.0
	for i := 0; i < opts.Ticks; i++ {
		player.step(cfg.Player, opts.Sprint, dt)

		sinceHit += dt
		if opts.HitInterval > 0 && sinceHit >= opts.HitInterval && player.health > 0 {
			sinceHit = 0
			for _, v := range enc.Enemies() {
				if v.Position.Dist(player.position) <= opts.HitRange {
					enc.DamageEnemy(v.Entity, opts.HitDamage, player.position)
				}
			}
		}

		res := enc.Tick(player.observation())
		rep.Ticks = res.Tick
		for _, t := range res.Transitions {
			key := fmt.Sprintf("%s: %s->%s", t.Archetype, t.From, t.To)
			rep.Transitions[key]++
			logger.Debug("transition",
				zap.Uint64("tick", res.Tick),
				zap.Stringer("entity", t.Entity),
				zap.String("key", key),
				zap.String("event", string(t.Event)),
			)
		}
		for _, d := range res.Damage {
			logger.Info("player damaged",
				zap.Uint64("tick", res.Tick),
				zap.Stringer("archetype", d.Archetype),
				zap.Stringer("kind", d.Kind),
				zap.Float64("amount", d.Amount),
				zap.Float64("health", player.health),
			)
		}
		for _, s := range res.StatusEffects {
			if s.SprintSuppressed {
				rep.Suppressions++
			}
		}
		for _, d := range res.Deaths {
			rep.Deaths = append(rep.Deaths, fmt.Sprintf("%s@%.2fs", d.Archetype, enc.Now()))
		}
	}

	rep.Seconds = enc.Now()
	rep.PlayerHealth = player.health
	rep.DamageTaken = player.damageTaken
	rep.HitsTaken = player.hitsTaken
	rep.PathSearches = enc.Planner().Searches()
	for _, v := range enc.Enemies() {
		rep.Survivors = append(rep.Survivors, survivor{
			Archetype: v.Archetype.String(),
			State:     string(v.State),
			X:         v.Position.X,
			Y:         v.Position.Y,
			Health:    v.Health,
		})
	}
	return rep, nil
}

// parsePath reads "x,y;x,y;..." into waypoints.
func parsePath(s string) ([]common.Vec2, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []common.Vec2
	for i, pair := range strings.Split(s, ";") {
		xs, ys, ok := strings.Cut(strings.TrimSpace(pair), ",")
		if !ok {
			return nil, fmt.Errorf("waypoint %d: want x,y, got %q", i, pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		out = append(out, common.Vec2{X: x, Y: y})
	}
	return out, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
