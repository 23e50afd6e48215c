package main

import (
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/encounter"
	"github.com/milk9111/enemycore/spatial"
)

const (
	shotSpeed    = 600.0
	shotDamage   = 20.0
	shotLifetime = 1.5
	fireCooldown = 0.25

	grenadeThrowX   = 320.0
	grenadeThrowY   = -380.0
	grenadeGravity  = 900.0
	grenadeFuse     = 1.2
	grenadeRadius   = 72.0
	grenadeDamage   = 60.0
	explosionFrames = 12
)

type shot struct {
	origin   common.Vec2
	position common.Vec2
	velocity common.Vec2
	ttl      float64
}

type grenade struct {
	position common.Vec2
	velocity common.Vec2
	fuse     float64
}

type explosion struct {
	position common.Vec2
	frames   int
}

// Arsenal owns the player's live shots and grenades. They damage enemies
// through the encounter and are reported to it as threats every tick.
type Arsenal struct {
	shots      []shot
	grenades   []grenade
	explosions []explosion
	cooldown   float64

	provider spatial.Provider
	logger   *zap.Logger
}

func NewArsenal(provider spatial.Provider, logger *zap.Logger) *Arsenal {
	return &Arsenal{provider: provider, logger: logger}
}

func direction(facingLeft bool) float64 {
	if facingLeft {
		return -1
	}
	return 1
}

// Fire launches a shot from pos unless the weapon is cooling down.
func (a *Arsenal) Fire(pos common.Vec2, facingLeft bool) {
	if a.cooldown > 0 {
		return
	}
	a.cooldown = fireCooldown
	a.shots = append(a.shots, shot{
		origin:   pos,
		position: pos,
		velocity: common.Vec2{X: shotSpeed * direction(facingLeft)},
		ttl:      shotLifetime,
	})
}

func (a *Arsenal) Throw(pos common.Vec2, facingLeft bool) {
	a.grenades = append(a.grenades, grenade{
		position: pos,
		velocity: common.Vec2{X: grenadeThrowX * direction(facingLeft), Y: grenadeThrowY},
		fuse:     grenadeFuse,
	})
}

// Update moves every shot and grenade and applies hits to the encounter.
func (a *Arsenal) Update(dt float64, enc *encounter.Encounter) {
	a.cooldown = max(a.cooldown-dt, 0)
	enemies := enc.Enemies()

	live := a.shots[:0]
	for _, s := range a.shots {
		s.ttl -= dt
		s.position = s.position.Add(s.velocity.Scale(dt))
		if s.ttl <= 0 || !a.provider.IsWalkable(s.position) {
			continue
		}
		if v, ok := hitEnemy(enemies, s.position); ok {
			enc.DamageEnemy(v.Entity, shotDamage, s.origin)
			continue
		}
		live = append(live, s)
	}
	a.shots = live

	armed := a.grenades[:0]
	for _, g := range a.grenades {
		g.fuse -= dt
		if g.fuse <= 0 {
			a.explode(g.position, enemies, enc)
			continue
		}
		g.velocity.Y += grenadeGravity * dt
		next := g.position.Add(g.velocity.Scale(dt))
		if a.provider.IsWalkable(next) {
			g.position = next
		} else {
			g.velocity = common.Vec2{}
		}
		armed = append(armed, g)
	}
	a.grenades = armed

	fading := a.explosions[:0]
	for _, e := range a.explosions {
		e.frames--
		if e.frames > 0 {
			fading = append(fading, e)
		}
	}
	a.explosions = fading
}

func (a *Arsenal) explode(at common.Vec2, enemies []encounter.EnemyView, enc *encounter.Encounter) {
	a.explosions = append(a.explosions, explosion{position: at, frames: explosionFrames})
	hits := 0
	for _, v := range enemies {
		if a.provider.Distance(at, v.Position) > grenadeRadius || !a.provider.HasLineOfSight(at, v.Position) {
			continue
		}
		if enc.DamageEnemy(v.Entity, grenadeDamage, at) {
			hits++
		}
	}
	a.logger.Debug("grenade exploded", zap.Float64("x", at.X), zap.Float64("y", at.Y), zap.Int("hits", hits))
}

func hitEnemy(enemies []encounter.EnemyView, p common.Vec2) (encounter.EnemyView, bool) {
	for _, v := range enemies {
		r := common.Rect{
			X:      v.Position.X - v.HalfWidth,
			Y:      v.Position.Y - v.HalfHeight,
			Width:  2 * v.HalfWidth,
			Height: 2 * v.HalfHeight,
		}
		if r.Contains(p) {
			return v, true
		}
	}
	return encounter.EnemyView{}, false
}

// Threats reports live shots and grenades in the shape perception expects.
func (a *Arsenal) Threats() (projectiles, grenades []component.Threat) {
	for _, s := range a.shots {
		projectiles = append(projectiles, component.Threat{
			Kind:     component.ThreatProjectile,
			Position: s.position,
			Velocity: s.velocity,
		})
	}
	for _, g := range a.grenades {
		grenades = append(grenades, component.Threat{
			Kind:     component.ThreatGrenade,
			Position: g.position,
			Velocity: g.velocity,
		})
	}
	return projectiles, grenades
}

func (a *Arsenal) Reset() {
	a.shots = nil
	a.grenades = nil
	a.explosions = nil
	a.cooldown = 0
}
