package main

import (
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/nav"
)

const (
	playerHalfWidth  = 10
	playerHalfHeight = 14
	playerMaxHealth  = 100

	gravity      = 1800.0 // px/s^2
	jumpSpeed    = -620.0
	maxFallSpeed = 900.0

	hurtFlashFrames = 10
)

// Player is the sandbox's keyboard-driven stand-in for the real player. It is
// the encounter's player controller: enemies damage it and zones suppress its
// sprint through ApplyDamage and SetSprintSuppressed.
type Player struct {
	Position   common.Vec2
	Velocity   common.Vec2
	Health     float64
	FacingLeft bool

	sprinting        bool
	grounded         bool
	sprintSuppressed bool
	hurtFlash        int

	cfg    config.PlayerConfig
	grid   *nav.Grid
	logger *zap.Logger
}

func NewPlayer(spawn common.Vec2, cfg config.PlayerConfig, grid *nav.Grid, logger *zap.Logger) *Player {
	return &Player{
		Position: spawn,
		Health:   playerMaxHealth,
		cfg:      cfg,
		grid:     grid,
		logger:   logger,
	}
}

func (p *Player) Alive() bool { return p.Health > 0 }

func (p *Player) SprintSuppressed() bool { return p.sprintSuppressed }

// Update applies input, gravity and tile collision for one fixed step.
func (p *Player) Update(in *Input, dt float64) {
	if p.hurtFlash > 0 {
		p.hurtFlash--
	}
	if !p.Alive() {
		p.Velocity = common.Vec2{}
		p.sprinting = false
		return
	}

	speed := p.cfg.BaseSpeed
	p.sprinting = in.SprintHeld && in.MoveX != 0 && !p.sprintSuppressed
	if p.sprinting {
		speed = p.cfg.SprintSpeed
	}
	p.Velocity.X = in.MoveX * speed
	if in.MoveX != 0 {
		p.FacingLeft = in.MoveX < 0
	}

	if in.JumpPressed && p.grounded {
		p.Velocity.Y = jumpSpeed
		p.grounded = false
	}
	p.Velocity.Y = min(p.Velocity.Y+gravity*dt, maxFallSpeed)

	next := common.Vec2{X: p.Position.X + p.Velocity.X*dt, Y: p.Position.Y}
	if p.fits(next) {
		p.Position = next
	} else {
		p.Velocity.X = 0
	}

	next = common.Vec2{X: p.Position.X, Y: p.Position.Y + p.Velocity.Y*dt}
	if p.fits(next) {
		p.Position = next
		p.grounded = false
	} else {
		if p.Velocity.Y > 0 {
			p.grounded = true
		}
		p.Velocity.Y = 0
	}
}

// fits reports whether the player's box corners are all in open cells.
func (p *Player) fits(center common.Vec2) bool {
	for _, d := range [...]common.Vec2{
		{X: -playerHalfWidth, Y: -playerHalfHeight},
		{X: playerHalfWidth - 1, Y: -playerHalfHeight},
		{X: -playerHalfWidth, Y: playerHalfHeight - 1},
		{X: playerHalfWidth - 1, Y: playerHalfHeight - 1},
	} {
		if !p.grid.WalkableAt(center.Add(d)) {
			return false
		}
	}
	return true
}

// Observation is what the enemies get to see of the player this tick.
func (p *Player) Observation(threats *Arsenal) component.PlayerObservation {
	obs := component.PlayerObservation{
		Position:    p.Position,
		Velocity:    p.Velocity,
		IsSprinting: p.sprinting,
		IsJumping:   !p.grounded,
		Health:      p.Health,
	}
	if threats != nil {
		obs.Projectiles, obs.Grenades = threats.Threats()
	}
	return obs
}

func (p *Player) ApplyDamage(amount float64) {
	if !p.Alive() {
		return
	}
	p.Health = max(p.Health-amount, 0)
	p.hurtFlash = hurtFlashFrames
	p.logger.Info("player hit", zap.Float64("amount", amount), zap.Float64("health", p.Health))
	if !p.Alive() {
		p.logger.Info("player died")
	}
}

func (p *Player) SetSprintSuppressed(suppressed bool) {
	if p.sprintSuppressed == suppressed {
		return
	}
	p.sprintSuppressed = suppressed
	p.logger.Debug("sprint suppression changed", zap.Bool("suppressed", suppressed))
}

func (p *Player) Bounds() common.Rect {
	return common.Rect{
		X:      p.Position.X - playerHalfWidth,
		Y:      p.Position.Y - playerHalfHeight,
		Width:  2 * playerHalfWidth,
		Height: 2 * playerHalfHeight,
	}
}
