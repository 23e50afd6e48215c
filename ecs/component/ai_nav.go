package component

import "github.com/milk9111/enemycore/common"

// Memory is what an enemy remembers of the player. Losing sight of the player
// never clears it.
type Memory struct {
	HasObservation    bool
	LastKnownPosition common.Vec2
	LastKnownVelocity common.Vec2
	LastObservation   float64

	// Estimate is the predicted player position while vision is lost.
	Estimate    common.Vec2
	HasEstimate bool
}

// Age returns seconds since the last observation. ok is false when the
// player has never been seen.
func (m Memory) Age(now float64) (float64, bool) {
	if !m.HasObservation {
		return 0, false
	}
	return now - m.LastObservation, true
}

var MemoryComponent = NewComponent[Memory]()

// ThreatKind distinguishes player projectiles from grenades.
type ThreatKind int

const (
	ThreatProjectile ThreatKind = iota + 1
	ThreatGrenade
)

func (k ThreatKind) String() string {
	switch k {
	case ThreatProjectile:
		return "projectile"
	case ThreatGrenade:
		return "grenade"
	default:
		return "unknown"
	}
}

// Threat is a player-owned projectile or grenade.
type Threat struct {
	Kind     ThreatKind
	Position common.Vec2
	Velocity common.Vec2
}

// Perception is the per-tick observation result for one enemy.
type Perception struct {
	PlayerVisible    bool
	DistanceToPlayer float64
	InMeleeRange     bool
	PlayerInZone     bool
	Threats          []Threat
}

var PerceptionComponent = NewComponent[Perception]()
