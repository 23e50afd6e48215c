package component

import "github.com/milk9111/enemycore/common"

// PlayerObservation is the read-only snapshot of the player for one tick.
type PlayerObservation struct {
	Position    common.Vec2
	Velocity    common.Vec2
	IsSprinting bool
	IsJumping   bool
	Health      float64
	Projectiles []Threat
	Grenades    []Threat
}

// Alive reports whether the player can still be targeted.
func (o PlayerObservation) Alive() bool {
	return o.Health > 0
}

var PlayerObservationComponent = NewComponent[PlayerObservation]()

// PlayerStatus mirrors the status effects last sent to the player controller.
type PlayerStatus struct {
	SprintSuppressed bool
}

var PlayerStatusComponent = NewComponent[PlayerStatus]()

// StatusEffect is the message sent to the player controller when a status changes.
type StatusEffect struct {
	SprintSuppressed bool
	ZoneID           string
}
