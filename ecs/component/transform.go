package component

import "github.com/milk9111/enemycore/common"

// Body is an enemy's kinematic state. Position is the centre of its box.
type Body struct {
	Position   common.Vec2
	Velocity   common.Vec2
	FacingLeft bool
}

// Facing returns the unit x direction the body looks toward.
func (b Body) Facing() float64 {
	if b.FacingLeft {
		return -1
	}
	return 1
}

var BodyComponent = NewComponent[Body]()
