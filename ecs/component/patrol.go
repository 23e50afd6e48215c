package component

import "github.com/milk9111/enemycore/common"

// Patrol bounds horizontal wandering. Dir is +1 or -1.
type Patrol struct {
	MinX float64
	MaxX float64
	Dir  float64
}

var PatrolComponent = NewComponent[Patrol]()

// Guard binds a PinkStar to its danger zone.
type Guard struct {
	ZoneID       string
	Home         common.Vec2
	PatrolRadius float64
}

var GuardComponent = NewComponent[Guard]()

// Zone is a danger zone guarded by at most one PinkStar.
type Zone struct {
	ID     string
	Bounds common.Rect
}

var ZoneComponent = NewComponent[Zone]()

// Smart enables threat evasion and prediction-based tracking.
type Smart struct {
	ProjectileReaction float64
	GrenadeReaction    float64
}

var SmartComponent = NewComponent[Smart]()
