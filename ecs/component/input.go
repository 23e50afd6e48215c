package component

import "github.com/milk9111/enemycore/common"

// Intent is what the behaviour layer asks for this tick. Move is a velocity
// in pixels per second.
type Intent struct {
	Move    common.Vec2
	Attack  AttackKind
	Evading bool
	Target  common.Vec2
}

var IntentComponent = NewComponent[Intent]()
