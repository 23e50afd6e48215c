// Package spatial answers the geometric questions the AI asks about a level:
// line of sight, walkability and distance.
package spatial

import "github.com/milk9111/enemycore/common"

// Provider is the spatial query surface consumed by perception, prediction and
// movement.
type Provider interface {
	HasLineOfSight(a, b common.Vec2) bool
	IsWalkable(p common.Vec2) bool
	Distance(a, b common.Vec2) float64
}
