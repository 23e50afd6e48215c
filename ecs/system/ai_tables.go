package system

import "github.com/milk9111/enemycore/ecs/component"

// Table is one archetype's transition table. Initial is also the safe state
// an inconsistent enemy is clamped to.
type Table struct {
	Initial     component.StateID
	Transitions map[component.StateID]map[component.EventID]component.StateID
}

// Next returns the state ev leads to from current, if any.
func (t Table) Next(current component.StateID, ev component.EventID) (component.StateID, bool) {
	transitions, ok := t.Transitions[current]
	if !ok {
		return "", false
	}
	next, ok := transitions[ev]
	if !ok || next == current {
		return "", false
	}
	return next, true
}

// Knows reports whether state belongs to the table.
func (t Table) Knows(state component.StateID) bool {
	_, ok := t.Transitions[state]
	return ok
}

func FierceToothTable() Table {
	return Table{
		Initial: component.StatePatrol,
		Transitions: map[component.StateID]map[component.EventID]component.StateID{
			component.StatePatrol: {
				component.EventSeesPlayer: component.StateChase,
			},
			component.StateChase: {
				component.EventInMeleeRange: component.StateAttackBite,
				component.EventSeesPlayer:   component.StateAttackShoot,
				component.EventLosesPlayer:  component.StatePatrol,
			},
			component.StateAttackShoot: {
				component.EventInMeleeRange: component.StateAttackBite,
				component.EventTracksPlayer: component.StateChase,
				component.EventLosesPlayer:  component.StatePatrol,
			},
			component.StateAttackBite: {
				component.EventBiteLanded:    component.StateRecover,
				component.EventOutMeleeRange: component.StateAttackShoot,
				component.EventTracksPlayer:  component.StateChase,
				component.EventLosesPlayer:   component.StatePatrol,
			},
			component.StateRecover: {
				component.EventTimerExpired: component.StateChase,
			},
		},
	}
}

func SeashellPearlTable() Table {
	return Table{
		Initial: component.StateIdle,
		Transitions: map[component.StateID]map[component.EventID]component.StateID{
			component.StateIdle: {
				component.EventInMeleeRange: component.StateAttackBite,
				component.EventSeesPlayer:   component.StateAttackShoot,
			},
			component.StateAttackShoot: {
				component.EventInMeleeRange: component.StateAttackBite,
				component.EventLosesPlayer:  component.StateIdle,
			},
			component.StateAttackBite: {
				component.EventOutMeleeRange: component.StateAttackShoot,
			},
		},
	}
}

// PinkStarTable maps reached_home to Patrol; the post-return policy may
// redirect it to Idle.
func PinkStarTable() Table {
	return Table{
		Initial: component.StatePatrol,
		Transitions: map[component.StateID]map[component.EventID]component.StateID{
			component.StateIdle: {
				component.EventEngage: component.StateChase,
			},
			component.StatePatrol: {
				component.EventEngage: component.StateChase,
			},
			component.StateChase: {
				component.EventPlayerOutsideZone: component.StateReturn,
				component.EventBiteLanded:        component.StateRecover,
			},
			component.StateRecover: {
				component.EventPlayerOutsideZone: component.StateReturn,
				component.EventTimerExpired:      component.StateChase,
			},
			component.StateReturn: {
				component.EventEngage:      component.StateChase,
				component.EventReachedHome: component.StatePatrol,
			},
		},
	}
}
