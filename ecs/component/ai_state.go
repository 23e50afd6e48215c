package component

// StateID identifies an AI FSM state.
type StateID string

// EventID identifies an AI FSM event.
type EventID string

const (
	StateIdle        StateID = "idle"
	StatePatrol      StateID = "patrol"
	StateChase       StateID = "chase"
	StateAttackShoot StateID = "attack_shoot"
	StateAttackBite  StateID = "attack_bite"
	StateRecover     StateID = "recover"
	StateReturn      StateID = "return"
)

const (
	EventSeesPlayer        EventID = "sees_player"
	EventLosesPlayer       EventID = "loses_player"
	EventTracksPlayer      EventID = "tracks_player"
	EventInMeleeRange      EventID = "in_melee_range"
	EventOutMeleeRange     EventID = "out_melee_range"
	EventPlayerInZone      EventID = "player_in_zone"
	EventPlayerOutsideZone EventID = "player_outside_zone"
	EventEngage            EventID = "engage"
	EventTimerExpired      EventID = "timer_expired"
	EventBiteLanded        EventID = "bite_landed"
	EventReachedHome       EventID = "reached_home"
)

// AIState stores the current FSM state.
type AIState struct {
	Current   StateID
	Previous  StateID
	EnteredAt float64
}

// IsAttacking reports whether the state may carry an attack request.
func (s AIState) IsAttacking() bool {
	return s.Current == StateAttackBite || s.Current == StateAttackShoot
}

var AIStateComponent = NewComponent[AIState]()
