package component

// Combat holds per-enemy attack timers in seconds. Timers count down to zero
// and are only ever reset to their archetype's fixed duration.
type Combat struct {
	RecoveryTimer float64
	ShootTimer    float64
	Bites         int
	Shots         int

	// HitStunTimer runs after the enemy takes a hit. Further hits are ignored
	// and no attack resolves until it reaches zero.
	HitStunTimer float64
}

// Stunned reports whether the enemy is still reeling from a hit.
func (c Combat) Stunned() bool {
	return c.HitStunTimer > 0
}

// Ready reports whether the recovery window has elapsed.
func (c Combat) Ready() bool {
	return c.RecoveryTimer <= 0
}

var CombatComponent = NewComponent[Combat]()

// AttackKind is the attack an intent requests.
type AttackKind int

const (
	AttackNone AttackKind = iota
	AttackBite
	AttackShoot
)

func (k AttackKind) String() string {
	switch k {
	case AttackBite:
		return "bite"
	case AttackShoot:
		return "shoot"
	default:
		return "none"
	}
}
