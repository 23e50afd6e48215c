package component

// Stats is the archetype tuning copied onto each enemy at spawn. Durations
// are in seconds, speeds in pixels per second, ranges in pixels.
type Stats struct {
	Archetype        Archetype
	MaxHealth        float64
	VisionRange      float64
	VisionAngle      float64 // degrees; 0 sees in every direction
	MeleeRange       float64
	PatrolSpeed      float64
	MoveSpeed        float64
	BiteDamage       float64
	ShootDamage      float64
	ShootCooldown    float64
	RecoveryDuration float64
	HitStun          float64
	HalfWidth        float64
	HalfHeight       float64
}

// HasRecovery reports whether a landed bite puts the enemy into Recover.
func (s Stats) HasRecovery() bool {
	return s.RecoveryDuration > 0
}

func (s Stats) CanShoot() bool {
	return s.ShootDamage > 0
}

var StatsComponent = NewComponent[Stats]()

// AITag marks entities driven by the AI systems.
type AITag struct{}

var AITagComponent = NewComponent[AITag]()
