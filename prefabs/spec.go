package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/enemycore/ecs/component"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"w"`
	Height float64 `yaml:"h"`
}

type SmartSpec struct {
	ProjectileReaction float64 `yaml:"projectile_reaction"`
	GrenadeReaction    float64 `yaml:"grenade_reaction"`
}

// ArchetypeSpec is the YAML tuning for one enemy archetype. Durations are in
// seconds, speeds in pixels per second.
type ArchetypeSpec struct {
	Name          string              `yaml:"name"`
	Archetype     component.Archetype `yaml:"archetype"`
	Health        float64             `yaml:"health"`
	VisionRange   float64             `yaml:"vision_range"`
	VisionAngle   float64             `yaml:"vision_angle"`
	MeleeRange    float64             `yaml:"melee_range"`
	PatrolSpeed   float64             `yaml:"patrol_speed"`
	MoveSpeed     float64             `yaml:"move_speed"`
	BiteDamage    float64             `yaml:"bite_damage"`
	ShootDamage   float64             `yaml:"shoot_damage"`
	ShootCooldown float64             `yaml:"shoot_cooldown"`
	Recovery      float64             `yaml:"recovery"`
	HitStun       float64             `yaml:"hit_stun"`
	PatrolRadius  float64             `yaml:"patrol_radius"`
	Size          SizeSpec            `yaml:"size"`
	Smart         SmartSpec           `yaml:"smart"`
}

// Stats converts the spec into the component copied onto each spawned enemy.
func (s ArchetypeSpec) Stats() component.Stats {
	return component.Stats{
		Archetype:        s.Archetype,
		MaxHealth:        s.Health,
		VisionRange:      s.VisionRange,
		VisionAngle:      s.VisionAngle,
		MeleeRange:       s.MeleeRange,
		PatrolSpeed:      s.PatrolSpeed,
		MoveSpeed:        s.MoveSpeed,
		BiteDamage:       s.BiteDamage,
		ShootDamage:      s.ShootDamage,
		ShootCooldown:    s.ShootCooldown,
		RecoveryDuration: s.Recovery,
		HitStun:          s.HitStun,
		HalfWidth:        s.Size.Width / 2,
		HalfHeight:       s.Size.Height / 2,
	}
}

// Validate checks the spec in isolation.
func (s ArchetypeSpec) Validate() error {
	var errs []error
	if s.Archetype == component.ArchetypeUnknown {
		errs = append(errs, fmt.Errorf("%s: archetype is required", s.Name))
	}
	if s.Health <= 0 {
		errs = append(errs, fmt.Errorf("%s: health must be > 0", s.Name))
	}
	if s.MeleeRange <= 0 || s.BiteDamage <= 0 {
		errs = append(errs, fmt.Errorf("%s: melee_range and bite_damage must be > 0", s.Name))
	}
	if s.ShootDamage > 0 && s.BiteDamage <= s.ShootDamage {
		errs = append(errs, fmt.Errorf("%s: bite_damage %v must exceed shoot_damage %v", s.Name, s.BiteDamage, s.ShootDamage))
	}
	if s.ShootDamage > 0 && s.VisionRange <= s.MeleeRange {
		errs = append(errs, fmt.Errorf("%s: vision_range must exceed melee_range for a shooter", s.Name))
	}
	for name, v := range map[string]float64{
		"vision_angle": s.VisionAngle, "patrol_speed": s.PatrolSpeed, "move_speed": s.MoveSpeed,
		"shoot_cooldown": s.ShootCooldown, "recovery": s.Recovery, "patrol_radius": s.PatrolRadius,
		"hit_stun": s.HitStun,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s: %s must be >= 0", s.Name, name))
		}
	}
	if s.Archetype == component.SeashellPearl && (s.Recovery != 0 || s.MoveSpeed != 0) {
		errs = append(errs, fmt.Errorf("%s: seashell pearl is stationary and never recovers", s.Name))
	}
	if s.Archetype == component.PinkStar && s.ShootDamage != 0 {
		errs = append(errs, fmt.Errorf("%s: pink star cannot shoot", s.Name))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
	}
	return nil
}

var archetypeFiles = map[component.Archetype]string{
	component.FierceTooth:   "fierce_tooth.yaml",
	component.SeashellPearl: "seashell_pearl.yaml",
	component.PinkStar:      "pink_star.yaml",
}

// Roster holds the tuning of every archetype.
type Roster map[component.Archetype]ArchetypeSpec

// LoadArchetype loads and validates the prefab for one archetype.
func LoadArchetype(a component.Archetype) (ArchetypeSpec, error) {
	name, ok := archetypeFiles[a]
	if !ok {
		return ArchetypeSpec{}, fmt.Errorf("%w: no prefab for archetype %s", ErrInvalidSpec, a)
	}
	spec, err := LoadSpec[ArchetypeSpec](name)
	if err != nil {
		return ArchetypeSpec{}, err
	}
	if spec.Archetype != a {
		return ArchetypeSpec{}, fmt.Errorf("%w: %s declares archetype %s", ErrInvalidSpec, name, spec.Archetype)
	}
	if err := spec.Validate(); err != nil {
		return ArchetypeSpec{}, err
	}
	return spec, nil
}

// LoadRoster loads every archetype prefab and checks the cross-archetype rules.
func LoadRoster(playerBaseSpeed float64) (Roster, error) {
	roster := make(Roster, len(archetypeFiles))
	for _, a := range []component.Archetype{component.FierceTooth, component.SeashellPearl, component.PinkStar} {
		spec, err := LoadArchetype(a)
		if err != nil {
			return nil, err
		}
		roster[a] = spec
	}
	if err := ValidateRoster(roster, playerBaseSpeed); err != nil {
		return nil, err
	}
	return roster, nil
}

// IsArchetypeFile reports whether name is one of the archetype prefabs.
func IsArchetypeFile(name string) (component.Archetype, bool) {
	clean := cleanPrefabPath(name)
	for a, file := range archetypeFiles {
		if file == clean || hasBase(clean, file) {
			return a, true
		}
	}
	return component.ArchetypeUnknown, false
}

// ValidateRoster enforces the relationships between archetypes.
func ValidateRoster(r Roster, playerBaseSpeed float64) error {
	ft, okFT := r[component.FierceTooth]
	ss, okSS := r[component.SeashellPearl]
	ps, okPS := r[component.PinkStar]
	if !okFT || !okSS || !okPS {
		return fmt.Errorf("%w: roster must define every archetype", ErrInvalidSpec)
	}

	var errs []error
	if ss.ShootDamage <= ft.ShootDamage {
		errs = append(errs, fmt.Errorf("seashell_pearl shoot_damage %v must exceed fierce_tooth %v", ss.ShootDamage, ft.ShootDamage))
	}
	if ss.VisionRange <= ft.VisionRange {
		errs = append(errs, fmt.Errorf("seashell_pearl vision_range %v must exceed fierce_tooth %v", ss.VisionRange, ft.VisionRange))
	}
	if ps.Recovery <= ft.Recovery {
		errs = append(errs, fmt.Errorf("pink_star recovery %v must exceed fierce_tooth %v", ps.Recovery, ft.Recovery))
	}
	if ps.MoveSpeed <= playerBaseSpeed {
		errs = append(errs, fmt.Errorf("pink_star move_speed %v must exceed player base speed %v", ps.MoveSpeed, playerBaseSpeed))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
	}
	return nil
}
