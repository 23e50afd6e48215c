package component

import (
	"fmt"
	"strings"
)

// Archetype selects one of the fixed enemy behaviour profiles.
type Archetype int

const (
	ArchetypeUnknown Archetype = iota
	FierceTooth
	SeashellPearl
	PinkStar
)

func (a Archetype) String() string {
	switch a {
	case FierceTooth:
		return "fierce_tooth"
	case SeashellPearl:
		return "seashell_pearl"
	case PinkStar:
		return "pink_star"
	default:
		return "unknown"
	}
}

// ParseArchetype accepts snake_case, CamelCase or squashed names.
func ParseArchetype(s string) (Archetype, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	switch key {
	case "fiercetooth":
		return FierceTooth, nil
	case "seashellpearl", "seashell":
		return SeashellPearl, nil
	case "pinkstar":
		return PinkStar, nil
	}
	return ArchetypeUnknown, fmt.Errorf("component: unknown archetype %q", s)
}

func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Archetype) UnmarshalText(b []byte) error {
	v, err := ParseArchetype(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
