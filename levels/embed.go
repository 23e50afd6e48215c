package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/nav"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrUnknownZone        = errors.New("levels: unknown zone")
	ErrZoneAlreadyGuarded = errors.New("levels: zone already guarded")
	ErrInvalidPlacement   = errors.New("levels: invalid placement")
)

// Tile codes up to maxSolidTile are solid terrain; -1 is empty.
const maxSolidTile = 14

type Level struct {
	Name        string      `json:"name"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	CellSize    float64     `json:"cell_size"`
	Tiles       [][]int     `json:"tiles"`
	PlayerSpawn Point       `json:"player_spawn"`
	Zones       []ZoneSpec  `json:"zones,omitempty"`
	Enemies     []Placement `json:"enemies,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vec() common.Vec2 { return common.Vec2{X: p.X, Y: p.Y} }

// ZoneSpec is a danger zone's bounding region in world pixels.
type ZoneSpec struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

func (z ZoneSpec) Rect() common.Rect {
	return common.Rect{X: z.X, Y: z.Y, Width: z.W, Height: z.H}
}

// Placement is one enemy spawn record.
type Placement struct {
	Archetype  component.Archetype `json:"archetype"`
	X          float64             `json:"x"`
	Y          float64             `json:"y"`
	PatrolMinX float64             `json:"patrol_min_x,omitempty"`
	PatrolMaxX float64             `json:"patrol_max_x,omitempty"`
	Zone       string              `json:"zone,omitempty"`
	Smart      bool                `json:"smart,omitempty"`
}

func (p Placement) Position() common.Vec2 { return common.Vec2{X: p.X, Y: p.Y} }

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a level document.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Geometry converts the tile rows into navigation geometry.
func (l *Level) Geometry() nav.Geometry {
	geo := nav.Geometry{
		Width:    l.Width,
		Height:   l.Height,
		CellSize: l.CellSize,
		Solid:    make([]bool, 0, l.Width*l.Height),
	}
	for _, row := range l.Tiles {
		for _, tile := range row {
			geo.Solid = append(geo.Solid, IsSolidTile(tile))
		}
	}
	return geo
}

func IsSolidTile(code int) bool {
	return code >= 0 && code <= maxSolidTile
}

// Bounds is the level rectangle in world pixels.
func (l *Level) Bounds() common.Rect {
	return common.Rect{Width: float64(l.Width) * l.CellSize, Height: float64(l.Height) * l.CellSize}
}

// Validate checks geometry shape, placements and the one-guard-per-zone rule.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.CellSize <= 0 {
		return fmt.Errorf("levels: %s: %w: %dx%d cells of %v", l.Name, nav.ErrMalformedGeometry, l.Width, l.Height, l.CellSize)
	}
	if len(l.Tiles) != l.Height {
		return fmt.Errorf("levels: %s: %w: %d rows, want %d", l.Name, nav.ErrMalformedGeometry, len(l.Tiles), l.Height)
	}
	for y, row := range l.Tiles {
		if len(row) != l.Width {
			return fmt.Errorf("levels: %s: %w: row %d has %d tiles, want %d", l.Name, nav.ErrMalformedGeometry, y, len(row), l.Width)
		}
	}

	bounds := l.Bounds()
	zones := make(map[string]bool, len(l.Zones))
	for _, z := range l.Zones {
		if z.ID == "" || zones[z.ID] {
			return fmt.Errorf("levels: %s: %w: zone id %q empty or duplicated", l.Name, ErrInvalidPlacement, z.ID)
		}
		if z.W <= 0 || z.H <= 0 {
			return fmt.Errorf("levels: %s: %w: zone %q has no area", l.Name, ErrInvalidPlacement, z.ID)
		}
		zones[z.ID] = true
	}

	guarded := make(map[string]int, len(l.Zones))
	for i, p := range l.Enemies {
		if p.Archetype == component.ArchetypeUnknown {
			return fmt.Errorf("levels: %s: %w: enemy %d has no archetype", l.Name, ErrInvalidPlacement, i)
		}
		if !bounds.Contains(p.Position()) {
			return fmt.Errorf("levels: %s: %w: enemy %d at (%v,%v) outside level", l.Name, ErrInvalidPlacement, i, p.X, p.Y)
		}
		if p.PatrolMinX > p.PatrolMaxX {
			return fmt.Errorf("levels: %s: %w: enemy %d patrol bounds inverted", l.Name, ErrInvalidPlacement, i)
		}
		if p.Smart && p.Archetype != component.FierceTooth {
			return fmt.Errorf("levels: %s: %w: enemy %d: only fierce_tooth supports smart mode", l.Name, ErrInvalidPlacement, i)
		}
		if p.Archetype != component.PinkStar {
			continue
		}
		if !zones[p.Zone] {
			return fmt.Errorf("levels: %s: enemy %d: %w %q", l.Name, i, ErrUnknownZone, p.Zone)
		}
		if prev, ok := guarded[p.Zone]; ok {
			return fmt.Errorf("levels: %s: enemies %d and %d: %w %q", l.Name, prev, i, ErrZoneAlreadyGuarded, p.Zone)
		}
		guarded[p.Zone] = i
	}
	return nil
}

// Zone returns the zone spec with the given id.
func (l *Level) Zone(id string) (ZoneSpec, bool) {
	for _, z := range l.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return ZoneSpec{}, false
}
