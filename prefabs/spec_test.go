package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/enemycore/ecs/component"
)

func TestLoadRosterFromEmbedded(t *testing.T) {
	roster, err := LoadRoster(180)
	require.NoError(t, err)
	require.Len(t, roster, 3)

	ft := roster[component.FierceTooth].Stats()
	assert.Equal(t, component.FierceTooth, ft.Archetype)
	assert.Equal(t, 320.0, ft.VisionRange)
	assert.Greater(t, ft.BiteDamage, ft.ShootDamage)
	assert.True(t, ft.HasRecovery())

	ss := roster[component.SeashellPearl].Stats()
	assert.False(t, ss.HasRecovery())
	assert.Zero(t, ss.MoveSpeed)

	ps := roster[component.PinkStar]
	assert.Greater(t, ps.MoveSpeed, 180.0)
	assert.Greater(t, ps.PatrolRadius, 0.0)
	assert.False(t, ps.Stats().CanShoot())
	assert.Equal(t, 5.0, ps.Stats().HitStun)
	assert.Equal(t, 2.0, ft.HitStun)
}

func TestValidateRosterRelationships(t *testing.T) {
	base, err := LoadRoster(180)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(r Roster)
	}{
		{name: "seashell shoots weaker", mutate: func(r Roster) {
			s := r[component.SeashellPearl]
			s.ShootDamage = 5
			r[component.SeashellPearl] = s
		}},
		{name: "seashell sees less", mutate: func(r Roster) {
			s := r[component.SeashellPearl]
			s.VisionRange = 100
			r[component.SeashellPearl] = s
		}},
		{name: "pink star recovers faster", mutate: func(r Roster) {
			s := r[component.PinkStar]
			s.Recovery = 1
			r[component.PinkStar] = s
		}},
		{name: "pink star slower than player", mutate: func(r Roster) {
			s := r[component.PinkStar]
			s.MoveSpeed = 150
			r[component.PinkStar] = s
		}},
		{name: "missing archetype", mutate: func(r Roster) {
			delete(r, component.PinkStar)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := make(Roster, len(base))
			for k, v := range base {
				r[k] = v
			}
			tc.mutate(r)
			assert.ErrorIs(t, ValidateRoster(r, 180), ErrInvalidSpec)
		})
	}
}

func TestArchetypeSpecValidate(t *testing.T) {
	spec := ArchetypeSpec{
		Name: "broken", Archetype: component.FierceTooth, Health: 10,
		MeleeRange: 50, VisionRange: 300, BiteDamage: 5, ShootDamage: 10,
	}
	err := spec.Validate()
	require.ErrorIs(t, err, ErrInvalidSpec)
	assert.Contains(t, err.Error(), "must exceed shoot_damage")

	spec.BiteDamage = 20
	assert.NoError(t, spec.Validate())

	spec.MoveSpeed = -1
	assert.ErrorIs(t, spec.Validate(), ErrInvalidSpec)

	spec.MoveSpeed = 0
	spec.HitStun = -0.5
	assert.ErrorIs(t, spec.Validate(), ErrInvalidSpec)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDiskDir(dir)
	t.Cleanup(func() { SetDiskDir("prefabs") })

	data, err := PrefabsFS.ReadFile("fierce_tooth.yaml")
	require.NoError(t, err)
	override := strings.Replace(string(data), "health: 80", "health: 95", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fierce_tooth.yaml"), []byte(override), 0o644))

	spec, err := LoadArchetype(component.FierceTooth)
	require.NoError(t, err)
	assert.Equal(t, 95.0, spec.Health)

	_, ok := ModTime("fierce_tooth.yaml")
	assert.True(t, ok)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"pink_star_return.tengo", "scripts/pink_star_return.tengo", "prefabs/scripts/pink_star_return.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "next")
	}
	_, err := LoadScript("missing.tengo")
	assert.Error(t, err)
}

func TestIsArchetypeFile(t *testing.T) {
	a, ok := IsArchetypeFile(filepath.Join("prefabs", "pink_star.yaml"))
	assert.True(t, ok)
	assert.Equal(t, component.PinkStar, a)

	_, ok = IsArchetypeFile("prefabs/player.yaml")
	assert.False(t, ok)
}

func TestWatcherReportsChangedSpec(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	path := filepath.Join(dir, "pink_star.yaml")
	require.NoError(t, os.WriteFile(path, []byte("health: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no watcher event")
	}
}
