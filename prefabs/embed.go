package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	diskMu  sync.RWMutex
	diskDir = "prefabs"
)

// SetDiskDir changes the directory whose files override the embedded prefabs.
// An empty dir disables disk overrides.
func SetDiskDir(dir string) {
	diskMu.Lock()
	defer diskMu.Unlock()
	diskDir = dir
}

// DiskDir returns the override directory.
func DiskDir() string {
	diskMu.RLock()
	defer diskMu.RUnlock()
	return diskDir
}

// LoadScript reads a tengo script, preferring a disk copy over the embedded one.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if path, ok := diskPath(clean); ok {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return data, nil
}

// Load reads a prefab, preferring a disk copy over the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if path, ok := diskPath(clean); ok {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	path, ok := diskPath(cleanPrefabPath(name))
	if !ok {
		return time.Time{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) (string, bool) {
	dir := DiskDir()
	if dir == "" || clean == "" {
		return "", false
	}
	return filepath.Join(dir, filepath.FromSlash(clean)), true
}
