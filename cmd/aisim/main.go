// Command aisim runs an encounter headless with a scripted player and prints a
// YAML report of what the enemies did.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/levels"
	"github.com/milk9111/enemycore/logging"
	"github.com/milk9111/enemycore/prefabs"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "embedded level name (overrides config)")
	ticks := flag.Int("ticks", 1800, "number of fixed steps to simulate")
	path := flag.String("path", "", `player waypoint loop "x,y;x,y;..." (default: stand at spawn)`)
	sprint := flag.Bool("sprint", false, "sprint whenever the player is allowed to")
	hitInterval := flag.Float64("hit-interval", 0, "seconds between player melee swings (0 disables)")
	hitDamage := flag.Float64("hit-damage", 25, "damage per player swing")
	hitRange := flag.Float64("hit-range", 48, "reach of a player swing in pixels")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level.Name = *levelName
	}
	if *ticks < 1 {
		log.Fatalf("-ticks must be positive, got %d", *ticks)
	}

	base, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = base.Sync() }()

	runID := uuid.New().String()
	logger := base.With(zap.String("run_id", runID))

	prefabs.SetDiskDir(cfg.Prefabs.Dir)

	waypoints, err := parsePath(*path)
	if err != nil {
		logger.Fatal("parsing -path", zap.Error(err))
	}
	lvl, err := levels.LoadLevelFromFS(cfg.Level.Name)
	if err != nil {
		logger.Fatal("loading level", zap.String("level", cfg.Level.Name), zap.Error(err))
	}

	rep, err := run(cfg, lvl, runOptions{
		Ticks:       *ticks,
		Path:        waypoints,
		Sprint:      *sprint,
		HitInterval: *hitInterval,
		HitDamage:   *hitDamage,
		HitRange:    *hitRange,
	}, logger)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
	rep.RunID = runID

	for _, k := range sortedKeys(rep.Transitions) {
		logger.Debug("transition total", zap.String("key", k), zap.Int("count", rep.Transitions[k]))
	}
	logger.Info("simulation finished",
		zap.Uint64("ticks", rep.Ticks),
		zap.Float64("player_health", rep.PlayerHealth),
		zap.Int("deaths", len(rep.Deaths)),
	)

	out, err := yaml.Marshal(rep)
	if err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
	if _, err := fmt.Fprint(os.Stdout, string(out)); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
}
