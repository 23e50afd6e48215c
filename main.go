package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/logging"
	"github.com/milk9111/enemycore/prefabs"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level file on disk or embedded level name (overrides config)")
	debug := flag.Bool("debug", false, "draw vision ranges, paths and predicted positions")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level.Name = *levelName
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.SetDiskDir(cfg.Prefabs.Dir)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("enemycore sandbox")
	ebiten.SetTPS(cfg.Simulation.TPS)

	game, err := NewGame(cfg, *debug, logger)
	if err != nil {
		logger.Fatal("starting sandbox", zap.Error(err))
	}
	defer game.Close()

	logger.Info("sandbox started",
		zap.String("level", cfg.Level.Name),
		zap.Int("tps", cfg.Simulation.TPS),
		zap.Bool("hot_reload", cfg.Prefabs.HotReload),
	)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
