package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/enemycore/config"
	"github.com/milk9111/enemycore/ecs/system"
	"github.com/milk9111/enemycore/encounter"
	"github.com/milk9111/enemycore/levels"
	"github.com/milk9111/enemycore/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	statusFrames = 180
)

type Game struct {
	cfg    config.Config
	logger *zap.Logger

	level   *levels.Level
	enc     *encounter.Encounter
	player  *Player
	arsenal *Arsenal
	input   *Input
	tiles   *ebiten.Image
	views   []encounter.EnemyView

	watcher   *prefabs.Watcher
	clipboard bool

	pauseUI *ebitenui.UI
	paused  bool
	debug   bool
	quit    bool

	status       string
	statusFrames int
}

func NewGame(cfg config.Config, debug bool, logger *zap.Logger) (*Game, error) {
	lvl, err := loadLevel(cfg.Level.Name)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		logger: logger,
		level:  lvl,
		input:  NewInput(),
		tiles:  renderTiles(lvl),
		debug:  debug,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Prefabs.HotReload {
		dirs := []string{cfg.Prefabs.Dir, filepath.Join(cfg.Prefabs.Dir, "scripts")}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.Strings("dirs", dirs), zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}
	return g, nil
}

// loadLevel prefers a level file on disk and falls back to the embedded set.
func loadLevel(name string) (*levels.Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return levels.Parse(data)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading level %s: %w", name, err)
	}
	return levels.LoadLevelFromFS(name)
}

// restart rebuilds the encounter and the player from the level file.
func (g *Game) restart() error {
	enc, err := encounter.New(encounter.Options{
		Level:  g.level,
		Config: g.cfg,
		Logger: g.logger,
	})
	if err != nil {
		return err
	}
	player := NewPlayer(g.level.PlayerSpawn.Vec(), g.cfg.Player, enc.Grid(), g.logger)
	enc.SetController(player)

	g.enc = enc
	g.player = player
	if g.arsenal == nil {
		g.arsenal = NewArsenal(enc.Provider(), g.logger)
	} else {
		g.arsenal.provider = enc.Provider()
		g.arsenal.Reset()
	}
	g.views = enc.Enemies()
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("closing prefab watcher", zap.Error(err))
		}
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.input.Update()
	g.drainReloads()

	if g.statusFrames > 0 {
		g.statusFrames--
		if g.statusFrames == 0 {
			g.status = ""
		}
	}

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.input.RestartPressed {
		if err := g.restart(); err != nil {
			g.logger.Error("restart failed", zap.Error(err))
		}
	}
	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.CopyPressed {
		g.copySnapshot()
	}

	dt := g.cfg.Simulation.DT()
	g.player.Update(g.input, dt)
	if g.player.Alive() {
		if g.input.FirePressed {
			g.arsenal.Fire(g.player.Position, g.player.FacingLeft)
		}
		if g.input.GrenadePressed {
			g.arsenal.Throw(g.player.Position, g.player.FacingLeft)
		}
	}
	g.arsenal.Update(dt, g.enc)

	res := g.enc.Tick(g.player.Observation(g.arsenal))
	for _, d := range res.Deaths {
		g.flash(fmt.Sprintf("%s defeated", d.Archetype))
	}
	g.views = g.enc.Enemies()
	return nil
}

// drainReloads applies prefab and script edits picked up by the watcher.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	name := filepath.Base(path)
	if a, ok := prefabs.IsArchetypeFile(name); ok {
		spec, err := prefabs.LoadArchetype(a)
		if err != nil {
			g.logger.Warn("reload archetype failed", zap.String("file", name), zap.Error(err))
			g.flash("reload failed: " + err.Error())
			return
		}
		n := g.enc.ApplyStats(spec)
		if mt, ok := prefabs.ModTime(name); ok {
			g.logger.Info("archetype reloaded", zap.String("file", name), zap.Time("modified", mt), zap.Int("enemies", n))
		}
		g.flash(fmt.Sprintf("reloaded %s (%d enemies)", name, n))
		return
	}

	if g.cfg.AI.PostReturn == "script" && name == filepath.Base(g.cfg.AI.PostReturnScript) {
		policy, err := system.NewPostReturnPolicy(g.cfg.AI.PostReturn, g.cfg.AI.PostReturnScript, g.logger)
		if err != nil {
			g.logger.Warn("reload post-return script failed", zap.String("file", name), zap.Error(err))
			g.flash("script reload failed: " + err.Error())
			return
		}
		g.enc.SetPostReturn(policy)
		g.flash("reloaded " + name)
	}
}

type enemySnapshot struct {
	Archetype string  `yaml:"archetype"`
	State     string  `yaml:"state"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Health    float64 `yaml:"health"`
	Recovery  float64 `yaml:"recovery,omitempty"`
	Smart     bool    `yaml:"smart,omitempty"`
	Zone      string  `yaml:"zone,omitempty"`
}

type snapshot struct {
	Time    float64         `yaml:"time"`
	PlayerX float64         `yaml:"player_x"`
	PlayerY float64         `yaml:"player_y"`
	Health  float64         `yaml:"player_health"`
	Enemies []enemySnapshot `yaml:"enemies"`
}

// copySnapshot puts the current enemy states on the clipboard as YAML.
func (g *Game) copySnapshot() {
	if !g.clipboard {
		g.flash("clipboard unavailable")
		return
	}
	snap := snapshot{
		Time:    g.enc.Now(),
		PlayerX: g.player.Position.X,
		PlayerY: g.player.Position.Y,
		Health:  g.player.Health,
	}
	for _, v := range g.views {
		snap.Enemies = append(snap.Enemies, enemySnapshot{
			Archetype: v.Archetype.String(),
			State:     string(v.State),
			X:         v.Position.X,
			Y:         v.Position.Y,
			Health:    v.Health,
			Recovery:  v.RecoveryTimer,
			Smart:     v.Smart,
			Zone:      v.Zone,
		})
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		g.logger.Error("marshal snapshot", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.flash(fmt.Sprintf("copied %d enemies", len(snap.Enemies)))
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusFrames = statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	screen.DrawImage(g.tiles, nil)
	drawZones(screen, g.level)

	for _, v := range g.views {
		drawEnemy(screen, v, g.debug)
	}
	drawArsenal(screen, g.arsenal)
	drawPlayer(screen, g.player)
	drawHUD(screen, g)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
