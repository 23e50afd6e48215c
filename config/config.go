// Package config loads simulation settings with viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SimulationConfig holds the fixed-step loop and AI timing settings.
type SimulationConfig struct {
	// TPS is the number of simulation ticks per second.
	TPS int `mapstructure:"tps"`
	// ReplanInterval is the minimum time between two path searches for one enemy.
	ReplanInterval time.Duration `mapstructure:"replan_interval"`
	// PredictionWindow is how long a lost player is still tracked by prediction.
	PredictionWindow      time.Duration `mapstructure:"prediction_window"`
	MaxTransitionsPerTick int           `mapstructure:"max_transitions_per_tick"`
}

// DT returns the fixed tick length in seconds.
func (s SimulationConfig) DT() float64 {
	if s.TPS <= 0 {
		return 0
	}
	return 1 / float64(s.TPS)
}

type PlayerConfig struct {
	BaseSpeed   float64 `mapstructure:"base_speed"`
	SprintSpeed float64 `mapstructure:"sprint_speed"`
}

type LevelConfig struct {
	Name string `mapstructure:"name"`
}

type PrefabsConfig struct {
	Dir       string `mapstructure:"dir"`
	HotReload bool   `mapstructure:"hot_reload"`
}

// AIConfig selects what a PinkStar does after returning home.
type AIConfig struct {
	// PostReturn is "idle", "patrol" or "script".
	PostReturn       string `mapstructure:"post_return"`
	PostReturnScript string `mapstructure:"post_return_script"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Player     PlayerConfig     `mapstructure:"player"`
	Level      LevelConfig      `mapstructure:"level"`
	Prefabs    PrefabsConfig    `mapstructure:"prefabs"`
	AI         AIConfig         `mapstructure:"ai"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks every setting and reports all violations at once.
func (c Config) Validate() error {
	var errs []string

	s := c.Simulation
	if s.TPS < 1 || s.TPS > 1000 {
		errs = append(errs, fmt.Sprintf("simulation.tps must be 1-1000, got %d", s.TPS))
	}
	if s.ReplanInterval <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.replan_interval must be > 0, got %s", s.ReplanInterval))
	}
	if s.PredictionWindow <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.prediction_window must be > 0, got %s", s.PredictionWindow))
	}
	if s.MaxTransitionsPerTick < 1 {
		errs = append(errs, fmt.Sprintf("simulation.max_transitions_per_tick must be >= 1, got %d", s.MaxTransitionsPerTick))
	}

	if c.Player.BaseSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("player.base_speed must be > 0, got %v", c.Player.BaseSpeed))
	}
	if c.Player.SprintSpeed < c.Player.BaseSpeed {
		errs = append(errs, fmt.Sprintf("player.sprint_speed must be >= base_speed, got %v", c.Player.SprintSpeed))
	}

	if strings.TrimSpace(c.Level.Name) == "" {
		errs = append(errs, "level.name must not be empty")
	}

	switch c.AI.PostReturn {
	case "idle", "patrol":
	case "script":
		if strings.TrimSpace(c.AI.PostReturnScript) == "" {
			errs = append(errs, "ai.post_return_script must be set when ai.post_return is script")
		}
	default:
		errs = append(errs, fmt.Sprintf("ai.post_return must be one of [idle, patrol, script], got %q", c.AI.PostReturn))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads the YAML file at path, applies ENEMYAI_ environment overrides and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: defaults do not decode: " + err.Error())
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ENEMYAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.tps", 60)
	v.SetDefault("simulation.replan_interval", "1s")
	v.SetDefault("simulation.prediction_window", "3s")
	v.SetDefault("simulation.max_transitions_per_tick", 4)

	v.SetDefault("player.base_speed", 180.0)
	v.SetDefault("player.sprint_speed", 300.0)

	v.SetDefault("level.name", "cove.json")

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.hot_reload", false)

	v.SetDefault("ai.post_return", "patrol")
	v.SetDefault("ai.post_return_script", "pink_star_return.tengo")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
