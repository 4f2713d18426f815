package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Garsondee/city-walk/internal/world"
)

// EnvPrefix is prepended to environment overrides, e.g. CITYWALK_CITY_SEED.
const EnvPrefix = "CITYWALK"

// CityConfig holds generation settings.
type CityConfig struct {
	GridSize    int     `mapstructure:"gridSize"`
	CellSize    int     `mapstructure:"cellSize"`
	RoadPeriod  int     `mapstructure:"roadPeriod"`
	SpawnChance float64 `mapstructure:"spawnChance"`
	SkipChance  float64 `mapstructure:"skipChance"`
	Seed        int64   `mapstructure:"seed"` // 0 picks a time-based seed
}

// PlayerConfig holds controller settings.
type PlayerConfig struct {
	MaxDistance      float64 `mapstructure:"maxDistance"`
	StartDistance    float64 `mapstructure:"startDistance"`
	WheelSensitivity float64 `mapstructure:"wheelSensitivity"`
	LookSensitivity  float64 `mapstructure:"lookSensitivity"`
	ShotRange        float64 `mapstructure:"shotRange"`
}

// WindowConfig holds the frontend window size.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty disables file logging
}

// Config is the full application configuration.
type Config struct {
	City   CityConfig   `mapstructure:"city"`
	Player PlayerConfig `mapstructure:"player"`
	Window WindowConfig `mapstructure:"window"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	c := world.DefaultCityConfig
	v.SetDefault("city.gridSize", c.GridSize)
	v.SetDefault("city.cellSize", c.CellSize)
	v.SetDefault("city.roadPeriod", c.RoadPeriod)
	v.SetDefault("city.spawnChance", c.SpawnChance)
	v.SetDefault("city.skipChance", c.SkipChance)
	v.SetDefault("city.seed", 0)

	p := world.DefaultPlayerConfig
	v.SetDefault("player.maxDistance", p.MaxDistance)
	v.SetDefault("player.startDistance", p.StartDistance)
	v.SetDefault("player.wheelSensitivity", p.WheelSensitivity)
	v.SetDefault("player.lookSensitivity", p.LookSensitivity)
	v.SetDefault("player.shotRange", world.DefaultShotRange)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads configuration from path (YAML, JSON or TOML by extension) on
// top of the defaults. An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with no file and no environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Validate rejects settings the generator and controller cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.City.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("city.gridSize must be > 0, got %d", c.City.GridSize))
	}
	if c.City.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("city.cellSize must be > 0, got %d", c.City.CellSize))
	}
	if c.City.RoadPeriod <= 0 {
		errs = append(errs, fmt.Errorf("city.roadPeriod must be > 0, got %d", c.City.RoadPeriod))
	}
	if c.City.SpawnChance < 0 || c.City.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("city.spawnChance must be in [0,1], got %g", c.City.SpawnChance))
	}
	if c.City.SkipChance < 0 || c.City.SkipChance > 1 {
		errs = append(errs, fmt.Errorf("city.skipChance must be in [0,1], got %g", c.City.SkipChance))
	}
	if c.Player.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("player.maxDistance must be >= 0, got %g", c.Player.MaxDistance))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// Session converts the loaded settings to the world's session parameters.
func (c Config) Session() world.SessionConfig {
	return world.SessionConfig{
		City: world.CityConfig{
			GridSize:    c.City.GridSize,
			CellSize:    c.City.CellSize,
			RoadPeriod:  c.City.RoadPeriod,
			SpawnChance: c.City.SpawnChance,
			SkipChance:  c.City.SkipChance,
		},
		Player: world.PlayerConfig{
			MaxDistance:      c.Player.MaxDistance,
			StartDistance:    c.Player.StartDistance,
			WheelSensitivity: c.Player.WheelSensitivity,
			LookSensitivity:  c.Player.LookSensitivity,
		},
		ShotRange: c.Player.ShotRange,
	}
}
