package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid configuration")

// SearchConfig tunes boundary searches.
type SearchConfig struct {
	Step      time.Duration `mapstructure:"step"`
	Window    time.Duration `mapstructure:"window"`
	Precision time.Duration `mapstructure:"precision"`
	MaxIter   int           `mapstructure:"max_iter"`
	Strategy  string        `mapstructure:"strategy"`
}

// LocationConfig is the default observer used by the day subcommand.
type LocationConfig struct {
	Lat       float64 `mapstructure:"lat"`
	Lon       float64 `mapstructure:"lon"`
	Elevation float64 `mapstructure:"elevation"` // meters
	TZ        string  `mapstructure:"tz"`
}

// Config holds all runtime configuration for the CLI.
// Values are populated from .jyotiglide.toml, JYOTIGLIDE_* env vars, and CLI flags.
type Config struct {
	Cache struct {
		Capacity int `mapstructure:"capacity"`
	} `mapstructure:"cache"`
	Search SearchConfig `mapstructure:"search"`
	Month  struct {
		SignOffset float64 `mapstructure:"sign_offset"`
	} `mapstructure:"month"`
	RiseSet struct {
		Provider string `mapstructure:"provider"`
	} `mapstructure:"riseset"`
	Location LocationConfig `mapstructure:"location"`
	Output   struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`
	Verbose bool `mapstructure:"verbose"`
}

// EnvPrefix namespaces environment overrides, e.g. JYOTIGLIDE_SEARCH_STEP.
const EnvPrefix = "JYOTIGLIDE"

// BindEnv lets JYOTIGLIDE_* variables override nested keys.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("cache.capacity", 500)
	viper.SetDefault("search.step", 2*time.Hour)
	viper.SetDefault("search.window", 48*time.Hour)
	viper.SetDefault("search.precision", time.Second)
	viper.SetDefault("search.max_iter", 25)
	viper.SetDefault("search.strategy", "bracket")
	viper.SetDefault("month.sign_offset", 0.2)
	viper.SetDefault("riseset.provider", "solver")
	viper.SetDefault("location.lat", 25.3176) // Varanasi
	viper.SetDefault("location.lon", 82.9739)
	viper.SetDefault("location.elevation", 0.0)
	viper.SetDefault("location.tz", "Asia/Kolkata")
	viper.SetDefault("output.format", "text")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerated values.
func (c Config) Validate() error {
	switch {
	case c.Cache.Capacity < 1:
		return fmt.Errorf("%w: cache.capacity must be at least 1, got %d", ErrInvalid, c.Cache.Capacity)
	case c.Search.Step <= 0 || c.Search.Window <= 0 || c.Search.Precision <= 0:
		return fmt.Errorf("%w: search durations must be positive", ErrInvalid)
	case c.Search.Step > c.Search.Window:
		return fmt.Errorf("%w: search.step %s exceeds search.window %s", ErrInvalid, c.Search.Step, c.Search.Window)
	case c.Search.MaxIter < 1:
		return fmt.Errorf("%w: search.max_iter must be at least 1", ErrInvalid)
	case c.Search.Strategy != "bracket" && c.Search.Strategy != "legacy":
		return fmt.Errorf("%w: search.strategy %q (want bracket or legacy)", ErrInvalid, c.Search.Strategy)
	case c.RiseSet.Provider != "solver" && c.RiseSet.Provider != "noaa":
		return fmt.Errorf("%w: riseset.provider %q (want solver or noaa)", ErrInvalid, c.RiseSet.Provider)
	case c.Location.Lat < -90 || c.Location.Lat > 90:
		return fmt.Errorf("%w: location.lat %v out of range", ErrInvalid, c.Location.Lat)
	case c.Location.Lon < -180 || c.Location.Lon > 180:
		return fmt.Errorf("%w: location.lon %v out of range", ErrInvalid, c.Location.Lon)
	}

	switch c.Output.Format {
	case "text", "json", "toml":
	default:
		return fmt.Errorf("%w: output.format %q (want text, json or toml)", ErrInvalid, c.Output.Format)
	}

	if _, err := c.TimeZone(); err != nil {
		return fmt.Errorf("%w: location.tz: %v", ErrInvalid, err)
	}
	return nil
}

// TimeZone loads location.tz. An empty name means UTC.
func (c Config) TimeZone() (*time.Location, error) {
	if c.Location.TZ == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Location.TZ)
}
