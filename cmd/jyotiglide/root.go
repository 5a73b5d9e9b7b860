package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thurmanmarka/jyotiglide"
	"github.com/thurmanmarka/jyotiglide/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jyotiglide",
	Short: "Sidereal calendar-unit boundary search",
	Long: "jyotiglide finds when tithi, nakshatra, yoga, karana and rashi units begin and end,\n" +
		"names lunar months, and lays out Vimshottari dasha periods.",
	SilenceUsage: true,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .jyotiglide.toml)")
	pf.BoolP("verbose", "v", false, "debug logging to stderr")
	pf.StringP("format", "f", "text", "output format: text, json or toml")
	pf.String("strategy", "bracket", "boundary search: bracket or legacy")
	pf.Float64("lat", 25.3176, "observer latitude in degrees (north positive)")
	pf.Float64("lon", 82.9739, "observer longitude in degrees (east positive)")
	pf.Float64("elevation", 0, "observer height in meters; lowers the horizon for the solver provider")
	pf.String("tz", "Asia/Kolkata", "IANA time zone for input and output times")
	pf.String("provider", "solver", "sunrise provider: solver or noaa")

	for key, flag := range map[string]string{
		"verbose":            "verbose",
		"output.format":      "format",
		"search.strategy":    "strategy",
		"location.lat":       "lat",
		"location.lon":       "lon",
		"location.elevation": "elevation",
		"location.tz":        "tz",
		"riseset.provider":   "provider",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".jyotiglide")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session is everything a subcommand needs, built from the loaded config.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	cache  *jyotiglide.Cache
	engine *jyotiglide.Engine
	tz     *time.Location
}

func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	tz, err := cfg.TimeZone()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cache := jyotiglide.NewCache(jyotiglide.ApproxEphemeris{}, jyotiglide.Lahiri{},
		jyotiglide.WithCapacity(cfg.Cache.Capacity),
		jyotiglide.WithCacheLogger(logger))

	strategy := jyotiglide.BracketBisect
	if cfg.Search.Strategy == "legacy" {
		strategy = jyotiglide.FixedWindowBisect
	}
	eng := jyotiglide.New(cache,
		jyotiglide.WithSearch(jyotiglide.SearchConfig{
			Step:      cfg.Search.Step,
			Window:    cfg.Search.Window,
			Precision: cfg.Search.Precision,
			MaxIter:   cfg.Search.MaxIter,
			Strategy:  strategy,
		}),
		jyotiglide.WithMonthSignOffset(cfg.Month.SignOffset),
		jyotiglide.WithLogger(logger))

	logger.Debug("session ready",
		"strategy", strategy, "cache_capacity", cfg.Cache.Capacity, "tz", tz.String())

	return &session{cfg: cfg, logger: logger, cache: cache, engine: eng, tz: tz}, nil
}

func (s *session) location() jyotiglide.Coordinates {
	return jyotiglide.Coordinates{
		Lat:       s.cfg.Location.Lat,
		Lon:       s.cfg.Location.Lon,
		Elevation: s.cfg.Location.Elevation,
	}
}

func (s *session) riseSet() jyotiglide.RiseSetProvider {
	if s.cfg.RiseSet.Provider == "noaa" {
		return jyotiglide.NOAARiseSet{}
	}
	return jyotiglide.SolverRiseSet{}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime reads an instant in loc. An empty string means now.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Now().In(loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q (use YYYY-MM-DD[THH:MM[:SS]] or RFC 3339)", s)
}

// optionalArg returns args[0] or "".
func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
