package jyotiglide

import (
	"io"
	"log/slog"
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/solver"
	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// SearchStrategy selects the zero-crossing algorithm used for boundaries.
type SearchStrategy int

const (
	// BracketBisect steps in coarse increments until the sign changes,
	// then bisects to the configured precision.
	BracketBisect SearchStrategy = iota
	// FixedWindowBisect compares the two ends of a fixed 48h window and
	// bisects 20 times. Kept for comparison with older results.
	FixedWindowBisect
)

func (s SearchStrategy) String() string {
	if s == FixedWindowBisect {
		return "legacy"
	}
	return "bracket"
}

// legacyWindow is the fixed span of FixedWindowBisect.
const legacyWindow = 48 * time.Hour

// SearchConfig tunes boundary searches.
type SearchConfig struct {
	Step      time.Duration
	Window    time.Duration
	Precision time.Duration
	MaxIter   int
	Strategy  SearchStrategy
}

// DefaultSearchConfig returns 2h steps over a 48h window, bisected to 1s
// or 25 iterations.
func DefaultSearchConfig() SearchConfig {
	d := solver.DefaultOptions()
	return SearchConfig{
		Step:      d.Step,
		Window:    d.Window,
		Precision: d.Precision,
		MaxIter:   d.MaxIter,
		Strategy:  BracketBisect,
	}
}

// Engine locates calendar-unit boundaries. It holds no mutable state of its
// own; all memoization lives in the Sampler.
type Engine struct {
	sampler     Sampler
	search      SearchConfig
	monthOffset float64
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSearch overrides the search configuration. Zero fields keep their defaults.
func WithSearch(cfg SearchConfig) Option {
	return func(e *Engine) {
		d := DefaultSearchConfig()
		if cfg.Step <= 0 {
			cfg.Step = d.Step
		}
		if cfg.Window <= 0 {
			cfg.Window = d.Window
		}
		if cfg.Precision <= 0 {
			cfg.Precision = d.Precision
		}
		if cfg.MaxIter <= 0 {
			cfg.MaxIter = d.MaxIter
		}
		e.search = cfg
	}
}

// WithMonthSignOffset overrides DefaultMonthSignOffset.
func WithMonthSignOffset(deg float64) Option {
	return func(e *Engine) {
		e.monthOffset = deg
	}
}

// WithLogger sets the engine's logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Engine reading ephemeris data from s.
func New(s Sampler, opts ...Option) *Engine {
	e := &Engine{
		sampler:     s,
		search:      DefaultSearchConfig(),
		monthOffset: DefaultMonthSignOffset,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SearchConfig returns the active search configuration.
func (e *Engine) SearchConfig() SearchConfig {
	return e.search
}

// Sample exposes the engine's sampler.
func (e *Engine) Sample(t time.Time) (Sample, error) {
	return e.sampler.Sample(t)
}

// Classify returns the unit index of kind in effect at t.
func (e *Engine) Classify(kind UnitKind, t time.Time) (int, error) {
	if !validKind(kind) {
		return 0, ErrUnknownKind
	}
	s, err := e.sampler.Sample(t)
	if err != nil {
		return 0, err
	}
	return kind.Index(s), nil
}

// BoundaryFunc returns a search function for the instant kind's angle
// reaches target degrees: negative before, positive after, seam-adjusted so
// a target of 0° behaves like any other.
func (e *Engine) BoundaryFunc(kind UnitKind, target float64) func(time.Time) (float64, error) {
	target = timeutil.Normalize360(target)
	return func(t time.Time) (float64, error) {
		s, err := e.sampler.Sample(t)
		if err != nil {
			return 0, err
		}
		return timeutil.SeamAdjust(kind.Angle(s), target) - target, nil
	}
}

// NextBoundary returns the instant the unit in effect at t ends. ok is
// false when no boundary turns up within the longest span the unit can last.
func (e *Engine) NextBoundary(kind UnitKind, t time.Time) (end time.Time, ok bool, err error) {
	idx, err := e.Classify(kind, t)
	if err != nil {
		return time.Time{}, false, err
	}
	return e.unitEnd(kind, idx, t, t.Add(maxSpan(kind)))
}

// UnitStart returns the instant the unit in effect at t began.
func (e *Engine) UnitStart(kind UnitKind, t time.Time) (start time.Time, ok bool, err error) {
	idx, err := e.Classify(kind, t)
	if err != nil {
		return time.Time{}, false, err
	}
	target := float64(idx) * kind.Width()
	return e.scan(e.BoundaryFunc(kind, target), t, t.Add(-maxSpan(kind)), solver.Backward)
}

// unitEnd searches forward from `from` until `limit` for the end of unit idx.
func (e *Engine) unitEnd(kind UnitKind, idx int, from, limit time.Time) (time.Time, bool, error) {
	target := float64(idx+1) * kind.Width()
	return e.scan(e.BoundaryFunc(kind, target), from, limit, solver.Forward)
}

// maxSpan bounds how long one unit of kind can last.
func maxSpan(kind UnitKind) time.Duration {
	switch kind {
	case SolarSign:
		return 32 * 24 * time.Hour
	case ZodiacSign:
		return 3 * 24 * time.Hour
	default:
		return 2 * 24 * time.Hour
	}
}

// scan repeats the configured search from `from` toward `limit`, one search
// window at a time, until a crossing is found or limit is passed.
func (e *Engine) scan(f solver.Func, from, limit time.Time, dir solver.Direction) (time.Time, bool, error) {
	window := e.window()
	cursor := from
	for {
		res, err := e.find(f, cursor, dir)
		if err != nil {
			return time.Time{}, false, err
		}
		if res.OK {
			return res.Time, true, nil
		}

		if dir == solver.Backward {
			cursor = cursor.Add(-window)
			if !cursor.After(limit) {
				break
			}
		} else {
			cursor = cursor.Add(window)
			if !cursor.Before(limit) {
				break
			}
		}
	}

	e.logger.Debug("no boundary crossing found",
		"from", from, "limit", limit, "strategy", e.search.Strategy)
	return time.Time{}, false, nil
}

func (e *Engine) window() time.Duration {
	if e.search.Strategy == FixedWindowBisect {
		return legacyWindow
	}
	return e.search.Window
}

// find runs one search window in the given direction.
func (e *Engine) find(f solver.Func, from time.Time, dir solver.Direction) (solver.Result, error) {
	if e.search.Strategy == FixedWindowBisect {
		if dir == solver.Backward {
			return solver.LegacyBisect(f, from.Add(-legacyWindow))
		}
		return solver.LegacyBisect(f, from)
	}

	return solver.Search(f, from, solver.Options{
		Step:      e.search.Step,
		Window:    e.search.Window,
		Precision: e.search.Precision,
		MaxIter:   e.search.MaxIter,
		Direction: dir,
		Event:     solver.CrossingUp,
	})
}
