// Package jyotiglide derives discrete sidereal calendar units from the
// continuous motion of the Sun and Moon: tithi, nakshatra, yoga, karana and
// rashi, the lunar month with intercalary (adhika) detection, and the
// Vimshottari dasha period hierarchy.
//
// The heart of the package is a time-boundary search engine. Angular
// quantities such as the Sun–Moon elongation have no natural edges, so each
// unit boundary is located by bracketing and bisecting a zero crossing of a
// seam-adjusted angle function. Enumerating consecutive boundaries yields
// gap-free, non-overlapping intervals even when a unit is skipped or
// repeated within a civil day.
//
// Every operation takes explicit instants; nothing reads the wall clock.
// Ephemeris evaluation goes through a Sampler, normally a *Cache wrapping a
// Provider, so results for the same second are computed once:
//
//	cache := jyotiglide.NewCache(jyotiglide.ApproxEphemeris{}, jyotiglide.Lahiri{})
//	eng := jyotiglide.New(cache)
//	spans, err := eng.Transitions(jyotiglide.LunarDay, sunrise, nextSunrise)
package jyotiglide

import (
	"errors"
	"time"
)

// Body represents a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	default:
		return "unknown"
	}
}

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 // meters above the surrounding terrain; widens the day in SolverRiseSet
}

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time `json:"start" toml:"start"`
	End   time.Time `json:"end" toml:"end"`
}

// Empty reports whether the window contains no time at all.
func (w Window) Empty() bool {
	return !w.Start.Before(w.End)
}

var (
	// ErrNoRiseNoSet is returned when a body does not rise or set on that date at that location.
	ErrNoRiseNoSet = errors.New("body does not rise or set on this date")

	// ErrNotImplemented is returned when that body isn't supported (yet).
	ErrNotImplemented = errors.New("not implemented for this body yet")

	// ErrUnknownKind is returned for a UnitKind outside the defined set.
	ErrUnknownKind = errors.New("unknown calendar unit kind")

	// ErrNewMoonNotFound is returned when no elongation-zero crossing can be
	// bracketed near the expected new moon.
	ErrNewMoonNotFound = errors.New("new moon not found near estimate")
)
