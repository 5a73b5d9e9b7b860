package jyotiglide

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/jyotiglide/internal/sun"
)

// RiseSet holds rise and set times of a body on a given date.
type RiseSet struct {
	Rise time.Time `json:"rise" toml:"rise"`
	Set  time.Time `json:"set" toml:"set"`
}

// RiseSetProvider finds rise and set times of a body on the local calendar
// date of `date` (its Location defines the day). Implementations return
// ErrNoRiseNoSet when neither event happens, and leave the missing field
// zero when only one does.
type RiseSetProvider interface {
	RiseSet(body Body, loc Coordinates, date time.Time) (RiseSet, error)
}

// SolverRiseSet is the built-in provider: it bisects the Sun's computed
// altitude against the standard -0.833° horizon, lowered by the dip of the
// visible horizon when the observer has a positive Elevation.
type SolverRiseSet struct{}

// RiseSet implements RiseSetProvider. Only the Sun is supported.
func (SolverRiseSet) RiseSet(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	if body != Sun {
		return RiseSet{}, fmt.Errorf("rise/set for %v: %w", body, ErrNotImplemented)
	}

	locTZ := date.Location()

	// Delegate to internal/sun which returns UTC times + flags.
	zenith := sun.StandardZenith + sun.HorizonDip(loc.Elevation)
	sunriseUTC, sunsetUTC, okRise, okSet := sun.RiseSetForDate(loc.Lat, loc.Lon, date, zenith)
	if !okRise && !okSet {
		return RiseSet{}, ErrNoRiseNoSet
	}

	var rs RiseSet
	if okRise {
		rs.Rise = sunriseUTC.In(locTZ)
	}
	if okSet {
		rs.Set = sunsetUTC.In(locTZ)
	}
	return rs, nil
}

// NOAARiseSet computes sunrise and sunset with the NOAA algorithm from
// github.com/nathan-osman/go-sunrise. It ignores Coordinates.Elevation.
type NOAARiseSet struct{}

// RiseSet implements RiseSetProvider. Only the Sun is supported.
func (NOAARiseSet) RiseSet(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	if body != Sun {
		return RiseSet{}, fmt.Errorf("rise/set for %v: %w", body, ErrNotImplemented)
	}

	locTZ := date.Location()
	year, month, day := date.Date()

	// go-sunrise works on UTC dates. A local day can straddle two of them,
	// so look at the neighbours and keep the events that land on `date`.
	var rs RiseSet
	for offset := -1; offset <= 1; offset++ {
		d := time.Date(year, month, day+offset, 12, 0, 0, 0, time.UTC)
		rise, set := sunrise.SunriseSunset(loc.Lat, loc.Lon, d.Year(), d.Month(), d.Day())

		if !rise.IsZero() && rs.Rise.IsZero() && sameLocalDate(rise.In(locTZ), year, month, day) {
			rs.Rise = rise.In(locTZ)
		}
		if !set.IsZero() && rs.Set.IsZero() && sameLocalDate(set.In(locTZ), year, month, day) {
			rs.Set = set.In(locTZ)
		}
	}

	if rs.Rise.IsZero() && rs.Set.IsZero() {
		return RiseSet{}, ErrNoRiseNoSet
	}
	return rs, nil
}

func sameLocalDate(t time.Time, year int, month time.Month, day int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day
}

// CivilDay returns the sunrise-to-next-sunrise window beginning on the local
// date of `date`. If the Sun does not rise on either day the window is empty
// and ErrNoRiseNoSet is returned.
func CivilDay(p RiseSetProvider, loc Coordinates, date time.Time) (Window, error) {
	year, month, day := date.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	tomorrow := time.Date(year, month, day+1, 0, 0, 0, 0, date.Location())

	rs1, err := p.RiseSet(Sun, loc, today)
	if err != nil {
		return Window{}, err
	}
	rs2, err := p.RiseSet(Sun, loc, tomorrow)
	if err != nil {
		return Window{}, err
	}
	if rs1.Rise.IsZero() || rs2.Rise.IsZero() {
		return Window{}, ErrNoRiseNoSet
	}

	return Window{Start: rs1.Rise, End: rs2.Rise}, nil
}

// DaylightHours calculates the duration of daylight (time between sunrise and
// sunset) for the Sun at the given location and date.
//
// If the sun does not rise or set on the given date (e.g., polar regions), it
// returns 0 and ErrNoRiseNoSet.
func DaylightHours(p RiseSetProvider, loc Coordinates, date time.Time) (float64, error) {
	rs, err := p.RiseSet(Sun, loc, date)
	if err != nil {
		return 0, err
	}
	if rs.Rise.IsZero() || rs.Set.IsZero() {
		return 0, ErrNoRiseNoSet
	}
	return rs.Set.Sub(rs.Rise).Hours(), nil
}
