package jyotiglide

import (
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/solver"
	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

const (
	// MeanElongationRate is the mean rate at which the Moon pulls ahead of
	// the Sun, in degrees per day.
	MeanElongationRate = 12.19

	// SynodicMonth is the mean new-moon to new-moon interval in days.
	SynodicMonth = 29.530588

	// DefaultMonthSignOffset is added to the Sun's sidereal longitude before
	// its sign is read at a new moon. It is an empirical calibration that
	// lines month names up with published Lahiri calendars near sign
	// boundaries, not a derived quantity.
	//
	// TODO: re-derive against an authoritative Lahiri ephemeris and drop
	// the offset if the ayanamsa polynomial already accounts for it.
	DefaultMonthSignOffset = 0.2
)

var monthNames = [12]string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada",
	"Ashwin", "Kartika", "Margashirsha", "Pausha", "Magha", "Phalguna",
}

// MonthName returns the amanta lunar month name for index 0–11.
func MonthName(i int) string {
	return monthNames[((i%12)+12)%12]
}

// LunarMonth is the new-moon to new-moon month containing a reference
// instant, named after the solar sign the Sun occupies at its first new moon.
type LunarMonth struct {
	Index         int       `json:"index" toml:"index"`
	Name          string    `json:"name" toml:"name"`
	IsIntercalary bool      `json:"intercalary" toml:"intercalary"` // adhika: no solar sign change during the month
	IsExpunged    bool      `json:"expunged" toml:"expunged"`       // kshaya: the Sun crossed two sign boundaries
	Anchor        time.Time `json:"anchor" toml:"anchor"`           // new moon opening the month
	NextAnchor    time.Time `json:"next_anchor" toml:"next_anchor"` // new moon closing it
	SunSign       int       `json:"sun_sign" toml:"sun_sign"`
	NextSunSign   int       `json:"next_sun_sign" toml:"next_sun_sign"`
}

// DisplayName prefixes the month name with Adhika for intercalary months.
func (m LunarMonth) DisplayName() string {
	if m.IsIntercalary {
		return "Adhika " + m.Name
	}
	return m.Name
}

// LunarMonth returns the lunar month in effect at t.
func (e *Engine) LunarMonth(t time.Time) (LunarMonth, error) {
	anchor, err := e.NewMoonBefore(t)
	if err != nil {
		return LunarMonth{}, err
	}
	next, err := e.NewMoonAfter(anchor)
	if err != nil {
		return LunarMonth{}, err
	}

	s1, err := e.sampler.Sample(anchor)
	if err != nil {
		return LunarMonth{}, err
	}
	s2, err := e.sampler.Sample(next)
	if err != nil {
		return LunarMonth{}, err
	}

	sign1 := e.monthSign(s1)
	sign2 := e.monthSign(s2)
	advance := (sign2 - sign1 + 12) % 12
	idx := (sign1 + 1) % 12

	return LunarMonth{
		Index:         idx,
		Name:          MonthName(idx),
		IsIntercalary: advance == 0,
		IsExpunged:    advance >= 2,
		Anchor:        anchor,
		NextAnchor:    next,
		SunSign:       sign1,
		NextSunSign:   sign2,
	}, nil
}

func (e *Engine) monthSign(s Sample) int {
	return ZodiacSignIndex(s.SunSidereal() + e.monthOffset)
}

// NewMoonBefore returns the last new moon at or before t.
func (e *Engine) NewMoonBefore(t time.Time) (time.Time, error) {
	s, err := e.sampler.Sample(t)
	if err != nil {
		return time.Time{}, err
	}

	daysBack := s.Elongation() / MeanElongationRate
	nm, err := e.newMoonNear(t.Add(-timeutil.DaysToDuration(daysBack)))
	if err != nil {
		return time.Time{}, err
	}

	// The mean rate can overshoot by a fraction of a day; the anchor must
	// not lie after t by more than the search precision.
	if nm.After(t.Add(e.search.Precision)) {
		return e.newMoonNear(nm.Add(-timeutil.DaysToDuration(SynodicMonth)))
	}
	return nm, nil
}

// NewMoonAfter returns the new moon following the one at anchor.
func (e *Engine) NewMoonAfter(anchor time.Time) (time.Time, error) {
	return e.newMoonNear(anchor.Add(timeutil.DaysToDuration(SynodicMonth)))
}

// newMoonNear finds the elongation-zero crossing within a day of estimate,
// widening to three days before giving up.
func (e *Engine) newMoonNear(estimate time.Time) (time.Time, error) {
	f := e.BoundaryFunc(LunarDay, 0)

	for _, half := range []time.Duration{24 * time.Hour, 72 * time.Hour} {
		from := estimate.Add(-half)
		res, err := solver.Search(f, from, solver.Options{
			Step:      e.search.Step,
			Window:    2 * half,
			Precision: e.search.Precision,
			MaxIter:   e.search.MaxIter,
			Direction: solver.Forward,
			Event:     solver.CrossingUp,
		})
		if err != nil {
			return time.Time{}, err
		}
		if res.OK {
			return res.Time, nil
		}
		e.logger.Debug("new moon not bracketed, widening search",
			"estimate", estimate, "half_window", half)
	}

	return time.Time{}, ErrNewMoonNotFound
}
