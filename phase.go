package jyotiglide

import (
	"math"
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time       time.Time `json:"time" toml:"time"`             // the instant this phase is evaluated at
	Fraction   float64   `json:"fraction" toml:"fraction"`     // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64   `json:"elongation" toml:"elongation"` // Moon ahead of Sun in ecliptic longitude, degrees [0..360)
	Waxing     bool      `json:"waxing" toml:"waxing"`         // true in the bright fortnight (Shukla paksha)
	Paksha     string    `json:"paksha" toml:"paksha"`
	Name       string    `json:"name" toml:"name"` // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhase derives the phase from the ecliptic elongation. Latitude is
// ignored, so the fraction is approximate near eclipses, which is fine for
// naming.
func (e *Engine) MoonPhase(t time.Time) (MoonPhase, error) {
	s, err := e.sampler.Sample(t)
	if err != nil {
		return MoonPhase{}, err
	}

	elong := s.Elongation()
	fraction := 0.5 * (1 - timeutil.CosD(elong))
	fraction = math.Max(0, math.Min(1, fraction))
	waxing := elong < 180

	paksha := "Krishna"
	if waxing {
		paksha = "Shukla"
	}

	return MoonPhase{
		Time:       t,
		Fraction:   fraction,
		Elongation: elong,
		Waxing:     waxing,
		Paksha:     paksha,
		Name:       classifyMoonPhaseName(fraction, waxing),
	}, nil
}

func classifyMoonPhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
