package timeutil

import (
	"math"
	"time"
)

// -----------------------------
// Time relative to J2000
// -----------------------------

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// SecondsPerDay is the length of a civil day without leap seconds.
const SecondsPerDay = 86400

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// UTC is used in place of TT. The ~69s difference shifts lunar longitude
// by well under an arcminute, which is below what the truncated series
// resolve anyway.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Seconds() / SecondsPerDay
}

// JulianDay returns the Julian day number (with fraction) of t.
func JulianDay(t time.Time) float64 {
	return 2451545.0 + DaysSinceJ2000(t)
}

// JulianCenturies returns centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - 2451545.0) / 36525.0
}

// DaysToDuration converts a fractional day count to a duration rounded to
// the nearest second.
func DaysToDuration(days float64) time.Duration {
	return time.Duration(math.Round(days*SecondsPerDay)) * time.Second
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

// -----------------------------
// Angle arithmetic on the 0°/360° circle.
// -----------------------------

// Normalize360 reduces d to [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod(-1e-15, 360) + 360 rounds to exactly 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// ForwardDiff returns how far one travels from `from` to reach `to` moving
// in the direction of increasing angle, in [0, 360).
func ForwardDiff(from, to float64) float64 {
	return Normalize360(to - from)
}

// SeamAdjust shifts current by ±360 so that it lies within 180° of target.
// A function of the form SeamAdjust(x(t), target) - target then changes
// sign exactly where x(t) passes target, even when target sits next to the
// 0°/360° seam.
func SeamAdjust(current, target float64) float64 {
	switch {
	case current > target+180:
		return current - 360
	case current < target-180:
		return current + 360
	default:
		return current
	}
}
