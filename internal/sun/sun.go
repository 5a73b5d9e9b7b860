package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/solver"
	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// StandardZenith is the commonly used zenith angle (in degrees) for sunrise/sunset:
// 90°50' ≈ 90.833°, accounting for refraction + Sun's apparent radius.
const StandardZenith = 90.833

// HorizonDip returns how far below the astronomical horizon, in degrees, an
// observer at elevationM meters above the surrounding terrain sees the
// visible horizon. It is zero at or below sea level.
func HorizonDip(elevationM float64) float64 {
	if elevationM <= 0 {
		return 0
	}
	return 0.0347 * math.Sqrt(elevationM)
}

// RiseSetForDate computes sunrise and sunset for the Sun on the given calendar date
// for an observer at lat, lon (degrees). Returned times are in UTC.
// `zenith` is in degrees; for standard sunrise/sunset use StandardZenith.
func RiseSetForDate(lat, lon float64, date time.Time, zenith float64) (sunriseUTC, sunsetUTC time.Time, okRise, okSet bool) {
	loc := date.Location()
	year, month, day := date.Date()

	startLocal := time.Date(year, month, day, 0, 0, 0, 0, loc)
	endLocal := startLocal.Add(24 * time.Hour)

	// Target altitude: h = 90° - Z.
	targetAlt := 90.0 - zenith

	altFunc := func(t time.Time) (float64, error) {
		return apparentAltitude(lat, lon, t), nil
	}

	const (
		steps = 48 // samples across the day (every 30 minutes)
		tol   = 30 * time.Second
	)

	// altFunc never fails, so the errors are always nil.
	riseRes, _ := solver.FindEvent(altFunc, startLocal, endLocal, targetAlt, solver.CrossingUp, steps, tol)
	if riseRes.OK {
		sunriseUTC = riseRes.Time.UTC()
		okRise = true
	}

	setRes, _ := solver.FindEvent(altFunc, startLocal, endLocal, targetAlt, solver.CrossingDown, steps, tol)
	if setRes.OK {
		sunsetUTC = setRes.Time.UTC()
		okSet = true
	}

	return sunriseUTC, sunsetUTC, okRise, okSet
}

// apparentAltitude computes the Sun's approximate geometric altitude (in degrees)
// at geographic location (lat, lon) at time t, using the solar RA/Dec model and
// a simple sidereal time approximation.
func apparentAltitude(lat, lon float64, t time.Time) float64 {
	eq := GeocentricEquatorialApprox(t)

	raRad := timeutil.Deg2Rad(eq.RA)
	decRad := timeutil.Deg2Rad(eq.Dec)
	latRad := timeutil.Deg2Rad(lat)

	// Local sidereal time
	d := timeutil.DaysSinceJ2000(t)
	gmst := 280.46061837 + 360.98564736629*d
	lstRad := timeutil.Deg2Rad(timeutil.Normalize360(gmst + lon))

	// Hour angle H = LST - RA, normalized to (-π, π]
	H := math.Remainder(lstRad-raRad, 2*math.Pi)

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(H)
	return timeutil.Rad2Deg(math.Asin(sinAlt))
}
