// Package ayanamsa computes the precession offset between the tropical
// zodiac and the fixed-star (sidereal) zodiac.
package ayanamsa

import (
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// LahiriJ2000 is the Lahiri (Chitrapaksha) ayanamsa at J2000.0, in degrees.
const LahiriJ2000 = 23.857092

// Lahiri returns the Lahiri ayanamsa in degrees at t: the J2000 value
// advanced by general precession in longitude (IAU 1976, arcseconds).
func Lahiri(t time.Time) float64 {
	T := timeutil.JulianCenturies(t)
	precession := 5028.796195*T + 1.1054348*T*T
	return LahiriJ2000 + precession/3600
}
