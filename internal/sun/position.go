package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// Equatorial represents equatorial coordinates (right ascension and declination)
// in degrees. RA is in degrees (0–360).
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// ApparentLongitude returns the Sun's geocentric apparent ecliptic longitude
// (tropical, degrees in [0,360)) at t.
//
// Low-precision solar theory (Meeus ch. 25), good to about 0.01°:
//
//	L0 = geometric mean longitude
//	M  = mean anomaly
//	C  = equation of center
//	λ  = L0 + C - aberration - nutation
func ApparentLongitude(t time.Time) float64 {
	T := timeutil.JulianCenturies(t)

	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T

	C := (1.914602-0.004817*T-0.000014*T*T)*timeutil.SinD(M) +
		(0.019993-0.000101*T)*timeutil.SinD(2*M) +
		0.000289*timeutil.SinD(3*M)

	omega := 125.04 - 1934.136*T
	lambda := L0 + C - 0.00569 - 0.00478*timeutil.SinD(omega)

	return timeutil.Normalize360(lambda)
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees.
func meanObliquity(T float64) float64 {
	return 23.439291 - 0.0130042*T
}

// GeocentricEquatorialApprox returns an approximate geocentric RA/Dec for the Sun
// at the given time t, derived from its apparent longitude (latitude taken as 0).
func GeocentricEquatorialApprox(t time.Time) Equatorial {
	T := timeutil.JulianCenturies(t)

	L := timeutil.Deg2Rad(ApparentLongitude(t))
	eps := timeutil.Deg2Rad(meanObliquity(T))

	x := math.Cos(L)
	y := math.Cos(eps) * math.Sin(L)
	z := math.Sin(eps) * math.Sin(L)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(z)

	return Equatorial{
		RA:  timeutil.Rad2Deg(ra),
		Dec: timeutil.Rad2Deg(dec),
	}
}
