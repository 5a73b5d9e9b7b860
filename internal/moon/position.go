package moon

import (
	"time"

	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// term is one periodic term of the lunar longitude series: multiples of
// D, M, M', F and the amplitude in millionths of a degree.
type term struct {
	d, m, mp, f int
	l           float64
}

// longitudeTerms are the leading terms of the ELP-2000/82 longitude series
// as tabulated by Meeus (table 47.A), largest first. Truncating here keeps
// the error around 10 arcseconds, far below a minute of lunar motion.
var longitudeTerms = []term{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
	{4, 0, 0, 0, 3861},
	{2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689},
	{2, 0, -1, 2, -2602},
	{2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348},
	{2, -2, 0, 0, 2236},
	{0, 1, 2, 0, -2120},
	{0, 2, 0, 0, -2069},
	{2, -2, -1, 0, 2048},
	{2, 0, 1, -2, -1773},
	{2, 0, 0, 2, -1595},
	{4, -1, -1, 0, 1215},
	{0, 0, 2, 2, -1110},
	{3, 0, -1, 0, -892},
	{2, 1, 1, 0, -810},
	{4, -1, -2, 0, 759},
	{0, 2, -1, 0, -713},
	{2, 2, -1, 0, -700},
	{2, 1, -2, 0, 691},
	{2, -1, 0, -2, 596},
	{4, 0, 1, 0, 549},
	{0, 0, 4, 0, 537},
	{4, -1, 0, 0, 520},
	{1, 0, -2, 0, -487},
}

// ApparentLongitude returns the Moon's geocentric apparent ecliptic
// longitude (tropical, degrees in [0,360)) at t.
//
// Fundamental arguments (Meeus ch. 47):
//
//	L'  = mean longitude of the Moon
//	D   = mean elongation of the Moon from the Sun
//	M   = mean anomaly of the Sun
//	M'  = mean anomaly of the Moon
//	F   = argument of latitude of the Moon
func ApparentLongitude(t time.Time) float64 {
	T := timeutil.JulianCenturies(t)
	T2 := T * T
	T3 := T2 * T
	T4 := T3 * T

	Lp := 218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000
	D := 297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000
	M := 357.5291092 + 35999.0502909*T - 0.0001536*T2 + T3/24490000
	Mp := 134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000
	F := 93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000

	Lp = timeutil.Normalize360(Lp)
	D = timeutil.Normalize360(D)
	M = timeutil.Normalize360(M)
	Mp = timeutil.Normalize360(Mp)
	F = timeutil.Normalize360(F)

	// Eccentricity of Earth's orbit scales terms involving M.
	E := 1 - 0.002516*T - 0.0000074*T2

	var sumL float64
	for _, tm := range longitudeTerms {
		arg := float64(tm.d)*D + float64(tm.m)*M + float64(tm.mp)*Mp + float64(tm.f)*F
		amp := tm.l
		switch tm.m {
		case 1, -1:
			amp *= E
		case 2, -2:
			amp *= E * E
		}
		sumL += amp * timeutil.SinD(arg)
	}

	// Venus, Jupiter and Earth-flattening corrections.
	A1 := 119.75 + 131.849*T
	A2 := 53.09 + 479264.290*T
	sumL += 3958*timeutil.SinD(A1) + 1962*timeutil.SinD(Lp-F) + 318*timeutil.SinD(A2)

	lambda := Lp + sumL/1e6

	return timeutil.Normalize360(lambda + nutationLongitude(T, Lp))
}

// nutationLongitude returns Δψ in degrees from its four largest terms.
func nutationLongitude(T, moonMeanLon float64) float64 {
	omega := 125.04452 - 1934.136261*T
	L := 280.4665 + 36000.7698*T

	arcsec := -17.20*timeutil.SinD(omega) -
		1.32*timeutil.SinD(2*L) -
		0.23*timeutil.SinD(2*moonMeanLon) +
		0.21*timeutil.SinD(2*omega)

	return arcsec / 3600
}
