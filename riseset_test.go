package jyotiglide

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var providers = map[string]RiseSetProvider{
	"solver": SolverRiseSet{},
	"noaa":   NOAARiseSet{},
}

func TestDaylightHours(t *testing.T) {
	phoenix := Coordinates{Lat: 33.4484, Lon: -112.0740}

	locPHX, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)

	tests := []struct {
		name         string
		date         time.Time
		wantMinHours float64
		wantMaxHours float64
	}{
		{"Phoenix Summer Solstice", time.Date(2025, time.June, 21, 0, 0, 0, 0, locPHX), 14.0, 14.5},
		{"Phoenix Winter Solstice", time.Date(2025, time.December, 21, 0, 0, 0, 0, locPHX), 9.8, 10.2},
		{"Phoenix Spring Equinox", time.Date(2025, time.March, 20, 0, 0, 0, 0, locPHX), 11.9, 12.3},
	}

	for pname, p := range providers {
		for _, tt := range tests {
			t.Run(pname+"/"+tt.name, func(t *testing.T) {
				hours, err := DaylightHours(p, phoenix, tt.date)
				require.NoError(t, err)

				assert.GreaterOrEqual(t, hours, tt.wantMinHours)
				assert.LessOrEqual(t, hours, tt.wantMaxHours)
				t.Logf("%s: %.2f hours of daylight", tt.name, hours)
			})
		}
	}
}

func TestDaylightHours_Equator(t *testing.T) {
	quito := Coordinates{Lat: -0.1807, Lon: -78.4678}

	locQuito, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	dates := []time.Time{
		time.Date(2025, time.March, 20, 0, 0, 0, 0, locQuito),
		time.Date(2025, time.June, 21, 0, 0, 0, 0, locQuito),
		time.Date(2025, time.September, 22, 0, 0, 0, 0, locQuito),
		time.Date(2025, time.December, 21, 0, 0, 0, 0, locQuito),
	}

	for pname, p := range providers {
		for _, date := range dates {
			hours, err := DaylightHours(p, quito, date)
			require.NoError(t, err, "%s %s", pname, date.Format("2006-01-02"))

			// ~12 hours ± 15 minutes
			assert.Less(t, math.Abs(hours-12.0), 0.25, "%s %s", pname, date.Format("2006-01-02"))
		}
	}
}

func TestRiseSet_ProvidersAgree(t *testing.T) {
	locNY, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	nyc := Coordinates{Lat: 40.7128, Lon: -74.0060}
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locNY)

	a, err := SolverRiseSet{}.RiseSet(Sun, nyc, date)
	require.NoError(t, err)
	b, err := NOAARiseSet{}.RiseSet(Sun, nyc, date)
	require.NoError(t, err)

	assert.LessOrEqual(t, absDuration(a.Rise.Sub(b.Rise)), 3*time.Minute)
	assert.LessOrEqual(t, absDuration(a.Set.Sub(b.Set)), 3*time.Minute)
	assert.Equal(t, locNY, a.Rise.Location())
	assert.Equal(t, 30, b.Set.Day())
}

func TestSolverRiseSet_Elevation(t *testing.T) {
	locPHX, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, locPHX)

	ground := Coordinates{Lat: 33.4484, Lon: -112.0740}
	summit := ground
	summit.Elevation = 1000

	low, err := SolverRiseSet{}.RiseSet(Sun, ground, date)
	require.NoError(t, err)
	high, err := SolverRiseSet{}.RiseSet(Sun, summit, date)
	require.NoError(t, err)

	// A 1.1° dip moves each event by roughly 5 to 6 minutes at this latitude.
	assert.InDelta(t, 5.5, low.Rise.Sub(high.Rise).Minutes(), 1.5)
	assert.InDelta(t, 5.5, high.Set.Sub(low.Set).Minutes(), 1.5)

	// The NOAA provider has no elevation input.
	n1, err := NOAARiseSet{}.RiseSet(Sun, ground, date)
	require.NoError(t, err)
	n2, err := NOAARiseSet{}.RiseSet(Sun, summit, date)
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}

func TestRiseSet_PolarNight(t *testing.T) {
	longyearbyen := Coordinates{Lat: 78.2232, Lon: 15.6267}
	date := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)

	for pname, p := range providers {
		_, err := p.RiseSet(Sun, longyearbyen, date)
		assert.ErrorIs(t, err, ErrNoRiseNoSet, pname)

		_, err = CivilDay(p, longyearbyen, date)
		assert.ErrorIs(t, err, ErrNoRiseNoSet, pname)

		hours, err := DaylightHours(p, longyearbyen, date)
		assert.ErrorIs(t, err, ErrNoRiseNoSet, pname)
		assert.Zero(t, hours)
	}
}

func TestRiseSet_MoonNotSupported(t *testing.T) {
	for pname, p := range providers {
		_, err := p.RiseSet(Moon, Coordinates{}, epoch)
		assert.ErrorIs(t, err, ErrNotImplemented, pname)
	}
}

func TestCivilDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	delhi := Coordinates{Lat: 28.6139, Lon: 77.2090}

	w, err := CivilDay(SolverRiseSet{}, delhi, time.Date(2025, time.October, 2, 15, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, 2, w.Start.Day())
	assert.Equal(t, 3, w.End.Day())
	assert.InDelta(t, 6, w.Start.Hour(), 1)
	assert.InDelta(t, float64(24*time.Hour), float64(w.End.Sub(w.Start)), float64(2*time.Minute))
}
