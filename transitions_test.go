package jyotiglide

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundaryTolerance = 2 * time.Second

func TestTransitions_MansionEndsWhereMoonLeavesIt(t *testing.T) {
	// Moon at 45° (Rohini, 40°–53°20′) moving 13.1764°/day.
	eng, _, _ := linearEngine(0, 45)

	trs, err := eng.Transitions(LunarMansion, epoch, epoch.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, trs, 2)

	wantStart := at(-5 / meanMoonRate)
	wantEnd := at((mansionWidth*4 - 45) / meanMoonRate)

	assert.Equal(t, 3, trs[0].Index)
	assert.Equal(t, "Rohini", trs[0].Name)
	assert.LessOrEqual(t, absDuration(trs[0].Start.Sub(wantStart)), boundaryTolerance)
	assert.LessOrEqual(t, absDuration(trs[0].End.Sub(wantEnd)), boundaryTolerance)

	assert.Equal(t, 4, trs[1].Index)
	assert.Equal(t, "Mrigashira", trs[1].Name)
	assert.True(t, trs[1].Start.Equal(trs[0].End))
	assert.True(t, trs[1].End.Equal(epoch.Add(24*time.Hour)))
}

func TestTransitions_ShortUnitsInsideOneDay(t *testing.T) {
	// Elongation grows 30°/day so three tithi boundaries fall in one day.
	eph := &linearEphemeris{moon0: 5, moonRate: 30}
	eng := New(NewCache(eph, fixedAyanamsa(0)))

	trs, err := eng.Transitions(LunarDay, epoch, epoch.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, trs, 4)

	for i, tr := range trs {
		assert.Equal(t, i, tr.Index)
	}
	for _, tr := range trs[1:3] {
		assert.LessOrEqual(t, absDuration(tr.Duration()-9*time.Hour-36*time.Minute), boundaryTolerance)
	}
	assert.LessOrEqual(t, absDuration(trs[2].End.Sub(at(27.0/30))), boundaryTolerance)
}

func TestTransitions_SolarSignSpansSeveralSearchWindows(t *testing.T) {
	eng, _, _ := linearEngine(25, 0)

	trs, err := eng.Transitions(SolarSign, epoch, at(40))
	require.NoError(t, err)
	require.Len(t, trs, 3)

	assert.Equal(t, []int{0, 1, 2}, []int{trs[0].Index, trs[1].Index, trs[2].Index})
	assert.LessOrEqual(t, absDuration(trs[0].Start.Sub(at(-25/meanSunRate))), boundaryTolerance)
	assert.LessOrEqual(t, absDuration(trs[0].End.Sub(at(5/meanSunRate))), boundaryTolerance)
	assert.LessOrEqual(t, absDuration(trs[1].End.Sub(at(35/meanSunRate))), boundaryTolerance)
	assert.True(t, trs[2].End.Equal(at(40)))
}

func TestTransitions_CoverWindowContiguously(t *testing.T) {
	eng, _ := realEngine()
	start := time.Date(2025, time.March, 1, 6, 30, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	for _, kind := range AllKinds {
		t.Run(kind.String(), func(t *testing.T) {
			trs, err := eng.Transitions(kind, start, end)
			require.NoError(t, err)
			require.NotEmpty(t, trs)

			assert.False(t, trs[0].Start.After(start))
			assert.True(t, trs[len(trs)-1].End.Equal(end))

			for i := 1; i < len(trs); i++ {
				prev, cur := trs[i-1], trs[i]
				assert.True(t, cur.Start.Equal(prev.End), "gap between %d and %d", i-1, i)
				assert.True(t, cur.Start.Before(cur.End))
				assert.Equal(t, (prev.Index+1)%kind.Count(), cur.Index)
			}
		})
	}
}

func TestTransitions_AgreeWithClassify(t *testing.T) {
	eng, _ := realEngine()
	start := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	for _, kind := range AllKinds {
		trs, err := eng.Transitions(kind, start, end)
		require.NoError(t, err)

		for tick := start; tick.Before(end); tick = tick.Add(37 * time.Minute) {
			for _, tr := range trs {
				if !tr.Contains(tick) {
					continue
				}
				// Instants within a few seconds of a boundary are ambiguous
				// at the search precision.
				if tick.Sub(tr.Start) < 5*time.Second || tr.End.Sub(tick) < 5*time.Second {
					break
				}
				idx, err := eng.Classify(kind, tick)
				require.NoError(t, err)
				assert.Equal(t, tr.Index, idx, "%s at %s", kind, tick)
				break
			}
		}
	}
}

func TestNextBoundary_IsARootOfTheBoundaryFunction(t *testing.T) {
	eng, _ := realEngine()
	from := time.Date(2024, time.November, 15, 12, 0, 0, 0, time.UTC)

	for _, kind := range AllKinds {
		idx, err := eng.Classify(kind, from)
		require.NoError(t, err)

		boundary, ok, err := eng.NextBoundary(kind, from)
		require.NoError(t, err)
		require.True(t, ok, kind.String())
		assert.True(t, boundary.After(from))

		v, err := eng.BoundaryFunc(kind, float64(idx+1)*kind.Width())(boundary)
		require.NoError(t, err)
		assert.Less(t, math.Abs(v), 0.01, kind.String())
	}
}

func TestTransitions_DeterministicAcrossCacheClears(t *testing.T) {
	eng, cache := realEngine()
	start := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)

	first, err := eng.Transitions(HalfLunarDay, start, end)
	require.NoError(t, err)

	cache.Clear()
	second, err := eng.Transitions(HalfLunarDay, start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTransitions_EmptyWindow(t *testing.T) {
	eng, _, eph := linearEngine(0, 45)

	trs, err := eng.Transitions(LunarDay, epoch, epoch)
	require.NoError(t, err)
	assert.Empty(t, trs)

	trs, err = eng.Transitions(LunarDay, epoch.Add(time.Hour), epoch)
	require.NoError(t, err)
	assert.Empty(t, trs)
	assert.Zero(t, eph.calls.Load())
}

func TestTransitions_UnknownKind(t *testing.T) {
	eng, _, _ := linearEngine(0, 45)

	_, err := eng.Transitions(UnitKind(9), epoch, epoch.Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestTransitions_NoCrossingIsNotAnError(t *testing.T) {
	// Stationary bodies never reach the next boundary.
	eph := &linearEphemeris{sun0: 10, moon0: 45}
	eng := New(NewCache(eph, fixedAyanamsa(0)))

	_, ok, err := eng.NextBoundary(LunarMansion, epoch)
	require.NoError(t, err)
	assert.False(t, ok)

	trs, err := eng.Transitions(LunarMansion, epoch, epoch.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, trs, 1)
	assert.True(t, trs[0].Start.Equal(epoch))
	assert.True(t, trs[0].End.Equal(epoch.Add(24*time.Hour)))
}

func TestTransitions_ProviderErrorPropagates(t *testing.T) {
	boom := errors.New("provider offline")
	eph := &linearEphemeris{err: boom}
	eng := New(NewCache(eph, fixedAyanamsa(0)))

	_, err := eng.Transitions(ZodiacSign, epoch, epoch.Add(time.Hour))
	assert.Equal(t, boom, err)
}

func TestTransitions_LegacyStrategyMatchesBracket(t *testing.T) {
	bracket, _, _ := linearEngine(0, 45)
	legacy, _, _ := linearEngine(0, 45, WithSearch(SearchConfig{Strategy: FixedWindowBisect}))

	want, err := bracket.Transitions(LunarMansion, epoch, epoch.Add(24*time.Hour))
	require.NoError(t, err)
	got, err := legacy.Transitions(LunarMansion, epoch, epoch.Add(24*time.Hour))
	require.NoError(t, err)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Index, got[i].Index)
		assert.LessOrEqual(t, absDuration(want[i].End.Sub(got[i].End)), boundaryTolerance)
	}
	assert.Equal(t, FixedWindowBisect, legacy.SearchConfig().Strategy)
}

func TestDay_PolarNightHasNoIntervals(t *testing.T) {
	eng, _ := realEngine()
	longyearbyen := Coordinates{Lat: 78.2232, Lon: 15.6267}
	date := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)

	day, err := eng.Day(SolverRiseSet{}, longyearbyen, date)
	require.NoError(t, err)

	assert.True(t, day.Window.Empty())
	require.Len(t, day.Kinds, len(AllKinds))
	for _, kt := range day.Kinds {
		assert.Empty(t, kt.Transitions, kt.Kind.String())
	}
}

func TestDay_SunriseToSunrise(t *testing.T) {
	eng, _ := realEngine()
	locPHX, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)
	phoenix := Coordinates{Lat: 33.4484, Lon: -112.0740}

	day, err := eng.Day(SolverRiseSet{}, phoenix, time.Date(2025, time.June, 21, 0, 0, 0, 0, locPHX))
	require.NoError(t, err)

	length := day.Window.End.Sub(day.Window.Start)
	assert.InDelta(t, 24*time.Hour, length, float64(2*time.Minute))

	for _, kt := range day.Kinds {
		require.NotEmpty(t, kt.Transitions, kt.Kind.String())
		last := kt.Transitions[len(kt.Transitions)-1]
		assert.True(t, last.End.Equal(day.Window.End))
	}
}
