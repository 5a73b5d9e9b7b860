package jyotiglide

import (
	"sync/atomic"
	"time"
)

// epoch is the reference instant for the synthetic ephemeris.
var epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// linearEphemeris moves the Sun and Moon at constant rates, so every
// boundary instant can be computed by hand.
type linearEphemeris struct {
	sun0, sunRate   float64 // degrees, degrees/day at epoch
	moon0, moonRate float64
	err             error
	calls           atomic.Int64
}

func (l *linearEphemeris) Longitude(body Body, t time.Time) (float64, error) {
	l.calls.Add(1)
	if l.err != nil {
		return 0, l.err
	}
	days := t.Sub(epoch).Hours() / 24
	if body == Sun {
		return l.sun0 + l.sunRate*days, nil
	}
	return l.moon0 + l.moonRate*days, nil
}

// at returns the instant `days` after epoch.
func at(days float64) time.Time {
	return epoch.Add(time.Duration(days * 24 * float64(time.Hour)))
}

type fixedAyanamsa float64

func (a fixedAyanamsa) Ayanamsa(time.Time) (float64, error) {
	return float64(a), nil
}

const (
	meanSunRate  = 0.9856
	meanMoonRate = 13.1764
)

func linearEngine(sun0, moon0 float64, opts ...Option) (*Engine, *Cache, *linearEphemeris) {
	eph := &linearEphemeris{sun0: sun0, sunRate: meanSunRate, moon0: moon0, moonRate: meanMoonRate}
	cache := NewCache(eph, fixedAyanamsa(0), WithCapacity(2000))
	return New(cache, opts...), cache, eph
}

func realEngine(opts ...Option) (*Engine, *Cache) {
	cache := NewCache(ApproxEphemeris{}, Lahiri{}, WithCapacity(5000))
	return New(cache, opts...), cache
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
