package jyotiglide

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/thurmanmarka/jyotiglide/internal/ayanamsa"
	"github.com/thurmanmarka/jyotiglide/internal/moon"
	"github.com/thurmanmarka/jyotiglide/internal/sun"
	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// Provider evaluates the geocentric apparent tropical ecliptic longitude of
// a body, in degrees.
type Provider interface {
	Longitude(body Body, t time.Time) (float64, error)
}

// AyanamsaProvider returns the precession offset, in degrees, that is
// subtracted from a tropical longitude to obtain a sidereal one.
type AyanamsaProvider interface {
	Ayanamsa(t time.Time) (float64, error)
}

// ApproxEphemeris is the built-in Provider: a low-precision solar theory and
// a truncated ELP lunar series. Lunar longitudes are good to roughly 10
// arcseconds, which moves unit boundaries by well under a minute.
type ApproxEphemeris struct{}

// Longitude implements Provider.
func (ApproxEphemeris) Longitude(body Body, t time.Time) (float64, error) {
	switch body {
	case Sun:
		return sun.ApparentLongitude(t), nil
	case Moon:
		return moon.ApparentLongitude(t), nil
	default:
		return 0, fmt.Errorf("longitude for %v: %w", body, ErrNotImplemented)
	}
}

// Lahiri is the built-in AyanamsaProvider (Chitrapaksha).
type Lahiri struct{}

// Ayanamsa implements AyanamsaProvider.
func (Lahiri) Ayanamsa(t time.Time) (float64, error) {
	return ayanamsa.Lahiri(t), nil
}

// Sample is one ephemeris evaluation. Time is the instant rounded to the
// nearest second that the values were computed for.
type Sample struct {
	Time         time.Time
	SunTropical  float64
	MoonTropical float64
	Ayanamsa     float64
}

// SunSidereal returns the Sun's sidereal longitude in [0,360).
func (s Sample) SunSidereal() float64 {
	return timeutil.Normalize360(s.SunTropical - s.Ayanamsa)
}

// MoonSidereal returns the Moon's sidereal longitude in [0,360).
func (s Sample) MoonSidereal() float64 {
	return timeutil.Normalize360(s.MoonTropical - s.Ayanamsa)
}

// Elongation returns how far the Moon is ahead of the Sun, in [0,360).
// The ayanamsa cancels, so this is frame independent.
func (s Sample) Elongation() float64 {
	return timeutil.ForwardDiff(s.SunTropical, s.MoonTropical)
}

// Sampler supplies ephemeris samples. *Cache is the standard implementation.
type Sampler interface {
	Sample(t time.Time) (Sample, error)
}

// DefaultCacheCapacity is the number of per-second samples a Cache keeps.
const DefaultCacheCapacity = 500

// Cache memoizes ephemeris samples keyed by the instant rounded to the
// nearest second, evicting the least recently used entry once full.
// All methods are safe for concurrent use.
type Cache struct {
	provider Provider
	ayanamsa AyanamsaProvider
	logger   *slog.Logger

	capacity int
	entries  *lru.Cache[int64, Sample]
	clearing atomic.Bool

	flight       singleflight.Group
	computations atomic.Uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCapacity bounds the number of cached samples. Values below 1 are
// treated as 1.
func WithCapacity(n int) CacheOption {
	return func(c *Cache) {
		c.capacity = max(n, 1)
	}
}

// WithCacheLogger sets the logger used for eviction and clear events.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCache creates an empty cache in front of p and a.
func NewCache(p Provider, a AyanamsaProvider, opts ...CacheOption) *Cache {
	c := &Cache{
		provider: p,
		ayanamsa: a,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		capacity: DefaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}

	entries, err := lru.NewWithEvict(c.capacity, c.onEvicted)
	if err != nil {
		// Only reachable with a non-positive size, which WithCapacity rules out.
		panic(fmt.Sprintf("jyotiglide: ephemeris cache: %v", err))
	}
	c.entries = entries
	return c
}

func (c *Cache) onEvicted(key int64, _ Sample) {
	if c.clearing.Load() {
		return
	}
	c.logger.Debug("ephemeris cache evicted entry",
		"at", time.Unix(key, 0).UTC(), "capacity", c.capacity)
}

// Sample returns the ephemeris sample for t rounded to the nearest second.
// On a miss the provider is called once per body and once for the ayanamsa;
// provider errors are returned unchanged and nothing is cached.
func (c *Cache) Sample(t time.Time) (Sample, error) {
	at := t.Round(time.Second)
	key := at.Unix()

	if s, ok := c.lookup(key); ok {
		return s, nil
	}

	v, err, _ := c.flight.Do(strconv.FormatInt(key, 10), func() (any, error) {
		// A flight that finished just before this one may have stored it.
		if s, ok := c.lookup(key); ok {
			return s, nil
		}

		c.computations.Add(1)
		s, err := c.compute(at)
		if err != nil {
			return nil, err
		}

		c.entries.Add(key, s)
		return s, nil
	})
	if err != nil {
		return Sample{}, err
	}
	return v.(Sample), nil
}

func (c *Cache) lookup(key int64) (Sample, bool) {
	return c.entries.Get(key)
}

func (c *Cache) compute(at time.Time) (Sample, error) {
	sunLon, err := c.provider.Longitude(Sun, at)
	if err != nil {
		return Sample{}, err
	}
	moonLon, err := c.provider.Longitude(Moon, at)
	if err != nil {
		return Sample{}, err
	}
	ay, err := c.ayanamsa.Ayanamsa(at)
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Time:         at,
		SunTropical:  timeutil.Normalize360(sunLon),
		MoonTropical: timeutil.Normalize360(moonLon),
		Ayanamsa:     ay,
	}, nil
}

// Computations returns how many cache misses have triggered a provider
// evaluation since the cache was created.
func (c *Cache) Computations() uint64 {
	return c.computations.Load()
}

// Len returns the number of cached samples.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Clear drops every cached sample. The computation counter keeps counting.
func (c *Cache) Clear() {
	c.clearing.Store(true)
	n := c.entries.Len()
	c.entries.Purge()
	c.clearing.Store(false)

	c.logger.Debug("ephemeris cache cleared", "dropped", n)
}
