package main

import (
	"math"
	"time"
)

// stats accumulates min/max/mean of a series, ignoring NaN.
type stats struct {
	Count int     `json:"count" toml:"count"`
	Sum   float64 `json:"-" toml:"-"`
	Min   float64 `json:"min" toml:"min"`
	Max   float64 `json:"max" toml:"max"`
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.Count == 0 {
		s.Min, s.Max = v, v
	} else {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Sum += v
	s.Count++
}

func (s *stats) avg() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}

func diffMinutes(a, b time.Time) float64 {
	// If either time is zero, treat as "no data".
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return math.Abs(a.Sub(b).Minutes())
}

func diffMinutesSigned(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}
