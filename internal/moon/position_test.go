package moon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApparentLongitude_Meeus(t *testing.T) {
	// Meeus example 47.a: 1992-04-12 0h TD, apparent λ = 133.167265°.
	tm := time.Date(1992, time.April, 12, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 133.167, ApparentLongitude(tm), 0.02)
}

func TestApparentLongitude_Range(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*60; h += 7 {
		lon := ApparentLongitude(start.Add(time.Duration(h) * time.Hour))
		assert.GreaterOrEqual(t, lon, 0.0)
		assert.Less(t, lon, 360.0)
	}
}

func TestApparentLongitude_AlwaysPrograde(t *testing.T) {
	// The Moon never moves less than ~11.5°/day or more than ~15.5°/day.
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	prev := ApparentLongitude(start)
	for h := 1; h <= 24*40; h++ {
		cur := ApparentLongitude(start.Add(time.Duration(h) * time.Hour))
		step := cur - prev
		if step < 0 {
			step += 360
		}
		assert.Greater(t, step, 11.5/24, "hour %d", h)
		assert.Less(t, step, 15.5/24, "hour %d", h)
		prev = cur
	}
}
