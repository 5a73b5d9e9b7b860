package ayanamsa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLahiri(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"J2000", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 23.857},
		// Published Lahiri value for 2025-01-01 is 24°12′ (24.20°).
		{"2025", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 24.20},
		{"1950", time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC), 23.16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Lahiri(tt.at), 0.02)
		})
	}
}

func TestLahiri_Increases(t *testing.T) {
	a := Lahiri(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	b := Lahiri(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC))

	// About 50.3 arcseconds per year.
	assert.InDelta(t, 50.3/3600, b-a, 0.001)
}
