package jyotiglide

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// Ruler is one of the nine Vimshottari dasha lords, in cycle order.
type Ruler int

const (
	RulerKetu Ruler = iota
	RulerVenus
	RulerSun
	RulerMoon
	RulerMars
	RulerRahu
	RulerJupiter
	RulerSaturn
	RulerMercury
)

var rulerNames = [9]string{"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury"}

// rulerYears is each lord's share of the 120-year cycle.
var rulerYears = [9]int64{7, 20, 6, 10, 7, 18, 16, 19, 17}

func (r Ruler) String() string {
	return rulerNames[((int(r)%9)+9)%9]
}

// MarshalText encodes the ruler by name.
func (r Ruler) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Years returns the ruler's full mahadasha length in years.
func (r Ruler) Years() int64 {
	return rulerYears[((int(r)%9)+9)%9]
}

const (
	// DashaCycleYears is the length of a full Vimshottari cycle.
	DashaCycleYears = 120

	// DashaYear is the year used to convert dasha years to time: 365.25 days.
	// With it the whole cycle, and every first and second level period, is
	// an exact number of seconds.
	DashaYear = 36525 * 24 * time.Hour / 100
)

// DashaPeriod is one period of the hierarchy. Level 1 is a mahadasha,
// level 2 an antardasha.
type DashaPeriod struct {
	Ruler Ruler           `json:"ruler" toml:"ruler"`
	Level int             `json:"level" toml:"level"`
	Start time.Time       `json:"start" toml:"start"`
	End   time.Time       `json:"end" toml:"end"`
	Years decimal.Decimal `json:"years" toml:"years"`
}

// Duration returns End - Start.
func (p DashaPeriod) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Contains reports whether t falls in [Start, End).
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Decompose splits a span of total length beginning at start into nine
// consecutive periods, one per ruler starting with first, each taking
// its ruler's share of 120. totalYears labels the span in dasha years.
//
// The same function yields mahadashas from a 120-year span and
// antardashas from a single mahadasha.
func Decompose(total time.Duration, totalYears decimal.Decimal, start time.Time, first Ruler, level int) []DashaPeriod {
	cycle := decimal.NewFromInt(DashaCycleYears)
	q, r := total/DashaCycleYears, total%DashaCycleYears

	periods := make([]DashaPeriod, 0, 9)
	cursor := start
	for i := 0; i < 9; i++ {
		ruler := Ruler((int(first) + i) % 9)
		y := ruler.Years()

		d := q*time.Duration(y) + r*time.Duration(y)/DashaCycleYears
		end := cursor.Add(d)
		if i == 8 {
			end = start.Add(total)
		}

		periods = append(periods, DashaPeriod{
			Ruler: ruler,
			Level: level,
			Start: cursor,
			End:   end,
			Years: totalYears.Mul(decimal.NewFromInt(y)).Div(cycle),
		})
		cursor = end
	}
	return periods
}

// DashaCycle is the Vimshottari hierarchy anchored on the Moon's position
// at a reference instant (normally birth).
type DashaCycle struct {
	MoonLongitude float64         `json:"moon_longitude" toml:"moon_longitude"`
	Mansion       int             `json:"mansion" toml:"mansion"`
	Reference     time.Time       `json:"reference" toml:"reference"`
	Periods       []DashaPeriod   `json:"periods" toml:"periods"`
	Active        DashaPeriod     `json:"active" toml:"active"`
	ActiveSub     DashaPeriod     `json:"active_sub" toml:"active_sub"`
	Elapsed       time.Duration   `json:"elapsed" toml:"elapsed"`
	Balance       decimal.Decimal `json:"balance" toml:"balance"` // years left in Active at Reference
}

// NewDashaCycle lays out the nine mahadashas for a Moon at moonSidereal
// degrees at ref. The mansion the Moon occupies picks the first ruler, and
// the fraction of the mansion already traversed is the fraction of that
// ruler's period already elapsed at ref.
func NewDashaCycle(moonSidereal float64, ref time.Time) DashaCycle {
	lon := timeutil.Normalize360(moonSidereal)
	pos := lon / mansionWidth
	mansion := LunarMansionIndex(lon)
	fraction := pos - float64(mansion)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	first := Ruler(mansion % 9)
	firstDur := time.Duration(first.Years()) * DashaYear
	elapsed := time.Duration(math.Round(fraction * float64(firstDur)))

	periods := Decompose(DashaCycleYears*DashaYear, decimal.NewFromInt(DashaCycleYears), ref.Add(-elapsed), first, 1)
	active := periods[0]

	c := DashaCycle{
		MoonLongitude: lon,
		Mansion:       mansion,
		Reference:     ref,
		Periods:       periods,
		Active:        active,
		Elapsed:       elapsed,
		Balance:       decimal.NewFromFloat(1 - fraction).Mul(active.Years).Round(6),
	}
	for _, sub := range c.Sub(0) {
		if sub.Contains(ref) {
			c.ActiveSub = sub
			break
		}
	}
	return c
}

// Sub returns the antardashas of the i-th mahadasha.
func (c DashaCycle) Sub(i int) []DashaPeriod {
	if i < 0 || i >= len(c.Periods) {
		return nil
	}
	p := c.Periods[i]
	return Decompose(p.Duration(), p.Years, p.Start, p.Ruler, p.Level+1)
}

// ActiveAt returns the mahadasha and antardasha running at t. ok is false
// outside the cycle.
func (c DashaCycle) ActiveAt(t time.Time) (top, sub DashaPeriod, ok bool) {
	for i, p := range c.Periods {
		if !p.Contains(t) {
			continue
		}
		for _, s := range c.Sub(i) {
			if s.Contains(t) {
				return p, s, true
			}
		}
	}
	return DashaPeriod{}, DashaPeriod{}, false
}

// Dasha samples the Moon's sidereal longitude at birth and builds the cycle.
func (e *Engine) Dasha(birth time.Time) (DashaCycle, error) {
	s, err := e.sampler.Sample(birth)
	if err != nil {
		return DashaCycle{}, err
	}
	return NewDashaCycle(s.MoonSidereal(), birth), nil
}

// YearsMonthsDays breaks a span in dasha years into whole years, months of
// one twelfth of a dasha year, and days.
func YearsMonthsDays(years decimal.Decimal) (y, m, d int) {
	if years.IsNegative() {
		years = years.Neg()
	}
	whole := years.Floor()
	months := years.Sub(whole).Mul(decimal.NewFromInt(12))
	wholeMonths := months.Floor()
	days := months.Sub(wholeMonths).Mul(decimal.NewFromFloat(365.25 / 12)).Floor()

	return int(whole.IntPart()), int(wholeMonths.IntPart()), int(days.IntPart())
}
