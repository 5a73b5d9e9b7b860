package jyotiglide

import (
	"fmt"
	"math"

	"github.com/thurmanmarka/jyotiglide/internal/timeutil"
)

// UnitKind identifies a family of calendar units.
type UnitKind int

const (
	// LunarDay (tithi): 30 units of 12° Sun–Moon elongation.
	LunarDay UnitKind = iota
	// LunarMansion (nakshatra): 27 units of 13°20′ of sidereal Moon longitude.
	LunarMansion
	// Combination (yoga): 27 units of 13°20′ of summed Sun + Moon sidereal longitude.
	Combination
	// HalfLunarDay (karana): 60 segments of 6° elongation carrying 11 names.
	HalfLunarDay
	// ZodiacSign (rashi): 12 units of 30° of sidereal Moon longitude.
	ZodiacSign
	// SolarSign: 12 units of 30° of sidereal Sun longitude (sankranti boundaries).
	SolarSign
)

// AllKinds lists every UnitKind in display order.
var AllKinds = []UnitKind{LunarDay, LunarMansion, Combination, HalfLunarDay, ZodiacSign, SolarSign}

const mansionWidth = 40.0 / 3.0 // 13°20′

var kindNames = map[UnitKind]string{
	LunarDay:     "tithi",
	LunarMansion: "nakshatra",
	Combination:  "yoga",
	HalfLunarDay: "karana",
	ZodiacSign:   "rashi",
	SolarSign:    "solar-rashi",
}

func (k UnitKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("UnitKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k UnitKind) MarshalText() ([]byte, error) {
	if !validKind(k) {
		return nil, ErrUnknownKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *UnitKind) UnmarshalText(b []byte) error {
	parsed, err := ParseUnitKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseUnitKind maps a name as printed by String back to its UnitKind.
func ParseUnitKind(s string) (UnitKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Width returns the angular width of one unit in degrees.
func (k UnitKind) Width() float64 {
	switch k {
	case LunarDay:
		return 12
	case LunarMansion, Combination:
		return mansionWidth
	case HalfLunarDay:
		return 6
	default:
		return 30
	}
}

// Count returns how many distinct indices the kind cycles through.
func (k UnitKind) Count() int {
	return int(math.Round(360 / k.Width()))
}

// Angle returns the quantity the kind partitions, in [0,360), for a sample.
func (k UnitKind) Angle(s Sample) float64 {
	switch k {
	case LunarDay, HalfLunarDay:
		return s.Elongation()
	case LunarMansion, ZodiacSign:
		return s.MoonSidereal()
	case Combination:
		return timeutil.Normalize360(s.SunSidereal() + s.MoonSidereal())
	default:
		return s.SunSidereal()
	}
}

// Index returns the unit index for a sample.
func (k UnitKind) Index(s Sample) int {
	return indexOf(k.Angle(s), k.Width(), k.Count())
}

// indexOf floors angle/width, clamped so float noise at 360 never yields count.
func indexOf(angle, width float64, count int) int {
	i := int(math.Floor(timeutil.Normalize360(angle) / width))
	if i >= count {
		i = count - 1
	}
	return i
}

// LunarDayIndex returns the tithi index (0–29) for the given Sun and Moon
// longitudes. Any consistent frame works since only the difference matters.
func LunarDayIndex(sunLon, moonLon float64) int {
	return indexOf(timeutil.ForwardDiff(sunLon, moonLon), 12, 30)
}

// LunarMansionIndex returns the nakshatra index (0–26) of a sidereal Moon longitude.
func LunarMansionIndex(moonLon float64) int {
	return indexOf(moonLon, mansionWidth, 27)
}

// CombinationIndex returns the yoga index (0–26) for sidereal Sun and Moon longitudes.
func CombinationIndex(sunLon, moonLon float64) int {
	return indexOf(sunLon+moonLon, mansionWidth, 27)
}

// HalfLunarDayIndex returns the karana segment (0–59) for the given longitudes.
// Use HalfLunarDayName to turn a segment into one of the 11 karana names.
func HalfLunarDayIndex(sunLon, moonLon float64) int {
	return indexOf(timeutil.ForwardDiff(sunLon, moonLon), 6, 60)
}

// ZodiacSignIndex returns the rashi index (0–11) of a sidereal longitude.
func ZodiacSignIndex(lon float64) int {
	return indexOf(lon, 30, 12)
}

var lunarDayNames = [30]string{
	"Shukla Pratipada", "Shukla Dwitiya", "Shukla Tritiya", "Shukla Chaturthi", "Shukla Panchami",
	"Shukla Shashthi", "Shukla Saptami", "Shukla Ashtami", "Shukla Navami", "Shukla Dashami",
	"Shukla Ekadashi", "Shukla Dwadashi", "Shukla Trayodashi", "Shukla Chaturdashi", "Purnima",
	"Krishna Pratipada", "Krishna Dwitiya", "Krishna Tritiya", "Krishna Chaturthi", "Krishna Panchami",
	"Krishna Shashthi", "Krishna Saptami", "Krishna Ashtami", "Krishna Navami", "Krishna Dashami",
	"Krishna Ekadashi", "Krishna Dwadashi", "Krishna Trayodashi", "Krishna Chaturdashi", "Amavasya",
}

var mansionNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu",
	"Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta",
	"Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

var combinationNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda", "Sukarma",
	"Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra",
	"Siddhi", "Vyatipata", "Variyana", "Parigha", "Shiva", "Siddha", "Sadhya",
	"Shubha", "Shukla", "Brahma", "Indra", "Vaidhriti",
}

// movableKaranas repeat eight times through segments 1–56.
var movableKaranas = [7]string{"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti"}

var signNames = [12]string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// HalfLunarDayName names a karana segment (0–59). Segment 0 and the last
// three segments of the synodic month carry fixed names; the rest cycle
// through the seven movable karanas.
func HalfLunarDayName(segment int) string {
	segment = ((segment % 60) + 60) % 60
	switch segment {
	case 0:
		return "Kimstughna"
	case 57:
		return "Shakuni"
	case 58:
		return "Chatushpada"
	case 59:
		return "Naga"
	default:
		return movableKaranas[(segment-1)%7]
	}
}

// SignName returns the rashi name for index 0–11.
func SignName(i int) string {
	return signNames[((i%12)+12)%12]
}

// UnitName returns the traditional name of index within kind.
func UnitName(kind UnitKind, index int) string {
	n := kind.Count()
	if n == 0 {
		return ""
	}
	i := ((index % n) + n) % n
	switch kind {
	case LunarDay:
		return lunarDayNames[i]
	case LunarMansion:
		return mansionNames[i]
	case Combination:
		return combinationNames[i]
	case HalfLunarDay:
		return HalfLunarDayName(i)
	case ZodiacSign, SolarSign:
		return signNames[i]
	default:
		return ""
	}
}

func validKind(k UnitKind) bool {
	_, ok := kindNames[k]
	return ok
}
