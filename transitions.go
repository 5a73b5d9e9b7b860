package jyotiglide

import (
	"errors"
	"time"
)

// Transition is one unit interval. Start may precede the enumeration
// window when the unit was already in progress; End is clamped to the
// window end for the last interval.
type Transition struct {
	Kind  UnitKind  `json:"kind" toml:"kind"`
	Index int       `json:"index" toml:"index"`
	Name  string    `json:"name" toml:"name"`
	Start time.Time `json:"start" toml:"start"`
	End   time.Time `json:"end" toml:"end"`
}

// Contains reports whether t falls in [Start, End).
func (tr Transition) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// Duration returns End - Start.
func (tr Transition) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// boundaryNudge moves the cursor past a found boundary so the next search
// does not rediscover it.
const boundaryNudge = time.Minute

// Transitions returns the ordered, contiguous unit intervals of kind that
// cover [start, end). An empty or inverted window yields no intervals and
// no error.
//
// Units shorter than the window step are handled naturally: each iteration
// reclassifies just past the previous boundary and searches for the end of
// whatever unit is then in effect, so a unit that begins and ends inside one
// civil day is emitted in order, and a unit that never starts is simply not
// emitted.
func (e *Engine) Transitions(kind UnitKind, start, end time.Time) ([]Transition, error) {
	if !validKind(kind) {
		return nil, ErrUnknownKind
	}
	if !start.Before(end) {
		return []Transition{}, nil
	}

	idx, err := e.Classify(kind, start)
	if err != nil {
		return nil, err
	}
	unitStart, ok, err := e.UnitStart(kind, start)
	if err != nil {
		return nil, err
	}
	if !ok || unitStart.After(start) {
		unitStart = start
	}

	var out []Transition
	cur := Transition{Kind: kind, Index: idx, Name: UnitName(kind, idx), Start: unitStart}
	cursor := start

	for {
		boundary, found, err := e.unitEnd(kind, cur.Index, cursor, end)
		if err != nil {
			return nil, err
		}
		if !found || !boundary.Before(end) {
			cur.End = end
			return append(out, cur), nil
		}

		cur.End = boundary
		out = append(out, cur)

		cursor = boundary.Add(boundaryNudge)
		idx, err = e.Classify(kind, cursor)
		if err != nil {
			return nil, err
		}
		cur = Transition{Kind: kind, Index: idx, Name: UnitName(kind, idx), Start: boundary}
	}
}

// KindTransitions groups the intervals of one kind.
type KindTransitions struct {
	Kind        UnitKind     `json:"kind" toml:"kind"`
	Transitions []Transition `json:"transitions" toml:"transitions"`
}

// Day is every unit kind enumerated over one sunrise-to-sunrise window.
type Day struct {
	Window Window            `json:"window" toml:"window"`
	Kinds  []KindTransitions `json:"kinds" toml:"kinds"`
}

// Day enumerates every unit kind across the civil day that begins at
// sunrise on date at loc. Where the Sun does not rise the window is empty
// and every kind has no intervals; that is not an error.
func (e *Engine) Day(p RiseSetProvider, loc Coordinates, date time.Time) (Day, error) {
	w, err := CivilDay(p, loc, date)
	if err != nil && !errors.Is(err, ErrNoRiseNoSet) {
		return Day{}, err
	}

	day := Day{Window: w}
	for _, kind := range AllKinds {
		trs, err := e.Transitions(kind, w.Start, w.End)
		if err != nil {
			return Day{}, err
		}
		day.Kinds = append(day.Kinds, KindTransitions{Kind: kind, Transitions: trs})
	}
	return day, nil
}
