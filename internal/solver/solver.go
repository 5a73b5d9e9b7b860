// Package solver finds the instants where a time-dependent quantity crosses
// a target value. It knows nothing about astronomy: callers hand it a Func
// that is negative on one side of the event and positive on the other.
package solver

import (
	"time"
)

// Func returns a signed value at time t. Events are zero crossings.
type Func func(t time.Time) (float64, error)

// EventType describes which direction of crossing we are looking for.
type EventType int

const (
	// CrossingUp means the value goes from negative to non-negative (rise).
	CrossingUp EventType = iota
	// CrossingDown means the value goes from positive to non-positive (set).
	CrossingDown
	// AnyCrossing accepts a sign change in either direction.
	AnyCrossing
)

// Direction selects whether Search walks forward or backward in time.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Result holds the output of a crossing search.
type Result struct {
	Time time.Time // approximate time of the event
	OK   bool      // true if an event was found
}

// Options tunes the bracket-then-bisect search.
type Options struct {
	Step      time.Duration // coarse bracketing step
	Window    time.Duration // how far from start to look
	Precision time.Duration // stop bisecting below this bracket width
	MaxIter   int           // hard cap on bisection iterations
	Direction Direction
	Event     EventType
}

// DefaultOptions returns the standard search: 2h steps over 48h, bisected
// to 1s or 25 iterations, forward, upward crossing.
func DefaultOptions() Options {
	return Options{
		Step:      2 * time.Hour,
		Window:    48 * time.Hour,
		Precision: time.Second,
		MaxIter:   25,
		Direction: Forward,
		Event:     CrossingUp,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Step <= 0 {
		o.Step = d.Step
	}
	if o.Window <= 0 {
		o.Window = d.Window
	}
	if o.Precision <= 0 {
		o.Precision = d.Precision
	}
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	return o
}

// Search steps away from start in increments of opts.Step until it finds a
// sign change of f matching opts.Event, or until opts.Window is exhausted.
// A bracketed crossing is bisected and the bracket midpoint returned.
//
// Errors from f abort the search and are returned as-is.
func Search(f Func, start time.Time, opts Options) (Result, error) {
	opts = opts.withDefaults()

	step := opts.Step
	if opts.Direction == Backward {
		step = -step
	}
	limit := start.Add(opts.Window)
	if opts.Direction == Backward {
		limit = start.Add(-opts.Window)
	}

	prevT := start
	prevV, err := f(prevT)
	if err != nil {
		return Result{}, err
	}

	for {
		t := prevT.Add(step)
		if opts.Direction == Forward && t.After(limit) {
			t = limit
		}
		if opts.Direction == Backward && t.Before(limit) {
			t = limit
		}
		if t.Equal(prevT) {
			return Result{OK: false}, nil
		}

		v, err := f(t)
		if err != nil {
			return Result{}, err
		}

		// Keep the bracket in chronological order regardless of direction.
		a, fa, b, fb := prevT, prevV, t, v
		if opts.Direction == Backward {
			a, fa, b, fb = t, v, prevT, prevV
		}
		if hasCrossing(fa, fb, opts.Event) {
			return bisect(f, a, b, fa, opts)
		}

		prevT, prevV = t, v
	}
}

// LegacyBisect is the fixed-window variant: it compares f at start and
// start+48h, and if the signs differ it bisects exactly 20 times and
// returns the lower end of the final bracket. 20 halvings of two days give
// a bracket of about 0.16s.
func LegacyBisect(f Func, start time.Time) (Result, error) {
	const (
		span       = 48 * time.Hour
		iterations = 20
	)

	a, b := start, start.Add(span)
	fa, err := f(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := f(b)
	if err != nil {
		return Result{}, err
	}
	if !hasCrossing(fa, fb, AnyCrossing) {
		return Result{OK: false}, nil
	}

	for i := 0; i < iterations; i++ {
		mid := a.Add(b.Sub(a) / 2)
		fm, err := f(mid)
		if err != nil {
			return Result{}, err
		}
		if hasCrossing(fa, fm, AnyCrossing) {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}

	return Result{Time: a, OK: true}, nil
}

// FindEvent searches for a time in [start, end] where f crosses targetDeg in
// the direction specified by eventType, sampling `steps` points across the
// interval and bisecting the first bracket down to tol.
func FindEvent(f Func, start, end time.Time, targetDeg float64, eventType EventType, steps int, tol time.Duration) (Result, error) {
	if !start.Before(end) {
		return Result{OK: false}, nil
	}
	if steps < 2 {
		steps = 2
	}

	shifted := func(t time.Time) (float64, error) {
		v, err := f(t)
		return v - targetDeg, err
	}

	interval := end.Sub(start) / time.Duration(steps-1)
	return Search(shifted, start, Options{
		Step:      interval,
		Window:    end.Sub(start),
		Precision: tol,
		MaxIter:   64,
		Direction: Forward,
		Event:     eventType,
	})
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return (a1 < 0 && a2 >= 0) || (a1 > 0 && a2 <= 0)
	}
}

// bisect narrows the chronologically ordered bracket [a, b] with f(a) = fa.
func bisect(f Func, a, b time.Time, fa float64, opts Options) (Result, error) {
	for i := 0; i < opts.MaxIter && b.Sub(a) > opts.Precision; i++ {
		mid := a.Add(b.Sub(a) / 2)
		fm, err := f(mid)
		if err != nil {
			return Result{}, err
		}

		if hasCrossing(fa, fm, opts.Event) {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}

	return Result{
		Time: a.Add(b.Sub(a) / 2),
		OK:   true,
	}, nil
}
