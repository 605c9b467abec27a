package gesture

import "math"

const (
	DefaultHysteresis = 10.0
	DefaultSmoothing  = 0.5
)

// Point is a screen-space position or offset in pixels. Y grows downward.
type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Event is a single pan gesture report.
type Event struct {
	State State
	// Location is the current pointer position.
	Location Point
	// Translation is the offset from where the pointer was pressed.
	Translation Point
	// Velocity is in pixels per second.
	Velocity Point
}

// PointerSource reports a single pointer once per tick.
type PointerSource interface {
	Pointer() (x, y float64, down bool)
}

// Recognizer turns pointer samples into pan events.
type Recognizer struct {
	source PointerSource

	// Hysteresis is the distance the pointer must travel from the press point
	// before the gesture begins.
	Hysteresis float64
	// Smoothing weighs the previous velocity against the latest sample.
	Smoothing float64

	state      State
	pressed    bool
	suppressed bool
	start      Point
	last       Point
	velocity   Point
}

// NewRecognizer creates a recognizer with default hysteresis and smoothing.
func NewRecognizer(source PointerSource) *Recognizer {
	return &Recognizer{
		source:     source,
		Hysteresis: DefaultHysteresis,
		Smoothing:  DefaultSmoothing,
	}
}

// State returns the recognizer's current phase.
func (r *Recognizer) State() State {
	return r.state
}

// Poll samples the source once and appends any resulting events to dst.
func (r *Recognizer) Poll(dst []Event, dt float64) []Event {
	x, y, down := r.source.Pointer()
	p := Point{x, y}

	if !r.pressed {
		if down {
			r.pressed = true
			r.start, r.last = p, p
			r.velocity = Point{}
			r.state = StatePossible
		}
		return dst
	}

	if !down {
		r.pressed = false
		r.suppressed = false
		if r.state.Active() {
			r.track(p, dt)
			dst = append(dst, r.event(StateEnded))
		}
		r.state = StatePossible
		return dst
	}

	if r.suppressed {
		return dst
	}

	moved := p != r.last
	r.track(p, dt)

	switch r.state {
	case StatePossible:
		if p.Sub(r.start).Len() >= r.Hysteresis {
			r.state = StateBegan
			dst = append(dst, r.event(StateBegan))
		}
	case StateBegan, StateChanged:
		if moved {
			r.state = StateChanged
			dst = append(dst, r.event(StateChanged))
		}
	}
	return dst
}

// Cancel aborts an active gesture. The pointer must be released before a new
// gesture can begin.
func (r *Recognizer) Cancel() (Event, bool) {
	if !r.state.Active() {
		return Event{}, false
	}
	ev := r.event(StateCancelled)
	r.state = StatePossible
	r.suppressed = r.pressed
	return ev, true
}

func (r *Recognizer) track(p Point, dt float64) {
	if dt > 0 {
		d := p.Sub(r.last)
		s := r.Smoothing
		r.velocity = Point{
			X: r.velocity.X*s + d.X/dt*(1-s),
			Y: r.velocity.Y*s + d.Y/dt*(1-s),
		}
	}
	r.last = p
}

func (r *Recognizer) event(state State) Event {
	return Event{
		State:       state,
		Location:    r.last,
		Translation: r.last.Sub(r.start),
		Velocity:    r.velocity,
	}
}
