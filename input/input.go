// Package input turns pointer activity into events for the character.
//
// A Source produces events; a Handler consumes them. The render loop polls
// raylib's mouse and touch state, headless runs poll a ScriptSource, and
// tests feed events directly.
package input

import "github.com/pthm-cable/puppet/gesture"

// EventKind identifies what happened.
type EventKind int

const (
	PointerMoved EventKind = iota
	Activated
)

func (k EventKind) String() string {
	switch k {
	case PointerMoved:
		return "move"
	case Activated:
		return "activate"
	default:
		return "unknown"
	}
}

// Event is one pointer event in screen coordinates.
type Event struct {
	Kind    EventKind
	X, Y    float32
	Pointer gesture.PointerKind
	At      float64 // Source clock, seconds
}

// Source yields the events that occurred up to now.
type Source interface {
	Poll(now float64) []Event
}

// Handler receives pointer events.
type Handler interface {
	PointerMoved(x, y float32)
	Activate(x, y float32, kind gesture.PointerKind)
}

// Dispatch delivers events to h in order.
func Dispatch(events []Event, h Handler) {
	for _, ev := range events {
		switch ev.Kind {
		case PointerMoved:
			h.PointerMoved(ev.X, ev.Y)
		case Activated:
			h.Activate(ev.X, ev.Y, ev.Pointer)
		}
	}
}

// ScreenRect is a HitTester over a screen-space rectangle.
type ScreenRect struct {
	X, Y, W, H float32
}

// Hit reports whether (x, y) lies inside the rectangle, edges included.
func (r ScreenRect) Hit(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}
