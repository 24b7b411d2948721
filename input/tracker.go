package input

import "github.com/pthm-cable/puppet/gesture"

// PointerFrame is the raw pointer state read once per frame.
type PointerFrame struct {
	Touches        int // Active touch points
	TouchX, TouchY float32
	MouseX, MouseY float32
	MouseReleased  bool // Left button went up this frame
}

// PointerTracker turns per-frame pointer state into events. Both pointer
// kinds activate on release: a click when the left button goes up, a tap
// when the last finger lifts, at the position it left.
type PointerTracker struct {
	lastX, lastY   float32
	hasLast        bool
	touching       bool
	touchX, touchY float32
}

// Track returns the events implied by f, stamped with now.
func (t *PointerTracker) Track(f PointerFrame, now float64) []Event {
	var events []Event

	if f.Touches > 0 {
		t.touching = true
		t.touchX, t.touchY = f.TouchX, f.TouchY
		if t.moved(f.TouchX, f.TouchY) {
			events = append(events, Event{Kind: PointerMoved, X: f.TouchX, Y: f.TouchY, Pointer: gesture.PointerTouch, At: now})
		}
		return events
	}

	if t.touching {
		t.touching = false
		return append(events, Event{Kind: Activated, X: t.touchX, Y: t.touchY, Pointer: gesture.PointerTouch, At: now})
	}

	if t.moved(f.MouseX, f.MouseY) {
		events = append(events, Event{Kind: PointerMoved, X: f.MouseX, Y: f.MouseY, Pointer: gesture.PointerMouse, At: now})
	}
	if f.MouseReleased {
		events = append(events, Event{Kind: Activated, X: f.MouseX, Y: f.MouseY, Pointer: gesture.PointerMouse, At: now})
	}
	return events
}

func (t *PointerTracker) moved(x, y float32) bool {
	if t.hasLast && x == t.lastX && y == t.lastY {
		return false
	}
	t.lastX, t.lastY = x, y
	t.hasLast = true
	return true
}
