package gesture

import "time"

// PointerKind distinguishes mouse clicks from touch taps. It selects the
// follow-up prompt shown after a gesture.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

func (k PointerKind) String() string {
	if k == PointerTouch {
		return "touch"
	}
	return "mouse"
}

// Mixer is the animation playback facility the controller drives.
// *anim.Mixer satisfies it.
type Mixer interface {
	Clips() []string
	Duration(clip string) (float64, bool)
	PlayOnce(clip string)
	CrossFade(from, to string, duration float64)
	Enable(clip string)
}

// Scheduler runs deferred callbacks. *anim.Mixer satisfies it on its
// playback clock.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Presenter receives the progress bar and status text updates.
type Presenter interface {
	SetProgressDuration(seconds float64)
	SetStatus(text string)
}

// HitTester reports whether a screen position lands on the character's hit target.
type HitTester interface {
	Hit(x, y float32) bool
}

// HitFunc adapts a function to HitTester.
type HitFunc func(x, y float32) bool

// Hit calls f(x, y).
func (f HitFunc) Hit(x, y float32) bool { return f(x, y) }

// NopPresenter discards presentation updates.
type NopPresenter struct{}

func (NopPresenter) SetProgressDuration(float64) {}
func (NopPresenter) SetStatus(string)            {}
