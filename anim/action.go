// Package anim implements a small clip mixer: per-clip actions with playback
// time, loop mode and weight fades, plus timers on the mixer's playback clock.
//
// The mixer holds no skeleton data. A renderer asks for Weights each frame and
// samples its own pose data at the reported times.
package anim

// LoopMode controls what happens when an action reaches the end of its clip.
type LoopMode int

const (
	LoopRepeat LoopMode = iota // Wrap to the start
	LoopOnce                   // Stop at the end and emit a finished event
)

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	default:
		return "repeat"
	}
}

// Clip describes a named animation clip.
type Clip struct {
	Name     string
	Duration float64 // Seconds
}

// fade is a linear weight ramp.
type fade struct {
	from, to float64
	elapsed  float64
	duration float64
}

func (f *fade) value() float64 {
	if f.duration <= 0 || f.elapsed >= f.duration {
		return f.to
	}
	t := f.elapsed / f.duration
	return f.from + (f.to-f.from)*t
}

func (f *fade) done() bool {
	return f.elapsed >= f.duration
}

// Action is the playback state of one clip inside a Mixer.
type Action struct {
	clip     Clip
	time     float64
	loop     LoopMode
	active   bool // Scheduled in the mixer by Play
	running  bool
	enabled  bool
	weight   float64
	fade     *fade
	finished bool
}

func newAction(clip Clip) *Action {
	return &Action{
		clip:    clip,
		loop:    LoopRepeat,
		enabled: true,
		weight:  1,
	}
}

// Clip returns the action's clip.
func (a *Action) Clip() Clip { return a.clip }

// Time returns the playback cursor in seconds.
func (a *Action) Time() float64 { return a.time }

// IsRunning reports whether the action's cursor is advancing.
func (a *Action) IsRunning() bool { return a.running }

// Enabled reports whether the action contributes to the pose.
func (a *Action) Enabled() bool { return a.enabled }

// Loop returns the loop mode.
func (a *Action) Loop() LoopMode { return a.loop }

// Active reports whether the action has been played and not stopped.
func (a *Action) Active() bool { return a.active }

// Play starts the action.
func (a *Action) Play() *Action {
	a.active = true
	a.running = true
	a.enabled = true
	return a
}

// Stop halts the action, rewinds it and removes it from the pose.
func (a *Action) Stop() *Action {
	a.active = false
	a.running = false
	a.time = 0
	a.fade = nil
	a.weight = 1
	a.finished = false
	return a
}

// Reset rewinds the cursor and re-enables the action without changing running.
func (a *Action) Reset() *Action {
	a.time = 0
	a.enabled = true
	a.finished = false
	a.fade = nil
	a.weight = 1
	return a
}

// SetLoop sets the loop mode.
func (a *Action) SetLoop(mode LoopMode) *Action {
	a.loop = mode
	return a
}

// Enable lets the action contribute to the pose again at full weight.
func (a *Action) Enable() *Action {
	a.enabled = true
	if a.fade == nil {
		a.weight = 1
	}
	return a
}

// FadeIn ramps the weight from 0 to 1 over duration seconds.
func (a *Action) FadeIn(duration float64) *Action {
	a.scheduleFade(0, 1, duration)
	return a
}

// FadeOut ramps the weight from 1 to 0 over duration seconds.
// The action is disabled once the ramp completes.
func (a *Action) FadeOut(duration float64) *Action {
	a.scheduleFade(1, 0, duration)
	return a
}

// CrossFadeTo fades this action out and next in over the same duration.
func (a *Action) CrossFadeTo(next *Action, duration float64) *Action {
	next.FadeIn(duration)
	a.FadeOut(duration)
	return a
}

// EffectiveWeight returns the weight the action contributes this frame.
func (a *Action) EffectiveWeight() float64 {
	if !a.active || !a.enabled {
		return 0
	}
	return a.weight
}

// Fading reports whether a weight ramp is in progress.
func (a *Action) Fading() bool {
	return a.fade != nil
}

func (a *Action) scheduleFade(from, to, duration float64) {
	a.fade = &fade{from: from, to: to, duration: duration}
	a.weight = a.fade.value()
	if a.fade.done() {
		a.finishFade()
	}
}

func (a *Action) finishFade() {
	a.weight = a.fade.to
	a.fade = nil
	if a.weight == 0 {
		a.enabled = false
	}
}

// advance moves the cursor and weight ramp by dt. It reports whether a
// once-action reached its end during this step. A running action keeps its
// cursor moving after a fade-out disables it, so the end is still reported.
func (a *Action) advance(dt float64) (finished bool) {
	if a.enabled && a.fade != nil {
		a.fade.elapsed += dt
		a.weight = a.fade.value()
		if a.fade.done() {
			a.finishFade()
		}
	}

	if !a.active || !a.running || a.finished {
		return false
	}

	a.time += dt
	d := a.clip.Duration
	if d <= 0 {
		a.time = 0
		return false
	}

	if a.time < d {
		return false
	}

	switch a.loop {
	case LoopOnce:
		a.time = d
		a.running = false
		a.enabled = false
		a.finished = true
		return true
	default:
		for a.time >= d {
			a.time -= d
		}
		return false
	}
}
