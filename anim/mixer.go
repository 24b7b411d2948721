package anim

import (
	"sort"
	"time"
)

// timer is a callback due at a mixer clock time.
type timer struct {
	at  float64
	seq uint64
	fn  func()
}

// Mixer owns one Action per clip and a playback clock.
type Mixer struct {
	actions  []*Action
	byName   map[string]*Action
	clock    float64
	timers   []timer
	nextSeq  uint64
	finished []func(*Action)
}

// Weighted is an action's contribution to the current pose.
type Weighted struct {
	Clip   string
	Time   float64
	Weight float64
}

// NewMixer creates a mixer with an action for each clip. Later clips with a
// duplicate name are ignored.
func NewMixer(clips []Clip) *Mixer {
	m := &Mixer{byName: make(map[string]*Action, len(clips))}
	for _, c := range clips {
		if _, dup := m.byName[c.Name]; dup {
			continue
		}
		a := newAction(c)
		m.actions = append(m.actions, a)
		m.byName[c.Name] = a
	}
	return m
}

// Action returns the action for a clip name.
func (m *Mixer) Action(name string) (*Action, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// Actions returns all actions in clip order.
func (m *Mixer) Actions() []*Action {
	return m.actions
}

// Clips returns clip names in load order.
func (m *Mixer) Clips() []string {
	names := make([]string, len(m.actions))
	for i, a := range m.actions {
		names[i] = a.clip.Name
	}
	return names
}

// Duration returns a clip's duration in seconds.
func (m *Mixer) Duration(name string) (float64, bool) {
	a, ok := m.byName[name]
	if !ok {
		return 0, false
	}
	return a.clip.Duration, true
}

// Time returns the mixer clock in seconds.
func (m *Mixer) Time() float64 {
	return m.clock
}

// PlayLoop starts a clip looping at full weight.
func (m *Mixer) PlayLoop(name string) bool {
	a, ok := m.byName[name]
	if !ok {
		return false
	}
	a.SetLoop(LoopRepeat).Reset().Play()
	return true
}

// PlayOnce configures a clip to play a single time from the start and starts it.
func (m *Mixer) PlayOnce(name string) {
	if a, ok := m.byName[name]; ok {
		a.SetLoop(LoopOnce).Reset().Play()
	}
}

// CrossFade fades from out and to in over duration seconds.
func (m *Mixer) CrossFade(from, to string, duration float64) {
	a, okA := m.byName[from]
	b, okB := m.byName[to]
	if !okA || !okB {
		return
	}
	a.CrossFadeTo(b, duration)
}

// Enable re-enables a clip that was faded out.
func (m *Mixer) Enable(name string) {
	if a, ok := m.byName[name]; ok {
		a.Enable()
	}
}

// After schedules fn to run once the mixer clock has advanced by d.
// Timers are not cancellable.
func (m *Mixer) After(d time.Duration, fn func()) {
	m.timers = append(m.timers, timer{
		at:  m.clock + d.Seconds(),
		seq: m.nextSeq,
		fn:  fn,
	})
	m.nextSeq++
}

// Pending returns the number of timers not yet fired.
func (m *Mixer) Pending() int {
	return len(m.timers)
}

// OnFinished registers a callback for once-actions reaching their end.
func (m *Mixer) OnFinished(fn func(*Action)) {
	m.finished = append(m.finished, fn)
}

// Update advances every action and the clock by dt seconds, then fires due
// timers in schedule order. Timers scheduled by a firing callback wait for a
// later Update.
func (m *Mixer) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	m.clock += dt

	var done []*Action
	for _, a := range m.actions {
		if a.advance(dt) {
			done = append(done, a)
		}
	}
	for _, a := range done {
		for _, fn := range m.finished {
			fn(a)
		}
	}

	m.fireTimers()
}

func (m *Mixer) fireTimers() {
	if len(m.timers) == 0 {
		return
	}

	var due, keep []timer
	for _, t := range m.timers {
		if t.at <= m.clock+1e-9 {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	if len(due) == 0 {
		return
	}
	m.timers = keep

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
}

// Weights returns every enabled action with positive weight.
func (m *Mixer) Weights() []Weighted {
	var out []Weighted
	for _, a := range m.actions {
		w := a.EffectiveWeight()
		if w <= 0 {
			continue
		}
		out = append(out, Weighted{Clip: a.clip.Name, Time: a.time, Weight: w})
	}
	return out
}

// Idle reports whether no timers are pending and no fade is in progress.
func (m *Mixer) Idle() bool {
	if len(m.timers) > 0 {
		return false
	}
	for _, a := range m.actions {
		if a.enabled && a.fade != nil {
			return false
		}
	}
	return true
}
