package anim

import (
	"math"
	"testing"
	"time"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func testClips() []Clip {
	return []Clip{
		{Name: "idle", Duration: 2},
		{Name: "wave", Duration: 1.5},
		{Name: "bow", Duration: 3},
	}
}

func TestNewMixerSkipsDuplicates(t *testing.T) {
	m := NewMixer(append(testClips(), Clip{Name: "wave", Duration: 9}))
	if len(m.Actions()) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(m.Actions()))
	}
	d, ok := m.Duration("wave")
	if !ok || d != 1.5 {
		t.Errorf("expected first wave duration 1.5, got %v (ok=%v)", d, ok)
	}
	if _, ok := m.Duration("missing"); ok {
		t.Error("expected missing clip lookup to fail")
	}
}

func TestUnplayedActionsHaveNoWeight(t *testing.T) {
	m := NewMixer(testClips())
	if w := m.Weights(); len(w) != 0 {
		t.Errorf("expected no weights before play, got %+v", w)
	}
}

func TestLoopRepeatWraps(t *testing.T) {
	m := NewMixer(testClips())
	m.PlayLoop("idle")

	for i := 0; i < 5; i++ {
		m.Update(0.5)
	}

	a, _ := m.Action("idle")
	if !near(a.Time(), 0.5) {
		t.Errorf("expected idle cursor at 0.5 after 2.5s, got %f", a.Time())
	}
	if !a.IsRunning() {
		t.Error("expected looping action to keep running")
	}
}

func TestLoopOnceFinishes(t *testing.T) {
	m := NewMixer(testClips())
	var finished []string
	m.OnFinished(func(a *Action) { finished = append(finished, a.Clip().Name) })

	m.PlayOnce("wave")
	m.Update(1.0)
	if len(finished) != 0 {
		t.Fatalf("finished too early: %v", finished)
	}
	m.Update(1.0)

	if len(finished) != 1 || finished[0] != "wave" {
		t.Fatalf("expected one finished event for wave, got %v", finished)
	}
	a, _ := m.Action("wave")
	if a.IsRunning() {
		t.Error("expected once action to stop")
	}
	if a.Time() != 1.5 {
		t.Errorf("expected cursor clamped at 1.5, got %f", a.Time())
	}
	if a.EffectiveWeight() != 0 {
		t.Errorf("expected finished action to contribute nothing, got %f", a.EffectiveWeight())
	}

	m.Update(1.0)
	if len(finished) != 1 {
		t.Errorf("expected finished to fire once, got %d", len(finished))
	}
}

func TestCrossFadeWeights(t *testing.T) {
	m := NewMixer(testClips())
	m.PlayLoop("idle")
	m.PlayOnce("wave")
	m.CrossFade("idle", "wave", 0.25)

	idle, _ := m.Action("idle")
	wave, _ := m.Action("wave")

	if idle.EffectiveWeight() != 1 || wave.EffectiveWeight() != 0 {
		t.Fatalf("expected weights 1/0 at fade start, got %f/%f", idle.EffectiveWeight(), wave.EffectiveWeight())
	}

	m.Update(0.125)
	if !near(idle.EffectiveWeight(), 0.5) || !near(wave.EffectiveWeight(), 0.5) {
		t.Errorf("expected weights 0.5/0.5 halfway, got %f/%f", idle.EffectiveWeight(), wave.EffectiveWeight())
	}

	m.Update(0.125)
	if idle.Enabled() {
		t.Error("expected idle disabled after fading out")
	}
	if idle.EffectiveWeight() != 0 || wave.EffectiveWeight() != 1 {
		t.Errorf("expected weights 0/1 after fade, got %f/%f", idle.EffectiveWeight(), wave.EffectiveWeight())
	}

	weights := m.Weights()
	if len(weights) != 1 || weights[0].Clip != "wave" {
		t.Errorf("expected only wave in weights, got %+v", weights)
	}
}

func TestEnableAfterFadeOut(t *testing.T) {
	m := NewMixer(testClips())
	m.PlayLoop("idle")
	idle, _ := m.Action("idle")
	idle.FadeOut(0.1)
	m.Update(0.2)
	if idle.Enabled() {
		t.Fatal("expected idle disabled")
	}

	m.Enable("idle")
	if !idle.Enabled() || idle.EffectiveWeight() != 1 {
		t.Errorf("expected idle re-enabled at weight 1, got enabled=%v weight=%f", idle.Enabled(), idle.EffectiveWeight())
	}
}

func TestZeroDurationFadeIsImmediate(t *testing.T) {
	m := NewMixer(testClips())
	m.PlayLoop("idle")
	m.PlayOnce("bow")
	m.CrossFade("idle", "bow", 0)

	idle, _ := m.Action("idle")
	bow, _ := m.Action("bow")
	if idle.Enabled() || bow.EffectiveWeight() != 1 {
		t.Errorf("expected instant switch, got idle enabled=%v bow weight=%f", idle.Enabled(), bow.EffectiveWeight())
	}
}

func TestTimersFireOnPlaybackClock(t *testing.T) {
	m := NewMixer(testClips())
	var order []int

	m.After(300*time.Millisecond, func() { order = append(order, 2) })
	m.After(100*time.Millisecond, func() { order = append(order, 1) })
	m.After(300*time.Millisecond, func() { order = append(order, 3) })

	m.Update(0.05)
	if len(order) != 0 {
		t.Fatalf("timers fired early: %v", order)
	}
	m.Update(0.05)
	if len(order) != 1 || order[0] != 1 {
		t.Fatalf("expected first timer at 100ms, got %v", order)
	}
	if m.Pending() != 2 {
		t.Errorf("expected 2 pending timers, got %d", m.Pending())
	}

	m.Update(0.5)
	if len(order) != 3 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected schedule order 1,2,3, got %v", order)
	}
	if !m.Idle() {
		t.Error("expected mixer idle after timers drained")
	}
}

func TestTimerScheduledFromCallbackWaits(t *testing.T) {
	m := NewMixer(testClips())
	fired := 0
	m.After(0, func() {
		m.After(0, func() { fired++ })
	})

	m.Update(0.01)
	if fired != 0 {
		t.Errorf("expected nested timer to wait for next update, fired=%d", fired)
	}
	m.Update(0.01)
	if fired != 1 {
		t.Errorf("expected nested timer to fire on next update, fired=%d", fired)
	}
}

func TestStopRemovesFromPose(t *testing.T) {
	m := NewMixer(testClips())
	m.PlayLoop("idle")
	m.Update(0.3)

	idle, _ := m.Action("idle")
	idle.Stop()
	if idle.Time() != 0 || idle.Active() {
		t.Errorf("expected stopped action rewound and inactive")
	}
	if len(m.Weights()) != 0 {
		t.Errorf("expected no weights after stop, got %+v", m.Weights())
	}
}

func TestLoopModeString(t *testing.T) {
	if LoopOnce.String() != "once" || LoopRepeat.String() != "repeat" {
		t.Errorf("unexpected loop mode names %q %q", LoopOnce, LoopRepeat)
	}
}
