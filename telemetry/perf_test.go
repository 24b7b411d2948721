package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.SetClock(clock.now)
	return pc, clock
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartUpdate()
		pc.StartPhase(PhaseInput)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhasePose)
		clock.advance(time.Duration(200+i*100) * time.Microsecond)
		pc.EndUpdate(false)
	}

	stats := pc.Stats()

	if stats.AvgUpdate != 500*time.Microsecond {
		t.Errorf("expected 500µs average update, got %v", stats.AvgUpdate)
	}
	if stats.MinUpdate != 300*time.Microsecond || stats.MaxUpdate != 700*time.Microsecond {
		t.Errorf("expected min 300µs max 700µs, got %v / %v", stats.MinUpdate, stats.MaxUpdate)
	}
	if stats.PhaseAvg[PhaseInput] != 100*time.Microsecond {
		t.Errorf("expected 100µs input phase, got %v", stats.PhaseAvg[PhaseInput])
	}
	if stats.PhaseAvg[PhasePose] != 400*time.Microsecond {
		t.Errorf("expected 400µs pose phase, got %v", stats.PhaseAvg[PhasePose])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartUpdate()
		pc.StartPhase(PhaseMixer)
		clock.advance(time.Duration(i+1) * time.Millisecond)
		pc.EndUpdate(false)
	}

	if pc.sampleCount != 5 {
		t.Errorf("expected window to cap at 5 samples, got %d", pc.sampleCount)
	}
	// only updates 6..10 remain
	if got := pc.Stats().AvgUpdate; got != 8*time.Millisecond {
		t.Errorf("expected 8ms average over the last five updates, got %v", got)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartUpdate()
		pc.StartPhase("fast")
		clock.advance(10 * time.Microsecond)
		pc.StartPhase("slow")
		clock.advance(490 * time.Microsecond)
		pc.EndUpdate(false)
	}

	stats := pc.Stats()
	if math.Abs(stats.PhasePct["fast"]-2) > 1e-9 {
		t.Errorf("expected fast phase at 2%%, got %v%%", stats.PhasePct["fast"])
	}
	if math.Abs(stats.PhasePct["slow"]-98) > 1e-9 {
		t.Errorf("expected slow phase at 98%%, got %v%%", stats.PhasePct["slow"])
	}
}

func TestPerfCollector_GestureSplit(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 8; i++ {
		gesture := i%4 == 0
		pc.StartUpdate()
		pc.StartPhase(PhasePose)
		if gesture {
			clock.advance(3 * time.Millisecond)
		} else {
			clock.advance(time.Millisecond)
		}
		pc.EndUpdate(gesture)
	}

	stats := pc.Stats()
	if stats.AvgGesture != 3*time.Millisecond {
		t.Errorf("expected 3ms gesture updates, got %v", stats.AvgGesture)
	}
	if stats.AvgIdle != time.Millisecond {
		t.Errorf("expected 1ms idle updates, got %v", stats.AvgIdle)
	}
	if stats.GestureShare != 0.25 {
		t.Errorf("expected gesture share 0.25, got %v", stats.GestureShare)
	}
}

func TestPerfCollector_IdleOnlyWindow(t *testing.T) {
	pc, clock := newTestCollector(4)

	pc.StartUpdate()
	clock.advance(2 * time.Millisecond)
	pc.EndUpdate(false)

	stats := pc.Stats()
	if stats.AvgGesture != 0 || stats.GestureShare != 0 {
		t.Errorf("expected no gesture timing, got %v share %v", stats.AvgGesture, stats.GestureShare)
	}
	if stats.AvgIdle != 2*time.Millisecond {
		t.Errorf("expected 2ms idle update, got %v", stats.AvgIdle)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgUpdate != 0 {
		t.Error("expected zero avg update duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	pc.RecordFrame()
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("expected 20ms frame duration, got %v", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("expected 50 fps, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgUpdate:    1500 * time.Microsecond,
		AvgGesture:   2500 * time.Microsecond,
		AvgIdle:      1000 * time.Microsecond,
		GestureShare: 0.5,
		PhasePct:     map[string]float64{PhaseMixer: 40, PhasePose: 55},
	}
	row := s.ToCSV(120)
	if row.Frame != 120 || row.AvgUpdateUS != 1500 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.GestureUS != 2500 || row.IdleUS != 1000 || row.GestureShare != 0.5 {
		t.Errorf("unexpected gesture split %+v", row)
	}
	if row.MixerPct != 40 || row.PosePct != 55 || row.InputPct != 0 {
		t.Errorf("unexpected phase split %+v", row)
	}
}
