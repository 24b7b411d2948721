package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the per-frame update.
const (
	PhaseInput     = "input"
	PhaseMixer     = "mixer"
	PhasePose      = "pose"
	PhaseTelemetry = "telemetry"
)

var phases = []string{PhaseInput, PhaseMixer, PhasePose, PhaseTelemetry}

// PerfSample holds timing data for a single update.
type PerfSample struct {
	UpdateDuration time.Duration
	Phases         map[string]time.Duration
	Gesture        bool // A gesture clip was playing or blending
}

// PerfCollector tracks update timing over a rolling window, split between
// updates with a gesture in flight and idle-only updates.
type PerfCollector struct {
	now func() time.Time

	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	updateStart   time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize is the number of updates to average over (60 is one second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:           time.Now,
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// SetClock replaces the time source.
func (p *PerfCollector) SetClock(now func() time.Time) {
	p.now = now
}

// StartUpdate begins timing a new update.
func (p *PerfCollector) StartUpdate() {
	p.updateStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndUpdate finishes timing the current update and records the sample.
// gesture marks whether a gesture clip was active during the update.
func (p *PerfCollector) EndUpdate(gesture bool) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		UpdateDuration: now.Sub(p.updateStart),
		Phases:         p.currentPhases,
		Gesture:        gesture,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgUpdate time.Duration
	MinUpdate time.Duration
	MaxUpdate time.Duration

	// Average duration and share of update time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Update cost with a gesture in flight vs idle only
	AvgGesture   time.Duration
	AvgIdle      time.Duration
	GestureShare float64 // Fraction of updates in the window with a gesture active

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var total, minD, maxD, gestureSum, idleSum time.Duration
	var gestureN int
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.UpdateDuration
		if s.Gesture {
			gestureSum += s.UpdateDuration
			gestureN++
		} else {
			idleSum += s.UpdateDuration
		}
		if i == 0 || s.UpdateDuration < minD {
			minD = s.UpdateDuration
		}
		if s.UpdateDuration > maxD {
			maxD = s.UpdateDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	stats := PerfStats{
		AvgUpdate:     avg,
		MinUpdate:     minD,
		MaxUpdate:     maxD,
		PhaseAvg:      phaseAvg,
		PhasePct:      phasePct,
		GestureShare:  float64(gestureN) / float64(p.sampleCount),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if gestureN > 0 {
		stats.AvgGesture = gestureSum / time.Duration(gestureN)
	}
	if idleN := p.sampleCount - gestureN; idleN > 0 {
		stats.AvgIdle = idleSum / time.Duration(idleN)
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_update_us", s.AvgUpdate.Microseconds()),
		slog.Int64("min_update_us", s.MinUpdate.Microseconds()),
		slog.Int64("max_update_us", s.MaxUpdate.Microseconds()),
		slog.Int64("gesture_update_us", s.AvgGesture.Microseconds()),
		slog.Int64("idle_update_us", s.AvgIdle.Microseconds()),
		slog.Float64("gesture_share", float64(int(s.GestureShare*1000))/1000),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame        int     `csv:"frame"`
	AvgUpdateUS  int64   `csv:"avg_update_us"`
	MinUpdateUS  int64   `csv:"min_update_us"`
	MaxUpdateUS  int64   `csv:"max_update_us"`
	FPS          float64 `csv:"fps"`
	GestureUS    int64   `csv:"gesture_update_us"`
	IdleUS       int64   `csv:"idle_update_us"`
	GestureShare float64 `csv:"gesture_share"`
	InputPct     float64 `csv:"input_pct"`
	MixerPct     float64 `csv:"mixer_pct"`
	PosePct      float64 `csv:"pose_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:        frame,
		AvgUpdateUS:  s.AvgUpdate.Microseconds(),
		MinUpdateUS:  s.MinUpdate.Microseconds(),
		MaxUpdateUS:  s.MaxUpdate.Microseconds(),
		FPS:          s.FPS,
		GestureUS:    s.AvgGesture.Microseconds(),
		IdleUS:       s.AvgIdle.Microseconds(),
		GestureShare: s.GestureShare,
		InputPct:     s.PhasePct[PhaseInput],
		MixerPct:     s.PhasePct[PhaseMixer],
		PosePct:      s.PhasePct[PhasePose],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
