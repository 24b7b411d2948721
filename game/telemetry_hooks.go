package game

import (
	"log/slog"

	"github.com/pthm-cable/puppet/anim"
	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/gaze"
	"github.com/pthm-cable/puppet/gesture"
	"github.com/pthm-cable/puppet/telemetry"
)

// onCycle records an accepted gesture.
func (g *Game) onCycle(c gesture.Cycle) {
	g.cycles++
	g.selection.Record(c.Clip, c.Delay.Seconds())

	slog.Info("gesture",
		"seq", c.Seq,
		"clip", c.Clip,
		"duration", c.Duration,
		"delay_ms", c.Delay.Milliseconds(),
		"pointer", c.Pointer.String(),
		"rejected", g.rejected,
	)

	if g.outputManager != nil {
		rec := telemetry.CycleRecord{
			Seq:        int(c.Seq),
			StartedAt:  g.mixer.Time(),
			Clip:       c.Clip,
			Duration:   c.Duration,
			DelayMS:    c.Delay.Milliseconds(),
			Pointer:    c.Pointer.String(),
			X:          g.lastActivate.X,
			Y:          g.lastActivate.Y,
			Rejections: g.rejected,
		}
		if err := g.outputManager.WriteCycle(rec); err != nil {
			slog.Error("failed to write cycle", "error", err)
		}
	}
	g.rejected = 0
}

// onClipFinished logs a once-clip reaching its end.
func (g *Game) onClipFinished(a *anim.Action) {
	slog.Debug("clip finished", "clip", a.Clip().Name, "t", g.mixer.Time())
}

// sampleGaze writes joint orientations every GazeEvery frames.
func (g *Game) sampleGaze() {
	every := config.Cfg().Telemetry.GazeEvery
	if g.outputManager == nil || every <= 0 || g.frame%every != 0 {
		return
	}

	poses := g.rig.Poses()
	recs := make([]telemetry.GazeRecord, 0, len(poses))
	for _, p := range poses {
		recs = append(recs, telemetry.GazeRecord{
			Frame: g.frame,
			Time:  g.clock,
			Joint: p.Name,
			X:     g.pointer.X,
			Y:     g.pointer.Y,
			Yaw:   gaze.Degrees(p.Yaw),
			Pitch: gaze.Degrees(p.Pitch),
		})
	}
	if err := g.outputManager.WriteGaze(recs); err != nil {
		slog.Error("failed to write gaze", "error", err)
	}
}

// flushPerf logs and writes the current perf window.
func (g *Game) flushPerf() {
	stats := g.perfCollector.Stats()
	if g.logStats {
		slog.Info("perf", "frame", g.frame, "stats", stats)
	}
	if err := g.outputManager.WritePerf(stats, g.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// logSummary reports the run's gesture selection statistics.
func (g *Game) logSummary() {
	slog.Info("run summary",
		"frames", g.frame,
		"clock", g.clock,
		"selection", g.selection,
	)
}
