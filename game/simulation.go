package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/gesture"
	"github.com/pthm-cable/puppet/input"
	"github.com/pthm-cable/puppet/telemetry"
)

// Update runs one frame of the windowed loop.
func (g *Game) Update() {
	g.handleInput()
	g.step(float64(rl.GetFrameTime()))
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs one fixed-step frame without a window.
func (g *Game) UpdateHeadless() {
	g.step(config.Cfg().Headless.DT)
}

// step polls input, advances playback and pushes the blended pose.
func (g *Game) step(dt float64) {
	g.perfCollector.StartUpdate()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if g.source != nil {
		input.Dispatch(g.source.Poll(g.clock), g)
	}

	g.perfCollector.StartPhase(telemetry.PhaseMixer)
	g.mixer.Update(dt)
	g.hud.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhasePose)
	if g.character != nil {
		g.character.ApplyPose(g.mixer.Weights(), g.rig.Poses())
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.sampleGaze()

	g.perfCollector.EndUpdate(g.controller.State() != gesture.StateIdle)

	g.clock += dt
	g.frame++

	if g.frame%perfWindow == 0 {
		g.flushPerf()
	}
}
