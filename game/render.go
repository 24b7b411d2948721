package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/gaze"
	"github.com/pthm-cable/puppet/ui"
)

// Draw renders the stage, the character and the HUD.
func (g *Game) Draw() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)

	rl.BeginDrawing()
	g.stage.DrawBackground(w, h)

	rl.BeginMode3D(g.camera3D())
	g.stage.DrawFloor()
	g.character.Draw()
	if g.showHitTarget {
		g.hitTarget.DrawDebug()
	}
	rl.EndMode3D()

	g.hud.Draw(w, h)
	g.debug.Draw(g.debugData())

	rl.EndDrawing()
}

func (g *Game) debugData() ui.DebugData {
	cfg := config.Cfg()
	joints := make([]ui.DebugJoint, 0, g.rig.Len())
	for _, p := range g.rig.Poses() {
		joints = append(joints, ui.DebugJoint{
			Name:  p.Name,
			Yaw:   gaze.Degrees(p.Yaw),
			Pitch: gaze.Degrees(p.Pitch),
			Limit: cfg.Joints[cfg.Derived.JointIndex[p.Name]].Limit,
		})
	}
	return ui.DebugData{
		State:   g.controller.State().String(),
		Clip:    g.controller.Current(),
		Locked:  g.controller.Locked(),
		Cycles:  g.cycles,
		Pending: g.mixer.Pending(),
		FPS:     rl.GetFPS(),
		Joints:  joints,
	}
}
