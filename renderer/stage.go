package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/camera"
	"github.com/pthm-cable/puppet/config"
)

// Stage draws the backdrop and floor the character stands on.
type Stage struct {
	background rl.Color
	horizon    rl.Color
	floor      rl.Color
	floorSize  float32
}

// NewStage creates a stage from config colours.
func NewStage(cfg config.StageConfig) *Stage {
	bg := rl.NewColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 255)
	return &Stage{
		background: bg,
		horizon:    shade(bg, 0.94),
		floor:      rl.NewColor(cfg.Floor[0], cfg.Floor[1], cfg.Floor[2], 255),
		floorSize:  cfg.FloorSize,
	}
}

// DrawBackground clears the frame with a soft vertical gradient.
// Call before BeginMode3D.
func (s *Stage) DrawBackground(screenW, screenH int32) {
	rl.ClearBackground(s.background)
	rl.DrawRectangleGradientV(0, 0, screenW, screenH, s.background, s.horizon)
}

// DrawFloor draws the floor plane. Call inside BeginMode3D.
func (s *Stage) DrawFloor() {
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(s.floorSize, s.floorSize), s.floor)
}

// Camera3D converts the framing camera to raylib's perspective camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position[0], c.Position[1], c.Position[2]),
		Target:     rl.NewVector3(c.Target[0], c.Target[1], c.Target[2]),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func shade(c rl.Color, f float32) rl.Color {
	return rl.NewColor(uint8(float32(c.R)*f), uint8(float32(c.G)*f), uint8(float32(c.B)*f), c.A)
}
