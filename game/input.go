package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/gaze"
	"github.com/pthm-cable/puppet/gesture"
	"github.com/pthm-cable/puppet/input"
)

// handleInput processes keyboard, wheel and window input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.debug.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHitTarget = !g.showHitTarget
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
}

// handleCameraInput dollies with the wheel and resets on R.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.DollyBy(1 - wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.camera.Reset()
	}
}

// PointerMoved re-aims every tracked joint. It implements input.Handler.
func (g *Game) PointerMoved(x, y float32) {
	g.pointer = gaze.PointerSample{X: x, Y: y}
	g.rig.Aim(g.pointer, gaze.Viewport{Width: g.screenWidth, Height: g.screenHeight})
}

// Activate forwards a click or tap to the gesture controller. It implements
// input.Handler.
func (g *Game) Activate(x, y float32, kind gesture.PointerKind) {
	g.lastActivate = gaze.PointerSample{X: x, Y: y}
	if g.controller.Activate(x, y, kind) {
		return
	}
	if g.controller.Locked() {
		g.rejected++
		slog.Debug("activation rejected while locked", "clip", g.controller.Current(), "x", x, "y", y)
	}
}

// raylibSource reads raylib's mouse and touch state once per frame.
type raylibSource struct {
	tracker input.PointerTracker
}

func newRaylibSource() *raylibSource {
	return &raylibSource{}
}

// Poll reports pointer motion, clicks and taps since the previous frame.
func (s *raylibSource) Poll(now float64) []input.Event {
	f := input.PointerFrame{
		Touches:       int(rl.GetTouchPointCount()),
		MouseReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}
	if f.Touches > 0 {
		pos := rl.GetTouchPosition(0)
		f.TouchX, f.TouchY = pos.X, pos.Y
	}
	mouse := rl.GetMousePosition()
	f.MouseX, f.MouseY = mouse.X, mouse.Y
	return s.tracker.Track(f, now)
}
