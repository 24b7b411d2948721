package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUD shows the gesture progress bar and the status text. It implements
// gesture.Presenter.
type HUD struct {
	renderer *Renderer

	status   string
	started  bool
	duration float64 // Seconds the current fill runs for
	elapsed  float64
}

// NewHUD creates a HUD with an initial status line.
func NewHUD(status string) *HUD {
	return &HUD{renderer: NewRenderer(), status: status}
}

// SetProgressDuration restarts the bar, filling it over seconds.
// Non-positive durations show a full bar immediately.
func (h *HUD) SetProgressDuration(seconds float64) {
	h.duration = seconds
	h.elapsed = 0
	h.started = true
}

// SetStatus replaces the status line.
func (h *HUD) SetStatus(text string) {
	h.status = text
}

// Status returns the current status line.
func (h *HUD) Status() string { return h.status }

// Update advances the fill.
func (h *HUD) Update(dt float64) {
	h.elapsed += dt
}

// Progress returns the fill fraction in [0, 1]. The bar is empty until the
// first SetProgressDuration.
func (h *HUD) Progress() float32 {
	if !h.started {
		return 0
	}
	if h.duration <= 0 {
		return 1
	}
	p := h.elapsed / h.duration
	if p > 1 {
		p = 1
	}
	return float32(p)
}

// Draw renders the bar and the centred status line at the bottom of the screen.
func (h *HUD) Draw(screenW, screenH int32) {
	t := h.renderer.Theme

	barX := (float32(screenW) - t.ProgressWidth) / 2
	barY := float32(screenH) - 70
	gui.ProgressBar(rl.Rectangle{X: barX, Y: barY, Width: t.ProgressWidth, Height: t.ProgressHeight}, "", "", h.Progress(), 0, 1)

	if h.status != "" {
		w := rl.MeasureText(h.status, t.StatusFontSize)
		rl.DrawText(h.status, (screenW-w)/2, int32(barY)+20, t.StatusFontSize, t.StatusColor)
	}
}

// DebugJoint is one joint row of the debug panel, angles in degrees.
type DebugJoint struct {
	Name       string
	Yaw, Pitch float32
	Limit      float32
}

// DebugData holds the controller and rig readout.
type DebugData struct {
	State   string
	Clip    string
	Locked  bool
	Cycles  int
	Pending int
	FPS     int32
	Joints  []DebugJoint
}

// DebugPanel renders the controller state and joint angles.
type DebugPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewDebugPanel creates a hidden debug panel.
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Toggle switches panel visibility.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// Draw renders the panel if visible.
func (d *DebugPanel) Draw(data DebugData) {
	if !d.visible {
		return
	}

	r := d.renderer
	pad := r.Theme.Padding
	rows := int32(6 + 2*len(data.Joints))
	r.DrawPanel(d.x, d.y, d.width, rows*r.Theme.LineHeight+pad*2+r.Theme.LineHeight)

	x := d.x + pad
	y := d.y + pad
	y = r.DrawSectionHeader(x, y, "Controller")
	y = r.DrawLabelValue(x, y, "State", data.State)
	y = r.DrawLabelValue(x, y, "Clip", data.Clip)
	y = r.DrawLabelValue(x, y, "Locked", fmt.Sprintf("%v", data.Locked))
	y = r.DrawLabelValue(x, y, "Cycles", fmt.Sprintf("%d (%d timers)", data.Cycles, data.Pending))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))

	y = r.DrawSectionHeader(x, y+4, "Joints")
	for _, j := range data.Joints {
		y = r.DrawCenteredBar(x, y, j.Name+" yaw", j.Yaw, j.Limit, d.width-pad*2)
		y = r.DrawCenteredBar(x, y, j.Name+" pit", j.Pitch, j.Limit, d.width-pad*2)
	}
}
