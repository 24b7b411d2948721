// Gaze mapping preview tool - interactive visualization with sliders.
//
// The left pane stands in for the viewport: its colour shows the yaw (red)
// and pitch (green) a joint would take for a pointer at each position, and
// the pointer drives a live readout.
//
// Usage: go run ./cmd/gazepreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/gaze"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

// previewParams holds the mapping shape being tuned.
type previewParams struct {
	Limit float32
	Shape gaze.Shape
}

func defaultParams() previewParams {
	return previewParams{Limit: 50, Shape: gaze.DefaultShape()}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Gaze Mapping Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true
	vp := gaze.Viewport{Width: previewSize, Height: previewSize}

	for !rl.WindowShouldClose() {
		if needsRegen {
			updateTexture(texture, params)
			needsRegen = false
		}

		mouse := rl.GetMousePosition()
		sample := gaze.PointerSample{X: mouse.X - 10, Y: mouse.Y - 10}
		yaw, pitch := params.Shape.Degrees(sample, vp, params.Limit)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Midlines the mapping pivots on
		midY := int32(10 + previewSize*params.Shape.VerticalSplit)
		rl.DrawLine(10+previewSize/2, 10, 10+previewSize/2, 10+previewSize, rl.Gray)
		rl.DrawLine(10, midY, 10+previewSize, midY, rl.Gray)

		drawHead(float32(10+previewSize/2), float32(midY), yaw, pitch, params.Limit)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Pointer: %.0f, %.0f", sample.X, sample.Y), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Yaw: %+.1f deg  Pitch: %+.1f deg", yaw, pitch), 15, statsY+20, 16, rl.DarkGray)
		maxDown := params.Limit / params.Shape.DownDivisor
		rl.DrawText(fmt.Sprintf("Range: yaw +-%.1f  up %.1f  down %.1f", params.Limit, params.Limit*params.Shape.UpFactor, maxDown), 15, statsY+40, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Gaze Mapping Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		var changed bool
		params.Limit, changed = slider(panelX, &panelY, "Limit (degrees)", "0", "90", params.Limit, 0, 90, "%.0f")
		needsRegen = needsRegen || changed
		params.Shape.VerticalSplit, changed = slider(panelX, &panelY, "Vertical split (fraction of height)", "0.05", "0.95", params.Shape.VerticalSplit, 0.05, 0.95, "%.2f")
		needsRegen = needsRegen || changed
		params.Shape.UpFactor, changed = slider(panelX, &panelY, "Up factor (upward tilt = limit * this)", "0", "1", params.Shape.UpFactor, 0, 1, "%.2f")
		needsRegen = needsRegen || changed
		params.Shape.DownDivisor, changed = slider(panelX, &panelY, "Down divisor (downward tilt = limit / this)", "1", "10", params.Shape.DownDivisor, 1, 10, "%.1f")
		needsRegen = needsRegen || changed

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			var yaml string
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled raygui slider and advances y.
func slider(x float32, y *float32, label, left, right string, value, min, max float32, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		left, right,
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next, next != value
}

func yamlLines(p previewParams) []string {
	return []string{
		"gaze:",
		fmt.Sprintf("  vertical_split: %.2f", p.Shape.VerticalSplit),
		fmt.Sprintf("  up_factor: %.2f", p.Shape.UpFactor),
		fmt.Sprintf("  down_divisor: %.1f", p.Shape.DownDivisor),
		"joints:",
		fmt.Sprintf("  - limit: %.0f", p.Limit),
	}
}

// drawHead draws a circle with a nose pointing where the joint would face.
func drawHead(cx, cy, yaw, pitch, limit float32) {
	const radius = 28
	rl.DrawCircleLines(int32(cx), int32(cy), radius, rl.DarkGray)
	if limit <= 0 {
		return
	}
	nx := cx + float32(math.Sin(float64(gaze.Radians(yaw))))*radius
	ny := cy + float32(math.Sin(float64(gaze.Radians(pitch))))*radius
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: nx, Y: ny}, 3, rl.Maroon)
}

// updateTexture paints yaw into red and pitch into green, both centred on 128.
func updateTexture(texture rl.Texture2D, p previewParams) {
	pixels := make([]color.RGBA, gridSize*gridSize)
	vp := gaze.Viewport{Width: gridSize, Height: gridSize}
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			yaw, pitch := p.Shape.Degrees(gaze.PointerSample{X: float32(x) + 0.5, Y: float32(y) + 0.5}, vp, p.Limit)
			pixels[y*gridSize+x] = color.RGBA{R: channel(yaw, p.Limit), G: channel(pitch, p.Limit), B: 160, A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
}

func channel(v, limit float32) uint8 {
	if limit <= 0 {
		return 128
	}
	c := 128 + v/limit*127
	if c < 0 {
		c = 0
	}
	if c > 255 {
		c = 255
	}
	return uint8(c)
}
