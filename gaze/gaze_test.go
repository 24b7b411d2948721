package gaze

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestCornerScenarios(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 1000}

	testCases := []struct {
		name           string
		p              PointerSample
		yawDeg, pitDeg float32
	}{
		{"top-left", PointerSample{0, 0}, -50, -25},
		{"bottom-right", PointerSample{1000, 1000}, 50, 50 / 5.5},
		{"top-right", PointerSample{1000, 0}, 50, -25},
		{"bottom-left", PointerSample{0, 1000}, -50, 50 / 5.5},
		{"midpoint", PointerSample{500, 400}, 0, 0},
		{"half left on split", PointerSample{250, 400}, -25, 0},
		{"halfway up", PointerSample{500, 200}, 0, -12.5},
		{"halfway down", PointerSample{500, 700}, 0, 25 / 5.5},
	}

	for _, tc := range testCases {
		o := Orient(tc.p, vp, 50)
		if !approx(o.Yaw, Radians(tc.yawDeg)) {
			t.Errorf("%s: expected yaw %f rad, got %f", tc.name, Radians(tc.yawDeg), o.Yaw)
		}
		if !approx(o.Pitch, Radians(tc.pitDeg)) {
			t.Errorf("%s: expected pitch %f rad, got %f", tc.name, Radians(tc.pitDeg), o.Pitch)
		}
	}
}

func TestSignAndBounds(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 800}
	const limit = 30
	midX := vp.Width / 2
	midY := vp.Height * 0.4

	for x := float32(0); x <= vp.Width; x += 16 {
		for y := float32(0); y <= vp.Height; y += 16 {
			yaw, pitch := DefaultShape().Degrees(PointerSample{x, y}, vp, limit)

			switch {
			case x < midX && yaw > 0:
				t.Fatalf("x=%f left of midpoint gave yaw %f", x, yaw)
			case x > midX && yaw < 0:
				t.Fatalf("x=%f right of midpoint gave yaw %f", x, yaw)
			case x == midX && yaw != 0:
				t.Fatalf("x on midpoint gave yaw %f", yaw)
			}
			if float32(math.Abs(float64(yaw))) > limit {
				t.Fatalf("yaw %f exceeds limit at (%f, %f)", yaw, x, y)
			}

			if y < midY {
				if pitch > 0 || -pitch > limit*0.5+1e-4 {
					t.Fatalf("y=%f above split gave pitch %f", y, pitch)
				}
			} else if y > midY {
				if pitch < 0 || pitch > limit/5.5+1e-4 {
					t.Fatalf("y=%f below split gave pitch %f", y, pitch)
				}
			}
		}
	}
}

func TestIdempotent(t *testing.T) {
	vp := Viewport{Width: 1920, Height: 1080}
	p := PointerSample{X: 311, Y: 977}

	a := Orient(p, vp, 50)
	b := Orient(p, vp, 50)
	if a != b {
		t.Errorf("expected identical output, got %+v and %+v", a, b)
	}
}

func TestOutsideViewportIsClamped(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 1000}
	yaw, pitch := DefaultShape().Degrees(PointerSample{-500, -500}, vp, 50)
	if yaw != -50 || pitch != -25 {
		t.Errorf("expected clamp to (-50, -25), got (%f, %f)", yaw, pitch)
	}
}

func TestZeroViewport(t *testing.T) {
	o := Orient(PointerSample{10, 10}, Viewport{}, 50)
	if o.Yaw != 0 || o.Pitch != 0 {
		t.Errorf("expected zero orientation for empty viewport, got %+v", o)
	}
}

func TestCustomShape(t *testing.T) {
	s := Shape{VerticalSplit: 0.5, UpFactor: 1, DownDivisor: 1}
	vp := Viewport{Width: 100, Height: 100}

	_, up := s.Degrees(PointerSample{50, 0}, vp, 40)
	_, down := s.Degrees(PointerSample{50, 100}, vp, 40)
	if up != -40 || down != 40 {
		t.Errorf("expected symmetric +-40 pitch, got %f and %f", up, down)
	}
}

func TestRadiansDegreesRoundtrip(t *testing.T) {
	for _, d := range []float32{-90, -50, 0, 9.09, 180} {
		if !approx(Degrees(Radians(d)), d) {
			t.Errorf("roundtrip failed for %f", d)
		}
	}
}
