// Package gaze maps a pointer position to bounded joint rotations.
//
// The viewport is split into quadrants around its horizontal midpoint and a
// vertical split line placed at 40% of the height. The signed distance from
// the midpoint toward the nearest edge, as a fraction, scales the joint's
// angular limit. Upward tilt is capped at half the limit and downward tilt at
// limit/5.5, so the character looks up more readily than down.
package gaze

import "math"

// PointerSample is a raw screen-space pointer position.
type PointerSample struct {
	X, Y float32
}

// Viewport is the current drawable area in pixels.
type Viewport struct {
	Width, Height float32
}

// Orientation is a joint rotation in radians.
type Orientation struct {
	Yaw   float32
	Pitch float32
}

// Shape holds the tuning constants of the mapping.
type Shape struct {
	VerticalSplit float32 // Vertical midpoint as a fraction of height
	UpFactor      float32 // Upward tilt cap = limit * UpFactor
	DownDivisor   float32 // Downward tilt cap = limit / DownDivisor
}

// DefaultShape returns the stock mapping: split at 40%, up 0.5, down /5.5.
func DefaultShape() Shape {
	return Shape{
		VerticalSplit: 0.4,
		UpFactor:      0.5,
		DownDivisor:   5.5,
	}
}

// Orient maps a pointer sample to a joint orientation using DefaultShape.
func Orient(p PointerSample, vp Viewport, limitDeg float32) Orientation {
	return DefaultShape().Orient(p, vp, limitDeg)
}

// Orient maps a pointer sample to a joint orientation in radians.
func (s Shape) Orient(p PointerSample, vp Viewport, limitDeg float32) Orientation {
	yaw, pitch := s.Degrees(p, vp, limitDeg)
	return Orientation{Yaw: Radians(yaw), Pitch: Radians(pitch)}
}

// Degrees returns yaw and pitch in degrees.
// Negative yaw is left of centre, negative pitch is above the split line.
func (s Shape) Degrees(p PointerSample, vp Viewport, limitDeg float32) (yaw, pitch float32) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}

	midX := vp.Width / 2
	midY := vp.Height * s.VerticalSplit

	switch {
	case p.X < midX:
		yaw = -limitDeg * fraction(midX-p.X, midX)
	case p.X > midX:
		yaw = limitDeg * fraction(p.X-midX, vp.Width-midX)
	}

	switch {
	case p.Y < midY:
		pitch = -limitDeg * s.UpFactor * fraction(midY-p.Y, midY)
	case p.Y > midY:
		pitch = limitDeg / s.DownDivisor * fraction(p.Y-midY, vp.Height-midY)
	}

	return yaw, pitch
}

// fraction returns dist/span clamped to [0, 1].
func fraction(dist, span float32) float32 {
	if span <= 0 {
		return 0
	}
	f := dist / span
	if f > 1 {
		return 1
	}
	return f
}

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees for logging/display.
func Degrees(radians float32) float32 {
	return radians * 180 / math.Pi
}
