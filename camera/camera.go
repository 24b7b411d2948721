// Package camera provides the 3D framing of the character and the viewport
// the gaze mapping is measured against.
package camera

import "math"

// Vec3 is a position in world space.
type Vec3 [3]float32

// Camera frames the character from a fixed direction. The distance to the
// target can be dollied between MinDist and MaxDist.
type Camera struct {
	// Position is the eye point in world coordinates
	Position Vec3

	// Target is the point looked at
	Target Vec3

	// Vertical field of view in degrees
	Fovy float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Dolly constraints
	MinDist, MaxDist float32

	home Vec3
}

// New creates a camera looking from position at target.
func New(position, target Vec3, fovy, viewportW, viewportH float32) *Camera {
	d := distance(position, target)
	return &Camera{
		Position:  position,
		Target:    target,
		Fovy:      fovy,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinDist:   d,
		MaxDist:   d,
		home:      position,
	}
}

// SetDollyRange sets the allowed distance to the target and re-clamps.
func (c *Camera) SetDollyRange(minDist, maxDist float32) {
	if minDist <= 0 {
		minDist = 0.01
	}
	if maxDist < minDist {
		maxDist = minDist
	}
	c.MinDist = minDist
	c.MaxDist = maxDist
	c.setDistance(c.Distance())
}

// Resize updates the viewport after a window resize.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float32 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Distance returns the distance from the eye to the target.
func (c *Camera) Distance() float32 {
	return distance(c.Position, c.Target)
}

// DollyBy multiplies the distance to the target by factor, clamped to range.
func (c *Camera) DollyBy(factor float32) {
	c.setDistance(c.Distance() * factor)
}

// Reset returns the camera to its initial position.
func (c *Camera) Reset() {
	c.Position = c.home
}

func (c *Camera) setDistance(d float32) {
	cur := c.Distance()
	if cur == 0 {
		return
	}
	d = clamp(d, c.MinDist, c.MaxDist)
	scale := d / cur
	for i := range c.Position {
		c.Position[i] = c.Target[i] + (c.Position[i]-c.Target[i])*scale
	}
}

func distance(a, b Vec3) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
