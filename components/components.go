// Package components defines ECS components for the character rig.
package components

// Joint identifies a tracked skeleton joint.
type Joint struct {
	Name string // Config name, e.g. "neck"
	Bone int32  // Bone index in the skeleton, -1 when running without one
}

// Limit is a joint's angular bound in degrees.
type Limit struct {
	Degrees float32
}

// Orientation is the pointer-driven rotation of a joint, in radians.
type Orientation struct {
	Yaw   float32
	Pitch float32
}
