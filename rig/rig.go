// Package rig keeps the tracked joints of a character in an ECS world and
// points them at the cursor.
package rig

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/puppet/components"
	"github.com/pthm-cable/puppet/gaze"
)

// Rig holds one entity per tracked joint.
type Rig struct {
	world *ecs.World
	shape gaze.Shape

	jointMapper *ecs.Map3[components.Joint, components.Limit, components.Orientation]
	jointFilter *ecs.Filter3[components.Joint, components.Limit, components.Orientation]
	orientMap   *ecs.Map[components.Orientation]

	byName map[string]ecs.Entity
}

// New creates an empty rig using the given mapping shape.
func New(shape gaze.Shape) *Rig {
	world := ecs.NewWorld()
	return &Rig{
		world:       world,
		shape:       shape,
		jointMapper: ecs.NewMap3[components.Joint, components.Limit, components.Orientation](world),
		jointFilter: ecs.NewFilter3[components.Joint, components.Limit, components.Orientation](world),
		orientMap:   ecs.NewMap[components.Orientation](world),
		byName:      make(map[string]ecs.Entity),
	}
}

// AddJoint registers a joint. Registering a name twice keeps the first joint.
func (r *Rig) AddJoint(name string, bone int32, limitDeg float32) ecs.Entity {
	if e, ok := r.byName[name]; ok {
		return e
	}
	joint := components.Joint{Name: name, Bone: bone}
	limit := components.Limit{Degrees: limitDeg}
	orient := components.Orientation{}
	e := r.jointMapper.NewEntity(&joint, &limit, &orient)
	r.byName[name] = e
	return e
}

// Len returns the number of joints.
func (r *Rig) Len() int {
	return len(r.byName)
}

// Aim recomputes every joint's orientation from the pointer sample.
func (r *Rig) Aim(p gaze.PointerSample, vp gaze.Viewport) {
	query := r.jointFilter.Query()
	for query.Next() {
		_, limit, orient := query.Get()
		*orient = components.Orientation(r.shape.Orient(p, vp, limit.Degrees))
	}
}

// Orientation returns a joint's current orientation by name.
func (r *Rig) Orientation(name string) (components.Orientation, bool) {
	e, ok := r.byName[name]
	if !ok {
		return components.Orientation{}, false
	}
	return *r.orientMap.Get(e), true
}

// Pose is a joint's bone and orientation, as consumed by the renderer.
type Pose struct {
	Name  string
	Bone  int32
	Yaw   float32
	Pitch float32
}

// Poses returns every joint's current orientation.
func (r *Rig) Poses() []Pose {
	poses := make([]Pose, 0, len(r.byName))
	query := r.jointFilter.Query()
	for query.Next() {
		joint, _, orient := query.Get()
		poses = append(poses, Pose{Name: joint.Name, Bone: joint.Bone, Yaw: orient.Yaw, Pitch: orient.Pitch})
	}
	return poses
}

// BoneName decodes a fixed-size, NUL-terminated bone name as stored in a
// model's skeleton.
func BoneName(raw []int8) string {
	buf := make([]byte, 0, len(raw))
	for _, ch := range raw {
		if ch == 0 {
			break
		}
		buf = append(buf, byte(ch))
	}
	return string(buf)
}
