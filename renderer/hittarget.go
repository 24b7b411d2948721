package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/config"
)

// HitTarget is an invisible box around the character used for click picking.
type HitTarget struct {
	mesh      rl.Mesh
	center    rl.Vector3
	transform rl.Matrix
	camera    func() rl.Camera3D
	loaded    bool
}

// NewHitTarget builds the pick volume centred at origin + cfg.Offset.
// camera is consulted on every Hit so resizes and dollies are honoured.
// Must be called after the raylib window is created.
func NewHitTarget(cfg config.HitTargetConfig, origin rl.Vector3, camera func() rl.Camera3D) *HitTarget {
	center := rl.Vector3Add(origin, rl.NewVector3(cfg.Offset[0], cfg.Offset[1], cfg.Offset[2]))
	return &HitTarget{
		mesh:      rl.GenMeshCube(cfg.Size[0], cfg.Size[1], cfg.Size[2]),
		center:    center,
		transform: rl.MatrixTranslate(center.X, center.Y, center.Z),
		camera:    camera,
		loaded:    true,
	}
}

// Hit reports whether the screen position picks the target.
func (h *HitTarget) Hit(x, y float32) bool {
	if !h.loaded {
		return false
	}
	ray := rl.GetScreenToWorldRay(rl.NewVector2(x, y), h.camera())
	return rl.GetRayCollisionMesh(ray, h.mesh, h.transform).Hit
}

// DrawDebug outlines the pick volume.
func (h *HitTarget) DrawDebug() {
	box := rl.GetMeshBoundingBox(h.mesh)
	box.Min = rl.Vector3Add(box.Min, h.center)
	box.Max = rl.Vector3Add(box.Max, h.center)
	rl.DrawBoundingBox(box, rl.Red)
}

// Unload frees the mesh.
func (h *HitTarget) Unload() {
	if h.loaded {
		rl.UnloadMesh(&h.mesh)
		h.loaded = false
	}
}
