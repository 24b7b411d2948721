package renderer

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/anim"
	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/rig"
)

// ErrNoClips is returned when a model file carries no animations.
var ErrNoClips = errors.New("renderer: model has no animation clips")

// clipFrames is a clip's baked model-space poses, copied out of raylib.
type clipFrames struct {
	name   string
	frames [][]rl.Transform // [frame][bone]
}

// Character is a skinned model with its clips sampled into Go memory.
// Blended poses are written into a scratch frame and pushed to the GPU
// skinning path with rl.UpdateModelAnimation.
type Character struct {
	model    rl.Model
	anims    []rl.ModelAnimation
	clips    []clipFrames
	byName   map[string]int
	bones    []rl.BoneInfo
	bind     []rl.Transform
	children [][]int32 // Descendants per bone, for joint rotation

	position   rl.Vector3
	scale      float32
	sampleRate float64

	pose    []rl.Transform // Working buffer
	scratch []rl.Transform // Frame 0 of anims[0], owned by raylib
}

// LoadCharacter loads the model and its clips. The idle clip must be present.
// Must be called after the raylib window is created.
func LoadCharacter(cfg config.ModelConfig, idleClip string) (*Character, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("loading character: %w", err)
	}

	model := rl.LoadModel(cfg.Path)
	if model.MeshCount == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("loading character %s: no meshes", cfg.Path)
	}

	anims := rl.LoadModelAnimations(cfg.Path)
	if len(anims) == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("loading character %s: %w", cfg.Path, ErrNoClips)
	}

	c := &Character{
		model:      model,
		anims:      anims,
		byName:     make(map[string]int, len(anims)),
		bones:      append([]rl.BoneInfo(nil), model.GetBones()...),
		bind:       append([]rl.Transform(nil), model.GetBindPose()...),
		position:   rl.NewVector3(cfg.Position[0], cfg.Position[1], cfg.Position[2]),
		scale:      cfg.Scale,
		sampleRate: cfg.SampleRate,
	}
	if c.scale == 0 {
		c.scale = 1
	}

	for _, a := range anims {
		if !rl.IsModelAnimationValid(model, a) {
			c.Unload()
			return nil, fmt.Errorf("loading character %s: clip %q does not match skeleton", cfg.Path, a.GetName())
		}
		name := a.GetName()
		if _, dup := c.byName[name]; dup {
			continue
		}
		c.byName[name] = len(c.clips)
		c.clips = append(c.clips, copyFrames(a))
	}

	if _, ok := c.byName[idleClip]; !ok {
		c.Unload()
		return nil, fmt.Errorf("loading character %s: idle clip %q not found", cfg.Path, idleClip)
	}

	c.children = descendants(c.bones)
	c.pose = make([]rl.Transform, len(c.bones))
	framePoses := unsafe.Slice(anims[0].FramePoses, anims[0].FrameCount)
	c.scratch = unsafe.Slice(framePoses[0], anims[0].BoneCount)

	return c, nil
}

// copyFrames copies every frame of a raylib animation into Go slices.
func copyFrames(a rl.ModelAnimation) clipFrames {
	out := clipFrames{name: a.GetName(), frames: make([][]rl.Transform, a.FrameCount)}
	for f := 0; f < int(a.FrameCount); f++ {
		frame := make([]rl.Transform, a.BoneCount)
		for b := 0; b < int(a.BoneCount); b++ {
			frame[b] = a.GetFramePose(f, b)
		}
		out.frames[f] = frame
	}
	return out
}

// descendants lists every bone below each bone.
func descendants(bones []rl.BoneInfo) [][]int32 {
	out := make([][]int32, len(bones))
	for i := range bones {
		for p := bones[i].Parent; p >= 0 && int(p) < len(bones); p = bones[p].Parent {
			out[p] = append(out[p], int32(i))
		}
	}
	return out
}

// Clips returns the loaded clips with durations from the configured sample rate.
func (c *Character) Clips() []anim.Clip {
	clips := make([]anim.Clip, len(c.clips))
	for i, cf := range c.clips {
		clips[i] = anim.Clip{Name: cf.name, Duration: float64(len(cf.frames)) / c.sampleRate}
	}
	return clips
}

// BoneIndex returns the index of the named bone.
func (c *Character) BoneIndex(name string) (int32, bool) {
	for i, b := range c.bones {
		if BoneName(b) == name {
			return int32(i), true
		}
	}
	return -1, false
}

// BoneName returns the name of a skeleton bone.
func BoneName(b rl.BoneInfo) string {
	return rig.BoneName(b.Name[:])
}

// ApplyPose blends the weighted clips, turns each joint by its orientation
// and uploads the result. With no weights the bind pose is used.
func (c *Character) ApplyPose(weights []anim.Weighted, joints []rig.Pose) {
	if !c.blend(weights) {
		copy(c.pose, c.bind)
	}

	// ancestors first so a child joint turns with its parent's rotation applied
	sort.SliceStable(joints, func(i, j int) bool {
		return c.depth(joints[i].Bone) < c.depth(joints[j].Bone)
	})
	for _, j := range joints {
		if j.Bone < 0 || int(j.Bone) >= len(c.pose) {
			continue
		}
		rotateSubtree(c.pose, c.children[j.Bone], j.Bone, j.Yaw, j.Pitch)
	}

	copy(c.scratch, c.pose)
	rl.UpdateModelAnimation(c.model, c.anims[0], 0)
}

// blend writes the weighted average of the sampled clip frames into c.pose.
func (c *Character) blend(weights []anim.Weighted) bool {
	var acc float64
	for _, w := range weights {
		idx, ok := c.byName[w.Clip]
		if !ok || w.Weight <= 0 {
			continue
		}
		frame := c.sample(idx, w.Time)
		if acc == 0 {
			copy(c.pose, frame)
			acc = w.Weight
			continue
		}
		acc += w.Weight
		mixTransforms(c.pose, frame, float32(w.Weight/acc))
	}
	return acc > 0
}

// sample returns the frame at time t, clamped to the clip.
func (c *Character) sample(idx int, t float64) []rl.Transform {
	frames := c.clips[idx].frames
	f := int(t * c.sampleRate)
	if f < 0 {
		f = 0
	}
	if f >= len(frames) {
		f = len(frames) - 1
	}
	return frames[f]
}

func (c *Character) depth(bone int32) int {
	d := 0
	for p := bone; p >= 0 && int(p) < len(c.bones); p = c.bones[p].Parent {
		d++
	}
	return d
}

// Draw renders the model at its configured placement.
func (c *Character) Draw() {
	rl.DrawModel(c.model, c.position, c.scale, rl.White)
}

// Position returns the model's placement in world space.
func (c *Character) Position() rl.Vector3 { return c.position }

// Unload frees the model and its animations.
func (c *Character) Unload() {
	if len(c.anims) > 0 {
		rl.UnloadModelAnimations(c.anims)
		c.anims = nil
	}
	rl.UnloadModel(c.model)
}
