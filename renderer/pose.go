package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// mixTransforms moves dst toward src by t: lerp for translation and scale,
// slerp for rotation.
func mixTransforms(dst, src []rl.Transform, t float32) {
	for i := range dst {
		if i >= len(src) {
			return
		}
		dst[i].Translation = rl.Vector3Lerp(dst[i].Translation, src[i].Translation, t)
		dst[i].Scale = rl.Vector3Lerp(dst[i].Scale, src[i].Scale, t)
		dst[i].Rotation = rl.QuaternionSlerp(dst[i].Rotation, src[i].Rotation, t)
	}
}

// rotateSubtree turns bone and its descendants by yaw and pitch (radians)
// expressed in the bone's own frame, pivoting on the bone's position.
// Poses are model space.
func rotateSubtree(pose []rl.Transform, subtree []int32, bone int32, yaw, pitch float32) {
	if yaw == 0 && pitch == 0 {
		return
	}

	pivot := pose[bone].Translation
	boneRot := pose[bone].Rotation
	local := rl.QuaternionFromEuler(pitch, yaw, 0)
	q := rl.QuaternionMultiply(rl.QuaternionMultiply(boneRot, local), rl.QuaternionInvert(boneRot))

	turn := func(i int32) {
		offset := rl.Vector3Subtract(pose[i].Translation, pivot)
		pose[i].Translation = rl.Vector3Add(pivot, rl.Vector3RotateByQuaternion(offset, q))
		pose[i].Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(q, pose[i].Rotation))
	}

	turn(bone)
	for _, d := range subtree {
		turn(d)
	}
}
