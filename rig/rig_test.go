package rig

import (
	"math"
	"testing"

	"github.com/pthm-cable/puppet/gaze"
)

func TestAimAppliesPerJointLimits(t *testing.T) {
	r := New(gaze.DefaultShape())
	r.AddJoint("neck", 5, 50)
	r.AddJoint("waist", 2, 30)

	vp := gaze.Viewport{Width: 1000, Height: 1000}
	r.Aim(gaze.PointerSample{X: 0, Y: 0}, vp)

	neck, ok := r.Orientation("neck")
	if !ok {
		t.Fatal("neck missing")
	}
	if math.Abs(float64(neck.Yaw-gaze.Radians(-50))) > 1e-5 || math.Abs(float64(neck.Pitch-gaze.Radians(-25))) > 1e-5 {
		t.Errorf("unexpected neck orientation %+v", neck)
	}

	waist, _ := r.Orientation("waist")
	if math.Abs(float64(waist.Yaw-gaze.Radians(-30))) > 1e-5 || math.Abs(float64(waist.Pitch-gaze.Radians(-15))) > 1e-5 {
		t.Errorf("unexpected waist orientation %+v", waist)
	}
}

func TestAimOverwritesPreviousSample(t *testing.T) {
	r := New(gaze.DefaultShape())
	r.AddJoint("neck", 0, 50)
	vp := gaze.Viewport{Width: 800, Height: 600}

	r.Aim(gaze.PointerSample{X: 800, Y: 600}, vp)
	r.Aim(gaze.PointerSample{X: 400, Y: 240}, vp)

	neck, _ := r.Orientation("neck")
	if neck.Yaw != 0 || neck.Pitch != 0 {
		t.Errorf("expected zero orientation at midpoint, got %+v", neck)
	}
}

func TestAddJointDuplicate(t *testing.T) {
	r := New(gaze.DefaultShape())
	a := r.AddJoint("neck", 1, 50)
	b := r.AddJoint("neck", 9, 10)
	if a != b {
		t.Error("expected duplicate name to return the first entity")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 joint, got %d", r.Len())
	}

	poses := r.Poses()
	if len(poses) != 1 || poses[0].Bone != 1 {
		t.Errorf("expected first joint kept, got %+v", poses)
	}
}

func TestPosesCarryBones(t *testing.T) {
	r := New(gaze.DefaultShape())
	r.AddJoint("neck", 7, 50)
	r.AddJoint("waist", 3, 30)
	r.Aim(gaze.PointerSample{X: 1000, Y: 1000}, gaze.Viewport{Width: 1000, Height: 1000})

	bones := map[string]int32{}
	for _, p := range r.Poses() {
		bones[p.Name] = p.Bone
		if p.Yaw <= 0 || p.Pitch <= 0 {
			t.Errorf("%s: expected positive yaw and pitch at bottom-right, got %f %f", p.Name, p.Yaw, p.Pitch)
		}
	}
	if bones["neck"] != 7 || bones["waist"] != 3 {
		t.Errorf("unexpected bones %v", bones)
	}
}

func TestUnknownJoint(t *testing.T) {
	r := New(gaze.DefaultShape())
	if _, ok := r.Orientation("tail"); ok {
		t.Error("expected unknown joint lookup to fail")
	}
	if len(r.Poses()) != 0 {
		t.Error("expected empty rig to have no poses")
	}
}

func TestBoneName(t *testing.T) {
	var full [8]int8
	for i, ch := range "Spine_02" {
		full[i] = int8(ch)
	}

	tests := []struct {
		name string
		raw  []int8
		want string
	}{
		{"terminated", []int8{'N', 'e', 'c', 'k', 0, 'x', 'y'}, "Neck"},
		{"fills buffer", full[:], "Spine_02"},
		{"empty", []int8{0, 'a'}, ""},
		{"nil", nil, ""},
	}
	for _, tc := range tests {
		if got := BoneName(tc.raw); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
