package room

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/holokit"
)

const dt = 1.0 / 60

func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-6
}

func TestBuild_DefaultLayout(t *testing.T) {
	r, s, err := Build(DefaultLayout(), holokit.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if len(r.Walls) != 4 {
		t.Errorf("walls = %d, want 4", len(r.Walls))
	}
	if len(r.Cubes) != 3 || len(r.Movables) != 3 {
		t.Fatalf("cubes = %d movables = %d, want 3", len(r.Cubes), len(r.Movables))
	}
	// 6 surfaces + 3 cubes
	if r.Space.Len() != 9 {
		t.Errorf("space colliders = %d, want 9", r.Space.Len())
	}
	if len(s.Entities()) != 3 {
		t.Errorf("session entities = %d, want 3", len(s.Entities()))
	}
	if !vecNear(s.Viewer().Position, r.Spawn()) {
		t.Errorf("viewer at %v, want %v", s.Viewer().Position, r.Spawn())
	}
}

func TestNewSpace_InvalidSize(t *testing.T) {
	l := DefaultLayout()
	l.Height = 0
	if _, err := NewSpace(l); err == nil {
		t.Error("expected error for zero height")
	}
}

func TestRoom_GazeHitsMiddleCube(t *testing.T) {
	r, s, err := Build(DefaultLayout(), holokit.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Update(dt)

	if got := s.Focus().Primary(); got != r.Cubes[1] {
		t.Fatalf("primary = %v, want cube-1", got)
	}
	// cube face at z = 2 - 0.15
	if got := s.Focus().Position(); !vecNear(got, mgl64.Vec3{0, 1.6, 1.85}) {
		t.Errorf("focus position = %v", got)
	}
	if !s.Focus().IsFocused(r.Walls[0]) {
		t.Error("north wall behind the cube should be focused")
	}
}

func TestRoom_TapPlacesCubeOnWall(t *testing.T) {
	r, s, err := Build(DefaultLayout(), holokit.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	cube := r.Cubes[1]
	s.InjectTap(1, mgl64.Vec3{0, 1.2, 0.3})
	s.Update(dt) // press
	s.Update(dt) // release: tap selects and placement runs

	if !r.Movables[1].Selected() || !r.Movables[1].Manipulator().Placing() {
		t.Fatal("cube should be selected and placing after tap")
	}
	if !s.Focus().IsDisabled() {
		t.Error("focus should be suppressed while placing")
	}
	if !vecNear(cube.Position, mgl64.Vec3{0, 1.6, 3}) {
		t.Errorf("cube at %v, want on north wall", cube.Position)
	}

	// Look down at the floor in front of the viewer.
	s.Viewer().SetYawPitch(0, math.Pi/4)
	s.Update(dt)
	want := mgl64.Vec3{0, 0.15, 1.6}
	if !vecNear(cube.Position, want) {
		t.Errorf("cube at %v, want %v on floor", cube.Position, want)
	}
}
