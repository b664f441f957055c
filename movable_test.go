package holokit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type cursorRecorder struct {
	states []bool
}

func (c *cursorRecorder) SetActive(active bool) { c.states = append(c.states, active) }

func newMovableRig(t *testing.T) (*manipRig, *Movable, *Material, *cursorRecorder) {
	t.Helper()
	r := newManipRig(t)
	mat := NewMaterial(Color{1, 1, 1, 0.5})
	r.entity.Attach(mat)
	cur := &cursorRecorder{}
	mv, err := NewMovable(r.m, cur, DefaultConfig().Movable)
	if err != nil {
		t.Fatal(err)
	}
	return r, mv, mat, cur
}

func TestNewMovable_NilManipulator(t *testing.T) {
	if _, err := NewMovable(nil, nil, DefaultConfig().Movable); err != ErrNoManipulator {
		t.Errorf("err = %v, want ErrNoManipulator", err)
	}
}

func TestMovable_AttachesAsSelectable(t *testing.T) {
	r, mv, _, _ := newMovableRig(t)
	if r.entity.Selectable() != Selectable(mv) {
		t.Error("movable is not the entity's Selectable")
	}
	if mv.Manipulator() != r.m {
		t.Error("Manipulator() mismatch")
	}
}

func TestMovable_TintPriority(t *testing.T) {
	_, mv, mat, _ := newMovableRig(t)
	white := Color{1, 1, 1, 0.5}
	cyan := Color{0, 1, 1, 0.5}
	red := Color{1, 0, 0, 0.5}

	mv.OnGazeEnter(0)
	if mat.Color != cyan {
		t.Errorf("gazed: %v, want %v", mat.Color, cyan)
	}
	mv.OnSelect()
	if mat.Color != red {
		t.Errorf("gazed+selected: %v, want %v", mat.Color, red)
	}
	mv.OnGazeExit()
	if mat.Color != red {
		t.Errorf("selected: %v, want %v", mat.Color, red)
	}
	mv.OnSelect()
	if mat.Color != white {
		t.Errorf("idle: %v, want %v", mat.Color, white)
	}
	mv.OnGazeEnter(0)
	mv.OnGazeExit()
	if mat.Color != white {
		t.Errorf("after gaze: %v, want %v", mat.Color, white)
	}
}

func TestMovable_SelectTogglesPlacingAndCursor(t *testing.T) {
	r, mv, _, cur := newMovableRig(t)

	mv.OnSelect()
	if !mv.Selected() || !r.m.Placing() {
		t.Fatalf("selected=%v placing=%v, want both", mv.Selected(), r.m.Placing())
	}
	mv.OnSelect()
	if mv.Selected() || r.m.Placing() {
		t.Fatalf("selected=%v placing=%v, want neither", mv.Selected(), r.m.Placing())
	}
	want := []bool{false, true}
	if len(cur.states) != 2 || cur.states[0] != want[0] || cur.states[1] != want[1] {
		t.Errorf("cursor states = %v, want %v", cur.states, want)
	}
}

func TestMovable_HoldAndRelease(t *testing.T) {
	r, mv, _, _ := newMovableRig(t)

	mv.OnHold()
	if !r.m.Manipulating() {
		t.Fatal("hold did not start manipulation")
	}
	mv.OnRelease()
	if r.m.Manipulating() || r.m.Placing() {
		t.Errorf("after release: manipulating=%v placing=%v", r.m.Manipulating(), r.m.Placing())
	}

	// Release without a hold is a no-op.
	mv.OnRelease()
	if r.m.Manipulating() || r.m.Placing() {
		t.Error("stray release changed state")
	}
}

func TestMovable_ReleaseResumesPlacing(t *testing.T) {
	r, mv, _, _ := newMovableRig(t)

	mv.OnSelect()
	mv.OnHold()
	if r.m.Placing() || !r.m.Manipulating() {
		t.Fatalf("hold while placing: manipulating=%v placing=%v", r.m.Manipulating(), r.m.Placing())
	}
	mv.OnRelease()
	if !r.m.Placing() || r.m.Manipulating() {
		t.Errorf("release while selected: manipulating=%v placing=%v", r.m.Manipulating(), r.m.Placing())
	}
}

func TestMovable_DisabledAndConfig(t *testing.T) {
	r, mv, _, _ := newMovableRig(t)
	mv.Enabled = false
	mv.OnSelect()
	mv.OnHold()
	if mv.Selected() || r.m.Placing() || r.m.Manipulating() {
		t.Error("disabled movable reacted to gestures")
	}

	r2 := newManipRig(t)
	cfg := DefaultConfig().Movable
	cfg.TapToPlace = false
	cfg.HoldToManipulate = false
	mv2, err := NewMovable(r2.m, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	mv2.OnSelect()
	mv2.OnHold()
	if mv2.Selected() || r2.m.Placing() || r2.m.Manipulating() {
		t.Error("movable reacted with both gestures turned off")
	}
}

func TestMovable_PlacesThroughManipulator(t *testing.T) {
	r, mv, _, _ := newMovableRig(t)
	r.entity.Size = mgl64.Vec3{0.2, 0.2, 0.2}
	r.q.hits = []HitResult{{Point: mgl64.Vec3{0, 1, 3}, Normal: mgl64.Vec3{0, 0, -1}, Distance: 3}}

	mv.OnSelect()
	r.m.LateUpdate(frameDT)
	if !vecNear(r.entity.Position, mgl64.Vec3{0, 1, 3}, 1e-9) {
		t.Errorf("position = %v, want wall hit", r.entity.Position)
	}
}

func TestMovable_PlacedEntityStaysAfterSmoothedHold(t *testing.T) {
	r, mv, _, _ := newMovableRig(t)
	ip := NewInterpolator(r.entity, 0.1)
	r.entity.Attach(ip)
	r.entity.Position = mgl64.Vec3{0, 1.6, 2}
	r.q.hits = []HitResult{{Point: mgl64.Vec3{0, 0, 1.6}, Normal: AxisY, Distance: 2}}

	mv.OnSelect()
	r.hands.pos = mgl64.Vec3{0, 1.6, 0.5}
	mv.OnHold()
	r.hands.pos = mgl64.Vec3{0.3, 1.6, 0.5}
	r.m.LateUpdate(frameDT)
	ip.Update(0.02)

	// Release resumes placement, then a tap drops the entity.
	mv.OnRelease()
	r.m.LateUpdate(frameDT)
	placed := r.entity.Position
	if !vecNear(placed, mgl64.Vec3{0, 0.5, 1.6}, 1e-9) {
		t.Fatalf("placed at %v", placed)
	}
	mv.OnSelect()
	for i := 0; i < 5; i++ {
		ip.Update(0.05)
	}
	if r.entity.Position != placed {
		t.Errorf("entity moved from %v to %v after placement ended", placed, r.entity.Position)
	}
}
