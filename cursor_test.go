package holokit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCursor_OnAndOffHologram(t *testing.T) {
	q := &fixedQuery{}
	focus := newTestTracker(t, q)
	c := NewCursor(focus, CursorConfig{DistanceFromCollision: 0.1})

	if c.OnHologram || c.OffHologram {
		t.Fatal("indicators visible before the first LateUpdate")
	}

	q.hits = []HitResult{{Point: mgl64.Vec3{0, 0, 2}, Normal: mgl64.Vec3{0, 0, -1}, Distance: 2}}
	focus.Update(mgl64.Vec3{}, AxisZ)
	c.LateUpdate(frameDT)
	if !c.OnHologram || c.OffHologram {
		t.Errorf("hit: on=%v off=%v", c.OnHologram, c.OffHologram)
	}
	if !vecNear(c.Position, mgl64.Vec3{0, 0, 1.9}, 1e-9) {
		t.Errorf("position = %v, want lifted off the surface", c.Position)
	}
	if !vecNear(c.Up, mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Errorf("up = %v, want surface normal", c.Up)
	}

	q.hits = nil
	focus.Update(mgl64.Vec3{}, AxisZ)
	c.LateUpdate(frameDT)
	if c.OnHologram || !c.OffHologram {
		t.Errorf("miss: on=%v off=%v", c.OnHologram, c.OffHologram)
	}
	// Floats at the last hit distance, lifted toward the viewer.
	if !vecNear(c.Position, mgl64.Vec3{0, 0, 1.9}, 1e-9) {
		t.Errorf("miss position = %v", c.Position)
	}
}

func TestCursor_SetActive(t *testing.T) {
	q := &fixedQuery{hits: []HitResult{{Point: mgl64.Vec3{0, 0, 2}, Normal: mgl64.Vec3{0, 0, -1}, Distance: 2}}}
	focus := newTestTracker(t, q)
	c := NewCursor(focus, CursorConfig{})
	focus.Update(mgl64.Vec3{}, AxisZ)

	c.SetActive(false)
	c.LateUpdate(frameDT)
	if c.Active() || c.OnHologram || c.OffHologram {
		t.Errorf("inactive cursor visible: on=%v off=%v", c.OnHologram, c.OffHologram)
	}
	c.SetActive(true)
	c.LateUpdate(frameDT)
	if !c.OnHologram {
		t.Error("reactivated cursor hidden")
	}
}

func TestCursor_NilFocus(t *testing.T) {
	c := NewCursor(nil, CursorConfig{})
	c.LateUpdate(frameDT)
	if c.Position != (mgl64.Vec3{}) || c.Up != AxisY {
		t.Errorf("nil focus moved cursor: %v %v", c.Position, c.Up)
	}
}
