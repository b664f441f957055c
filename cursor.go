package holokit

import "github.com/go-gl/mathgl/mgl64"

// CursorIndicator is the capability Movable uses to hide and show the gaze
// cursor while an entity is being placed.
type CursorIndicator interface {
	SetActive(active bool)
}

// Cursor follows the gaze hit point. It shows the on-hologram indicator when
// the gaze ray hits something and the off-hologram indicator otherwise.
type Cursor struct {
	// DistanceFromCollision lifts the cursor off the surface along the normal.
	DistanceFromCollision float64

	focus  *FocusTracker
	active bool

	// OnHologram and OffHologram are the visibility of each indicator.
	OnHologram  bool
	OffHologram bool

	Position mgl64.Vec3
	// Up is the cursor's up axis, aligned with the surface normal.
	Up mgl64.Vec3
}

// NewCursor creates an active cursor driven by focus. Both indicators start
// hidden until the first LateUpdate.
func NewCursor(focus *FocusTracker, cfg CursorConfig) *Cursor {
	return &Cursor{
		DistanceFromCollision: cfg.DistanceFromCollision,
		focus:                 focus,
		active:                true,
		Up:                    AxisY,
	}
}

// SetActive shows or hides both indicators from the next LateUpdate.
func (c *Cursor) SetActive(active bool) {
	c.active = active
}

// Active reports whether the cursor is allowed to show.
func (c *Cursor) Active() bool {
	return c.active
}

// LateUpdate positions the cursor from the latest focus state.
func (c *Cursor) LateUpdate(_ float64) {
	if c.focus == nil {
		return
	}
	if c.focus.Hit() {
		c.OnHologram = c.active
		c.OffHologram = false
	} else {
		c.OffHologram = c.active
		c.OnHologram = false
	}
	n := c.focus.Normal()
	c.Position = c.focus.Position().Add(n.Mul(c.DistanceFromCollision))
	if n.Len() > epsilon {
		c.Up = n.Normalize()
	}
}
