package holokit

import "github.com/go-gl/mathgl/mgl64"

// Gazeable receives focus notifications from the FocusTracker. Order is the
// zero-based index of the entity among those first seen in the same frame.
type Gazeable interface {
	OnGazeEnter(order int)
	OnGazeExit()
}

// Selectable receives gesture notifications routed by the GestureManager.
type Selectable interface {
	OnSelect()
	OnHold()
	OnRelease()
}

// Smoother moves an entity toward a target position over time instead of
// snapping it there.
type Smoother interface {
	SetTargetPosition(p mgl64.Vec3)
}

// Tintable is a visual that can be recolored for feedback.
type Tintable interface {
	Tint() Color
	SetTint(c Color)
}

// Updater is called once per frame during the Session's update phase.
type Updater interface {
	Update(dt float64)
}

// LateUpdater is called once per frame after focus has been updated.
type LateUpdater interface {
	LateUpdate(dt float64)
}

// --- ID counter ---

// entityIDCounter is a plain counter (no atomic: holokit is single-threaded).
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// Entity is a scene object with a pose and a set of attached components.
// Capabilities are resolved once when a component is attached; the per-frame
// code reads the resolved slices directly.
type Entity struct {
	ID   uint32
	Name string

	// Transform
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Size is the full extent along each local axis.
	Size mgl64.Vec3

	// Active entities are hit-testable and updated.
	Active bool

	components   []any
	gazeables    []Gazeable
	selectable   Selectable
	smoother     Smoother
	tintables    []Tintable
	updaters     []Updater
	lateUpdaters []LateUpdater
}

// NewEntity creates an active unit-sized entity at the origin.
func NewEntity(name string) *Entity {
	return &Entity{
		ID:       nextEntityID(),
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Size:     mgl64.Vec3{1, 1, 1},
		Active:   true,
	}
}

// Attach adds a component and records every capability it implements. A
// component may implement several capabilities. Only the first Selectable
// and Smoother attached are used.
func (e *Entity) Attach(c any) {
	if c == nil {
		return
	}
	e.components = append(e.components, c)
	if g, ok := c.(Gazeable); ok {
		e.gazeables = append(e.gazeables, g)
	}
	if s, ok := c.(Selectable); ok && e.selectable == nil {
		e.selectable = s
	}
	if s, ok := c.(Smoother); ok && e.smoother == nil {
		e.smoother = s
	}
	if t, ok := c.(Tintable); ok {
		e.tintables = append(e.tintables, t)
	}
	if u, ok := c.(Updater); ok {
		e.updaters = append(e.updaters, u)
	}
	if u, ok := c.(LateUpdater); ok {
		e.lateUpdaters = append(e.lateUpdaters, u)
	}
}

// Components returns the attached components in attach order. The returned
// slice MUST NOT be mutated.
func (e *Entity) Components() []any {
	return e.components
}

// Gazeables returns the attached Gazeable capabilities.
func (e *Entity) Gazeables() []Gazeable {
	return e.gazeables
}

// Selectable returns the attached Selectable capability, or nil.
func (e *Entity) Selectable() Selectable {
	return e.selectable
}

// Smoother returns the attached Smoother capability, or nil.
func (e *Entity) Smoother() Smoother {
	return e.smoother
}

// Tintables returns the attached Tintable capabilities.
func (e *Entity) Tintables() []Tintable {
	return e.tintables
}

// HalfExtents returns half of Size.
func (e *Entity) HalfExtents() mgl64.Vec3 {
	return e.Size.Mul(0.5)
}

// Forward returns the entity's +Z axis in world space.
func (e *Entity) Forward() mgl64.Vec3 {
	return e.Rotation.Rotate(AxisZ)
}

// Up returns the entity's +Y axis in world space.
func (e *Entity) Up() mgl64.Vec3 {
	return e.Rotation.Rotate(AxisY)
}

// Right returns the entity's +X axis in world space.
func (e *Entity) Right() mgl64.Vec3 {
	return e.Rotation.Rotate(AxisX)
}

// Material is a plain Tintable holding a single color, used when no
// renderer is attached.
type Material struct {
	Color Color
}

// NewMaterial creates a material with the given color.
func NewMaterial(c Color) *Material {
	return &Material{Color: c}
}

// Tint returns the current color.
func (m *Material) Tint() Color { return m.Color }

// SetTint replaces the current color.
func (m *Material) SetTint(c Color) { m.Color = c }
