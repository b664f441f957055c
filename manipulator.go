package holokit

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// HandTracker supplies the live hand position used for manipulation.
type HandTracker interface {
	CurrentHandPosition() mgl64.Vec3
	HasTrackedSource() bool
}

// smootherStopper is implemented by smoothers that can abandon a move in
// flight, such as Interpolator.
type smootherStopper interface {
	Stop()
}

// SurfaceKind classifies a placement surface by its normal.
type SurfaceKind uint8

const (
	SurfaceWall    SurfaceKind = iota // roughly horizontal normal
	SurfaceFloor                      // normal pointing up
	SurfaceCeiling                    // normal pointing down
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceFloor:
		return "floor"
	case SurfaceCeiling:
		return "ceiling"
	default:
		return "wall"
	}
}

// ClassifySurface returns the surface kind for normal. Normals whose
// vertical component is within tolerance of zero are walls.
func ClassifySurface(normal mgl64.Vec3, tolerance float64) SurfaceKind {
	switch {
	case normal[1] > tolerance:
		return SurfaceFloor
	case normal[1] < -tolerance:
		return SurfaceCeiling
	default:
		return SurfaceWall
	}
}

// ManipulatorOptions are the collaborators a Manipulator needs.
type ManipulatorOptions struct {
	Viewer *Viewer
	Hands  HandTracker
	Query  SpatialQuery
	// Focus is optional; when set it is suppressed while either mode is active.
	Focus  *FocusTracker
	Config ManipulationConfig
	// MaxGazeDistance limits placement queries. Zero uses Focus.MaxDistance.
	MaxGazeDistance float64
}

// Manipulator moves an entity in one of two exclusive modes.
//
// Manipulating: the entity follows the hand. With H0 and O0 the hand and
// entity positions in viewer space at activation, S the hand scale and H
// the current viewer-space hand position, the entity is placed at
// O0 + (H - H0) * S, converted back to world space, and turned to face the
// viewer about the vertical axis.
//
// Placing: the entity is snapped to the nearest environment surface along
// the gaze ray, or floats at the end of the ray on a miss.
type Manipulator struct {
	entity  *Entity
	viewer  *Viewer
	hands   HandTracker
	query   SpatialQuery
	focus   *FocusTracker
	cfg     ManipulationConfig
	scale   mgl64.Vec3
	maxGaze float64

	manipulating  bool
	placing       bool
	initialHand   mgl64.Vec3
	initialObject mgl64.Vec3
	smoother      Smoother
	session       string

	emit   func(InteractionEvent)
	logger *slog.Logger
}

// NewManipulator creates an idle manipulator for entity and attaches it.
func NewManipulator(entity *Entity, opts ManipulatorOptions) (*Manipulator, error) {
	switch {
	case entity == nil:
		return nil, ErrNilEntity
	case opts.Viewer == nil:
		return nil, ErrNilViewer
	case opts.Hands == nil:
		return nil, ErrNilHands
	case opts.Query == nil:
		return nil, ErrNilSpace
	}
	maxGaze := opts.MaxGazeDistance
	if maxGaze <= 0 && opts.Focus != nil {
		maxGaze = opts.Focus.MaxDistance()
	}
	if maxGaze <= 0 {
		maxGaze = DefaultConfig().Gaze.MaxDistance
	}
	m := &Manipulator{
		entity:  entity,
		viewer:  opts.Viewer,
		hands:   opts.Hands,
		query:   opts.Query,
		focus:   opts.Focus,
		cfg:     opts.Config,
		scale:   opts.Config.HandScale.Vec3(),
		maxGaze: maxGaze,
		logger:  nopLogger(),
	}
	entity.Attach(m)
	return m, nil
}

// Entity returns the manipulated entity.
func (m *Manipulator) Entity() *Entity { return m.entity }

// Manipulating reports whether hand manipulation is active.
func (m *Manipulator) Manipulating() bool { return m.manipulating }

// Placing reports whether surface placement is active.
func (m *Manipulator) Placing() bool { return m.placing }

// Session returns the identifier of the active mode's session, or "".
func (m *Manipulator) Session() string { return m.session }

// SetManipulating turns hand manipulation on or off. Turning it on ends
// placement and captures the hand and entity baselines.
func (m *Manipulator) SetManipulating(on bool) {
	if on == m.manipulating {
		return
	}
	if on {
		m.stopPlacing()
		m.smoother = m.entity.Smoother()
		if m.smoother == nil {
			m.logger.Debug("no smoother, moving directly", "entity", entityLabel(m.entity))
		}
		m.initialHand = m.viewer.InverseTransformPoint(m.hands.CurrentHandPosition())
		m.initialObject = m.viewer.InverseTransformPoint(m.entity.Position)
		m.session = uuid.NewString()
		m.manipulating = true
		m.fire(EventManipulationStart)
	} else {
		m.manipulating = false
		m.fire(EventManipulationEnd)
		m.session = ""
	}
	m.syncFocus()
}

// SetPlacing turns surface placement on or off. Turning it on ends
// manipulation and stops any smoothed move still in flight. A plain
// manipulation release lets the smoother settle on the last hand target.
func (m *Manipulator) SetPlacing(on bool) {
	if on == m.placing {
		return
	}
	if on {
		if m.manipulating {
			m.manipulating = false
			m.fire(EventManipulationEnd)
		}
		m.stopSmoother()
		m.session = uuid.NewString()
		m.placing = true
		m.fire(EventPlacementStart)
	} else {
		m.stopPlacing()
	}
	m.syncFocus()
}

// ToggleManipulating flips hand manipulation.
func (m *Manipulator) ToggleManipulating() {
	m.SetManipulating(!m.manipulating)
}

// TogglePlacing flips surface placement.
func (m *Manipulator) TogglePlacing() {
	m.SetPlacing(!m.placing)
}

// stopSmoother cancels a smoothed move still settling from manipulation so
// it cannot pull the entity off the surface placement puts it on.
func (m *Manipulator) stopSmoother() {
	if st, ok := m.entity.Smoother().(smootherStopper); ok {
		st.Stop()
	}
}

func (m *Manipulator) stopPlacing() {
	if !m.placing {
		return
	}
	m.placing = false
	m.fire(EventPlacementEnd)
	m.session = ""
}

// syncFocus pauses gaze tracking while either mode is active.
func (m *Manipulator) syncFocus() {
	if m.focus != nil {
		m.focus.Suppress(m, m.manipulating || m.placing)
	}
}

// LateUpdate applies the active mode. It runs after focus each frame.
func (m *Manipulator) LateUpdate(_ float64) {
	switch {
	case m.manipulating:
		m.manipulate()
	case m.placing:
		m.place()
	}
}

func (m *Manipulator) manipulate() {
	if !m.hands.HasTrackedSource() {
		return
	}
	world := m.TargetPosition(m.hands.CurrentHandPosition())
	m.entity.Rotation = yawOnly(m.viewer.Rotation)
	if m.smoother != nil {
		m.smoother.SetTargetPosition(world)
	} else {
		m.entity.Position = world
	}
}

// TargetPosition returns the world position manipulation assigns for the
// given world-space hand position.
func (m *Manipulator) TargetPosition(hand mgl64.Vec3) mgl64.Vec3 {
	local := m.viewer.InverseTransformPoint(hand)
	delta := mulElem(local.Sub(m.initialHand), m.scale)
	return m.viewer.TransformPoint(m.initialObject.Add(delta))
}

func (m *Manipulator) place() {
	origin := m.viewer.Position
	forward := m.viewer.Forward()
	hits := m.query.Raycast(Ray{Origin: origin, Direction: forward, MaxDistance: m.maxGaze}, m.cfg.PlacementMask)

	hit, ok := m.nearestSurface(hits)
	if !ok {
		m.entity.Position = origin.Add(forward.Normalize().Mul(m.maxGaze))
		return
	}

	toQuat := lookRotation(hit.Normal.Mul(-1), AxisY)
	half := m.entity.HalfExtents()[1]
	switch ClassifySurface(hit.Normal, m.cfg.SurfaceTolerance) {
	case SurfaceFloor:
		m.entity.Position = hit.Point.Add(mgl64.Vec3{0, half, 0})
		toQuat = lookRotation(forward, AxisY)
	case SurfaceCeiling:
		m.entity.Position = hit.Point.Sub(mgl64.Vec3{0, half, 0})
	default:
		m.entity.Position = hit.Point
	}
	if m.cfg.RotateTowards {
		m.entity.Rotation = yawOnly(toQuat)
	}
}

// nearestSurface returns the closest hit that is not the entity itself.
func (m *Manipulator) nearestSurface(hits []HitResult) (HitResult, bool) {
	return nearestHit(hits, m.entity)
}

func (m *Manipulator) fire(t EventType) {
	m.logger.Debug(t.String(), "entity", entityLabel(m.entity), "session", m.session)
	if m.emit == nil {
		return
	}
	m.emit(InteractionEvent{
		Type:       t,
		EntityID:   m.entity.ID,
		EntityName: m.entity.Name,
		Position:   m.entity.Position,
		Session:    m.session,
	})
}
