package holokit

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Stabilizer is the rendering collaborator that keeps holograms steady
// around the focus point. The FocusTracker only toggles it.
type Stabilizer interface {
	SetEnabled(enabled bool)
}

// planeTracker is implemented by stabilizers that want the focus point.
type planeTracker interface {
	TrackPlane(point, normal mgl64.Vec3)
}

// FocusPlane is the default Stabilizer. It records the focus point and
// normal each frame while enabled.
type FocusPlane struct {
	Enabled bool
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
}

// SetEnabled toggles plane tracking.
func (p *FocusPlane) SetEnabled(enabled bool) { p.Enabled = enabled }

// TrackPlane records the plane while enabled.
func (p *FocusPlane) TrackPlane(point, normal mgl64.Vec3) {
	if !p.Enabled {
		return
	}
	p.Point = point
	p.Normal = normal
}

// FocusTracker casts the gaze ray once per frame, maintains the set of
// focused entities and notifies their Gazeable capabilities on change.
//
// Hits are processed nearest-first. The nearest hit decides the primary
// entity, position, normal and last hit distance.
type FocusTracker struct {
	query SpatialQuery
	cfg   GazeConfig

	// Disabled stops the tracker; FocusState stays frozen while set.
	Disabled    bool
	suppressors map[any]struct{}

	hit             bool
	hitInfo         HitResult
	position        mgl64.Vec3
	normal          mgl64.Vec3
	primary         *Entity
	focused         []*Entity
	spare           []*Entity
	prevSet         map[*Entity]struct{}
	lastHitDistance float64
	lastHitCount    int
	hitBuf          []HitResult

	stabilizer    Stabilizer
	newStabilizer func() Stabilizer

	emit   func(InteractionEvent)
	logger *slog.Logger
}

// NewFocusTracker creates a tracker over query. It returns ErrNilSpace when
// query is nil.
func NewFocusTracker(query SpatialQuery, cfg GazeConfig) (*FocusTracker, error) {
	if query == nil {
		return nil, ErrNilSpace
	}
	return &FocusTracker{
		query:           query,
		cfg:             cfg,
		suppressors:     make(map[any]struct{}),
		prevSet:         make(map[*Entity]struct{}),
		lastHitDistance: cfg.MaxDistance,
		newStabilizer:   func() Stabilizer { return &FocusPlane{} },
		logger:          nopLogger(),
	}, nil
}

// Update runs one frame of focus tracking from the given gaze origin and
// forward direction.
func (t *FocusTracker) Update(origin, forward mgl64.Vec3) {
	if !t.IsDisabled() {
		t.updateRaycast(origin, forward)
	}
	t.updateStabilizer()
}

func (t *FocusTracker) updateRaycast(origin, forward mgl64.Vec3) {
	raw := t.query.Raycast(Ray{Origin: origin, Direction: forward, MaxDistance: t.cfg.MaxDistance}, t.cfg.RaycastMask)
	t.hitBuf = append(t.hitBuf[:0], raw...)
	hits := t.hitBuf
	sortHitsNearest(hits)
	t.lastHitCount = len(hits)
	t.hit = len(hits) > 0

	prev := t.focused
	clear(t.prevSet)
	for _, e := range prev {
		t.prevSet[e] = struct{}{}
	}
	t.focused = t.spare[:0]

	order := 0
	for i := range hits {
		e := hits[i].Entity
		if e == nil || t.contains(e) {
			continue
		}
		t.focused = append(t.focused, e)
		if _, seen := t.prevSet[e]; seen {
			continue
		}
		for _, g := range e.gazeables {
			g.OnGazeEnter(order)
		}
		t.fire(InteractionEvent{
			Type: EventGazeEnter, EntityID: e.ID, EntityName: e.Name, Order: order,
			Position: hits[i].Point, Normal: hits[i].Normal, Distance: hits[i].Distance,
		})
		order++
	}

	oldPrimary := t.primary
	if t.hit {
		t.hitInfo = hits[0]
		t.position = hits[0].Point
		t.normal = hits[0].Normal
		t.lastHitDistance = hits[0].Distance
		t.primary = hits[0].Entity
	} else {
		// Float at the last hit distance facing the viewer.
		t.hitInfo = HitResult{}
		t.position = origin.Add(forward.Mul(t.lastHitDistance))
		t.normal = forward.Mul(-1)
		t.primary = nil
	}
	if t.primary != oldPrimary {
		t.logger.Debug("focus changed", "from", entityLabel(oldPrimary), "to", entityLabel(t.primary))
	}

	for _, e := range prev {
		if t.contains(e) {
			continue
		}
		for _, g := range e.gazeables {
			g.OnGazeExit()
		}
		t.fire(InteractionEvent{Type: EventGazeExit, EntityID: e.ID, EntityName: e.Name})
	}
	t.spare = prev[:0]
}

// contains reports whether e is in the current focused set.
func (t *FocusTracker) contains(e *Entity) bool {
	for _, f := range t.focused {
		if f == e {
			return true
		}
	}
	return false
}

// updateStabilizer ensures exactly one stabilizer exists when enabled and
// syncs its flag.
func (t *FocusTracker) updateStabilizer() {
	if t.cfg.StabilizationPlane && t.stabilizer == nil && t.newStabilizer != nil {
		t.stabilizer = t.newStabilizer()
	}
	if t.stabilizer == nil {
		return
	}
	t.stabilizer.SetEnabled(t.cfg.StabilizationPlane)
	if pt, ok := t.stabilizer.(planeTracker); ok {
		pt.TrackPlane(t.position, t.normal)
	}
}

func (t *FocusTracker) fire(ev InteractionEvent) {
	if t.emit != nil {
		t.emit(ev)
	}
}

// SetStabilizer installs s as the stabilizer, replacing any existing one.
func (t *FocusTracker) SetStabilizer(s Stabilizer) {
	t.stabilizer = s
}

// Stabilizer returns the current stabilizer, or nil if none was created.
func (t *FocusTracker) Stabilizer() Stabilizer {
	return t.stabilizer
}

// SetStabilizationPlane toggles the stabilization plane on the next update.
func (t *FocusTracker) SetStabilizationPlane(enabled bool) {
	t.cfg.StabilizationPlane = enabled
}

// Suppress pauses (on=true) or releases (on=false) tracking on behalf of
// owner. Tracking resumes once every owner has released it.
func (t *FocusTracker) Suppress(owner any, on bool) {
	if on {
		t.suppressors[owner] = struct{}{}
	} else {
		delete(t.suppressors, owner)
	}
}

// IsDisabled reports whether the tracker is disabled or suppressed.
func (t *FocusTracker) IsDisabled() bool {
	return t.Disabled || len(t.suppressors) > 0
}

// Hit reports whether the latest gaze ray hit anything.
func (t *FocusTracker) Hit() bool { return t.hit }

// HitInfo returns the nearest hit of the latest query.
func (t *FocusTracker) HitInfo() HitResult { return t.hitInfo }

// Position returns the gaze hit point, or the extrapolated point on a miss.
func (t *FocusTracker) Position() mgl64.Vec3 { return t.position }

// Normal returns the hit normal, or the reversed gaze direction on a miss.
func (t *FocusTracker) Normal() mgl64.Vec3 { return t.normal }

// Primary returns the entity of the nearest hit, or nil.
func (t *FocusTracker) Primary() *Entity { return t.primary }

// Focused returns the focused entities nearest-first. The returned slice
// MUST NOT be mutated and is only valid until the next Update.
func (t *FocusTracker) Focused() []*Entity { return t.focused }

// IsFocused reports whether e is in the focused set.
func (t *FocusTracker) IsFocused(e *Entity) bool { return t.contains(e) }

// LastHitDistance returns the distance of the most recent hit-bearing frame.
func (t *FocusTracker) LastHitDistance() float64 { return t.lastHitDistance }

// MaxDistance returns the configured gaze ray length.
func (t *FocusTracker) MaxDistance() float64 { return t.cfg.MaxDistance }

// SetPrimary overrides the primary entity. Only nil or a member of the
// focused set is accepted; it reports whether the override was applied.
func (t *FocusTracker) SetPrimary(e *Entity) bool {
	if e != nil && !t.contains(e) {
		return false
	}
	t.primary = e
	return true
}
