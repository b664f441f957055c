package holokit

import (
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNilViewer     = errors.New("holokit: nil viewer")
	ErrNilSpace      = errors.New("holokit: nil spatial query")
	ErrNilFocus      = errors.New("holokit: nil focus tracker")
	ErrNilEntity     = errors.New("holokit: nil entity")
	ErrNilHands      = errors.New("holokit: nil hand tracker")
	ErrNoManipulator = errors.New("holokit: movable requires a manipulator")
	ErrClosed        = errors.New("holokit: session closed")
)

// Session is the top-level object that owns the viewer, the spatial query,
// the input hub, focus and gesture state, the cursor and the entities.
type Session struct {
	cfg    Config
	viewer *Viewer
	query  SpatialQuery

	hub      *InputHub
	focus    *FocusTracker
	gestures *GestureManager
	cursor   *Cursor
	hubSub   CallbackHandle

	entities []*Entity

	sink   EventSink
	logger *slog.Logger
	debug  bool
	frame  uint64
	closed bool

	// Synthetic input (see inject.go)
	injectQueue []syntheticSourceEvent
	runner      *ScriptRunner
}

// NewSession wires a session over viewer and query. Gesture capture starts
// immediately.
func NewSession(viewer *Viewer, query SpatialQuery, cfg Config) (*Session, error) {
	if viewer == nil {
		return nil, ErrNilViewer
	}
	if query == nil {
		return nil, ErrNilSpace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	focus, err := NewFocusTracker(query, cfg.Gaze)
	if err != nil {
		return nil, err
	}
	hub := NewInputHub()
	gestures, err := NewGestureManager(hub, focus, cfg.Gestures)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:      cfg,
		viewer:   viewer,
		query:    query,
		hub:      hub,
		focus:    focus,
		gestures: gestures,
		cursor:   NewCursor(focus, cfg.Cursor),
		logger:   nopLogger(),
		debug:    cfg.Log.Debug,
	}
	focus.emit = s.emit
	gestures.emit = s.emit
	s.hubSub = hub.OnSourceEvent(s.onSourceEvent)
	gestures.Enable()
	return s, nil
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config { return s.cfg }

// Viewer returns the head pose.
func (s *Session) Viewer() *Viewer { return s.viewer }

// Query returns the spatial query used for gaze and placement.
func (s *Session) Query() SpatialQuery { return s.query }

// Hub returns the input hub. Platform input is fed through it.
func (s *Session) Hub() *InputHub { return s.hub }

// Focus returns the focus tracker.
func (s *Session) Focus() *FocusTracker { return s.focus }

// Gestures returns the gesture manager.
func (s *Session) Gestures() *GestureManager { return s.gestures }

// Cursor returns the gaze cursor.
func (s *Session) Cursor() *Cursor { return s.cursor }

// Frame returns the number of updates run so far.
func (s *Session) Frame() uint64 { return s.frame }

// Entities returns the registered entities in add order. The returned slice
// MUST NOT be mutated.
func (s *Session) Entities() []*Entity { return s.entities }

// SetEventSink sets the receiver of interaction events. Nil disables it.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLogger replaces the session logger and every collaborator's logger.
// Nil discards logs.
func (s *Session) SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger()
	}
	s.logger = l
	s.focus.logger = l.With("component", "focus")
	s.gestures.logger = l.With("component", "gestures")
	for _, e := range s.entities {
		s.wire(e)
	}
}

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// SetDebugMode enables per-frame timing logs at debug level.
func (s *Session) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Add registers entity for per-frame updates. Adding an entity twice is a
// no-op. Manipulators already attached are wired to the session's events.
func (s *Session) Add(entity *Entity) error {
	if entity == nil {
		return ErrNilEntity
	}
	if slices.Contains(s.entities, entity) {
		return nil
	}
	s.entities = append(s.entities, entity)
	s.wire(entity)
	return nil
}

// Remove unregisters entity. It does not remove its collider from the space.
func (s *Session) Remove(entity *Entity) {
	i := slices.Index(s.entities, entity)
	if i < 0 {
		return
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	for _, c := range entity.components {
		if m, ok := c.(*Manipulator); ok {
			m.SetManipulating(false)
			m.SetPlacing(false)
			m.emit = nil
		}
	}
}

func (s *Session) wire(e *Entity) {
	for _, c := range e.components {
		if m, ok := c.(*Manipulator); ok {
			m.emit = s.emit
			m.logger = s.logger.With("component", "manipulator")
		}
	}
}

// NewManipulator attaches a Manipulator to entity using the session's
// viewer, hands, query and focus, and registers the entity.
func (s *Session) NewManipulator(entity *Entity) (*Manipulator, error) {
	m, err := NewManipulator(entity, ManipulatorOptions{
		Viewer:          s.viewer,
		Hands:           s.gestures,
		Query:           s.query,
		Focus:           s.focus,
		Config:          s.cfg.Manipulation,
		MaxGazeDistance: s.cfg.Gaze.MaxDistance,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Add(entity); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMovable makes entity a movable hologram: it attaches an Interpolator
// when smoothing is configured and the entity has no Smoother, a
// Manipulator and a Movable that toggles the session cursor.
func (s *Session) NewMovable(entity *Entity) (*Movable, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}
	if entity.Smoother() == nil && s.cfg.Manipulation.Smoothing > 0 {
		entity.Attach(NewInterpolator(entity, s.cfg.Manipulation.Smoothing))
	}
	m, err := s.NewManipulator(entity)
	if err != nil {
		return nil, err
	}
	return NewMovable(m, s.cursor, s.cfg.Movable)
}

// Update runs one frame: injected input, gesture timing, Update components,
// focus, LateUpdate components and the cursor.
func (s *Session) Update(dt float64) {
	if s.closed {
		return
	}
	s.frame++

	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjectedInput()
	s.gestures.Advance(dt)

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, e := range s.entities {
		if !e.Active {
			continue
		}
		for _, u := range e.updaters {
			u.Update(dt)
		}
	}

	if s.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	s.focus.Update(s.viewer.Position, s.viewer.Forward())

	if s.debug {
		stats.focusTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, e := range s.entities {
		if !e.Active {
			continue
		}
		for _, u := range e.lateUpdaters {
			u.LateUpdate(dt)
		}
	}
	s.cursor.LateUpdate(dt)

	if s.debug {
		stats.lateTime = time.Since(t0)
		stats.hitCount = s.focus.lastHitCount
		stats.focusedSize = len(s.focus.focused)
		s.debugLog(stats)
	}
}

// Close stops gesture capture and releases the session's subscriptions.
// Further updates are no-ops. Safe to call repeatedly.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.gestures.Disable()
	s.hubSub.Remove()
	s.hubSub = CallbackHandle{}
	s.closed = true
	s.injectQueue = nil
	s.runner = nil
	s.logger.Debug("session closed", "frames", s.frame)
	return nil
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool { return s.closed }

func (s *Session) onSourceEvent(ev SourceEvent) {
	var t EventType
	switch ev.Type {
	case SourcePressed:
		t = EventSourcePressed
	case SourceReleased:
		t = EventSourceReleased
	case SourceLost:
		t = EventSourceLost
	default:
		return
	}
	pos, _ := ev.State.TryGetPosition()
	s.emit(InteractionEvent{
		Type:       t,
		SourceID:   ev.State.ID,
		SourceKind: ev.State.Kind,
		Position:   pos,
	})
}

func (s *Session) emit(ev InteractionEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

// GazeTarget returns the world point the cursor currently sits on.
func (s *Session) GazeTarget() mgl64.Vec3 {
	return s.cursor.Position
}
