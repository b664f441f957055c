package holokit

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// GestureManager routes recognized gestures to the focused entity's
// Selectable and exposes the current hand position for manipulation.
//
// A hold is delivered to the primary focused entity when it starts; the
// matching release goes to that same entity even if focus moved since.
type GestureManager struct {
	focus   *FocusTracker
	basic   *BasicRecognizer
	sources *SourceRecognizer

	held *Entity

	taps handlerRegistry[*Entity]

	emit   func(InteractionEvent)
	logger *slog.Logger
}

// NewGestureManager creates a stopped manager. It returns ErrNilFocus when
// focus is nil.
func NewGestureManager(hub *InputHub, focus *FocusTracker, cfg GestureConfig) (*GestureManager, error) {
	if focus == nil {
		return nil, ErrNilFocus
	}
	m := &GestureManager{
		focus:   focus,
		sources: NewSourceRecognizer(hub),
		logger:  nopLogger(),
	}
	m.basic = NewBasicRecognizer(hub, cfg, m.onTap, m.onHold, m.onHoldEnd)
	return m, nil
}

// Enable starts both recognizers. Safe to call repeatedly.
func (m *GestureManager) Enable() {
	m.basic.Start()
	m.sources.Start()
}

// Disable stops both recognizers. An in-flight hold is ended first. Safe to
// call repeatedly.
func (m *GestureManager) Disable() {
	m.basic.Stop()
	m.sources.Stop()
}

// Restart cancels in-flight recognition and resumes capturing.
func (m *GestureManager) Restart() {
	m.basic.Restart()
	m.sources.Start()
}

// Enabled reports whether the manager is capturing gestures.
func (m *GestureManager) Enabled() bool {
	return m.basic.IsActive()
}

// Advance moves gesture timing forward by dt seconds.
func (m *GestureManager) Advance(dt float64) {
	m.basic.Advance(dt)
}

// OnTapped registers a callback fired after every tap is routed.
func (m *GestureManager) OnTapped(fn func()) CallbackHandle {
	return m.taps.add(func(*Entity) { fn() })
}

// HandPosition returns the current hand position, or the zero vector.
func (m *GestureManager) HandPosition() mgl64.Vec3 {
	return m.sources.CurrentHandPosition()
}

// CurrentHandPosition implements HandTracker.
func (m *GestureManager) CurrentHandPosition() mgl64.Vec3 {
	return m.HandPosition()
}

// HasTrackedSource reports whether any source is pressed.
func (m *GestureManager) HasTrackedSource() bool {
	return m.sources.HasTrackedSource()
}

// Sources returns the source recognizer.
func (m *GestureManager) Sources() *SourceRecognizer {
	return m.sources
}

// Held returns the entity currently receiving a hold, or nil.
func (m *GestureManager) Held() *Entity {
	return m.held
}

func (m *GestureManager) onTap() {
	target := m.focus.Primary()
	m.logger.Debug("tap", "target", entityLabel(target))
	if target != nil && target.selectable != nil {
		target.selectable.OnSelect()
	}
	m.fire(EventTap, target)
	m.taps.fire(target)
}

func (m *GestureManager) onHold() {
	target := m.focus.Primary()
	m.logger.Debug("hold start", "target", entityLabel(target))
	if target != nil && target.selectable != nil {
		m.held = target
		target.selectable.OnHold()
	}
	m.fire(EventHoldStart, target)
}

func (m *GestureManager) onHoldEnd() {
	target := m.held
	m.held = nil
	m.logger.Debug("hold end", "target", entityLabel(target))
	if target != nil {
		target.selectable.OnRelease()
	}
	m.fire(EventHoldEnd, target)
}

func (m *GestureManager) fire(t EventType, target *Entity) {
	if m.emit == nil {
		return
	}
	ev := InteractionEvent{Type: t}
	if target != nil {
		ev.EntityID = target.ID
		ev.EntityName = target.Name
	}
	if src, ok := m.sources.Current(); ok {
		ev.SourceID = src.ID
		ev.SourceKind = src.Kind
	}
	m.emit(ev)
}
