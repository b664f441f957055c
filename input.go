package holokit

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// SourceState is a snapshot of an input source taken when an event fired.
type SourceState struct {
	ID      SourceID
	Kind    SourceKind
	Pressed bool
	// Position is only meaningful when HasPosition is true.
	Position    mgl64.Vec3
	HasPosition bool
}

// TryGetPosition returns the source position and whether it is available.
func (s SourceState) TryGetPosition() (mgl64.Vec3, bool) {
	if !s.HasPosition {
		return mgl64.Vec3{}, false
	}
	return s.Position, true
}

// SourceEventType identifies a raw input source event.
type SourceEventType uint8

const (
	SourcePressed  SourceEventType = iota // the source began a press
	SourceUpdated                         // the source moved or changed state
	SourceReleased                        // the source ended a press
	SourceLost                            // the source is no longer tracked
)

func (t SourceEventType) String() string {
	switch t {
	case SourcePressed:
		return "pressed"
	case SourceUpdated:
		return "updated"
	case SourceReleased:
		return "released"
	case SourceLost:
		return "lost"
	default:
		return "unknown"
	}
}

// SourceEvent is a raw per-source hardware event.
type SourceEvent struct {
	Type  SourceEventType
	State SourceState
}

// --- Handler registry ---

type handlerEntry[T any] struct {
	id uint32
	fn func(T)
}

// handlerRegistry holds removable callbacks for one event type. The hub,
// the gesture recognizer and the gesture manager each keep one.
type handlerRegistry[T any] struct {
	entries []handlerEntry[T]
	nextID  uint32
}

// CallbackHandle allows removing a registered callback. Remove is safe to
// call more than once and on the zero value.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

func (r *handlerRegistry[T]) add(fn func(T)) CallbackHandle {
	r.nextID++
	r.entries = append(r.entries, handlerEntry[T]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, remove: r.remove}
}

func (r *handlerRegistry[T]) remove(id uint32) {
	for i := range r.entries {
		if r.entries[i].id == id {
			copy(r.entries[i:], r.entries[i+1:])
			r.entries[len(r.entries)-1] = handlerEntry[T]{}
			r.entries = r.entries[:len(r.entries)-1]
			return
		}
	}
}

func (r *handlerRegistry[T]) len() int {
	return len(r.entries)
}

func (r *handlerRegistry[T]) registered(id uint32) bool {
	for _, e := range r.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// fire dispatches over a snapshot so handlers may subscribe or unsubscribe
// from inside a callback. Handlers removed mid-dispatch are skipped.
func (r *handlerRegistry[T]) fire(ev T) {
	for _, e := range slices.Clone(r.entries) {
		if !r.registered(e.id) {
			continue
		}
		e.fn(ev)
	}
}

// InputHub is the input source provider. Device backends (or tests) feed it
// raw source events; recognizers subscribe to them.
type InputHub struct {
	handlers handlerRegistry[SourceEvent]
}

// NewInputHub creates a hub with no subscribers.
func NewInputHub() *InputHub {
	return &InputHub{}
}

// OnSourceEvent registers a callback for every raw source event.
func (h *InputHub) OnSourceEvent(fn func(SourceEvent)) CallbackHandle {
	return h.handlers.add(fn)
}

// Subscribers returns the number of registered callbacks.
func (h *InputHub) Subscribers() int {
	return h.handlers.len()
}

// Press emits a SourcePressed event.
func (h *InputHub) Press(state SourceState) {
	state.Pressed = true
	h.fire(SourceEvent{Type: SourcePressed, State: state})
}

// Update emits a SourceUpdated event.
func (h *InputHub) Update(state SourceState) {
	h.fire(SourceEvent{Type: SourceUpdated, State: state})
}

// Release emits a SourceReleased event.
func (h *InputHub) Release(state SourceState) {
	state.Pressed = false
	h.fire(SourceEvent{Type: SourceReleased, State: state})
}

// Lose emits a SourceLost event.
func (h *InputHub) Lose(state SourceState) {
	state.Pressed = false
	h.fire(SourceEvent{Type: SourceLost, State: state})
}

func (h *InputHub) fire(ev SourceEvent) {
	h.handlers.fire(ev)
}
