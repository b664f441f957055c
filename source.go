package holokit

import "github.com/go-gl/mathgl/mgl64"

// SourceRecognizer keeps the set of pressed sources and designates one of
// them as current. The current source's position feeds manipulation.
//
// The first source pressed while no source is tracked becomes current.
// When the current source is released or lost the designation is cleared
// and no other tracked source is promoted.
type SourceRecognizer struct {
	hub    *InputHub
	sub    CallbackHandle
	active bool

	tracked    map[SourceID]struct{}
	current    SourceState
	hasCurrent bool
}

// NewSourceRecognizer creates a stopped recognizer over hub.
func NewSourceRecognizer(hub *InputHub) *SourceRecognizer {
	return &SourceRecognizer{hub: hub, tracked: make(map[SourceID]struct{})}
}

// Start subscribes to the hub. Starting twice keeps a single subscription.
func (r *SourceRecognizer) Start() {
	if r.active {
		return
	}
	r.sub = r.hub.OnSourceEvent(r.handle)
	r.active = true
}

// Stop unsubscribes and forgets every tracked source. Releases that happen
// while stopped are never seen, so the set would otherwise go stale.
func (r *SourceRecognizer) Stop() {
	if !r.active {
		return
	}
	r.sub.Remove()
	r.sub = CallbackHandle{}
	r.active = false
	clear(r.tracked)
	r.current = SourceState{}
	r.hasCurrent = false
}

// IsActive reports whether the recognizer is subscribed.
func (r *SourceRecognizer) IsActive() bool {
	return r.active
}

// HasTrackedSource reports whether any source is pressed.
func (r *SourceRecognizer) HasTrackedSource() bool {
	return len(r.tracked) > 0
}

// TrackedCount returns the number of pressed sources.
func (r *SourceRecognizer) TrackedCount() int {
	return len(r.tracked)
}

// IsTracked reports whether id is pressed.
func (r *SourceRecognizer) IsTracked(id SourceID) bool {
	_, ok := r.tracked[id]
	return ok
}

// Current returns the captured state of the current source.
func (r *SourceRecognizer) Current() (SourceState, bool) {
	return r.current, r.hasCurrent
}

// CurrentHandPosition returns the current source's position, or the zero
// vector when there is no current source or it has no position.
func (r *SourceRecognizer) CurrentHandPosition() mgl64.Vec3 {
	if !r.hasCurrent {
		return mgl64.Vec3{}
	}
	p, _ := r.current.TryGetPosition()
	return p
}

func (r *SourceRecognizer) handle(ev SourceEvent) {
	id := ev.State.ID
	switch ev.Type {
	case SourcePressed:
		if !r.HasTrackedSource() {
			r.current = ev.State
			r.hasCurrent = true
		}
		r.tracked[id] = struct{}{}
	case SourceUpdated:
		if r.hasCurrent && r.current.ID == id {
			r.current = ev.State
		}
	case SourceReleased, SourceLost:
		delete(r.tracked, id)
		if r.hasCurrent && r.current.ID == id {
			r.current = SourceState{}
			r.hasCurrent = false
		}
	}
}
