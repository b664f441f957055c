package holokit

// GestureEventType identifies a raw recognized gesture.
type GestureEventType uint8

const (
	GestureTapped        GestureEventType = iota // press and release before the hold threshold
	GestureHoldStarted                           // press held past the hold threshold
	GestureHoldCompleted                         // release after a hold started
	GestureHoldCanceled                          // source lost or recognition canceled mid-hold
)

func (t GestureEventType) String() string {
	switch t {
	case GestureTapped:
		return "tapped"
	case GestureHoldStarted:
		return "hold_started"
	case GestureHoldCompleted:
		return "hold_completed"
	case GestureHoldCanceled:
		return "hold_canceled"
	default:
		return "unknown"
	}
}

// GestureEvent is emitted by a GestureRecognizer.
type GestureEvent struct {
	Type     GestureEventType
	SourceID SourceID
	Source   SourceKind
	TapCount int
}

// pendingGesture is the in-flight recognition for the first pressed source.
type pendingGesture struct {
	active  bool
	id      SourceID
	kind    SourceKind
	elapsed float64
	holding bool
}

// GestureRecognizer turns raw source events from an InputHub into tap and
// hold gestures. Only the first pressed source is recognized at a time.
// Hold timing advances with Advance, once per frame.
type GestureRecognizer struct {
	hub       *InputHub
	settings  GestureSettings
	threshold float64

	capturing bool
	sub       CallbackHandle
	pending   pendingGesture

	handlers handlerRegistry[GestureEvent]
}

// NewGestureRecognizer creates a stopped recognizer over hub.
func NewGestureRecognizer(hub *InputHub, settings GestureSettings, holdThreshold float64) *GestureRecognizer {
	return &GestureRecognizer{hub: hub, settings: settings, threshold: holdThreshold}
}

// SetRecognizableGestures replaces the enabled gestures and cancels any
// in-flight recognition.
func (r *GestureRecognizer) SetRecognizableGestures(settings GestureSettings) {
	r.CancelGestures()
	r.settings = settings
}

// RecognizableGestures returns the enabled gestures.
func (r *GestureRecognizer) RecognizableGestures() GestureSettings {
	return r.settings
}

// OnGesture registers a callback for recognized gestures.
func (r *GestureRecognizer) OnGesture(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(fn)
}

// StartCapturingGestures subscribes to the hub. Calling it while already
// capturing does nothing.
func (r *GestureRecognizer) StartCapturingGestures() {
	if r.capturing {
		return
	}
	r.sub = r.hub.OnSourceEvent(r.handleSource)
	r.capturing = true
}

// StopCapturingGestures unsubscribes from the hub and discards in-flight
// recognition without reporting it. Calling it while stopped does nothing.
func (r *GestureRecognizer) StopCapturingGestures() {
	if !r.capturing {
		return
	}
	r.sub.Remove()
	r.sub = CallbackHandle{}
	r.capturing = false
	r.pending = pendingGesture{}
}

// CancelGestures abandons in-flight recognition. A hold that already
// started is reported as canceled.
func (r *GestureRecognizer) CancelGestures() {
	p := r.pending
	r.pending = pendingGesture{}
	if p.active && p.holding {
		r.fire(GestureEvent{Type: GestureHoldCanceled, SourceID: p.id, Source: p.kind})
	}
}

// IsCapturing reports whether the recognizer is subscribed to the hub.
func (r *GestureRecognizer) IsCapturing() bool {
	return r.capturing
}

// Advance moves hold timing forward by dt seconds.
func (r *GestureRecognizer) Advance(dt float64) {
	p := &r.pending
	if !r.capturing || !p.active || p.holding || !r.settings.Has(GestureHold) {
		return
	}
	p.elapsed += dt
	if p.elapsed >= r.threshold {
		p.holding = true
		r.fire(GestureEvent{Type: GestureHoldStarted, SourceID: p.id, Source: p.kind})
	}
}

func (r *GestureRecognizer) handleSource(ev SourceEvent) {
	p := r.pending
	switch ev.Type {
	case SourcePressed:
		if p.active {
			return
		}
		r.pending = pendingGesture{active: true, id: ev.State.ID, kind: ev.State.Kind}
	case SourceReleased:
		if !p.active || p.id != ev.State.ID {
			return
		}
		r.pending = pendingGesture{}
		if p.holding {
			r.fire(GestureEvent{Type: GestureHoldCompleted, SourceID: p.id, Source: p.kind})
		} else if r.settings.Has(GestureTap) {
			r.fire(GestureEvent{Type: GestureTapped, SourceID: p.id, Source: p.kind, TapCount: 1})
		}
	case SourceLost:
		if !p.active || p.id != ev.State.ID {
			return
		}
		r.pending = pendingGesture{}
		if p.holding {
			r.fire(GestureEvent{Type: GestureHoldCanceled, SourceID: p.id, Source: p.kind})
		}
	}
}

func (r *GestureRecognizer) fire(ev GestureEvent) {
	r.handlers.fire(ev)
}

// BasicRecognizer reduces recognized gestures to three callbacks. Both
// completed and canceled holds are reported through onHoldEnd.
type BasicRecognizer struct {
	recognizer *GestureRecognizer
	sub        CallbackHandle
	active     bool

	onTap       func()
	onHoldStart func()
	onHoldEnd   func()
}

// NewBasicRecognizer creates a stopped recognizer for tap and hold. Nil
// callbacks are ignored.
func NewBasicRecognizer(hub *InputHub, cfg GestureConfig, onTap, onHoldStart, onHoldEnd func()) *BasicRecognizer {
	return &BasicRecognizer{
		recognizer:  NewGestureRecognizer(hub, cfg.Settings(), cfg.HoldThreshold),
		onTap:       onTap,
		onHoldStart: onHoldStart,
		onHoldEnd:   onHoldEnd,
	}
}

// Start subscribes and begins capturing. Starting twice keeps a single
// subscription.
func (b *BasicRecognizer) Start() {
	if b.active {
		return
	}
	b.sub = b.recognizer.OnGesture(b.handle)
	b.recognizer.StartCapturingGestures()
	b.active = true
}

// Stop cancels in-flight gestures, stops capturing and unsubscribes.
// Stopping a stopped recognizer does nothing.
func (b *BasicRecognizer) Stop() {
	if !b.active {
		return
	}
	b.recognizer.CancelGestures()
	b.recognizer.StopCapturingGestures()
	b.sub.Remove()
	b.sub = CallbackHandle{}
	b.active = false
}

// Restart cancels in-flight recognition and resumes capturing without a
// full teardown. A stopped recognizer is started.
func (b *BasicRecognizer) Restart() {
	if !b.active {
		b.Start()
		return
	}
	b.recognizer.CancelGestures()
	b.recognizer.StartCapturingGestures()
}

// IsActive reports whether the recognizer is capturing.
func (b *BasicRecognizer) IsActive() bool {
	return b.active
}

// Advance moves hold timing forward by dt seconds.
func (b *BasicRecognizer) Advance(dt float64) {
	b.recognizer.Advance(dt)
}

// Recognizer returns the underlying gesture recognizer.
func (b *BasicRecognizer) Recognizer() *GestureRecognizer {
	return b.recognizer
}

func (b *BasicRecognizer) handle(ev GestureEvent) {
	var fn func()
	switch ev.Type {
	case GestureTapped:
		fn = b.onTap
	case GestureHoldStarted:
		fn = b.onHoldStart
	case GestureHoldCompleted, GestureHoldCanceled:
		fn = b.onHoldEnd
	}
	if fn != nil {
		fn()
	}
}
