package holokit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const frameDT = 1.0 / 60

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// gazeRecorder records Gazeable calls.
type gazeRecorder struct {
	enters []int
	exits  int
	log    *[]string
	name   string
}

func (g *gazeRecorder) OnGazeEnter(order int) {
	g.enters = append(g.enters, order)
	if g.log != nil {
		*g.log = append(*g.log, "enter:"+g.name)
	}
}

func (g *gazeRecorder) OnGazeExit() {
	g.exits++
	if g.log != nil {
		*g.log = append(*g.log, "exit:"+g.name)
	}
}

// selectRecorder records Selectable calls.
type selectRecorder struct {
	selects, holds, releases int
}

func (s *selectRecorder) OnSelect()  { s.selects++ }
func (s *selectRecorder) OnHold()    { s.holds++ }
func (s *selectRecorder) OnRelease() { s.releases++ }

// fakeHands is a HandTracker with a settable position.
type fakeHands struct {
	pos     mgl64.Vec3
	tracked bool
}

func (h *fakeHands) CurrentHandPosition() mgl64.Vec3 { return h.pos }
func (h *fakeHands) HasTrackedSource() bool          { return h.tracked }

// fixedQuery returns a copy of hits for every query and records the last ray
// and mask.
type fixedQuery struct {
	hits     []HitResult
	lastRay  Ray
	lastMask LayerMask
	calls    int
}

func (q *fixedQuery) Raycast(ray Ray, mask LayerMask) []HitResult {
	q.calls++
	q.lastRay = ray
	q.lastMask = mask
	return append([]HitResult(nil), q.hits...)
}

// eventLog is an EventSink that records events.
type eventLog struct {
	events []InteractionEvent
}

func (l *eventLog) EmitEvent(ev InteractionEvent) {
	l.events = append(l.events, ev)
}

func (l *eventLog) types() []EventType {
	out := make([]EventType, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Type
	}
	return out
}

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}
