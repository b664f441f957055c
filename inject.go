package holokit

import "github.com/go-gl/mathgl/mgl64"

// syntheticSourceEvent is a single injected interaction source event.
// Injected events go through the same InputHub as platform input.
type syntheticSourceEvent struct {
	typ   SourceEventType
	state SourceState
}

func (s *Session) inject(typ SourceEventType, id SourceID, pos mgl64.Vec3, hasPos bool) {
	s.injectQueue = append(s.injectQueue, syntheticSourceEvent{
		typ: typ,
		state: SourceState{
			ID:          id,
			Kind:        SourceHand,
			Pressed:     typ == SourcePressed || typ == SourceUpdated,
			Position:    pos,
			HasPosition: hasPos,
		},
	})
}

// InjectPress queues a hand press at the given world position. The event is
// consumed on the next Update.
func (s *Session) InjectPress(id SourceID, pos mgl64.Vec3) {
	s.inject(SourcePressed, id, pos, true)
}

// InjectMove queues a position update for a pressed hand. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (s *Session) InjectMove(id SourceID, pos mgl64.Vec3) {
	s.inject(SourceUpdated, id, pos, true)
}

// InjectRelease queues a hand release at the given world position.
func (s *Session) InjectRelease(id SourceID, pos mgl64.Vec3) {
	s.inject(SourceReleased, id, pos, true)
}

// InjectLost queues loss of tracking for a hand. Lost sources carry no
// position.
func (s *Session) InjectLost(id SourceID) {
	s.inject(SourceLost, id, mgl64.Vec3{}, false)
}

// InjectTap is a convenience that queues a press followed by a release at
// the same position. Consumes two frames.
func (s *Session) InjectTap(id SourceID, pos mgl64.Vec3) {
	s.InjectPress(id, pos)
	s.InjectRelease(id, pos)
}

// InjectHold queues a full hold sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// The total sequence consumes frames frames. Minimum frames is 2
// (press + release). Whether it is recognized as a hold depends on the
// frame time and the configured hold threshold.
func (s *Session) InjectHold(id SourceID, from, to mgl64.Vec3, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(id, from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(id, lerpVec3(from, to, t))
	}
	s.InjectRelease(id, to)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Session) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the hub. Returns true if an event was consumed.
func (s *Session) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.typ {
	case SourcePressed:
		s.hub.Press(evt.state)
	case SourceUpdated:
		s.hub.Update(evt.state)
	case SourceReleased:
		s.hub.Release(evt.state)
	case SourceLost:
		s.hub.Lose(evt.state)
	}
	return true
}
