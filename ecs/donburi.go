// Package ecs provides ECS adapters for holokit.
package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/holokit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for holokit interaction events.
// Subscribe to this in your ECS systems to receive gaze, gesture, source and
// manipulation events.
var InteractionEventType = events.NewEventType[holokit.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) holokit.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event holokit.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Pose mirrors a holokit entity's pose and focus state into the ECS world.
type Pose struct {
	EntityID uint32
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Focused  bool
	Primary  bool
}

// PoseComponent holds the mirrored Pose of a holokit entity.
var PoseComponent = donburi.NewComponentType[Pose]()

// PoseMirror keeps one Donburi entity per holokit entity of a session and
// copies poses into it on Sync.
type PoseMirror struct {
	world   donburi.World
	entries map[uint32]donburi.Entity
}

// NewPoseMirror creates an empty mirror over world.
func NewPoseMirror(world donburi.World) *PoseMirror {
	return &PoseMirror{world: world, entries: make(map[uint32]donburi.Entity)}
}

// Sync copies every registered session entity into the world. Entities
// removed from the session since the last Sync are removed from the world.
func (m *PoseMirror) Sync(s *holokit.Session) {
	focus := s.Focus()
	seen := make(map[uint32]struct{}, len(s.Entities()))
	for _, e := range s.Entities() {
		seen[e.ID] = struct{}{}
		de, ok := m.entries[e.ID]
		if !ok || !m.world.Valid(de) {
			de = m.world.Create(PoseComponent)
			m.entries[e.ID] = de
		}
		PoseComponent.SetValue(m.world.Entry(de), Pose{
			EntityID: e.ID,
			Name:     e.Name,
			Position: e.Position,
			Rotation: e.Rotation,
			Focused:  focus.IsFocused(e),
			Primary:  focus.Primary() == e,
		})
	}
	for id, de := range m.entries {
		if _, ok := seen[id]; ok {
			continue
		}
		if m.world.Valid(de) {
			m.world.Remove(de)
		}
		delete(m.entries, id)
	}
}

// Lookup returns the mirrored pose of the holokit entity id.
func (m *PoseMirror) Lookup(id uint32) (Pose, bool) {
	de, ok := m.entries[id]
	if !ok || !m.world.Valid(de) {
		return Pose{}, false
	}
	return *PoseComponent.Get(m.world.Entry(de)), true
}

// Len returns the number of mirrored entities.
func (m *PoseMirror) Len() int {
	return len(m.entries)
}
