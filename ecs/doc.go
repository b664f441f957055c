// Package ecs provides ECS adapters for holokit's interaction event system.
//
// [NewDonburiStore] bridges holokit interaction events (gaze, tap, hold,
// source, manipulation and placement) into a [Donburi] world as typed events.
// Subscribe to [InteractionEventType] in your ECS systems to receive them.
// [PoseMirror] copies entity poses and focus state into [PoseComponent].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	session.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
