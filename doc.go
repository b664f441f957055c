// Package holokit is the interaction core for head-mounted mixed reality
// applications: gaze focus, hand gestures and hand-driven placement of
// holograms.
//
// Everything runs on one goroutine, once per frame, from [Session.Update].
// The package has no renderer; hosts such as the ebitenhost package draw
// entities and feed device input into the session.
//
// # Quick start
//
//	space := holokit.NewSpace()
//	cube := holokit.NewEntity("cube")
//	cube.Position = mgl64.Vec3{0, 1.6, 2}
//	cube.Attach(holokit.NewMaterial(holokit.ColorWhite))
//	space.Add(cube, holokit.Box{HalfExtents: cube.HalfExtents()}, holokit.LayerDefault)
//
//	s, err := holokit.NewSession(holokit.NewViewer(), space, holokit.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	if _, err := s.NewMovable(cube); err != nil {
//		return err
//	}
//
//	for {
//		// feed s.Hub() from the device, move s.Viewer()
//		s.Update(dt)
//	}
//
// # Coordinates
//
// Y is up and an unrotated viewer or entity looks along +Z. Distances are in
// meters and times in seconds.
//
// # Entities and capabilities
//
// An [Entity] is a pose plus attached components. [Entity.Attach] records
// which capabilities a component implements: [Gazeable], [Selectable],
// [Smoother], [Tintable], [Updater] and [LateUpdater]. One component may
// implement several.
//
// # Focus
//
// The [FocusTracker] casts the gaze ray through a [SpatialQuery] each frame.
// The nearest hit is authoritative for the primary entity and the hit point.
// Entities that newly enter the focused set receive OnGazeEnter with their
// first-seen order; entities that leave receive OnGazeExit. When nothing is
// hit the focus point floats at the last hit distance facing the viewer.
//
// # Gestures
//
// Raw source events enter through the [InputHub]. A [GestureRecognizer]
// turns them into taps and holds, and the [GestureManager] routes them to
// the primary entity's Selectable. A hold's release always goes to the
// entity that received the hold.
//
// # Manipulation and placement
//
// A [Manipulator] has two exclusive modes. While manipulating, the entity
// follows the hand in viewer space scaled by [ManipulationConfig.HandScale].
// While placing, the entity snaps to the nearest environment surface along
// the gaze ray. Focus tracking is suppressed while either mode is active.
// [Movable] ties these to gestures: tap toggles placement, hold manipulates.
//
// # Events
//
// Set an [EventSink] with [Session.SetEventSink] to observe every
// [InteractionEvent]. The ecs package forwards them into a donburi world and
// the promstats package counts them for Prometheus.
//
// # Scripted input
//
// [Session.InjectTap], [Session.InjectHold] and friends queue synthetic
// source events that are consumed one per frame. [LoadScript] reads a YAML
// scenario of such steps for replay and tests.
package holokit
