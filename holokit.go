package holokit

import "github.com/go-gl/mathgl/mgl64"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

var (
	// ColorWhite is the default tint (no color modification).
	ColorWhite = Color{1, 1, 1, 1}
	// ColorRed is the default selected tint.
	ColorRed = Color{1, 0, 0, 1}
	// ColorCyan is the default gaze highlight tint.
	ColorCyan = Color{0, 1, 1, 1}
)

// withAlpha returns c with its alpha replaced by a.
func (c Color) withAlpha(a float64) Color {
	c.A = a
	return c
}

// Axis unit vectors. Y is up and +Z is the forward direction of an
// unrotated viewer or entity.
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// LayerMask is a bitmask of collision layers used to filter spatial queries.
type LayerMask uint32

const (
	LayerDefault     LayerMask = 1 << 0  // ordinary holograms
	LayerUI          LayerMask = 1 << 5  // menus and panels
	LayerEnvironment LayerMask = 1 << 31 // spatial-mapping surfaces
	AllLayers        LayerMask = ^LayerMask(0)
)

// Has reports whether any bit of layer is set in m.
func (m LayerMask) Has(layer LayerMask) bool {
	return m&layer != 0
}

// SourceKind identifies the physical kind of an input source.
type SourceKind uint8

const (
	SourceHand       SourceKind = iota // articulated or tracked hand
	SourceController                   // motion controller or clicker
	SourceVoice                        // voice "select" command
	SourceOther
)

func (k SourceKind) String() string {
	switch k {
	case SourceHand:
		return "hand"
	case SourceController:
		return "controller"
	case SourceVoice:
		return "voice"
	default:
		return "other"
	}
}

// SourceID identifies one physical input source for as long as it is tracked.
type SourceID uint32

// GestureSettings is a bitmask of gestures a recognizer will report.
type GestureSettings uint8

const (
	GestureTap  GestureSettings = 1 << iota // press and release before the hold threshold
	GestureHold                             // press held past the hold threshold
	GestureNone GestureSettings = 0
)

// Has reports whether every gesture in g is enabled in s.
func (s GestureSettings) Has(g GestureSettings) bool {
	return s&g == g && g != 0
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventGazeEnter         EventType = iota // an entity entered the focused set
	EventGazeExit                           // an entity left the focused set
	EventTap                                // a tap gesture was recognized
	EventHoldStart                          // a hold gesture started
	EventHoldEnd                            // a hold gesture completed or was canceled
	EventSourcePressed                      // an input source was pressed
	EventSourceReleased                     // an input source was released
	EventSourceLost                         // an input source stopped being tracked
	EventManipulationStart                  // hand manipulation began on an entity
	EventManipulationEnd                    // hand manipulation ended
	EventPlacementStart                     // surface placement began on an entity
	EventPlacementEnd                       // surface placement ended
)

var eventTypeNames = [...]string{
	EventGazeEnter:         "gaze_enter",
	EventGazeExit:          "gaze_exit",
	EventTap:               "tap",
	EventHoldStart:         "hold_start",
	EventHoldEnd:           "hold_end",
	EventSourcePressed:     "source_pressed",
	EventSourceReleased:    "source_released",
	EventSourceLost:        "source_lost",
	EventManipulationStart: "manipulation_start",
	EventManipulationEnd:   "manipulation_end",
	EventPlacementStart:    "placement_start",
	EventPlacementEnd:      "placement_end",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// EventSink is the interface for optional event consumers (ECS bridges,
// metrics collectors). When set on a Session, interaction events are
// forwarded to it.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data to an EventSink.
type InteractionEvent struct {
	Type       EventType
	EntityID   uint32
	EntityName string
	// Order is the first-seen index for EventGazeEnter.
	Order int
	// Source fields (valid for source and gesture events)
	SourceID   SourceID
	SourceKind SourceKind
	// Spatial fields (valid for gaze and source events)
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	// Session is the manipulation/placement session identifier.
	Session string
}

// MultiSink fans an event out to several sinks in order.
type MultiSink []EventSink

// EmitEvent forwards event to every non-nil sink.
func (m MultiSink) EmitEvent(event InteractionEvent) {
	for _, s := range m {
		if s != nil {
			s.EmitEvent(event)
		}
	}
}
