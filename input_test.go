package holokit

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestInputHub_SubscribeAndRemove(t *testing.T) {
	h := NewInputHub()
	var got []SourceEventType
	handle := h.OnSourceEvent(func(ev SourceEvent) { got = append(got, ev.Type) })
	if h.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", h.Subscribers())
	}

	st := SourceState{ID: 1, Position: mgl64.Vec3{1, 2, 3}, HasPosition: true}
	h.Press(st)
	h.Update(st)
	h.Release(st)
	h.Lose(st)
	want := []SourceEventType{SourcePressed, SourceUpdated, SourceReleased, SourceLost}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	handle.Remove()
	handle.Remove() // second remove is a no-op
	h.Press(st)
	if len(got) != 4 || h.Subscribers() != 0 {
		t.Errorf("handler still called after Remove (events %d, subscribers %d)", len(got), h.Subscribers())
	}
}

func TestInputHub_PressedFlag(t *testing.T) {
	h := NewInputHub()
	var states []bool
	h.OnSourceEvent(func(ev SourceEvent) { states = append(states, ev.State.Pressed) })
	h.Press(SourceState{ID: 1})
	h.Release(SourceState{ID: 1, Pressed: true})
	if !slices.Equal(states, []bool{true, false}) {
		t.Errorf("pressed flags = %v", states)
	}
}

func TestInputHub_RemoveDuringDispatch(t *testing.T) {
	h := NewInputHub()
	var calls []string
	var second CallbackHandle
	h.OnSourceEvent(func(SourceEvent) {
		calls = append(calls, "first")
		second.Remove()
	})
	second = h.OnSourceEvent(func(SourceEvent) { calls = append(calls, "second") })

	h.Press(SourceState{ID: 1})
	if !slices.Equal(calls, []string{"first"}) {
		t.Errorf("calls = %v, want only first", calls)
	}
}

func TestInputHub_SubscribeDuringDispatch(t *testing.T) {
	h := NewInputHub()
	var late int
	h.OnSourceEvent(func(SourceEvent) {
		if late == 0 {
			h.OnSourceEvent(func(SourceEvent) { late++ })
		}
	})
	h.Press(SourceState{ID: 1})
	if late != 0 {
		t.Error("handler added mid-dispatch should not see the current event")
	}
	h.Press(SourceState{ID: 1})
	if late != 1 {
		t.Errorf("late handler calls = %d, want 1", late)
	}
}

func TestCallbackHandle_ZeroValue(t *testing.T) {
	var h CallbackHandle
	h.Remove() // must not panic
}

func TestSourceState_TryGetPosition(t *testing.T) {
	if _, ok := (SourceState{}).TryGetPosition(); ok {
		t.Error("state without position reported one")
	}
	p, ok := SourceState{Position: mgl64.Vec3{1, 2, 3}, HasPosition: true}.TryGetPosition()
	if !ok || p != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("position = %v, %v", p, ok)
	}
}

func TestHandlerRegistry(t *testing.T) {
	var r handlerRegistry[int]
	var got []int
	var second CallbackHandle
	r.add(func(v int) {
		got = append(got, v)
		second.Remove()
	})
	second = r.add(func(v int) { got = append(got, -v) })
	third := r.add(func(v int) { got = append(got, v*10) })

	r.fire(1)
	if len(got) != 2 || got[0] != 1 || got[1] != 10 {
		t.Errorf("got %v, want [1 10]", got)
	}
	third.Remove()
	third.Remove()
	if r.len() != 1 {
		t.Errorf("len = %d, want 1", r.len())
	}
}

func TestGestureManager_OnTappedRemove(t *testing.T) {
	hub := NewInputHub()
	focus, err := NewFocusTracker(&fixedQuery{}, DefaultConfig().Gaze)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewGestureManager(hub, focus, DefaultConfig().Gestures)
	if err != nil {
		t.Fatal(err)
	}
	m.Enable()
	var taps int
	h := m.OnTapped(func() { taps++ })

	hub.Press(SourceState{ID: 1})
	hub.Release(SourceState{ID: 1})
	h.Remove()
	hub.Press(SourceState{ID: 1})
	hub.Release(SourceState{ID: 1})
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
}
