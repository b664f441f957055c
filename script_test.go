package holokit

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - action: look
    yaw: 90
  - action: tap
    source: 2
    z: 0.5
  - action: wait
    frames: 3
  - action: hold
    x: 0.1
    toX: 0.3
    frames: 10
`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", runner.Len())
	}
	if runner.steps[0].Action != "look" || runner.steps[0].Yaw != 90 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].source() != 2 || runner.steps[1].pos() != (mgl64.Vec3{0, 0, 0.5}) {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].source() != 1 || runner.steps[3].to() != (mgl64.Vec3{0.3, 0, 0}) {
		t.Error("step 3 mismatch")
	}
}

func TestLoadScript_JSON(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "press", "x": 1}, {"action": "release"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Len() != 2 || runner.steps[0].X != 1 {
		t.Errorf("steps = %+v", runner.steps)
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid":        `steps: [`,
		"empty":          `steps: []`,
		"unknown action": `steps: [{action: click}]`,
	}
	for name, data := range tests {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - action: wait\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner, err := LoadScriptFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if runner.Len() != 1 {
		t.Errorf("Len = %d", runner.Len())
	}
	if _, err := LoadScriptFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunScript_Closed(t *testing.T) {
	s := newBareSession(t)
	runner, _ := LoadScript([]byte(`steps: [{action: wait}]`))
	s.Close()
	if err := s.RunScript(runner); err != ErrClosed {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestRunnerStep_LookAndGoto(t *testing.T) {
	s := newBareSession(t)
	runner, err := LoadScript([]byte(`
steps:
  - {action: goto, x: 1, y: 1.6, z: -2}
  - {action: look, yaw: 90, pitch: 0}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RunScript(runner); err != nil {
		t.Fatal(err)
	}

	s.Update(frameDT)
	if s.Viewer().Position != (mgl64.Vec3{1, 1.6, -2}) {
		t.Errorf("position = %v", s.Viewer().Position)
	}
	if runner.Done() {
		t.Fatal("done after one of two steps")
	}
	s.Update(frameDT)
	if !vecNear(s.Viewer().Forward(), AxisX, 1e-9) {
		t.Errorf("forward = %v, want +X", s.Viewer().Forward())
	}
	if !runner.Done() {
		t.Error("runner not done")
	}
}

func TestRunnerStep_WaitsForInjections(t *testing.T) {
	s := newBareSession(t)
	runner, err := LoadScript([]byte(`
steps:
  - {action: tap}
  - {action: wait, frames: 2}
  - {action: look, pitch: 30}
`))
	if err != nil {
		t.Fatal(err)
	}
	s.RunScript(runner)

	var tapped int
	s.Gestures().OnTapped(func() { tapped++ })

	// Frame 1 queues and presses, frame 2 releases, frames 3-4 wait.
	for i := 0; i < 4; i++ {
		s.Update(frameDT)
	}
	if tapped != 1 {
		t.Fatalf("tapped = %d, want 1", tapped)
	}
	if f := s.Viewer().Forward(); !near(f[1], 0, 1e-9) {
		t.Fatalf("look ran early: forward = %v", f)
	}
	s.Update(frameDT)
	if f := s.Viewer().Forward(); !near(f[1], -math.Sin(mgl64.DegToRad(30)), 1e-9) {
		t.Errorf("forward = %v, want pitched down 30 degrees", f)
	}
	if !runner.Done() {
		t.Error("runner not done")
	}
}
