package holokit

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a scenario script.
type scriptStep struct {
	Action string   `yaml:"action"`
	Source SourceID `yaml:"source,omitempty"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	Z      float64  `yaml:"z,omitempty"`
	ToX    float64  `yaml:"toX,omitempty"`
	ToY    float64  `yaml:"toY,omitempty"`
	ToZ    float64  `yaml:"toZ,omitempty"`
	// Yaw and Pitch are in degrees.
	Yaw    float64 `yaml:"yaw,omitempty"`
	Pitch  float64 `yaml:"pitch,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

func (st scriptStep) pos() mgl64.Vec3 { return mgl64.Vec3{st.X, st.Y, st.Z} }

func (st scriptStep) to() mgl64.Vec3 { return mgl64.Vec3{st.ToX, st.ToY, st.ToZ} }

func (st scriptStep) source() SourceID {
	if st.Source == 0 {
		return 1
	}
	return st.Source
}

// scenarioScript is the top-level structure of a script. JSON scripts parse
// as YAML.
type scenarioScript struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "lost": true,
	"tap": true, "hold": true, "look": true, "goto": true, "wait": true,
}

// ScriptRunner sequences injected source events and viewer moves across
// frames for scripted scenarios. Attach to a Session via RunScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML or JSON script and returns a ScriptRunner ready
// to be attached to a Session via RunScript.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script scenarioScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// LoadScriptFile reads and parses the script at path.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return LoadScript(data)
}

// RunScript attaches runner to the session. The runner's step method is
// called from Session.Update before injected input is processed.
func (s *Session) RunScript(runner *ScriptRunner) error {
	if s.closed {
		return ErrClosed
	}
	s.runner = runner
	return nil
}

// Len returns the number of steps in the script.
func (r *ScriptRunner) Len() int {
	return len(r.steps)
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Session.Update.
func (r *ScriptRunner) step(s *Session) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectPress(st.source(), st.pos())
	case "move":
		s.InjectMove(st.source(), st.pos())
	case "release":
		s.InjectRelease(st.source(), st.pos())
	case "lost":
		s.InjectLost(st.source())
	case "tap":
		s.InjectTap(st.source(), st.pos())
	case "hold":
		s.InjectHold(st.source(), st.pos(), st.to(), st.Frames)
	case "look":
		s.viewer.SetYawPitch(mgl64.DegToRad(st.Yaw), mgl64.DegToRad(st.Pitch))
	case "goto":
		s.viewer.Position = st.pos()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	s.logger.Debug("script step", "index", r.cursor-1, "action", st.Action)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
