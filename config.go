package holokit

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned (wrapped) by Config.Validate.
var ErrInvalidConfig = errors.New("holokit: invalid config")

// Axes is a per-axis scale factor.
type Axes struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 returns the axes as a vector.
func (a Axes) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{a.X, a.Y, a.Z}
}

// GazeConfig configures the FocusTracker.
type GazeConfig struct {
	// MaxDistance is the gaze ray length and the initial fallback distance.
	MaxDistance float64 `yaml:"max_distance"`
	// RaycastMask filters which layers the gaze ray can hit.
	RaycastMask LayerMask `yaml:"raycast_mask"`
	// StabilizationPlane enables the stabilization plane collaborator.
	StabilizationPlane bool `yaml:"stabilization_plane"`
}

// GestureConfig configures gesture recognition.
type GestureConfig struct {
	Tap  bool `yaml:"tap"`
	Hold bool `yaml:"hold"`
	// HoldThreshold is how long, in seconds, a press must last to become a hold.
	HoldThreshold float64 `yaml:"hold_threshold"`
}

// Settings returns the enabled gestures as a bitmask.
func (c GestureConfig) Settings() GestureSettings {
	var s GestureSettings
	if c.Tap {
		s |= GestureTap
	}
	if c.Hold {
		s |= GestureHold
	}
	return s
}

// ManipulationConfig configures Manipulator.
type ManipulationConfig struct {
	// HandScale scales each axis of viewer-relative hand movement.
	HandScale Axes `yaml:"hand_scale"`
	// RotateTowards applies the surface-facing rotation while placing.
	RotateTowards bool `yaml:"rotate_towards"`
	// PlacementMask filters which layers placement can land on.
	PlacementMask LayerMask `yaml:"placement_mask"`
	// SurfaceTolerance is the |normal.y| below which a surface counts as a wall.
	SurfaceTolerance float64 `yaml:"surface_tolerance"`
	// Smoothing is the Interpolator tween duration in seconds.
	Smoothing float64 `yaml:"smoothing"`
}

// CursorConfig configures the gaze Cursor.
type CursorConfig struct {
	// DistanceFromCollision lifts the cursor off the hit surface along its normal.
	DistanceFromCollision float64 `yaml:"distance_from_collision"`
}

// MovableConfig configures Movable behavior.
type MovableConfig struct {
	SelectedColor Color `yaml:"selected_color"`
	GazeColor     Color `yaml:"gaze_color"`
	// TapToPlace toggles placement on select.
	TapToPlace bool `yaml:"tap_to_place"`
	// HoldToManipulate enables hand manipulation while a hold is sustained.
	HoldToManipulate bool `yaml:"hold_to_manipulate"`
}

// LogConfig configures the session logger.
type LogConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// Config is the full interaction configuration.
type Config struct {
	Gaze         GazeConfig         `yaml:"gaze"`
	Gestures     GestureConfig      `yaml:"gestures"`
	Manipulation ManipulationConfig `yaml:"manipulation"`
	Cursor       CursorConfig       `yaml:"cursor"`
	Movable      MovableConfig      `yaml:"movable"`
	Log          LogConfig          `yaml:"log"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Gaze: GazeConfig{
			MaxDistance:        15.0,
			RaycastMask:        AllLayers,
			StabilizationPlane: true,
		},
		Gestures: GestureConfig{
			Tap:           true,
			Hold:          true,
			HoldThreshold: 0.5,
		},
		Manipulation: ManipulationConfig{
			HandScale:        Axes{10, 10, 10},
			RotateTowards:    true,
			PlacementMask:    LayerEnvironment,
			SurfaceTolerance: 1e-3,
			Smoothing:        0.1,
		},
		Cursor: CursorConfig{
			DistanceFromCollision: 0.01,
		},
		Movable: MovableConfig{
			SelectedColor:    ColorRed,
			GazeColor:        ColorCyan,
			TapToPlace:       true,
			HoldToManipulate: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Gaze.MaxDistance <= 0:
		return fmt.Errorf("%w: gaze.max_distance must be > 0, got %v", ErrInvalidConfig, c.Gaze.MaxDistance)
	case c.Gestures.HoldThreshold < 0:
		return fmt.Errorf("%w: gestures.hold_threshold must be >= 0, got %v", ErrInvalidConfig, c.Gestures.HoldThreshold)
	case c.Manipulation.SurfaceTolerance < 0 || c.Manipulation.SurfaceTolerance >= 1:
		return fmt.Errorf("%w: manipulation.surface_tolerance must be in [0, 1), got %v", ErrInvalidConfig, c.Manipulation.SurfaceTolerance)
	case c.Manipulation.Smoothing < 0:
		return fmt.Errorf("%w: manipulation.smoothing must be >= 0, got %v", ErrInvalidConfig, c.Manipulation.Smoothing)
	case c.Cursor.DistanceFromCollision < 0:
		return fmt.Errorf("%w: cursor.distance_from_collision must be >= 0, got %v", ErrInvalidConfig, c.Cursor.DistanceFromCollision)
	}
	return nil
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig. Fields not
// present in the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig overlays YAML data on DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// YAML encodes the configuration in the format LoadConfig reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
