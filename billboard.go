package holokit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PivotAxis restricts which axes a Billboard may rotate about.
type PivotAxis uint8

const (
	PivotXYZ PivotAxis = iota // rotate freely to match the viewer
	PivotX                    // keep the entity's right axis fixed
	PivotY                    // keep the entity's up axis fixed
)

// Billboard keeps an entity oriented along the viewer's gaze. When Smoothed,
// the orientation eases in from the pose the entity had when the billboard
// was enabled.
type Billboard struct {
	Pivot    PivotAxis
	Smoothed bool
	// Duration is the ease-in time in seconds.
	Duration float64

	target *Entity
	viewer *Viewer

	tween        *gween.Tween
	t            float64
	startForward mgl64.Vec3
	startUp      mgl64.Vec3
}

// NewBillboard creates a smoothed XYZ billboard with a two second ease-in.
func NewBillboard(target *Entity, viewer *Viewer) *Billboard {
	b := &Billboard{
		Pivot:    PivotXYZ,
		Smoothed: true,
		Duration: 2.0,
		target:   target,
		viewer:   viewer,
	}
	b.Enable()
	return b
}

// Enable captures the current pose and restarts the ease-in.
func (b *Billboard) Enable() {
	b.startForward = b.target.Forward()
	b.startUp = b.target.Up()
	b.t = 0
	if b.Duration > 0 {
		b.tween = gween.New(0, 1, float32(b.Duration), ease.InOutCubic)
	} else {
		b.tween = nil
	}
}

// Update advances the ease-in and reorients the entity.
func (b *Billboard) Update(dt float64) {
	switch {
	case !b.Smoothed || b.tween == nil:
		b.t = 1
	default:
		v, _ := b.tween.Update(float32(dt))
		b.t = float64(v)
	}

	var forward, up mgl64.Vec3
	switch b.Pivot {
	case PivotX:
		right := b.target.Right()
		forward = projectOnPlane(b.viewer.Forward(), right)
		if forward.Len() < epsilon {
			return
		}
		forward = forward.Normalize()
		up = lerpVec3(b.startUp, forward.Cross(right), b.t)
	case PivotY:
		up = b.target.Up()
		forward = lerpVec3(b.startForward, b.viewer.Forward(), b.t)
	default:
		forward = lerpVec3(b.startForward, b.viewer.Forward(), b.t)
		up = lerpVec3(b.startUp, b.viewer.Up(), b.t)
	}
	b.target.Rotation = lookRotation(forward, up)
}
