package holokit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Interpolator is the default Smoother. SetTargetPosition starts per-axis
// tweens from the entity's current position; Update advances them and
// writes the result back to the entity.
//
// The Session calls Update; there is no global animation manager.
type Interpolator struct {
	target   *Entity
	duration float32
	easing   ease.TweenFunc

	tweens [3]*gween.Tween
	goal   mgl64.Vec3
	Done   bool
}

// NewInterpolator creates an interpolator for target that reaches each new
// goal over duration seconds. A zero duration snaps immediately.
func NewInterpolator(target *Entity, duration float64) *Interpolator {
	return &Interpolator{
		target:   target,
		duration: float32(duration),
		easing:   ease.OutQuad,
		Done:     true,
	}
}

// SetEasing replaces the easing function used for subsequent targets.
func (ip *Interpolator) SetEasing(fn ease.TweenFunc) {
	if fn != nil {
		ip.easing = fn
	}
}

// SetTargetPosition retargets the tweens toward p.
func (ip *Interpolator) SetTargetPosition(p mgl64.Vec3) {
	ip.goal = p
	if ip.duration <= 0 {
		ip.target.Position = p
		ip.Done = true
		return
	}
	from := ip.target.Position
	for i := 0; i < 3; i++ {
		ip.tweens[i] = gween.New(float32(from[i]), float32(p[i]), ip.duration, ip.easing)
	}
	ip.Done = false
}

// Stop abandons the in-flight tween and leaves the entity where it is.
func (ip *Interpolator) Stop() {
	ip.Done = true
	ip.goal = ip.target.Position
}

// Target returns the most recent goal position.
func (ip *Interpolator) Target() mgl64.Vec3 {
	return ip.goal
}

// Update advances the tweens by dt seconds and writes the entity position.
// The final frame writes the exact goal to avoid float32 drift.
func (ip *Interpolator) Update(dt float64) {
	if ip.Done {
		return
	}
	allDone := true
	var p mgl64.Vec3
	for i := 0; i < 3; i++ {
		val, finished := ip.tweens[i].Update(float32(dt))
		p[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		p = ip.goal
	}
	ip.target.Position = p
	ip.Done = allDone
}
