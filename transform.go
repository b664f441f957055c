package holokit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon is the length below which a vector is treated as zero.
const epsilon = 1e-9

// lookRotation returns the rotation whose +Z axis points along forward and
// whose +Y axis is as close to up as possible. When forward is parallel to
// up the result pitches about +X with no yaw. A zero forward yields the
// identity rotation.
//
// Composition:
//
//	right = up × forward, up' = forward × right, R = [right | up' | forward]
func lookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	if forward.Len() < epsilon {
		return mgl64.QuatIdent()
	}
	f := forward.Normalize()
	r := up.Cross(f)
	if r.Len() < epsilon {
		// Looking along up: keep +X as the right axis so the result is a
		// pure pitch.
		r = projectOnPlane(AxisX, f)
		if r.Len() < epsilon {
			r = projectOnPlane(AxisZ, f)
		}
	}
	r = r.Normalize()
	u := f.Cross(r)
	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// yawOnly zeroes the X and Z components of q and renormalizes, keeping only
// the rotation about the vertical axis. A degenerate result yields identity.
func yawOnly(q mgl64.Quat) mgl64.Quat {
	q.V[0] = 0
	q.V[2] = 0
	l := math.Sqrt(q.W*q.W + q.V[1]*q.V[1])
	if l < epsilon {
		return mgl64.QuatIdent()
	}
	q.W /= l
	q.V[1] /= l
	return q
}

// yawPitchRotation builds a rotation from yaw about +Y then pitch about the
// local +X axis. Positive pitch looks down.
func yawPitchRotation(yaw, pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, AxisY).Mul(mgl64.QuatRotate(pitch, AxisX)).Normalize()
}

// lerpVec3 linearly interpolates between a and b.
func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// mulElem multiplies two vectors component-wise.
func mulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// projectOnPlane removes the component of v along the plane normal n.
func projectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	l := n.LenSqr()
	if l < epsilon {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / l))
}

// Viewer is the head pose of the user: the origin and orientation of gaze.
type Viewer struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewViewer creates a viewer at the origin looking down +Z.
func NewViewer() *Viewer {
	return &Viewer{Rotation: mgl64.QuatIdent()}
}

// Forward returns the unit gaze direction.
func (v *Viewer) Forward() mgl64.Vec3 {
	return v.Rotation.Rotate(AxisZ)
}

// Up returns the unit up direction of the head.
func (v *Viewer) Up() mgl64.Vec3 {
	return v.Rotation.Rotate(AxisY)
}

// Right returns the unit right direction of the head.
func (v *Viewer) Right() mgl64.Vec3 {
	return v.Rotation.Rotate(AxisX)
}

// SetYawPitch orients the viewer by yaw (radians about +Y) and pitch
// (radians about the local +X axis, positive looks down).
func (v *Viewer) SetYawPitch(yaw, pitch float64) {
	v.Rotation = yawPitchRotation(yaw, pitch)
}

// LookAt orients the viewer toward target, keeping +Y up.
func (v *Viewer) LookAt(target mgl64.Vec3) {
	v.Rotation = lookRotation(target.Sub(v.Position), AxisY)
}

// TransformPoint converts a viewer-local point to world space.
func (v *Viewer) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return v.Position.Add(v.Rotation.Rotate(local))
}

// InverseTransformPoint converts a world point to viewer-local space.
func (v *Viewer) InverseTransformPoint(world mgl64.Vec3) mgl64.Vec3 {
	return v.Rotation.Inverse().Rotate(world.Sub(v.Position))
}

// GazeRay returns the gaze ray limited to maxDistance.
func (v *Viewer) GazeRay(maxDistance float64) Ray {
	return Ray{Origin: v.Position, Direction: v.Forward(), MaxDistance: maxDistance}
}
