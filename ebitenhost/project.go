package ebitenhost

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/holokit"
)

// nearPlane is the closest viewer-space depth that is drawn.
const nearPlane = 0.05

// Projection maps viewer-space points to screen pixels with a pinhole camera.
type Projection struct {
	Width, Height int
	// FOV is the vertical field of view in radians.
	FOV float64
}

// focal returns the focal length in pixels.
func (p Projection) focal() float64 {
	return float64(p.Height) / 2 / math.Tan(p.FOV/2)
}

// Project returns the screen position of world point w as seen by v. It
// reports false for points behind the near plane.
func (p Projection) Project(v *holokit.Viewer, w mgl64.Vec3) (x, y float64, ok bool) {
	local := v.InverseTransformPoint(w)
	if local[2] < nearPlane {
		return 0, 0, false
	}
	f := p.focal()
	x = float64(p.Width)/2 + local[0]/local[2]*f
	y = float64(p.Height)/2 - local[1]/local[2]*f
	return x, y, true
}

// ProjectedSize returns the on-screen size in pixels of a world length at
// viewer-space depth.
func (p Projection) ProjectedSize(length, depth float64) float64 {
	if depth < nearPlane {
		return 0
	}
	return length / depth * p.focal()
}

// HandFromCursor places the mouse hand on a plane handDepth in front of the
// viewer, under the cursor at screen position (sx, sy).
func (p Projection) HandFromCursor(v *holokit.Viewer, sx, sy, handDepth float64) mgl64.Vec3 {
	f := p.focal()
	local := mgl64.Vec3{
		(sx - float64(p.Width)/2) / f * handDepth,
		-(sy - float64(p.Height)/2) / f * handDepth,
		handDepth,
	}
	return v.TransformPoint(local)
}

// toRGBA converts a holokit color to an 8-bit color.RGBA (premultiplied).
func toRGBA(c holokit.Color) color.RGBA {
	clamp := func(f float64) uint8 {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		default:
			return uint8(f*255 + 0.5)
		}
	}
	a := math.Min(math.Max(c.A, 0), 1)
	return color.RGBA{
		R: clamp(c.R * a),
		G: clamp(c.G * a),
		B: clamp(c.B * a),
		A: clamp(a),
	}
}
