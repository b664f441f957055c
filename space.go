package holokit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Collider is an intersectable shape. Entity-bound shapes are positioned
// relative to their entity each query, so moving the entity moves the shape.
type Collider interface {
	// intersect returns the nearest hit in [0, r.MaxDistance].
	intersect(r Ray, owner *Entity) (point, normal mgl64.Vec3, dist float64, ok bool)
}

// Sphere is a sphere centered on its entity's position plus Offset.
type Sphere struct {
	Radius float64
	Offset mgl64.Vec3
}

func (s Sphere) intersect(r Ray, owner *Entity) (mgl64.Vec3, mgl64.Vec3, float64, bool) {
	center := s.Offset
	if owner != nil {
		center = owner.Position.Add(s.Offset)
	}
	oc := r.Origin.Sub(center)
	a := r.Direction.LenSqr()
	if a < epsilon {
		return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
	}
	halfB := oc.Dot(r.Direction)
	c := oc.LenSqr() - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
	}
	sqrtD := math.Sqrt(disc)

	// Nearest root in range; the far root covers origins inside the sphere.
	t := (-halfB - sqrtD) / a
	if t < 0 || t > r.MaxDistance {
		t = (-halfB + sqrtD) / a
		if t < 0 || t > r.MaxDistance {
			return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
		}
	}
	p := r.At(t)
	n := p.Sub(center)
	if n.Len() > epsilon {
		n = n.Normalize()
	}
	return p, n, t, true
}

// Box is an axis-aligned box centered on its entity's position. Entity
// rotation is ignored.
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b Box) intersect(r Ray, owner *Entity) (mgl64.Vec3, mgl64.Vec3, float64, bool) {
	var center mgl64.Vec3
	if owner != nil {
		center = owner.Position
	}
	lo := center.Sub(b.HalfExtents)
	hi := center.Add(b.HalfExtents)

	// Slab test, tracking which axis produced the entry plane.
	tMin, tMax := 0.0, r.MaxDistance
	axis, sign := -1, 0.0
	for i := 0; i < 3; i++ {
		d := r.Direction[i]
		if math.Abs(d) < epsilon {
			if r.Origin[i] < lo[i] || r.Origin[i] > hi[i] {
				return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
			}
			continue
		}
		t1 := (lo[i] - r.Origin[i]) / d
		t2 := (hi[i] - r.Origin[i]) / d
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tMin {
			tMin = t1
			axis, sign = i, s
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
		}
	}
	var n mgl64.Vec3
	if axis >= 0 {
		n[axis] = sign
	} else {
		// Origin inside the box: face the ray back at the viewer.
		n = r.Direction.Mul(-1)
	}
	return r.At(tMin), n, tMin, true
}

// Plane is an infinite one-sided plane in world space. Rays approaching
// from behind (along the normal) do not hit it.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

func (p Plane) intersect(r Ray, _ *Entity) (mgl64.Vec3, mgl64.Vec3, float64, bool) {
	n := p.Normal
	if n.Len() < epsilon {
		return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
	}
	n = n.Normalize()
	denom := n.Dot(r.Direction)
	if denom >= -epsilon {
		return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
	}
	t := p.Point.Sub(r.Origin).Dot(n) / denom
	if t < 0 || t > r.MaxDistance {
		return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
	}
	return r.At(t), n, t, true
}

type spaceEntry struct {
	entity   *Entity
	collider Collider
	layer    LayerMask
}

// Space is an in-memory SpatialQuery over a flat list of colliders.
type Space struct {
	entries []spaceEntry
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	return &Space{}
}

// Add registers a collider for entity on the given layer. Entity may be nil
// for anonymous static geometry.
func (s *Space) Add(entity *Entity, collider Collider, layer LayerMask) {
	s.entries = append(s.entries, spaceEntry{entity: entity, collider: collider, layer: layer})
}

// Remove drops every collider bound to entity.
func (s *Space) Remove(entity *Entity) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.entity != entity {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = spaceEntry{}
	}
	s.entries = kept
}

// Len returns the number of registered colliders.
func (s *Space) Len() int {
	return len(s.entries)
}

// Raycast returns all hits in registration order. The ray direction is
// normalized so reported distances are in world units.
func (s *Space) Raycast(ray Ray, mask LayerMask) []HitResult {
	if ray.Direction.Len() < epsilon {
		return nil
	}
	ray.Direction = ray.Direction.Normalize()
	var hits []HitResult
	for _, e := range s.entries {
		if !mask.Has(e.layer) {
			continue
		}
		if e.entity != nil && !e.entity.Active {
			continue
		}
		p, n, d, ok := e.collider.intersect(ray, e.entity)
		if !ok {
			continue
		}
		hits = append(hits, HitResult{Point: p, Normal: n, Distance: d, Entity: e.entity})
	}
	return hits
}
