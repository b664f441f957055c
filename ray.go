package holokit

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line used for spatial queries. Direction is expected to be
// unit length; MaxDistance limits how far along it hits are reported.
type Ray struct {
	Origin      mgl64.Vec3
	Direction   mgl64.Vec3
	MaxDistance float64
}

// At returns the point on the ray at distance t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// HitResult is a single ray intersection. Entity is nil for hits against
// colliders that are not bound to an entity.
type HitResult struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Entity   *Entity
}

// SpatialQuery is the capability the core consumes to intersect rays with
// the world. Implementations return every hit within ray.MaxDistance whose
// layer is in mask. The order is unspecified. Callers treat the returned
// slice as read-only, so a provider may return the same backing array on
// every call.
type SpatialQuery interface {
	Raycast(ray Ray, mask LayerMask) []HitResult
}

// SpatialQueryFunc adapts a function to the SpatialQuery interface.
type SpatialQueryFunc func(ray Ray, mask LayerMask) []HitResult

// Raycast calls f(ray, mask).
func (f SpatialQueryFunc) Raycast(ray Ray, mask LayerMask) []HitResult {
	return f(ray, mask)
}

// sortHitsNearest orders hits by ascending distance. The sort is stable so
// equidistant hits keep the provider's order.
func sortHitsNearest(hits []HitResult) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}

// nearestHit returns the closest hit that does not belong to skip, if any.
// A nil skip keeps every hit. hits is not modified.
func nearestHit(hits []HitResult, skip *Entity) (HitResult, bool) {
	best := -1
	for i := range hits {
		if skip != nil && hits[i].Entity == skip {
			continue
		}
		if best < 0 || hits[i].Distance < hits[best].Distance {
			best = i
		}
	}
	if best < 0 {
		return HitResult{}, false
	}
	return hits[best], true
}
