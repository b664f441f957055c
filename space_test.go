package holokit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func forwardRay(max float64) Ray {
	return Ray{Origin: mgl64.Vec3{}, Direction: AxisZ, MaxDistance: max}
}

func TestSpace_Sphere(t *testing.T) {
	s := NewSpace()
	e := NewEntity("ball")
	e.Position = mgl64.Vec3{0, 0, 5}
	s.Add(e, Sphere{Radius: 1}, LayerDefault)

	hits := s.Raycast(forwardRay(10), AllLayers)
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	h := hits[0]
	if h.Entity != e || !near(h.Distance, 4, 1e-9) {
		t.Errorf("hit = %+v, want entity at distance 4", h)
	}
	if !vecNear(h.Point, mgl64.Vec3{0, 0, 4}, 1e-9) || !vecNear(h.Normal, mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Errorf("point %v normal %v", h.Point, h.Normal)
	}

	// Moving the entity moves the collider.
	e.Position = mgl64.Vec3{5, 0, 5}
	if hits := s.Raycast(forwardRay(10), AllLayers); len(hits) != 0 {
		t.Errorf("hits after move = %d, want 0", len(hits))
	}
}

func TestSpace_SphereOriginInside(t *testing.T) {
	s := NewSpace()
	e := NewEntity("bubble")
	s.Add(e, Sphere{Radius: 2}, LayerDefault)

	hits := s.Raycast(forwardRay(10), AllLayers)
	if len(hits) != 1 || !near(hits[0].Distance, 2, 1e-9) {
		t.Fatalf("hits = %+v, want exit at distance 2", hits)
	}
}

func TestSpace_BoxFaces(t *testing.T) {
	tests := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		point  mgl64.Vec3
		normal mgl64.Vec3
	}{
		{"front", mgl64.Vec3{0, 0, -5}, AxisZ, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -1}},
		{"top", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, 1, 0}, AxisY},
		{"side", mgl64.Vec3{-5, 0.5, 0}, AxisX, mgl64.Vec3{-1, 0.5, 0}, mgl64.Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		s := NewSpace()
		e := NewEntity("crate")
		s.Add(e, Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, LayerDefault)
		hits := s.Raycast(Ray{Origin: tt.origin, Direction: tt.dir, MaxDistance: 20}, AllLayers)
		if len(hits) != 1 {
			t.Errorf("%s: hits = %d, want 1", tt.name, len(hits))
			continue
		}
		if !vecNear(hits[0].Point, tt.point, 1e-9) || !vecNear(hits[0].Normal, tt.normal, 1e-9) {
			t.Errorf("%s: point %v normal %v, want %v %v", tt.name, hits[0].Point, hits[0].Normal, tt.point, tt.normal)
		}
	}
}

func TestSpace_BoxMiss(t *testing.T) {
	s := NewSpace()
	e := NewEntity("crate")
	e.Position = mgl64.Vec3{3, 0, 5}
	s.Add(e, Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, LayerDefault)
	if hits := s.Raycast(forwardRay(20), AllLayers); len(hits) != 0 {
		t.Errorf("hits = %+v, want none", hits)
	}
}

func TestSpace_PlaneOneSided(t *testing.T) {
	s := NewSpace()
	s.Add(nil, Plane{Point: mgl64.Vec3{0, 0, 3}, Normal: mgl64.Vec3{0, 0, -1}}, LayerEnvironment)

	hits := s.Raycast(forwardRay(10), AllLayers)
	if len(hits) != 1 || hits[0].Entity != nil || !near(hits[0].Distance, 3, 1e-9) {
		t.Fatalf("front hits = %+v", hits)
	}

	back := Ray{Origin: mgl64.Vec3{0, 0, 6}, Direction: mgl64.Vec3{0, 0, -1}, MaxDistance: 10}
	if hits := s.Raycast(back, AllLayers); len(hits) != 0 {
		t.Errorf("back hits = %+v, want none", hits)
	}
}

func TestSpace_MaskMaxDistanceAndInactive(t *testing.T) {
	s := NewSpace()
	front := NewEntity("front")
	front.Position = mgl64.Vec3{0, 0, 2}
	far := NewEntity("far")
	far.Position = mgl64.Vec3{0, 0, 20}
	ui := NewEntity("ui")
	ui.Position = mgl64.Vec3{0, 0, 4}
	s.Add(front, Sphere{Radius: 0.5}, LayerDefault)
	s.Add(far, Sphere{Radius: 0.5}, LayerDefault)
	s.Add(ui, Sphere{Radius: 0.5}, LayerUI)

	if hits := s.Raycast(forwardRay(10), LayerDefault); len(hits) != 1 || hits[0].Entity != front {
		t.Errorf("default mask hits = %+v, want only front", hits)
	}
	if hits := s.Raycast(forwardRay(10), AllLayers); len(hits) != 2 {
		t.Errorf("all layers hits = %d, want 2", len(hits))
	}

	front.Active = false
	if hits := s.Raycast(forwardRay(10), LayerDefault); len(hits) != 0 {
		t.Errorf("inactive hits = %+v, want none", hits)
	}
}

func TestSpace_UnnormalizedDirection(t *testing.T) {
	s := NewSpace()
	e := NewEntity("ball")
	e.Position = mgl64.Vec3{0, 0, 5}
	s.Add(e, Sphere{Radius: 1}, LayerDefault)

	r := Ray{Direction: mgl64.Vec3{0, 0, 10}, MaxDistance: 10}
	hits := s.Raycast(r, AllLayers)
	if len(hits) != 1 || !near(hits[0].Distance, 4, 1e-9) {
		t.Errorf("hits = %+v, want distance 4 in world units", hits)
	}
	if hits := s.Raycast(Ray{MaxDistance: 10}, AllLayers); hits != nil {
		t.Errorf("zero direction hits = %+v, want nil", hits)
	}
}

func TestSpace_Remove(t *testing.T) {
	s := NewSpace()
	a := NewEntity("a")
	b := NewEntity("b")
	s.Add(a, Sphere{Radius: 1}, LayerDefault)
	s.Add(a, Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, LayerDefault)
	s.Add(b, Sphere{Radius: 1}, LayerDefault)
	s.Remove(a)
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSortHitsNearest_Stable(t *testing.T) {
	a, b, c := NewEntity("a"), NewEntity("b"), NewEntity("c")
	hits := []HitResult{{Distance: 3, Entity: a}, {Distance: 1, Entity: b}, {Distance: 3, Entity: c}}
	sortHitsNearest(hits)
	if hits[0].Entity != b || hits[1].Entity != a || hits[2].Entity != c {
		t.Errorf("order = %s %s %s", hits[0].Entity.Name, hits[1].Entity.Name, hits[2].Entity.Name)
	}
	if h, ok := nearestHit(hits, nil); !ok || h.Entity != b {
		t.Errorf("nearestHit = %+v", h)
	}
	if _, ok := nearestHit(nil, nil); ok {
		t.Error("nearestHit(nil, nil) reported a hit")
	}
}
