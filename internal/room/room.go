// Package room builds the demo environment used by the CLI and the window
// host: a closed box of surfaces on the environment layer with a row of
// movable cubes in front of the viewer.
package room

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/holokit"
)

// Layout sizes the room. All lengths are in meters.
type Layout struct {
	Width    float64 // along X
	Depth    float64 // along Z
	Height   float64 // floor to ceiling
	Cubes    int
	CubeSize float64
	// EyeHeight is the viewer's spawn height above the floor.
	EyeHeight float64
}

// DefaultLayout is a 6x6 m room, 3 m high, with three 30 cm cubes.
func DefaultLayout() Layout {
	return Layout{
		Width:     6,
		Depth:     6,
		Height:    3,
		Cubes:     3,
		CubeSize:  0.3,
		EyeHeight: 1.6,
	}
}

// Room is a built demo room.
type Room struct {
	Layout   Layout
	Space    *holokit.Space
	Floor    *holokit.Entity
	Ceiling  *holokit.Entity
	Walls    []*holokit.Entity
	Cubes    []*holokit.Entity
	Movables []*holokit.Movable
}

var cubeColors = []holokit.Color{
	{R: 0.9, G: 0.9, B: 0.9, A: 1},
	{R: 0.4, G: 0.6, B: 1, A: 1},
	{R: 1, G: 0.8, B: 0.3, A: 1},
}

// NewSpace creates the surfaces of the room in a fresh space. The session
// must be created over the returned space before calling Populate.
func NewSpace(l Layout) (*Room, error) {
	if l.Width <= 0 || l.Depth <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("room: invalid size %gx%gx%g", l.Width, l.Depth, l.Height)
	}
	r := &Room{Layout: l, Space: holokit.NewSpace()}
	hw, hd := l.Width/2, l.Depth/2

	r.Floor = r.surface("floor", mgl64.Vec3{0, 0, 0}, holokit.AxisY)
	r.Ceiling = r.surface("ceiling", mgl64.Vec3{0, l.Height, 0}, holokit.AxisY.Mul(-1))
	r.Walls = []*holokit.Entity{
		r.surface("wall-north", mgl64.Vec3{0, l.Height / 2, hd}, mgl64.Vec3{0, 0, -1}),
		r.surface("wall-south", mgl64.Vec3{0, l.Height / 2, -hd}, mgl64.Vec3{0, 0, 1}),
		r.surface("wall-east", mgl64.Vec3{hw, l.Height / 2, 0}, mgl64.Vec3{-1, 0, 0}),
		r.surface("wall-west", mgl64.Vec3{-hw, l.Height / 2, 0}, mgl64.Vec3{1, 0, 0}),
	}
	return r, nil
}

func (r *Room) surface(name string, point, normal mgl64.Vec3) *holokit.Entity {
	e := holokit.NewEntity(name)
	e.Position = point
	e.Size = mgl64.Vec3{}
	r.Space.Add(e, holokit.Plane{Point: point, Normal: normal}, holokit.LayerEnvironment)
	return e
}

// Populate adds the cubes as movable holograms of s and places the viewer
// at the spawn point facing the cubes.
func (r *Room) Populate(s *holokit.Session) error {
	l := r.Layout
	spacing := l.CubeSize * 2.5
	start := -spacing * float64(l.Cubes-1) / 2
	for i := 0; i < l.Cubes; i++ {
		cube := holokit.NewEntity(fmt.Sprintf("cube-%d", i))
		cube.Size = mgl64.Vec3{l.CubeSize, l.CubeSize, l.CubeSize}
		cube.Position = mgl64.Vec3{start + float64(i)*spacing, l.EyeHeight, 2}
		cube.Attach(holokit.NewMaterial(cubeColors[i%len(cubeColors)]))
		r.Space.Add(cube, holokit.Box{HalfExtents: cube.HalfExtents()}, holokit.LayerDefault)

		mv, err := s.NewMovable(cube)
		if err != nil {
			return fmt.Errorf("room: %s: %w", cube.Name, err)
		}
		r.Cubes = append(r.Cubes, cube)
		r.Movables = append(r.Movables, mv)
	}
	v := s.Viewer()
	v.Position = r.Spawn()
	v.Rotation = mgl64.QuatIdent()
	return nil
}

// Spawn returns the viewer's starting position.
func (r *Room) Spawn() mgl64.Vec3 {
	return mgl64.Vec3{0, r.Layout.EyeHeight, 0}
}

// Build creates the room and a session over it.
func Build(l Layout, cfg holokit.Config) (*Room, *holokit.Session, error) {
	r, err := NewSpace(l)
	if err != nil {
		return nil, nil, err
	}
	s, err := holokit.NewSession(holokit.NewViewer(), r.Space, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := r.Populate(s); err != nil {
		s.Close()
		return nil, nil, err
	}
	return r, s, nil
}
