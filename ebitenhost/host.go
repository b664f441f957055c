// Package ebitenhost runs a holokit session in a desktop window. The mouse
// stands in for the hand and the arrow keys (or WASD) turn the head.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/holokit"
)

// ErrNilSession is returned by New when no session is given.
var ErrNilSession = errors.New("ebitenhost: nil session")

const (
	mouseHand holokit.SourceID = 1
	keyHand   holokit.SourceID = 2
	maxPitch                   = 89 * math.Pi / 180
)

var (
	clearColor     = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff} // dark purple
	cursorOnColor  = color.RGBA{R: 0x40, G: 0xe0, B: 0x80, A: 0xff}
	cursorOffColor = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	// FOV is the vertical field of view in degrees.
	FOV float64
	// TurnSpeed is the head turn rate in degrees per second.
	TurnSpeed float64
	// HandDepth is the distance of the mouse hand in front of the viewer.
	HandDepth float64
	ShowFPS   bool
}

// DefaultOptions returns a 960x540 window with a 60 degree field of view.
func DefaultOptions() Options {
	return Options{
		Title:     "holokit",
		Width:     960,
		Height:    540,
		FOV:       60,
		TurnSpeed: 90,
		HandDepth: 0.5,
		ShowFPS:   true,
	}
}

// Game implements ebiten.Game over a holokit session.
type Game struct {
	session *holokit.Session
	opts    Options
	proj    Projection
	logger  *slog.Logger

	yaw, pitch float64
	mouseDown  bool
	fps        fpsCounter
	drawBuf    []*holokit.Entity
}

// New creates a game driving s. The viewer's current heading is kept.
func New(s *holokit.Session, opts Options) (*Game, error) {
	if s == nil {
		return nil, ErrNilSession
	}
	g := &Game{
		session: s,
		opts:    opts,
		proj: Projection{
			Width:  opts.Width,
			Height: opts.Height,
			FOV:    mgl64.DegToRad(opts.FOV),
		},
		logger: s.Logger().With("component", "ebitenhost"),
	}
	fwd := s.Viewer().Forward()
	g.yaw = math.Atan2(fwd[0], fwd[2])
	g.pitch = clampPitch(-math.Asin(math.Max(-1, math.Min(1, fwd[1]))))
	return g, nil
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(s *holokit.Session, opts Options) error {
	g, err := New(s, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	g.logger.Info("window closed", "frames", s.Frame())
	return nil
}

// Update reads the keyboard and mouse, feeds the session and advances it.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())

	g.turn(dt)
	g.readMouseHand()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.InjectTap(keyHand, g.handPosition())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.ShowFPS = !g.opts.ShowFPS
	}

	g.session.Update(dt)
	g.fps.update(dt)
	return nil
}

func (g *Game) turn(dt float64) {
	step := mgl64.DegToRad(g.opts.TurnSpeed) * dt
	var dyaw, dpitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dyaw -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dyaw += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dpitch -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dpitch += step
	}
	if dyaw == 0 && dpitch == 0 {
		return
	}
	g.yaw += dyaw
	g.pitch = clampPitch(g.pitch + dpitch)
	g.session.Viewer().SetYawPitch(g.yaw, g.pitch)
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

func (g *Game) handPosition() mgl64.Vec3 {
	mx, my := ebiten.CursorPosition()
	return g.proj.HandFromCursor(g.session.Viewer(), float64(mx), float64(my), g.opts.HandDepth)
}

// readMouseHand turns the left mouse button into a pressed hand source.
func (g *Game) readMouseHand() {
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state := holokit.SourceState{
		ID:          mouseHand,
		Kind:        holokit.SourceHand,
		Position:    g.handPosition(),
		HasPosition: true,
	}
	hub := g.session.Hub()
	switch {
	case pressed && !g.mouseDown:
		hub.Press(state)
	case pressed:
		state.Pressed = true
		hub.Update(state)
	case g.mouseDown:
		hub.Release(state)
	}
	g.mouseDown = pressed
}

// Draw renders the session's entities as depth-sorted squares, the gaze
// cursor and a status overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	v := g.session.Viewer()

	g.drawBuf = append(g.drawBuf[:0], g.session.Entities()...)
	slices.SortFunc(g.drawBuf, func(a, b *holokit.Entity) int {
		da := v.InverseTransformPoint(a.Position)[2]
		db := v.InverseTransformPoint(b.Position)[2]
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		default:
			return 0
		}
	})
	for _, e := range g.drawBuf {
		g.drawEntity(screen, v, e)
	}

	g.drawCursor(screen, v)
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) drawEntity(screen *ebiten.Image, v *holokit.Viewer, e *holokit.Entity) {
	if !e.Active {
		return
	}
	x, y, ok := g.proj.Project(v, e.Position)
	if !ok {
		return
	}
	depth := v.InverseTransformPoint(e.Position)[2]
	size := g.proj.ProjectedSize(e.Size[0], depth)
	c := holokit.ColorWhite
	if tints := e.Tintables(); len(tints) > 0 {
		c = tints[0].Tint()
	}
	vector.DrawFilledRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), toRGBA(c), true)
}

func (g *Game) drawCursor(screen *ebiten.Image, v *holokit.Viewer) {
	cur := g.session.Cursor()
	x, y, ok := g.proj.Project(v, cur.Position)
	if !ok {
		return
	}
	switch {
	case cur.OnHologram:
		vector.DrawFilledCircle(screen, float32(x), float32(y), 5, cursorOnColor, true)
	case cur.OffHologram:
		vector.StrokeCircle(screen, float32(x), float32(y), 4, 1.5, cursorOffColor, true)
	}
}

func (g *Game) status() string {
	var b strings.Builder
	if g.opts.ShowFPS {
		b.WriteString(g.fps.text)
		b.WriteByte('\n')
	}
	focus := g.session.Focus()
	primary := "-"
	if p := focus.Primary(); p != nil {
		primary = p.Name
	}
	fmt.Fprintf(&b, "focus: %s (%d)\n", primary, len(focus.Focused()))
	for _, e := range g.session.Entities() {
		for _, c := range e.Components() {
			m, ok := c.(*holokit.Manipulator)
			if !ok {
				continue
			}
			switch {
			case m.Manipulating():
				fmt.Fprintf(&b, "%s: manipulating\n", e.Name)
			case m.Placing():
				fmt.Fprintf(&b, "%s: placing\n", e.Name)
			}
		}
	}
	b.WriteString("arrows: look  mouse: hand  space: tap  esc: quit")
	return b.String()
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}
