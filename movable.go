package holokit

// Movable is the interactive behavior of a placeable hologram. Tapping it
// toggles surface placement; holding it manipulates it with the hand. Gaze
// and selection each drive their own tint.
type Movable struct {
	cfg         MovableConfig
	manipulator *Manipulator
	cursor      CursorIndicator
	tintables   []Tintable
	original    []Color

	// Enabled gates select, hold and release handling.
	Enabled bool

	selected bool
	gazed    bool
}

// NewMovable attaches a Movable to the manipulator's entity. The entity's
// Tintables must be attached first; their colors at this point are the
// restore colors. Cursor may be nil.
func NewMovable(m *Manipulator, cursor CursorIndicator, cfg MovableConfig) (*Movable, error) {
	if m == nil {
		return nil, ErrNoManipulator
	}
	tints := m.entity.Tintables()
	mv := &Movable{
		cfg:         cfg,
		manipulator: m,
		cursor:      cursor,
		tintables:   tints,
		original:    make([]Color, len(tints)),
		Enabled:     true,
	}
	for i, t := range tints {
		mv.original[i] = t.Tint()
	}
	m.entity.Attach(mv)
	return mv, nil
}

// Selected reports whether the entity is selected for placement.
func (mv *Movable) Selected() bool { return mv.selected }

// Gazed reports whether the entity is in the focused set.
func (mv *Movable) Gazed() bool { return mv.gazed }

// Manipulator returns the controller this behavior drives.
func (mv *Movable) Manipulator() *Manipulator { return mv.manipulator }

// OnSelect toggles the selected state and placement.
func (mv *Movable) OnSelect() {
	if !mv.Enabled || !mv.cfg.TapToPlace {
		return
	}
	mv.selected = !mv.selected
	mv.applyTint()
	if mv.cursor != nil {
		mv.cursor.SetActive(!mv.selected)
	}
	mv.manipulator.SetPlacing(mv.selected)
}

// OnHold starts hand manipulation.
func (mv *Movable) OnHold() {
	if !mv.Enabled || !mv.cfg.HoldToManipulate {
		return
	}
	mv.manipulator.SetManipulating(true)
}

// OnRelease ends hand manipulation. A selected entity resumes placement.
func (mv *Movable) OnRelease() {
	if !mv.cfg.HoldToManipulate || !mv.manipulator.Manipulating() {
		return
	}
	mv.manipulator.SetManipulating(false)
	if mv.selected {
		mv.manipulator.SetPlacing(true)
	}
}

// OnGazeEnter applies the gaze highlight.
func (mv *Movable) OnGazeEnter(_ int) {
	mv.gazed = true
	mv.applyTint()
}

// OnGazeExit removes the gaze highlight.
func (mv *Movable) OnGazeExit() {
	mv.gazed = false
	mv.applyTint()
}

// applyTint shows the selected color over the gaze color over the
// original. Each visual keeps its current alpha.
func (mv *Movable) applyTint() {
	for i, t := range mv.tintables {
		c := mv.original[i]
		switch {
		case mv.selected:
			c = mv.cfg.SelectedColor
		case mv.gazed:
			c = mv.cfg.GazeColor
		}
		t.SetTint(c.withAlpha(t.Tint().A))
	}
}
