// Package sandbox implements the interactive rope scene: it turns input
// frames into chain edits and physics steps, and draws the chain with its
// HUD into a core.Screen. It has no terminal or Bubble Tea dependencies.
package sandbox

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/rope"
)

// Builder creates the chain a scene starts from.
type Builder func(cfg config.RopeConfig) (*rope.Chain, error)

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 2

// Sandbox is a running rope scene.
type Sandbox struct {
	id, title, desc string
	cfg             config.RopeConfig
	build           Builder

	rc      core.RuntimeConfig
	chain   *rope.Chain
	camera  Camera
	gravity core.Vec2
	err     error // last build failure, shown instead of the chain

	paused    bool
	editing   bool
	air       bool
	showNodes bool

	cursor    core.Vec2 // world position under the pointer
	hasCursor bool
	hovered   rope.PointID
	holding   bool // left button is down
	dragging  bool // holding a point outside edit mode

	frames    uint64
	edits     int
	status    string
	statusTTL int
}

// New creates a sandbox scene. The chain is built on Reset.
func New(id, title, desc string, cfg config.RopeConfig, build Builder) *Sandbox {
	return &Sandbox{
		id:    id,
		title: title,
		desc:  desc,
		cfg:   cfg,
		build: build,
	}
}

// FromLayout creates a sandbox that starts from a saved layout.
func FromLayout(name string, layout rope.Layout, cfg config.RopeConfig) *Sandbox {
	return New("layout", name, "Saved layout", cfg, func(cfg config.RopeConfig) (*rope.Chain, error) {
		return rope.FromLayout(layout, cfg.Params())
	})
}

// ID returns the unique identifier for this scene.
func (s *Sandbox) ID() string {
	return s.id
}

// Title returns the display name for this scene.
func (s *Sandbox) Title() string {
	return s.title
}

// Description returns a one-line summary.
func (s *Sandbox) Description() string {
	return s.desc
}

// Reset rebuilds the chain and restores the configured modes.
func (s *Sandbox) Reset(rc core.RuntimeConfig) {
	s.rc = rc
	s.gravity = s.cfg.GravityVec()
	s.paused = false
	s.editing = false
	s.air = s.cfg.Physics.AirResistance
	s.showNodes = s.cfg.View.ShowNodes
	s.hovered = rope.NoPoint
	s.holding = false
	s.dragging = false
	s.frames = 0
	s.edits = 0
	s.status = ""
	s.statusTTL = 0

	s.chain, s.err = s.build(s.cfg)
	if s.err != nil {
		s.chain = nil
	}

	s.camera = NewCamera(core.Vec2{}, s.cfg.View.Zoom, s.cfg.View.Aspect, rc.ScreenW, rc.ScreenH)
	s.frameCamera()
}

// Resize adapts the view to a new screen size. The chain keeps running.
func (s *Sandbox) Resize(w, h int) {
	s.rc.ScreenW, s.rc.ScreenH = w, h
	s.camera = NewCamera(core.Vec2{}, s.cfg.View.Zoom, s.cfg.View.Aspect, w, h)
	s.frameCamera()
}

// frameCamera fits the chain's horizontal extent and puts its top two
// rows below the HUD.
func (s *Sandbox) frameCamera() {
	if s.chain == nil || s.chain.Len() == 0 {
		return
	}
	snap := s.chain.Snapshot()
	left, right, top := snap.Points[0].Position.X, snap.Points[0].Position.X, snap.Points[0].Position.Y
	for _, p := range snap.Points[1:] {
		left = min(left, p.Position.X)
		right = max(right, p.Position.X)
		top = min(top, p.Position.Y)
	}
	s.camera.Frame(left, right, top, 2)
}

// Step applies the frame's input, then advances physics unless paused.
func (s *Sandbox) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		s.Reset(s.rc)
		return core.StepResult{State: s.State()}
	}
	if s.chain == nil {
		return core.StepResult{State: s.State()}
	}

	s.handleActions(in)
	for _, ev := range in.Pointers {
		s.handlePointer(ev)
	}
	s.updateHover()

	s.drag()
	if !s.paused {
		s.chain.Step(s.rc.FrameTime(), s.gravity, s.air)
		s.drag()
		s.frames++
	}

	if s.statusTTL > 0 {
		s.statusTTL--
		if s.statusTTL == 0 {
			s.status = ""
		}
	}
	return core.StepResult{State: s.State()}
}

func (s *Sandbox) handleActions(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
		if !s.paused && s.editing {
			s.setEditing(false)
		}
	}
	if in.Has(core.ActionToggleEdit) {
		s.setEditing(!s.editing)
	}
	if in.Has(core.ActionToggleAir) {
		s.air = !s.air
	}
	if in.Has(core.ActionToggleNodes) {
		s.showNodes = !s.showNodes
	}
	if in.Has(core.ActionExtend) {
		if s.chain.Extend() {
			s.edits++
		} else {
			s.SetStatus(fmt.Sprintf("Maximum of %d points", s.chain.Params().MaxPoints))
		}
	}
	if in.Has(core.ActionShrink) {
		if s.chain.Shrink() {
			s.edits++
		} else {
			s.SetStatus(fmt.Sprintf("Minimum of %d points", s.chain.Params().MinPoints))
		}
	}
	if in.Has(core.ActionDeleteSelect) {
		s.deleteSelected()
	}
}

// setEditing enters or leaves edit mode. Entering pauses the simulation;
// leaving resumes it and drops the selection.
func (s *Sandbox) setEditing(on bool) {
	s.editing = on
	s.dragging = false
	s.paused = on
	if !on {
		s.chain.ClearSelection()
	}
}

func (s *Sandbox) deleteSelected() {
	err := s.chain.DeleteSelected()
	switch {
	case err == nil:
		s.edits++
		if !s.chain.Has(s.hovered) {
			s.hovered = rope.NoPoint
		}
	case errors.Is(err, rope.ErrInvalidReference):
		s.SetStatus("No point selected")
	default:
		s.SetStatus(err.Error())
	}
}

func (s *Sandbox) handlePointer(ev core.PointerEvent) {
	s.cursor = s.camera.ToWorld(ev.X, ev.Y)
	s.hasCursor = true

	switch {
	case ev.Kind == core.PointerPress && ev.Button == core.ButtonLeft:
		s.holding = true
		s.updateHover()
		s.leftPress()
	case ev.Kind == core.PointerRelease:
		s.holding = false
		s.dragging = false
	case ev.Kind == core.PointerPress && ev.Button == core.ButtonRight:
		s.updateHover()
		s.rightPress()
	}
}

func (s *Sandbox) leftPress() {
	near := s.hoverWithin(s.cfg.View.PickRadius)
	if s.editing {
		if near {
			s.chain.Select(s.hovered) //nolint:errcheck // hovered is live
		} else {
			s.chain.ClearSelection()
		}
		return
	}
	s.dragging = near
}

func (s *Sandbox) rightPress() {
	if !s.editing {
		if !s.hoverWithin(s.cfg.View.LockRadius) {
			return
		}
		if locked, err := s.chain.ToggleLock(s.hovered); err == nil {
			if locked {
				s.SetStatus("Point locked")
			} else {
				s.SetStatus("Point unlocked")
			}
		}
		return
	}

	connectTo := rope.NoPoint
	if sel, ok := s.chain.Selected(); ok && s.hoverWithin(s.cfg.View.PickRadius) && s.hovered != sel {
		connectTo = s.hovered
	}
	if _, err := s.chain.InsertAt(s.cursor, connectTo); err != nil {
		if errors.Is(err, rope.ErrInvalidReference) {
			s.SetStatus("Select a point first")
		} else {
			s.SetStatus(err.Error())
		}
		return
	}
	s.edits++
}

// updateHover tracks the point nearest the cursor. The hovered point is
// frozen while the left button is held so a drag keeps its target.
func (s *Sandbox) updateHover() {
	if !s.hasCursor {
		return
	}
	if s.holding && s.chain.Has(s.hovered) {
		return
	}
	if id, _, ok := s.chain.Nearest(s.cursor); ok {
		s.hovered = id
	} else {
		s.hovered = rope.NoPoint
	}
}

// hoverWithin reports whether the hovered point lies within radius cells
// of the cursor.
func (s *Sandbox) hoverWithin(radius float64) bool {
	p, ok := s.chain.Point(s.hovered)
	if !ok || !s.hasCursor {
		return false
	}
	return s.camera.Cells(p.Position.Dist(s.cursor)) <= radius
}

func (s *Sandbox) drag() {
	if !s.dragging {
		return
	}
	if err := s.chain.MoveTo(s.hovered, s.cursor); err != nil {
		s.dragging = false
	}
}

// SetStatus shows a transient message in the HUD.
func (s *Sandbox) SetStatus(msg string) {
	s.status = msg
	s.statusTTL = statusSeconds * max(s.rc.TickRate, 1)
}

// State returns the current simulation summary.
func (s *Sandbox) State() core.SimState {
	st := core.SimState{
		Frames:  s.frames,
		Edits:   s.edits,
		Paused:  s.paused,
		Editing: s.editing,
	}
	if s.chain != nil {
		st.Points = s.chain.Len()
		st.Constraints = s.chain.ConstraintCount()
	}
	return st
}

// Layout exports the current chain for saving. The boolean is false when
// the scene failed to build.
func (s *Sandbox) Layout() (rope.Layout, bool) {
	if s.chain == nil {
		return rope.Layout{}, false
	}
	return s.chain.Layout(), true
}

// Snapshot returns a copy of the chain state for inspection.
func (s *Sandbox) Snapshot() rope.Snapshot {
	if s.chain == nil {
		return rope.Snapshot{}
	}
	return s.chain.Snapshot()
}

// AirResistance reports whether air drag is enabled.
func (s *Sandbox) AirResistance() bool {
	return s.air
}
