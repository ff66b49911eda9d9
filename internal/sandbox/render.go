package sandbox

import (
	"fmt"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// Visual characters for rendering
const (
	NodeChar     = '•'
	AnchorChar   = '■'
	SelectedChar = '◆'
	HoverChar    = '○'
	PreviewChar  = '·'
)

// strainedAbove is the strain at which a segment is drawn as overstretched.
const strainedAbove = 1.0

// Render draws the chain and HUD to the screen.
func (s *Sandbox) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() != s.camera.W || dst.Height() != s.camera.H {
		s.camera.Resize(dst.Width(), dst.Height())
		s.frameCamera()
	}

	if s.chain == nil {
		msg := "Scene failed to build"
		if s.err != nil {
			msg = s.err.Error()
		}
		s.drawCenteredMessage(dst, msg, "Press R to retry, Q to quit")
		return
	}

	snap := s.chain.Snapshot()

	for _, c := range snap.Constraints {
		x0, y0 := s.camera.ToScreen(c.From)
		x1, y1 := s.camera.ToScreen(c.To)
		color := core.ColorSegment
		if c.Strain > strainedAbove {
			color = core.ColorStrained
		}
		dst.DrawLine(x0, y0, x1, y1, segmentRune(x1-x0, y1-y0), color)
	}

	if s.editing && s.hasCursor {
		if sel, ok := s.chain.Point(snap.Selected); ok {
			x0, y0 := s.camera.ToScreen(sel.Position)
			x1, y1 := s.camera.ToScreen(s.cursor)
			dst.DrawLine(x0, y0, x1, y1, PreviewChar, core.ColorHint)
		}
	}

	hoverNear := s.hoverWithin(s.cfg.View.PickRadius)
	for _, p := range snap.Points {
		x, y := s.camera.ToScreen(p.Position)
		switch {
		case p.ID == snap.Selected:
			dst.SetCell(x, y, SelectedChar, core.ColorSelected)
		case p.ID == s.hovered && hoverNear:
			dst.SetCell(x, y, HoverChar, core.ColorHover)
		case p.Locked:
			dst.SetCell(x, y, AnchorChar, core.ColorAnchor)
		case s.showNodes:
			dst.SetCell(x, y, NodeChar, core.ColorNode)
		}
	}

	s.drawHUD(dst)
}

// segmentRune picks a line character matching the slope of a segment
// spanning dx×dy cells.
func segmentRune(dx, dy int) rune {
	ax, ay := core.Abs(dx), core.Abs(dy)
	switch {
	case ay*2 <= ax:
		return '-'
	case ax*2 <= ay:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (s *Sandbox) drawHUD(dst *core.Screen) {
	air := "OFF"
	if s.air {
		air = "ON"
	}
	x := 1
	for _, part := range []string{
		fmt.Sprintf("Air Resistance: %s", air),
		fmt.Sprintf("Joints: %d", s.chain.Len()),
	} {
		dst.DrawText(x, 0, part)
		x += len(part) + 3
	}
	if s.editing {
		dst.DrawTextColor(x, 0, "Edit Mode", core.ColorSelected)
	}

	if s.paused {
		const label = "PAUSED"
		dst.DrawTextColor(dst.Width()-len(label)-1, 0, label, core.ColorYellow)
	}

	bottom := dst.Height() - 1
	if s.status != "" {
		dst.DrawTextColor(1, bottom, s.status, core.ColorCyan)
		return
	}
	dst.DrawTextColor(1, bottom, s.hint(), core.ColorHint)
}

func (s *Sandbox) hint() string {
	if s.editing {
		return "LMB select  RMB add point  X delete  E leave edit"
	}
	return "LMB drag  RMB lock  wheel/+/- length  E edit  A air  N nodes  R reset"
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Sandbox) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, title)
	dst.DrawTextCentered(box.Y+3, subtitle)
}
