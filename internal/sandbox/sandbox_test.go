package sandbox

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/registry"
	"github.com/vovakirdan/tui-rope/internal/rope"
)

func testConfig() config.RopeConfig {
	cfg := config.DefaultRopeConfig()
	cfg.Chain.Points = 5
	return cfg
}

func newBridge(t *testing.T, cfg config.RopeConfig) *Sandbox {
	t.Helper()
	s := New("bridge", "Bridge", "test", cfg, Bridge)
	s.Reset(core.DefaultConfig())
	if s.chain == nil {
		t.Fatalf("scene failed to build: %v", s.err)
	}
	return s
}

func actions(as ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range as {
		in.Set(a)
	}
	return in
}

func pointer(events ...core.PointerEvent) core.InputFrame {
	in := core.NewInputFrame()
	for _, ev := range events {
		in.AddPointer(ev)
	}
	return in
}

func press(x, y int, b core.PointerButton) core.PointerEvent {
	return core.PointerEvent{X: x, Y: y, Kind: core.PointerPress, Button: b}
}

func release(x, y int) core.PointerEvent {
	return core.PointerEvent{X: x, Y: y, Kind: core.PointerRelease, Button: core.ButtonLeft}
}

func move(x, y int) core.PointerEvent {
	return core.PointerEvent{X: x, Y: y, Kind: core.PointerMove}
}

// pointCell returns the screen cell of a point.
func pointCell(t *testing.T, s *Sandbox, id rope.PointID) (int, int) {
	t.Helper()
	p, ok := s.chain.Point(id)
	if !ok {
		t.Fatalf("no point %d", id)
	}
	return s.camera.ToScreen(p.Position)
}

func TestScenesRegistered(t *testing.T) {
	for _, id := range []string{"bridge", "pendulum", "slack"} {
		s, err := registry.Create(id, testConfig())
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		s.Reset(core.DefaultConfig())
		if got := s.State().Points; got != 5 {
			t.Errorf("%s: %d points, expected 5", id, got)
		}
	}
}

func TestSceneShapes(t *testing.T) {
	cfg := testConfig()

	c, err := Pendulum(cfg)
	if err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if !snap.Points[0].Locked || snap.Points[4].Locked {
		t.Error("pendulum should lock the pivot and free the tip")
	}
	for i := 0; i < 60; i++ {
		c.Step(1.0/60.0, cfg.GravityVec(), true)
	}
	if tip := c.Snapshot().Points[4].Position; tip.Y <= 0 {
		t.Errorf("pendulum tip did not fall: %v", tip)
	}

	c, err = Slack(cfg)
	if err != nil {
		t.Fatal(err)
	}
	snap = c.Snapshot()
	if snap.Points[0].Position != core.V(20, 0) || snap.Points[4].Position != core.V(80, 0) {
		t.Errorf("slack anchors at %v and %v", snap.Points[0].Position, snap.Points[4].Position)
	}
	if c.RestLength() <= 60 {
		t.Errorf("slack chain should be longer than the gap, rest = %v", c.RestLength())
	}
}

func TestPauseAndEditModes(t *testing.T) {
	s := newBridge(t, testConfig())

	s.Step(actions(core.ActionToggleEdit))
	if st := s.State(); !st.Editing || !st.Paused {
		t.Fatalf("entering edit should pause: %+v", st)
	}

	s.Step(actions(core.ActionToggleEdit))
	if st := s.State(); st.Editing || st.Paused {
		t.Fatalf("leaving edit should resume: %+v", st)
	}
	frames := s.State().Frames
	s.Step(core.NewInputFrame())
	if s.State().Frames != frames+1 {
		t.Errorf("simulation did not resume after edit mode")
	}

	s.Step(actions(core.ActionToggleEdit))
	s.Step(actions(core.ActionPause))
	if st := s.State(); st.Editing || st.Paused {
		t.Errorf("unpausing should leave edit mode: %+v", st)
	}
}

func TestFramesAdvanceOnlyWhenRunning(t *testing.T) {
	s := newBridge(t, testConfig())
	for i := 0; i < 10; i++ {
		s.Step(core.NewInputFrame())
	}
	if s.State().Frames != 10 {
		t.Fatalf("Frames = %d, expected 10", s.State().Frames)
	}

	s.Step(actions(core.ActionPause))
	before := s.Snapshot()
	for i := 0; i < 10; i++ {
		s.Step(core.NewInputFrame())
	}
	if s.State().Frames != 10 {
		t.Errorf("paused scene advanced to frame %d", s.State().Frames)
	}
	after := s.Snapshot()
	for i := range before.Points {
		if before.Points[i].Position != after.Points[i].Position {
			t.Errorf("point %d moved while paused", i)
		}
	}
}

func TestExtendShrinkActions(t *testing.T) {
	cfg := testConfig()
	cfg.Chain.MaxPoints = 6
	s := newBridge(t, cfg)

	s.Step(actions(core.ActionExtend))
	if st := s.State(); st.Points != 6 || st.Constraints != 5 || st.Edits != 1 {
		t.Fatalf("after extend: %+v", st)
	}

	s.Step(actions(core.ActionExtend))
	if st := s.State(); st.Points != 6 || st.Edits != 1 {
		t.Errorf("extend past max changed the chain: %+v", st)
	}
	if !strings.Contains(s.status, "Maximum") {
		t.Errorf("status = %q, expected a bound message", s.status)
	}

	s.Step(actions(core.ActionShrink))
	if st := s.State(); st.Points != 5 || st.Constraints != 4 || st.Edits != 2 {
		t.Errorf("after shrink: %+v", st)
	}
}

func TestStatusExpires(t *testing.T) {
	cfg := testConfig()
	cfg.Chain.MinPoints = 5
	s := newBridge(t, cfg)

	s.Step(actions(core.ActionShrink))
	if s.status == "" {
		t.Fatal("expected a status message")
	}
	for i := 0; i < statusSeconds*60; i++ {
		s.Step(core.NewInputFrame())
	}
	if s.status != "" {
		t.Errorf("status %q did not expire", s.status)
	}
}

func TestRestartRebuilds(t *testing.T) {
	s := newBridge(t, testConfig())
	s.Step(actions(core.ActionExtend))
	s.Step(actions(core.ActionToggleAir))

	s.Step(actions(core.ActionRestart))
	if st := s.State(); st.Points != 5 || st.Edits != 0 || st.Frames != 0 {
		t.Errorf("restart did not rebuild: %+v", st)
	}
	if !s.AirResistance() {
		t.Error("restart should restore the configured air resistance")
	}
}

func TestResizeKeepsChain(t *testing.T) {
	s := newBridge(t, testConfig())
	s.Step(actions(core.ActionExtend))
	s.Step(core.NewInputFrame())

	s.Resize(120, 40)
	if st := s.State(); st.Points != 6 || st.Frames != 2 {
		t.Errorf("resize should not reset the scene: %+v", st)
	}
	if s.camera.W != 120 || s.camera.H != 40 {
		t.Errorf("camera size = %dx%d, expected 120x40", s.camera.W, s.camera.H)
	}
	ids := s.chain.PointIDs()
	x, y := pointCell(t, s, ids[0])
	if x < 0 || x >= 120 || y < 0 || y >= 40 {
		t.Errorf("first point at (%d, %d) is off screen", x, y)
	}
}

func TestEditSelectInsertDelete(t *testing.T) {
	s := newBridge(t, testConfig())
	ids := s.chain.PointIDs()
	s.Step(actions(core.ActionToggleEdit))

	// Insert without selection is refused
	s.Step(pointer(press(40, 15, core.ButtonRight)))
	if s.State().Points != 5 || !strings.Contains(s.status, "Select") {
		t.Fatalf("insert without selection: points=%d status=%q", s.State().Points, s.status)
	}

	x, y := pointCell(t, s, ids[2])
	s.Step(pointer(press(x, y, core.ButtonLeft), release(x, y)))
	if sel, ok := s.chain.Selected(); !ok || sel != ids[2] {
		t.Fatalf("selection = %d, expected %d", sel, ids[2])
	}

	s.Step(pointer(press(x, y+12, core.ButtonRight)))
	st := s.State()
	if st.Points != 6 || st.Constraints != 5 {
		t.Fatalf("after insert: %+v", st)
	}
	sel, _ := s.chain.Selected()
	if sel == ids[2] {
		t.Error("selection should move to the inserted point")
	}

	s.Step(actions(core.ActionDeleteSelect))
	if st := s.State(); st.Points != 5 || st.Constraints != 4 || st.Edits != 2 {
		t.Errorf("after delete: %+v", st)
	}

	s.Step(actions(core.ActionDeleteSelect))
	if !strings.Contains(s.status, "No point selected") {
		t.Errorf("status = %q", s.status)
	}
}

func TestEditClickAwayClearsSelection(t *testing.T) {
	s := newBridge(t, testConfig())
	ids := s.chain.PointIDs()
	s.Step(actions(core.ActionToggleEdit))

	x, y := pointCell(t, s, ids[1])
	s.Step(pointer(press(x, y, core.ButtonLeft), release(x, y)))
	if _, ok := s.chain.Selected(); !ok {
		t.Fatal("expected a selection")
	}

	s.Step(pointer(press(x, y+15, core.ButtonLeft), release(x, y+15)))
	if _, ok := s.chain.Selected(); ok {
		t.Error("clicking empty space should clear the selection")
	}
}

func TestInsertConnectsToHoveredPoint(t *testing.T) {
	s := newBridge(t, testConfig())
	ids := s.chain.PointIDs()
	s.Step(actions(core.ActionToggleEdit))

	x, y := pointCell(t, s, ids[1])
	s.Step(pointer(press(x, y, core.ButtonLeft), release(x, y)))

	tx, ty := pointCell(t, s, ids[3])
	s.Step(pointer(press(tx, ty, core.ButtonRight)))

	snap := s.chain.Snapshot()
	last := snap.Constraints[len(snap.Constraints)-1]
	if last.A != ids[1] || last.B != ids[3] {
		t.Errorf("new constraint %d-%d, expected %d-%d", last.A, last.B, ids[1], ids[3])
	}
}

func TestRightClickTogglesLock(t *testing.T) {
	s := newBridge(t, testConfig())
	ids := s.chain.PointIDs()

	x, y := pointCell(t, s, ids[2])
	s.Step(pointer(press(x, y, core.ButtonRight)))
	if p, _ := s.chain.Point(ids[2]); !p.Locked {
		t.Fatal("right click should lock the hovered point")
	}

	x, y = pointCell(t, s, ids[2])
	s.Step(pointer(press(x, y, core.ButtonRight)))
	if p, _ := s.chain.Point(ids[2]); p.Locked {
		t.Error("second right click should unlock")
	}

	// Far from every point nothing happens
	s.Step(pointer(press(40, 20, core.ButtonRight)))
	for _, p := range s.chain.Snapshot().Points[1:4] {
		if p.Locked {
			t.Errorf("point %d locked by a distant click", p.ID)
		}
	}
}

func TestDragMovesPoint(t *testing.T) {
	s := newBridge(t, testConfig())
	ids := s.chain.PointIDs()

	x, y := pointCell(t, s, ids[2])
	s.Step(pointer(press(x, y, core.ButtonLeft), move(x, y+8)))

	p, _ := s.chain.Point(ids[2])
	if want := s.camera.ToWorld(x, y+8); p.Position != want {
		t.Errorf("dragged point at %v, expected cursor %v", p.Position, want)
	}

	// Hover stays on the dragged point even near another one
	nx, ny := pointCell(t, s, ids[3])
	s.Step(pointer(move(nx, ny)))
	if s.hovered != ids[2] {
		t.Errorf("hover switched to %d while holding", s.hovered)
	}

	s.Step(pointer(release(nx, ny)))
	if s.dragging {
		t.Error("release should end the drag")
	}
}

func TestDragWhilePaused(t *testing.T) {
	s := newBridge(t, testConfig())
	ids := s.chain.PointIDs()
	s.Step(actions(core.ActionPause))
	frames := s.State().Frames

	x, y := pointCell(t, s, ids[2])
	s.Step(pointer(press(x, y, core.ButtonLeft), move(x, y+8)))

	p, _ := s.chain.Point(ids[2])
	if want := s.camera.ToWorld(x, y+8); p.Position != want {
		t.Errorf("paused drag left the point at %v, expected cursor %v", p.Position, want)
	}
	if s.State().Frames != frames {
		t.Errorf("drag advanced a paused scene to frame %d", s.State().Frames)
	}
	other, _ := s.chain.Point(ids[1])
	s.Step(pointer(release(x, y+8)))
	if after, _ := s.chain.Point(ids[1]); after.Position != other.Position {
		t.Error("neighbour moved while paused")
	}
}

func TestRenderHUD(t *testing.T) {
	s := newBridge(t, testConfig())
	screen := core.NewScreen(80, 24)

	s.Render(screen)
	top := screen.Row(0)
	for _, want := range []string{"Air Resistance: ON", "Joints: 5"} {
		if !strings.Contains(top, want) {
			t.Errorf("HUD %q missing %q", top, want)
		}
	}
	if strings.Contains(top, "PAUSED") || strings.Contains(top, "Edit Mode") {
		t.Errorf("unexpected mode labels in %q", top)
	}

	s.Step(actions(core.ActionToggleEdit, core.ActionToggleAir))
	s.Render(screen)
	top = screen.Row(0)
	for _, want := range []string{"Air Resistance: OFF", "Edit Mode", "PAUSED"} {
		if !strings.Contains(top, want) {
			t.Errorf("HUD %q missing %q", top, want)
		}
	}
}

func TestRenderChain(t *testing.T) {
	s := newBridge(t, testConfig())
	screen := core.NewScreen(80, 24)
	s.Render(screen)

	ids := s.chain.PointIDs()
	x, y := pointCell(t, s, ids[0])
	if c := screen.GetCell(x, y); c.Rune != AnchorChar || c.Color != core.ColorAnchor {
		t.Errorf("anchor cell = %+v", c)
	}
	x, y = pointCell(t, s, ids[2])
	if c := screen.GetCell(x, y); c.Rune != NodeChar {
		t.Errorf("node cell = %+v", c)
	}
	if c := screen.GetCell(x+3, y); c.Rune != '-' || c.Color != core.ColorSegment {
		t.Errorf("segment cell = %+v", c)
	}

	s.Step(actions(core.ActionToggleNodes, core.ActionPause))
	s.Render(screen)
	if c := screen.GetCell(x, y); c.Rune == NodeChar {
		t.Error("nodes still drawn after toggling them off")
	}
}

func TestSegmentRune(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{10, 0, '-'},
		{10, 4, '-'},
		{0, 5, '|'},
		{2, -6, '|'},
		{5, 5, '\\'},
		{-5, -4, '\\'},
		{5, -5, '/'},
		{-3, 4, '/'},
	}
	for _, tc := range tests {
		if got := segmentRune(tc.dx, tc.dy); got != tc.want {
			t.Errorf("segmentRune(%d, %d) = %q, expected %q", tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestFromLayout(t *testing.T) {
	s := newBridge(t, testConfig())
	s.Step(actions(core.ActionExtend))
	layout, ok := s.Layout()
	if !ok {
		t.Fatal("Layout unavailable")
	}

	restored := FromLayout("saved", layout, testConfig())
	restored.Reset(core.DefaultConfig())
	if restored.Title() != "saved" {
		t.Errorf("Title = %q", restored.Title())
	}
	if st := restored.State(); st.Points != 6 || st.Constraints != 5 {
		t.Errorf("restored: %+v", st)
	}
}

func TestBuildFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Chain.Points = 500
	s := New("bridge", "Bridge", "test", cfg, Bridge)
	s.Reset(core.DefaultConfig())

	if s.State().Points != 0 {
		t.Errorf("failed build should have no points")
	}
	s.Step(actions(core.ActionExtend, core.ActionRestart))
	if _, ok := s.Layout(); ok {
		t.Error("Layout should be unavailable")
	}

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	if !strings.Contains(screen.String(), "Press R to retry") {
		t.Error("failure message not rendered")
	}
}
