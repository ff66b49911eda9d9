package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/rope"
	"github.com/vovakirdan/tui-rope/internal/storage"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestMenuListsScenes(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	view := m.View()
	for _, title := range []string{"Bridge", "Pendulum", "Slack Line"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu is missing %q", title)
		}
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and quit the menu")
	}
	if m.Selected().SceneID != "pendulum" {
		t.Errorf("selected %q, expected pendulum", m.Selected().SceneID)
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, testRope(), core.DefaultConfig())

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScene || cmd == nil {
		t.Fatalf("enter should start a scene, screen = %v", m.screen)
	}
	m, _ = sendSession(t, m, TickMsg(time.Now()))
	m, _ = sendSession(t, m, TickMsg(time.Now()))
	if m.scene.State().Frames != 2 {
		t.Errorf("frames = %d, expected 2", m.scene.State().Frames)
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.scene != nil {
		t.Fatal("esc should return to the menu")
	}
	if n, _ := store.RunCount("bridge"); n != 1 {
		t.Errorf("RunCount = %d, expected 1", n)
	}

	// A stale tick from the finished scene is harmless in the menu
	m, _ = sendSession(t, m, TickMsg(time.Now()))
	if m.screen != screenMenu {
		t.Error("tick left the menu")
	}

	m, cmd = sendSession(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
}

func TestSessionOpensLayout(t *testing.T) {
	store := openStore(t)
	layout := rope.Layout{
		MinPoints: 3,
		MaxPoints: 20,
		Points: []rope.LayoutPoint{
			{ID: 1, Position: core.V(0, 0), Mass: 1, Locked: true},
			{ID: 2, Position: core.V(10, 0), Mass: 1},
			{ID: 3, Position: core.V(20, 0), Mass: 1},
			{ID: 4, Position: core.V(30, 0), Mass: 1, Locked: true},
		},
		Constraints: []rope.LayoutConstraint{
			{A: 1, B: 2, RestLength: 10},
			{A: 2, B: 3, RestLength: 10},
			{A: 3, B: 4, RestLength: 10},
		},
	}
	if _, err := store.SaveLayout("four", "bridge", layout); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	m := NewSessionModel(store, testRope(), core.DefaultConfig())
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenLayouts {
		t.Fatal("tab should open the layout browser")
	}
	if !strings.Contains(m.View(), "four") {
		t.Error("browser does not list the saved layout")
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScene {
		t.Fatal("enter should open the layout")
	}
	m, _ = sendSession(t, m, TickMsg(time.Now()))
	if st := m.scene.State(); st.Points != 4 || st.Constraints != 3 {
		t.Errorf("opened layout state: %+v", st)
	}
}

func TestLayoutBrowserDelete(t *testing.T) {
	store := openStore(t)
	layout := rope.Layout{
		MinPoints: 1,
		MaxPoints: 10,
		Points:    []rope.LayoutPoint{{ID: 1, Mass: 1}},
	}
	for _, name := range []string{"one", "two"} {
		if _, err := store.SaveLayout(name, "slack", layout); err != nil {
			t.Fatalf("SaveLayout failed: %v", err)
		}
	}

	m := NewLayoutBrowserModel(store, 100, 30)
	if len(m.layouts) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(m.layouts))
	}

	next, _ := m.Update(runeKey('d'))
	m = next.(LayoutBrowserModel)
	if len(m.layouts) != 1 {
		t.Fatalf("expected 1 layout after delete, got %d", len(m.layouts))
	}
	if _, err := store.LoadLayout(m.layouts[0].Name); err != nil {
		t.Errorf("remaining layout should load: %v", err)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(LayoutBrowserModel)
	if !m.IsGoingBack() || m.Selected() != "" {
		t.Error("esc should go back without a selection")
	}
}

func TestLayoutBrowserWithoutStore(t *testing.T) {
	m := NewLayoutBrowserModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No layouts saved yet") {
		t.Error("empty browser should say so")
	}
	if _, err := OpenLayout(nil, "any", testRope()); err == nil {
		t.Error("OpenLayout without storage should fail")
	}
	if _, err := OpenLayout(openStore(t), "missing", testRope()); err == nil {
		t.Error("OpenLayout of a missing layout should fail")
	}
}

func TestOpenLayoutMissingIsNotFound(t *testing.T) {
	_, err := OpenLayout(openStore(t), "missing", testRope())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, expected ErrNotFound", err)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColor(0, 1, "xyz", core.ColorCyan)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}
