package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/registry"
	"github.com/vovakirdan/tui-rope/internal/rope"
	"github.com/vovakirdan/tui-rope/internal/storage"
)

// Optional scene capabilities the model uses when present.
type (
	resizable interface {
		Resize(w, h int)
	}
	layoutSource interface {
		Layout() (rope.Layout, bool)
	}
	statusReporter interface {
		SetStatus(msg string)
	}
)

// Model is the Bubble Tea model for running a rope scene.
type Model struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	state      core.SimState
	started    time.Time
	quitting   bool
	recorded   bool // run history written for this session
	canGoBack  bool // esc/b returns to a surrounding menu
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given scene.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithBackToMenu lets esc and b leave the scene for a surrounding menu.
func (m Model) WithBackToMenu() Model {
	m.canGoBack = true
	return m
}

// Init initializes the model and starts the scene.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "s":
		m.saveLayout()
		return m, nil
	case "esc", "b":
		if m.canGoBack {
			m.recordRun()
			m.backToMenu = true
			return m, nil
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.recordRun()
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.scene.(resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.scene.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}
	if m.inputFrame.Has(core.ActionRestart) {
		// A restart ends the current run
		m.recordRun()
		m.started = time.Now()
		m.recorded = false
	}

	result := m.scene.Step(m.inputFrame)
	m.state = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config)
}

// recordRun stores the finished run in the history table (best effort).
func (m *Model) recordRun() {
	if m.store == nil || m.recorded || m.state.Frames == 0 {
		return
	}
	m.recorded = true
	//nolint:errcheck // Best-effort save, the sandbox exits regardless
	m.store.RecordRun(storage.RunEntry{
		SceneID:     m.scene.ID(),
		Frames:      int64(m.state.Frames),
		Edits:       m.state.Edits,
		Points:      m.state.Points,
		Constraints: m.state.Constraints,
		Duration:    time.Since(m.started),
	})
}

// saveLayout stores the current chain under a generated name.
func (m *Model) saveLayout() {
	src, ok := m.scene.(layoutSource)
	if !ok {
		return
	}
	layout, ok := src.Layout()
	if !ok {
		return
	}

	msg := "Storage unavailable"
	if m.store != nil {
		name := fmt.Sprintf("%s-%s", m.scene.ID(), time.Now().Format("20060102-150405"))
		if _, err := m.store.SaveLayout(name, m.scene.ID(), layout); err != nil {
			msg = "Save failed: " + err.Error()
		} else {
			msg = "Saved " + name
		}
	}
	if r, ok := m.scene.(statusReporter); ok {
		r.SetStatus(msg)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	dir := config.HomePath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the sandbox continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// State returns the scene state as of the last tick.
func (m Model) State() core.SimState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(scene, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // hover needs motion without a held button
	)

	_, err := p.Run()
	return err
}
