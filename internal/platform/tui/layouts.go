package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/registry"
	"github.com/vovakirdan/tui-rope/internal/sandbox"
	"github.com/vovakirdan/tui-rope/internal/storage"
)

// Layout browser constants
const (
	minWidthForSidebar = 90 // Minimum width to show the details sidebar
	sidebarWidth       = 26 // Width of the details sidebar
)

// OpenLayout loads a saved layout and wraps it in a sandbox scene.
func OpenLayout(store *storage.Store, name string, cfg config.RopeConfig) (registry.Scene, error) {
	if store == nil {
		return nil, fmt.Errorf("tui: storage unavailable")
	}
	saved, err := store.LoadLayout(name)
	if err != nil {
		return nil, err
	}
	return sandbox.FromLayout(saved.Info.Name, saved.Layout, cfg), nil
}

// LayoutKeyMap defines the key bindings for the layout browser.
type LayoutKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LayoutKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LayoutKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultLayoutKeyMap returns default key bindings.
func DefaultLayoutKeyMap() LayoutKeyMap {
	return LayoutKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LayoutBrowserModel is the Bubble Tea model for the saved-layout browser.
type LayoutBrowserModel struct {
	store       *storage.Store
	layouts     []storage.LayoutInfo
	stats       map[string]*storage.SceneStats
	table       table.Model
	help        help.Model
	keys        LayoutKeyMap
	width       int
	height      int
	status      string
	selected    string // name of the layout to open
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewLayoutBrowserModel creates a new layout browser.
func NewLayoutBrowserModel(store *storage.Store, width, height int) LayoutBrowserModel {
	h := help.New()
	h.ShowAll = false

	m := LayoutBrowserModel{
		store:       store,
		keys:        DefaultLayoutKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadLayouts()
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *LayoutBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Scene", Width: 10},
		{Title: "Points", Width: 7},
		{Title: "Saved", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Name takes whatever the fixed columns leave
	if rest := tableWidth - 10 - 7 - 14 - 8; rest > columns[0].Width {
		columns[0].Width = min(rest, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadLayouts reads the layout list and run stats from the store.
func (m *LayoutBrowserModel) loadLayouts() {
	m.layouts = nil
	m.stats = nil
	if m.store != nil {
		if layouts, err := m.store.ListLayouts(); err == nil {
			m.layouts = layouts
		} else {
			m.status = err.Error()
		}
		if stats, err := m.store.AllSceneStats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current layouts.
func (m *LayoutBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.layouts))
	for i, l := range m.layouts {
		rows[i] = table.Row{
			l.Name,
			l.SceneID,
			fmt.Sprintf("%d", l.Points),
			l.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// current returns the highlighted layout.
func (m LayoutBrowserModel) current() (storage.LayoutInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.layouts) {
		return storage.LayoutInfo{}, false
	}
	return m.layouts[i], true
}

// Init initializes the layout browser.
func (m LayoutBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the layout browser.
func (m LayoutBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if l, ok := m.current(); ok {
				m.selected = l.Name
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteCurrent()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *LayoutBrowserModel) deleteCurrent() {
	l, ok := m.current()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteLayout(l.Name); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Deleted %s", l.Name)
	m.loadLayouts()
}

// View renders the layout browser.
func (m LayoutBrowserModel) View() string {
	if m.quitting || m.goingBack || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("SAVED LAYOUTS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", m.renderSidebar()))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render(m.status))
		b.WriteString("\n")
	}
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar shows details for the highlighted layout and its scene.
func (m LayoutBrowserModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Details\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	l, ok := m.current()
	if !ok {
		sb.WriteString("Nothing selected")
		return sidebarStyle.Render(sb.String())
	}

	fmt.Fprintf(&sb, "Points:  %d\n", l.Points)
	fmt.Fprintf(&sb, "Joints:  %d\n", l.Constraints)
	fmt.Fprintf(&sb, "Created: %s\n", l.CreatedAt.Format("Jan 02 15:04"))
	if st, ok := m.stats[l.SceneID]; ok {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Scene %s\n", l.SceneID)
		fmt.Fprintf(&sb, "Runs:    %d\n", st.Runs)
		fmt.Fprintf(&sb, "Frames:  %d\n", st.TotalFrames)
		fmt.Fprintf(&sb, "Edits:   %d\n", st.TotalEdits)
	}
	return sidebarStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderTableContent renders the table or an empty message.
func (m LayoutBrowserModel) renderTableContent() string {
	if len(m.layouts) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No layouts saved yet.\nPress S in a scene to save one!")
	}

	return m.table.View()
}

// Selected returns the name of the layout to open, or "".
func (m LayoutBrowserModel) Selected() string {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LayoutBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LayoutBrowserModel) IsQuitting() bool {
	return m.quitting
}

// LayoutResult holds the outcome of the layout browser.
type LayoutResult struct {
	Name   string // layout to open, empty when none
	GoBack bool
}

// RunLayoutBrowser runs the layout browser screen.
func RunLayoutBrowser(store *storage.Store, width, height int) (LayoutResult, error) {
	model := NewLayoutBrowserModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return LayoutResult{}, err
	}

	m, ok := finalModel.(LayoutBrowserModel)
	if !ok {
		return LayoutResult{}, nil
	}

	return LayoutResult{Name: m.Selected(), GoBack: m.IsGoingBack()}, nil
}
