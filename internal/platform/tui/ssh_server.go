package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/registry"
	"github.com/vovakirdan/tui-rope/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ropesim/host_key.
	HostKeyPath string

	// DBPath is the path to the layouts and run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Rope is the scene configuration shared by all sessions.
	Rope config.RopeConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.ropesim/ropesim.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Rope:        config.DefaultRopeConfig(),
	}
}

// SSHServer wraps a Wish SSH server for the rope sandbox.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ropesim-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, layouts will not be saved", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.HomePath("host_key")
		if hostKeyPath == "" {
			return nil, fmt.Errorf("tui: cannot resolve home directory for host key")
		}
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// Every session builds its own scenes, so chains are never shared.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.store, s.config.Rope, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the part of the session currently shown.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLayouts
	screenScene
)

// SessionModel manages the full session flow: menu -> scene -> menu, with
// the layout browser reachable from the menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	rope     config.RopeConfig
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	layouts  LayoutBrowserModel
	scene    *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, rope config.RopeConfig, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		rope:   rope,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenScene:
		return m.updateScene(msg)
	case screenLayouts:
		return m.updateLayouts(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsLayouts():
		m.layouts = NewLayoutBrowserModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLayouts
		return m, m.layouts.Init()

	case m.menu.Selected() != nil:
		scene, err := registry.Create(m.menu.Selected().SceneID, m.rope)
		if err != nil {
			// Shouldn't happen since menu only shows registered scenes
			return m.showMenu()
		}
		return m.startScene(scene)
	}

	return m, cmd
}

// updateLayouts handles updates when the layout browser is open.
func (m SessionModel) updateLayouts(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBrowser, cmd := m.layouts.Update(msg)
	if browser, ok := newBrowser.(LayoutBrowserModel); ok {
		m.layouts = browser
	}

	switch {
	case m.layouts.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.layouts.IsGoingBack():
		return m.showMenu()

	case m.layouts.Selected() != "":
		scene, err := OpenLayout(m.store, m.layouts.Selected(), m.rope)
		if err != nil {
			m.layouts = NewLayoutBrowserModel(m.store, m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
		return m.startScene(scene)
	}

	return m, cmd
}

// updateScene handles updates when a scene is running.
func (m SessionModel) updateScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scene.Update(msg)
	if sceneModel, ok := newModel.(Model); ok {
		m.scene = &sceneModel
	}

	if m.scene.BackToMenu() {
		m.scene = nil
		return m.showMenu()
	}

	if m.scene.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) startScene(scene registry.Scene) (tea.Model, tea.Cmd) {
	model := NewModel(scene, m.store, m.config).WithBackToMenu()
	m.scene = &model
	m.screen = screenScene
	return m, m.scene.Init()
}

func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenScene:
		if m.scene != nil {
			return m.scene.View()
		}
	case screenLayouts:
		return m.layouts.View()
	}
	return m.menu.View()
}
