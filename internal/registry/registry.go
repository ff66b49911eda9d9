// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
)

// Scene is the interface every runnable rope scene implements.
// Scenes contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "bridge").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary for menus and `list`.
	Description() string

	// Reset rebuilds the scene in its initial state.
	// The RuntimeConfig provides screen dimensions and the tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the scene by one fixed tick after applying input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current simulation summary.
	State() core.SimState
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new scene instance from a loaded configuration.
type Factory func(cfg config.RopeConfig) Scene

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SceneInfo)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from an init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	// Metadata comes from a throwaway instance
	s := f(config.DefaultRopeConfig())
	infos[id] = SceneInfo{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string, cfg config.RopeConfig) (Scene, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}
	return f(cfg), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
