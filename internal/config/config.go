// Package config provides YAML-based simulation configuration loading and
// tuning presets for the rope sandbox.
package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/rope"
)

// RopeConfig contains all configuration for a rope sandbox run.
type RopeConfig struct {
	Chain   ChainConfig   `yaml:"chain"`
	Physics PhysicsConfig `yaml:"physics"`
	Solver  SolverConfig  `yaml:"solver"`
	View    ViewConfig    `yaml:"view"`
}

// ChainConfig defines the shape of a freshly created chain.
type ChainConfig struct {
	Points    int     `yaml:"points"`
	MinPoints int     `yaml:"min_points"`
	MaxPoints int     `yaml:"max_points"`
	Mass      float64 `yaml:"mass"`
	Span      float64 `yaml:"span"` // world distance between the anchors
}

// PhysicsConfig defines the external forces.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"` // downward acceleration, world units/s²
	AirResistance bool    `yaml:"air_resistance"`
	Drag          float64 `yaml:"drag"`
}

// SolverConfig defines the constraint solver constants.
type SolverConfig struct {
	Iterations  int     `yaml:"iterations"`
	RelaxPasses int     `yaml:"relax_passes"`
	RelaxGain   float64 `yaml:"relax_gain"`
	Damping     float64 `yaml:"damping"`
}

// ViewConfig defines how the world maps onto terminal cells.
type ViewConfig struct {
	Zoom       float64 `yaml:"zoom"`        // cells per world unit, horizontally
	Aspect     float64 `yaml:"aspect"`      // vertical cell scale relative to horizontal
	PickRadius float64 `yaml:"pick_radius"` // cells
	LockRadius float64 `yaml:"lock_radius"` // cells
	ShowNodes  bool    `yaml:"show_nodes"`
}

// Validate rejects configurations the simulation cannot run.
func (c RopeConfig) Validate() error {
	if c.Chain.Points < 2 {
		return fmt.Errorf("config: chain.points must be >= 2, got %d", c.Chain.Points)
	}
	if c.Chain.Points < c.Chain.MinPoints || c.Chain.Points > c.Chain.MaxPoints {
		return fmt.Errorf("config: chain.points %d outside [%d, %d]",
			c.Chain.Points, c.Chain.MinPoints, c.Chain.MaxPoints)
	}
	if !(c.Chain.Span > 0) {
		return fmt.Errorf("config: chain.span must be > 0, got %g", c.Chain.Span)
	}
	if math.IsNaN(c.Physics.Gravity) || math.IsInf(c.Physics.Gravity, 0) {
		return fmt.Errorf("config: physics.gravity must be finite")
	}
	if !(c.View.Zoom > 0) || !(c.View.Aspect > 0) {
		return fmt.Errorf("config: view.zoom and view.aspect must be > 0")
	}
	if c.View.PickRadius < 0 || c.View.LockRadius < 0 {
		return fmt.Errorf("config: view radii must be >= 0")
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Params converts the chain and solver sections into rope.Params.
func (c RopeConfig) Params() rope.Params {
	return rope.Params{
		MinPoints: c.Chain.MinPoints,
		MaxPoints: c.Chain.MaxPoints,
		Mass:      c.Chain.Mass,
		Tuning: rope.Tuning{
			Iterations:  c.Solver.Iterations,
			RelaxPasses: c.Solver.RelaxPasses,
			RelaxGain:   c.Solver.RelaxGain,
			Damping:     c.Solver.Damping,
			Drag:        c.Physics.Drag,
		},
	}
}

// GravityVec returns gravity as a world vector. World Y grows downward.
func (c RopeConfig) GravityVec() core.Vec2 {
	return core.V(0, c.Physics.Gravity)
}
