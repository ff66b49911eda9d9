package core

import "time"

// RuntimeConfig contains configuration passed to a scene at initialization.
// Scenes use it to fit the camera to the terminal and to derive the fixed
// simulation time step.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameTime returns the fixed simulation step in seconds.
// A non-positive tick rate falls back to 60 Hz.
func (c RuntimeConfig) FrameTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// TickInterval returns the wall-clock interval between ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Duration(c.FrameTime() * float64(time.Second))
}

// SimState summarizes a running scene for the platform layer.
type SimState struct {
	Frames      uint64 // Simulated frames since the last reset
	Edits       int    // Structural edits applied since the last reset
	Points      int    // Current point count
	Constraints int    // Current constraint count
	Paused      bool   // Physics is not advancing
	Editing     bool   // Edit mode is active
}

// StepResult is returned by Scene.Step() after each tick.
type StepResult struct {
	State SimState
}
