package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-rope/internal/rope"
)

//go:embed defaults/rope.yaml
var defaultRopeYAML []byte

// DefaultRopeConfig returns the default rope configuration.
func DefaultRopeConfig() RopeConfig {
	return RopeConfig{
		Chain: ChainConfig{
			Points:    50,
			MinPoints: rope.DefaultMinPoints,
			MaxPoints: rope.DefaultMaxPoints,
			Mass:      rope.DefaultMass,
			Span:      100,
		},
		Physics: PhysicsConfig{
			Gravity:       75,
			AirResistance: true,
			Drag:          rope.DefaultDrag,
		},
		Solver: SolverConfig{
			Iterations:  rope.DefaultIterations,
			RelaxPasses: rope.DefaultRelaxPasses,
			RelaxGain:   rope.DefaultRelaxGain,
			Damping:     rope.DefaultDamping,
		},
		View: ViewConfig{
			Zoom:       0.6,
			Aspect:     0.5,
			PickRadius: 2,
			LockRadius: 2,
			ShowNodes:  true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRopeYAML
}
