package rope

import "fmt"

// Solver defaults, found empirically for visual plausibility at 60 Hz.
const (
	DefaultIterations  = 3   // stabilization groups per frame
	DefaultRelaxPasses = 8   // relaxation sweeps per group
	DefaultRelaxGain   = 0.2 // fraction of the error corrected per second of Δt
	DefaultDamping     = 0.5 // axial velocity removed per damping sweep
	DefaultDrag        = 0.1 // linear air drag coefficient

	DefaultMinPoints = 3
	DefaultMaxPoints = 100
	DefaultMass      = 1.0
)

// Tuning holds the solver constants used by Step.
type Tuning struct {
	Iterations  int     // outer groups of relax passes followed by damping
	RelaxPasses int     // constraint sweeps inside each group
	RelaxGain   float64 // k in the time-scaled partial correction
	Damping     float64 // scale of the axial damping sweep
	Drag        float64 // air drag coefficient applied when enabled
}

// DefaultTuning returns the stock solver constants.
func DefaultTuning() Tuning {
	return Tuning{
		Iterations:  DefaultIterations,
		RelaxPasses: DefaultRelaxPasses,
		RelaxGain:   DefaultRelaxGain,
		Damping:     DefaultDamping,
		Drag:        DefaultDrag,
	}
}

// DampingFactor evaluates (1 - 0^dt) * Damping for a frame of length dt.
// 0^dt is 1 at dt == 0 and 0 for every positive dt, so the factor is the
// constant Damping for any real frame.
func (t Tuning) DampingFactor(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return t.Damping
}

// Validate rejects tunings that would make Step meaningless.
func (t Tuning) Validate() error {
	switch {
	case t.Iterations < 0:
		return fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidParams, t.Iterations)
	case t.RelaxPasses < 0:
		return fmt.Errorf("%w: relax passes must be >= 0, got %d", ErrInvalidParams, t.RelaxPasses)
	case t.RelaxGain < 0:
		return fmt.Errorf("%w: relax gain must be >= 0, got %g", ErrInvalidParams, t.RelaxGain)
	case t.Damping < 0 || t.Damping > 1:
		return fmt.Errorf("%w: damping must be in [0, 1], got %g", ErrInvalidParams, t.Damping)
	case t.Drag < 0:
		return fmt.Errorf("%w: drag must be >= 0, got %g", ErrInvalidParams, t.Drag)
	}
	return nil
}

// Params configures a new Chain.
type Params struct {
	MinPoints int     // Shrink is a no-op at or below this count
	MaxPoints int     // Extend is a no-op at or above this count
	Mass      float64 // mass given to every new point
	Tuning    Tuning
}

// DefaultParams returns bounds 3..100, unit mass and the default tuning.
func DefaultParams() Params {
	return Params{
		MinPoints: DefaultMinPoints,
		MaxPoints: DefaultMaxPoints,
		Mass:      DefaultMass,
		Tuning:    DefaultTuning(),
	}
}

// Validate checks bounds, mass and tuning.
func (p Params) Validate() error {
	if p.MinPoints < 1 {
		return fmt.Errorf("%w: min points must be >= 1, got %d", ErrInvalidParams, p.MinPoints)
	}
	if p.MaxPoints < p.MinPoints {
		return fmt.Errorf("%w: max points %d below min points %d", ErrInvalidParams, p.MaxPoints, p.MinPoints)
	}
	if !(p.Mass > 0) {
		return fmt.Errorf("%w: mass must be > 0, got %g", ErrInvalidParams, p.Mass)
	}
	return p.Tuning.Validate()
}
