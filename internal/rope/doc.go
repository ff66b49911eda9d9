// Package rope is the physics core of the sandbox: a chain of point masses
// joined by soft distance constraints, integrated with a position-history
// (Verlet) scheme and stabilized by a fixed number of relaxation passes per
// frame.
//
// The Chain owns every point and constraint. Constraints refer to their
// endpoints by PointID, so removing a point can never leave a dangling
// reference behind. Callers drive the simulation with Step (or StepFrame),
// apply structural edits between frames, and read state back through
// Snapshot, which returns an independent copy.
//
// The package has no dependencies beyond internal/core and never logs;
// degenerate geometry is clamped locally so one bad frame cannot poison the
// rest of the simulation.
package rope
