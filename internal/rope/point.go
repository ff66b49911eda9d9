package rope

import "github.com/vovakirdan/tui-rope/internal/core"

// PointID identifies a point for the lifetime of its chain.
// IDs are never reused, so a stale ID is always detected.
type PointID uint32

// NoPoint is the zero PointID; no live point ever carries it.
const NoPoint PointID = 0

// MassPoint is a simulated particle. Its velocity is implied by the
// difference between Position and Previous.
type MassPoint struct {
	ID       PointID
	Position core.Vec2
	Previous core.Vec2 // position before the most recent integration step
	Velocity core.Vec2 // derived in Integrate, used for air drag
	Force    core.Vec2 // accumulated since the last ResetForce
	Mass     float64
	Locked   bool
}

// NewMassPoint creates a resting point at pos.
func NewMassPoint(id PointID, pos core.Vec2, mass float64) *MassPoint {
	return &MassPoint{
		ID:       id,
		Position: pos,
		Previous: pos,
		Mass:     mass,
	}
}

// ApplyForce adds f to the force accumulator. Forces on locked points are
// accumulated too; Integrate ignores them.
func (p *MassPoint) ApplyForce(f core.Vec2) {
	p.Force = p.Force.Add(f)
}

// Integrate advances the point by one Verlet step of length dt.
// Previous always ends up holding the position from before the call, so a
// locked point carries no implied velocity.
func (p *MassPoint) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	before := p.Position
	if !p.Locked {
		step := p.Position.Sub(p.Previous).Add(p.Force.Scale(dt * dt / p.Mass))
		p.Position = p.Position.Add(step)
		p.Velocity = p.Position.Sub(p.Previous).Scale(1 / dt)
	}
	p.Previous = before
}

// Lock pins the point in place and discards any stored momentum.
func (p *MassPoint) Lock() {
	p.Locked = true
	p.ResetForce()
	p.Velocity = core.Vec2{}
	p.Previous = p.Position
}

// Unlock releases the point. The position history is left alone, so the
// point starts from rest.
func (p *MassPoint) Unlock() {
	p.Locked = false
}

// ToggleLock locks an unlocked point and unlocks a locked one.
func (p *MassPoint) ToggleLock() {
	if p.Locked {
		p.Unlock()
	} else {
		p.Lock()
	}
}

// ResetForce zeroes the force accumulator.
func (p *MassPoint) ResetForce() {
	p.Force = core.Vec2{}
}

// MoveTo teleports the point without touching Previous, so the jump shows
// up as velocity on the next integration step.
func (p *MassPoint) MoveTo(pos core.Vec2) {
	p.Position = pos
}
