package rope

import (
	"math"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// Step advances the chain by one frame of length dt (seconds):
//
//  1. unlocked points receive gravity*mass and, with air resistance,
//     linear drag opposing their velocity;
//  2. every point integrates and has its force cleared;
//  3. Tuning.Iterations times: Tuning.RelaxPasses sweeps over all
//     constraints in order, then one damping sweep.
//
// A point whose state turns non-finite is put back where it was before the
// frame, at rest. Step returns how many points were recovered that way.
// Frames with a non-positive or non-finite dt are ignored.
func (c *Chain) Step(dt float64, gravity core.Vec2, airResistance bool) int {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return 0
	}
	t := c.params.Tuning
	c.checkpoint()

	for _, p := range c.points {
		if p.Locked {
			continue
		}
		p.ApplyForce(gravity.Scale(p.Mass))
		if airResistance {
			p.ApplyForce(p.Velocity.Scale(-t.Drag * p.Mass))
		}
	}

	for _, p := range c.points {
		p.Integrate(dt)
		p.ResetForce()
	}

	damping := t.DampingFactor(dt)
	for i := 0; i < t.Iterations; i++ {
		for pass := 0; pass < t.RelaxPasses; pass++ {
			for j := range c.constraints {
				c.constraints[j].Relax(dt, t.RelaxGain)
			}
		}
		for j := range c.constraints {
			c.constraints[j].ApplyDamping(damping)
		}
	}

	return c.recover()
}

// StepFrame advances chain by one frame. It is the free-function form of
// (*Chain).Step for shells that drive several chains.
func StepFrame(chain *Chain, dt float64, gravity core.Vec2, airResistance bool) int {
	return chain.Step(dt, gravity, airResistance)
}

func (c *Chain) checkpoint() {
	if cap(c.scratch) < len(c.points) {
		c.scratch = make([]core.Vec2, len(c.points))
	}
	c.scratch = c.scratch[:len(c.points)]
	for i, p := range c.points {
		c.scratch[i] = p.Position
	}
}

func (c *Chain) recover() int {
	n := 0
	for i, p := range c.points {
		if p.Position.IsFinite() && p.Previous.IsFinite() && p.Velocity.IsFinite() {
			continue
		}
		p.Position = c.scratch[i]
		p.Previous = c.scratch[i]
		p.Velocity = core.Vec2{}
		p.Force = core.Vec2{}
		n++
	}
	return n
}
