package rope

// DistanceConstraint pulls two points toward the separation they had when
// the constraint was created. It is a soft constraint: each Relax call
// corrects only part of the error.
type DistanceConstraint struct {
	A, B       PointID
	RestLength float64

	// Resolved endpoints. The owning Chain removes a constraint before it
	// drops either point, so these never dangle.
	a, b *MassPoint
}

// NewDistanceConstraint joins first and second at their current distance.
func NewDistanceConstraint(first, second *MassPoint) DistanceConstraint {
	return DistanceConstraint{
		A:          first.ID,
		B:          second.ID,
		RestLength: second.Position.Dist(first.Position),
		a:          first,
		b:          second,
	}
}

// Relax applies one under-relaxed, time-scaled correction toward the rest
// length. Locked endpoints are not moved. A zero rest length has no
// meaningful relative error and is skipped.
func (c *DistanceConstraint) Relax(dt, gain float64) {
	if c.RestLength <= 0 {
		return
	}
	delta := c.b.Position.Sub(c.a.Position)
	length := delta.Len()
	corr := delta.Scale((c.RestLength - length) / c.RestLength * gain * dt)

	if !c.a.Locked {
		c.a.Position = c.a.Position.Sub(corr)
	}
	if !c.b.Locked {
		c.b.Position = c.b.Position.Add(corr)
	}
}

// ApplyDamping removes part of the endpoints' relative implied velocity
// along the constraint axis by nudging their Previous positions. Current
// positions are untouched. Coincident endpoints have no axis and are skipped.
func (c *DistanceConstraint) ApplyDamping(factor float64) {
	axis, ok := c.a.Position.Sub(c.b.Position).Norm()
	if !ok {
		return
	}
	rel := c.a.Position.Sub(c.a.Previous).Sub(c.b.Position.Sub(c.b.Previous))
	d := axis.Scale(axis.Dot(rel) * factor)

	if !c.a.Locked {
		c.a.Previous = c.a.Previous.Add(d)
	}
	if !c.b.Locked {
		c.b.Previous = c.b.Previous.Sub(d)
	}
}

// Length returns the current distance between the endpoints.
func (c *DistanceConstraint) Length() float64 {
	return c.b.Position.Dist(c.a.Position)
}

// Strain returns (length - rest) / rest, or 0 for a zero rest length.
func (c *DistanceConstraint) Strain() float64 {
	if c.RestLength <= 0 {
		return 0
	}
	return (c.Length() - c.RestLength) / c.RestLength
}

// References reports whether id is one of the endpoints.
func (c *DistanceConstraint) References(id PointID) bool {
	return c.A == id || c.B == id
}
