package rope

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// PointView is an immutable copy of a point's renderable state.
type PointView struct {
	ID       PointID
	Position core.Vec2
	Velocity core.Vec2
	Mass     float64
	Locked   bool
}

// ConstraintView is an immutable copy of a constraint with resolved
// endpoint positions.
type ConstraintView struct {
	A, B       PointID
	From, To   core.Vec2
	RestLength float64
	Strain     float64
}

// Snapshot is a frame-consistent copy of the chain for the presentation
// layer. Mutating it never affects the chain.
type Snapshot struct {
	Points      []PointView
	Constraints []ConstraintView
	Selected    PointID // NoPoint when nothing is selected
}

func viewOf(p *MassPoint) PointView {
	return PointView{
		ID:       p.ID,
		Position: p.Position,
		Velocity: p.Velocity,
		Mass:     p.Mass,
		Locked:   p.Locked,
	}
}

// Snapshot copies the current points and constraints.
func (c *Chain) Snapshot() Snapshot {
	s := Snapshot{
		Points:      make([]PointView, len(c.points)),
		Constraints: make([]ConstraintView, len(c.constraints)),
		Selected:    c.selected,
	}
	for i, p := range c.points {
		s.Points[i] = viewOf(p)
	}
	for i := range c.constraints {
		con := &c.constraints[i]
		s.Constraints[i] = ConstraintView{
			A:          con.A,
			B:          con.B,
			From:       con.a.Position,
			To:         con.b.Position,
			RestLength: con.RestLength,
			Strain:     con.Strain(),
		}
	}
	return s
}

// Layout is a persistable description of a chain at rest: positions, lock
// flags, masses and constraints with their rest lengths. Motion state is
// not kept; a restored chain starts still.
type Layout struct {
	MinPoints   int                `yaml:"min_points"`
	MaxPoints   int                `yaml:"max_points"`
	Points      []LayoutPoint      `yaml:"points"`
	Constraints []LayoutConstraint `yaml:"constraints"`
}

// LayoutPoint is one point of a Layout.
type LayoutPoint struct {
	ID       PointID   `yaml:"id"`
	Position core.Vec2 `yaml:"position"`
	Mass     float64   `yaml:"mass"`
	Locked   bool      `yaml:"locked"`
}

// LayoutConstraint is one constraint of a Layout.
type LayoutConstraint struct {
	A          PointID `yaml:"a"`
	B          PointID `yaml:"b"`
	RestLength float64 `yaml:"rest_length"`
}

// Layout exports the chain's structure.
func (c *Chain) Layout() Layout {
	l := Layout{
		MinPoints:   c.params.MinPoints,
		MaxPoints:   c.params.MaxPoints,
		Points:      make([]LayoutPoint, len(c.points)),
		Constraints: make([]LayoutConstraint, len(c.constraints)),
	}
	for i, p := range c.points {
		l.Points[i] = LayoutPoint{ID: p.ID, Position: p.Position, Mass: p.Mass, Locked: p.Locked}
	}
	for i, con := range c.constraints {
		l.Constraints[i] = LayoutConstraint{A: con.A, B: con.B, RestLength: con.RestLength}
	}
	return l
}

// FromLayout rebuilds a chain. Bounds stored in the layout override those
// in params; a zero point mass falls back to params.Mass. Point IDs are
// preserved so constraints keep their endpoints.
func FromLayout(l Layout, params Params) (*Chain, error) {
	if l.MinPoints > 0 {
		params.MinPoints = l.MinPoints
	}
	if l.MaxPoints > 0 {
		params.MaxPoints = l.MaxPoints
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(l.Points) == 0 {
		return nil, fmt.Errorf("%w: layout has no points", ErrInvalidParams)
	}

	c := newEmpty(params)
	c.points = make([]*MassPoint, 0, len(l.Points))
	for _, lp := range l.Points {
		if lp.ID == NoPoint {
			return nil, fmt.Errorf("%w: layout point with zero id", ErrInvalidParams)
		}
		if c.Has(lp.ID) {
			return nil, fmt.Errorf("%w: duplicate layout point %d", ErrInvalidParams, lp.ID)
		}
		if !lp.Position.IsFinite() {
			return nil, fmt.Errorf("%w: layout point %d has a non-finite position", ErrInvalidParams, lp.ID)
		}
		mass := lp.Mass
		if mass == 0 {
			mass = params.Mass
		}
		if !(mass > 0) || math.IsInf(mass, 1) {
			return nil, fmt.Errorf("%w: layout point %d has mass %g", ErrInvalidParams, lp.ID, lp.Mass)
		}
		p := NewMassPoint(lp.ID, lp.Position, mass)
		p.Locked = lp.Locked
		c.points = append(c.points, p)
		c.index[p.ID] = p
		if p.ID > c.nextID {
			c.nextID = p.ID
		}
	}

	for _, lc := range l.Constraints {
		a, err := c.lookup(lc.A)
		if err != nil {
			return nil, fmt.Errorf("rope: layout constraint: %w", err)
		}
		b, err := c.lookup(lc.B)
		if err != nil {
			return nil, fmt.Errorf("rope: layout constraint: %w", err)
		}
		if lc.A == lc.B {
			return nil, fmt.Errorf("rope: layout constraint on point %d alone: %w", lc.A, ErrInvalidReference)
		}
		if lc.RestLength < 0 || math.IsNaN(lc.RestLength) || math.IsInf(lc.RestLength, 0) {
			return nil, fmt.Errorf("%w: constraint %d-%d has rest length %g", ErrInvalidParams, lc.A, lc.B, lc.RestLength)
		}
		con := NewDistanceConstraint(a, b)
		con.RestLength = lc.RestLength
		c.constraints = append(c.constraints, con)
	}

	if len(c.constraints) > 0 {
		c.spacing = c.constraints[0].RestLength
	}
	return c, nil
}
