package rope

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// Chain is the rope: an ordered set of points and the constraints between
// them. Points are appended in creation order; constraints are relaxed in
// the order they were added. Although a freshly created chain is a simple
// path, edits may turn it into any undirected graph over its points.
type Chain struct {
	params      Params
	points      []*MassPoint
	index       map[PointID]*MassPoint
	constraints []DistanceConstraint
	spacing     float64 // segment length at creation, used when no constraint is left
	nextID      PointID
	selected    PointID

	scratch []core.Vec2 // pre-frame positions for recovery in Step
}

// New creates a chain of count points evenly spaced from start to end, each
// joined to the next, with both end points locked.
func New(start, end core.Vec2, count int, params Params) (*Chain, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, fmt.Errorf("%w: a chain needs at least 2 points, got %d", ErrInvalidParams, count)
	}
	if count < params.MinPoints || count > params.MaxPoints {
		return nil, fmt.Errorf("%w: point count %d outside [%d, %d]",
			ErrInvalidParams, count, params.MinPoints, params.MaxPoints)
	}
	if !start.IsFinite() || !end.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite end points", ErrInvalidParams)
	}

	c := newEmpty(params)
	c.points = make([]*MassPoint, 0, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		c.addPoint(start.Lerp(end, t))
	}
	for i := 0; i+1 < count; i++ {
		c.connect(c.points[i], c.points[i+1])
	}
	c.points[0].Lock()
	c.points[count-1].Lock()
	c.spacing = start.Dist(end) / float64(count-1)
	return c, nil
}

// CreateChain is New with DefaultParams.
func CreateChain(start, end core.Vec2, count int) (*Chain, error) {
	return New(start, end, count, DefaultParams())
}

func newEmpty(params Params) *Chain {
	return &Chain{
		params: params,
		index:  make(map[PointID]*MassPoint),
	}
}

func (c *Chain) addPoint(pos core.Vec2) *MassPoint {
	c.nextID++
	p := NewMassPoint(c.nextID, pos, c.params.Mass)
	c.points = append(c.points, p)
	c.index[p.ID] = p
	return p
}

func (c *Chain) connect(a, b *MassPoint) {
	c.constraints = append(c.constraints, NewDistanceConstraint(a, b))
}

// removePoint drops a point and every constraint that references it.
func (c *Chain) removePoint(id PointID) {
	kept := c.constraints[:0]
	for _, con := range c.constraints {
		if !con.References(id) {
			kept = append(kept, con)
		}
	}
	// Clear the tail so removed constraints release their point pointers.
	for i := len(kept); i < len(c.constraints); i++ {
		c.constraints[i] = DistanceConstraint{}
	}
	c.constraints = kept

	for i, p := range c.points {
		if p.ID == id {
			copy(c.points[i:], c.points[i+1:])
			c.points[len(c.points)-1] = nil
			c.points = c.points[:len(c.points)-1]
			break
		}
	}
	delete(c.index, id)

	if c.selected == id {
		c.selected = NoPoint
	}
}

func (c *Chain) lookup(id PointID) (*MassPoint, error) {
	p, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: no point %d", ErrInvalidReference, id)
	}
	return p, nil
}

// Params returns the parameters the chain was built with.
func (c *Chain) Params() Params {
	return c.params
}

// Len returns the number of points.
func (c *Chain) Len() int {
	return len(c.points)
}

// ConstraintCount returns the number of constraints.
func (c *Chain) ConstraintCount() int {
	return len(c.constraints)
}

// Has reports whether id names a live point.
func (c *Chain) Has(id PointID) bool {
	_, ok := c.index[id]
	return ok
}

// Point returns a read-only view of one point.
func (c *Chain) Point(id PointID) (PointView, bool) {
	p, ok := c.index[id]
	if !ok {
		return PointView{}, false
	}
	return viewOf(p), true
}

// PointIDs returns the live point IDs in chain order.
func (c *Chain) PointIDs() []PointID {
	ids := make([]PointID, len(c.points))
	for i, p := range c.points {
		ids[i] = p.ID
	}
	return ids
}

// Nearest returns the point closest to pos and its distance.
// The boolean is false for an empty chain.
func (c *Chain) Nearest(pos core.Vec2) (PointID, float64, bool) {
	best := NoPoint
	bestDist := math.Inf(1)
	for _, p := range c.points {
		if d := p.Position.Dist(pos); d < bestDist {
			best, bestDist = p.ID, d
		}
	}
	return best, bestDist, best != NoPoint
}

// TotalLength sums the current lengths of all constraints.
func (c *Chain) TotalLength() float64 {
	total := 0.0
	for i := range c.constraints {
		total += c.constraints[i].Length()
	}
	return total
}

// RestLength sums the rest lengths of all constraints.
func (c *Chain) RestLength() float64 {
	total := 0.0
	for i := range c.constraints {
		total += c.constraints[i].RestLength
	}
	return total
}

// MaxStrain returns the largest absolute strain over all constraints.
func (c *Chain) MaxStrain() float64 {
	worst := 0.0
	for i := range c.constraints {
		if s := math.Abs(c.constraints[i].Strain()); s > worst {
			worst = s
		}
	}
	return worst
}
