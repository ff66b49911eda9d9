package rope

import (
	"fmt"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// Extend appends a point past the last one, continuing the direction from
// the third-to-last point (second-to-last for short chains) through the
// last point, one segment length away, and joins it to the old last point.
// It is a no-op at MaxPoints or on an empty chain and reports whether the
// chain changed.
func (c *Chain) Extend() bool {
	n := len(c.points)
	if n == 0 || n >= c.params.MaxPoints {
		return false
	}

	last := c.points[n-1]
	dir := core.V(1, 0)
	if n >= 2 {
		from := c.points[n-2]
		if n >= 3 {
			from = c.points[n-3]
		}
		if d, ok := last.Position.Sub(from.Position).Norm(); ok {
			dir = d
		}
	}

	p := c.addPoint(last.Position.Add(dir.Scale(c.segmentLength())))
	c.connect(last, p)
	return true
}

// segmentLength is the offset used by Extend: the first constraint's rest
// length, falling back to the creation spacing and finally to one unit.
func (c *Chain) segmentLength() float64 {
	if len(c.constraints) > 0 && c.constraints[0].RestLength > 0 {
		return c.constraints[0].RestLength
	}
	if c.spacing > 0 {
		return c.spacing
	}
	return 1
}

// Shrink removes the last point together with its constraints. It is a
// no-op at or below MinPoints and reports whether the chain changed.
func (c *Chain) Shrink() bool {
	if len(c.points) <= c.params.MinPoints {
		return false
	}
	c.removePoint(c.points[len(c.points)-1].ID)
	return true
}

// Select makes id the active edit point.
func (c *Chain) Select(id PointID) error {
	if _, err := c.lookup(id); err != nil {
		return fmt.Errorf("rope: select: %w", err)
	}
	c.selected = id
	return nil
}

// Selected returns the active edit point, if any.
func (c *Chain) Selected() (PointID, bool) {
	return c.selected, c.selected != NoPoint
}

// ClearSelection drops the active edit point.
func (c *Chain) ClearSelection() {
	c.selected = NoPoint
}

// Delete removes a point and every constraint that references it.
// An unknown id leaves the chain untouched and returns ErrInvalidReference.
func (c *Chain) Delete(id PointID) error {
	if _, err := c.lookup(id); err != nil {
		return fmt.Errorf("rope: delete: %w", err)
	}
	c.removePoint(id)
	return nil
}

// DeleteSelected deletes the active edit point and clears the selection.
func (c *Chain) DeleteSelected() error {
	if c.selected == NoPoint {
		return fmt.Errorf("rope: delete: no point selected: %w", ErrInvalidReference)
	}
	return c.Delete(c.selected)
}

// Insert creates a point at pos and a constraint from the point from to
// connectTo, or to the new point when connectTo is NoPoint. The new point
// becomes the selection. Nothing changes on error.
func (c *Chain) Insert(from PointID, pos core.Vec2, connectTo PointID) (PointID, error) {
	src, err := c.lookup(from)
	if err != nil {
		return NoPoint, fmt.Errorf("rope: insert: %w", err)
	}
	var dst *MassPoint
	if connectTo != NoPoint {
		if connectTo == from {
			return NoPoint, fmt.Errorf("rope: insert: cannot connect point %d to itself: %w", from, ErrInvalidReference)
		}
		if dst, err = c.lookup(connectTo); err != nil {
			return NoPoint, fmt.Errorf("rope: insert: %w", err)
		}
	}
	if !pos.IsFinite() {
		return NoPoint, fmt.Errorf("rope: insert: %w: non-finite position", ErrInvalidParams)
	}

	p := c.addPoint(pos)
	if dst == nil {
		dst = p
	}
	c.connect(src, dst)
	c.selected = p.ID
	return p.ID, nil
}

// InsertAt is Insert starting from the active edit point.
// Without a selection it returns ErrInvalidReference.
func (c *Chain) InsertAt(pos core.Vec2, connectTo PointID) (PointID, error) {
	if c.selected == NoPoint {
		return NoPoint, fmt.Errorf("rope: insert: no point selected: %w", ErrInvalidReference)
	}
	return c.Insert(c.selected, pos, connectTo)
}

// Link joins two existing points at their current distance.
func (c *Chain) Link(a, b PointID) error {
	pa, err := c.lookup(a)
	if err != nil {
		return fmt.Errorf("rope: link: %w", err)
	}
	pb, err := c.lookup(b)
	if err != nil {
		return fmt.Errorf("rope: link: %w", err)
	}
	if a == b {
		return fmt.Errorf("rope: link: cannot connect point %d to itself: %w", a, ErrInvalidReference)
	}
	c.connect(pa, pb)
	return nil
}

// Lock pins a point.
func (c *Chain) Lock(id PointID) error {
	p, err := c.lookup(id)
	if err != nil {
		return fmt.Errorf("rope: lock: %w", err)
	}
	p.Lock()
	return nil
}

// Unlock releases a point.
func (c *Chain) Unlock(id PointID) error {
	p, err := c.lookup(id)
	if err != nil {
		return fmt.Errorf("rope: unlock: %w", err)
	}
	p.Unlock()
	return nil
}

// ToggleLock flips a point's lock state and returns the new state.
func (c *Chain) ToggleLock(id PointID) (bool, error) {
	p, err := c.lookup(id)
	if err != nil {
		return false, fmt.Errorf("rope: toggle lock: %w", err)
	}
	p.ToggleLock()
	return p.Locked, nil
}

// MoveTo overrides a point's position for dragging. Previous is left alone,
// so the drag turns into velocity when the point is released.
func (c *Chain) MoveTo(id PointID, pos core.Vec2) error {
	p, err := c.lookup(id)
	if err != nil {
		return fmt.Errorf("rope: move: %w", err)
	}
	if !pos.IsFinite() {
		return fmt.Errorf("rope: move: %w: non-finite position", ErrInvalidParams)
	}
	p.MoveTo(pos)
	return nil
}
