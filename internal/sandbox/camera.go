package sandbox

import (
	"math"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// Camera maps world coordinates onto terminal cells. World Y grows
// downward like screen rows. Cells are roughly twice as tall as they are
// wide, so vertical distances are scaled by Aspect.
type Camera struct {
	Centre core.Vec2 // world point shown at the middle of the screen
	Zoom   float64   // cells per world unit, horizontally
	Aspect float64   // vertical cell scale relative to Zoom
	W, H   int       // screen size in cells
}

// NewCamera creates a camera for a w×h screen.
func NewCamera(centre core.Vec2, zoom, aspect float64, w, h int) Camera {
	return Camera{Centre: centre, Zoom: zoom, Aspect: aspect, W: w, H: h}
}

// Resize updates the screen size, keeping the centre.
func (c *Camera) Resize(w, h int) {
	c.W, c.H = w, h
}

// ToScreen returns the cell containing world point p.
func (c Camera) ToScreen(p core.Vec2) (int, int) {
	x := float64(c.W)/2 + (p.X-c.Centre.X)*c.Zoom
	y := float64(c.H)/2 + (p.Y-c.Centre.Y)*c.Zoom*c.Aspect
	return int(math.Floor(x + 0.5)), int(math.Floor(y + 0.5))
}

// ToWorld returns the world point at the centre of cell (x, y).
func (c Camera) ToWorld(x, y int) core.Vec2 {
	return core.Vec2{
		X: c.Centre.X + (float64(x)-float64(c.W)/2)/c.Zoom,
		Y: c.Centre.Y + (float64(y)-float64(c.H)/2)/(c.Zoom*c.Aspect),
	}
}

// Cells converts a world distance to horizontal cells.
func (c Camera) Cells(dist float64) float64 {
	return dist * c.Zoom
}

// Frame positions the camera so the world rectangle spanning [left, right]
// horizontally fits with a margin, and world y = top sits at row topRow.
// The zoom only ever shrinks from the configured value.
func (c *Camera) Frame(left, right, top float64, topRow int) {
	if width := right - left; width > 0 && c.W > 4 {
		if fit := float64(c.W-4) / width; fit < c.Zoom {
			c.Zoom = fit
		}
	}
	c.Centre.X = (left + right) / 2
	c.Centre.Y = top + (float64(c.H)/2-float64(topRow))/(c.Zoom*c.Aspect)
}
