package sandbox

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-rope/internal/core"
)

func TestCameraRoundTrip(t *testing.T) {
	cams := []Camera{
		NewCamera(core.V(50, 33), 0.6, 0.5, 80, 24),
		NewCamera(core.V(-10, 4), 1.7, 0.5, 121, 37),
		NewCamera(core.V(0, 0), 0.25, 1, 10, 10),
	}

	for _, cam := range cams {
		for y := -2; y < cam.H+2; y++ {
			for x := -2; x < cam.W+2; x++ {
				gx, gy := cam.ToScreen(cam.ToWorld(x, y))
				if gx != x || gy != y {
					t.Fatalf("camera %+v: cell (%d, %d) maps back to (%d, %d)", cam, x, y, gx, gy)
				}
			}
		}
	}
}

func TestCameraCentre(t *testing.T) {
	cam := NewCamera(core.V(10, 20), 2, 0.5, 40, 20)

	if x, y := cam.ToScreen(core.V(10, 20)); x != 20 || y != 10 {
		t.Errorf("centre maps to (%d, %d), expected (20, 10)", x, y)
	}
	// One world unit right is Zoom cells, one unit down is Zoom*Aspect rows
	if x, y := cam.ToScreen(core.V(11, 22)); x != 22 || y != 12 {
		t.Errorf("offset maps to (%d, %d), expected (22, 12)", x, y)
	}
	if d := cam.Cells(3); d != 6 {
		t.Errorf("Cells(3) = %v, expected 6", d)
	}
}

func TestCameraFrame(t *testing.T) {
	cam := NewCamera(core.Vec2{}, 0.6, 0.5, 80, 24)
	cam.Frame(0, 100, 0, 2)

	if cam.Zoom != 0.6 {
		t.Errorf("Zoom = %v, a 100 unit span fits at 0.6", cam.Zoom)
	}
	if x, y := cam.ToScreen(core.V(0, 0)); x != 10 || y != 2 {
		t.Errorf("left anchor at (%d, %d), expected (10, 2)", x, y)
	}

	narrow := NewCamera(core.Vec2{}, 0.6, 0.5, 40, 24)
	narrow.Frame(0, 100, 0, 2)
	if want := 36.0 / 100; math.Abs(narrow.Zoom-want) > 1e-12 {
		t.Errorf("Zoom = %v, expected shrink to %v", narrow.Zoom, want)
	}
}
