package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 || r.Bottom() != 7 {
		t.Errorf("edges of %+v = (%d, %d), expected (12, 7)", r, r.Right(), r.Bottom())
	}
}

func TestAbs(t *testing.T) {
	tests := map[int]int{-5: 5, 0: 0, 7: 7}
	for in, want := range tests {
		if got := Abs(in); got != want {
			t.Errorf("Abs(%d) = %d, expected %d", in, got, want)
		}
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(0.5); got != V(1.5, 2) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, expected -5", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %v, expected 5", got)
	}
	if got := V(0, 0).Dist(a); got != 5 {
		t.Errorf("Dist = %v, expected 5", got)
	}
	if got := V(0, 0).Lerp(V(10, -10), 0.25); got != V(2.5, -2.5) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestVecNorm(t *testing.T) {
	n, ok := V(0, -8).Norm()
	if !ok || n != V(0, -1) {
		t.Errorf("Norm(0,-8) = %v, %v", n, ok)
	}

	n, ok = Vec2{}.Norm()
	if ok || !n.IsZero() {
		t.Errorf("zero vector should have no direction, got %v, %v", n, ok)
	}

	n, ok = V(math.NaN(), 1).Norm()
	if ok || !n.IsZero() {
		t.Errorf("NaN vector should have no direction, got %v, %v", n, ok)
	}
}

func TestVecIsFinite(t *testing.T) {
	if !V(1, 2).IsFinite() {
		t.Error("V(1, 2) should be finite")
	}
	if V(math.Inf(1), 0).IsFinite() || V(0, math.NaN()).IsFinite() {
		t.Error("Inf/NaN components should not be finite")
	}
}
