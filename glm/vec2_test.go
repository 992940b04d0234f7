package glm

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2f{3, 4}
	b := Vec2f{1, 2}

	if got := a.Add(b); got != (Vec2f{4, 6}) {
		t.Errorf("Add() = %v", got)
	}

	if got := a.Sub(b); got != (Vec2f{2, 2}) {
		t.Errorf("Sub() = %v", got)
	}

	if got := a.MulScalar(2); got != (Vec2f{6, 8}) {
		t.Errorf("MulScalar() = %v", got)
	}

	if x, y := a.XY(); x != 3 || y != 4 {
		t.Errorf("XY() = %v, %v", x, y)
	}
}

func TestVec2uToVec2f(t *testing.T) {
	v := Vec2u{640, 480}

	if got := v.ToVec2f(); got != (Vec2f{640, 480}) {
		t.Errorf("ToVec2f() = %v", got)
	}
}
