package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestMat4Identity(t *testing.T) {
	p := Vec3{1, 2, 3}
	if got := Identity().MulPoint(p); !almostEqual(got, p) {
		t.Errorf("identity transform changed point: %v", got)
	}
}

func TestMat4TranslateScale(t *testing.T) {
	m := Translation(Vec3{1, 0, 0}).Mul(Scaling(2))
	got := m.MulPoint(Vec3{1, 1, 1})
	want := Vec3{3, 2, 2}
	if !almostEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBox3Empty(t *testing.T) {
	var b Box3
	if !b.IsEmpty() {
		t.Error("zero box should be empty")
	}
	if got := b.Center(); !almostEqual(got, Vec3{}) {
		t.Errorf("center of empty box should be origin, got %v", got)
	}

	b = b.ExtendByPoint(Vec3{1, 2, 3})
	if b.IsEmpty() {
		t.Error("box should not be empty after extending")
	}
	if !almostEqual(b.Min, Vec3{1, 2, 3}) || !almostEqual(b.Max, Vec3{1, 2, 3}) {
		t.Errorf("single-point box wrong: %v %v", b.Min, b.Max)
	}
}

func TestBox3ExtendByBox(t *testing.T) {
	a := NewBox3(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	b := NewBox3(Vec3{-1, 0.5, 0}, Vec3{0.5, 2, 3})

	u := a.ExtendByBox(b)
	if !almostEqual(u.Min, Vec3{-1, 0, 0}) || !almostEqual(u.Max, Vec3{1, 2, 3}) {
		t.Errorf("union wrong: %v %v", u.Min, u.Max)
	}

	// Extending by an empty box is a no-op.
	if got := a.ExtendByBox(Box3{}); got != a {
		t.Error("extending by empty box should not change the box")
	}
}

func TestBox3Transform(t *testing.T) {
	b := NewBox3(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	moved := b.Transform(Translation(Vec3{5, 0, 0}))
	if !almostEqual(moved.Min, Vec3{4, -1, -1}) || !almostEqual(moved.Max, Vec3{6, 1, 1}) {
		t.Errorf("translated box wrong: %v %v", moved.Min, moved.Max)
	}
	if !almostEqual(moved.Center(), Vec3{5, 0, 0}) {
		t.Errorf("center wrong: %v", moved.Center())
	}
}
