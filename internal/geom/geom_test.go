package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2)
	q := Pt(3, 4)

	if got := p.Add(q); got != (Point{4, 6}) {
		t.Errorf("Add() = %+v, want (4,6)", got)
	}
	if got := q.Sub(p); got != (Point{2, 2}) {
		t.Errorf("Sub() = %+v, want (2,2)", got)
	}
	if got := p.Mul(2); got != (Point{2, 4}) {
		t.Errorf("Mul() = %+v, want (2,4)", got)
	}
	if got := p.Dot(q); got != 11 {
		t.Errorf("Dot() = %v, want 11", got)
	}
	if got := p.Cross(q); got != -2 {
		t.Errorf("Cross() = %v, want -2", got)
	}
}

func TestPointLengthAndNormalize(t *testing.T) {
	p := Pt(3, 4)
	if p.Length() != 5 {
		t.Errorf("Length() = %v, want 5", p.Length())
	}
	if p.LengthSquared() != 25 {
		t.Errorf("LengthSquared() = %v, want 25", p.LengthSquared())
	}
	n := p.Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Errorf("Normalize().Length() = %v, want 1", n.Length())
	}
	if z := (Point{}).Normalize(); z != (Point{}) {
		t.Errorf("Normalize() of zero vector = %+v, want zero", z)
	}
}

func TestPointPerpIsLeftNormal(t *testing.T) {
	p := Pt(1, 0)
	if got := p.Perp(); got != (Point{0, 1}) {
		t.Errorf("Perp() = %+v, want (0,1)", got)
	}
}

func TestPointLerp(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(10, 20)
	if got := a.Lerp(b, 0.5); got != (Point{5, 10}) {
		t.Errorf("Lerp(0.5) = %+v, want (5,10)", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want a", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want b", got)
	}
}

func TestMatrixIdentityApply(t *testing.T) {
	m := Identity()
	p := Pt(7, -3)
	if got := m.Apply(p); got != p {
		t.Errorf("Identity().Apply(p) = %+v, want %+v", got, p)
	}
}

func TestMatrixTranslate(t *testing.T) {
	m := Translate(5, -2)
	got := m.Apply(Pt(1, 1))
	want := Pt(6, -1)
	if got != want {
		t.Errorf("Translate().Apply() = %+v, want %+v", got, want)
	}
	if got := m.ApplyVector(Pt(1, 1)); got != (Point{1, 1}) {
		t.Errorf("ApplyVector() should ignore translation, got %+v", got)
	}
}

func TestMatrixRotate90(t *testing.T) {
	m := Rotate(math.Pi / 2)
	got := m.Apply(Pt(1, 0))
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 1) {
		t.Errorf("Rotate(pi/2).Apply((1,0)) = %+v, want ~(0,1)", got)
	}
}

func TestMatrixMulAppliesRightOperandFirst(t *testing.T) {
	// m.Mul(other) composed so that applying it equals m.Apply(other.Apply(p)).
	translate := Translate(10, 0)
	scale := Scale(2, 2)
	composed := translate.Mul(scale)

	p := Pt(3, 3)
	got := composed.Apply(p)
	want := translate.Apply(scale.Apply(p))
	if got != want {
		t.Errorf("composed.Apply(p) = %+v, want %+v", got, want)
	}
	// scale-then-translate: (3,3)*2 = (6,6), + (10,0) = (16,6).
	if got != (Point{16, 6}) {
		t.Errorf("composed.Apply(p) = %+v, want (16,6)", got)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false, want true")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1,0).IsIdentity() = true, want false")
	}
}

func TestMatrixRow32Layout(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	row := m.Row32()
	want := [6]float32{1, 2, 3, 4, 5, 6}
	if row != want {
		t.Errorf("Row32() = %v, want %v", row, want)
	}
}
