package geom

import "math"

// Matrix is a 2D affine transform in row-major 3x2 form:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F. This is the same
// layout the output scene uses for per-instance transforms (§6: "row-major
// 3x2 per instance").
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a pure translation transform.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, B: 0, C: x, D: 0, E: 1, F: y}
}

// Scale returns a pure scale transform about the origin.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, B: 0, C: 0, D: 0, E: y, F: 0}
}

// Rotate returns a rotation transform about the origin, angle in radians.
func Rotate(angle float64) Matrix {
	s, c := math.Sin(angle), math.Cos(angle)
	return Matrix{A: c, B: -s, C: 0, D: s, E: c, F: 0}
}

// Mul returns m composed with other such that applying the result to a
// point is equivalent to applying other first, then m: (m.Mul(other)).Apply(p)
// == m.Apply(other.Apply(p)).
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point (including translation).
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector transforms a vector (ignoring translation).
func (m Matrix) ApplyVector(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y, Y: m.D*p.X + m.E*p.Y}
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Row32 returns the two row-vectors of the transform as float32, in the
// layout the output scene expects for a packed instance transform: the
// first three floats are the top row (A,B,C), the next three the bottom
// row (D,E,F).
func (m Matrix) Row32() [6]float32 {
	return [6]float32{
		float32(m.A), float32(m.B), float32(m.C),
		float32(m.D), float32(m.E), float32(m.F),
	}
}
