package tessellate

import (
	"math"

	"github.com/gogpu/cadscene/internal/geom"
)

// DegenerateTriangleEpsilon is the minimum absolute cross-product area a
// triangle must have to be considered non-degenerate (spec.md C4:
// "degenerate triangles (cross-product area <= eps) are dropped").
const DegenerateTriangleEpsilon = 1e-9

// TriangleArea2 returns twice the signed area of triangle (a,b,c).
func TriangleArea2(a, b, c geom.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// IsDegenerateTriangle reports whether the triangle's absolute area falls
// at or below DegenerateTriangleEpsilon.
func IsDegenerateTriangle(a, b, c geom.Point) bool {
	return math.Abs(TriangleArea2(a, b, c)) <= DegenerateTriangleEpsilon
}
