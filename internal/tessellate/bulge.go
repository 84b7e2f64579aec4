package tessellate

import (
	"math"

	"github.com/gogpu/cadscene/internal/geom"
)

// degenerateChordLengthSq is the squared-length threshold below which a
// bulge's chord is considered degenerate (spec.md C3).
const degenerateChordLengthSq = 1e-12

// Bulge expands a "bulge" polyline segment (spec.md glossary: tan(theta/4)
// encoding a circular arc) from p0 to p1 into its interior samples plus
// the end vertex. p0 itself is never emitted — callers already hold it as
// the previous vertex.
//
// Returns nil for a degenerate (near-zero-length) chord, per spec.md C3.
func Bulge(p0, p1 geom.Point, bulgeValue, tessAngle float64, minSubdivisions int) []geom.Point {
	a := 4 * math.Atan(bulgeValue)
	if math.Abs(a) < tessAngle {
		return []geom.Point{p1}
	}

	chord := p1.Sub(p0)
	chordLenSq := chord.LengthSquared()
	if chordLenSq < degenerateChordLengthSq {
		return nil
	}
	chordLen := math.Sqrt(chordLenSq)

	radius := chordLen / (2 * math.Sin(a/2))
	mid := p0.Lerp(p1, 0.5)
	perp := chord.Normalize().Perp()
	apothem := radius * math.Cos(a/2)
	center := mid.Add(perp.Mul(apothem))

	v0 := p0.Sub(center)
	startAngle := math.Atan2(v0.Y, v0.X)
	radiusAbs := math.Abs(radius)

	numSegments := int(math.Floor(math.Abs(a) / tessAngle))
	if numSegments < minSubdivisions {
		numSegments = minSubdivisions
	}
	if numSegments < 1 {
		numSegments = 1
	}

	points := make([]geom.Point, 0, numSegments)
	for i := 1; i < numSegments; i++ {
		theta := startAngle + a*float64(i)/float64(numSegments)
		points = append(points, geom.Pt(
			center.X+radiusAbs*math.Cos(theta),
			center.Y+radiusAbs*math.Sin(theta),
		))
	}
	points = append(points, p1)
	return points
}
