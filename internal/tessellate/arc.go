// Package tessellate implements spec.md C3: arc/ellipse/circle sampling,
// bulge expansion, and B-spline de Boor evaluation, shared by the entity
// decomposer (C4) for ARC/CIRCLE/ELLIPSE/SPLINE/bulged-POLYLINE entities.
//
// The parametric-sampling shape (evaluate at n+1 uniform parameter steps,
// apply a trailing affine transform) follows the teacher's curve.go
// Bezier evaluation style (QuadBez/CubicBez "Eval(t)" plus subdivision
// counts derived from a tolerance), generalized from cubic/quadratic
// Beziers to circular arcs and de Boor B-splines.
package tessellate

import (
	"math"

	"github.com/gogpu/cadscene/internal/geom"
)

// ArcParams describes one arc/circle tessellation request (spec.md C3).
type ArcParams struct {
	Center geom.Point

	RadiusX    float64
	RadiusY    float64 // if HasRadiusY is false, equals RadiusX (circle)
	HasRadiusY bool

	StartAngle    float64
	HasStartAngle bool
	EndAngle      float64
	HasEndAngle   bool

	// AngleBase is $ANGBASE, added to the start angle.
	AngleBase float64
	// ClockwiseDir is $ANGDIR == 1: start/end are swapped before
	// normalization.
	ClockwiseDir bool

	TessellationAngle float64
	MinSubdivisions   int

	// Transform is applied to every sample last, after center offset.
	Transform geom.Matrix
}

// Arc tessellates an arc or circle into a polyline. The returned bool
// reports whether the shape is closed (no explicit end angle was given),
// in which case the final sample — which would coincide with the first —
// is suppressed.
func Arc(p ArcParams) (points []geom.Point, closed bool) {
	start := 0.0
	if p.HasStartAngle {
		start = p.StartAngle
	}
	start += p.AngleBase

	var end float64
	if !p.HasEndAngle {
		end = start + 2*math.Pi
		closed = true
	} else {
		end = p.EndAngle + p.AngleBase
	}

	if p.ClockwiseDir {
		start, end = end, start
	}
	for end <= start {
		end += 2 * math.Pi
	}

	radiusY := p.RadiusX
	if p.HasRadiusY {
		radiusY = p.RadiusY
	}

	tessAngle := p.TessellationAngle
	if tessAngle <= 0 {
		tessAngle = 10 * math.Pi / 180
	}
	minSub := p.MinSubdivisions
	if minSub < 1 {
		minSub = 1
	}

	span := end - start
	n := int(math.Floor(span / tessAngle))
	if n < minSub {
		n = minSub
	}
	if n < 1 {
		n = 1
	}

	count := n + 1
	if closed {
		count = n
	}
	points = make([]geom.Point, 0, count)
	for i := 0; i <= n; i++ {
		if closed && i == n {
			break
		}
		theta := start + span*float64(i)/float64(n)
		pt := geom.Pt(
			p.RadiusX*math.Cos(theta)+p.Center.X,
			radiusY*math.Sin(theta)+p.Center.Y,
		)
		points = append(points, p.Transform.Apply(pt))
	}
	return points, closed
}

// EllipseParams extends ArcParams with the major-axis rotation applied to
// every sample about the center, after sampling but before Transform
// (spec.md C3: "Ellipse rotation ... applied to vertices about the
// center after sampling").
type EllipseParams struct {
	ArcParams
	RotationAngle float64
}

// Ellipse tessellates an ellipse/elliptical arc.
func Ellipse(p EllipseParams) (points []geom.Point, closed bool) {
	transform := p.Transform
	unrotated := p.ArcParams
	unrotated.Transform = geom.Identity()

	points, closed = Arc(unrotated)

	if p.RotationAngle != 0 {
		rot := geom.Rotate(p.RotationAngle)
		for i, pt := range points {
			rel := pt.Sub(p.Center)
			rel = rot.ApplyVector(rel)
			points[i] = p.Center.Add(rel)
		}
	}

	if !transform.IsIdentity() {
		for i, pt := range points {
			points[i] = transform.Apply(pt)
		}
	}
	return points, closed
}
