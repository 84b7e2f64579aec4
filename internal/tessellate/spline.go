package tessellate

import (
	"errors"
	"fmt"

	"github.com/gogpu/cadscene/internal/geom"
)

// SplineSubdivision is the per-control-point sample density: a spline
// with n control points is sampled at n*SplineSubdivision+1 uniform
// parameter values (spec.md C3).
const SplineSubdivision = 4

// ErrInvalidDegree is returned when degree < 1 or degree > n-1.
var ErrInvalidDegree = errors.New("tessellate: spline degree out of range")

// ErrInvalidKnotVector is returned when a supplied knot vector's length
// does not equal n+degree+1.
var ErrInvalidKnotVector = errors.New("tessellate: knot vector length mismatch")

// SplineParams describes a B-spline evaluation request (spec.md C3).
type SplineParams struct {
	ControlPoints []geom.Point
	// Weights, if non-nil, must have the same length as ControlPoints;
	// a nil Weights means an unweighted (non-rational) spline.
	Weights []float64
	// Knots, if non-nil, must have length len(ControlPoints)+Degree+1;
	// a nil Knots means uniform integer knots are synthesized.
	Knots  []float64
	Degree int
}

// hvec is a homogeneous-coordinate point used for rational (weighted)
// de Boor evaluation: lifting (x,y) to (x*w, y*w, w) lets the same
// linear-interpolation recurrence used for the unweighted case produce a
// rational curve once projected back by dividing through by w.
type hvec struct{ X, Y, W float64 }

func (h hvec) add(o hvec) hvec { return hvec{h.X + o.X, h.Y + o.Y, h.W + o.W} }
func (h hvec) scale(s float64) hvec {
	return hvec{h.X * s, h.Y * s, h.W * s}
}
func lerpH(a, b hvec, t float64) hvec {
	return a.scale(1 - t).add(b.scale(t))
}

// BSpline evaluates a B-spline curve, returning SplineSubdivision*n+1
// sampled points across its domain [knots[degree], knots[n]].
func BSpline(p SplineParams) ([]geom.Point, error) {
	n := len(p.ControlPoints)
	degree := p.Degree
	if degree < 1 || degree > n-1 {
		return nil, fmt.Errorf("%w: degree=%d, control points=%d", ErrInvalidDegree, degree, n)
	}

	knots := p.Knots
	if knots == nil {
		knots = make([]float64, n+degree+1)
		for i := range knots {
			knots[i] = float64(i)
		}
	} else if len(knots) != n+degree+1 {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKnotVector, len(knots), n+degree+1)
	}

	ctrl := make([]hvec, n)
	for i, cp := range p.ControlPoints {
		w := 1.0
		if p.Weights != nil {
			w = p.Weights[i]
		}
		ctrl[i] = hvec{X: cp.X * w, Y: cp.Y * w, W: w}
	}

	domainStart := knots[degree]
	domainEnd := knots[n]

	numSamples := n*SplineSubdivision + 1
	points := make([]geom.Point, numSamples)
	for i := 0; i < numSamples; i++ {
		t := domainStart
		if numSamples > 1 {
			t = domainStart + (domainEnd-domainStart)*float64(i)/float64(numSamples-1)
		}
		h := evalDeBoor(t, degree, knots, ctrl, n)
		if h.W == 0 {
			points[i] = geom.Pt(h.X, h.Y)
		} else {
			points[i] = geom.Pt(h.X/h.W, h.Y/h.W)
		}
	}
	return points, nil
}

// findSpan locates the knot span index k such that knots[k] <= x < knots[k+1],
// clamped into the valid control-point range [degree, n-1].
func findSpan(x float64, degree int, knots []float64, n int) int {
	if x >= knots[n] {
		return n - 1
	}
	lo, hi := degree, n
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if knots[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// evalDeBoor evaluates the B-spline at parameter x using the standard de
// Boor recurrence.
func evalDeBoor(x float64, degree int, knots []float64, ctrl []hvec, n int) hvec {
	k := findSpan(x, degree, knots, n)

	d := make([]hvec, degree+1)
	for j := 0; j <= degree; j++ {
		d[j] = ctrl[j+k-degree]
	}

	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			left := j + k - degree
			right := j + 1 + k - r
			denom := knots[right] - knots[left]
			alpha := 0.0
			if denom != 0 {
				alpha = (x - knots[left]) / denom
			}
			d[j] = lerpH(d[j-1], d[j], alpha)
		}
	}
	return d[degree]
}
