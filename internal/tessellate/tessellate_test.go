package tessellate

import (
	"math"
	"testing"

	"github.com/gogpu/cadscene/internal/geom"
)

func TestArcFullCircleSampleCount(t *testing.T) {
	points, closed := Arc(ArcParams{
		Center:            geom.Pt(0, 0),
		RadiusX:           1,
		TessellationAngle: math.Pi / 4,
		MinSubdivisions:   1,
		Transform:         geom.Identity(),
	})
	if !closed {
		t.Fatal("a full circle (no end angle) should report closed = true")
	}
	if len(points) != 8 {
		t.Fatalf("got %d samples, want 8", len(points))
	}
	if math.Abs(points[0].X-1) > 1e-9 || math.Abs(points[0].Y) > 1e-9 {
		t.Errorf("first sample = %+v, want (1,0)", points[0])
	}
}

func TestArcOpenArcIncludesEndSample(t *testing.T) {
	points, closed := Arc(ArcParams{
		Center:            geom.Pt(0, 0),
		RadiusX:           1,
		HasStartAngle:     true,
		StartAngle:        0,
		HasEndAngle:       true,
		EndAngle:          math.Pi / 2,
		TessellationAngle: math.Pi / 4,
		MinSubdivisions:   1,
		Transform:         geom.Identity(),
	})
	if closed {
		t.Fatal("an arc with an explicit end angle should not report closed")
	}
	last := points[len(points)-1]
	if math.Abs(last.X) > 1e-9 || math.Abs(last.Y-1) > 1e-9 {
		t.Errorf("last sample = %+v, want ~(0,1)", last)
	}
}

func TestArcMinSubdivisionsFloor(t *testing.T) {
	points, _ := Arc(ArcParams{
		Center:            geom.Pt(0, 0),
		RadiusX:           1,
		HasEndAngle:       true,
		EndAngle:          0.001, // span tiny enough that span/tessAngle < minSub
		TessellationAngle: 1,
		MinSubdivisions:   5,
	})
	if len(points) != 6 { // n=5 segments => 6 samples for an open arc
		t.Fatalf("got %d samples, want 6 (min subdivisions floor)", len(points))
	}
}

func TestArcClockwiseDirSwapsEndpoints(t *testing.T) {
	cw, _ := Arc(ArcParams{
		Center: geom.Pt(0, 0), RadiusX: 1,
		HasStartAngle: true, StartAngle: 0,
		HasEndAngle: true, EndAngle: math.Pi / 2,
		ClockwiseDir:      true,
		TessellationAngle: math.Pi / 4,
		MinSubdivisions:   1,
		Transform:         geom.Identity(),
	})
	ccw, _ := Arc(ArcParams{
		Center: geom.Pt(0, 0), RadiusX: 1,
		HasStartAngle: true, StartAngle: 0,
		HasEndAngle: true, EndAngle: math.Pi / 2,
		TessellationAngle: math.Pi / 4,
		MinSubdivisions:   1,
		Transform:         geom.Identity(),
	})
	if cw[0] == ccw[0] {
		t.Error("ClockwiseDir should swap start/end before sampling, got identical first samples")
	}
}

func TestBulgeBelowThresholdReturnsEndpointOnly(t *testing.T) {
	p0, p1 := geom.Pt(0, 0), geom.Pt(1, 0)
	points := Bulge(p0, p1, 0.0001, 1.0, 1)
	if len(points) != 1 || points[0] != p1 {
		t.Errorf("Bulge() below-threshold result = %v, want [p1]", points)
	}
}

func TestBulgeDegenerateChordReturnsNil(t *testing.T) {
	p := geom.Pt(5, 5)
	points := Bulge(p, p, 1.0, 0.01, 1)
	if points != nil {
		t.Errorf("Bulge() with zero-length chord = %v, want nil", points)
	}
}

func TestBulgeSemicircleMidpointBulgesOutward(t *testing.T) {
	p0, p1 := geom.Pt(0, 0), geom.Pt(2, 0)
	// bulge = 1 means a semicircle (included angle pi).
	points := Bulge(p0, p1, 1.0, math.Pi/8, 2)
	if len(points) == 0 {
		t.Fatal("Bulge() returned no points for a semicircle")
	}
	last := points[len(points)-1]
	if last != p1 {
		t.Errorf("last point = %+v, want p1 %+v", last, p1)
	}
	// pi / (pi/8) = 8 segments; points[3] is the sample at half the
	// included angle, one radius (1) off the chord's midpoint (1,0).
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}
	mid := points[3]
	if math.Abs(mid.X-1) > 1e-9 || math.Abs(math.Abs(mid.Y)-1) > 1e-9 {
		t.Errorf("midpoint sample = %+v, want one radius off the chord at x=1", mid)
	}
}

func TestTriangleArea2SignAndDegeneracy(t *testing.T) {
	a, b, c := geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)
	if area := TriangleArea2(a, b, c); area <= 0 {
		t.Errorf("TriangleArea2(ccw) = %v, want > 0", area)
	}
	if area := TriangleArea2(a, c, b); area >= 0 {
		t.Errorf("TriangleArea2(cw) = %v, want < 0", area)
	}
	if !IsDegenerateTriangle(a, a, b) {
		t.Error("a triangle with a repeated vertex should be degenerate")
	}
	if IsDegenerateTriangle(a, b, c) {
		t.Error("a unit right triangle should not be degenerate")
	}
}

func TestBSplineRejectsInvalidDegree(t *testing.T) {
	_, err := BSpline(SplineParams{
		ControlPoints: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)},
		Degree:        5,
	})
	if err == nil {
		t.Fatal("BSpline() with degree >= n should fail")
	}
}

func TestBSplineRejectsBadKnotVector(t *testing.T) {
	_, err := BSpline(SplineParams{
		ControlPoints: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0)},
		Degree:        2,
		Knots:         []float64{0, 1, 2}, // wrong length, want n+degree+1 = 6
	})
	if err == nil {
		t.Fatal("BSpline() with a mismatched knot vector should fail")
	}
}

func TestBSplineValidInputSampleCount(t *testing.T) {
	ctrl := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 2), geom.Pt(2, 0), geom.Pt(3, 2)}
	points, err := BSpline(SplineParams{ControlPoints: ctrl, Degree: 2})
	if err != nil {
		t.Fatalf("BSpline() error: %v", err)
	}
	want := len(ctrl)*SplineSubdivision + 1
	if len(points) != want {
		t.Fatalf("got %d samples, want %d", len(points), want)
	}
}
