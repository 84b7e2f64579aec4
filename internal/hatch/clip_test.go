package hatch

import (
	"testing"

	"github.com/gogpu/cadscene/internal/geom"
)

func square(x0, y0, x1, y1 float64) Loop {
	return Loop{
		Points: []geom.Point{
			geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1),
		},
		Outermost: true,
	}
}

func TestClipLineOddParityFullInteriorSpan(t *testing.T) {
	loops := []Loop{square(0, 0, 10, 10)}
	segs := ClipLine(loops, OddParity, geom.Pt(0, 5), geom.Pt(10, 5))
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1: %+v", len(segs), segs)
	}
	if segs[0].TStart < -1e-6 || segs[0].TStart > 1e-6 {
		t.Errorf("TStart = %v, want ~0", segs[0].TStart)
	}
	if segs[0].TEnd < 1-1e-6 || segs[0].TEnd > 1+1e-6 {
		t.Errorf("TEnd = %v, want ~1", segs[0].TEnd)
	}
}

func TestClipLineMissesLoopEntirely(t *testing.T) {
	loops := []Loop{square(0, 0, 10, 10)}
	segs := ClipLine(loops, OddParity, geom.Pt(-5, 20), geom.Pt(5, 20))
	if len(segs) != 0 {
		t.Fatalf("got %d segments, want 0 (line passes above the loop): %+v", len(segs), segs)
	}
}

func TestClipLineThroughEntireAreaUnionsNestedLoops(t *testing.T) {
	outer := square(0, 0, 10, 10)
	inner := Loop{Points: []geom.Point{
		geom.Pt(3, 3), geom.Pt(7, 3), geom.Pt(7, 7), geom.Pt(3, 7),
	}, Outermost: false}

	oddParity := ClipLine([]Loop{outer, inner}, OddParity, geom.Pt(0, 5), geom.Pt(10, 5))
	throughArea := ClipLine([]Loop{outer, inner}, ThroughEntireArea, geom.Pt(0, 5), geom.Pt(10, 5))

	if len(oddParity) != 2 {
		t.Fatalf("odd-parity got %d segments, want 2 (donut shape punches a hole): %+v", len(oddParity), oddParity)
	}
	if len(throughArea) != 1 {
		t.Fatalf("through-entire-area got %d segments, want 1 (full span, no hole): %+v", len(throughArea), throughArea)
	}
}

func TestPatternTransformTranslatesToSeed(t *testing.T) {
	m := PatternTransform(geom.Pt(3, 4), 0, 1)
	got := m.Apply(geom.Pt(3, 4))
	if got.X < -1e-9 || got.X > 1e-9 || got.Y < -1e-9 || got.Y > 1e-9 {
		t.Errorf("seed point should map to origin, got %+v", got)
	}
}
