package decompose

import (
	"testing"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/sceneopts"
)

func testContext() Context {
	layer := "0"
	return Context{
		Header:  dxf.Header{},
		Options: sceneopts.DefaultOptions(),
		Cache:   glyphcache.New(nil, glyphcache.Config{}),
		Layer:   &layer,
		Color:   7,
	}
}

func TestDecomposeLineEmitsTwoVertices(t *testing.T) {
	e := dxf.Entity{
		Type:  dxf.TypeLine,
		Start: dxf.Vec2{X: 0, Y: 0},
		End:   dxf.Vec2{X: 10, Y: 0},
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 1 || len(res.Entities[0].Vertices) != 2 {
		t.Fatalf("got %+v, want one LINE_SEGMENTS entity with 2 vertices", res.Entities)
	}
	if res.Entities[0].Variant != ientity.LineSegments {
		t.Errorf("Variant = %v, want LineSegments", res.Entities[0].Variant)
	}
}

func TestDecomposeLineMirrorsXOnNegativeExtrusion(t *testing.T) {
	e := dxf.Entity{
		Type:         dxf.TypeLine,
		Start:        dxf.Vec2{X: 1, Y: 2},
		End:          dxf.Vec2{X: 3, Y: 4},
		Extrusion:    dxf.Vec3{Z: -1},
		HasExtrusion: true,
	}
	res, _ := Decompose(e, testContext())
	v := res.Entities[0].Vertices
	if v[0].X != -1 || v[1].X != -3 {
		t.Errorf("mirrored vertices = %+v, want X negated", v)
	}
	if v[0].Y != 2 || v[1].Y != 4 {
		t.Errorf("mirrored vertices changed Y: %+v", v)
	}
}

func TestDecomposeCircleForcesFullSweep(t *testing.T) {
	e := dxf.Entity{
		Type:          dxf.TypeCircle,
		Center:        dxf.Vec2{X: 0, Y: 0},
		Radius:        5,
		HasStartAngle: true,
		StartAngle:    0.3, // must be ignored for CIRCLE
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 1 {
		t.Fatalf("expected one polyline entity, got %d", len(res.Entities))
	}
	if !res.Entities[0].Shape {
		t.Error("circle tessellation should be a closed polyline")
	}
}

func TestDecomposePolylineExpandsBulge(t *testing.T) {
	e := dxf.Entity{
		Type: dxf.TypeLWPolyline,
		Vertices: []dxf.PolylineVertex{
			{X: 0, Y: 0, Bulge: 1, HasBulge: true},
			{X: 10, Y: 0},
		},
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 1 {
		t.Fatalf("expected one polyline entity, got %d", len(res.Entities))
	}
	if len(res.Entities[0].Vertices) < 3 {
		t.Errorf("bulge=1 semicircle should tessellate to more than 2 points, got %d", len(res.Entities[0].Vertices))
	}
}

func TestDecomposePointDotEmitsSinglePoint(t *testing.T) {
	e := dxf.Entity{Type: dxf.TypePoint, Position: dxf.Vec2{X: 3, Y: 4}}
	ctx := testContext()
	ctx.Header = dxf.Header{"$PDMODE": 0}
	res, err := Decompose(e, ctx)
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 1 || res.Entities[0].Variant != ientity.Points {
		t.Fatalf("got %+v, want one POINTS entity", res.Entities)
	}
	if res.PointInstanceAt != nil {
		t.Error("dot mode should not request a POINT_INSTANCE")
	}
}

func TestDecomposePointNoneEmitsNothing(t *testing.T) {
	e := dxf.Entity{Type: dxf.TypePoint, Position: dxf.Vec2{X: 0, Y: 0}}
	ctx := testContext()
	ctx.Header = dxf.Header{"$PDMODE": 1}
	res, err := Decompose(e, ctx)
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 0 || res.PointInstanceAt != nil {
		t.Errorf("PDMODE=NONE should emit nothing, got %+v", res)
	}
}

func TestDecomposePointShapeRequestsInstance(t *testing.T) {
	e := dxf.Entity{Type: dxf.TypePoint, Position: dxf.Vec2{X: 5, Y: 6}}
	ctx := testContext()
	ctx.Header = dxf.Header{"$PDMODE": 32} // circle halo, base mode 0 dot ignored per halo branch
	res, err := Decompose(e, ctx)
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if res.PointInstanceAt == nil {
		t.Fatal("expected a PointInstanceAt for a halo $PDMODE")
	}
	if res.PointInstanceAt.X != 5 || res.PointInstanceAt.Y != 6 {
		t.Errorf("PointInstanceAt = %+v, want (5,6)", res.PointInstanceAt)
	}
}

func TestPointShapeGeometryIncludesDotWhenBaseModeIsDot(t *testing.T) {
	entities, hasDot := PointShapeGeometry(32, 1, 7, nil)
	if !hasDot {
		t.Error("hasDot = false, want true for base mode 0 + circle halo")
	}
	if len(entities) != 2 {
		t.Fatalf("expected a dot entity plus a circle outline, got %d", len(entities))
	}
}

func TestDecomposeFaceSplitsQuadIntoTwoTriangles(t *testing.T) {
	e := dxf.Entity{
		Type:         dxf.Type3DFace,
		NumVertices3: 4,
		Vertices3: [4]dxf.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 1 {
		t.Fatalf("expected one TRIANGLES entity, got %d", len(res.Entities))
	}
	ent := res.Entities[0]
	if ent.Variant != ientity.Triangles {
		t.Fatalf("Variant = %v, want Triangles", ent.Variant)
	}
	if len(ent.Indices) != 6 {
		t.Errorf("Indices = %v, want 6 (two triangles)", ent.Indices)
	}
}

func TestDecomposeFaceDropsDegenerateTriangle(t *testing.T) {
	e := dxf.Entity{
		Type:         dxf.TypeSolid,
		NumVertices3: 3,
		Vertices3: [4]dxf.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, // colinear
		},
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 0 {
		t.Errorf("degenerate triangle should produce no entities, got %+v", res.Entities)
	}
}

func TestDecomposeFaceWireframeEmitsPolyline(t *testing.T) {
	e := dxf.Entity{
		Type:         dxf.Type3DFace,
		NumVertices3: 4,
		Wireframe:    true,
		Vertices3: [4]dxf.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 1 || res.Entities[0].Variant != ientity.Polyline {
		t.Fatalf("got %+v, want one POLYLINE entity", res.Entities)
	}
}

func TestDecomposeHatchSkipsSolidFill(t *testing.T) {
	e := dxf.Entity{
		Type:    dxf.TypeHatch,
		IsSolid: true,
		BoundaryLoops: []dxf.HatchBoundaryLoop{{
			Points:  []dxf.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			IsOuter: true,
		}},
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) != 0 {
		t.Errorf("solid hatch should emit no pattern geometry, got %+v", res.Entities)
	}
}

func TestDecomposeHatchOddParitySquareProducesOneSpan(t *testing.T) {
	e := dxf.Entity{
		Type: dxf.TypeHatch,
		BoundaryLoops: []dxf.HatchBoundaryLoop{{
			Points:  []dxf.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			IsOuter: true,
		}},
		DefinitionLines: []dxf.HatchDefinitionLine{{
			Angle: 0, BaseX: 0, BaseY: 5, OffsetX: 0, OffsetY: 20,
		}},
		PatternScale: 1,
	}
	res, err := Decompose(e, testContext())
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(res.Entities) == 0 {
		t.Fatal("expected at least one LINE_SEGMENTS span for the y=5 sweep line")
	}
	found := false
	for _, ent := range res.Entities {
		if len(ent.Vertices) == 2 && ent.Vertices[0].Y == 5 && ent.Vertices[1].Y == 5 {
			if (ent.Vertices[0].X == 0 && ent.Vertices[1].X == 10) ||
				(ent.Vertices[0].X == 10 && ent.Vertices[1].X == 0) {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected a full-width span at y=5, got %+v", res.Entities)
	}
}

func TestDecomposeInsertReturnsError(t *testing.T) {
	_, err := Decompose(dxf.Entity{Type: dxf.TypeInsert}, testContext())
	if err == nil {
		t.Fatal("expected an error: INSERT is not decomposed directly")
	}
}

func TestDecomposeUnknownTypeReturnsError(t *testing.T) {
	_, err := Decompose(dxf.Entity{Type: "BOGUS"}, testContext())
	if err == nil {
		t.Fatal("expected an error for an unhandled entity type")
	}
}
