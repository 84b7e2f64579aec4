// Package decompose implements spec.md C4: normalizing every DXF entity
// type into the small internal tagged entity set
// (POINTS/LINE_SEGMENTS/POLYLINE/TRIANGLES) defined by internal/ientity,
// calling into internal/tessellate, internal/textlayout, and
// internal/hatch as each entity type requires.
//
// Dispatch on Entity.Type mirrors the source's per-type switch (spec.md
// §9: "dynamic property probing ... replaced by an explicit, fully typed
// entity representation"); each case is its own function in a sibling
// file, grouped by entity family the way the teacher splits its own
// path-construction code across per-primitive files.
package decompose

import (
	"fmt"
	"hash/fnv"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/patterntable"
	"github.com/gogpu/cadscene/sceneopts"
)

// Context carries everything a single entity's decomposition needs
// beyond the entity's own fields: already-resolved color/layer/line-type
// (spec.md §4.4: "every emitted entity inherits a resolved color and,
// outside block contexts, a layer name... inside a block definition,
// layer is null"), scene options, the glyph cache for TEXT/MTEXT, the
// drawing header for arc angle conventions, and the pattern table for
// HATCH.
type Context struct {
	Header   dxf.Header
	Options  sceneopts.Options
	Cache    *glyphcache.Cache
	Patterns *patterntable.Table

	Layer    *string
	Color    int32
	LineType *uint32
}

// PointShapeBlockName is the synthetic block name SHAPE-mode POINT
// entities instance into (spec.md §4.4).
const PointShapeBlockName = "__point_shape"

// Result is one entity's decomposition output. Most entity types only
// populate Entities; POINT entities whose $PDMODE includes a
// square/circle halo instead populate PointInstanceAt, signaling the
// caller (the scene assembler, which owns the block/batch registries)
// to push a POINT_INSTANCE transform at that position into
// PointShapeBlockName (spec.md §4.4's "one POINT_INSTANCE push" case is
// a batch-registry operation, not an internal-entity production, so it
// cannot be expressed as an ientity.Entity).
type Result struct {
	Entities        []ientity.Entity
	PointInstanceAt *geom.Point
}

// LineTypeID maps a DXF line-type name to the u32 identifier the
// batching key (C2) compares by. Line-type names have no natural integer
// form in the input model, so this interns them via a stable hash
// (deterministic across runs, unlike map iteration order, which the
// batching key's determinism requirement — spec.md §5 — depends on).
func LineTypeID(name string) uint32 {
	if name == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// Decompose dispatches e to its entity-family handler. INSERT is not
// handled here (spec.md §4.4: "INSERT: not decomposed; handled by C5")
// and returns an error if reached — the caller is expected to intercept
// INSERT before calling Decompose.
func Decompose(e dxf.Entity, ctx Context) (Result, error) {
	switch e.Type {
	case dxf.TypeLine:
		return decomposeLine(e, ctx), nil
	case dxf.TypePolyline, dxf.TypeLWPolyline:
		return decomposePolyline(e, ctx), nil
	case dxf.TypeArc:
		return decomposeArc(e, ctx), nil
	case dxf.TypeCircle:
		return decomposeCircle(e, ctx), nil
	case dxf.TypeEllipse:
		return decomposeEllipse(e, ctx), nil
	case dxf.TypePoint:
		return decomposePoint(e, ctx), nil
	case dxf.TypeSpline:
		return decomposeSpline(e, ctx), nil
	case dxf.TypeText:
		return decomposeText(e, ctx), nil
	case dxf.TypeMText:
		return decomposeMText(e, ctx), nil
	case dxf.Type3DFace, dxf.TypeSolid:
		return decomposeFace(e, ctx), nil
	case dxf.TypeHatch:
		return decomposeHatch(e, ctx), nil
	case dxf.TypeInsert:
		return Result{}, fmt.Errorf("decompose: INSERT entities are handled by the block engine, not Decompose")
	default:
		return Result{}, fmt.Errorf("decompose: unhandled entity type %q", e.Type)
	}
}
