package decompose

import (
	"math"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/ientity"
)

// defaultPointMarkerSize is used when $PDSIZE is zero or unset; AutoCAD's
// own "zero means 5% of viewport height" convention has no viewport
// concept in this engine, so a small fixed drawing-unit size stands in.
const defaultPointMarkerSize = 1.0

// $PDMODE bit layout (spec.md glossary): a base symbol in the low bits,
// plus an additive square/circle "halo" in the high bits.
const (
	pdBaseMask   = 31
	pdBaseDot    = 0
	pdBaseNone   = 1
	pdBasePlus   = 2
	pdBaseCross  = 3
	pdBaseTick   = 4
	pdHaloCircle = 32
	pdHaloSquare = 64
)

func decomposePoint(e dxf.Entity, ctx Context) Result {
	mode := ctx.Header.PointDisplayMode()
	size := ctx.Header.PointDisplaySize()
	if size <= 0 {
		size = defaultPointMarkerSize
	}
	half := size / 2

	pos := geom.Pt(e.Position.X, e.Position.Y)
	base := mode & pdBaseMask
	halo := mode &^ pdBaseMask

	if halo != 0 {
		p := pos
		return Result{PointInstanceAt: &p}
	}

	switch base {
	case pdBaseNone:
		return Result{}
	case pdBaseDot:
		return Result{Entities: []ientity.Entity{{
			Variant:  ientity.Points,
			Vertices: []geom.Point{pos},
			Layer:    ctx.Layer,
			Color:    ctx.Color,
			LineType: ctx.LineType,
		}}}
	case pdBasePlus:
		return Result{Entities: []ientity.Entity{{
			Variant: ientity.LineSegments,
			Vertices: []geom.Point{
				pos.Add(geom.Pt(-half, 0)), pos.Add(geom.Pt(half, 0)),
				pos.Add(geom.Pt(0, -half)), pos.Add(geom.Pt(0, half)),
			},
			Layer:    ctx.Layer,
			Color:    ctx.Color,
			LineType: ctx.LineType,
		}}}
	case pdBaseCross:
		return Result{Entities: []ientity.Entity{{
			Variant: ientity.LineSegments,
			Vertices: []geom.Point{
				pos.Add(geom.Pt(-half, -half)), pos.Add(geom.Pt(half, half)),
				pos.Add(geom.Pt(-half, half)), pos.Add(geom.Pt(half, -half)),
			},
			Layer:    ctx.Layer,
			Color:    ctx.Color,
			LineType: ctx.LineType,
		}}}
	case pdBaseTick:
		return Result{Entities: []ientity.Entity{{
			Variant:  ientity.LineSegments,
			Vertices: []geom.Point{pos, pos.Add(geom.Pt(0, half))},
			Layer:    ctx.Layer,
			Color:    ctx.Color,
			LineType: ctx.LineType,
		}}}
	default:
		return Result{}
	}
}

// PointShapeGeometry builds the __point_shape synthetic block definition
// for a given $PDMODE (spec.md §4.4: "a synthetic block ... whose
// definition is built lazily from the current mode"). The returned
// entities are in block-local coordinates centered on the origin;
// hasDot reports whether the shape includes the center dot (surfaced at
// scene level as pointShapeHasDot, spec.md §3).
func PointShapeGeometry(mode int, size float64, color int32, lineType *uint32) (entities []ientity.Entity, hasDot bool) {
	if size <= 0 {
		size = defaultPointMarkerSize
	}
	half := size / 2
	base := mode & pdBaseMask
	halo := mode &^ pdBaseMask

	if base == pdBaseDot {
		entities = append(entities, ientity.Entity{
			Variant:  ientity.Points,
			Vertices: []geom.Point{{}},
			Color:    color,
			LineType: lineType,
		})
		hasDot = true
	}

	if halo&pdHaloSquare != 0 {
		entities = append(entities, ientity.Entity{
			Variant: ientity.Polyline,
			Shape:   true,
			Vertices: []geom.Point{
				{X: -half, Y: -half}, {X: half, Y: -half},
				{X: half, Y: half}, {X: -half, Y: half},
			},
			Color:    color,
			LineType: lineType,
		})
	}

	if halo&pdHaloCircle != 0 {
		const segments = 16
		pts := make([]geom.Point, 0, segments)
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / segments
			pts = append(pts, geom.Pt(half*math.Cos(theta), half*math.Sin(theta)))
		}
		entities = append(entities, ientity.Entity{
			Variant:  ientity.Polyline,
			Shape:    true,
			Vertices: pts,
			Color:    color,
			LineType: lineType,
		})
	}

	return entities, hasDot
}
