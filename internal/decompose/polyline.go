package decompose

import (
	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/tessellate"
)

// decomposePolyline expands a POLYLINE/LWPOLYLINE's vertex sequence,
// honoring per-vertex bulge (spec.md glossary: "tan(theta/4) parameter
// ... encoding a circular arc to the next vertex") and X-mirroring on
// negative-Z extrusion (spec.md §4.4's "universal policy: clone vertex,
// negate x, keep other attributes").
//
// Line-type-driven segment splitting (spec.md §4.4: "split the vertex
// sequence at boundaries where the plain line predicate or the line type
// changes") is not implemented: spec.md's own Open Questions flag the
// source's _IsPlainLine predicate as applied to vertices rather than the
// entity, with unclear intended per-vertex-width semantics, and every
// entity decomposed by this module carries a single resolved line type
// already (there is no per-vertex line-type field in dxf.PolylineVertex),
// so there is no boundary to split on here. See DESIGN.md.
func decomposePolyline(e dxf.Entity, ctx Context) Result {
	mirror := mirrorsX(e)
	tessAngle := ctx.Options.ArcTessellationAngle
	minSub := ctx.Options.MinArcTessellationSubdivisions

	verts := filterFitVertices(e.Vertices)
	if len(verts) == 0 {
		return Result{}
	}

	var points []geom.Point
	n := len(verts)
	limit := n - 1
	if e.Closed {
		limit = n
	}

	cur := applyMirror(geom.Pt(verts[0].X, verts[0].Y), mirror)
	points = append(points, cur)

	for i := 0; i < limit; i++ {
		from := verts[i]
		to := verts[(i+1)%n]
		fromPt := applyMirror(geom.Pt(from.X, from.Y), mirror)
		toPt := applyMirror(geom.Pt(to.X, to.Y), mirror)

		if from.HasBulge && from.Bulge != 0 {
			bulge := from.Bulge
			if mirror {
				bulge = -bulge
			}
			samples := tessellate.Bulge(fromPt, toPt, bulge, tessAngle, minSub)
			points = append(points, samples...)
		} else {
			points = append(points, toPt)
		}
	}

	if e.Closed && len(points) > 1 && points[len(points)-1] == points[0] {
		points = points[:len(points)-1]
	}

	return Result{Entities: []ientity.Entity{{
		Variant:  ientity.Polyline,
		Vertices: points,
		Shape:    e.Closed,
		Layer:    ctx.Layer,
		Color:    ctx.Color,
		LineType: ctx.LineType,
	}}}
}

// filterFitVertices drops curve-fit and spline-fit auxiliary vertices,
// which describe an already-tessellated auxiliary path rather than the
// polyline's defining control points (spec.md §4.4: "filter curve-fit/
// spline-fit vertices as appropriate").
func filterFitVertices(vertices []dxf.PolylineVertex) []dxf.PolylineVertex {
	out := make([]dxf.PolylineVertex, 0, len(vertices))
	for _, v := range vertices {
		if v.CurveFittingVertex || v.SplineVertex {
			continue
		}
		out = append(out, v)
	}
	return out
}
