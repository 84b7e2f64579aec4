package decompose

import (
	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/tessellate"
)

// decomposeFace handles 3DFACE and SOLID identically (spec.md §4.4:
// "SOLID: same decomposition as 3DFACE with extrusion-aware transform"),
// splitting the quad v0-v1-v2 / v1-v3-v2, dropping degenerate triangles,
// and substituting an outline POLYLINE when wireframe rendering is
// requested.
func decomposeFace(e dxf.Entity, ctx Context) Result {
	mirror := mirrorsX(e)
	n := e.NumVertices3
	if n < 3 {
		return Result{}
	}

	verts := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		verts[i] = applyMirror(geom.Pt(e.Vertices3[i].X, e.Vertices3[i].Y), mirror)
	}

	if e.Wireframe || ctx.Options.WireframeMesh {
		return Result{Entities: []ientity.Entity{{
			Variant:  ientity.Polyline,
			Vertices: verts,
			Shape:    true,
			Layer:    ctx.Layer,
			Color:    ctx.Color,
			LineType: ctx.LineType,
		}}}
	}

	type tri [3]int
	tris := []tri{{0, 1, 2}}
	if n == 4 {
		tris = []tri{{0, 1, 2}, {1, 3, 2}}
	}

	var outVerts []geom.Point
	var outIndices []uint16
	for _, t := range tris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		if tessellate.IsDegenerateTriangle(a, b, c) {
			continue
		}
		base := uint16(len(outVerts))
		outVerts = append(outVerts, a, b, c)
		outIndices = append(outIndices, base, base+1, base+2)
	}

	if len(outVerts) == 0 {
		return Result{}
	}

	return Result{Entities: []ientity.Entity{{
		Variant:  ientity.Triangles,
		Vertices: outVerts,
		Indices:  outIndices,
		Layer:    ctx.Layer,
		Color:    ctx.Color,
		LineType: ctx.LineType,
	}}}
}
