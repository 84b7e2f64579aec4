package decompose

import (
	"math"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/tessellate"
)

func mirrorsX(e dxf.Entity) bool {
	return e.HasExtrusion && e.Extrusion.Z < 0
}

func applyMirror(p geom.Point, mirror bool) geom.Point {
	if !mirror {
		return p
	}
	return geom.Pt(-p.X, p.Y)
}

func decomposeLine(e dxf.Entity, ctx Context) Result {
	mirror := mirrorsX(e)
	start := applyMirror(geom.Pt(e.Start.X, e.Start.Y), mirror)
	end := applyMirror(geom.Pt(e.End.X, e.End.Y), mirror)
	return Result{Entities: []ientity.Entity{{
		Variant:  ientity.LineSegments,
		Vertices: []geom.Point{start, end},
		Layer:    ctx.Layer,
		Color:    ctx.Color,
		LineType: ctx.LineType,
	}}}
}

func decomposeArc(e dxf.Entity, ctx Context) Result {
	points, closed := tessellate.Arc(arcParamsFromEntity(e, ctx))
	return Result{Entities: polylineFromSamples(points, closed, ctx)}
}

func decomposeCircle(e dxf.Entity, ctx Context) Result {
	p := arcParamsFromEntity(e, ctx)
	p.HasStartAngle = false
	p.HasEndAngle = false
	points, closed := tessellate.Arc(p)
	return Result{Entities: polylineFromSamples(points, closed, ctx)}
}

func decomposeEllipse(e dxf.Entity, ctx Context) Result {
	major := geom.Pt(e.MajorAxisEnd.X, e.MajorAxisEnd.Y)
	radiusX := major.Length()
	if radiusX == 0 {
		radiusX = e.RadiusX
	}
	radiusY := radiusX * e.RadiusRatio

	rotation := math.Atan2(major.Y, major.X)

	params := tessellate.EllipseParams{
		ArcParams:     arcParamsFromEntity(e, ctx),
		RotationAngle: rotation,
	}
	params.RadiusX = radiusX
	params.RadiusY = radiusY
	params.HasRadiusY = true

	points, closed := tessellate.Ellipse(params)
	return Result{Entities: polylineFromSamples(points, closed, ctx)}
}

func arcParamsFromEntity(e dxf.Entity, ctx Context) tessellate.ArcParams {
	p := tessellate.ArcParams{
		Center:            geom.Pt(e.Center.X, e.Center.Y),
		RadiusX:           e.Radius,
		StartAngle:        e.StartAngle,
		HasStartAngle:     e.HasStartAngle,
		EndAngle:          e.EndAngle,
		HasEndAngle:       e.HasEndAngle,
		AngleBase:         ctx.Header.AngleBase(),
		ClockwiseDir:      ctx.Header.AngleDirClockwise(),
		TessellationAngle: ctx.Options.ArcTessellationAngle,
		MinSubdivisions:   ctx.Options.MinArcTessellationSubdivisions,
		Transform:         geom.Identity(),
	}
	if mirrorsX(e) {
		p.Transform = geom.Scale(-1, 1)
	}
	return p
}

func polylineFromSamples(points []geom.Point, closed bool, ctx Context) []ientity.Entity {
	if len(points) == 0 {
		return nil
	}
	return []ientity.Entity{{
		Variant:  ientity.Polyline,
		Vertices: points,
		Shape:    closed,
		Layer:    ctx.Layer,
		Color:    ctx.Color,
		LineType: ctx.LineType,
	}}
}

func decomposeSpline(e dxf.Entity, ctx Context) Result {
	ctrl := make([]geom.Point, len(e.ControlPoints))
	for i, c := range e.ControlPoints {
		ctrl[i] = geom.Pt(c.X, c.Y)
	}
	points, err := tessellate.BSpline(tessellate.SplineParams{
		ControlPoints: ctrl,
		Weights:       e.Weights,
		Knots:         e.Knots,
		Degree:        e.Degree,
	})
	if err != nil {
		return Result{}
	}
	return Result{Entities: polylineFromSamples(points, false, ctx)}
}
