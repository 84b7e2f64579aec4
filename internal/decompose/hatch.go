package decompose

import (
	"math"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	hatchclip "github.com/gogpu/cadscene/internal/hatch"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/patterntable"
)

// decomposeHatch resolves a HATCH's boundary loops, sweeps each pattern
// line across their bounding box, clips every sweep via internal/hatch,
// and emits one LINE_SEGMENTS entity per surviving sub-segment (spec.md
// §4.4: "for each pattern line, produce segments via C6 clipping; emit
// LINE_SEGMENTS per pattern").
//
// Solid/gradient fill is explicitly out of scope (spec.md §2 Non-goals),
// so IsSolid hatches produce no geometry. Dash phases within a pattern
// line are likewise not drawn (Non-goals: "stroke widths or dash
// patterns ... lines are infinitely thin, solid") — every surviving
// clipped span is emitted as one continuous segment.
func decomposeHatch(e dxf.Entity, ctx Context) Result {
	if e.IsSolid {
		return Result{}
	}
	if len(e.BoundaryLoops) == 0 {
		return Result{}
	}

	loops := make([]hatchclip.Loop, len(e.BoundaryLoops))
	var minPt, maxPt geom.Point
	first := true
	for i, bl := range e.BoundaryLoops {
		pts := make([]geom.Point, len(bl.Points))
		for j, v := range bl.Points {
			p := geom.Pt(v.X, v.Y)
			pts[j] = p
			if first {
				minPt, maxPt = p, p
				first = false
			} else {
				minPt = geom.Pt(math.Min(minPt.X, p.X), math.Min(minPt.Y, p.Y))
				maxPt = geom.Pt(math.Max(maxPt.X, p.X), math.Max(maxPt.Y, p.Y))
			}
		}
		loops[i] = hatchclip.Loop{Points: pts, Outermost: bl.IsOuter}
	}
	if first {
		return Result{}
	}

	style := hatchStyle(e.HatchStyleValue)

	lines := patternLines(e, ctx.Patterns)
	if len(lines) == 0 {
		return Result{}
	}

	seed := geom.Point{}
	if len(e.SeedPoints) > 0 {
		seed = geom.Pt(e.SeedPoints[0].X, e.SeedPoints[0].Y)
	}

	diag := maxPt.Sub(minPt).Length()
	if diag <= 0 {
		return Result{}
	}
	reach := diag*2 + 1

	var entities []ientity.Entity
	for _, pl := range lines {
		entities = append(entities, sweepPatternLine(pl, seed, e.PatternAngle, e.PatternScale, minPt, maxPt, reach, loops, style, ctx)...)
	}
	return Result{Entities: entities}
}

func hatchStyle(s dxf.HatchStyle) hatchclip.Style {
	switch s {
	case dxf.HatchStyleOutermost:
		return hatchclip.Outermost
	case dxf.HatchStyleThroughEntireArea:
		return hatchclip.ThroughEntireArea
	default:
		return hatchclip.OddParity
	}
}

// patternLines resolves the named pattern (table lookup) or, failing
// that, falls back to the entity's own inline definition lines.
func patternLines(e dxf.Entity, table *patterntable.Table) []patterntable.Line {
	if table != nil {
		if p, ok := table.Lookup(e.PatternName); ok {
			return p.Lines
		}
	}
	out := make([]patterntable.Line, len(e.DefinitionLines))
	for i, d := range e.DefinitionLines {
		out[i] = patterntable.Line{
			Angle:  d.Angle,
			Base:   geom.Pt(d.BaseX, d.BaseY),
			Offset: geom.Pt(d.OffsetX, d.OffsetY),
			Dashes: d.Dashes,
		}
	}
	return out
}

// sweepPatternLine generates parallel copies of one pattern line across
// the boundary loops' bounding box, spaced by the line's perpendicular
// offset component, and clips each copy against the loops.
func sweepPatternLine(pl patterntable.Line, seed geom.Point, patternAngle, patternScale float64, minPt, maxPt geom.Point, reach float64, loops []hatchclip.Loop, style hatchclip.Style, ctx Context) []ientity.Entity {
	scale := patternScale
	if scale == 0 {
		scale = 1
	}
	angle := pl.Angle*math.Pi/180 + patternAngle
	dir := geom.Pt(math.Cos(angle), math.Sin(angle))
	normal := dir.Perp()

	spacing := math.Abs(pl.Offset.Y) * scale
	if spacing <= 0 {
		spacing = reach
	}

	base := seed.Add(geom.Pt(pl.Base.X, pl.Base.Y).Mul(scale))

	// Project the bounding box corners onto normal, relative to base, to
	// find how many parallel sweep lines are needed to cover it.
	corners := []geom.Point{minPt, maxPt, geom.Pt(minPt.X, maxPt.Y), geom.Pt(maxPt.X, minPt.Y)}
	minProj, maxProj := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		d := c.Sub(base).Dot(normal)
		if d < minProj {
			minProj = d
		}
		if d > maxProj {
			maxProj = d
		}
	}

	startK := math.Floor(minProj/spacing) - 1
	endK := math.Ceil(maxProj/spacing) + 1

	var entities []ientity.Entity
	for k := startK; k <= endK; k++ {
		lineBase := base.Add(normal.Mul(k * spacing))
		p0 := lineBase.Sub(dir.Mul(reach))
		p1 := lineBase.Add(dir.Mul(reach))

		segments := hatchclip.ClipLine(loops, style, p0, p1)
		for _, seg := range segments {
			a := p0.Lerp(p1, seg.TStart)
			b := p0.Lerp(p1, seg.TEnd)
			entities = append(entities, ientity.Entity{
				Variant:  ientity.LineSegments,
				Vertices: []geom.Point{a, b},
				Layer:    ctx.Layer,
				Color:    ctx.Color,
				LineType: ctx.LineType,
			})
		}
	}
	return entities
}
