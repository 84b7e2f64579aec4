package textlayout

import (
	"math"

	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/internal/ientity"
)

// TextParams describes one single-line TEXT entity's render request
// (spec.md §4.4 "TEXT: delegate to C8 single-line renderer").
type TextParams struct {
	Text           string
	InsertionPoint geom.Point
	EndPoint       geom.Point
	HasEndPoint    bool

	Height      float64
	Rotation    float64 // radians, entity rotation attribute
	WidthFactor float64 // 0 treated as 1

	HAlign HAlign
	VAlign VAlign

	Layer    *string
	Color    int32
	LineType *uint32
}

type placedGlyph struct {
	x    float64
	path glyphcache.CharPath
}

func layoutGlyphs(text string, cache *glyphcache.Cache) (glyphs []placedGlyph, width, minY, maxY float64) {
	cursor := 0.0
	minY, maxY = 0, 0
	haveBounds := false
	var prev rune
	first := true
	for _, r := range text {
		path := cache.Glyph(r)
		if !first {
			cursor += cache.Kerning(prev, r)
		}
		glyphs = append(glyphs, placedGlyph{x: cursor, path: path})
		cursor += path.Advance
		if len(path.Vertices) > 0 {
			if !haveBounds {
				minY, maxY = path.Bounds.YMin, path.Bounds.YMax
				haveBounds = true
			} else {
				minY = math.Min(minY, path.Bounds.YMin)
				maxY = math.Max(maxY, path.Bounds.YMax)
			}
		}
		prev = r
		first = false
	}
	return glyphs, cursor, minY, maxY
}

// Render lays out a single-line TEXT entity and emits one ientity.Entity
// (variant Triangles) per glyph, per spec.md §4.8 "Single-line TEXT".
func Render(p TextParams, cache *glyphcache.Cache) []ientity.Entity {
	widthFactor := p.WidthFactor
	if widthFactor == 0 {
		widthFactor = 1
	}

	glyphs, width, minY, maxY := layoutGlyphs(p.Text, cache)

	baseScaleX := p.Height * widthFactor
	baseScaleY := p.Height

	originX := 0.0
	switch p.HAlign {
	case HAlignCenter, HAlignMiddle:
		originX = width / 2
	case HAlignRight:
		originX = width
	}

	originY := 0.0
	switch p.VAlign {
	case VAlignBottom:
		originY = minY
	case VAlignMiddle:
		originY = (minY + maxY) / 2
	case VAlignTop:
		originY = maxY
	}

	scaleX, scaleY := baseScaleX, baseScaleY
	rotation := -p.Rotation

	if (p.HAlign == HAlignAligned || p.HAlign == HAlignFit) && p.HasEndPoint {
		originX, originY = 0, 0
		delta := p.EndPoint.Sub(p.InsertionPoint)
		endDist := delta.Length()
		rotation = math.Atan2(delta.Y, delta.X)
		nominalWidth := width * baseScaleX
		factor := 1.0
		if nominalWidth > 0 {
			factor = endDist / nominalWidth
		}
		scaleX = baseScaleX * factor
		if p.HAlign == HAlignAligned {
			scaleY = baseScaleY * factor
		}
	}

	transform := geom.Translate(p.InsertionPoint.X, p.InsertionPoint.Y).
		Mul(geom.Rotate(rotation)).
		Mul(geom.Scale(scaleX, scaleY)).
		Mul(geom.Translate(-originX, -originY))

	var out []ientity.Entity
	for _, g := range glyphs {
		if len(g.path.Vertices) == 0 {
			continue
		}
		verts := make([]geom.Point, len(g.path.Vertices))
		for i, v := range g.path.Vertices {
			local := geom.Pt(v.X+g.x, v.Y)
			verts[i] = transform.Apply(local)
		}
		out = append(out, ientity.Entity{
			Variant:  ientity.Triangles,
			Vertices: verts,
			Indices:  g.path.Indices,
			Layer:    p.Layer,
			Color:    p.Color,
			LineType: p.LineType,
		})
	}
	return out
}
