package textlayout

import (
	"math"

	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/mtext"
)

// MTextParams describes one MTEXT entity's render request (spec.md §4.8
// "MTEXT layouter").
type MTextParams struct {
	Content        string
	InsertionPoint geom.Point

	Height       float64 // fontSize; 0 treated as 1
	RefRectWidth float64 // 0 = unlimited (no wrap), ignored when Columns.ColumnCount > 1

	Rotation     float64 // radians, used when HasDirection is false
	Direction    geom.Point
	HasDirection bool

	Attachment Attachment
	Columns    ColumnLayout // ColumnCount <= 1 selects single-column flow

	Layer    *string
	Color    int32
	LineType *uint32
}

// placeLineGlyphs positions one line's chunks left to right in nominal
// (font-size 1) units, honoring the "no leading space before the first
// chunk" and tab-stop rules of spec.md §4.8.
func placeLineGlyphs(line Line, cache *glyphcache.Cache) (glyphs []placedGlyph, width float64) {
	cursor := 0.0
	first := true
	for _, chunk := range line.Chunks {
		if chunk.IsTab {
			cursor = math.Floor(cursor/4+1) * 4
			first = true
			continue
		}
		if !first {
			cursor += spaceGlyphWidth
		}
		gs, w, _, _ := layoutGlyphs(chunk.Text, cache)
		for _, g := range gs {
			glyphs = append(glyphs, placedGlyph{x: cursor + g.x, path: g.path})
		}
		cursor += w
		first = false
	}
	return glyphs, cursor
}

// RenderMText lays out an MTEXT entity's paragraphs into columns and emits
// one ientity.Entity (variant Triangles) per glyph (spec.md §4.8).
func RenderMText(p MTextParams, cache *glyphcache.Cache) []ientity.Entity {
	fontSize := p.Height
	if fontSize == 0 {
		fontSize = 1
	}

	nodes := mtext.Parse(p.Content)
	paragraphs := buildParagraphs(nodes)

	columns := p.Columns
	if columns.ColumnCount < 1 {
		columns.ColumnCount = 1
	}
	maxWidth := p.RefRectWidth
	if columns.ColumnCount > 1 {
		maxWidth = columns.ColumnWidth
	}

	var allLines []Line
	for _, para := range paragraphs {
		allLines = append(allLines, BuildLines(para, maxWidth, fontSize, cache)...)
	}

	colLines := DistributeColumns(allLines, columns)

	boxWidth := columns.BoxWidth()
	if boxWidth <= 0 {
		for _, l := range allLines {
			if l.Width > boxWidth {
				boxWidth = l.Width
			}
		}
	}

	totalHeight := columns.DefinedHeight
	if totalHeight <= 0 {
		totalHeight = columns.TotalHeight
	}
	if totalHeight <= 0 {
		for _, col := range colLines {
			sum := 0.0
			for _, l := range col {
				sum += l.Height
			}
			if sum > totalHeight {
				totalHeight = sum
			}
		}
	}

	anchorX := p.Attachment.horizontalFraction() * boxWidth
	anchorY := -p.Attachment.verticalFraction() * totalHeight

	rotation := -p.Rotation
	if p.HasDirection {
		rotation = math.Atan2(p.Direction.Y, p.Direction.X)
	}
	transform := geom.Translate(p.InsertionPoint.X, p.InsertionPoint.Y).Mul(geom.Rotate(rotation))

	var out []ientity.Entity
	for c, col := range colLines {
		columnX := 0.0
		if columns.ColumnCount > 1 {
			columnX = float64(c) * (columns.ColumnWidth + columns.GutterWidth)
		}
		cumulative := 0.0
		for _, line := range col {
			baselineY := -fontSize - cumulative
			cumulative += line.Height

			glyphs, _ := placeLineGlyphs(line, cache)
			for _, g := range glyphs {
				if len(g.path.Vertices) == 0 {
					continue
				}
				x := columnX + g.x*fontSize - anchorX
				y := baselineY - anchorY
				verts := make([]geom.Point, len(g.path.Vertices))
				for i, v := range g.path.Vertices {
					local := geom.Pt(v.X*fontSize+x, v.Y*fontSize+y)
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
		}
	}
	return out
}
