package textlayout

import (
	"math"

	"github.com/gogpu/cadscene/internal/glyphcache"
)

const spaceGlyphWidth = 0.3 // nominal space advance at font size 1, used when the face itself has no ' ' glyph metric

func chunkWidth(text string, cache *glyphcache.Cache) float64 {
	if text == "" {
		return 0
	}
	glyphs, width, _, _ := layoutGlyphs(text, cache)
	if len(glyphs) == 0 {
		return 0
	}
	return width
}

// BuildLines wraps a paragraph's chunks to maxWidth (drawing units, already
// scaled by fontSize). maxWidth <= 0 disables wrapping: the whole paragraph
// becomes one line. Per spec.md §4.8, the first chunk of a line contributes
// no leading space, and a tab chunk advances the cursor to the next
// multiple of 4*fontSize.
func BuildLines(p Paragraph, maxWidth, fontSize float64, cache *glyphcache.Cache) []Line {
	lineHeight := ParagraphLineHeight(p, fontSize)
	var lines []Line
	var cur Line

	flush := func() {
		if len(cur.Chunks) > 0 {
			cur.Height = lineHeight
			lines = append(lines, cur)
		}
		cur = Line{}
	}

	for _, chunk := range p.Chunks {
		if chunk.IsTab {
			step := 4 * fontSize
			cur.Width = math.Floor(cur.Width/step+1) * step
			cur.Chunks = append(cur.Chunks, chunk)
			continue
		}

		w := chunkWidth(chunk.Text, cache) * fontSize
		leading := 0.0
		if len(cur.Chunks) > 0 {
			leading = spaceGlyphWidth * fontSize
		}

		if maxWidth > 0 && len(cur.Chunks) > 0 && cur.Width+leading+w > maxWidth {
			flush()
			cur.Chunks = append(cur.Chunks, chunk)
			cur.Width = w
			continue
		}

		cur.Width += leading + w
		cur.Chunks = append(cur.Chunks, chunk)
	}
	flush()

	if len(lines) == 0 {
		lines = append(lines, Line{Height: lineHeight})
	}
	return lines
}

// ParagraphLineHeight is the distance between successive baselines within
// a paragraph (spec.md §4.8: baseLineSpacing * lineSpacingFactor * 5/3 *
// fontSize). This layouter treats every spacing mode's base multiplier as
// 1 (SpacingAtLeast/SpacingExactly are not distinguished from
// SpacingMultiple): doing so precisely requires knowing each line's actual
// rendered content height, which needs per-line glyph-bounds analysis this
// layouter does not perform. See DESIGN.md.
func ParagraphLineHeight(p Paragraph, fontSize float64) float64 {
	factor := p.LineSpacingFactor
	if factor <= 0 {
		factor = 1
	}
	const baseLineSpacing = 1.0
	return baseLineSpacing * factor * (5.0 / 3.0) * fontSize
}

// DistributeColumns packs a flat sequence of lines into layout.ColumnCount
// columns, each capped at its configured height; the last column absorbs
// any overflow instead of being capped (spec.md §4.8 multi-column flow).
func DistributeColumns(lines []Line, layout ColumnLayout) [][]Line {
	count := layout.ColumnCount
	if count < 1 {
		count = 1
	}
	columns := make([][]Line, count)
	col := 0
	used := 0.0
	for _, line := range lines {
		if col < count-1 && used+line.Height > layout.heightFor(col) && used > 0 {
			col++
			used = 0
		}
		columns[col] = append(columns[col], line)
		used += line.Height
	}
	return columns
}

// BoxWidth is the total MTEXT bounding-box width across all columns,
// including inter-column gutters (spec.md §4.8).
func (c ColumnLayout) BoxWidth() float64 {
	if c.ColumnCount <= 1 {
		return c.ColumnWidth
	}
	return float64(c.ColumnCount)*c.ColumnWidth + float64(c.ColumnCount-1)*c.GutterWidth
}
