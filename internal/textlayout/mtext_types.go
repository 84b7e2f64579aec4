package textlayout

import "github.com/gogpu/cadscene/internal/mtext"

// Chunk is either a tab or a run of glyphs with no internal spaces
// (spec.md §4.8: "a Chunk is either a tab or a run of glyphs separated
// by spaces").
type Chunk struct {
	IsTab bool
	Text  string
}

// Paragraph holds a run of chunks under one alignment/line-spacing
// setting (spec.md §4.8).
type Paragraph struct {
	Chunks            []Chunk
	Alignment         mtext.Alignment
	LineSpacingFactor float64
}

// Line is one wrapped line of chunks, as produced by BuildLines. Height is
// the owning paragraph's line height (spec.md §4.8), carried on the line
// itself so column distribution doesn't need a parallel slice.
type Line struct {
	Chunks []Chunk
	Width  float64
	Height float64
}

// ColumnLayout configures MTEXT multi-column flow (spec.md §4.8).
type ColumnLayout struct {
	ColumnCount   int
	ColumnWidth   float64
	ColumnHeight  float64
	Heights       []float64 // per-column override; falls back to ColumnHeight
	GutterWidth   float64
	DefinedHeight float64
	TotalHeight   float64
}

func (c ColumnLayout) heightFor(index int) float64 {
	if index < len(c.Heights) && c.Heights[index] > 0 {
		return c.Heights[index]
	}
	return c.ColumnHeight
}

// buildParagraphs groups a parsed MTEXT node tree into paragraphs,
// splitting each run of plain text on spaces into word chunks. Scope
// ({...}) content is flattened into the enclosing paragraph's text
// stream: this layouter lays out plain text geometry only and does not
// track per-scope font/height overrides, a deliberate simplification
// recorded in DESIGN.md.
func buildParagraphs(nodes []mtext.Node) []Paragraph {
	var paragraphs []Paragraph
	cur := Paragraph{LineSpacingFactor: 1.0}

	appendWords := func(text string) {
		start := 0
		for i, r := range text {
			if r == ' ' || r == '\t' {
				if i > start {
					cur.Chunks = append(cur.Chunks, Chunk{Text: text[start:i]})
				}
				start = i + len(string(r))
			}
		}
		if start < len(text) {
			cur.Chunks = append(cur.Chunks, Chunk{Text: text[start:]})
		}
	}

	var walk func(nodes []mtext.Node)
	walk = func(nodes []mtext.Node) {
		for _, n := range nodes {
			switch n.Type {
			case mtext.NodeText:
				appendWords(n.Text)
			case mtext.NodeNonBreakingSpace:
				cur.Chunks = append(cur.Chunks, Chunk{Text: " "})
			case mtext.NodeScope:
				walk(n.Children)
			case mtext.NodeTab:
				cur.Chunks = append(cur.Chunks, Chunk{IsTab: true})
			case mtext.NodeParagraphAlignment:
				cur.Alignment = n.Alignment
			case mtext.NodeParagraphLineSpacing:
				if n.SpacingType == mtext.SpacingReset {
					cur.LineSpacingFactor = 1.0
				} else {
					cur.LineSpacingFactor = n.SpacingFactor
				}
			case mtext.NodeParagraph:
				paragraphs = append(paragraphs, cur)
				cur = Paragraph{Alignment: cur.Alignment, LineSpacingFactor: cur.LineSpacingFactor}
			}
		}
	}
	walk(nodes)
	paragraphs = append(paragraphs, cur)
	return paragraphs
}
