package textlayout

import (
	"testing"

	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/mtext"
)

func TestBuildParagraphsSplitsOnParagraphBreak(t *testing.T) {
	nodes := mtext.Parse(`Hello\PWorld`)
	paragraphs := buildParagraphs(nodes)
	if len(paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paragraphs))
	}
	if len(paragraphs[0].Chunks) != 1 || paragraphs[0].Chunks[0].Text != "Hello" {
		t.Errorf("paragraph 0 = %+v, want single chunk Hello", paragraphs[0])
	}
	if len(paragraphs[1].Chunks) != 1 || paragraphs[1].Chunks[0].Text != "World" {
		t.Errorf("paragraph 1 = %+v, want single chunk World", paragraphs[1])
	}
}

func TestBuildParagraphsSplitsTextIntoWordChunks(t *testing.T) {
	nodes := mtext.Parse("one two three")
	paragraphs := buildParagraphs(nodes)
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
	}
	chunks := paragraphs[0].Chunks
	if len(chunks) != 3 || chunks[0].Text != "one" || chunks[1].Text != "two" || chunks[2].Text != "three" {
		t.Errorf("chunks = %+v, want [one two three]", chunks)
	}
}

func TestBuildLinesWrapsAtMaxWidth(t *testing.T) {
	cache := newStubCache()
	para := Paragraph{Chunks: []Chunk{{Text: "aa"}, {Text: "bb"}, {Text: "cc"}}, LineSpacingFactor: 1}
	// each chunk is 2 glyphs wide (advance 1 each) = width 2 at fontSize 1;
	// a maxWidth of 3 fits one chunk plus a little, not two.
	lines := BuildLines(para, 3, 1, cache)
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapping into at least 2", len(lines))
	}
	for _, l := range lines {
		if len(l.Chunks) == 0 {
			t.Error("got an empty line")
		}
	}
}

func TestBuildLinesUnlimitedWidthStaysOneLine(t *testing.T) {
	cache := newStubCache()
	para := Paragraph{Chunks: []Chunk{{Text: "aa"}, {Text: "bb"}, {Text: "cc"}}, LineSpacingFactor: 1}
	lines := BuildLines(para, 0, 1, cache)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (unlimited width)", len(lines))
	}
	if len(lines[0].Chunks) != 3 {
		t.Errorf("got %d chunks on the line, want 3", len(lines[0].Chunks))
	}
}

func TestParagraphLineHeightAppliesSpacingFactor(t *testing.T) {
	base := ParagraphLineHeight(Paragraph{LineSpacingFactor: 1}, 2)
	doubled := ParagraphLineHeight(Paragraph{LineSpacingFactor: 2}, 2)
	if doubled != base*2 {
		t.Errorf("doubled spacing factor should double line height: base=%v doubled=%v", base, doubled)
	}
}

func TestDistributeColumnsOverflowsIntoLastColumn(t *testing.T) {
	lines := []Line{
		{Height: 1}, {Height: 1}, {Height: 1}, {Height: 1},
	}
	layout := ColumnLayout{ColumnCount: 2, ColumnHeight: 1.5}
	cols := DistributeColumns(lines, layout)
	if len(cols) != 2 {
		t.Fatalf("got %d columns, want 2", len(cols))
	}
	if len(cols[0]) != 1 {
		t.Errorf("column 0 got %d lines, want 1 (capped by height 1.5)", len(cols[0]))
	}
	if len(cols[1]) != 3 {
		t.Errorf("column 1 (last) got %d lines, want 3 (absorbs overflow)", len(cols[1]))
	}
}

func TestRenderMTextHelloWorldTwoLines(t *testing.T) {
	out := RenderMText(MTextParams{
		Content:        `Hello\PWorld`,
		InsertionPoint: geom.Pt(0, 0),
		Height:         1,
		Attachment:     AttachTopLeft,
	}, newStubCache())

	if len(out) != len("HelloWorld") {
		t.Fatalf("got %d glyph entities, want %d (one per letter)", len(out), len("HelloWorld"))
	}

	firstY := out[0].Vertices[0].Y
	lastY := out[len(out)-1].Vertices[0].Y
	if firstY == lastY {
		t.Error("first and second paragraph glyphs should land on different baselines")
	}
}

func TestRenderMTextRespectsDirectionOverride(t *testing.T) {
	cache := newStubCache()
	straight := RenderMText(MTextParams{Content: "A", Height: 1}, cache)
	rotated := RenderMText(MTextParams{
		Content:      "A",
		Height:       1,
		HasDirection: true,
		Direction:    geom.Pt(0, 1),
	}, cache)
	if straight[0].Vertices[0].X == rotated[0].Vertices[0].X {
		t.Error("a 90-degree direction override should change glyph X placement")
	}
}
