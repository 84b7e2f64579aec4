package glyphcache

import (
	"testing"

	"github.com/gogpu/cadscene/internal/geom"
)

type fakeFace struct {
	chars   map[rune]CharPath
	kerning map[[2]rune]float64
}

func (f *fakeFace) HasChar(c rune) bool {
	_, ok := f.chars[c]
	return ok
}

func (f *fakeFace) CharPath(c rune) (CharPath, bool) {
	p, ok := f.chars[c]
	return p, ok
}

func (f *fakeFace) Kerning(a, b rune) float64 {
	return f.kerning[[2]rune{a, b}]
}

func squarePath(advance float64) CharPath {
	return CharPath{
		Advance: advance,
		Bounds:  Bounds{XMin: 0, XMax: advance, YMin: 0, YMax: 1},
		Vertices: []geom.Point{
			{X: 0, Y: 0}, {X: advance, Y: 0}, {X: advance, Y: 1}, {X: 0, Y: 1},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

func TestCacheResolvesFromFirstMatchingFace(t *testing.T) {
	a := &fakeFace{chars: map[rune]CharPath{'A': squarePath(0.6)}}
	b := &fakeFace{chars: map[rune]CharPath{'A': squarePath(0.9)}}
	c := New([]Face{a, b}, Config{})

	got := c.Glyph('A')
	if got.Advance != 0.6 {
		t.Errorf("Advance = %v, want 0.6 (first matching face)", got.Advance)
	}
	if c.HasMissingChars() {
		t.Error("HasMissingChars() = true, want false")
	}
}

func TestCacheFallsBackOnMissingGlyph(t *testing.T) {
	face := &fakeFace{chars: map[rune]CharPath{'?': squarePath(0.5)}}
	c := New([]Face{face}, Config{FallbackChars: "?"})

	got := c.Glyph('Z')
	if got.Advance != 0.5 {
		t.Errorf("Advance = %v, want fallback glyph's 0.5", got.Advance)
	}
	if !c.HasMissingChars() {
		t.Error("HasMissingChars() = false, want true after an unresolved glyph")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	face := &fakeFace{chars: map[rune]CharPath{
		'A': squarePath(1), 'B': squarePath(1), 'C': squarePath(1),
	}}
	c := New([]Face{face}, Config{MaxEntries: 2})

	c.Glyph('A')
	c.Glyph('B')
	c.Glyph('C') // evicts A, the least recently used

	if _, ok := c.entries['A']; ok {
		t.Error("A should have been evicted")
	}
	if _, ok := c.entries['B']; !ok {
		t.Error("B should still be cached")
	}
	if _, ok := c.entries['C']; !ok {
		t.Error("C should still be cached")
	}
}

func TestCacheKerning(t *testing.T) {
	face := &fakeFace{
		chars:   map[rune]CharPath{'A': squarePath(1), 'V': squarePath(1)},
		kerning: map[[2]rune]float64{{'A', 'V'}: -0.1},
	}
	c := New([]Face{face}, Config{})
	if got := c.Kerning('A', 'V'); got != -0.1 {
		t.Errorf("Kerning(A,V) = %v, want -0.1", got)
	}
}
