// Package glyphcache provides the font abstraction (spec.md §6 "Font
// interface") and the glyph-outline cache (spec.md C8 "Glyph cache")
// that the text layouter builds on.
//
// Grounded on the teacher's text/glyph_cache.go (OutlineCacheKey,
// LRU-linked-list entries, hit/miss/eviction stats) but simplified from a
// sharded, mutex-protected, frame-lifetime cache to a single unsharded
// LRU map: spec.md §5 states the scene-building engine is single-threaded
// and synchronous, so the concurrency machinery the teacher's renderer
// needs (shards to cut lock contention, frame-based eviction tied to a
// render loop) has no work to do here and would be dead weight. See
// DESIGN.md for this simplification's justification.
package glyphcache

import "github.com/gogpu/cadscene/internal/geom"

// Bounds is a glyph's axis-aligned bounding box at nominal size 1.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// CharPath is one glyph's shape data at nominal font size 1 (spec.md §6:
// "getCharPath(c) -> CharPath | null").
type CharPath struct {
	Advance  float64
	Bounds   Bounds
	Vertices []geom.Point // triangulated outline
	Indices  []uint16
}

// Face is the abstract font the text layouter consumes (spec.md §6).
// Outline triangulation, hinting, and file parsing are the concern of
// whatever implements Face — out of scope for this module (spec.md §1).
type Face interface {
	HasChar(c rune) bool
	CharPath(c rune) (CharPath, bool)
	Kerning(a, b rune) float64
}
