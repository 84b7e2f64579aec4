// Package sceneopts holds the scene-builder's configuration record
// (spec.md §6 "Options", §9 "prototype-based option inheritance ...
// replaced by an explicit Options record merged from defaults and
// overrides at build time").
//
// The zero-value-fallback merge pattern below follows the teacher's own
// GlyphCacheConfig precedent (text/glyph_cache.go: "if config.MaxEntries
// <= 0 { config.MaxEntries = 4096 }").
package sceneopts

import "math"

// TextOptions configures the text layouter (C8).
type TextOptions struct {
	// CurveSubdivision is the glyph-outline curve subdivision factor.
	CurveSubdivision int

	// FallbackChar is tried, in order, when a glyph is unavailable in
	// every registered font.
	FallbackChar string
}

// Options configures the scene builder (spec.md §6).
type Options struct {
	// ArcTessellationAngle is the target angular size, in radians, of one
	// tessellated arc segment. Default ~10 degrees.
	ArcTessellationAngle float64

	// MinArcTessellationSubdivisions floors the segment count for any
	// tessellated arc.
	MinArcTessellationSubdivisions int

	// WireframeMesh renders 3DFACE as an outline instead of filled
	// triangles.
	WireframeMesh bool

	TextOptions TextOptions
}

// DefaultOptions returns the engine's default configuration.
func DefaultOptions() Options {
	return Options{
		ArcTessellationAngle:           10 * math.Pi / 180,
		MinArcTessellationSubdivisions: 8,
		WireframeMesh:                  false,
		TextOptions: TextOptions{
			CurveSubdivision: 2,
			FallbackChar:     "�?",
		},
	}
}

// WithDefaults returns a copy of o with every zero-valued field replaced
// by the corresponding default. Pass a partially populated Options in and
// get back a fully populated one merged over DefaultOptions(), the same
// override-over-defaults discipline the teacher's glyph cache config uses.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.ArcTessellationAngle <= 0 {
		o.ArcTessellationAngle = def.ArcTessellationAngle
	}
	if o.MinArcTessellationSubdivisions <= 0 {
		o.MinArcTessellationSubdivisions = def.MinArcTessellationSubdivisions
	}
	if o.TextOptions.CurveSubdivision <= 0 {
		o.TextOptions.CurveSubdivision = def.TextOptions.CurveSubdivision
	}
	if o.TextOptions.FallbackChar == "" {
		o.TextOptions.FallbackChar = def.TextOptions.FallbackChar
	}
	return o
}
