// Package ientity defines the normalized internal entity the decomposer
// (C4) produces and every downstream stage (block engine, scene
// assembler) consumes (spec.md §3 "Internal entity"). It is a separate
// package from internal/decompose purely to break the import cycle that
// would otherwise exist between the decomposer and the text layouter,
// which both need to speak this type (spec.md §9: "explicit, fully typed
// entity representation consumed by the decomposer").
package ientity

import "github.com/gogpu/cadscene/internal/geom"

// Variant is the internal entity's tagged-union discriminant.
type Variant int

const (
	Points Variant = iota
	LineSegments
	Polyline
	Triangles
)

func (v Variant) String() string {
	switch v {
	case Points:
		return "POINTS"
	case LineSegments:
		return "LINE_SEGMENTS"
	case Polyline:
		return "POLYLINE"
	case Triangles:
		return "TRIANGLES"
	default:
		return "UNKNOWN"
	}
}

// Entity is the decomposer's normalized output (spec.md §3). Invariants,
// enforced by callers that build these values:
//   - LineSegments: len(Vertices) is even.
//   - Triangles: len(Indices) is a multiple of three and every index is
//     in range.
//   - Polyline with Shape=true is closed without duplicating the first
//     vertex.
//   - Points uses no indices.
type Entity struct {
	Variant Variant

	Vertices []geom.Point
	Indices  []uint16 // only meaningful for Triangles

	// Layer is nil while the entity is being produced inside a block
	// definition (spec.md §4.4: "inside a block definition, layer is
	// null").
	Layer *string

	// Color may hold BYLAYER (-1) / BYBLOCK (-2) sentinels while inside
	// a block definition context.
	Color int32

	LineType    *uint32
	Shape       bool // closed-polyline flag
}

// Clone returns a deep copy of e (vertices/indices are copied, not
// shared), used when the same decomposed entity needs to be replayed
// into multiple contexts (e.g. a nested block definition walked once but
// whose geometry must not alias the parent's buffers).
func (e Entity) Clone() Entity {
	c := e
	c.Vertices = append([]geom.Point(nil), e.Vertices...)
	if e.Indices != nil {
		c.Indices = append([]uint16(nil), e.Indices...)
	}
	return c
}
