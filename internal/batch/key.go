// Package batch implements spec.md C2: the batching key total order, the
// ordered batch registry, and the 65536-vertex indexed chunk packer.
//
// The registry is backed by internal/ordered's balanced tree rather than
// a hash map so that iteration is in ascending key order (spec.md §5
// "Determinism" and invariant 7), following the same interning-by-value
// lookup the teacher's sharded cache uses (cache/sharded.go) but trading
// its hash-shard layout for a comparator-driven tree since determinism,
// not raw throughput, is what the spec calls for here.
package batch

// GeometryKind is the batching key's geometry-kind component. Its
// iota order IS the order used when comparing two keys (spec.md C3).
type GeometryKind int

const (
	KindPoints GeometryKind = iota
	KindLines
	KindIndexedLines
	KindTriangles
	KindIndexedTriangles
	KindBlockInstance
	KindPointInstance
)

// Indexed reports whether batches of this kind store indices.
func (k GeometryKind) Indexed() bool {
	return k == KindIndexedLines || k == KindIndexedTriangles
}

// Instanced reports whether batches of this kind store per-instance
// transforms instead of raw vertices.
func (k GeometryKind) Instanced() bool {
	return k == KindBlockInstance || k == KindPointInstance
}

func (k GeometryKind) String() string {
	switch k {
	case KindPoints:
		return "POINTS"
	case KindLines:
		return "LINES"
	case KindIndexedLines:
		return "INDEXED_LINES"
	case KindTriangles:
		return "TRIANGLES"
	case KindIndexedTriangles:
		return "INDEXED_TRIANGLES"
	case KindBlockInstance:
		return "BLOCK_INSTANCE"
	case KindPointInstance:
		return "POINT_INSTANCE"
	default:
		return "UNKNOWN"
	}
}

// Key is the total-order composite batching key of spec.md §3:
// (layer, block, geometry-kind, color, lineType). A nil Layer/Block/
// LineType sorts before any non-nil value of the same field ("null is
// smallest").
type Key struct {
	Layer    *string
	Block    *string
	Kind     GeometryKind
	Color    int32
	LineType *uint32
}

// NewKey builds a Key, taking pointers so the nil/absent cases are
// explicit at call sites.
func NewKey(layer, block *string, kind GeometryKind, color int32, lineType *uint32) Key {
	return Key{Layer: layer, Block: block, Kind: kind, Color: color, LineType: lineType}
}

func cmpStringPtr(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func cmpUint32Ptr(a, b *uint32) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// Compare implements the total order required by internal/ordered.Tree:
// component-lexicographic over (layer, block, kind, color, lineType).
func Compare(a, b Key) int {
	if c := cmpStringPtr(a.Layer, b.Layer); c != 0 {
		return c
	}
	if c := cmpStringPtr(a.Block, b.Block); c != 0 {
		return c
	}
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if a.Color != b.Color {
		if a.Color < b.Color {
			return -1
		}
		return 1
	}
	return cmpUint32Ptr(a.LineType, b.LineType)
}
