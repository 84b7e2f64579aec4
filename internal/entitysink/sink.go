// Package entitysink implements the one piece of storage logic shared by
// the block engine (C5, writing into a block's own definition batches)
// and the scene assembler (C9, writing into top-level batches): turning
// one decomposed internal entity (internal/ientity) into the right kind
// of spec.md C2 batch, transforming each vertex through a caller-supplied
// callback on the way in.
//
// Factoring this out of both callers follows the teacher's own practice
// of sharing one low-level buffer-append routine across multiple
// higher-level builders (internal/gpu/buffer.go is reused by every
// render-pass encoder rather than duplicated per call site) rather than
// letting C5 and C9 each grow their own copy of the variant-to-batch-kind
// mapping.
package entitysink

import (
	"errors"
	"fmt"

	"github.com/gogpu/cadscene/internal/batch"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/ientity"
)

// ErrIndexOutOfRange is returned when a TRIANGLES entity's Indices
// reference a vertex beyond its own Vertices slice (spec.md §8 invariant
// 2, §7 "invariant violations inside packers ... fatal").
var ErrIndexOutOfRange = errors.New("entitysink: triangle index out of range for entity vertex count")

// ErrOddLineSegments is returned when a LINE_SEGMENTS entity's vertex
// count is odd (spec.md §3 invariant: "LINE_SEGMENTS vertices count is
// even").
var ErrOddLineSegments = errors.New("entitysink: LINE_SEGMENTS vertex count is odd")

// ErrIndicesNotTriple is returned when a TRIANGLES entity's index count
// is not a multiple of three (spec.md §3 invariant).
var ErrIndicesNotTriple = errors.New("entitysink: TRIANGLES index count is not a multiple of three")

// Transform maps one raw (pre-storage) vertex to its final stored
// position. Callers use this both for block-definition offset storage
// (internal/blockengine) and for scene-level origin shifting
// (the scene package).
type Transform func(geom.Point) geom.Point

// variantKind maps an internal entity's variant to the batch geometry
// kind it is stored under (spec.md §3's batching-key "Kinds" list exists
// specifically so LINE_SEGMENTS can be stored densely while POLYLINE and
// TRIANGLES, which have natural shared-vertex structure, go through the
// indexed chunk packer instead).
func variantKind(v ientity.Variant) batch.GeometryKind {
	switch v {
	case ientity.Points:
		return batch.KindPoints
	case ientity.LineSegments:
		return batch.KindLines
	case ientity.Polyline:
		return batch.KindIndexedLines
	case ientity.Triangles:
		return batch.KindIndexedTriangles
	default:
		return batch.KindPoints
	}
}

// Push writes e into reg, returning the batch.Key it was stored under and
// true, or false if e had no vertices to contribute (an empty POLYLINE or
// TRIANGLES entity). blockName supplies the key's Block component (nil
// outside any block definition); e.Layer and e.Color/e.LineType supply
// the rest (spec.md §4.4: entities carry their own resolved
// layer/color/lineType already). transform is applied to every vertex,
// in entity order, exactly once.
func Push(reg *batch.Registry, e ientity.Entity, blockName *string, transform Transform) (batch.Key, bool, error) {
	if transform == nil {
		transform = func(p geom.Point) geom.Point { return p }
	}

	switch e.Variant {
	case ientity.Points:
		key := batch.NewKey(e.Layer, blockName, batch.KindPoints, e.Color, e.LineType)
		b := reg.Get(key)
		for _, v := range e.Vertices {
			p := transform(v)
			b.AppendVertex(float32(p.X), float32(p.Y))
		}
		return key, true, nil

	case ientity.LineSegments:
		if len(e.Vertices)%2 != 0 {
			return batch.Key{}, false, fmt.Errorf("%w: got %d", ErrOddLineSegments, len(e.Vertices))
		}
		key := batch.NewKey(e.Layer, blockName, batch.KindLines, e.Color, e.LineType)
		b := reg.Get(key)
		for _, v := range e.Vertices {
			p := transform(v)
			b.AppendVertex(float32(p.X), float32(p.Y))
		}
		return key, true, nil

	case ientity.Polyline:
		return pushPolyline(reg, e, blockName, transform)

	case ientity.Triangles:
		return pushTriangles(reg, e, blockName, transform)

	default:
		return batch.Key{}, false, fmt.Errorf("entitysink: unknown entity variant %v", e.Variant)
	}
}

func pushPolyline(reg *batch.Registry, e ientity.Entity, blockName *string, transform Transform) (batch.Key, bool, error) {
	n := len(e.Vertices)
	if n == 0 {
		return batch.Key{}, false, nil
	}
	edges := n - 1
	if e.Shape {
		edges = n
	}
	if edges <= 0 {
		return batch.Key{}, false, nil
	}

	key := batch.NewKey(e.Layer, blockName, batch.KindIndexedLines, e.Color, e.LineType)
	b := reg.Get(key)
	res, err := b.Packer.Reserve(n)
	if err != nil {
		return key, false, fmt.Errorf("entitysink: reserving polyline chunk: %w", err)
	}
	for _, v := range e.Vertices {
		p := transform(v)
		res.AppendVertex(float32(p.X), float32(p.Y))
	}
	for i := 0; i < edges; i++ {
		a, bIdx := uint16(i), uint16((i+1)%n)
		if err := res.AppendIndex(a); err != nil {
			return key, false, err
		}
		if err := res.AppendIndex(bIdx); err != nil {
			return key, false, err
		}
	}
	if err := res.Commit(); err != nil {
		return key, false, fmt.Errorf("entitysink: committing polyline chunk: %w", err)
	}
	return key, true, nil
}

func pushTriangles(reg *batch.Registry, e ientity.Entity, blockName *string, transform Transform) (batch.Key, bool, error) {
	if len(e.Indices)%3 != 0 {
		return batch.Key{}, false, fmt.Errorf("%w: got %d", ErrIndicesNotTriple, len(e.Indices))
	}
	n := len(e.Vertices)
	if n == 0 {
		return batch.Key{}, false, nil
	}

	key := batch.NewKey(e.Layer, blockName, batch.KindIndexedTriangles, e.Color, e.LineType)
	b := reg.Get(key)
	res, err := b.Packer.Reserve(n)
	if err != nil {
		return key, false, fmt.Errorf("entitysink: reserving triangle chunk: %w", err)
	}
	for _, v := range e.Vertices {
		p := transform(v)
		res.AppendVertex(float32(p.X), float32(p.Y))
	}
	for _, idx := range e.Indices {
		if int(idx) >= n {
			return key, false, fmt.Errorf("%w: index %d, vertex count %d", ErrIndexOutOfRange, idx, n)
		}
		if err := res.AppendIndex(idx); err != nil {
			return key, false, err
		}
	}
	if err := res.Commit(); err != nil {
		return key, false, fmt.Errorf("entitysink: committing triangle chunk: %w", err)
	}
	return key, true, nil
}
