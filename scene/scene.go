// Package scene implements spec.md C9: the two-pass orchestration that
// turns a parsed DXF drawing into the packed, batched scene of spec.md
// §3 ("Scene (output)"). It ties together the block engine (C5), the
// entity decomposer (C4, via internal/entitysink), and the batch
// registry (C2) into the `Builder.Build` entry point, then serializes
// every batch into three contiguous byte buffers.
//
// The two-phase "build a command stream, then serialize it" shape
// follows the teacher's own renderer/scene split (a scene graph is
// assembled first, a separate pass turns it into GPU commands); here the
// "commands" are render batches and the "GPU submission" is the packed
// byte-buffer output.
package scene

import (
	"github.com/gogpu/cadscene/internal/batch"
	"github.com/gogpu/cadscene/internal/geom"
)

// ChunkDescriptor locates one indexed batch's chunk within the output
// vertex/index buffers. Offsets and sizes are element counts, not byte
// counts (spec.md §6).
type ChunkDescriptor struct {
	VerticesOffset int
	VerticesSize   int
	IndicesOffset  int
	IndicesSize    int
}

// SerializedBatch carries one batch's key plus its location within the
// output buffers. Exactly one of the three location shapes applies,
// selected by Key.Kind (spec.md §6 "Output scene"):
//   - non-indexed, non-instanced: VerticesOffset/VerticesSize into Vertices.
//   - indexed: Chunks, each locating one chunk in Vertices and Indices.
//   - instanced: TransformsOffset/TransformsSize into Transforms.
type SerializedBatch struct {
	Key batch.Key

	VerticesOffset int
	VerticesSize   int

	TransformsOffset int
	TransformsSize   int

	Chunks []ChunkDescriptor
}

// LayerInfo is one scene-level layer summary (spec.md §3).
type LayerInfo struct {
	Name  string
	Color int
}

// Bounds is the scene's world-space extent (spec.md §3, §8 invariant 4).
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Scene is the fully packed output (spec.md §3 "Scene (output)", §6
// "Output scene"). Vertices is f32 interleaved (x,y); Indices is u16;
// Transforms is f32 row-major 3x2 per instance.
type Scene struct {
	Vertices   []byte
	Indices    []byte
	Transforms []byte

	Batches []SerializedBatch
	Layers  []LayerInfo

	Origin geom.Point
	Bounds Bounds

	HasMissingChars  bool
	PointShapeHasDot bool
}
