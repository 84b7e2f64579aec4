package batch

import "github.com/gogpu/cadscene/internal/packed"

// Batch is one render batch, owned by the scene builder and keyed by Key
// (spec.md §3 "Render batch"). Exactly one of the three storage modes
// applies, selected by Key.Kind:
//   - non-indexed, non-instanced: Vertices holds interleaved x,y floats.
//   - indexed: Packer holds the batch's chunks.
//   - instanced: Transforms holds six float32 per instance (row-major 3x2).
type Batch struct {
	Key Key

	Vertices   *packed.Buffer[float32]
	Packer     *Packer
	Transforms *packed.Buffer[float32]
}

func newBatch(key Key) *Batch {
	b := &Batch{Key: key}
	switch {
	case key.Kind.Instanced():
		b.Transforms = packed.NewBuffer[float32](16)
	case key.Kind.Indexed():
		b.Packer = &Packer{}
	default:
		b.Vertices = packed.NewBuffer[float32](16)
	}
	return b
}

// AppendVertex appends one (x,y) vertex to a non-indexed batch.
func (b *Batch) AppendVertex(x, y float32) {
	b.Vertices.AppendAll(x, y)
}

// AppendInstance appends one 3x2 affine transform (row-major, six floats)
// to an instanced batch.
func (b *Batch) AppendInstance(m [6]float32) {
	b.Transforms.AppendAll(m[0], m[1], m[2], m[3], m[4], m[5])
}

// VertexCount returns the number of vertices in a non-indexed batch.
func (b *Batch) VertexCount() int {
	if b.Vertices == nil {
		return 0
	}
	return b.Vertices.Len() / 2
}

// InstanceCount returns the number of instances in an instanced batch.
func (b *Batch) InstanceCount() int {
	if b.Transforms == nil {
		return 0
	}
	return b.Transforms.Len() / 6
}
