package scene

import (
	"bytes"
	"encoding/binary"
	"math"
)

// serialize implements spec.md §4.9 step 6: sum every batch/chunk's
// buffer sizes, allocate the three contiguous byte regions, then walk
// the ordered batch map (ascending key order, spec.md §5 "Determinism"),
// copying each batch's data and recording its offset/size descriptor.
func (b *Builder) serialize() *Scene {
	var vertexBuf, indexBuf, transformBuf bytes.Buffer
	var vertexElems, indexElems, transformElems int

	batches := b.registry.Batches()
	serialized := make([]SerializedBatch, 0, len(batches))

	for _, bt := range batches {
		sb := SerializedBatch{Key: bt.Key}

		switch {
		case bt.Key.Kind.Instanced():
			data := bt.Transforms.Slice()
			sb.TransformsOffset = transformElems
			sb.TransformsSize = len(data)
			writeFloat32s(&transformBuf, data)
			transformElems += len(data)

		case bt.Key.Kind.Indexed():
			for _, c := range bt.Packer.Chunks() {
				vd := c.Vertices()
				id := c.Indices()
				sb.Chunks = append(sb.Chunks, ChunkDescriptor{
					VerticesOffset: vertexElems,
					VerticesSize:   len(vd),
					IndicesOffset:  indexElems,
					IndicesSize:    len(id),
				})
				writeFloat32s(&vertexBuf, vd)
				vertexElems += len(vd)
				writeUint16s(&indexBuf, id)
				indexElems += len(id)
			}

		default:
			data := bt.Vertices.Slice()
			sb.VerticesOffset = vertexElems
			sb.VerticesSize = len(data)
			writeFloat32s(&vertexBuf, data)
			vertexElems += len(data)
		}

		serialized = append(serialized, sb)
	}

	return &Scene{
		Vertices:         vertexBuf.Bytes(),
		Indices:          indexBuf.Bytes(),
		Transforms:       transformBuf.Bytes(),
		Batches:          serialized,
		Layers:           b.layers,
		Origin:           b.origin,
		Bounds:           b.bounds,
		HasMissingChars:  b.hasMissingChars,
		PointShapeHasDot: b.engine.PointShapeHasDot(),
	}
}

func writeFloat32s(buf *bytes.Buffer, vs []float32) {
	var scratch [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
		buf.Write(scratch[:])
	}
}

func writeUint16s(buf *bytes.Buffer, vs []uint16) {
	var scratch [2]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint16(scratch[:], v)
		buf.Write(scratch[:])
	}
}
