package packed

import "testing"

func TestBufferAppendAndAt(t *testing.T) {
	b := NewBuffer[float32](4)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	i := b.Append(1.5)
	if i != 0 {
		t.Errorf("Append() index = %d, want 0", i)
	}
	if b.At(0) != 1.5 {
		t.Errorf("At(0) = %v, want 1.5", b.At(0))
	}
}

func TestBufferAppendAllReturnsFirstIndex(t *testing.T) {
	b := NewBuffer[uint16](4)
	b.Append(9)
	start := b.AppendAll(1, 2, 3)
	if start != 1 {
		t.Errorf("AppendAll() start index = %d, want 1", start)
	}
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
}

func TestBufferAppendPositionStableAcrossSameEpoch(t *testing.T) {
	b := NewBuffer[float32](16)
	b.Reserve(10)
	idx := b.Append(1)
	b.Append(2)
	b.Append(3)
	if b.At(idx) != 1 {
		t.Errorf("At(%d) = %v, want 1 (append position must stay stable)", idx, b.At(idx))
	}
}

func TestBufferGrowsPastInitialCapacity(t *testing.T) {
	b := NewBuffer[uint8](minCapacity)
	for i := 0; i < minCapacity*3; i++ {
		b.Append(uint8(i))
	}
	if b.Len() != minCapacity*3 {
		t.Fatalf("Len() = %d, want %d", b.Len(), minCapacity*3)
	}
	for i := 0; i < b.Len(); i++ {
		if b.At(i) != uint8(i) {
			t.Errorf("At(%d) = %v, want %v", i, b.At(i), uint8(i))
		}
	}
}

func TestBufferSetOverwrites(t *testing.T) {
	b := NewBuffer[float32](4)
	b.AppendAll(1, 2, 3)
	b.Set(1, 99)
	if b.At(1) != 99 {
		t.Errorf("At(1) after Set = %v, want 99", b.At(1))
	}
}

func TestBufferCopyRangeTo(t *testing.T) {
	b := NewBuffer[float32](4)
	b.AppendAll(1, 2, 3)
	dst := make([]float32, 5)
	b.CopyRangeTo(dst, 2)
	want := []float32{0, 0, 1, 2, 3}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestNewBufferFloorsInitialCapacity(t *testing.T) {
	b := NewBuffer[float32](1)
	if cap(b.Slice()) < minCapacity {
		t.Errorf("cap = %d, want >= %d", cap(b.Slice()), minCapacity)
	}
}
