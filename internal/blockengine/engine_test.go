package blockengine

import (
	"testing"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/batch"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/sceneopts"
)

func newTestEngine(d *dxf.Drawing) (*Engine, *batch.Registry) {
	reg := batch.NewRegistry()
	cache := glyphcache.New(nil, glyphcache.Config{})
	finalize := func(p geom.Point) geom.Point { return p }
	e := New(d, reg, sceneopts.DefaultOptions(), cache, nil, finalize, nil)
	return e, reg
}

// S3: block "A" with one LINE (0,0)-(1,0), referenced twice with identity
// scale/rotation, should flatten (useCount*verticesCount = 2*2 = 4 <= 1024).
func TestFlattenSmallBlockTwoInserts(t *testing.T) {
	blockA := &dxf.RawBlock{
		Name: "A",
		Entities: []dxf.Entity{
			{Type: dxf.TypeLine, Start: dxf.Vec2{X: 0, Y: 0}, End: dxf.Vec2{X: 1, Y: 0}},
		},
	}
	d := &dxf.Drawing{
		Header:     dxf.Header{},
		Blocks:     map[string]*dxf.RawBlock{"A": blockA},
		BlockOrder: []string{"A"},
		Entities: []dxf.Entity{
			{Type: dxf.TypeInsert, BlockName: "A", Position: dxf.Vec2{X: 10, Y: 0}, HasScale: true, XScale: 1, YScale: 1},
			{Type: dxf.TypeInsert, BlockName: "A", Position: dxf.Vec2{X: 20, Y: 0}, HasScale: true, XScale: 1, YScale: 1},
		},
	}

	e, reg := newTestEngine(d)
	if err := e.Prepare(); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	blk, ok := e.Block("A")
	if !ok {
		t.Fatal("block A not found")
	}
	if blk.UseCount != 2 {
		t.Errorf("UseCount = %d, want 2", blk.UseCount)
	}
	if blk.VertexCount != 2 {
		t.Errorf("VertexCount = %d, want 2", blk.VertexCount)
	}
	if !blk.Flatten {
		t.Fatalf("Flatten = false, want true (useCount*verticesCount = %d)", blk.UseCount*blk.VertexCount)
	}

	layer := "0"
	for _, ent := range d.Entities {
		if err := e.ProcessInsert(ent, &layer, 7, 7, nil); err != nil {
			t.Fatalf("ProcessInsert() error: %v", err)
		}
	}

	if reg.Len() != 1 {
		t.Fatalf("registry has %d batches, want 1 (no BLOCK_INSTANCE)", reg.Len())
	}
	var found *batch.Batch
	reg.InOrder(func(k batch.Key, b *batch.Batch) bool {
		found = b
		return true
	})
	if found.Key.Kind != batch.KindLines {
		t.Fatalf("batch kind = %v, want KindLines", found.Key.Kind)
	}
	want := []float32{10, 0, 11, 0, 20, 0, 21, 0}
	got := found.Vertices.Slice()
	if len(got) != len(want) {
		t.Fatalf("vertices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertices[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// S4: block "B" with 2000 vertices referenced 10x should not flatten, and
// should produce one BLOCK_INSTANCE batch with 10 transforms.
func TestLargeBlockManyInsertsInstances(t *testing.T) {
	entities := make([]dxf.Entity, 0, 1000)
	for i := 0; i < 1000; i++ {
		entities = append(entities, dxf.Entity{
			Type:  dxf.TypeLine,
			Start: dxf.Vec2{X: float64(i), Y: 0},
			End:   dxf.Vec2{X: float64(i), Y: 1},
		})
	}
	blockB := &dxf.RawBlock{Name: "B", Entities: entities}

	inserts := make([]dxf.Entity, 0, 10)
	for i := 0; i < 10; i++ {
		inserts = append(inserts, dxf.Entity{
			Type: dxf.TypeInsert, BlockName: "B",
			Position: dxf.Vec2{X: float64(i) * 100, Y: 0},
			HasScale: true, XScale: 1, YScale: 1,
		})
	}

	d := &dxf.Drawing{
		Header:     dxf.Header{},
		Blocks:     map[string]*dxf.RawBlock{"B": blockB},
		BlockOrder: []string{"B"},
		Entities:   inserts,
	}

	e, reg := newTestEngine(d)
	if err := e.Prepare(); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	blk, _ := e.Block("B")
	if blk.VertexCount != 2000 {
		t.Errorf("VertexCount = %d, want 2000", blk.VertexCount)
	}
	if blk.Flatten {
		t.Fatalf("Flatten = true, want false (useCount*verticesCount = %d)", blk.UseCount*blk.VertexCount)
	}

	layer := "0"
	for _, ent := range inserts {
		if err := e.ProcessInsert(ent, &layer, 7, 7, nil); err != nil {
			t.Fatalf("ProcessInsert() error: %v", err)
		}
	}

	var instanceBatch *batch.Batch
	reg.InOrder(func(k batch.Key, b *batch.Batch) bool {
		if k.Kind == batch.KindBlockInstance {
			instanceBatch = b
		}
		return true
	})
	if instanceBatch == nil {
		t.Fatal("no BLOCK_INSTANCE batch found")
	}
	if instanceBatch.InstanceCount() != 10 {
		t.Errorf("InstanceCount() = %d, want 10", instanceBatch.InstanceCount())
	}
}

// S7: a block that inserts itself should be skipped, not recurse forever.
func TestRecursiveBlockSkipped(t *testing.T) {
	blockA := &dxf.RawBlock{
		Name: "A",
		Entities: []dxf.Entity{
			{Type: dxf.TypeLine, Start: dxf.Vec2{X: 0, Y: 0}, End: dxf.Vec2{X: 1, Y: 0}},
			{Type: dxf.TypeInsert, BlockName: "A", HasScale: true, XScale: 1, YScale: 1},
		},
	}
	d := &dxf.Drawing{
		Header:     dxf.Header{},
		Blocks:     map[string]*dxf.RawBlock{"A": blockA},
		BlockOrder: []string{"A"},
		Entities: []dxf.Entity{
			{Type: dxf.TypeInsert, BlockName: "A", HasScale: true, XScale: 1, YScale: 1},
		},
	}

	e, _ := newTestEngine(d)
	if err := e.Prepare(); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	blk, _ := e.Block("A")
	if blk.VertexCount != 2 {
		t.Fatalf("VertexCount = %d, want 2 (self-reference contributes no extra vertices)", blk.VertexCount)
	}
}

func TestInsertionTransformIdentityScaleRotation(t *testing.T) {
	ins := dxf.Entity{
		Position: dxf.Vec2{X: 5, Y: 5},
		HasScale: true, XScale: 1, YScale: 1,
	}
	m := insertionTransform(ins, geom.Point{}, geom.Point{}, Instantiation)
	p := m.Apply(geom.Pt(1, 0))
	if p.X != 6 || p.Y != 5 {
		t.Errorf("Apply((1,0)) = %+v, want (6,5)", p)
	}
}
