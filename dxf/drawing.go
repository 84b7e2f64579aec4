// Package dxf defines the parsed-drawing object model the scene builder
// consumes (spec.md §6, "Input drawing object" collaborator contract).
// The DXF tokenizer/parser that produces values of these types is an
// external collaborator and is out of scope for this module — callers are
// expected to populate a Drawing however they obtain one.
package dxf

// Color sentinels used by Entity.ColorIndex / Entity.Color resolution
// (spec.md C10).
const (
	ColorByBlock = -2
	ColorByLayer = -1
)

// Header holds DXF header variables as a loosely typed map, mirroring the
// source format's "$VARNAME -> value" convention. Known numeric variables
// used by the engine have typed accessors below.
type Header map[string]any

// Float returns a header variable as float64, or def if absent or the
// wrong type.
func (h Header) Float(name string, def float64) float64 {
	if v, ok := h[name]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

// Int returns a header variable as int, or def if absent or the wrong type.
func (h Header) Int(name string, def int) int {
	if v, ok := h[name]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return def
}

// AngleBase is $ANGBASE: the angle, in radians, added to all arc/ellipse
// start and end angles.
func (h Header) AngleBase() float64 { return h.Float("$ANGBASE", 0) }

// AngleDirClockwise is $ANGDIR == 1: angles are measured clockwise.
func (h Header) AngleDirClockwise() bool { return h.Int("$ANGDIR", 0) == 1 }

// PointDisplayMode is $PDMODE: controls POINT entity rendering.
func (h Header) PointDisplayMode() int { return h.Int("$PDMODE", 0) }

// PointDisplaySize is $PDSIZE: the size of POINT entity markers.
func (h Header) PointDisplaySize() float64 { return h.Float("$PDSIZE", 0) }

// Layer is a drawing layer as referenced by Entity.Layer.
type Layer struct {
	Name  string
	Color int
}

// RawBlock is a named, reusable group of entities defined relative to
// BasePoint.
type RawBlock struct {
	Name      string
	BasePoint Vec2
	Entities  []Entity
}

// Vec2 is a 2D coordinate in drawing space.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D coordinate, used only for extrusion direction (we only
// examine the Z sign, per spec.md's X-mirroring-only OCS policy).
type Vec3 struct {
	X, Y, Z float64
}

// Tables groups the DXF table sections referenced by the engine.
type Tables struct {
	Layer LayerTable
}

// LayerTable maps a layer name to its definition.
type LayerTable struct {
	Layers map[string]Layer
}

// Drawing is the fully parsed input object model (spec.md §3 "Drawing
// input"): header variables, the layer and block tables, and the flat
// top-level entity stream. BlockOrder preserves the input block table's
// insertion order so that block processing is deterministic (spec.md §5).
type Drawing struct {
	Header     Header
	Tables     Tables
	Blocks     map[string]*RawBlock
	BlockOrder []string
	Entities   []Entity
}

// Layer looks up a layer by name, returning the zero Layer with color 0
// if absent (spec.md C10: "layer color ... 0 fallback").
func (d *Drawing) Layer(name string) Layer {
	if l, ok := d.Tables.Layer.Layers[name]; ok {
		return l
	}
	return Layer{Name: name, Color: 0}
}

// Block looks up a block definition by name.
func (d *Drawing) Block(name string) (*RawBlock, bool) {
	b, ok := d.Blocks[name]
	return b, ok
}
