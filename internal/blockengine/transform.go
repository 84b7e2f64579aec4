package blockengine

import (
	"math"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
)

// Mode is the block context's traversal mode (spec.md §3 "Block
// context"): DEFINITION is the block's own top-level definition build,
// NESTED_DEFINITION is reached while inlining a block referenced from
// within another block's definition, INSTANTIATION is a top-level
// INSERT.
type Mode int

const (
	Definition Mode = iota
	NestedDefinition
	Instantiation
)

// insertionTransform builds the affine composition of spec.md §4.5:
//
//	T = translate(-basePoint) . scale(xScale,yScale) . rotate(-rotation*pi/180) . translate(position)
//
// then, for an INSTANTIATION context only, right-multiplies
// translate(offset) to account for the block's stored vertex offset. If
// the INSERT's extrusion Z is negative, a post scale(-1,1) is composed
// (spec.md: "compose a post scale(-1, 1)").
func insertionTransform(ins dxf.Entity, basePoint geom.Point, offset geom.Point, mode Mode) geom.Matrix {
	xScale, yScale := 1.0, 1.0
	if ins.HasScale {
		xScale, yScale = ins.XScale, ins.YScale
		if xScale == 0 {
			xScale = 1
		}
		if yScale == 0 {
			yScale = 1
		}
	}

	position := geom.Pt(ins.Position.X, ins.Position.Y)
	rotation := -ins.Rotation * math.Pi / 180

	t := geom.Translate(position.X, position.Y).
		Mul(geom.Rotate(rotation)).
		Mul(geom.Scale(xScale, yScale)).
		Mul(geom.Translate(-basePoint.X, -basePoint.Y))

	if mode == Instantiation {
		t = t.Mul(geom.Translate(offset.X, offset.Y))
	}

	if ins.HasExtrusion && ins.Extrusion.Z < 0 {
		t = geom.Scale(-1, 1).Mul(t)
	}

	return t
}
