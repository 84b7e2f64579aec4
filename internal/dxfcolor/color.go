// Package dxfcolor implements spec.md C10: BYLAYER/BYBLOCK color
// resolution, the AutoCAD Color Index (ACI) palette, and the optional
// contrast-correction pass.
//
// RGBA and the HSL constructor are grounded on the teacher's color.go
// (the same component-range-[0,1] RGBA struct and HSL-to-RGB conversion);
// the ACI palette and BYLAYER/BYBLOCK resolution are new domain logic the
// teacher has no analogue for, since gg never needed a fixed 256-entry
// indexed palette.
package dxfcolor

import "math"

// Sentinel color values, matching dxf.ColorByBlock / dxf.ColorByLayer.
const (
	ByBlock = -2
	ByLayer = -1
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color.
func RGB(r, g, b float64) RGBA { return RGBA{R: r, G: g, B: b, A: 1} }

// HSL creates a color from hue [0,360), saturation [0,1], lightness [0,1].
func HSL(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB(r+m, g+m, b+m)
}

// RGBToHSL converts c to hue/saturation/lightness.
func RGBToHSL(c RGBA) (h, s, l float64) {
	max := math.Max(c.R, math.Max(c.G, c.B))
	min := math.Min(c.R, math.Min(c.G, c.B))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case c.R:
		h = (c.G - c.B) / d
		if c.G < c.B {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	h *= 60
	return h, s, l
}

// Resolve implements the entity-color precedence of spec.md C10:
// colorIndex 0 => BYBLOCK, colorIndex 256 => BYLAYER, else the resolved
// index or true-color value. colorIndex and trueColor come from the DXF
// entity's ColorIndex/Color fields.
func Resolve(hasColorIndex bool, colorIndex int, trueColor int32) int32 {
	if hasColorIndex {
		switch colorIndex {
		case 0:
			return ByBlock
		case 256:
			return ByLayer
		default:
			return int32(colorIndex)
		}
	}
	return trueColor
}

// Dereference resolves a BYLAYER/BYBLOCK sentinel to a concrete color
// outside of any block context: BYLAYER dereferences to the layer color
// (falling back to 0), BYBLOCK has no containing instance and also falls
// back to the layer color.
func Dereference(color int32, layerColor int32) int32 {
	switch color {
	case ByLayer, ByBlock:
		if layerColor == 0 {
			return 0
		}
		return layerColor
	default:
		return color
	}
}

// DereferenceInstance resolves a color encountered inside a block
// definition at the point of top-level instantiation: BYBLOCK becomes the
// instance's own resolved color, BYLAYER becomes the (instance-side)
// layer's color.
func DereferenceInstance(color int32, instanceColor int32, layerColor int32) int32 {
	switch color {
	case ByBlock:
		return instanceColor
	case ByLayer:
		return layerColor
	default:
		return color
	}
}

// ACI returns the RGBA for a standard AutoCAD Color Index value
// (1-255; 0 and 256 are the BYBLOCK/BYLAYER sentinels and are not valid
// ACI lookups).
func ACI(index int32) RGBA {
	if index <= 0 || index > 255 {
		return RGB(0, 0, 0)
	}
	return aciPalette[index]
}
