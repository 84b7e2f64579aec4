package dxfcolor

import "math"

// contrastThreshold is the minimum acceptable contrast ratio before a
// color gets nudged (spec.md §4.10: "falls below 1.5").
const contrastThreshold = 1.5

// srgbToLinear converts one sRGB component in [0,1] to linear light,
// per the W3C relative-luminance formula.
func srgbToLinear(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance returns the W3C relative luminance of c, in [0,1].
func RelativeLuminance(c RGBA) float64 {
	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	b := srgbToLinear(c.B)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the W3C contrast ratio between two colors
// (always >= 1).
func ContrastRatio(a, b RGBA) float64 {
	la := RelativeLuminance(a) + 0.05
	lb := RelativeLuminance(b) + 0.05
	if la < lb {
		la, lb = lb, la
	}
	return la / lb
}

// CorrectForContrast adjusts fg so it remains legible against bg, applied
// only at the final GPU-side color transform (spec.md §4.10), never to
// the colors stored in the scene's batches.
//
// Pure black against pure white (or vice versa) is returned unchanged;
// pure black on pure black becomes RGB(1, 1, 1) and pure white on pure
// white becomes RGB(0, 0, 0). Otherwise, if the contrast ratio is below
// contrastThreshold,
// the foreground's lightness is nudged away from the background's via
// HLS lighten/darken until the ratio clears the threshold (or a small
// iteration cap is hit, to bound the cost of the nudge).
func CorrectForContrast(fg, bg RGBA) RGBA {
	if isPureBlack(fg) && isPureWhite(bg) {
		return fg
	}
	if isPureWhite(fg) && isPureBlack(bg) {
		return fg
	}
	if isPureBlack(fg) && isPureBlack(bg) {
		return RGB(1, 1, 1)
	}
	if isPureWhite(fg) && isPureWhite(bg) {
		return RGB(0, 0, 0)
	}

	if ContrastRatio(fg, bg) >= contrastThreshold {
		return fg
	}

	h, s, l := RGBToHSL(fg)
	bgLum := RelativeLuminance(bg)
	lighten := bgLum < 0.5

	const step = 0.05
	const maxIterations = 16
	adjusted := fg
	for i := 0; i < maxIterations; i++ {
		if lighten {
			l = math.Min(1, l+step)
		} else {
			l = math.Max(0, l-step)
		}
		adjusted = HSL(h, s, l)
		if ContrastRatio(adjusted, bg) >= contrastThreshold {
			break
		}
	}
	return adjusted
}

func isPureBlack(c RGBA) bool { return c.R == 0 && c.G == 0 && c.B == 0 }
func isPureWhite(c RGBA) bool { return c.R == 1 && c.G == 1 && c.B == 1 }
