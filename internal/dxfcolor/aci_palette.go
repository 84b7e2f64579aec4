package dxfcolor

// aciPalette holds the 256-entry AutoCAD Color Index palette. The first
// nine entries are the fixed standard colors; the hue ramp (10-249) and
// the grayscale ramp (250-255) are generated, which is how real DXF
// viewers reproduce the ACI table without embedding the full raw palette.
var aciPalette = buildACIPalette()

func buildACIPalette() [256]RGBA {
	var p [256]RGBA

	// Fixed standard colors, index 1-9.
	p[1] = RGB(1, 0, 0)       // red
	p[2] = RGB(1, 1, 0)       // yellow
	p[3] = RGB(0, 1, 0)       // green
	p[4] = RGB(0, 1, 1)       // cyan
	p[5] = RGB(0, 0, 1)       // blue
	p[6] = RGB(1, 0, 1)       // magenta
	p[7] = RGB(1, 1, 1)       // white/black (paper-dependent)
	p[8] = RGB(0.5, 0.5, 0.5) // dark gray
	p[9] = RGB(0.75, 0.75, 0.75)

	// Hue ramp: 10-249 cycles through 24 degrees-of-hue groups, each
	// group holding a 10-step lightness ramp down from full saturation.
	const hueSteps = 24
	const lightnessSteps = 10
	idx := 10
	for hueStep := 0; hueStep < hueSteps && idx <= 249; hueStep++ {
		hue := float64(hueStep) * (360.0 / hueSteps)
		for l := 0; l < lightnessSteps && idx <= 249; l++ {
			lightness := 0.5 - float64(l)*0.04
			p[idx] = HSL(hue, 1.0, lightness)
			idx++
		}
	}

	// Grayscale ramp: 250-255.
	for i := 250; i <= 255; i++ {
		gray := float64(i-250) / 5.0
		p[i] = RGB(gray, gray, gray)
	}

	return p
}
