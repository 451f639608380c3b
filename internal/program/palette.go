package program

import (
	"math"

	"lumen/internal/fixture"
)

// Named linear-RGB colors shared by the program palettes.
var (
	colorRed     = fixture.Color{R: 1, G: 0.02, B: 0.02}
	colorWhite   = fixture.Color{R: 1, G: 1, B: 1}
	colorBlue    = fixture.Color{R: 0.05, G: 0.15, B: 1}
	colorCyan    = fixture.Color{R: 0.05, G: 0.85, B: 1}
	colorAmber   = fixture.Color{R: 1, G: 0.55, B: 0.08}
	colorGold    = fixture.Color{R: 1, G: 0.78, B: 0.16}
	colorViolet  = fixture.Color{R: 0.55, G: 0.1, B: 1}
	colorCrimson = fixture.Color{R: 0.85, G: 0.05, B: 0.2}
	colorOrange  = fixture.Color{R: 1, G: 0.35, B: 0.02}
	colorMagenta = fixture.Color{R: 1, G: 0.05, B: 0.75}
	colorDeepRed = fixture.Color{R: 0.6, G: 0.01, B: 0.01}
)

// brandPalette is the rotating house palette of the balanced program.
var brandPalette = []fixture.Color{colorGold, colorMagenta, colorCyan, colorViolet, colorAmber}

// hotPalette is the rapid-cycling palette of the chaos program.
var hotPalette = []fixture.Color{colorRed, colorOrange, colorMagenta, colorWhite, colorGold}

// ritualPalette cycles gold, violet, crimson across the rig.
var ritualPalette = []fixture.Color{colorGold, colorViolet, colorCrimson}

// glitchPalette is the swap set of the glitch program.
var glitchPalette = []fixture.Color{colorCyan, colorMagenta, colorWhite, colorRed, colorBlue}

// hue converts a hue angle (any real number, wraps at 1.0 per revolution) to a
// fully saturated linear RGB color.
func hue(h float64) fixture.Color {
	h = h - math.Floor(h)
	sector := h * 6
	frac := sector - math.Floor(sector)
	switch int(sector) % 6 {
	case 0:
		return fixture.Color{R: 1, G: frac, B: 0}
	case 1:
		return fixture.Color{R: 1 - frac, G: 1, B: 0}
	case 2:
		return fixture.Color{R: 0, G: 1, B: frac}
	case 3:
		return fixture.Color{R: 0, G: 1 - frac, B: 1}
	case 4:
		return fixture.Color{R: frac, G: 0, B: 1}
	default:
		return fixture.Color{R: 1, G: 0, B: 1 - frac}
	}
}
