package program

import (
	"math"

	"lumen/internal/audio"
	"lumen/internal/fixture"
)

// focalPoint is the fixed spot the low-energy key light lands on.
var focalPoint = fixture.Vec3{X: 0, Y: 1, Z: 1.5}

// sweepTarget aims f along a circle on the stage floor.
func sweepTarget(f *fixture.Fixture, t, speed, radius, phase float64) {
	f.Target = fixture.Vec3{
		X: f.Position.X*0.3 + radius*math.Sin(t*speed+phase),
		Y: 0,
		Z: f.Position.Z*0.2 + radius*math.Cos(t*speed+phase),
	}
}

// relocateTarget throws f's aim to a hash-derived point on the floor.
func relocateTarget(f *fixture.Fixture, index int, t float64) {
	f.Target = fixture.Vec3{
		X: (hash01(index, t) - 0.5) * 10,
		Y: 0,
		Z: (hash01(index+389, t) - 0.5) * 8,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// 1: red/white alternation, beat-synced full-intensity strobes, fast sweeps.
func renderAggressive(t float64, frame audio.Frame, reg *fixture.Registry) {
	for i, f := range reg.All() {
		if f.Category == fixture.Strobe {
			f.Color = colorWhite
			f.Intensity = 0
			if frame.Beat {
				f.Intensity = 6
			}
			continue
		}
		f.Color = colorRed
		if i%2 == 1 {
			f.Color = colorWhite
		}
		f.Intensity = 1.2 + 2.4*frame.Energy
		if frame.Beat {
			f.Intensity += 1.5
		}
		if f.Category.SpotLike() {
			sweepTarget(f, t, 5.2, 4, float64(i)*0.9)
		}
	}
}

// 2: blue/cyan drift, one slow synchronized sweep, no strobe.
func renderColdAmbient(t float64, frame audio.Frame, reg *fixture.Registry) {
	drift := 0.5 + 0.5*math.Sin(t*0.3)
	for i, f := range reg.All() {
		if f.Category == fixture.Strobe {
			f.Color = colorCyan
			f.Intensity = 0
			continue
		}
		k := drift
		if i%2 == 1 {
			k = 1 - drift
		}
		f.Color = colorBlue.Lerp(colorCyan, k)
		f.Intensity = 0.8 + 0.9*frame.Energy
		if f.Category.SpotLike() {
			sweepTarget(f, t, 0.4, 3, 0)
		}
	}
}

// 3: rotating brand palette, gold strobe accent on beat. This is the default
// program for unrecognized moods.
func renderBalanced(t float64, frame audio.Frame, reg *fixture.Registry) {
	shift := int(t * 0.5)
	for i, f := range reg.All() {
		if f.Category == fixture.Strobe {
			f.Color = colorGold
			f.Intensity = 0
			if frame.Beat {
				f.Intensity = 4
			}
			continue
		}
		f.Color = brandPalette[(i+shift)%len(brandPalette)]
		f.Intensity = 1.0 + 1.6*frame.Energy
		if frame.Beat {
			f.Intensity += 0.8
		}
		if f.Category.SpotLike() {
			sweepTarget(f, t, 1.2, 3.5, float64(i)*0.7)
		}
	}
}

// 4: near-dark baseline; on beat a full-white snap flash and random aim
// relocation.
func renderBuilding(t float64, frame audio.Frame, reg *fixture.Registry) {
	for i, f := range reg.All() {
		if frame.Beat {
			f.Color = colorWhite
			f.Intensity = 3.5
			if f.Category.SpotLike() {
				relocateTarget(f, i, t)
			}
			continue
		}
		f.Color = colorAmber.Scale(0.5)
		f.Intensity = 0.06 + 0.5*frame.Energy
		if f.Category == fixture.Strobe {
			f.Intensity = 0
		}
	}
}

// 5: amber/gold breathing with candle flicker, static aim, no strobe.
func renderWarmAmbient(t float64, frame audio.Frame, reg *fixture.Registry) {
	for i, f := range reg.All() {
		if f.Category == fixture.Strobe {
			f.Color = colorAmber
			f.Intensity = 0
			continue
		}
		f.Color = colorAmber
		if i%2 == 1 {
			f.Color = colorGold
		}
		breath := 0.7 + 0.5*math.Sin(t*0.8+float64(i)*0.6)
		flicker := 0.12 * (hash01(i, t) - 0.5)
		f.Intensity = math.Max(0, (0.55+0.7*frame.Energy)*breath+flicker)
		if f.Category.SpotLike() {
			f.Target = fixture.Vec3{X: f.Position.X * 0.3, Y: 0, Z: 0}
		}
	}
}

// 6: rapid hot-palette cycling, continuous strobing, beat relocation.
func renderChaos(t float64, frame audio.Frame, reg *fixture.Registry) {
	shift := int(t * 6)
	strobeOn := t*9-math.Floor(t*9) < 0.45
	for i, f := range reg.All() {
		f.Color = hotPalette[(i+shift)%len(hotPalette)]
		if f.Category == fixture.Strobe {
			f.Intensity = 0
			if strobeOn {
				f.Intensity = 5
			}
			continue
		}
		f.Intensity = 1.4 + 2.0*frame.Energy
		if frame.Beat {
			f.Intensity += 1.2
		}
		if f.Category.SpotLike() {
			if frame.Beat {
				relocateTarget(f, i, t)
			} else {
				sweepTarget(f, t, 3.4, 4, float64(i)*1.3)
			}
		}
	}
}

// 7: the low-energy override. Everything dark except one key spot on the
// focal point and one faint accent wash. Never reachable via the mood table.
func renderLowEnergy(_ float64, _ audio.Frame, reg *fixture.Registry) {
	for _, f := range reg.All() {
		f.Intensity = 0
	}
	if spots := reg.SpotLike(); len(spots) > 0 {
		key := spots[0]
		key.Color = fixture.Color{R: 1, G: 0.9, B: 0.75}
		key.Intensity = 0.9
		key.Target = focalPoint
	}
	accents := reg.Category(fixture.WashLight)
	if len(accents) == 0 {
		accents = reg.PointLike()
	}
	if len(accents) > 0 {
		accent := accents[0]
		accent.Color = colorBlue
		accent.Intensity = 0.15
	}
}

// 8: a bass-gated color/intensity wave traveling across the fixture array.
func renderBassHeavy(t float64, frame audio.Frame, reg *fixture.Registry) {
	gate := clamp01(frame.Bands.Bass*1.4 + frame.Bands.SubBass*0.6)
	for i, f := range reg.All() {
		w := 0.5 + 0.5*math.Sin(t*2.2-float64(i)*0.55)
		f.Color = colorDeepRed.Lerp(colorViolet, w)
		f.Intensity = gate * (0.3 + 2.2*w)
		if f.Category == fixture.Strobe {
			f.Intensity = gate * w
		}
		if f.Category.SpotLike() {
			sweepTarget(f, t, 0.9, 2.5, float64(i)*0.55)
		}
	}
}

// 9: continuous per-fixture hue rotation, white strobes on beat.
func renderEuphoric(t float64, frame audio.Frame, reg *fixture.Registry) {
	n := reg.Count()
	for i, f := range reg.All() {
		if f.Category == fixture.Strobe {
			f.Color = colorWhite
			f.Intensity = 0
			if frame.Beat {
				f.Intensity = 6
			}
			continue
		}
		f.Color = hue(t*0.25 + float64(i)/float64(n))
		f.Intensity = 1.1 + 1.8*frame.Energy
		if frame.Beat {
			f.Intensity += 1.0
		}
		if f.Category.SpotLike() {
			sweepTarget(f, t, 2.0, 3.5, float64(i))
		}
	}
}

// 10: the idle program. Everything off; a single strobe pops on the beat.
func renderSilence(_ float64, frame audio.Frame, reg *fixture.Registry) {
	for _, f := range reg.All() {
		f.Intensity = 0
	}
	if !frame.Beat {
		return
	}
	flash := reg.Category(fixture.Strobe)
	if len(flash) == 0 {
		flash = reg.All()
	}
	if len(flash) > 0 {
		flash[0].Color = colorWhite
		flash[0].Intensity = 3
	}
}

// 11: slow circular sweeps in gold, violet, and crimson, faint beat accent.
func renderRitualistic(t float64, frame audio.Frame, reg *fixture.Registry) {
	n := reg.Count()
	for i, f := range reg.All() {
		f.Color = ritualPalette[i%len(ritualPalette)]
		if f.Category == fixture.Strobe {
			f.Intensity = 0
			continue
		}
		f.Intensity = 0.7 + 0.8*frame.Energy
		if frame.Beat {
			f.Intensity += 0.35
		}
		if f.Category.SpotLike() {
			sweepTarget(f, t, 0.5, 3, 2*math.Pi*float64(i)/float64(max(n, 1)))
		}
	}
}

// 12: deterministic pseudo-random blackout/flicker with rapid color swaps.
// All randomness is hash noise over (fixture index, time), so identical
// inputs replay identically.
func renderGlitch(t float64, frame audio.Frame, reg *fixture.Registry) {
	for i, f := range reg.All() {
		r := hash01(i, t)
		swap := int(hash01(i*31+7, t) * float64(len(glitchPalette)))
		f.Color = glitchPalette[swap%len(glitchPalette)]
		if r < 0.35 {
			f.Intensity = 0
			continue
		}
		f.Intensity = (0.4 + 2.0*(r-0.35)/0.65) * (0.5 + 0.5*frame.Energy)
		if f.Category.SpotLike() {
			relocateTarget(f, i, t)
		}
	}
}
