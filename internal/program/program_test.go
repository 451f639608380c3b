package program

import (
	"testing"

	"lumen/internal/audio"
	"lumen/internal/fixture"
)

func testRegistry(t *testing.T, counts fixture.Counts) *fixture.Registry {
	t.Helper()
	reg, err := fixture.NewRegistry(counts, nil)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	return reg
}

func fullRig(t *testing.T) *fixture.Registry {
	return testRegistry(t, fixture.Counts{
		FrontSpots:  4,
		SideSpots:   4,
		WashLights:  6,
		EffectSpots: 4,
		Strobes:     2,
	})
}

func TestLookupCoversEveryID(t *testing.T) {
	for _, id := range IDs() {
		if Lookup(id) == nil {
			t.Errorf("Lookup(%s) is nil", id)
		}
	}
}

func TestLookupFallsBackToBalanced(t *testing.T) {
	for _, id := range []ID{0, -3, Count + 1, 99} {
		fn := Lookup(id)
		if fn == nil {
			t.Fatalf("Lookup(%d) is nil", id)
		}
		// The fallback must render something: run it and check it matches
		// the balanced program's output on an identical rig.
		a, b := fullRig(t), fullRig(t)
		frame := audio.Frame{Energy: 0.5}
		fn(1.0, frame, a)
		Lookup(Balanced)(1.0, frame, b)
		for i := range a.All() {
			if a.All()[i].Intensity != b.All()[i].Intensity || a.All()[i].Color != b.All()[i].Color {
				t.Fatalf("Lookup(%d) does not render the balanced program", id)
			}
		}
	}
}

func TestIDStrings(t *testing.T) {
	cases := map[ID]string{
		Aggressive:  "aggressive",
		Balanced:    "balanced",
		LowEnergy:   "low-energy",
		Silence:     "silence",
		Glitch:      "glitch",
		ID(0):  "program(0)",
		ID(13): "program(13)",
	}
	for id, want := range cases {
		if got := id.String(); got != want {
			t.Errorf("ID(%d).String() = %q, want %q", int(id), got, want)
		}
	}
}

func TestEveryProgramRendersFullAndEmptyRigs(t *testing.T) {
	frames := []audio.Frame{
		{},
		{Energy: 1, Beat: true, Bands: audio.Bands{SubBass: 1, Bass: 1, LowMid: 1, Mid: 1, HighMid: 1, Treble: 1}},
	}
	for _, id := range IDs() {
		fn := Lookup(id)
		for _, frame := range frames {
			empty := testRegistry(t, fixture.Counts{})
			fn(0, frame, empty)
			fn(123.456, frame, empty)

			full := fullRig(t)
			fn(0, frame, full)
			fn(123.456, frame, full)
			for i, f := range full.All() {
				if f.Intensity < 0 {
					t.Errorf("%s left fixture %d at negative intensity %v", id, i, f.Intensity)
				}
			}
		}
	}
}

func TestProgramsDriveEveryFixture(t *testing.T) {
	// For the always-lit programs a hot frame must leave every non-strobe
	// fixture carrying intensity.
	frame := audio.Frame{Energy: 0.8, Beat: true, Bands: audio.Bands{Bass: 0.9, SubBass: 0.7}}
	always := []ID{Aggressive, ColdAmbient, Balanced, WarmAmbient, Chaos, BassHeavy, Euphoric, Ritualistic}
	for _, id := range always {
		reg := fullRig(t)
		Lookup(id)(2.0, frame, reg)
		for i, f := range reg.All() {
			if f.Category == fixture.Strobe {
				continue
			}
			if f.Intensity <= 0 {
				t.Errorf("%s left non-strobe fixture %d dark", id, i)
			}
		}
	}
}

func TestSilenceKeepsRigDarkBetweenBeats(t *testing.T) {
	reg := fullRig(t)
	Lookup(Silence)(5, audio.Frame{Energy: 0.4}, reg)
	for i, f := range reg.All() {
		if f.Intensity != 0 {
			t.Fatalf("fixture %d lit during silence without a beat: %v", i, f.Intensity)
		}
	}
}

func TestSilenceFlashesOneStrobeOnBeat(t *testing.T) {
	reg := fullRig(t)
	Lookup(Silence)(5, audio.Frame{Beat: true}, reg)
	lit := 0
	for _, f := range reg.All() {
		if f.Intensity > 0 {
			lit++
			if f.Category != fixture.Strobe {
				t.Fatalf("silence beat lit a %s", f.Category)
			}
			if f.Intensity != 3 {
				t.Fatalf("flash intensity = %v, want 3", f.Intensity)
			}
		}
	}
	if lit != 1 {
		t.Fatalf("silence beat lit %d fixtures, want 1", lit)
	}
}

func TestSilenceBeatFallsBackWithoutStrobes(t *testing.T) {
	reg := testRegistry(t, fixture.Counts{WashLights: 2})
	Lookup(Silence)(0, audio.Frame{Beat: true}, reg)
	if reg.All()[0].Intensity != 3 {
		t.Fatalf("expected first fixture to flash, got %v", reg.All()[0].Intensity)
	}
}

func TestLowEnergyLightsKeyAndAccentOnly(t *testing.T) {
	reg := fullRig(t)
	// Dirty the rig first so the blackout is observable.
	Lookup(Chaos)(1, audio.Frame{Energy: 1}, reg)
	Lookup(LowEnergy)(2, audio.Frame{Energy: 0.05}, reg)

	key := reg.SpotLike()[0]
	if key.Intensity != 0.9 {
		t.Fatalf("key intensity = %v, want 0.9", key.Intensity)
	}
	if key.Target != (fixture.Vec3{X: 0, Y: 1, Z: 1.5}) {
		t.Fatalf("key aimed at %+v", key.Target)
	}
	accent := reg.Category(fixture.WashLight)[0]
	if accent.Intensity != 0.15 {
		t.Fatalf("accent intensity = %v, want 0.15", accent.Intensity)
	}
	for _, f := range reg.All() {
		if f == key || f == accent {
			continue
		}
		if f.Intensity != 0 {
			t.Fatalf("%s fixture lit at %v during low-energy override", f.Category, f.Intensity)
		}
	}
}

func TestLowEnergyOnEmptyRig(t *testing.T) {
	reg := testRegistry(t, fixture.Counts{})
	Lookup(LowEnergy)(0, audio.Frame{}, reg) // must not panic
}

func TestGlitchIsDeterministic(t *testing.T) {
	frame := audio.Frame{Energy: 0.6}
	a, b := fullRig(t), fullRig(t)
	for _, tt := range []float64{0, 0.25, 1.7, 42.42} {
		Lookup(Glitch)(tt, frame, a)
		Lookup(Glitch)(tt, frame, b)
		for i := range a.All() {
			fa, fb := a.All()[i], b.All()[i]
			if fa.Intensity != fb.Intensity || fa.Color != fb.Color || fa.Target != fb.Target {
				t.Fatalf("glitch diverged at t=%v fixture %d", tt, i)
			}
		}
	}
}

func TestHash01Range(t *testing.T) {
	for index := 0; index < 64; index++ {
		for step := 0; step < 200; step++ {
			v := hash01(index, float64(step)*0.037)
			if v < 0 || v >= 1 {
				t.Fatalf("hash01(%d, %v) = %v out of [0,1)", index, float64(step)*0.037, v)
			}
		}
	}
}

func TestHash01StableWithinQuantum(t *testing.T) {
	// Time is quantized at noiseRate steps; samples inside one step agree.
	a := hash01(3, 1.00)
	b := hash01(3, 1.04)
	if a != b {
		t.Fatalf("hash01 changed within one time quantum: %v vs %v", a, b)
	}
	c := hash01(3, 2.0)
	if a == c {
		t.Fatalf("hash01 did not change across time quanta")
	}
}

func TestBuildingSnapsOnBeat(t *testing.T) {
	reg := fullRig(t)
	Lookup(Building)(3, audio.Frame{Energy: 0.3, Beat: true}, reg)
	for i, f := range reg.All() {
		if f.Color != (fixture.Color{R: 1, G: 1, B: 1}) {
			t.Fatalf("fixture %d color %+v on building beat, want white", i, f.Color)
		}
		if f.Intensity != 3.5 {
			t.Fatalf("fixture %d intensity %v on building beat, want 3.5", i, f.Intensity)
		}
	}
}
