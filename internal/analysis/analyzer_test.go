package analysis

import (
	"math"
	"testing"

	"lumen/internal/audio"
)

func sine(freq, amp, sampleRate float64, n int, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate+phase)
	}
	return out
}

func TestRMS(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Fatalf("rms(nil) = %v", got)
	}
	// A full-scale sine has RMS 1/sqrt(2).
	samples := sine(441, 1.0, 44100, 4410, 0)
	got := rms(samples)
	if math.Abs(got-1/math.Sqrt2) > 0.01 {
		t.Fatalf("rms(sine) = %v, want ~%v", got, 1/math.Sqrt2)
	}
}

func TestGoertzelIsolatesItsBin(t *testing.T) {
	const sr = 44100.0
	const n = 4096
	samples := sine(1000, 1.0, sr, n, 0)

	on := goertzel(samples, sr, 1000)
	if on < 0.8 {
		t.Fatalf("on-frequency magnitude %v, want near 1", on)
	}
	off := goertzel(samples, sr, 4000)
	if off > 0.05 {
		t.Fatalf("off-frequency magnitude %v, want near 0", off)
	}
}

func TestBandEnergiesSeparateBassFromTreble(t *testing.T) {
	const sr = 44100.0
	const n = 4096
	bass := bandEnergies(sine(110, 0.4, sr, n, 0), sr)
	if bass.Bass <= bass.Treble {
		t.Fatalf("110Hz tone: bass %v not above treble %v", bass.Bass, bass.Treble)
	}
	treble := bandEnergies(sine(7500, 0.4, sr, n, 0), sr)
	if treble.Treble <= treble.Bass {
		t.Fatalf("7.5kHz tone: treble %v not above bass %v", treble.Treble, treble.Bass)
	}
	if empty := bandEnergies(nil, sr); empty != (audio.Bands{}) {
		t.Fatalf("empty window produced %+v", empty)
	}
}

func TestAnalyzerSilenceStaysQuiet(t *testing.T) {
	a := NewAnalyzer(Options{})
	window := make([]float64, 1024)
	for i := 0; i < 200; i++ {
		frame, mood := a.Process(window)
		if frame.Beat {
			t.Fatalf("beat detected in pure silence at hop %d", i)
		}
		if frame.Energy > 0.1 {
			t.Fatalf("energy %v in pure silence at hop %d", frame.Energy, i)
		}
		if mood != audio.MoodSilence {
			t.Fatalf("mood %q in pure silence at hop %d", mood, i)
		}
	}
}

func TestAnalyzerDetectsImpulseBeats(t *testing.T) {
	a := NewAnalyzer(Options{SampleRate: 44100, Window: 1024})
	quiet := sine(110, 0.02, 44100, 1024, 0)
	loud := sine(110, 0.9, 44100, 1024, 0)

	// Establish a baseline first.
	for i := 0; i < 60; i++ {
		a.Process(quiet)
	}

	beats := 0
	for i := 0; i < 80; i++ {
		window := quiet
		if i%20 == 0 {
			window = loud
		}
		frame, _ := a.Process(window)
		if frame.Beat {
			if i%20 != 0 {
				t.Fatalf("beat on quiet hop %d", i)
			}
			beats++
		}
	}
	if beats < 3 {
		t.Fatalf("detected %d beats across 4 impulses", beats)
	}
}

func TestAnalyzerBeatRefractoryInterval(t *testing.T) {
	a := NewAnalyzer(Options{SampleRate: 44100, Window: 1024, MinBeatInterval: 0.5})
	quiet := sine(110, 0.02, 44100, 1024, 0)
	loud := sine(110, 0.9, 44100, 1024, 0)
	for i := 0; i < 60; i++ {
		a.Process(quiet)
	}

	// Two loud hops back to back: only the first may register.
	first, _ := a.Process(loud)
	second, _ := a.Process(loud)
	if !first.Beat {
		t.Fatal("onset hop not detected as beat")
	}
	if second.Beat {
		t.Fatal("beat re-fired inside the refractory interval")
	}
}

func TestAnalyzerMoodHoldSuppressesFlapping(t *testing.T) {
	a := NewAnalyzer(Options{SampleRate: 44100, Window: 1024, MoodHold: 10})
	quiet := make([]float64, 1024)
	loud := sine(110, 0.9, 44100, 1024, 0)

	var mood audio.Mood
	for i := 0; i < 40; i++ {
		_, mood = a.Process(quiet)
	}
	if mood != audio.MoodSilence {
		t.Fatalf("mood %q after silence", mood)
	}

	// 40 hops is under a second of audio; with a 10s hold the first label
	// change sticks regardless of what the loud stretch classifies as.
	_, first := a.Process(loud)
	for i := 0; i < 40; i++ {
		_, mood = a.Process(loud)
	}
	if mood != first {
		t.Fatalf("mood flapped from %q to %q inside the hold window", first, mood)
	}
}

func TestClassifyOrdering(t *testing.T) {
	cases := []struct {
		name        string
		energy      float64
		bands       audio.Bands
		beatDensity float64
		trend       float64
		flux        float64
		want        audio.Mood
	}{
		{"silence wins at any flux", 0.01, audio.Bands{}, 0, 0, 0.9, audio.MoodSilence},
		{"glitch", 0.5, audio.Bands{}, 0.1, 0, 0.5, audio.MoodGlitch},
		{"chaos", 0.9, audio.Bands{}, 0.8, 0, 0, audio.MoodChaos},
		{"aggressive", 0.75, audio.Bands{}, 0.6, 0, 0, audio.MoodAggressive},
		{"bass heavy", 0.5, audio.Bands{SubBass: 0.6, Bass: 0.6, Treble: 0.1}, 0.3, 0, 0, audio.MoodBassHeavy},
		{"euphoric", 0.6, audio.Bands{HighMid: 0.5, Treble: 0.5, Bass: 0.2}, 0.4, 0, 0, audio.MoodEuphoric},
		{"building", 0.4, audio.Bands{}, 0.2, 0.05, 0, audio.MoodBuilding},
		{"cold ambient", 0.2, audio.Bands{Treble: 0.4}, 0.2, 0, 0, audio.MoodColdAmbient},
		{"warm ambient", 0.2, audio.Bands{Bass: 0.4}, 0.2, 0, 0, audio.MoodWarmAmbient},
		{"ritualistic", 0.4, audio.Bands{Bass: 0.3, Treble: 0.3}, 0.1, 0, 0, audio.MoodRitualistic},
		{"balanced default", 0.5, audio.Bands{Bass: 0.3, Treble: 0.3}, 0.4, 0, 0, audio.MoodBalanced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.energy, tc.bands, tc.beatDensity, tc.trend, tc.flux)
			if got != tc.want {
				t.Fatalf("classify = %q, want %q", got, tc.want)
			}
		})
	}
}
