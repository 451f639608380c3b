// Package audio defines the per-frame analysis packet the lighting director
// consumes. Frames are produced by an external analyzer (internal/analysis in
// this repository) and are treated as immutable snapshots for the duration of
// one director update.
package audio

import "strings"

// Mood is the categorical classification label attached to a stretch of audio.
// It selects which lighting program the director should be running.
type Mood string

const (
	MoodAggressive  Mood = "aggressive"
	MoodColdAmbient Mood = "cold_ambient"
	MoodBalanced    Mood = "balanced_medium"
	MoodBuilding    Mood = "building"
	MoodWarmAmbient Mood = "warm_ambient"
	MoodChaos       Mood = "chaos"
	MoodBassHeavy   Mood = "bass_heavy"
	MoodEuphoric    Mood = "euphoric"
	MoodSilence     Mood = "silence"
	MoodRitualistic Mood = "ritualistic"
	MoodGlitch      Mood = "glitch"
)

// Moods lists every externally reachable mood in a stable order.
func Moods() []Mood {
	return []Mood{
		MoodAggressive,
		MoodColdAmbient,
		MoodBalanced,
		MoodBuilding,
		MoodWarmAmbient,
		MoodChaos,
		MoodBassHeavy,
		MoodEuphoric,
		MoodSilence,
		MoodRitualistic,
		MoodGlitch,
	}
}

// ParseMood normalizes raw classifier output into a Mood. It never fails:
// unrecognized labels pass through unchanged and the selector maps them to
// the balanced default program.
func ParseMood(raw string) Mood {
	return Mood(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether m is one of the externally reachable moods.
func (m Mood) Known() bool {
	switch m {
	case MoodAggressive, MoodColdAmbient, MoodBalanced, MoodBuilding,
		MoodWarmAmbient, MoodChaos, MoodBassHeavy, MoodEuphoric,
		MoodSilence, MoodRitualistic, MoodGlitch:
		return true
	}
	return false
}

// Bands carries the six named band energies, each normalized into [0,1].
type Bands struct {
	SubBass float64
	Bass    float64
	LowMid  float64
	Mid     float64
	HighMid float64
	Treble  float64
}

// Frame is one analysis packet. The zero value is a legal "no signal" frame:
// missing fields read as zero energy and no beat.
type Frame struct {
	// Energy is the overall normalized loudness in [0,1].
	Energy float64
	// Bands holds the per-band energies in [0,1].
	Bands Bands
	// Beat is true only on the exact onset frame.
	Beat bool
}
