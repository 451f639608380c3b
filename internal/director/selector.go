// Package director orchestrates the show: it picks the desired program from
// the incoming mood, runs or crossfades the program library against the rig,
// and bounds the aggregate output, once per frame.
package director

import (
	"lumen/internal/audio"
	"lumen/internal/program"
)

// DefaultLowEnergyThreshold is the energy below which the low-energy override
// kicks in. Mirrors the tuning the show was authored against.
const DefaultLowEnergyThreshold = 0.15

// moodPrograms maps every externally reachable mood to its program.
var moodPrograms = map[audio.Mood]program.ID{
	audio.MoodAggressive:  program.Aggressive,
	audio.MoodColdAmbient: program.ColdAmbient,
	audio.MoodBalanced:    program.Balanced,
	audio.MoodBuilding:    program.Building,
	audio.MoodWarmAmbient: program.WarmAmbient,
	audio.MoodChaos:       program.Chaos,
	audio.MoodBassHeavy:   program.BassHeavy,
	audio.MoodEuphoric:    program.Euphoric,
	audio.MoodSilence:     program.Silence,
	audio.MoodRitualistic: program.Ritualistic,
	audio.MoodGlitch:      program.Glitch,
}

// ProgramFor returns the table entry for a mood and whether the mood is in
// the table. The low-energy override is not applied here.
func ProgramFor(mood audio.Mood) (program.ID, bool) {
	id, ok := moodPrograms[mood]
	return id, ok
}

// Selector is the pure (mood, energy) → program mapping. It keeps no memory
// of prior calls.
type Selector struct {
	// LowEnergyThreshold forces the low-energy override when the overall
	// energy drops below it, unless the mood is silence.
	LowEnergyThreshold float64
}

// Select resolves the desired program. Unrecognized moods fall back to the
// balanced default rather than erroring.
func (s Selector) Select(mood audio.Mood, energy float64) program.ID {
	if energy < s.LowEnergyThreshold && mood != audio.MoodSilence {
		return program.LowEnergy
	}
	id, ok := moodPrograms[mood]
	if !ok {
		return program.Balanced
	}
	return id
}
