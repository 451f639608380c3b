// Package program holds the library of lighting programs: pure, time- and
// audio-driven render functions, one per visual mood. Each call rewrites the
// live target state (color, intensity, aim) of every fixture in the registry;
// nothing is retained between calls beyond what time and the audio frame
// re-derive, so a program can be evaluated at any instant in isolation.
package program

import (
	"fmt"

	"lumen/internal/audio"
	"lumen/internal/fixture"
)

// ID identifies one program. IDs are stable and dense in [1, Count].
type ID int

const (
	Aggressive  ID = 1
	ColdAmbient ID = 2
	Balanced    ID = 3
	Building    ID = 4
	WarmAmbient ID = 5
	Chaos       ID = 6
	LowEnergy   ID = 7
	BassHeavy   ID = 8
	Euphoric    ID = 9
	Silence     ID = 10
	Ritualistic ID = 11
	Glitch      ID = 12

	// Count is the number of programs in the library.
	Count = 12
)

// Valid reports whether id names a program in the library.
func (id ID) Valid() bool {
	return id >= 1 && id <= Count
}

func (id ID) String() string {
	if int(id) >= 1 && int(id) <= len(names) {
		return names[id-1]
	}
	return fmt.Sprintf("program(%d)", int(id))
}

var names = [Count]string{
	"aggressive",
	"cold-ambient",
	"balanced",
	"building",
	"warm-ambient",
	"chaos",
	"low-energy",
	"bass-heavy",
	"euphoric",
	"silence",
	"ritualistic",
	"glitch",
}

// RenderFunc mutates every fixture's live target state for one frame.
type RenderFunc func(t float64, frame audio.Frame, reg *fixture.Registry)

var table = [Count]RenderFunc{
	Aggressive - 1:  renderAggressive,
	ColdAmbient - 1: renderColdAmbient,
	Balanced - 1:    renderBalanced,
	Building - 1:    renderBuilding,
	WarmAmbient - 1: renderWarmAmbient,
	Chaos - 1:       renderChaos,
	LowEnergy - 1:   renderLowEnergy,
	BassHeavy - 1:   renderBassHeavy,
	Euphoric - 1:    renderEuphoric,
	Silence - 1:     renderSilence,
	Ritualistic - 1: renderRitualistic,
	Glitch - 1:      renderGlitch,
}

// Lookup returns the render function for id. Out-of-range ids resolve to the
// balanced default so a corrupted selection can never panic mid-show.
func Lookup(id ID) RenderFunc {
	if !id.Valid() {
		return table[Balanced-1]
	}
	return table[id-1]
}

// IDs lists every program id in order.
func IDs() []ID {
	ids := make([]ID, Count)
	for i := range ids {
		ids[i] = ID(i + 1)
	}
	return ids
}
