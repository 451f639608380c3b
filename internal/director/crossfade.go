package director

import (
	"lumen/internal/audio"
	"lumen/internal/fixture"
	"lumen/internal/program"
)

// DefaultCrossfadeSeconds is the fixed transition length between programs.
const DefaultCrossfadeSeconds = 3.0

// progressEpsilon absorbs accumulated float drift so a fade driven at a fixed
// tick rate (duration/delta ticks) completes on its scheduled tick instead of
// one late.
const progressEpsilon = 1e-9

// snapshot captures fixture output at a transition start, indexed exactly
// like the registry's flattened view.
type snapshot struct {
	colors      []fixture.Color
	intensities []float64
}

func captureSnapshot(reg *fixture.Registry) snapshot {
	all := reg.All()
	s := snapshot{
		colors:      make([]fixture.Color, len(all)),
		intensities: make([]float64, len(all)),
	}
	for i, f := range all {
		s.colors[i] = f.Color
		s.intensities[i] = f.Intensity
	}
	return s
}

// CrossfadeEngine is the two-state machine that moves the rig between
// programs. While settled it evaluates the current program directly; while
// transitioning it evaluates only the incoming program and blends it against
// the snapshot taken when the transition started — the outgoing program is
// never re-evaluated after that point.
type CrossfadeEngine struct {
	duration float64

	current     program.ID
	target      program.ID
	progress    float64
	crossfading bool
	snap        snapshot
}

// NewCrossfadeEngine starts settled on the given program. A non-positive
// duration makes transitions complete on their first tick.
func NewCrossfadeEngine(initial program.ID, duration float64) *CrossfadeEngine {
	return &CrossfadeEngine{duration: duration, current: initial, target: initial}
}

// Current returns the settled program, or the outgoing one mid-transition.
func (e *CrossfadeEngine) Current() program.ID { return e.current }

// Target returns the incoming program while transitioning; otherwise it
// equals Current.
func (e *CrossfadeEngine) Target() program.ID { return e.target }

// Crossfading reports whether a transition is in flight.
func (e *CrossfadeEngine) Crossfading() bool { return e.crossfading }

// Progress returns the transition progress in [0,1].
func (e *CrossfadeEngine) Progress() float64 { return e.progress }

// Advance runs one frame. A change of desired program is only honored from
// the settled state: while a transition is in flight, a desired program that
// differs from both endpoints is deliberately ignored until the transition
// completes, so rapidly oscillating mood classification cannot thrash the rig.
func (e *CrossfadeEngine) Advance(desired program.ID, t, delta float64, frame audio.Frame, reg *fixture.Registry) {
	if !e.crossfading && desired != e.current {
		e.snap = captureSnapshot(reg)
		e.target = desired
		e.progress = 0
		e.crossfading = true
	}

	if !e.crossfading {
		program.Lookup(e.current)(t, frame, reg)
		return
	}

	// A frame hitch must clamp rather than overshoot so the blend stays
	// well-defined.
	if e.duration > 0 {
		e.progress += delta / e.duration
	} else {
		e.progress = 1
	}
	if e.progress >= 1-progressEpsilon {
		e.progress = 1
	}

	program.Lookup(e.target)(t, frame, reg)

	k := easeInOut(e.progress)
	for i, f := range reg.All() {
		f.Color = e.snap.colors[i].Lerp(f.Color, k)
		f.Intensity = lerp(e.snap.intensities[i], f.Intensity, k)
	}

	if e.progress >= 1 {
		e.current = e.target
		e.crossfading = false
		e.snap = snapshot{}
	}
}

// easeInOut is the quadratic ease applied to blend progress.
func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	d := 1 - p
	return 1 - 2*d*d
}

func lerp(a, b, k float64) float64 {
	return a + (b-a)*k
}
