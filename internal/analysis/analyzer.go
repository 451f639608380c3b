package analysis

import (
	"math"

	"lumen/internal/audio"
)

// Options tunes the Analyzer. Zero fields fall back to defaults suited to the
// 44.1kHz / 1024-sample hop regime.
type Options struct {
	SampleRate      float64
	Window          int
	BeatThreshold   float64
	MinBeatInterval float64 // seconds
	EnergyWindow    int     // hops in the trailing average
	BeatWindow      float64 // seconds of beat history for density
	MoodHold        float64 // minimum seconds between mood changes
}

// Analyzer tracks energy statistics across windows and classifies beats and
// moods. One instance serves one audio stream; it is not safe for concurrent
// use and the director never sees it, only its output frames.
type Analyzer struct {
	opts Options
	hop  float64 // seconds per processed window
	now  float64

	energyHistory []float64
	energySum     float64
	energyCount   int
	energyIndex   int

	noiseFloor float64
	peakEnergy float64
	trend      float64
	flux       float64
	prevBands  audio.Bands

	lastBeat  float64
	beatTimes []float64

	mood       audio.Mood
	moodSince  float64
	lastEnergy float64
}

// NewAnalyzer returns a ready-to-use Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Window <= 0 {
		opts.Window = 1024
	}
	if opts.BeatThreshold <= 1 {
		opts.BeatThreshold = 1.35
	}
	if opts.MinBeatInterval <= 0 {
		opts.MinBeatInterval = 0.16
	}
	if opts.EnergyWindow <= 0 {
		opts.EnergyWindow = 48
	}
	if opts.BeatWindow <= 0 {
		opts.BeatWindow = 2.0
	}
	if opts.MoodHold <= 0 {
		opts.MoodHold = 2.5
	}
	return &Analyzer{
		opts:          opts,
		hop:           float64(opts.Window) / opts.SampleRate,
		energyHistory: make([]float64, opts.EnergyWindow),
		noiseFloor:    1e-3,
		peakEnergy:    1e-2,
		mood:          audio.MoodSilence,
		lastBeat:      math.Inf(-1),
	}
}

// Process ingests one window of mono samples and returns the analysis frame
// and the current mood label. Windows are assumed contiguous.
func (a *Analyzer) Process(window []float64) (audio.Frame, audio.Mood) {
	a.now += a.hop

	energy := rms(window)
	if energy <= 0 {
		energy = 1e-9
	}

	// Slow noise floor and decaying peak envelope bound the normalization.
	a.noiseFloor = ema(a.noiseFloor, energy, 0.01)
	if energy > a.peakEnergy {
		a.peakEnergy = ema(a.peakEnergy, energy, 0.34)
	} else {
		a.peakEnergy = ema(a.peakEnergy, energy, 0.02)
	}
	if minPeak := a.noiseFloor * 1.5; a.peakEnergy < minPeak {
		a.peakEnergy = minPeak
	}

	a.energySum -= a.energyHistory[a.energyIndex]
	a.energyHistory[a.energyIndex] = energy
	a.energySum += energy
	a.energyIndex = (a.energyIndex + 1) % len(a.energyHistory)
	if a.energyCount < len(a.energyHistory) {
		a.energyCount++
	}
	avgEnergy := a.energySum / float64(max(a.energyCount, 1))

	energyNorm := clampUnit((energy - a.noiseFloor) / (a.peakEnergy - a.noiseFloor + 1e-9))
	a.trend = ema(a.trend, energyNorm-a.lastEnergy, 0.1)
	a.lastEnergy = energyNorm

	bands := bandEnergies(window, a.opts.SampleRate)
	a.flux = ema(a.flux, bandDelta(a.prevBands, bands), 0.2)
	a.prevBands = bands

	beat := a.detectBeat(energy, avgEnergy)
	if beat {
		a.lastBeat = a.now
		a.beatTimes = append(a.beatTimes, a.now)
	}
	a.pruneBeats()
	beatDensity := clampUnit(float64(len(a.beatTimes)) / a.opts.BeatWindow / 4.0)

	a.updateMood(energyNorm, bands, beatDensity)

	frame := audio.Frame{
		Energy: energyNorm,
		Bands:  bands,
		Beat:   beat,
	}
	return frame, a.mood
}

// Mood returns the current mood label without processing a window.
func (a *Analyzer) Mood() audio.Mood {
	return a.mood
}

func (a *Analyzer) detectBeat(energy, avgEnergy float64) bool {
	if avgEnergy <= 1e-9 {
		return false
	}
	if a.now-a.lastBeat < a.opts.MinBeatInterval {
		return false
	}
	return energy > a.opts.BeatThreshold*avgEnergy
}

func (a *Analyzer) pruneBeats() {
	cutoff := a.now - a.opts.BeatWindow
	idx := 0
	for _, ts := range a.beatTimes {
		if ts > cutoff {
			a.beatTimes[idx] = ts
			idx++
		}
	}
	a.beatTimes = a.beatTimes[:idx]
}

// updateMood reclassifies with a hold time so oscillating features cannot
// flap the label every hop.
func (a *Analyzer) updateMood(energyNorm float64, bands audio.Bands, beatDensity float64) {
	desired := classify(energyNorm, bands, beatDensity, a.trend, a.flux)
	if desired == a.mood {
		return
	}
	if a.now-a.moodSince < a.opts.MoodHold && a.moodSince > 0 {
		return
	}
	a.mood = desired
	a.moodSince = a.now
}

// classify is the heuristic feature → mood mapping. Rules are ordered from
// most to least specific; the balanced default catches everything else.
func classify(energy float64, bands audio.Bands, beatDensity, trend, flux float64) audio.Mood {
	low := bands.SubBass + bands.Bass
	high := bands.HighMid + bands.Treble

	switch {
	case energy < 0.06:
		return audio.MoodSilence
	case flux > 0.35 && beatDensity < 0.3:
		return audio.MoodGlitch
	case energy > 0.85 && beatDensity > 0.7:
		return audio.MoodChaos
	case energy > 0.7 && beatDensity > 0.5:
		return audio.MoodAggressive
	case low > 2*high+0.2 && beatDensity > 0.25:
		return audio.MoodBassHeavy
	case energy > 0.55 && high > low && beatDensity > 0.35:
		return audio.MoodEuphoric
	case trend > 0.015 && energy > 0.2 && energy < 0.7:
		return audio.MoodBuilding
	case energy < 0.3 && high > low:
		return audio.MoodColdAmbient
	case energy < 0.3:
		return audio.MoodWarmAmbient
	case beatDensity < 0.15 && energy < 0.45:
		return audio.MoodRitualistic
	default:
		return audio.MoodBalanced
	}
}

func bandDelta(a, b audio.Bands) float64 {
	return (math.Abs(a.SubBass-b.SubBass) +
		math.Abs(a.Bass-b.Bass) +
		math.Abs(a.LowMid-b.LowMid) +
		math.Abs(a.Mid-b.Mid) +
		math.Abs(a.HighMid-b.HighMid) +
		math.Abs(a.Treble-b.Treble)) / 6
}
