package analysis

import (
	"math"

	"lumen/internal/audio"
)

// Center frequencies (Hz) for the six named bands.
var bandFreqs = [6]float64{45, 110, 350, 1000, 2800, 7500}

// Empirical per-band gains flattening the typical spectral tilt of music so
// every band lands in a comparable [0,1] range.
var bandGains = [6]float64{3.0, 3.5, 5.0, 7.0, 10.0, 14.0}

// bandEnergies measures the six band magnitudes of one sample window using
// the Goertzel algorithm and normalizes them into [0,1].
func bandEnergies(samples []float64, sampleRate float64) audio.Bands {
	if len(samples) == 0 || sampleRate <= 0 {
		return audio.Bands{}
	}
	var out [6]float64
	for i, freq := range bandFreqs {
		if freq >= sampleRate/2 {
			continue
		}
		out[i] = clampUnit(goertzel(samples, sampleRate, freq) * bandGains[i])
	}
	return audio.Bands{
		SubBass: out[0],
		Bass:    out[1],
		LowMid:  out[2],
		Mid:     out[3],
		HighMid: out[4],
		Treble:  out[5],
	}
}

// goertzel returns the normalized magnitude of one frequency bin.
func goertzel(samples []float64, sampleRate, freq float64) float64 {
	n := float64(len(samples))
	k := math.Round(freq * n / sampleRate)
	omega := 2 * math.Pi * k / n
	coeff := 2 * math.Cos(omega)

	var s1, s2 float64
	for _, sample := range samples {
		s0 := sample + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	power := s1*s1 + s2*s2 - coeff*s1*s2
	if power < 0 {
		power = 0
	}
	return 2 * math.Sqrt(power) / n
}

// rms returns the root-mean-square level of one window.
func rms(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func ema(prev, value, alpha float64) float64 {
	if alpha <= 0 {
		return prev
	}
	if alpha >= 1 {
		return value
	}
	return prev + alpha*(value-prev)
}
