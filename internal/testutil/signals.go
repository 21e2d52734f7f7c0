package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// SteppedSine generates a sine wave whose amplitude alternates between the
// given levels, holding each level for segmentLen samples. The loudness
// range of such a signal tracks the level swing.
func SteppedSine(freqHz, sampleRate float64, amplitudes []float64, segmentLen int) []float64 {
	out := make([]float64, len(amplitudes)*segmentLen)
	step := 2 * math.Pi * freqHz / sampleRate
	for s, amp := range amplitudes {
		base := s * segmentLen
		for i := range segmentLen {
			out[base+i] = amp * math.Sin(step*float64(base+i))
		}
	}
	return out
}

// Silence returns a zero-valued signal of length n.
func Silence(n int) []float64 {
	return make([]float64, n)
}
