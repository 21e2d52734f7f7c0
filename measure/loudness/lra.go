package loudness

import (
	"fmt"
	"math"
	"sort"
)

const (
	// EBU Tech 3342 short-term parameters: 3 s blocks refreshed at
	// roughly 10 Hz.
	lraBlockSize = 3.0
	lraOverlap   = 0.97

	// Trailing silence appended so the final block fully covers the
	// signal tail.
	lraPadding = 1.5 // seconds

	// Relative gate, LU below the integrated short-term power.
	lraRelOffset = -20.0
)

// LoudnessRange measures the loudness range of a multichannel signal in LU
// per EBU Tech 3342: the spread between the 10th and 95th percentiles of
// the gated short-term loudness distribution.
//
// Returns NaN for signals too quiet to measure (every short-term block
// below the absolute or relative gate).
//
// The gating block override used internally is restored on every exit
// path; a subsequent IntegratedLoudness call sees the meter unchanged.
func (m *Meter) LoudnessRange(channels [][]float64) (float64, error) {
	savedBlockSize, savedOverlap := m.blockSize, m.overlap
	defer func() {
		m.blockSize, m.overlap = savedBlockSize, savedOverlap
	}()

	m.blockSize = lraBlockSize
	m.overlap = lraOverlap

	padded := padTrailingSilence(channels, int(lraPadding*m.sampleRate))

	// Run the block-energy pass purely to populate the per-block
	// loudness sequence; the integrated value itself is not used.
	if _, err := m.IntegratedLoudness(padded); err != nil {
		return 0, fmt.Errorf("loudness range: %w", err)
	}

	if len(m.blockLoudness) == 0 {
		return 0, ErrNoBlocks
	}

	// Absolute gate.
	stl := make([]float64, 0, len(m.blockLoudness))

	for _, l := range m.blockLoudness {
		if l >= absThreshold {
			stl = append(stl, l)
		}
	}

	if len(stl) == 0 {
		return math.NaN(), nil
	}

	// Relative gate against the integrated short-term power.
	power := 0.0
	for _, l := range stl {
		power += math.Pow(10, l/10)
	}

	stlIntegrated := 10 * math.Log10(power/float64(len(stl)))
	relThreshold := stlIntegrated + lraRelOffset

	gated := stl[:0]

	for _, l := range stl {
		if l >= relThreshold {
			gated = append(gated, l)
		}
	}

	if len(gated) == 0 {
		return math.NaN(), nil
	}

	sort.Float64s(gated)

	return percentile(gated, 95) - percentile(gated, 10), nil
}

// LoudnessRangeMono measures the loudness range of a single-channel signal.
func (m *Meter) LoudnessRangeMono(samples []float64) (float64, error) {
	return m.LoudnessRange([][]float64{samples})
}

// percentile returns the p-th percentile of sorted values using linear
// interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)

	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// padTrailingSilence returns a copy of channels with n zero samples
// appended to each channel.
func padTrailingSilence(channels [][]float64, n int) [][]float64 {
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		padded := make([]float64, len(ch)+n)
		copy(padded, ch)
		out[i] = padded
	}

	return out
}
