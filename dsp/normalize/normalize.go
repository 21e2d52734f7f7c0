package normalize

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/csteinmetz1/pyloudnorm/measure/loudness"
)

// Peak scales a multichannel signal so its largest absolute sample hits the
// target level in dBFS. The input is channel-major; the caller's buffers
// are never mutated.
//
// The returned flag reports possible clipping: true when the scaled output
// reaches or exceeds full scale. It is a diagnostic, never an error; the
// scaled output is always returned. Silent input propagates Inf/NaN gain
// through the output rather than failing.
func Peak(data [][]float64, targetDB float64) ([][]float64, bool) {
	currentPeak := 0.0
	for _, ch := range data {
		currentPeak = math.Max(currentPeak, vecmath.MaxAbs(ch))
	}

	gain := math.Pow(10, targetDB/20) / currentPeak

	return applyGain(data, gain)
}

// PeakMono scales a single-channel signal to the target peak level in dBFS.
func PeakMono(samples []float64, targetDB float64) ([]float64, bool) {
	out, clipped := Peak([][]float64{samples}, targetDB)
	return out[0], clipped
}

// Loudness scales a multichannel signal from a known input loudness to the
// target loudness, both in LUFS. Callers that already measured the input
// avoid a second (expensive) measurement pass by supplying the value here.
//
// The returned flag reports possible clipping, as in Peak.
func Loudness(data [][]float64, inputLoudness, targetLoudness float64) ([][]float64, bool) {
	deltaLoudness := targetLoudness - inputLoudness
	gain := math.Pow(10, deltaLoudness/20)

	return applyGain(data, gain)
}

// LoudnessMono scales a single-channel signal from a known input loudness
// to the target loudness in LUFS.
func LoudnessMono(samples []float64, inputLoudness, targetLoudness float64) ([]float64, bool) {
	out, clipped := Loudness([][]float64{samples}, inputLoudness, targetLoudness)
	return out[0], clipped
}

// LoudnessMeasured measures the integrated loudness of the input with the
// given meter and scales it to the target loudness in LUFS.
func LoudnessMeasured(m *loudness.Meter, data [][]float64, targetLoudness float64) ([][]float64, bool, error) {
	inputLoudness, err := m.IntegratedLoudness(data)
	if err != nil {
		return nil, false, err
	}

	out, clipped := Loudness(data, inputLoudness, targetLoudness)

	return out, clipped, nil
}

// applyGain scales every channel into a fresh buffer and reports whether
// the result may clip.
func applyGain(data [][]float64, gain float64) ([][]float64, bool) {
	out := make([][]float64, len(data))
	clipped := false

	for i, ch := range data {
		out[i] = make([]float64, len(ch))
		vecmath.ScaleBlock(out[i], ch, gain)

		if vecmath.MaxAbs(out[i]) >= 1.0 {
			clipped = true
		}
	}

	return out, clipped
}
