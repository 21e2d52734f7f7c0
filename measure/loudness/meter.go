package loudness

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/csteinmetz1/pyloudnorm/dsp/filter/weighting"
)

const (
	// Gating parameters per ITU-R BS.1770-4.
	defaultBlockSize = 0.400 // seconds
	defaultOverlap   = 0.75  // fraction of block duration

	absThreshold = -70.0 // Gamma_a, LUFS
	relOffset    = -10.0 // relative gate, LU below the gated average

	maxChannels = 5
)

// channelGains holds the per-channel weighting for the fixed channel order
// [Left, Right, Center, Left surround, Right surround].
var channelGains = [maxChannels]float64{1.0, 1.0, 1.0, 1.41, 1.41}

// Meter measures gated loudness per ITU-R BS.1770-4 and loudness range per
// EBU Tech 3342 over fully materialized in-memory buffers.
//
// A Meter retains the per-block loudness sequence of its last measurement
// pass; instances must not be shared across goroutines without external
// synchronization.
type Meter struct {
	sampleRate  float64
	filterClass weighting.Class
	stages      []weighting.Stage

	blockSize float64 // seconds
	overlap   float64 // fraction

	// Per-block loudness of the last measurement pass, reused by the
	// loudness range computation.
	blockLoudness []float64
}

// NewMeter creates a loudness meter. Without options it measures
// K-weighted loudness with 400 ms gating blocks at 75% overlap over
// 48 kHz audio.
func NewMeter(opts ...MeterOption) (*Meter, error) {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{
		sampleRate:  cfg.SampleRate,
		filterClass: cfg.FilterClass,
		blockSize:   cfg.BlockSize,
		overlap:     cfg.Overlap,
	}

	if cfg.Stages != nil {
		m.stages = append([]weighting.Stage(nil), cfg.Stages...)
		return m, nil
	}

	stages, err := weighting.Stages(cfg.FilterClass, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	m.stages = stages

	return m, nil
}

// SampleRate returns the configured sample rate in Hz.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

// FilterClass returns the active weighting filter class.
func (m *Meter) FilterClass() weighting.Class { return m.filterClass }

// BlockSize returns the gating block duration in seconds.
func (m *Meter) BlockSize() float64 { return m.blockSize }

// Overlap returns the gating block overlap fraction.
func (m *Meter) Overlap() float64 { return m.overlap }

// SetFilterClass switches the weighting cascade, rebuilding the filter
// stages for the meter's sample rate.
func (m *Meter) SetFilterClass(class weighting.Class) error {
	stages, err := weighting.Stages(class, m.sampleRate)
	if err != nil {
		return err
	}

	m.filterClass = class
	m.stages = stages

	return nil
}

// BlockLoudness returns a copy of the per-block loudness sequence retained
// from the last measurement pass, in LUFS. Blocks of zero weighted energy
// appear as -Inf.
func (m *Meter) BlockLoudness() []float64 {
	out := make([]float64, len(m.blockLoudness))
	copy(out, m.blockLoudness)

	return out
}

// IntegratedLoudness measures the gated integrated loudness of a
// multichannel signal in LUFS.
//
// The input is channel-major with up to five equal-length channels in the
// order [Left, Right, Center, Left surround, Right surround]. The caller's
// buffers are never mutated; filtering runs on a private copy.
//
// Silence and fully gated-out signals yield -Inf or NaN rather than an
// error: degenerate numeric results are expected terminal outcomes for
// real-world input.
func (m *Meter) IntegratedLoudness(channels [][]float64) (float64, error) {
	if err := validAudio(channels, m.sampleRate, m.blockSize); err != nil {
		return 0, err
	}

	data := copyChannels(channels)

	// Frequency weighting: each stage filters every channel in series,
	// stage by stage, from zero filter state.
	for _, stage := range m.stages {
		for _, ch := range data {
			stage.Apply(ch)
		}
	}

	numChannels := len(data)
	numSamples := len(data[0])

	tg := m.blockSize
	step := 1.0 - m.overlap
	tDur := float64(numSamples) / m.sampleRate

	numBlocks := int(math.Round((tDur-tg)/(tg*step))) + 1
	if numBlocks < 0 {
		numBlocks = 0
	}

	// Mean-square energy z[i][j] of channel i over gating block j.
	// Block bounds truncate toward the sample index; the final block may
	// be cut short by the end of the signal.
	z := make([][]float64, numChannels)
	for i, ch := range data {
		z[i] = make([]float64, numBlocks)

		for j := range numBlocks {
			l := int(tg * (float64(j) * step) * m.sampleRate)
			u := int(tg * (float64(j)*step + 1) * m.sampleRate)

			if l > numSamples {
				l = numSamples
			}

			if u > numSamples {
				u = numSamples
			}

			seg := ch[l:u]
			z[i][j] = vecmath.DotProduct(seg, seg) / (tg * m.sampleRate)
		}
	}

	// Per-block loudness, retained for loudness range reuse. Zero-energy
	// blocks come out as -Inf and flow through the gating below.
	blockLoudness := make([]float64, numBlocks)
	for j := range numBlocks {
		blockLoudness[j] = toLUFS(weightedSum(z, j, numChannels))
	}

	m.blockLoudness = blockLoudness

	// Absolute gating: blocks at or above Gamma_a.
	absGated := make([]int, 0, numBlocks)

	for j, l := range blockLoudness {
		if l >= absThreshold {
			absGated = append(absGated, j)
		}
	}

	// Relative threshold from the absolute-gated average energies.
	// An empty gating set yields NaN averages; the NaN threshold then
	// rejects every block in the relative pass.
	zAvg := gatedAverage(z, absGated, numChannels)
	gammaR := toLUFS(weightedAvgSum(zAvg, numChannels)) + relOffset

	// Relative gating: strictly above both thresholds.
	relGated := make([]int, 0, numBlocks)

	for j, l := range blockLoudness {
		if l > gammaR && l > absThreshold {
			relGated = append(relGated, j)
		}
	}

	// A channel with no qualifying blocks contributes zero energy rather
	// than poisoning the sum.
	zAvg = gatedAverage(z, relGated, numChannels)
	for i, v := range zAvg {
		if math.IsNaN(v) {
			zAvg[i] = 0
		}
	}

	return toLUFS(weightedAvgSum(zAvg, numChannels)), nil
}

// IntegratedLoudnessMono measures a single-channel signal. It is the 1-D
// entry point equivalent to passing a one-element channel slice.
func (m *Meter) IntegratedLoudnessMono(samples []float64) (float64, error) {
	return m.IntegratedLoudness([][]float64{samples})
}

// toLUFS converts a weighted mean-square energy to loudness units relative
// to full scale. Zero energy maps to -Inf, negative input to NaN.
func toLUFS(energy float64) float64 {
	return -0.691 + 10.0*math.Log10(energy)
}

// weightedSum returns sum_i G[i]*z[i][j] for one block.
func weightedSum(z [][]float64, j, numChannels int) float64 {
	sum := 0.0
	for i := range numChannels {
		sum += channelGains[i] * z[i][j]
	}

	return sum
}

// weightedAvgSum returns sum_i G[i]*zAvg[i].
func weightedAvgSum(zAvg []float64, numChannels int) float64 {
	sum := 0.0
	for i := range numChannels {
		sum += channelGains[i] * zAvg[i]
	}

	return sum
}

// gatedAverage computes the per-channel mean of z over the gated block set.
// An empty set yields NaN for every channel.
func gatedAverage(z [][]float64, gated []int, numChannels int) []float64 {
	avg := make([]float64, numChannels)

	if len(gated) == 0 {
		for i := range avg {
			avg[i] = math.NaN()
		}

		return avg
	}

	for i := range numChannels {
		sum := 0.0
		for _, j := range gated {
			sum += z[i][j]
		}

		avg[i] = sum / float64(len(gated))
	}

	return avg
}

func copyChannels(channels [][]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		out[i] = append([]float64(nil), ch...)
	}

	return out
}
