package loudness

import "github.com/csteinmetz1/pyloudnorm/dsp/filter/weighting"

// MeterConfig defines configuration for the loudness meter.
type MeterConfig struct {
	SampleRate  float64
	FilterClass weighting.Class

	// BlockSize is the gating block duration in seconds.
	BlockSize float64

	// Overlap is the fraction of the block duration shared by
	// consecutive gating blocks.
	Overlap float64

	// Stages overrides FilterClass with a custom weighting cascade.
	Stages []weighting.Stage
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns the BS.1770-4 defaults: K-weighting with
// 400 ms gating blocks at 75% overlap.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		SampleRate:  48000,
		FilterClass: weighting.KWeighting,
		BlockSize:   defaultBlockSize,
		Overlap:     defaultOverlap,
	}
}

// WithSampleRate sets the sample rate of the audio to be measured.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFilterClass selects the weighting filter cascade.
func WithFilterClass(class weighting.Class) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.FilterClass = class
	}
}

// WithBlockSize sets the gating block duration in seconds.
// The BS.1770-4 standard value is 0.400.
func WithBlockSize(seconds float64) MeterOption {
	return func(cfg *MeterConfig) {
		if seconds > 0 {
			cfg.BlockSize = seconds
		}
	}
}

// WithOverlap sets the gating block overlap fraction in [0, 1).
// The BS.1770-4 standard value is 0.75.
func WithOverlap(fraction float64) MeterOption {
	return func(cfg *MeterConfig) {
		if fraction >= 0 && fraction < 1 {
			cfg.Overlap = fraction
		}
	}
}

// WithStages installs a custom weighting cascade instead of one of the
// enumerated filter classes. The stages are applied in slice order.
func WithStages(stages []weighting.Stage) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Stages = stages
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
