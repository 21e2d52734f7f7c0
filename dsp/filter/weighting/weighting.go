package weighting

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/csteinmetz1/pyloudnorm/dsp/filter/biquad"
	"github.com/csteinmetz1/pyloudnorm/dsp/filter/design"
)

// ErrUnknownClass is returned when an unrecognized filter class is requested.
var ErrUnknownClass = errors.New("weighting: unknown filter class")

// Class identifies a loudness pre-filter cascade.
type Class int

const (
	// KWeighting is the two-stage K-weighting cascade per ITU-R BS.1770-4:
	// a high-frequency shelf modeling the acoustic effect of the head
	// followed by a revised low-frequency B-curve high-pass.
	KWeighting Class = iota

	// FentonLee1 is the three-stage experimental curve by Fenton and Lee
	// with a steeper shelf, a 130 Hz high-pass, and a 500 Hz dip.
	FentonLee1

	// FentonLee2 matches the K-weighting cascade.
	FentonLee2

	// DashEtAl is the two-stage curve by Dash et al. built from a 149 Hz
	// high-pass and a wide notch-like peaking stage at 1 kHz.
	DashEtAl

	// DeMan is K-weighting rebuilt from De Man's exact corner parameters
	// and tan-based coefficient derivation. At 48 kHz it reproduces the
	// coefficient tables printed in BS.1770 to full precision.
	DeMan
)

// String returns a human-readable name for the filter class.
func (c Class) String() string {
	switch c {
	case KWeighting:
		return "K-weighting"
	case FentonLee1:
		return "Fenton/Lee 1"
	case FentonLee2:
		return "Fenton/Lee 2"
	case DashEtAl:
		return "Dash et al."
	case DeMan:
		return "DeMan"
	default:
		return "Unknown"
	}
}

// Stage is one filter of a weighting cascade: prescription plus the
// coefficients eagerly derived from it. Stages are immutable after
// construction and applied in declaration order.
type Stage struct {
	Coefficients biquad.Coefficients

	// PassbandGain scales the filtered output. The standard cascades use
	// unity gain; it exists for custom stage prescriptions.
	PassbandGain float64
}

// Apply filters buf in-place through the stage with zero initial filter
// state, then scales by the passband gain. The length of buf is preserved.
func (s Stage) Apply(buf []float64) {
	sec := biquad.NewSection(s.Coefficients)
	sec.ProcessBlock(buf)

	if s.PassbandGain != 1 {
		vecmath.ScaleBlockInPlace(buf, s.PassbandGain)
	}
}

// Stages returns the ordered series cascade for the given class at the
// specified sample rate. The cascade order matters: the first stage's
// output feeds the second stage's input.
//
// Returns ErrUnknownClass for an unrecognized class and an error for a
// non-positive sample rate.
func Stages(c Class, sampleRate float64) ([]Stage, error) {
	if sampleRate <= 0 {
		return nil, errors.New("weighting: sample rate must be positive")
	}

	switch c {
	case KWeighting, FentonLee2:
		return []Stage{
			highShelf(1500.0, 4.0, 1/math.Sqrt2, sampleRate),
			highPass(38.0, 0.5, sampleRate),
		}, nil
	case FentonLee1:
		return []Stage{
			highShelf(1500.0, 5.0, 1/math.Sqrt2, sampleRate),
			highPass(130.0, 0.5, sampleRate),
			peaking(500.0, 0.0, 1/math.Sqrt2, sampleRate),
		}, nil
	case DashEtAl:
		return []Stage{
			highPass(149.0, 0.375, sampleRate),
			peaking(1000.0, -2.93820927, 1.68878655, sampleRate),
		}, nil
	case DeMan:
		return []Stage{
			highShelfDeMan(1681.9744509555319, 3.99984385397, 0.7071752369554193, sampleRate),
			highPassDeMan(38.13547087613982, 0.5003270373253953, sampleRate),
		}, nil
	default:
		return nil, ErrUnknownClass
	}
}

func highShelf(freq, gainDB, q, sampleRate float64) Stage {
	return Stage{
		Coefficients: design.HighShelf(freq, gainDB, q, sampleRate),
		PassbandGain: 1,
	}
}

func highPass(freq, q, sampleRate float64) Stage {
	return Stage{
		Coefficients: design.Highpass(freq, q, sampleRate),
		PassbandGain: 1,
	}
}

func peaking(freq, gainDB, q, sampleRate float64) Stage {
	return Stage{
		Coefficients: design.Peak(freq, gainDB, q, sampleRate),
		PassbandGain: 1,
	}
}

func highShelfDeMan(freq, gainDB, q, sampleRate float64) Stage {
	return Stage{
		Coefficients: design.HighShelfDeMan(freq, gainDB, q, sampleRate),
		PassbandGain: 1,
	}
}

func highPassDeMan(freq, q, sampleRate float64) Stage {
	return Stage{
		Coefficients: design.HighpassDeMan(freq, q, sampleRate),
		PassbandGain: 1,
	}
}
