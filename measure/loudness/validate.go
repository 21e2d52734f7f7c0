package loudness

import "errors"

var (
	// ErrNoChannels is returned when the input has no channels.
	ErrNoChannels = errors.New("loudness: audio has no channels")

	// ErrTooManyChannels is returned for more than five input channels.
	ErrTooManyChannels = errors.New("loudness: more than five channels")

	// ErrChannelMismatch is returned when the input channels differ in length.
	ErrChannelMismatch = errors.New("loudness: channels differ in length")

	// ErrShortSignal is returned when the input is shorter than one
	// gating block.
	ErrShortSignal = errors.New("loudness: signal shorter than one gating block")

	// ErrNoBlocks is returned when a measurement pass produced no gating
	// blocks.
	ErrNoBlocks = errors.New("loudness: no gating blocks produced")
)

// validAudio enforces the measurement preconditions: one to five equal-length
// channels holding at least one gating block of samples. It runs before any
// filtering so a rejected buffer is never touched.
func validAudio(channels [][]float64, sampleRate, blockSize float64) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}

	if len(channels) > maxChannels {
		return ErrTooManyChannels
	}

	numSamples := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != numSamples {
			return ErrChannelMismatch
		}
	}

	if float64(numSamples) < blockSize*sampleRate {
		return ErrShortSignal
	}

	return nil
}
