// Package weighting provides the frequency-weighting pre-filter cascades
// used for loudness measurement per ITU-R BS.1770-4.
//
// Weighting cascades shape the magnitude response of a signal to account
// for the acoustic response of the head and the auditory system before
// mean-square energy measurement. Each [Class] maps to a fixed, ordered
// list of biquad stages applied in series:
//
//   - K-weighting: the BS.1770-4 standard curve (high shelf + high pass).
//   - Fenton/Lee 1 and 2: experimental alternatives.
//   - Dash et al.: experimental alternative built on a 1 kHz dip.
//   - DeMan: K-weighting with exactly derived corner parameters.
//
// Stage coefficients are derived eagerly at construction via
// dsp/filter/design and are immutable afterwards. Applying a [Stage] always
// starts from zero filter state, matching batch (whole-buffer) measurement
// semantics.
package weighting
