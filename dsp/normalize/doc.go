// Package normalize provides gain-based peak and loudness normalization.
//
// Both operations compute a single scalar gain and rescale the signal into
// a fresh buffer, leaving the input untouched. Possible clipping of the
// output is reported as a boolean diagnostic alongside the result; it never
// suppresses the output. Loudness normalization accepts either a
// precomputed input loudness or a [loudness.Meter] to measure it.
package normalize
