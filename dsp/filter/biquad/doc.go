// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. The loudness weighting
// cascades in dsp/filter/weighting apply sections in series.
//
// This package provides the processing runtime only. Coefficient design
// (shelving, high-pass, peaking, etc.) lives in dsp/filter/design.
package biquad
