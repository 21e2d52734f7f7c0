// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing. All designers follow the RBJ
// cookbook formulas with eagerly computed, deterministic output: identical
// (freq, gain, q, rate) inputs always yield bit-identical coefficients.
// The denominator is normalized so that a0 = 1 and is not stored.
package design
