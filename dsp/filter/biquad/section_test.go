package biquad

import (
	"testing"

	"github.com/csteinmetz1/pyloudnorm/internal/testutil"
)

// testCoeffs is an arbitrary stable lowpass-like section.
var testCoeffs = Coefficients{
	B0: 0.2, B1: 0.4, B2: 0.2,
	A1: -0.5, A2: 0.3,
}

func TestSection_Identity(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	sig := testutil.DeterministicNoise(1, 0.5, 256)

	for i, x := range sig {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestSection_ProcessBlockMatchesPerSample(t *testing.T) {
	sig := testutil.DeterministicNoise(2, 0.8, 512)

	ref := NewSection(testCoeffs)
	want := make([]float64, len(sig))
	for i, x := range sig {
		want[i] = ref.ProcessSample(x)
	}

	got := append([]float64(nil), sig...)
	NewSection(testCoeffs).ProcessBlock(got)

	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestSection_ProcessBlockToMatchesInPlace(t *testing.T) {
	sig := testutil.DeterministicNoise(3, 0.8, 512)

	inPlace := append([]float64(nil), sig...)
	NewSection(testCoeffs).ProcessBlock(inPlace)

	dst := make([]float64, len(sig))
	NewSection(testCoeffs).ProcessBlockTo(dst, sig)

	testutil.RequireSliceNearlyEqual(t, dst, inPlace, 0)
}

func TestSection_ProcessBlockToEmpty(t *testing.T) {
	s := NewSection(testCoeffs)

	s.ProcessBlockTo(nil, nil)
	s.ProcessBlockTo([]float64{}, []float64{})

	if got := s.State(); got != [2]float64{} {
		t.Errorf("state %v changed by empty block", got)
	}
}

func TestSection_Reset(t *testing.T) {
	sig := testutil.DeterministicNoise(4, 0.8, 128)

	s := NewSection(testCoeffs)
	first := make([]float64, len(sig))
	s.ProcessBlockTo(first, sig)

	s.Reset()

	second := make([]float64, len(sig))
	s.ProcessBlockTo(second, sig)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestSection_StateRoundTrip(t *testing.T) {
	sig := testutil.DeterministicNoise(5, 0.8, 128)

	s := NewSection(testCoeffs)
	s.ProcessBlock(append([]float64(nil), sig...))
	saved := s.State()

	cont := make([]float64, len(sig))
	s.ProcessBlockTo(cont, sig)

	s.SetState(saved)

	replay := make([]float64, len(sig))
	s.ProcessBlockTo(replay, sig)

	testutil.RequireSliceNearlyEqual(t, replay, cont, 0)
}
