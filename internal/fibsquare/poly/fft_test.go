package poly

import (
	"testing"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
)

func TestEvaluateFFTMatchesDirectEval(t *testing.T) {
	p := New([]field.Element{field.FromInt64(1), field.FromInt64(2), field.FromInt64(3), field.FromInt64(4)})
	n := 8
	values, err := EvaluateFFT(p, n)
	if err != nil {
		t.Fatalf("EvaluateFFT: %v", err)
	}
	omega, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}
	x := field.One()
	for i := 0; i < n; i++ {
		want := p.Eval(x)
		if !values[i].Equal(want) {
			t.Errorf("index %d: got %s, want %s", i, values[i], want)
		}
		x = x.Mul(omega)
	}
}

func TestInterpolateFFTInverts(t *testing.T) {
	p := New([]field.Element{field.FromInt64(5), field.FromInt64(-2), field.FromInt64(7), field.FromInt64(1)})
	n := 8
	values, err := EvaluateFFT(p, n)
	if err != nil {
		t.Fatalf("EvaluateFFT: %v", err)
	}
	back, err := InterpolateFFT(values)
	if err != nil {
		t.Fatalf("InterpolateFFT: %v", err)
	}
	for i := 0; i <= p.Degree(); i++ {
		if !back.Coefficient(i).Equal(p.Coefficient(i)) {
			t.Errorf("coefficient %d: got %s, want %s", i, back.Coefficient(i), p.Coefficient(i))
		}
	}
}

func TestOffsetFFTRoundTrip(t *testing.T) {
	p := New([]field.Element{field.FromInt64(3), field.FromInt64(1), field.FromInt64(4), field.FromInt64(1), field.FromInt64(5)})
	offset := field.FromUint64(2)
	n := 8

	values, err := EvaluateOffsetFFT(p, n, offset)
	if err != nil {
		t.Fatalf("EvaluateOffsetFFT: %v", err)
	}
	back, err := InterpolateOffsetFFT(values, offset)
	if err != nil {
		t.Fatalf("InterpolateOffsetFFT: %v", err)
	}
	for i := 0; i <= p.Degree(); i++ {
		if !back.Coefficient(i).Equal(p.Coefficient(i)) {
			t.Errorf("coefficient %d: got %s, want %s", i, back.Coefficient(i), p.Coefficient(i))
		}
	}
}

func TestEvaluateFFTRejectsNonPowerOfTwo(t *testing.T) {
	p := Monomial(field.One(), 1)
	if _, err := EvaluateFFT(p, 6); err == nil {
		t.Fatal("expected an error for a non-power-of-two domain size")
	}
}

func TestEvaluateFFTRejectsTooSmallDomain(t *testing.T) {
	p := New([]field.Element{field.FromInt64(1), field.FromInt64(2), field.FromInt64(3), field.FromInt64(4), field.FromInt64(5)})
	if _, err := EvaluateFFT(p, 4); err == nil {
		t.Fatal("expected an error when the domain is smaller than the polynomial")
	}
}
