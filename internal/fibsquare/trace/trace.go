// Package trace builds the FibonacciSq execution trace and its polynomial
// representations: the interpolated trace polynomial T(x) and its
// low-degree extension over the evaluation domain.
package trace

import (
	"fmt"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/poly"
)

// Trace is the length-N sequence of field elements satisfying the
// FibonacciSq recurrence, together with its polynomial interpolation and
// low-degree extension.
type Trace struct {
	Values []field.Element // a[0..N)
	Poly   poly.Polynomial // T(x), degree < N
	LDE    []field.Element // T(h*w^i) for i in [0, D)
}

// Build constructs the trace from a0 and the witness a1, extending it by
// the recurrence a[i] = a[i-1]^2 + a[i-2]^2 for N-2 further steps, then
// interpolates it over the N-th roots of unity and low-degree-extends it
// over the offset domain of size evalDomainSize with offset h.
//
// N must be a power of two; fails fatally (returns an error, never panics
// on caller-controlled input) if it is not, or if evalDomainSize is smaller
// than N.
func Build(n int, a0, witness field.Element, evalDomainSize int, h field.Element) (*Trace, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("trace: length %d is not a positive power of two", n)
	}
	if evalDomainSize < n || evalDomainSize&(evalDomainSize-1) != 0 {
		return nil, fmt.Errorf("trace: evaluation domain size %d must be a power of two >= %d", evalDomainSize, n)
	}

	values := make([]field.Element, n)
	values[0] = a0
	if n > 1 {
		values[1] = witness
	}
	for i := 2; i < n; i++ {
		values[i] = values[i-1].Square().Add(values[i-2].Square())
	}

	tracePoly, err := poly.InterpolateFFT(values)
	if err != nil {
		return nil, fmt.Errorf("trace: interpolating trace polynomial: %w", err)
	}

	lde, err := poly.EvaluateOffsetFFT(tracePoly, evalDomainSize, h)
	if err != nil {
		return nil, fmt.Errorf("trace: computing low-degree extension: %w", err)
	}

	return &Trace{Values: values, Poly: tracePoly, LDE: lde}, nil
}

// Terminal returns a[n-2], the value checked against the public claim
// a1022 for the fixed N=1024 statement (index N-2 generalizes the spec's
// a[1022] = a[N-2] boundary).
func (t *Trace) Terminal() field.Element {
	return t.Values[len(t.Values)-2]
}
