package poly

import (
	"fmt"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
)

// fft is the iterative Cooley-Tukey radix-2 decimation-in-time transform,
// in place over a bit-reversal-permuted copy of values. omega must be a
// primitive len(values)-th root of unity.
func fft(values []field.Element, omega field.Element) []field.Element {
	n := len(values)
	out := make([]field.Element, n)
	bits := bitLen(n) - 1
	for i, v := range values {
		out[reverseBits(i, bits)] = v
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		// omega restricted to the order-`size` subgroup.
		wm := omega.ExpUint64(uint64(n / size))
		for start := 0; start < n; start += size {
			w := field.One()
			for j := 0; j < half; j++ {
				u := out[start+j]
				v := out[start+j+half].Mul(w)
				out[start+j] = u.Add(v)
				out[start+j+half] = u.Sub(v)
				w = w.Mul(wm)
			}
		}
	}
	return out
}

func bitLen(n int) int {
	l := 0
	for n > 0 {
		l++
		n >>= 1
	}
	return l
}

func reverseBits(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r <<= 1
		r |= x & 1
		x >>= 1
	}
	return r
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// EvaluateFFT evaluates p over the full group of n-th roots of unity,
// padding p's coefficients with zeros up to length n. n must be a power of
// two no smaller than p's coefficient count.
func EvaluateFFT(p Polynomial, n int) ([]field.Element, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("poly: domain size %d is not a power of two", n)
	}
	if len(p.coeffs) > n {
		return nil, fmt.Errorf("poly: polynomial of degree %d does not fit in domain size %d", p.Degree(), n)
	}
	omega, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}
	return fft(padded(p.coeffs, n), omega), nil
}

// InterpolateFFT recovers the unique polynomial of degree < len(values)
// that evaluates to values on the group of len(values)-th roots of unity.
func InterpolateFFT(values []field.Element) (Polynomial, error) {
	n := len(values)
	if !isPowerOfTwo(n) {
		return Polynomial{}, fmt.Errorf("poly: value count %d is not a power of two", n)
	}
	omega, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		return Polynomial{}, err
	}
	omegaInv := omega.Inv()
	coeffs := fft(values, omegaInv)
	nInv := field.FromUint64(uint64(n)).Inv()
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(nInv)
	}
	return New(coeffs), nil
}

// EvaluateOffsetFFT evaluates p over the coset h*<w> of size n, where w is
// the primitive n-th root of unity: this is the low-degree extension
// operation. It works by evaluating the polynomial p(h*x) (p scaled by h)
// over the plain n-th roots of unity.
func EvaluateOffsetFFT(p Polynomial, n int, offset field.Element) ([]field.Element, error) {
	scaled := p.Scale(offset)
	return EvaluateFFT(scaled, n)
}

// InterpolateOffsetFFT is the inverse of EvaluateOffsetFFT: given values on
// the coset h*<w>, recover the coefficients of the original (unscaled)
// polynomial.
func InterpolateOffsetFFT(values []field.Element, offset field.Element) (Polynomial, error) {
	scaled, err := InterpolateFFT(values)
	if err != nil {
		return Polynomial{}, err
	}
	offsetInv := offset.Inv()
	return scaled.Scale(offsetInv), nil
}

func padded(coeffs []field.Element, n int) []field.Element {
	out := make([]field.Element, n)
	copy(out, coeffs)
	for i := len(coeffs); i < n; i++ {
		out[i] = field.Zero()
	}
	return out
}
