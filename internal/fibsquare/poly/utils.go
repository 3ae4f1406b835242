package poly

import (
	"fmt"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
)

// Divide computes num/den in evaluation form over the offset domain of size
// domSize with offset h: evaluate both operands, divide pointwise, and
// interpolate back. If den does not divide num exactly, the result is
// meaningless (the normal polynomial-division contract) and Divide does not
// detect it, so a call site that needs an exact division must confirm it
// itself (the air package does so by bounding the quotient's degree).
//
// domSize must be a power of two at least max(deg num, deg den)+1, and h
// must not be a root of den on the chosen domain (guaranteed by using the
// fixed non-domain offset 2, which lies outside every subgroup this module
// ever divides over).
func Divide(num, den Polynomial, domSize int, h field.Element) (Polynomial, error) {
	numEval, err := EvaluateOffsetFFT(num, domSize, h)
	if err != nil {
		return Polynomial{}, fmt.Errorf("poly: divide: evaluating numerator: %w", err)
	}
	denEval, err := EvaluateOffsetFFT(den, domSize, h)
	if err != nil {
		return Polynomial{}, fmt.Errorf("poly: divide: evaluating denominator: %w", err)
	}
	quotientEval := make([]field.Element, domSize)
	for i := range quotientEval {
		if denEval[i].IsZero() {
			return Polynomial{}, fmt.Errorf("poly: divide: denominator vanishes at domain point %d", i)
		}
		quotientEval[i] = numEval[i].Div(denEval[i])
	}
	return InterpolateOffsetFFT(quotientEval, h)
}

// Multiply computes the product of factors in evaluation form: evaluate
// each factor over the offset domain, multiply pointwise, interpolate back.
// Valid iff the true product's degree is < domSize.
func Multiply(factors []Polynomial, domSize int, h field.Element) (Polynomial, error) {
	if len(factors) == 0 {
		return Monomial(field.One(), 0), nil
	}
	product, err := EvaluateOffsetFFT(factors[0], domSize, h)
	if err != nil {
		return Polynomial{}, fmt.Errorf("poly: multiply: evaluating factor 0: %w", err)
	}
	for k := 1; k < len(factors); k++ {
		evalK, err := EvaluateOffsetFFT(factors[k], domSize, h)
		if err != nil {
			return Polynomial{}, fmt.Errorf("poly: multiply: evaluating factor %d: %w", k, err)
		}
		for i := range product {
			product[i] = product[i].Mul(evalK[i])
		}
	}
	return InterpolateOffsetFFT(product, h)
}

// Power computes f^e in evaluation form. Valid iff deg(f^e) < domSize.
func Power(f Polynomial, e uint64, domSize int, h field.Element) (Polynomial, error) {
	fEval, err := EvaluateOffsetFFT(f, domSize, h)
	if err != nil {
		return Polynomial{}, fmt.Errorf("poly: power: evaluating base: %w", err)
	}
	out := make([]field.Element, domSize)
	for i, v := range fEval {
		out[i] = v.ExpUint64(e)
	}
	return InterpolateOffsetFFT(out, h)
}

// Fold implements the FRI folding step: if f(x) = f_e(x^2) + x*f_o(x^2),
// Fold returns f_e + beta*f_o, the even/odd coefficient split with the odd
// half scaled by beta. Result degree is at most floor(deg f / 2).
func Fold(f Polynomial, beta field.Element) Polynomial {
	coeffs := f.Coefficients()
	half := (len(coeffs) + 1) / 2
	out := make([]field.Element, half)
	for i := range out {
		out[i] = field.Zero()
	}
	for i, c := range coeffs {
		if i%2 == 0 {
			out[i/2] = out[i/2].Add(c)
		} else {
			out[i/2] = out[i/2].Add(c.Mul(beta))
		}
	}
	return New(out)
}
