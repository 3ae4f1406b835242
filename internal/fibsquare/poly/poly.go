// Package poly implements polynomials over the Stark252 field: coefficient
// arithmetic, Horner evaluation, and the FFT-based evaluation-form
// utilities (divide, multiply, power, fold) the STARK pipeline uses to stay
// on a single degree-bounded representation throughout.
package poly

import (
	"fmt"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
)

// Polynomial is a dense coefficient vector, lowest degree first, with
// trailing zero coefficients trimmed (the zero polynomial has an empty
// slice).
type Polynomial struct {
	coeffs []field.Element
}

// New builds a Polynomial from coefficients, trimming trailing zeros.
func New(coeffs []field.Element) Polynomial {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	out := make([]field.Element, n)
	copy(out, coeffs[:n])
	return Polynomial{coeffs: out}
}

// Monomial returns coeff * x^degree.
func Monomial(coeff field.Element, degree int) Polynomial {
	c := make([]field.Element, degree+1)
	for i := range c {
		c[i] = field.Zero()
	}
	c[degree] = coeff
	return New(c)
}

// Zero is the zero polynomial.
func Zero() Polynomial { return Polynomial{} }

// Degree returns -1 for the zero polynomial, else len(coeffs)-1.
func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// Coefficients returns the underlying coefficient slice (lowest degree
// first). Callers must not mutate it.
func (p Polynomial) Coefficients() []field.Element {
	return p.coeffs
}

// Coefficient returns the coefficient of x^i, or zero beyond the degree.
func (p Polynomial) Coefficient(i int) field.Element {
	if i < 0 || i >= len(p.coeffs) {
		return field.Zero()
	}
	return p.coeffs[i]
}

// Eval evaluates the polynomial at x via Horner's method.
func (p Polynomial) Eval(x field.Element) field.Element {
	result := field.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// Add returns p + other.
func (p Polynomial) Add(other Polynomial) Polynomial {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}
	return New(out)
}

// Sub returns p - other.
func (p Polynomial) Sub(other Polynomial) Polynomial {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Sub(other.Coefficient(i))
	}
	return New(out)
}

// SubScalar returns p - c (c treated as a degree-0 polynomial).
func (p Polynomial) SubScalar(c field.Element) Polynomial {
	return p.Sub(Monomial(c, 0))
}

// MulScalar returns c * p.
func (p Polynomial) MulScalar(c field.Element) Polynomial {
	out := make([]field.Element, len(p.coeffs))
	for i, v := range p.coeffs {
		out[i] = v.Mul(c)
	}
	return New(out)
}

// Mul multiplies two polynomials by schoolbook convolution of coefficients.
// Its cost is quadratic in the degrees, so it suits only small factors; the
// pipeline itself forms every product, including the three (x - g^k) terms
// of the transition constraint, with the evaluation-form Multiply in
// utils.go.
func (p Polynomial) Mul(other Polynomial) Polynomial {
	if len(p.coeffs) == 0 || len(other.coeffs) == 0 {
		return Zero()
	}
	out := make([]field.Element, len(p.coeffs)+len(other.coeffs)-1)
	for i := range out {
		out[i] = field.Zero()
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range other.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return New(out)
}

// Scale returns the polynomial T such that T(x) = p(c*x), i.e. composition
// with the scaling map sigma_c(x) = c*x, computed directly in coefficient
// form: coefficient i is scaled by c^i.
func (p Polynomial) Scale(c field.Element) Polynomial {
	out := make([]field.Element, len(p.coeffs))
	power := field.One()
	for i, v := range p.coeffs {
		out[i] = v.Mul(power)
		power = power.Mul(c)
	}
	return New(out)
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.coeffs) == 0
}

// IsConstant reports whether p has degree <= 0, returning the constant
// value (zero for the zero polynomial).
func (p Polynomial) IsConstant() (field.Element, bool) {
	switch len(p.coeffs) {
	case 0:
		return field.Zero(), true
	case 1:
		return p.coeffs[0], true
	default:
		return field.Zero(), false
	}
}

// String renders a short debug representation.
func (p Polynomial) String() string {
	return fmt.Sprintf("Polynomial(degree=%d)", p.Degree())
}
