// Package air builds the boundary and transition constraint polynomials for
// the FibonacciSq statement and combines them into the single composition
// polynomial the FRI low-degree test runs on.
package air

import (
	"fmt"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/poly"
)

// Constraints holds the three constraint polynomials and their random
// linear combination H.
type Constraints struct {
	P0, P1, P2 poly.Polynomial
	H          poly.Polynomial
	Alpha      field.Element
	Beta       field.Element
	Gamma      field.Element
}

// exactDivide performs the division and checks the resulting quotient's
// degree against the bound a genuine (remainder-free) division must
// respect. A non-exact division aliases to a polynomial that, with
// overwhelming probability over the field, has much higher degree than the
// true quotient, so this bound check is how the spec's "all three divisions
// must be exact" requirement is enforced without ever materializing a
// remainder.
func exactDivide(label string, num, den poly.Polynomial, domSize int, h field.Element, maxDegree int) (poly.Polynomial, error) {
	q, err := poly.Divide(num, den, domSize, h)
	if err != nil {
		return poly.Polynomial{}, fmt.Errorf("air: %s: %w", label, err)
	}
	if q.Degree() > maxDegree {
		return poly.Polynomial{}, fmt.Errorf("air: %s: non-exact division (quotient degree %d exceeds bound %d)", label, q.Degree(), maxDegree)
	}
	return q, nil
}

// Sampler is the subset of the transcript interface the constraint builder
// needs: three challenges drawn after the trace commitment is absorbed.
type Sampler interface {
	SampleField() field.Element
}

// Build computes p0, p1, p2 from the trace polynomial T and boundary values
// a0, a1022, then samples alpha, beta, gamma from the transcript and forms
// H = alpha*p0 + beta*p1 + gamma*p2.
//
// g is the primitive N-th root of unity T was interpolated over; domSize
// and h are the evaluation-form working domain and offset used for every
// division/multiplication/power (the module uses the evaluation domain D
// throughout, which comfortably exceeds every intermediate degree here).
func Build(t poly.Polynomial, n int, a0, a1022 field.Element, g field.Element, domSize int, h field.Element, s Sampler) (*Constraints, error) {
	one := field.One()
	x := poly.Monomial(one, 1)

	gPow := func(k int) field.Element {
		return g.ExpUint64(uint64(k))
	}
	g1021, g1022, g1023 := gPow(n-3), gPow(n-2), gPow(n-1)

	p0, err := exactDivide("boundary constraint at step 0",
		t.SubScalar(a0), x.SubScalar(one), domSize, h, n-2)
	if err != nil {
		return nil, err
	}

	p1, err := exactDivide("boundary constraint at terminal step",
		t.SubScalar(a1022), x.SubScalar(g1022), domSize, h, n-2)
	if err != nil {
		return nil, err
	}

	tg := t.Scale(g)
	tg2 := t.Scale(g.Mul(g))
	tSquared, err := poly.Power(t, 2, domSize, h)
	if err != nil {
		return nil, fmt.Errorf("air: squaring trace polynomial: %w", err)
	}
	tgSquared, err := poly.Power(tg, 2, domSize, h)
	if err != nil {
		return nil, fmt.Errorf("air: squaring shifted trace polynomial: %w", err)
	}

	diff := tg2.Sub(tgSquared).Sub(tSquared)
	numerator, err := poly.Multiply([]poly.Polynomial{
		diff,
		x.SubScalar(g1021),
		x.SubScalar(g1022),
		x.SubScalar(g1023),
	}, domSize, h)
	if err != nil {
		return nil, fmt.Errorf("air: building transition numerator: %w", err)
	}

	denominator := poly.Monomial(one, n).SubScalar(one) // x^N - 1
	p2, err := exactDivide("transition constraint", numerator, denominator, domSize, h, n+1)
	if err != nil {
		return nil, err
	}

	alpha := s.SampleField()
	beta := s.SampleField()
	gamma := s.SampleField()

	h0 := p0.MulScalar(alpha)
	h1 := p1.MulScalar(beta)
	h2 := p2.MulScalar(gamma)
	composition := h0.Add(h1).Add(h2)

	return &Constraints{P0: p0, P1: p1, P2: p2, H: composition, Alpha: alpha, Beta: beta, Gamma: gamma}, nil
}

// EvalAtPoint reconstructs H(x0) from the three openings (t0, t1, t2) =
// (T(x0), T(g*x0), T(g^2*x0)) and the already-sampled alpha/beta/gamma, the
// formula the verifier uses instead of ever seeing H's coefficients.
func EvalAtPoint(n int, a0, a1022 field.Element, g, x0, t0, t1, t2, alpha, beta, gamma field.Element) field.Element {
	one := field.One()
	gPow := func(k int) field.Element { return g.ExpUint64(uint64(k)) }
	g1021, g1022, g1023 := gPow(n-3), gPow(n-2), gPow(n-1)

	boundary0 := t0.Sub(a0).Div(x0.Sub(one))
	boundary1 := t0.Sub(a1022).Div(x0.Sub(g1022))

	transitionNum := t2.Sub(t1.Square()).Sub(t0.Square())
	transitionNum = transitionNum.Mul(x0.Sub(g1021)).Mul(x0.Sub(g1022)).Mul(x0.Sub(g1023))
	transitionDen := x0.ExpUint64(uint64(n)).Sub(one)
	transition := transitionNum.Div(transitionDen)

	return alpha.Mul(boundary0).Add(beta.Mul(boundary1)).Add(gamma.Mul(transition))
}
