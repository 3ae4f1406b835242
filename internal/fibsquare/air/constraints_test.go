package air

import (
	"testing"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/poly"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/trace"
)

// fixedSampler returns a fixed sequence of field elements, for
// deterministic test challenges instead of a real transcript.
type fixedSampler struct {
	values []field.Element
	i      int
}

func (s *fixedSampler) SampleField() field.Element {
	v := s.values[s.i]
	s.i++
	return v
}

func buildTestTrace(t *testing.T) (*trace.Trace, field.Element, field.Element, int, int, field.Element) {
	t.Helper()
	n := 8
	d := 64
	h := field.FromUint64(2)
	a0 := field.One()
	witness := field.FromInt64(5)

	tr, err := trace.Build(n, a0, witness, d, h)
	if err != nil {
		t.Fatalf("trace.Build: %v", err)
	}
	return tr, a0, tr.Terminal(), n, d, h
}

func TestBuildProducesConsistentComposition(t *testing.T) {
	tr, a0, a1022, n, d, h := buildTestTrace(t)
	g, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}
	sampler := &fixedSampler{values: []field.Element{field.FromInt64(11), field.FromInt64(13), field.FromInt64(17)}}

	c, err := Build(tr.Poly, n, a0, a1022, g, d, h, sampler)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !c.Alpha.Equal(field.FromInt64(11)) || !c.Beta.Equal(field.FromInt64(13)) || !c.Gamma.Equal(field.FromInt64(17)) {
		t.Errorf("challenges should come from the sampler in order")
	}

	// H must equal alpha*p0 + beta*p1 + gamma*p2 pointwise.
	x := field.FromUint64(999)
	want := c.Alpha.Mul(c.P0.Eval(x)).Add(c.Beta.Mul(c.P1.Eval(x))).Add(c.Gamma.Mul(c.P2.Eval(x)))
	if !c.H.Eval(x).Equal(want) {
		t.Errorf("H(x) should equal the weighted sum of the constraint polynomials")
	}
}

func TestBuildRejectsWrongTerminal(t *testing.T) {
	tr, a0, _, n, d, h := buildTestTrace(t)
	g, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}
	sampler := &fixedSampler{values: []field.Element{field.FromInt64(1), field.FromInt64(1), field.FromInt64(1)}}

	wrongTerminal := tr.Terminal().Add(field.One())
	if _, err := Build(tr.Poly, n, a0, wrongTerminal, g, d, h, sampler); err == nil {
		t.Fatal("expected an error building constraints against a wrong terminal value")
	}
}

func TestEvalAtPointMatchesH(t *testing.T) {
	tr, a0, a1022, n, d, h := buildTestTrace(t)
	g, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}
	w, err := field.PrimitiveRootOfUnity(uint64(d))
	if err != nil {
		t.Fatalf("PrimitiveRootOfUnity: %v", err)
	}
	sampler := &fixedSampler{values: []field.Element{field.FromInt64(11), field.FromInt64(13), field.FromInt64(17)}}

	c, err := Build(tr.Poly, n, a0, a1022, g, d, h, sampler)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	q := 7 // an arbitrary query index in [0, d)
	x0 := h.Mul(w.ExpUint64(uint64(q)))
	t0 := tr.Poly.Eval(x0)
	t1 := tr.Poly.Eval(x0.Mul(g))
	t2 := tr.Poly.Eval(x0.Mul(g).Mul(g))

	got := EvalAtPoint(n, a0, a1022, g, x0, t0, t1, t2, c.Alpha, c.Beta, c.Gamma)
	want := c.H.Eval(x0)
	if !got.Equal(want) {
		t.Errorf("EvalAtPoint mismatch: got %s, want %s", got, want)
	}
}

func TestExactDivideRejectsNonExactDivision(t *testing.T) {
	num := poly.New([]field.Element{field.FromInt64(1), field.FromInt64(1), field.FromInt64(1)}) // 1+x+x^2
	den := poly.New([]field.Element{field.FromInt64(-1), field.FromInt64(1)})                     // x-1, does not divide num exactly
	if _, err := exactDivide("test", num, den, 16, field.FromUint64(2), 10); err == nil {
		t.Fatal("expected a non-exact division to be rejected")
	}
}
