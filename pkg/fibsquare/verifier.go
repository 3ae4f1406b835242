package fibsquare

import (
	"github.com/vybium/fibsquare-stark/internal/fibsquare/air"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/fri"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/merkle"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/transcript"
)

// Verifier checks FibonacciSq STARK proofs under a fixed Config. Verify
// never returns an error for a rejected proof: every failure mode collapses
// to the single boolean false, exactly matching the design's "no partial
// result is reported" rule. Only NewVerifier returns an error, for a
// malformed Config; a malformed PublicInput or proof (e.g. a query count
// that differs from the Config, or the wrong number of openings) is
// treated as a rejection.
type Verifier struct {
	config *Config
}

// NewVerifier validates config and returns a Verifier bound to it.
func NewVerifier(config *Config) (*Verifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Verifier{config: config.Clone()}, nil
}

// Verify re-derives every Fiat-Shamir challenge from pub and proof, checks
// every trace opening against Root_T, reconstructs H at each query point
// from the opened trace values, and runs FRI's decommit-and-fold to check
// the remaining algebraic consistency. It returns true iff every check
// passes.
func (v *Verifier) Verify(pub *PublicInput, proof *Proof) bool {
	n := v.config.TraceLength
	d := v.config.EvaluationDomainSize
	blowup := v.config.Blowup()

	if pub.NumQueries != v.config.NumQueries {
		return false
	}
	if len(proof.TraceOpenings) != pub.NumQueries {
		return false
	}

	tr := transcript.New()
	absorbPublicInput(tr, pub)
	tr.Absorb(proof.RootT[:])

	g, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		return false
	}
	w, err := field.PrimitiveRootOfUnity(uint64(d))
	if err != nil {
		return false
	}

	alpha := tr.SampleField()
	beta := tr.SampleField()
	gamma := tr.SampleField()

	queryIndices := make([]int, pub.NumQueries)
	for i := range queryIndices {
		idx, err := tr.SampleIndex(d)
		if err != nil {
			return false
		}
		queryIndices[i] = idx
	}

	firstLayerValues := make(map[int]field.Element, len(queryIndices))
	for i, q := range queryIndices {
		opening := proof.TraceOpenings[i]
		if !verifyTraceOpening(proof.RootT, opening, q, blowup, d) {
			return false
		}

		x0 := offset.Mul(w.ExpUint64(uint64(q)))
		hx0 := air.EvalAtPoint(n, pub.A0, pub.A1022, g, x0, opening.T0, opening.T1, opening.T2, alpha, beta, gamma)
		firstLayerValues[q] = hx0
	}

	ok, err := fri.DecommitAndFold(&proof.FRI, d, w, offset, queryIndices, firstLayerValues, tr)
	if err != nil {
		return false
	}
	return ok
}

func verifyTraceOpening(root merkle.Root, opening TraceOpening, q, blowup, d int) bool {
	idx0 := mod(q, d)
	idx1 := mod(q+blowup, d)
	idx2 := mod(q+2*blowup, d)

	if !merkle.Verify(root, opening.T0, idx0, opening.Path0) {
		return false
	}
	if !merkle.Verify(root, opening.T1, idx1, opening.Path1) {
		return false
	}
	if !merkle.Verify(root, opening.T2, idx2, opening.Path2) {
		return false
	}
	return true
}
