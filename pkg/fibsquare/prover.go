package fibsquare

import (
	"github.com/vybium/fibsquare-stark/internal/fibsquare/air"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/fri"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/merkle"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/trace"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/transcript"
)

// offset is the fixed non-domain evaluation-domain offset h=2, guaranteed
// by construction to satisfy h^N != 1 for every trace length this module
// supports (h lies outside every power-of-two multiplicative subgroup of
// the field other than the whole group, and the whole group's order is odd
// times 2^192, far larger than any trace length used here).
var offset = field.FromUint64(2)

// Prover builds FibonacciSq STARK proofs under a fixed Config.
type Prover struct {
	config *Config
}

// NewProver validates config and returns a Prover bound to it.
func NewProver(config *Config) (*Prover, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Prover{config: config.Clone()}, nil
}

// Prove builds the public input for (a0, a1022) and produces a proof that
// the prover knows a witness w with a[1]=w reaching a1022, following the
// orchestration of the design's STARK Prover component:
//  1. absorb public input
//  2. build trace, commit, absorb Root_T
//  3. build constraint polynomials, sample alpha/beta/gamma, form H
//  4. sample query indices
//  5. assemble trace openings
//  6. run FRI commit-and-fold on H
func (p *Prover) Prove(witness, a0, a1022 FieldElement) (*PublicInput, *Proof, error) {
	n := p.config.TraceLength
	d := p.config.EvaluationDomainSize
	numQueries := p.config.NumQueries
	blowup := p.config.Blowup()

	pub := &PublicInput{
		Log2Interp: log2(n),
		Log2Eval:   log2(d),
		NumQueries: numQueries,
		A0:         a0,
		A1022:      a1022,
	}

	tr := transcript.New()
	absorbPublicInput(tr, pub)

	tb, err := trace.Build(n, a0, witness, d, offset)
	if err != nil {
		return nil, nil, newError(ErrInvalidInput, "building trace", err)
	}
	if !tb.Terminal().Equal(a1022) {
		return nil, nil, newError(ErrNonExactDivision, "witness does not reach the claimed terminal value", nil)
	}

	traceTree, err := merkle.Build(tb.LDE)
	if err != nil {
		return nil, nil, newError(ErrProofGeneration, "committing to trace evaluations", err)
	}
	rootT := traceTree.Root()
	tr.Absorb(rootT[:])

	g, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		return nil, nil, newError(ErrInvalidConfig, "deriving trace-domain root of unity", err)
	}

	constraints, err := air.Build(tb.Poly, n, a0, a1022, g, d, offset, tr)
	if err != nil {
		return nil, nil, newError(ErrNonExactDivision, "building constraint polynomials", err)
	}

	queryIndices := make([]int, numQueries)
	for i := range queryIndices {
		idx, err := tr.SampleIndex(d)
		if err != nil {
			return nil, nil, newError(ErrProofGeneration, "sampling query index", err)
		}
		queryIndices[i] = idx
	}

	openings := make([]TraceOpening, numQueries)
	for i, q := range queryIndices {
		opening, err := openTrace(traceTree, tb.LDE, q, blowup, d)
		if err != nil {
			return nil, nil, newError(ErrProofGeneration, "opening trace evaluations", err)
		}
		openings[i] = *opening
	}

	friProof, err := fri.CommitAndFold(constraints.H, d, offset, queryIndices, tr)
	if err != nil {
		return nil, nil, newError(ErrProofGeneration, "running FRI", err)
	}

	return pub, &Proof{RootT: rootT, TraceOpenings: openings, FRI: *friProof}, nil
}

func openTrace(tree *merkle.Tree, lde []field.Element, q, blowup, d int) (*TraceOpening, error) {
	idx0 := mod(q, d)
	idx1 := mod(q+blowup, d)
	idx2 := mod(q+2*blowup, d)

	path0, err := tree.Open(idx0)
	if err != nil {
		return nil, err
	}
	path1, err := tree.Open(idx1)
	if err != nil {
		return nil, err
	}
	path2, err := tree.Open(idx2)
	if err != nil {
		return nil, err
	}

	return &TraceOpening{
		T0: lde[idx0], Path0: path0,
		T1: lde[idx1], Path1: path1,
		T2: lde[idx2], Path2: path2,
	}, nil
}

func absorbPublicInput(tr *transcript.Channel, pub *PublicInput) {
	modBytes := field.Modulus.Bytes()
	var pad [32]byte
	copy(pad[32-len(modBytes):], modBytes)
	tr.Absorb(pad[:])
	tr.AbsorbUint64BE(uint64(pub.Log2Interp))
	tr.AbsorbUint64BE(uint64(pub.Log2Eval))
	tr.AbsorbUint64BE(uint64(pub.NumQueries))
	tr.AbsorbElement(pub.A0)
	tr.AbsorbElement(pub.A1022)
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func log2(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}
