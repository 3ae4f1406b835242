// Package fri implements the FRI low-degree test: the prover's
// commit-and-fold loop and the verifier's decommit-and-fold loop, binding
// every Merkle root and folding challenge into the shared transcript.
package fri

import (
	"fmt"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/merkle"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/poly"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/transcript"
)

// Query is a single query's opening within one FRI layer: an authentication
// path for the value at the query's own index (whose value the verifier
// reconstructs rather than receives), the transmitted "symmetric" value at
// idx XOR D/2, and its authentication path.
type Query struct {
	PathIdx merkle.Proof  `json:"path_idx"`
	SymEval field.Element `json:"sym_eval"`
	PathSym merkle.Proof  `json:"path_sym"`
}

// Layer is one round of folding: the Merkle root committing to that round's
// evaluation vector, plus one Query per externally-chosen query index.
type Layer struct {
	Root    merkle.Root `json:"root"`
	Queries []Query     `json:"queries"`
}

// Proof is the full FRI transcript artifact: the per-layer commitments and
// openings, plus the constant value the folding converges to.
type Proof struct {
	Layers        []Layer       `json:"layers"`
	FinalConstant field.Element `json:"final_constant"`
}

// CommitAndFold runs the prover side of FRI on f0 over the offset domain of
// size d0 with offset h0, opening the given query indices (sampled once,
// externally, before this call) at every layer, folding with transcript-
// sampled challenges until the polynomial is constant.
func CommitAndFold(f0 poly.Polynomial, d0 int, h0 field.Element, queryIndices []int, tr *transcript.Channel) (*Proof, error) {
	f := f0
	d := d0
	h := h0
	var layers []Layer

	maxRounds := bitLen(d0) + 2
	for round := 0; ; round++ {
		if round > maxRounds {
			return nil, fmt.Errorf("fri: folding did not converge to a constant within %d rounds", maxRounds)
		}
		evalVals, err := poly.EvaluateOffsetFFT(f, d, h)
		if err != nil {
			return nil, fmt.Errorf("fri: layer %d: evaluating: %w", round, err)
		}
		tree, err := merkle.Build(evalVals)
		if err != nil {
			return nil, fmt.Errorf("fri: layer %d: building commitment: %w", round, err)
		}
		root := tree.Root()
		tr.Absorb(root[:])

		queries := make([]Query, len(queryIndices))
		for i, q := range queryIndices {
			idx := mod(q, d)
			sym := mod(idx+d/2, d)
			pathIdx, err := tree.Open(idx)
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d: opening index %d: %w", round, idx, err)
			}
			pathSym, err := tree.Open(sym)
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d: opening symmetric index %d: %w", round, sym, err)
			}
			queries[i] = Query{PathIdx: pathIdx, SymEval: evalVals[sym], PathSym: pathSym}
		}
		layers = append(layers, Layer{Root: root, Queries: queries})

		if c, ok := f.IsConstant(); ok {
			tr.AbsorbElement(c)
			return &Proof{Layers: layers, FinalConstant: c}, nil
		}

		beta := tr.SampleField()
		f = poly.Fold(f, beta)
		d /= 2
		h = h.Square()
		if d < 2 {
			return nil, fmt.Errorf("fri: domain exhausted before polynomial became constant")
		}
	}
}

// DecommitAndFold runs the verifier side: it re-derives every folding
// challenge from the transcript, checks every Merkle opening at every
// layer, reconstructs each layer's claimed value at the query index from
// the previous layer via the folding formula, and checks the final
// reconstructed value against the proof's final constant.
//
// firstLayerValues supplies H(x_q) for each query index, computed by the
// caller from the opened trace values (the verifier never learns H's
// coefficients). w is the primitive d0-th root of unity the evaluation
// domain was built from, and h0 its offset.
func DecommitAndFold(p *Proof, d0 int, w, h0 field.Element, queryIndices []int, firstLayerValues map[int]field.Element, tr *transcript.Channel) (bool, error) {
	if len(p.Layers) == 0 {
		return false, fmt.Errorf("fri: proof has no layers")
	}

	x := make([]field.Element, len(queryIndices))
	prevEval := make([]field.Element, len(queryIndices))
	for i, q := range queryIndices {
		x[i] = h0.Mul(w.ExpUint64(uint64(q)))
		v, ok := firstLayerValues[q]
		if !ok {
			return false, fmt.Errorf("fri: missing first-layer value for query %d", q)
		}
		prevEval[i] = v
	}

	d := d0
	two := field.FromUint64(2)

	for round, layer := range p.Layers {
		tr.Absorb(layer.Root[:])
		if len(layer.Queries) != len(queryIndices) {
			return false, nil
		}

		for i, q := range queryIndices {
			idx := mod(q, d)
			sym := mod(idx+d/2, d)
			if !merkle.Verify(layer.Root, prevEval[i], idx, layer.Queries[i].PathIdx) {
				return false, nil
			}
			if !merkle.Verify(layer.Root, layer.Queries[i].SymEval, sym, layer.Queries[i].PathSym) {
				return false, nil
			}
		}

		isLast := round == len(p.Layers)-1
		if isLast {
			for i := range queryIndices {
				if !prevEval[i].Equal(p.FinalConstant) {
					return false, nil
				}
			}
			tr.Absorb(p.FinalConstant.BytesBE())
			return true, nil
		}

		beta := tr.SampleField()
		next := make([]field.Element, len(queryIndices))
		for i := range queryIndices {
			evalV := prevEval[i]
			symV := layer.Queries[i].SymEval
			xInv := x[i].Inv()
			sum := evalV.Add(symV)
			diff := evalV.Sub(symV).Mul(beta).Mul(xInv)
			next[i] = sum.Add(diff).Div(two)
			x[i] = x[i].Square()
		}
		prevEval = next
		d /= 2
	}

	return false, fmt.Errorf("fri: unreachable")
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func bitLen(n int) int {
	l := 0
	for n > 0 {
		l++
		n >>= 1
	}
	return l
}
