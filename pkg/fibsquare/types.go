package fibsquare

import (
	"fmt"
	"math/big"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/fri"
	"github.com/vybium/fibsquare-stark/internal/fibsquare/merkle"
)

// FieldElement is the public alias for a Stark252 field value.
type FieldElement = field.Element

// ParseFieldElement parses a decimal string into a field element.
func ParseFieldElement(decimal string) (FieldElement, error) {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return FieldElement{}, fmt.Errorf("fibsquare: invalid decimal integer %q", decimal)
	}
	return field.New(v), nil
}

// PublicInput is the statement a proof attests to: the protocol parameters
// and the two boundary values, absorbed into the transcript in this exact
// field order.
type PublicInput struct {
	Log2Interp int          `json:"log2_interp"`
	Log2Eval   int          `json:"log2_eval"`
	NumQueries int          `json:"num_queries"`
	A0         FieldElement `json:"a0"`
	A1022      FieldElement `json:"a1022"`
}

// TraceOpening is the ordered triple of trace openings for one query index:
// T(x0), T(g*x0), T(g^2*x0), each with its authentication path against
// Root_T.
type TraceOpening struct {
	T0    FieldElement `json:"t0"`
	Path0 merkle.Proof `json:"path0"`
	T1    FieldElement `json:"t1"`
	Path1 merkle.Proof `json:"path1"`
	T2    FieldElement `json:"t2"`
	Path2 merkle.Proof `json:"path2"`
}

// Proof is the complete non-interactive argument: the trace commitment, one
// TraceOpening per query, and the FRI proof over the composition
// polynomial.
type Proof struct {
	RootT         merkle.Root    `json:"root_t"`
	TraceOpenings []TraceOpening `json:"trace_openings"`
	FRI           fri.Proof      `json:"fri"`
}
