// Package fibsquare is a STARK proving and verification system for a
// small, fixed computational statement: the first 1024 terms of the
// "FibonacciSq" sequence a[0]=1, a[1]=w (a prover-held witness),
// a[i]=a[i-1]^2+a[i-2]^2, reaching a claimed value a[1022]. The prover
// convinces a verifier, non-interactively via the Fiat-Shamir transform,
// that it knows w producing the claimed terminal value, without revealing
// the trace.
//
// # Quick Start
//
//	config := fibsquare.DefaultConfig()
//	prover, err := fibsquare.NewProver(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	witness := fibsquare.FieldElement(...) // a[1], kept secret
//	a0 := ...                              // a[0], public
//	a1022 := ...                           // claimed terminal value, public
//	pub, proof, err := prover.Prove(witness, a0, a1022)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	verifier, err := fibsquare.NewVerifier(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if verifier.Verify(pub, proof) {
//		fmt.Println("proof accepted")
//	}
//
// # Architecture
//
// This module uses the same public/private split as the rest of the
// retrieved STARK-prover corpus it is built from:
//
//   - pkg/fibsquare/: public API (this package) — Config, Prover, Verifier,
//     the wire types of Proof.
//   - internal/fibsquare/: the polynomial IOP pipeline — field and
//     polynomial arithmetic, the Keccak-256 Merkle commitment, the
//     Fiat-Shamir transcript, trace construction, constraint construction,
//     and FRI.
//
// # References
//
//   - STARK-101 tutorial: https://starkware.co/stark-101/
//   - FRI paper: https://eccc.weizmann.ac.il/report/2017/134/
package fibsquare
