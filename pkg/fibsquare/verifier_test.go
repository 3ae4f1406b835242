package fibsquare

import "testing"

func TestVerifyRejectsQueryCountMismatch(t *testing.T) {
	config := testConfig()
	prover, err := NewProver(config)
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	verifier, err := NewVerifier(config)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	a0 := oneForTest()
	witness, err := ParseFieldElement("3141592")
	if err != nil {
		t.Fatalf("ParseFieldElement: %v", err)
	}
	a1022 := computeTestTerminal(config, a0, witness)

	pub, proof, err := prover.Prove(witness, a0, a1022)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	tamperedPub := *pub
	tamperedPub.NumQueries++
	if verifier.Verify(&tamperedPub, proof) {
		t.Fatal("expected verification to fail when NumQueries doesn't match the config")
	}
}

func TestVerifyRejectsTruncatedTraceOpenings(t *testing.T) {
	config := testConfig()
	prover, err := NewProver(config)
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	verifier, err := NewVerifier(config)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	a0 := oneForTest()
	witness, err := ParseFieldElement("3141592")
	if err != nil {
		t.Fatalf("ParseFieldElement: %v", err)
	}
	a1022 := computeTestTerminal(config, a0, witness)

	pub, proof, err := prover.Prove(witness, a0, a1022)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	tampered := *proof
	tampered.TraceOpenings = tampered.TraceOpenings[:len(tampered.TraceOpenings)-1]
	if verifier.Verify(pub, &tampered) {
		t.Fatal("expected verification to fail with a truncated set of trace openings")
	}
}

func TestVerifyRejectsTamperedFRIProof(t *testing.T) {
	config := testConfig()
	prover, err := NewProver(config)
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	verifier, err := NewVerifier(config)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	a0 := oneForTest()
	witness, err := ParseFieldElement("3141592")
	if err != nil {
		t.Fatalf("ParseFieldElement: %v", err)
	}
	a1022 := computeTestTerminal(config, a0, witness)

	pub, proof, err := prover.Prove(witness, a0, a1022)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof.FRI.Layers) == 0 {
		t.Fatal("expected at least one FRI layer")
	}

	tampered := *proof
	tampered.FRI.FinalConstant = tampered.FRI.FinalConstant.Add(oneForTest())
	if verifier.Verify(pub, &tampered) {
		t.Fatal("expected verification to fail with a tampered FRI final constant")
	}
}

func TestNewVerifierRejectsInvalidConfig(t *testing.T) {
	bad := DefaultConfig().WithEvaluationDomainSize(0)
	if _, err := NewVerifier(bad); err == nil {
		t.Fatal("expected NewVerifier to reject an invalid config")
	}
}
