package field

import (
	"fmt"
	"math/big"
	"testing"
)

func TestArithmeticBasics(t *testing.T) {
	a := FromInt64(5)
	b := FromInt64(3)

	if got := a.Add(b); !got.Equal(FromInt64(8)) {
		t.Errorf("Add: got %s, want 8", got)
	}
	if got := a.Sub(b); !got.Equal(FromInt64(2)) {
		t.Errorf("Sub: got %s, want 2", got)
	}
	if got := a.Mul(b); !got.Equal(FromInt64(15)) {
		t.Errorf("Mul: got %s, want 15", got)
	}
	if got := a.Neg(); !got.Add(a).IsZero() {
		t.Errorf("Neg: a + (-a) should be zero, got %s", got.Add(a))
	}
}

func TestModularReduction(t *testing.T) {
	// Modulus - 1 + 2 should wrap around to 1.
	one := big.NewInt(1)
	a := New(new(big.Int).Sub(Modulus, one)) // p-1
	b := FromInt64(2)

	got := a.Add(b)
	if !got.Equal(One()) {
		t.Errorf("expected wraparound to 1, got %s", got)
	}
}

func TestInverseAndDiv(t *testing.T) {
	a := FromInt64(7)
	inv := a.Inv()
	if !a.Mul(inv).Equal(One()) {
		t.Fatalf("a * a^-1 should be 1, got %s", a.Mul(inv))
	}

	b := FromInt64(21)
	q := b.Div(a)
	if !q.Equal(FromInt64(3)) {
		t.Errorf("21/7: got %s, want 3", q)
	}
}

func TestInvZeroPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Inv of zero should panic")
		}
	}()
	Zero().Inv()
}

func TestExp(t *testing.T) {
	a := FromInt64(2)
	got := a.ExpUint64(10)
	if !got.Equal(FromInt64(1024)) {
		t.Errorf("2^10: got %s, want 1024", got)
	}
	if got := a.ExpUint64(0); !got.Equal(One()) {
		t.Errorf("2^0: got %s, want 1", got)
	}
}

func TestPrimitiveRootOfUnityHasExactOrder(t *testing.T) {
	for _, n := range []uint64{2, 4, 8, 1024, 8192} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			g, err := PrimitiveRootOfUnity(n)
			if err != nil {
				t.Fatalf("PrimitiveRootOfUnity(%d): %v", n, err)
			}
			if !g.ExpUint64(n).Equal(One()) {
				t.Fatalf("g^n should be 1, got %s", g.ExpUint64(n))
			}
			if g.ExpUint64(n / 2).Equal(One()) {
				t.Fatalf("g^(n/2) should not be 1 (order should be exactly n)")
			}
		})
	}
}

func TestPrimitiveRootOfUnityRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := PrimitiveRootOfUnity(3); err == nil {
		t.Fatal("expected an error for a non-power-of-two n")
	}
}

func TestBytes32RoundTrip(t *testing.T) {
	a := FromInt64(123456789)
	b := a.Bytes32()
	back := FromBytesBE(b[:])
	if !a.Equal(back) {
		t.Errorf("round trip through Bytes32 changed value: %s != %s", a, back)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := FromInt64(987654321)
	data, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var b Element
	if err := b.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("JSON round trip changed value: %s != %s", a, b)
	}
}

func TestRandomDistinct(t *testing.T) {
	a, err := Random()
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, err := Random()
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if a.Equal(b) {
		t.Skip("extremely unlikely collision between two random field elements")
	}
}
