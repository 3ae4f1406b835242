// Package field implements arithmetic over the 252-bit Stark-friendly prime
// field used throughout the proving pipeline: p = 2^251 + 17*2^192 + 1.
//
// The field has 2-adicity 192 (p-1 = 2^192 * m for odd m), so primitive
// roots of unity exist for every power of two up to 2^192, comfortably
// covering the trace domain (2^10) and evaluation domain (2^13) this module
// needs.
package field

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
)

// Element is a value in the Stark252 prime field, always held in
// canonical (reduced, non-negative) form.
type Element struct {
	value *big.Int
}

// Modulus is p = 2^251 + 17*2^192 + 1.
var Modulus = mustModulus()

// generatorValue is a multiplicative generator of the full field.
var generatorValue = big.NewInt(3)

// twoAdicity is the largest k such that 2^k | (p-1).
const twoAdicity = 192

func mustModulus() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 251)
	seventeenShift := new(big.Int).Lsh(big.NewInt(17), 192)
	m.Add(m, seventeenShift)
	m.Add(m, big.NewInt(1))
	return m
}

func reduce(v *big.Int) *big.Int {
	r := new(big.Int).Mod(v, Modulus)
	return r
}

// New reduces an arbitrary big.Int into the field.
func New(v *big.Int) Element {
	return Element{value: reduce(v)}
}

// FromInt64 builds a field element from a (possibly negative) int64.
func FromInt64(v int64) Element {
	return New(big.NewInt(v))
}

// FromUint64 builds a field element from a uint64.
func FromUint64(v uint64) Element {
	return New(new(big.Int).SetUint64(v))
}

// FromBytesBE interprets b as a big-endian unsigned integer and reduces it
// into the field. Used for the canonical encoding of public inputs and for
// deriving field-element transcript samples.
func FromBytesBE(b []byte) Element {
	return New(new(big.Int).SetBytes(b))
}

// Zero is the additive identity.
func Zero() Element { return Element{value: big.NewInt(0)} }

// One is the multiplicative identity.
func One() Element { return Element{value: big.NewInt(1)} }

// Random draws a uniformly random field element.
func Random() (Element, error) {
	v, err := rand.Int(rand.Reader, Modulus)
	if err != nil {
		return Element{}, fmt.Errorf("field: random element: %w", err)
	}
	return Element{value: v}, nil
}

// Big returns a copy of the element's value as a big.Int.
func (e Element) Big() *big.Int {
	if e.value == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(e.value)
}

func (e Element) val() *big.Int {
	if e.value == nil {
		return big.NewInt(0)
	}
	return e.value
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	return Element{value: reduce(new(big.Int).Add(e.val(), other.val()))}
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	return Element{value: reduce(new(big.Int).Sub(e.val(), other.val()))}
}

// Neg returns -e.
func (e Element) Neg() Element {
	return Element{value: reduce(new(big.Int).Neg(e.val()))}
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	return Element{value: reduce(new(big.Int).Mul(e.val(), other.val()))}
}

// Square returns e * e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Inv returns the multiplicative inverse of e. Panics if e is zero; callers
// in this module never invert a value they have not already checked for
// zero (division points are chosen to avoid the vanishing set).
func (e Element) Inv() Element {
	if e.IsZero() {
		panic("field: inverse of zero")
	}
	inv := new(big.Int).ModInverse(e.val(), Modulus)
	if inv == nil {
		panic("field: no inverse (modulus not prime?)")
	}
	return Element{value: inv}
}

// Div returns e / other.
func (e Element) Div(other Element) Element {
	return e.Mul(other.Inv())
}

// Exp returns e^n for a non-negative exponent.
func (e Element) Exp(n *big.Int) Element {
	return Element{value: new(big.Int).Exp(e.val(), n, Modulus)}
}

// ExpUint64 returns e^n.
func (e Element) ExpUint64(n uint64) Element {
	return e.Exp(new(big.Int).SetUint64(n))
}

// Equal reports whether e and other represent the same field value.
func (e Element) Equal(other Element) bool {
	return e.val().Cmp(other.val()) == 0
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.val().Sign() == 0
}

// String renders the element's canonical decimal representation.
func (e Element) String() string {
	return e.val().String()
}

// Bytes32 returns the element's canonical 32-byte big-endian encoding, the
// leaf and transcript encoding used throughout the protocol.
func (e Element) Bytes32() [32]byte {
	var out [32]byte
	e.val().FillBytes(out[:])
	return out
}

// BytesBE returns Bytes32 as a slice, for call sites that need a []byte.
func (e Element) BytesBE() []byte {
	b := e.Bytes32()
	return b[:]
}

// PrimitiveRootOfUnity returns a field element of exact multiplicative
// order n, where n must be a power of two no larger than 2^twoAdicity.
// Because the generator's order is p-1 = 2^192 * m, raising it to the power
// (p-1)/n yields an element whose order exactly divides n; since n is a
// power of two and the 2-part of p-1 is exactly 2^192, that element's order
// is exactly n whenever n <= 2^192. No trial-and-error search is needed.
func PrimitiveRootOfUnity(n uint64) (Element, error) {
	if n == 0 || n&(n-1) != 0 {
		return Element{}, fmt.Errorf("field: domain size %d is not a power of two", n)
	}
	k := bitLength(n) - 1
	if k > twoAdicity {
		return Element{}, fmt.Errorf("field: no subgroup of order %d (max 2-adicity is %d)", n, twoAdicity)
	}
	pMinus1 := new(big.Int).Sub(Modulus, big.NewInt(1))
	exp := new(big.Int).Div(pMinus1, new(big.Int).SetUint64(n))
	g := Element{value: new(big.Int).Set(generatorValue)}
	return g.Exp(exp), nil
}

// MarshalJSON renders the element as its canonical decimal string, so
// proofs serialize to JSON without precision loss (values exceed 2^64).
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.val().String())
}

// UnmarshalJSON parses the decimal string produced by MarshalJSON.
func (e *Element) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("field: invalid decimal element %q", s)
	}
	e.value = reduce(v)
	return nil
}

func bitLength(n uint64) int {
	l := 0
	for n > 0 {
		l++
		n >>= 1
	}
	return l
}
