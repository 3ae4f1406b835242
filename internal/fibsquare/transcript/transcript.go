// Package transcript implements the Fiat-Shamir transcript: a Keccak-256
// sponge that absorbs prover messages and squeezes verifier challenges,
// deterministically and without reseeding, so that a prover and a verifier
// who absorb identical byte streams in identical order derive identical
// samples.
package transcript

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
)

// Channel is the Fiat-Shamir state. The zero value, via New, starts seeded
// empty: no absorption has happened, no sample has been squeezed.
type Channel struct {
	state [32]byte
}

// New returns a freshly seeded transcript.
func New() *Channel {
	return &Channel{}
}

// Absorb appends bytes into the sponge: the new state is
// Keccak256(state || data). Order matters and is part of the protocol.
func (c *Channel) Absorb(data []byte) {
	h := sha3.NewLegacyKeccak256()
	h.Write(c.state[:])
	h.Write(data)
	copy(c.state[:], h.Sum(nil))
}

// AbsorbElement absorbs a field element's canonical big-endian encoding.
func (c *Channel) AbsorbElement(e field.Element) {
	c.Absorb(e.BytesBE())
}

// AbsorbUint64BE absorbs v as 8 bytes big-endian, platform-independent.
func (c *Channel) AbsorbUint64BE(v uint64) {
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	c.Absorb(b[:])
}

// SampleBytes32 squeezes 32 fresh pseudorandom bytes, ratcheting the
// internal state so that consecutive squeezes (absent intervening absorbs)
// yield distinct outputs while both remaining fully determined by
// everything absorbed so far.
func (c *Channel) SampleBytes32() [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(c.state[:])
	h.Write([]byte{0x00})
	var out [32]byte
	copy(out[:], h.Sum(nil))
	c.state = out
	return out
}

// SampleField squeezes a fresh field element, deterministically derived
// from the sponge state.
func (c *Channel) SampleField() field.Element {
	b := c.SampleBytes32()
	return field.FromBytesBE(b[:])
}

// SampleIndex squeezes 32 bytes, interprets them as a big-endian unsigned
// 256-bit integer, and reduces modulo domainSize. This is the index
// sampling method of the protocol; because 2^256 is not generally a
// multiple of domainSize it introduces negligible bias, which the protocol
// accepts.
func (c *Channel) SampleIndex(domainSize int) (int, error) {
	if domainSize <= 0 {
		return 0, fmt.Errorf("transcript: domain size must be positive, got %d", domainSize)
	}
	b := c.SampleBytes32()
	v := new(big.Int).SetBytes(b[:])
	m := big.NewInt(int64(domainSize))
	v.Mod(v, m)
	return int(v.Int64()), nil
}

// State exposes the current sponge state, chiefly for tests that want to
// check two independently constructed transcripts diverge.
func (c *Channel) State() [32]byte {
	return c.state
}
