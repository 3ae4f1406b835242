// Package merkle implements a binary Merkle tree over field-element leaves,
// hashed with Keccak-256, used as the vector-commitment layer the FRI and
// trace-opening protocols build on.
package merkle

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/fibsquare-stark/internal/fibsquare/field"
)

// Root is a 32-byte Keccak-256 digest.
type Root [32]byte

// MarshalJSON renders the root as a hex string.
func (r Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(r[:]))
}

// UnmarshalJSON parses the hex string produced by MarshalJSON.
func (r *Root) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("merkle: invalid root hex %q: %w", s, err)
	}
	if len(b) != len(r) {
		return fmt.Errorf("merkle: root must be %d bytes, got %d", len(r), len(b))
	}
	copy(r[:], b)
	return nil
}

// Node is a single step of an authentication path: the sibling digest and
// whether the sibling sits to the right of the node being authenticated.
type Node struct {
	Hash    Root `json:"hash"`
	IsRight bool `json:"is_right"`
}

// Proof is an authentication path from a leaf to the root.
type Proof []Node

// Tree is a binary Merkle tree built bottom-up over a power-of-two number
// of leaves. The spec guarantees every tree this module builds already has
// a power-of-two leaf count (trace/FRI layer evaluation vectors), so no
// padding is performed; building over a non-power-of-two leaf count is a
// programmer error and returns an error rather than silently padding.
type Tree struct {
	levels [][]Root // levels[0] = leaf hashes, levels[len-1] = [root]
}

func hashLeaf(data []byte) Root {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte{0x00})
	h.Write(data)
	var out Root
	copy(out[:], h.Sum(nil))
	return out
}

func hashNode(left, right Root) Root {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte{0x01})
	h.Write(left[:])
	h.Write(right[:])
	var out Root
	copy(out[:], h.Sum(nil))
	return out
}

// Build constructs a tree over the canonical big-endian encodings of the
// given field elements.
func Build(leaves []field.Element) (*Tree, error) {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("merkle: leaf count %d is not a positive power of two", n)
	}
	level := make([]Root, n)
	for i, leaf := range leaves {
		level[i] = hashLeaf(leaf.BytesBE())
	}
	levels := [][]Root{level}
	for len(level) > 1 {
		next := make([]Root, len(level)/2)
		for i := range next {
			next[i] = hashNode(level[2*i], level[2*i+1])
		}
		levels = append(levels, next)
		level = next
	}
	return &Tree{levels: levels}, nil
}

// Root returns the tree's root digest.
func (t *Tree) Root() Root {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Open returns the authentication path for the leaf at index.
func (t *Tree) Open(index int) (Proof, error) {
	n := len(t.levels[0])
	if index < 0 || index >= n {
		return nil, fmt.Errorf("merkle: index %d out of range [0, %d)", index, n)
	}
	proof := make(Proof, 0, len(t.levels)-1)
	idx := index
	for level := 0; level < len(t.levels)-1; level++ {
		siblingIdx := idx ^ 1
		node := Node{Hash: t.levels[level][siblingIdx], IsRight: siblingIdx > idx}
		proof = append(proof, node)
		idx /= 2
	}
	return proof, nil
}

// Verify recomputes the root from leaf, its index, and the authentication
// path, and compares it against root. The path's left/right steps must match
// the bits of index, so a valid path for one leaf does not verify at another.
func Verify(root Root, leaf field.Element, index int, proof Proof) bool {
	if index < 0 {
		return false
	}
	current := hashLeaf(leaf.BytesBE())
	idx := index
	for _, node := range proof {
		if node.IsRight != (idx%2 == 0) {
			return false
		}
		if node.IsRight {
			current = hashNode(current, node.Hash)
		} else {
			current = hashNode(node.Hash, current)
		}
		idx /= 2
	}
	return idx == 0 && current == root
}
