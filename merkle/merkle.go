// Package merkle implements the depth-32 sparse accumulator over note
// commitments: an append-only leaf sequence with a precomputed
// zero-hash table so that empty subtrees never require recursing into
// 2^32 leaf slots (spec §4.7, §9).
package merkle

import (
	"fmt"
	"sort"

	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/poseidon2"
)

// DefaultDepth is the tree depth matching the on-chain contract.
const DefaultDepth = 32

// LeafEntry is a (cid, commitment) pair to append.
type LeafEntry struct {
	Index      int
	Commitment fr.Element
}

// Proof is a Merkle inclusion proof: [leaf_value, sibling(0), ...,
// sibling(depth-1)], length depth+1.
type Proof struct {
	LeafIndex int
	Path      []fr.Element
}

// ZeroHashes computes Z[0..depth] where Z[0]=0 and Z[l] =
// hash_with_domain(Z[l-1], Z[l-1], Merkle).
func ZeroHashes(depth int) []fr.Element {
	hashes := make([]fr.Element, 0, depth+1)
	hashes = append(hashes, fr.FromUint64(0))
	for i := 0; i < depth; i++ {
		prev := hashes[len(hashes)-1]
		hashes = append(hashes, poseidon2.HashWithDomain(prev, prev, poseidon2.DomainMerkle))
	}
	return hashes
}

// GetZeroHash returns the depth-32 zero hash at level, or the zero
// element if level exceeds the default table.
func GetZeroHash(level int) fr.Element {
	hashes := ZeroHashes(DefaultDepth)
	if level < len(hashes) {
		return hashes[level]
	}
	return fr.FromUint64(0)
}

// Tree is an in-memory sparse Merkle accumulator.
type Tree struct {
	depth      int
	leaves     []fr.Element
	zeroHashes []fr.Element
}

// New builds a tree of the given depth (DefaultDepth if depth <= 0).
func New(depth int) *Tree {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Tree{
		depth:      depth,
		zeroHashes: ZeroHashes(depth),
	}
}

// LeafCount returns the number of appended leaves.
func (t *Tree) LeafCount() int { return len(t.leaves) }

// LatestCid returns the highest assigned cid, or 0 for an empty tree.
func (t *Tree) LatestCid() int {
	if len(t.leaves) == 0 {
		return 0
	}
	return len(t.leaves) - 1
}

// Root returns the current tree root.
func (t *Tree) Root() fr.Element { return t.node(t.depth, 0) }

// RootHex renders Root as a hex field element.
func (t *Tree) RootHex() string { return fr.ToHex(t.Root()) }

// AppendLeaves appends a batch of (cid, commitment) pairs. The batch is
// sorted by cid; the first cid must equal the current leaf count and
// subsequent cids must be strictly consecutive. Non-contiguous input is
// a fatal invariant violation — a programmer error, not a recoverable
// one — and panics, matching the accumulator's append-only contract.
func (t *Tree) AppendLeaves(entries []LeafEntry) {
	if len(entries) == 0 {
		return
	}

	sorted := make([]LeafEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	expected := len(t.leaves)
	for _, e := range sorted {
		if e.Index != expected {
			panic(fmt.Sprintf("merkle: non-contiguous leaf append: expected index=%d, got index=%d", expected, e.Index))
		}
		t.leaves = append(t.leaves, e.Commitment)
		expected++
	}
}

// BuildProofByCids constructs an inclusion proof for each requested cid.
func (t *Tree) BuildProofByCids(cids []int) []Proof {
	latest := t.LatestCid()
	proofs := make([]Proof, 0, len(cids))

	for _, cid := range cids {
		if cid > latest {
			panic(fmt.Sprintf("merkle: cid out of range: %d > latest_cid=%d", cid, latest))
		}

		path := make([]fr.Element, 0, t.depth+1)
		pos := cid
		path = append(path, t.node(0, pos))

		for level := 0; level < t.depth; level++ {
			siblingPos := pos ^ 1
			path = append(path, t.node(level, siblingPos))
			pos /= 2
		}

		proofs = append(proofs, Proof{LeafIndex: cid, Path: path})
	}

	return proofs
}

// node computes or retrieves the hash at (level, position), using the
// empty-subtree short-circuit that makes depth-32 trees tractable.
func (t *Tree) node(level, position int) fr.Element {
	if level == 0 {
		if position < len(t.leaves) {
			return t.leaves[position]
		}
		return t.zeroHashes[0]
	}

	firstLeafInSubtree := position << uint(level)
	if firstLeafInSubtree >= len(t.leaves) {
		return t.zeroHashes[level]
	}

	left := t.node(level-1, position*2)
	right := t.node(level-1, position*2+1)
	return poseidon2.HashWithDomain(left, right, poseidon2.DomainMerkle)
}

// VerifyAgainstRoot verifies proof against this tree's current root.
func (t *Tree) VerifyAgainstRoot(proof Proof) bool {
	return Verify(proof, t.depth, t.Root())
}

// Verify recomputes the root implied by proof and checks it against an
// explicit root value — unlike the reference implementation, which only
// ever checks against its own live tree, this also lets a caller verify
// a proof against a root fetched independently (e.g. from chain) without
// holding a tree instance (see DESIGN.md open-question decision).
func Verify(proof Proof, depth int, root fr.Element) bool {
	if len(proof.Path) != depth+1 {
		return false
	}

	current := proof.Path[0]
	pos := proof.LeafIndex

	for level := 0; level < depth; level++ {
		sibling := proof.Path[level+1]
		if pos%2 == 0 {
			current = poseidon2.HashWithDomain(current, sibling, poseidon2.DomainMerkle)
		} else {
			current = poseidon2.HashWithDomain(sibling, current, poseidon2.DomainMerkle)
		}
		pos /= 2
	}

	return current.Equal(&root)
}
