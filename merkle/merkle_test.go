package merkle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/merkle"
	"github.com/kysee/ocash-core/poseidon2"
)

func TestZeroHashesRecurrence(t *testing.T) {
	hashes := merkle.ZeroHashes(8)
	require.Len(t, hashes, 9)

	zero := fr.FromUint64(0)
	require.True(t, hashes[0].Equal(&zero))

	for l := 1; l <= 8; l++ {
		want := poseidon2.HashWithDomain(hashes[l-1], hashes[l-1], poseidon2.DomainMerkle)
		require.True(t, want.Equal(&hashes[l]), "level %d", l)
	}
}

func TestEmptyTreeRootEqualsZeroHash(t *testing.T) {
	tree := merkle.New(8)
	root := tree.Root()
	want := merkle.ZeroHashes(8)[8]
	require.True(t, root.Equal(&want))
}

func TestAppendAndVerifyEightLeaves(t *testing.T) {
	tree := merkle.New(8)

	entries := make([]merkle.LeafEntry, 8)
	for i := 0; i < 8; i++ {
		entries[i] = merkle.LeafEntry{Index: i, Commitment: fr.FromUint64(uint64(100 + i))}
	}
	tree.AppendLeaves(entries)

	require.Equal(t, 8, tree.LeafCount())
	require.Equal(t, 7, tree.LatestCid())

	proofs := tree.BuildProofByCids([]int{0, 3})
	require.Len(t, proofs, 2)

	for _, p := range proofs {
		require.Len(t, p.Path, 9)
		require.True(t, tree.VerifyAgainstRoot(p), "proof for cid %d should verify", p.LeafIndex)
	}

	// Flipping any bit of the path must break verification.
	tampered := proofs[0]
	tampered.Path = append([]fr.Element{}, tampered.Path...)
	one := fr.FromUint64(1)
	tampered.Path[1].Add(&tampered.Path[1], &one)
	require.False(t, tree.VerifyAgainstRoot(tampered))
}

func TestDepth32SingleLeafIsTractable(t *testing.T) {
	tree := merkle.New(merkle.DefaultDepth)
	tree.AppendLeaves([]merkle.LeafEntry{{Index: 0, Commitment: fr.FromUint64(42)}})

	root := tree.Root()
	emptyRoot := merkle.GetZeroHash(merkle.DefaultDepth)
	require.False(t, root.Equal(&emptyRoot))

	proofs := tree.BuildProofByCids([]int{0})
	require.True(t, tree.VerifyAgainstRoot(proofs[0]))
}

func TestAppendNonContiguousPanics(t *testing.T) {
	tree := merkle.New(4)
	require.Panics(t, func() {
		tree.AppendLeaves([]merkle.LeafEntry{{Index: 1, Commitment: fr.FromUint64(1)}})
	})
}

func TestVerifyAgainstExplicitRoot(t *testing.T) {
	tree := merkle.New(4)
	tree.AppendLeaves([]merkle.LeafEntry{
		{Index: 0, Commitment: fr.FromUint64(1)},
		{Index: 1, Commitment: fr.FromUint64(2)},
	})
	proof := tree.BuildProofByCids([]int{0})[0]
	root := tree.Root()

	require.True(t, merkle.Verify(proof, 4, root))
}
