package babyjubjub_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/babyjubjub"
)

func TestScalarMultZeroIsIdentity(t *testing.T) {
	g := babyjubjub.BasePoint()
	result := babyjubjub.ScalarMul(big.NewInt(0), g)
	id := babyjubjub.Identity()

	require.True(t, result.X.Equal(&id.X))
	require.True(t, result.Y.Equal(&id.Y))
}

func TestScalarMultOneIsBasePoint(t *testing.T) {
	g := babyjubjub.BasePoint()
	result := babyjubjub.ScalarMul(big.NewInt(1), g)

	require.True(t, result.X.Equal(&g.X))
	require.True(t, result.Y.Equal(&g.Y))
}

func Test5GPlus7GEquals12G(t *testing.T) {
	g := babyjubjub.BasePoint()

	fiveG := babyjubjub.ScalarMul(big.NewInt(5), g)
	sevenG := babyjubjub.ScalarMul(big.NewInt(7), g)
	sum := babyjubjub.Add(fiveG, sevenG)

	twelveG := babyjubjub.ScalarMul(big.NewInt(12), g)

	require.True(t, sum.X.Equal(&twelveG.X), "x mismatch")
	require.True(t, sum.Y.Equal(&twelveG.Y), "y mismatch")
}

func TestCompressDecompressRoundtrip(t *testing.T) {
	g := babyjubjub.BasePoint()

	for _, k := range []int64{1, 2, 5, 12, 1000} {
		p := babyjubjub.ScalarMul(big.NewInt(k), g)

		compressed, err := babyjubjub.Compress(p)
		require.NoError(t, err)

		decompressed, err := babyjubjub.Decompress(compressed)
		require.NoError(t, err)

		require.True(t, p.X.Equal(&decompressed.X), "x mismatch for k=%d", k)
		require.True(t, p.Y.Equal(&decompressed.Y), "y mismatch for k=%d", k)
	}
}

func TestIsOnCurve(t *testing.T) {
	require.True(t, babyjubjub.IsOnCurve(babyjubjub.BasePoint()))
	require.True(t, babyjubjub.IsOnCurve(babyjubjub.Identity()))
}

func TestDecompressRejectsCorruptedPoint(t *testing.T) {
	compressed, err := babyjubjub.Compress(babyjubjub.BasePoint())
	require.NoError(t, err)

	// Flipping bit 2 of the base point's lowest y byte yields a y with
	// no corresponding on-curve x (x^2 is a quadratic non-residue).
	compressed[0] ^= 0x04
	_, err = babyjubjub.Decompress(compressed)
	require.Error(t, err)
}
