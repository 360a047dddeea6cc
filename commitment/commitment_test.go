package commitment_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/babyjubjub"
	"github.com/kysee/ocash-core/commitment"
	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/record"
)

func openingFixture() record.Opening {
	return record.Opening{
		AssetID:   fr.FromUint64(1),
		Amount:    fr.FromUint64(1000),
		PublicKey: babyjubjub.BasePoint(),
		Blinding:  fr.FromUint64(42),
		IsFrozen:  false,
	}
}

func TestCommitmentDeterministic(t *testing.T) {
	o := openingFixture()
	c1 := commitment.Commitment(o)
	c2 := commitment.Commitment(o)
	require.True(t, c1.Equal(&c2))
}

func TestCommitmentFrozenDiffersFromUnfrozen(t *testing.T) {
	o := openingFixture()
	unfrozen := commitment.Commitment(o)

	o.IsFrozen = true
	frozen := commitment.Commitment(o)

	require.False(t, unfrozen.Equal(&frozen))
}

func TestNullifierWithIdentityFreezerEqualsAbsent(t *testing.T) {
	sk := big.NewInt(3)
	commit := commitment.Commitment(openingFixture())

	withoutFreezer := commitment.Nullifier(sk, commit, nil)

	id := babyjubjub.Identity()
	withIdentityFreezer := commitment.Nullifier(sk, commit, &id)

	require.True(t, withoutFreezer.Equal(&withIdentityFreezer))
}

func TestNullifierDiffersWithRealFreezer(t *testing.T) {
	sk := big.NewInt(3)
	commit := commitment.Commitment(openingFixture())

	withoutFreezer := commitment.Nullifier(sk, commit, nil)

	freezerPk := babyjubjub.ScalarMul(big.NewInt(5), babyjubjub.BasePoint())
	withFreezer := commitment.Nullifier(sk, commit, &freezerPk)

	require.False(t, withoutFreezer.Equal(&withFreezer))
}
