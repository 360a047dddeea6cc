// Package commitment folds a record opening into a single binding field
// element (the Pedersen-style commitment) and derives the one-time spend
// tag (the nullifier) from a secret key and a commitment (spec §4.5).
package commitment

import (
	"math/big"

	"github.com/kysee/ocash-core/babyjubjub"
	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/poseidon2"
	"github.com/kysee/ocash-core/record"
)

var frozenBit = func() fr.Element {
	v, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10) // 2^128
	var e fr.Element
	e.SetBigInt(v)
	return e
}()

// Commitment computes hash_sequence_with_domain([pk.x, pk.y, blinding,
// asset_id, amount'], Record, seed=None), where amount' folds in the
// frozen flag at bit 128.
func Commitment(o record.Opening) fr.Element {
	amount := o.Amount
	if o.IsFrozen {
		amount.Add(&amount, &frozenBit)
	}

	inputs := []fr.Element{o.PublicKey.X, o.PublicKey.Y, o.Blinding, o.AssetID, amount}
	return poseidon2.HashSequenceWithDomain(inputs, poseidon2.DomainRecord, nil)
}

// Nullifier derives the spend tag for (sk, commitment). If freezerPk is
// nil or the curve identity, the nullifier key is sk itself; otherwise
// it is derived from the shared point sk*freezerPk.
func Nullifier(sk *big.Int, commit fr.Element, freezerPk *babyjubjub.Point) fr.Element {
	var nullifierKey fr.Element

	if isDefaultFreezer(freezerPk) {
		nullifierKey = fr.ElementFromScalar(sk)
	} else {
		shared := babyjubjub.ScalarMul(sk, *freezerPk)
		nullifierKey = poseidon2.HashWithDomain(shared.X, shared.Y, poseidon2.DomainKeyDerivation)
	}

	return poseidon2.HashWithDomain(nullifierKey, commit, poseidon2.DomainNullifier)
}

func isDefaultFreezer(freezerPk *babyjubjub.Point) bool {
	if freezerPk == nil {
		return true
	}
	id := babyjubjub.Identity()
	return freezerPk.X.Equal(&id.X) && freezerPk.Y.Equal(&id.Y)
}
