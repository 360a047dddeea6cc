package ops

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/kysee/ocash-core/fr"
)

// TransferWitness shapes one InputSecret into the frontend.Variable
// assignment a spend circuit would consume as its private inputs. It
// stops at shaping: nothing in this package calls groth16.Prove or
// groth16.Verify — proof generation itself sits in the circuits that
// consume this witness, out of scope here.
type TransferWitness struct {
	SecretKey   frontend.Variable
	AssetID     frontend.Variable
	Amount      frontend.Variable
	Blinding    frontend.Variable
	MerkleRoot  frontend.Variable
	MerklePath  []frontend.Variable
	MerkleIndex frontend.Variable
}

// ToWitness converts an InputSecret's field elements into circuit
// witness variables, via each Element's canonical big-endian bytes.
func ToWitness(secret InputSecret) TransferWitness {
	path := make([]frontend.Variable, len(secret.MerklePath))
	for i, node := range secret.MerklePath {
		path[i] = elementVariable(node)
	}

	return TransferWitness{
		SecretKey:   secret.Owner.SecretKey,
		AssetID:     elementVariable(secret.Opening.AssetID),
		Amount:      elementVariable(secret.Opening.Amount),
		Blinding:    elementVariable(secret.Opening.Blinding),
		MerkleRoot:  elementVariable(secret.MerkleRoot),
		MerklePath:  path,
		MerkleIndex: secret.MerkleIndex,
	}
}

func elementVariable(e fr.Element) frontend.Variable {
	b := fr.ToBytesBE(e)
	return frontend.Variable(new(big.Int).SetBytes(b[:]))
}
