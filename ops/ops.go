// Package ops prepares deposits and spend inputs by sequencing calls
// into keys, commitment, memo, merkle, and store: it builds a deposit's
// record, commitment, and memo, turns decrypted memos into UTXO records,
// and pairs spendable UTXOs with Merkle proofs. It does not build
// transfer or withdraw calldata and does not call a relayer. It contains
// no cryptography of its own.
package ops

import (
	"fmt"
	"io"
	"math/big"

	"github.com/kysee/ocash-core/commitment"
	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/keys"
	"github.com/kysee/ocash-core/memo"
	"github.com/kysee/ocash-core/merkle"
	"github.com/kysee/ocash-core/record"
	"github.com/kysee/ocash-core/store"
)

// UserKeyPair is the owner identity operations are prepared against.
type UserKeyPair = keys.KeyPair

// FromSeed derives a UserKeyPair the same way the wallet CLI would,
// via keys.DeriveKeyPair.
func FromSeed(seed []byte, nonce string) (UserKeyPair, error) {
	return keys.DeriveKeyPair(seed, nonce)
}

// PreparedDeposit is a fully formed record opening, commitment, and
// memo envelope, ready for the caller to submit on-chain.
type PreparedDeposit struct {
	ChainID        uint64
	Opening        record.Opening
	Commitment     fr.Element
	MemoHex        string
	ProtocolFeeWei *big.Int
}

// Engine sequences deposit and spend-input preparation against a
// storage adapter. It never touches a relayer or chain RPC.
type Engine struct {
	store store.Adapter
}

// New builds an Engine over the given storage adapter.
func New(adapter store.Adapter) *Engine {
	return &Engine{store: adapter}
}

// PrepareDeposit builds the record opening, commitment, and encrypted
// memo for a new note of the given asset and amount, owned by owner.
func (e *Engine) PrepareDeposit(chainID uint64, assetID, amount fr.Element, owner UserKeyPair, blinding fr.Element, rnd io.Reader) (PreparedDeposit, error) {
	opening := record.Opening{
		AssetID:   assetID,
		Amount:    amount,
		PublicKey: owner.PublicKey,
		Blinding:  blinding,
		IsFrozen:  false,
	}

	commit := commitment.Commitment(opening)

	memoHex, err := memo.Encrypt(opening, owner.PublicKey, rnd)
	if err != nil {
		return PreparedDeposit{}, fmt.Errorf("encrypt deposit memo: %w", err)
	}

	return PreparedDeposit{
		ChainID:        chainID,
		Opening:        opening,
		Commitment:     commit,
		MemoHex:        memoHex,
		ProtocolFeeWei: big.NewInt(0),
	}, nil
}

// CreateUtxoFromRecord builds a store.UtxoRecord from a decoded record
// opening (after the caller has trial-decrypted a memo), computing its
// commitment and nullifier.
func (e *Engine) CreateUtxoFromRecord(chainID string, opening record.Opening, ownerSk *big.Int, mkIndex uint64, memoHex string) store.UtxoRecord {
	commit := commitment.Commitment(opening)
	nullifier := commitment.Nullifier(ownerSk, commit, nil)

	return store.UtxoRecord{
		ChainID:    chainID,
		Cid:        mkIndex,
		AssetID:    fr.ToHex(opening.AssetID),
		Commitment: fr.ToHex(commit),
		Nullifier:  fr.ToHex(nullifier),
		Memo:       memoHex,
		Spent:      false,
	}
}

// InputSecret is the witness material for one spent UTXO: the opening
// recovered by memo decryption, plus its Merkle inclusion proof against
// a known root. Spec §1 places ZKP witness construction itself out of
// core scope; this is as far as preparation goes.
type InputSecret struct {
	Owner       UserKeyPair
	Opening     record.Opening
	MerkleRoot  fr.Element
	MerklePath  []fr.Element
	MerkleIndex uint64
}

// BuildInputSecrets decrypts each UTXO's memo and pairs it with a
// Merkle inclusion proof from tree.
func (e *Engine) BuildInputSecrets(utxos []store.UtxoRecord, owner UserKeyPair, tree *merkle.Tree) ([]InputSecret, error) {
	cids := make([]int, len(utxos))
	for i, u := range utxos {
		cids[i] = int(u.Cid)
	}
	proofs := tree.BuildProofByCids(cids)
	root := tree.Root()

	secrets := make([]InputSecret, 0, len(utxos))
	for i, u := range utxos {
		if u.Memo == "" {
			return nil, fmt.Errorf("utxo at cid %d has no memo", u.Cid)
		}
		opening, err := memo.Decrypt(owner.SecretKey, u.Memo)
		if err != nil {
			return nil, fmt.Errorf("decrypt memo for cid %d: %w", u.Cid, err)
		}
		if opening == nil {
			return nil, fmt.Errorf("memo for cid %d does not belong to owner", u.Cid)
		}

		secrets = append(secrets, InputSecret{
			Owner:       owner,
			Opening:     *opening,
			MerkleRoot:  root,
			MerklePath:  proofs[i].Path,
			MerkleIndex: u.Cid,
		})
	}

	return secrets, nil
}
