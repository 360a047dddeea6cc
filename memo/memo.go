// Package memo implements the ephemeral-ECDH, XSalsa20-Poly1305 sealed
// box that lets a sender publish a record opening only its intended
// recipient can open (spec §4.6). The random source is an explicit
// collaborator (spec §9 design notes), never a package-global RNG, so
// core tests stay deterministic.
package memo

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/kysee/ocash-core/babyjubjub"
	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/ocerr"
	"github.com/kysee/ocash-core/record"
)

// nonceSize is the 24-byte XSalsa20 nonce length secretbox expects.
const nonceSize = 24

// minEncodedLen is the minimum raw byte length after hex-decoding a
// memo, before it is split into an ephemeral public key and ciphertext.
const minEncodedLen = 48

// nonce derives the 24-byte XSalsa20 nonce from the compressed
// ephemeral and recipient public keys: the first 24 bytes of
// Keccak256(compress(ephPk) || compress(userPk)).
func nonce(ephPk, userPk babyjubjub.Point) ([nonceSize]byte, error) {
	var out [nonceSize]byte

	ephC, err := babyjubjub.Compress(ephPk)
	if err != nil {
		return out, err
	}
	userC, err := babyjubjub.Compress(userPk)
	if err != nil {
		return out, err
	}

	digest := crypto.Keccak256(ephC[:], userC[:])
	copy(out[:], digest[:nonceSize])
	return out, nil
}

// Encrypt seals a record opening for recipientPk, sampling a fresh
// ephemeral key pair from rnd. Output is "0x" + hex(compress(ephPk) ||
// ciphertext).
func Encrypt(o record.Opening, recipientPk babyjubjub.Point, rnd io.Reader) (string, error) {
	recordBytes, err := record.Encode(o)
	if err != nil {
		return "", err
	}

	var randBytes [32]byte
	if _, err := io.ReadFull(rnd, randBytes[:]); err != nil {
		return "", ocerr.Wrap(ocerr.Encryption, "reading ephemeral randomness", err)
	}
	ephSk := fr.ReduceModOrder(randBytes)

	ephPk := babyjubjub.ScalarMul(ephSk, babyjubjub.BasePoint())

	sharedPoint := babyjubjub.ScalarMul(ephSk, recipientPk)
	sharedKeyBytes, err := babyjubjub.Compress(sharedPoint)
	if err != nil {
		return "", err
	}

	n, err := nonce(ephPk, recipientPk)
	if err != nil {
		return "", err
	}

	ephPkCompressed, err := babyjubjub.Compress(ephPk)
	if err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nil, recordBytes[:], &n, &sharedKeyBytes)

	out := append(append([]byte{}, ephPkCompressed[:]...), sealed...)
	return fr.BytesToHex(out), nil
}

// Decrypt attempts to open a memo with secretKey. A nil, nil result
// means the memo was not addressed to this key (or was corrupted) —
// ordinary scanning must treat that as a negative result, never an
// error, so a caller cannot distinguish wrong-key from tampering. A
// non-nil error means the encoded string itself was malformed (not a
// valid hex envelope).
func Decrypt(secretKey *big.Int, encoded string) (*record.Opening, error) {
	raw, err := fr.HexToBytes(encoded)
	if err != nil {
		return nil, err
	}
	if len(raw) < minEncodedLen {
		return nil, nil
	}

	var ephCompressed [32]byte
	copy(ephCompressed[:], raw[:32])
	ciphertext := raw[32:]

	ephPk, err := babyjubjub.Decompress(ephCompressed)
	if err != nil {
		return nil, nil
	}

	myPk := babyjubjub.ScalarMul(secretKey, babyjubjub.BasePoint())

	sharedPoint := babyjubjub.ScalarMul(secretKey, ephPk)
	sharedKeyBytes, err := babyjubjub.Compress(sharedPoint)
	if err != nil {
		return nil, nil
	}

	n, err := nonce(ephPk, myPk)
	if err != nil {
		return nil, nil
	}

	opened, ok := secretbox.Open(nil, ciphertext, &n, &sharedKeyBytes)
	if !ok {
		return nil, nil
	}

	ro, err := record.Decode(opened)
	if err != nil {
		return nil, nil
	}
	return &ro, nil
}
