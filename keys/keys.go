// Package keys implements deterministic key derivation: a passphrase (and
// optional nonce) maps to a secret scalar and a public curve point via
// HKDF-SHA256 followed by an ASCII re-hash step that is unusual but
// load-bearing for cross-implementation compatibility (spec §4.3, §9).
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/kysee/ocash-core/babyjubjub"
	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/ocerr"
)

// MinSeedLen is the minimum passphrase length in bytes.
const MinSeedLen = 16

// KeyPair is a derived secret scalar and its public curve point.
type KeyPair struct {
	SecretKey *big.Int
	PublicKey babyjubjub.Point
}

// DeriveSeed runs HKDF-SHA256 over the passphrase with info
// "OCash.KeyGen" (no nonce) or "OCash.KeyGen:<nonce>", producing a
// 32-byte pseudorandom key.
func DeriveSeed(seed []byte, nonce string) ([32]byte, error) {
	var out [32]byte
	if len(seed) < MinSeedLen {
		return out, ocerr.New(ocerr.SeedTooShort, "passphrase shorter than 16 bytes")
	}

	info := []byte("OCash.KeyGen")
	if nonce != "" {
		info = append([]byte("OCash.KeyGen:"), nonce...)
	}

	reader := hkdf.New(sha256.New, seed, nil, info)
	if _, err := io.ReadFull(reader, out[:]); err != nil {
		return out, ocerr.Wrap(ocerr.KeyDerivation, "HKDF expansion failed", err)
	}
	return out, nil
}

// CreateKeyPairFromSeed derives a (sk, pk) pair from a 32-byte HKDF
// output, bit-exact with the reference implementation:
//  1. render the bytes as the ASCII string "0x" + lowercase hex
//  2. SHA256 that ASCII string (not the raw bytes) — the double-hash step
//  3. interpret the digest as a big-endian integer and reduce mod the
//     curve's subgroup order by repeated subtraction
//  4. that reduced value is sk; pk = sk*G
func CreateKeyPairFromSeed(seedBytes [32]byte) KeyPair {
	ascii := "0x" + hex.EncodeToString(seedBytes[:])
	digest := sha256.Sum256([]byte(ascii))

	sk := fr.ReduceModOrder(digest)
	pk := babyjubjub.ScalarMul(sk, babyjubjub.BasePoint())

	return KeyPair{SecretKey: sk, PublicKey: pk}
}

// DeriveKeyPair is the end-to-end convenience wrapper: passphrase (and
// optional nonce) straight to a key pair.
func DeriveKeyPair(passphrase []byte, nonce string) (KeyPair, error) {
	seed, err := DeriveSeed(passphrase, nonce)
	if err != nil {
		return KeyPair{}, err
	}
	return CreateKeyPairFromSeed(seed), nil
}
