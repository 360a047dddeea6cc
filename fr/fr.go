// Package fr adapts gnark-crypto's BN254 scalar field element to the
// byte and hex conventions this system requires: 32-byte big-endian for
// ABI slots and hex rendering, 32-byte little-endian for point
// compression, and plain-subtraction reduction modulo the (smaller)
// twisted-Edwards subgroup order.
package fr

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/kysee/ocash-core/ocerr"
)

// Element is the 254-bit scalar field element every hash, curve
// coordinate, and record field is expressed in.
type Element = fr.Element

// Order is the prime subgroup order of the twisted-Edwards curve (§3),
// distinct from the field modulus Element arithmetic is carried out in.
var Order, _ = new(big.Int).SetString(
	"2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)

// Zero returns the additive identity.
func Zero() Element {
	var z Element
	return z
}

// FromUint64 builds an Element from a small integer.
func FromUint64(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// ToBytesBE renders e as 32 big-endian bytes.
func ToBytesBE(e Element) [32]byte {
	b := e.Bytes() // gnark-crypto's Bytes() is already big-endian canonical form
	return b
}

// ToBytesLE renders e as 32 little-endian bytes.
func ToBytesLE(e Element) [32]byte {
	be := e.Bytes()
	var le [32]byte
	for i := range be {
		le[i] = be[31-i]
	}
	return le
}

// FromBytesBE reduces 32 big-endian bytes into the field (mod p).
func FromBytesBE(b [32]byte) Element {
	var e Element
	e.SetBytes(b[:])
	return e
}

// FromBytesLE reduces 32 little-endian bytes into the field (mod p).
func FromBytesLE(b [32]byte) Element {
	var be [32]byte
	for i := range b {
		be[i] = b[31-i]
	}
	return FromBytesBE(be)
}

// ToHex renders e as "0x" followed by 64 lowercase big-endian hex digits.
func ToHex(e Element) string {
	b := ToBytesBE(e)
	return "0x" + hex.EncodeToString(b[:])
}

// FromHex parses a hex field element. Accepts an optional "0x"/"0X"
// prefix and is case-insensitive; reduces mod p if the value is not
// already canonical.
func FromHex(s string) (Element, error) {
	clean, err := normalizeHex(s)
	if err != nil {
		var z Element
		return z, err
	}
	raw, err := hex.DecodeString(clean)
	if err != nil {
		var z Element
		return z, ocerr.Wrap(ocerr.InvalidHex, "decoding hex field element", err)
	}
	if len(raw) > 32 {
		var z Element
		return z, ocerr.New(ocerr.InvalidHex, "hex field element longer than 32 bytes")
	}
	var padded [32]byte
	copy(padded[32-len(raw):], raw)
	return FromBytesBE(padded), nil
}

// BytesToHex renders an arbitrary byte slice as "0x" + lowercase hex,
// the generic wire convention of §6 (used for memos, which are not
// field elements).
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// HexToBytes parses the generic "0x"-tolerant hex convention into raw
// bytes, without any field reduction.
func HexToBytes(s string) ([]byte, error) {
	clean, err := normalizeHex(s)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return nil, ocerr.Wrap(ocerr.InvalidHex, "decoding hex bytes", err)
	}
	return raw, nil
}

func normalizeHex(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", ocerr.New(ocerr.InvalidHex, "non-hex character in input")
		}
	}
	return s, nil
}

// ReduceModOrder reduces a 256-bit big-endian-interpreted integer modulo
// the twisted-Edwards subgroup Order by plain repeated subtraction, as
// spec §4.3 step 3 requires (not a Euclidean mod, to preserve the exact
// reference algorithm).
func ReduceModOrder(h [32]byte) *big.Int {
	result := new(big.Int).SetBytes(h[:])
	for result.Cmp(Order) >= 0 {
		result.Sub(result, Order)
	}
	return result
}

// ElementFromScalar builds a field Element from a reduced scalar
// (already < Order < p, so no further reduction is lossy).
func ElementFromScalar(s *big.Int) Element {
	var e Element
	e.SetBigInt(s)
	return e
}
