// Package record implements the fixed 160-byte note serialization: four
// big-endian 32-byte slots plus one raw little-endian compressed-point
// slot. The mixed endianness of the public-key slot is deliberate and
// must be preserved bit-exactly for cross-peer interoperability
// (spec §4.4, §9).
package record

import (
	"fmt"

	"github.com/kysee/ocash-core/babyjubjub"
	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/ocerr"
)

// Size is the fixed encoded length in bytes.
const Size = 160

// Opening is the cleartext a memo carries.
type Opening struct {
	AssetID   fr.Element
	Amount    fr.Element
	PublicKey babyjubjub.Point
	Blinding  fr.Element
	IsFrozen  bool
}

// Encode serializes an Opening into its 160-byte wire form.
func Encode(o Opening) ([Size]byte, error) {
	var out [Size]byte

	compressed, err := babyjubjub.Compress(o.PublicKey)
	if err != nil {
		return out, err
	}

	assetIDBE := fr.ToBytesBE(o.AssetID)
	amountBE := fr.ToBytesBE(o.Amount)
	blindingBE := fr.ToBytesBE(o.Blinding)

	copy(out[0:32], assetIDBE[:])
	copy(out[32:64], amountBE[:])
	copy(out[64:96], compressed[:])
	copy(out[96:128], blindingBE[:])
	if o.IsFrozen {
		out[Size-1] = 1
	}

	return out, nil
}

// Decode reverses Encode. data must be exactly Size bytes.
func Decode(data []byte) (Opening, error) {
	if len(data) != Size {
		return Opening{}, ocerr.New(ocerr.Other, fmt.Sprintf("record data must be 160 bytes, got %d", len(data)))
	}

	var assetIDBE, amountBE, blindingBE, compressed [32]byte
	copy(assetIDBE[:], data[0:32])
	copy(amountBE[:], data[32:64])
	copy(compressed[:], data[64:96])
	copy(blindingBE[:], data[96:128])

	pk, err := babyjubjub.Decompress(compressed)
	if err != nil {
		return Opening{}, err
	}

	return Opening{
		AssetID:   fr.FromBytesBE(assetIDBE),
		Amount:    fr.FromBytesBE(amountBE),
		PublicKey: pk,
		Blinding:  fr.FromBytesBE(blindingBE),
		IsFrozen:  data[Size-1] == 1,
	}, nil
}
