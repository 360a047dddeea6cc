package memo_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/keys"
	"github.com/kysee/ocash-core/memo"
	"github.com/kysee/ocash-core/record"
)

func TestMemoRoundtrip(t *testing.T) {
	kp, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "")
	require.NoError(t, err)

	opening := record.Opening{
		AssetID:   fr.FromUint64(1),
		Amount:    fr.FromUint64(1000),
		PublicKey: kp.PublicKey,
		Blinding:  fr.FromUint64(42),
		IsFrozen:  false,
	}

	encoded, err := memo.Encrypt(opening, kp.PublicKey, rand.Reader)
	require.NoError(t, err)
	t.Logf("memo: %s", encoded)

	recovered, err := memo.Decrypt(kp.SecretKey, encoded)
	require.NoError(t, err)
	require.NotNil(t, recovered)

	require.True(t, opening.AssetID.Equal(&recovered.AssetID))
	require.True(t, opening.Amount.Equal(&recovered.Amount))
	require.True(t, opening.Blinding.Equal(&recovered.Blinding))
	require.True(t, opening.PublicKey.X.Equal(&recovered.PublicKey.X))
	require.Equal(t, opening.IsFrozen, recovered.IsFrozen)
}

func TestMemoWrongKeyYieldsNegativeResult(t *testing.T) {
	kp, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "")
	require.NoError(t, err)
	other, err := keys.DeriveKeyPair([]byte("a-completely-different-passphrase"), "")
	require.NoError(t, err)

	opening := record.Opening{
		AssetID:   fr.FromUint64(1),
		Amount:    fr.FromUint64(1),
		PublicKey: kp.PublicKey,
		Blinding:  fr.FromUint64(1),
		IsFrozen:  false,
	}

	encoded, err := memo.Encrypt(opening, kp.PublicKey, rand.Reader)
	require.NoError(t, err)

	recovered, err := memo.Decrypt(other.SecretKey, encoded)
	require.NoError(t, err)
	require.Nil(t, recovered)
}

func TestMemoTamperedCiphertextYieldsNegativeResult(t *testing.T) {
	kp, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "")
	require.NoError(t, err)

	opening := record.Opening{
		AssetID:   fr.FromUint64(1),
		Amount:    fr.FromUint64(1),
		PublicKey: kp.PublicKey,
		Blinding:  fr.FromUint64(1),
		IsFrozen:  false,
	}

	encoded, err := memo.Encrypt(opening, kp.PublicKey, rand.Reader)
	require.NoError(t, err)

	raw, err := fr.HexToBytes(encoded)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := fr.BytesToHex(raw)

	recovered, err := memo.Decrypt(kp.SecretKey, tampered)
	require.NoError(t, err)
	require.Nil(t, recovered)
}

