package keys_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/babyjubjub"
	"github.com/kysee/ocash-core/keys"
)

func TestDeriveKeyPairDeterministic(t *testing.T) {
	kp1, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "")
	require.NoError(t, err)

	kp2, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "")
	require.NoError(t, err)

	require.Equal(t, 0, kp1.SecretKey.Cmp(kp2.SecretKey))
	require.True(t, kp1.PublicKey.X.Equal(&kp2.PublicKey.X))

	require.True(t, babyjubjub.IsOnCurve(kp1.PublicKey))
}

func TestDeriveKeyPairNonceChangesKey(t *testing.T) {
	kp1, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "")
	require.NoError(t, err)

	kp2, err := keys.DeriveKeyPair([]byte("test-seed-for-memo-roundtrip"), "account-2")
	require.NoError(t, err)

	require.NotEqual(t, 0, kp1.SecretKey.Cmp(kp2.SecretKey))
}

func TestDeriveKeyPairSeedTooShort(t *testing.T) {
	_, err := keys.DeriveKeyPair([]byte("short"), "")
	require.Error(t, err)
}
