package vault

import (
	"context"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lukechampine.com/blake3"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

func TestCreateKeyReturnsOnlyPublicKey(t *testing.T) {
	v := NewMemoryVault()
	pub, err := v.CreateKeyForVerificationMethod(context.Background(), vctypes.MustURL("vm-1"))
	require.NoError(t, err)

	// SEC1 compressed secp256k1 points are 33 bytes.
	assert.Len(t, pub, 33)
	_, err = secp256k1.ParsePubKey(pub)
	require.NoError(t, err, "returned bytes must decode as a valid secp256k1 point")
}

func TestSignWithUnknownKeyFails(t *testing.T) {
	v := NewMemoryVault()
	digest := blake3.Sum256([]byte("hello"))
	_, err := v.SignWith(context.Background(), vctypes.MustURL("vm-missing"), digest[:])
	require.Error(t, err)
	assert.True(t, IsUnknownKey(err))
}

func TestSignWithProducesVerifiableSignature(t *testing.T) {
	v := NewMemoryVault()
	pub, err := v.CreateKeyForVerificationMethod(context.Background(), vctypes.MustURL("vm-1"))
	require.NoError(t, err)

	digest := blake3.Sum256([]byte("payload"))
	sig, err := v.SignWith(context.Background(), vctypes.MustURL("vm-1"), digest[:])
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	pubKey, err := secp256k1.ParsePubKey(pub)
	require.NoError(t, err)
	require.NotNil(t, pubKey)

	parsed, err := ecdsa.ParseDERSignature(sig)
	require.NoError(t, err)
	assert.True(t, parsed.Verify(digest[:], pubKey), "signature must verify under the returned public key")
}

func TestSignWithInvalidKeyMaterial(t *testing.T) {
	v := NewMemoryVault()
	_, err := v.CreateKeyForVerificationMethod(context.Background(), vctypes.MustURL("vm-1"))
	require.NoError(t, err)
	v.keys["vm-1"] = []byte{0x01, 0x02} // corrupt: not 32 bytes

	digest := blake3.Sum256([]byte("payload"))
	_, err = v.SignWith(context.Background(), vctypes.MustURL("vm-1"), digest[:])
	require.Error(t, err)
	assert.True(t, IsInvalidKeyMaterial(err))
}

func TestOperationsFailAfterClose(t *testing.T) {
	v := NewMemoryVault()
	require.NoError(t, v.Close())

	_, err := v.CreateKeyForVerificationMethod(context.Background(), vctypes.MustURL("vm-1"))
	require.Error(t, err)
}
