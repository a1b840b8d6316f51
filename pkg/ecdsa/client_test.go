package ecdsa

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

func TestNewSigner_RejectsZeroKey(t *testing.T) {
	_, err := NewSigner(secp256k1.ScalarFromUint64(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroPrivateKey))
}

func TestNewSignerFromBytes(t *testing.T) {
	key := make([]byte, 32)
	key[30], key[31] = 0x30, 0x39

	signer, err := NewSignerFromBytes(key)
	require.NoError(t, err)
	assert.True(t, signer.PublicKey().Equal(secp256k1.ScalarBaseMult(secp256k1.ScalarFromUint64(12345))))

	_, err = NewSignerFromBytes(key[:31])
	assert.True(t, errors.Is(err, ErrPrivateKeyInvalidLen), "short key: %v", err)

	_, err = NewSignerFromBytes(make([]byte, 32))
	assert.True(t, errors.Is(err, ErrZeroPrivateKey), "zero key: %v", err)

	_, err = NewSignerFromBytes(bytes.Repeat([]byte{0xff}, 32))
	assert.True(t, errors.Is(err, secp256k1.ErrScalarOverflow), "overflowing key: %v", err)
}

func TestSigner_SignDigest(t *testing.T) {
	key := secp256k1.ScalarFromUint64(12345)
	signer, err := NewSigner(key)
	require.NoError(t, err)

	digest := digestFromHex(t, "abababababababababababababababababababababababababababababababab")
	sig, err := signer.SignDigest(digest)
	require.NoError(t, err)

	want, err := SignHash(key, digest)
	require.NoError(t, err)
	assert.True(t, sig.Equal(want))
	assert.True(t, signer.Verify(digest, sig))

	digest[0] ^= 0x01
	assert.False(t, signer.Verify(digest, sig))
}

func TestSigner_V(t *testing.T) {
	signer, err := NewSigner(secp256k1.ScalarFromUint64(1))
	require.NoError(t, err)

	even := Signature{V: 0}
	odd := Signature{V: 1}

	assert.Equal(t, uint64(0), signer.ChainID())
	assert.Equal(t, uint64(27), signer.V(even))
	assert.Equal(t, uint64(28), signer.V(odd))

	signer.WithChainID(1)
	assert.Equal(t, uint64(1), signer.ChainID())
	assert.Equal(t, uint64(37), signer.V(even))
	assert.Equal(t, uint64(38), signer.V(odd))
}
