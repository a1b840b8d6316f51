package ecdsa

import (
	"github.com/mahdiidarabi/secp256k1-affine/internal/drbg"
	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

// GenerateK derives the RFC 6979 nonce for signing digest with priv using
// HMAC-SHA256. The same inputs always yield the same nonce.
func GenerateK(priv secp256k1.Scalar, digest [32]byte) secp256k1.Scalar {
	return GenerateKWithExtra(priv, digest, nil)
}

// GenerateKWithExtra is like GenerateK but mixes extra into the seed as
// additional data (RFC 6979 section 3.6).
//
// Args:
//   - priv: Private key
//   - digest: 32-byte message digest, used as is without reduction
//   - extra: Optional additional data, may be nil
//
// Returns:
//   - A nonce in [1, n-1]
func GenerateKWithExtra(priv secp256k1.Scalar, digest [32]byte, extra []byte) secp256k1.Scalar {
	key := priv.Bytes()
	rng := drbg.NewSHA256(key[:], digest[:], extra)

	var candidate [32]byte
	for {
		rng.Generate(candidate[:])
		k, err := secp256k1.ScalarFromBytesChecked(candidate[:])
		if err == nil && !k.IsZero() {
			return k
		}
	}
}
