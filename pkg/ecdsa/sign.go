package ecdsa

import (
	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

// PublicKeyFromPrivate returns priv*G.
func PublicKeyFromPrivate(priv secp256k1.Scalar) secp256k1.Point {
	return secp256k1.ScalarBaseMult(priv)
}

// DigestToScalar interprets a 32-byte digest as a big-endian integer reduced
// modulo the group order.
func DigestToScalar(digest [32]byte) secp256k1.Scalar {
	return secp256k1.ScalarFromBytes(digest[:])
}

// Sign produces a signature of digest with priv using the caller supplied
// nonce k. The result is in low-s form.
//
// Args:
//   - priv: Private key
//   - digest: Message digest already reduced to a scalar
//   - k: Nonce; it must be secret and never reused across digests
//
// Returns:
//   - The signature, or an error when k is degenerate (k = 0, r = 0 or s = 0).
//     Sign never retries with another nonce.
func Sign(priv, digest, k secp256k1.Scalar) (Signature, error) {
	R := secp256k1.ScalarBaseMult(k)
	rx, ok := R.X()
	if !ok {
		return Signature{}, signatureError(ErrNonceAtInfinity, "nonce point is the point at infinity")
	}
	ry, _ := R.Y()

	r := secp256k1.ScalarFromField(rx)
	if r.IsZero() {
		return Signature{}, signatureError(ErrRIsZero, "r is zero")
	}

	var v uint8
	if ry.IsOdd() {
		v = 1
	}

	kInv, ok := k.Invert()
	if !ok {
		return Signature{}, signatureError(ErrNonceNotInvertible, "nonce is zero")
	}

	// s = k^-1 * (z + r*d)
	s := kInv.Mul(digest.Add(r.Mul(priv)))
	if s.IsZero() {
		return Signature{}, signatureError(ErrSIsZero, "s is zero")
	}

	return NewSignature(r, s, v).Normalize(), nil
}

// SignHash signs a 32-byte digest with priv using the RFC 6979 nonce.
func SignHash(priv secp256k1.Scalar, digest [32]byte) (Signature, error) {
	k := GenerateK(priv, digest)
	return Sign(priv, DigestToScalar(digest), k)
}

// Verify reports whether sig is a valid signature of digest under pub. It
// fails closed: malformed signatures, the identity public key and a
// degenerate reconstructed point all yield false. Both low-s and high-s
// signatures are accepted.
func Verify(pub secp256k1.Point, digest secp256k1.Scalar, sig Signature) bool {
	if !sig.IsValid() || pub.IsInfinity() {
		return false
	}

	sInv, ok := sig.S.Invert()
	if !ok {
		return false
	}

	u1 := digest.Mul(sInv)
	u2 := sig.R.Mul(sInv)

	X := secp256k1.ScalarBaseMult(u1).Add(pub.ScalarMult(u2))
	x, ok := X.X()
	if !ok {
		return false
	}
	return secp256k1.ScalarFromField(x).Equal(sig.R)
}

// VerifyHash is Verify for a 32-byte digest.
func VerifyHash(pub secp256k1.Point, digest [32]byte, sig Signature) bool {
	return Verify(pub, DigestToScalar(digest), sig)
}
