package ecdsa

import (
	"fmt"

	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

const (
	// SignatureSize is the length of the R || S || V encoding.
	SignatureSize = 65

	// legacyVOffset is added to the recovery bit in pre-EIP-155 Ethereum
	// transactions and in Bitcoin-style compact signatures.
	legacyVOffset = 27

	// eip155VOffset is added to 2*chainID + v under EIP-155.
	eip155VOffset = 35
)

// Signature is an ECDSA signature over secp256k1 together with the recovery
// bit V, the parity of the y coordinate of the nonce point.
//
// Signatures returned by Sign are valid and in low-s form. A Signature built
// by hand may be neither; use IsValid and Normalize.
type Signature struct {
	R secp256k1.Scalar
	S secp256k1.Scalar
	V uint8
}

// NewSignature returns the signature (r, s, v).
func NewSignature(r, s secp256k1.Scalar, v uint8) Signature {
	return Signature{R: r, S: s, V: v}
}

// IsValid reports whether 0 < r < n and 0 < s < n. Scalars are always
// reduced, so this only rejects zero components.
func (sig Signature) IsValid() bool {
	return !sig.R.IsZero() && !sig.S.IsZero()
}

// Normalize returns the low-s form of sig. When s > n/2 it is replaced by
// n - s and the recovery bit is flipped, since negating s corresponds to the
// nonce point with the opposite y parity. Normalizing twice is a no-op.
func (sig Signature) Normalize() Signature {
	if !sig.S.IsOverHalfOrder() {
		return sig
	}
	return Signature{R: sig.R, S: sig.S.Neg(), V: sig.V ^ 1}
}

// IsLowS reports whether s <= n/2.
func (sig Signature) IsLowS() bool {
	return !sig.S.IsOverHalfOrder()
}

// VLegacy returns 27 + v.
func (sig Signature) VLegacy() uint8 {
	return legacyVOffset + sig.V
}

// VEIP155 returns 35 + 2*chainID + v.
func (sig Signature) VEIP155(chainID uint64) uint64 {
	return eip155VOffset + chainID*2 + uint64(sig.V)
}

// Equal reports whether sig and other have the same r, s and v.
func (sig Signature) Equal(other Signature) bool {
	return sig.R.Equal(other.R) && sig.S.Equal(other.S) && sig.V == other.V
}

// Bytes returns the 65-byte Ethereum layout R || S || V with V in {0, 1}.
func (sig Signature) Bytes() [SignatureSize]byte {
	var b [SignatureSize]byte
	r, s := sig.R.Bytes(), sig.S.Bytes()
	copy(b[:32], r[:])
	copy(b[32:64], s[:])
	b[64] = sig.V
	return b
}

// ParseSignature decodes the 65-byte R || S || V layout. V may be given as a
// raw recovery bit (0, 1) or in legacy form (27, 28). R and S must be less
// than the group order but are not required to be nonzero or low-s.
func ParseSignature(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		str := fmt.Sprintf("malformed signature: wrong size: %d", len(b))
		return Signature{}, signatureError(ErrSigInvalidLen, str)
	}

	r, err := secp256k1.ScalarFromBytesChecked(b[:32])
	if err != nil {
		return Signature{}, signatureError(ErrSigRTooBig, "invalid signature: R >= group order")
	}
	s, err := secp256k1.ScalarFromBytesChecked(b[32:64])
	if err != nil {
		return Signature{}, signatureError(ErrSigSTooBig, "invalid signature: S >= group order")
	}
	v, err := normalizeV(uint64(b[64]))
	if err != nil {
		return Signature{}, err
	}
	return Signature{R: r, S: s, V: v}, nil
}

// normalizeV maps 0, 1, 27 and 28 to a recovery bit.
func normalizeV(v uint64) (uint8, error) {
	switch v {
	case 0, 1:
		return uint8(v), nil
	case legacyVOffset, legacyVOffset + 1:
		return uint8(v - legacyVOffset), nil
	default:
		str := fmt.Sprintf("invalid signature: recovery id %d is not one of 0, 1, 27, 28", v)
		return 0, signatureError(ErrSigInvalidRecoveryID, str)
	}
}

// ToDecred converts sig into a decred signature so it can be checked or
// serialized (for example to DER) with dcrd.
func (sig Signature) ToDecred() *dcrecdsa.Signature {
	return dcrecdsa.NewSignature(secp256k1.ScalarToDecred(sig.R), secp256k1.ScalarToDecred(sig.S))
}

// String implements fmt.Stringer.
func (sig Signature) String() string {
	return fmt.Sprintf("{r: %s, s: %s, v: %d}", sig.R, sig.S, sig.V)
}
