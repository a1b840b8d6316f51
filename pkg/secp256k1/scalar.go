package secp256k1

import (
	"github.com/holiman/uint256"

	"github.com/mahdiidarabi/secp256k1-affine/internal/modular"
)

// Scalar is an integer modulo the group order N. Private keys, nonces,
// digests and signature components are scalars.
type Scalar = modular.Element[groupOrder]

// NewScalar reduces x modulo N.
func NewScalar(x *uint256.Int) Scalar {
	return modular.New[groupOrder](x)
}

// ScalarFromUint64 returns u as a scalar.
func ScalarFromUint64(u uint64) Scalar {
	return modular.FromUint64[groupOrder](u)
}

// ScalarFromBytes interprets b as a big-endian integer reduced modulo N.
func ScalarFromBytes(b []byte) Scalar {
	return modular.FromBytes[groupOrder](b)
}

// ScalarFromBytesChecked is like ScalarFromBytes but rejects encodings of
// values that are not below N instead of reducing them.
func ScalarFromBytesChecked(b []byte) (Scalar, error) {
	s, ok := modular.FromBytesChecked[groupOrder](b)
	if !ok {
		return Scalar{}, makeError(ErrScalarOverflow, "scalar is not less than the group order")
	}
	return s, nil
}

// ScalarFromField reinterprets the integer value of a field element as a
// scalar, reducing it modulo N. This is the only bridge between the two
// types and is used where ECDSA turns a point coordinate into r.
func ScalarFromField(fe FieldElement) Scalar {
	v := fe.Retrieve()
	return NewScalar(&v)
}
