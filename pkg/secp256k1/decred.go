package secp256k1

import (
	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ToDecred converts p into a decred public key so it can be handed to code
// built on dcrd or btcec. The identity has no such representation.
func (p Point) ToDecred() (*dcrec.PublicKey, error) {
	if !p.affine {
		return nil, makeError(ErrPubKeyIsIdentity, "the point at infinity is not a valid public key")
	}
	xb, yb := p.x.Bytes(), p.y.Bytes()
	var x, y dcrec.FieldVal
	x.SetBytes(&xb)
	y.SetBytes(&yb)
	return dcrec.NewPublicKey(&x, &y), nil
}

// PointFromDecred converts a decred public key into a Point.
func PointFromDecred(pub *dcrec.PublicKey) (Point, error) {
	return ParsePoint(pub.SerializeUncompressed())
}

// ScalarToDecred converts s into a decred mod-N scalar.
func ScalarToDecred(s Scalar) *dcrec.ModNScalar {
	b := s.Bytes()
	var out dcrec.ModNScalar
	out.SetBytes(&b)
	return &out
}

// ScalarFromDecred converts a decred mod-N scalar into a Scalar.
func ScalarFromDecred(s *dcrec.ModNScalar) Scalar {
	b := s.Bytes()
	return ScalarFromBytes(b[:])
}
