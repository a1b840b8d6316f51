package secp256k1

import (
	"github.com/holiman/uint256"

	"github.com/mahdiidarabi/secp256k1-affine/internal/modular"
)

// FieldElement is an integer modulo the field prime P. Point coordinates are
// field elements.
type FieldElement = modular.Element[fieldPrime]

// NewFieldElement reduces x modulo P.
func NewFieldElement(x *uint256.Int) FieldElement {
	return modular.New[fieldPrime](x)
}

// FieldElementFromUint64 returns u as a field element.
func FieldElementFromUint64(u uint64) FieldElement {
	return modular.FromUint64[fieldPrime](u)
}

// FieldElementFromBytes interprets b as a big-endian integer reduced modulo P.
func FieldElementFromBytes(b []byte) FieldElement {
	return modular.FromBytes[fieldPrime](b)
}

// sqrt returns a square root of a if one exists. Since P = 3 mod 4 the root
// is a^((P+1)/4).
func sqrt(a FieldElement) (FieldElement, bool) {
	var exp uint256.Int
	p := P()
	exp.AddUint64(&p, 1)
	exp.Rsh(&exp, 2)

	root := a.Pow(&exp)
	if !root.Square().Equal(a) {
		return FieldElement{}, false
	}
	return root, true
}
