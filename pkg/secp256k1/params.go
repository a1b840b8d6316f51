package secp256k1

import (
	"github.com/holiman/uint256"

	"github.com/mahdiidarabi/secp256k1-affine/internal/modular"
)

// Curve constants. See https://www.secg.org/sec2-v2.pdf section 2.4.1.
const (
	fieldPrimeHex = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"
	groupOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	generatorXHex = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	generatorYHex = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

var (
	fieldParams = modular.NewParams("secp256k1 field prime", fieldPrimeHex)
	orderParams = modular.NewParams("secp256k1 group order", groupOrderHex)
)

type fieldPrime struct{}

func (fieldPrime) Params() *modular.Params { return fieldParams }

type groupOrder struct{}

func (groupOrder) Params() *modular.Params { return orderParams }

// P returns the field prime 2^256 - 2^32 - 977.
func P() uint256.Int {
	return fieldParams.Modulus()
}

// N returns the order of the group generated by G.
func N() uint256.Int {
	return orderParams.Modulus()
}

// HalfN returns floor(N / 2), the largest s accepted in low-s form.
func HalfN() uint256.Int {
	return orderParams.HalfModulus()
}
