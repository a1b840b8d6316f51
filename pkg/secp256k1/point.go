package secp256k1

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/mahdiidarabi/secp256k1-affine/internal/modular"
)

var (
	curveB    = FieldElementFromUint64(7)
	generator = mustAffine(generatorXHex, generatorYHex)
)

// Point is either the identity (point at infinity) or an affine point (x, y)
// satisfying y^2 = x^3 + 7. The zero value is the identity.
type Point struct {
	x, y   FieldElement
	affine bool
}

// Identity returns the point at infinity.
func Identity() Point {
	return Point{}
}

// Generator returns the base point G.
func Generator() Point {
	return generator
}

// NewPoint returns the affine point (x, y). It fails when the coordinates do
// not satisfy the curve equation.
func NewPoint(x, y FieldElement) (Point, error) {
	p := Point{x: x, y: y, affine: true}
	if !p.IsOnCurve() {
		return Point{}, makeError(ErrPointNotOnCurve, "point ("+x.String()+", "+y.String()+") is not on the secp256k1 curve")
	}
	return p, nil
}

func mustAffine(xHex, yHex string) Point {
	xb, err := hex.DecodeString(xHex)
	if err != nil {
		panic(err)
	}
	yb, err := hex.DecodeString(yHex)
	if err != nil {
		panic(err)
	}
	p, err := NewPoint(FieldElementFromBytes(xb), FieldElementFromBytes(yb))
	if err != nil {
		panic(err)
	}
	return p
}

// IsInfinity reports whether p is the identity.
func (p Point) IsInfinity() bool {
	return !p.affine
}

// X returns the x coordinate. The second result is false for the identity.
func (p Point) X() (FieldElement, bool) {
	return p.x, p.affine
}

// Y returns the y coordinate. The second result is false for the identity.
func (p Point) Y() (FieldElement, bool) {
	return p.y, p.affine
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + 7. The identity is
// considered on the curve.
func (p Point) IsOnCurve() bool {
	if !p.affine {
		return true
	}
	rhs := p.x.Square().Mul(p.x).Add(curveB)
	return p.y.Square().Equal(rhs)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.affine != q.affine {
		return false
	}
	if !p.affine {
		return true
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Neg returns -p, i.e. (x, -y).
func (p Point) Neg() Point {
	if !p.affine {
		return p
	}
	return Point{x: p.x, y: p.y.Neg(), affine: true}
}

// Add returns p + q under the group law.
func (p Point) Add(q Point) Point {
	if !p.affine {
		return q
	}
	if !q.affine {
		return p
	}

	var m FieldElement
	if p.x.Equal(q.x) {
		// Same x with different y means q = -p. A zero y means the tangent
		// is vertical. Both sum to the identity.
		if !p.y.Equal(q.y) || p.y.IsZero() {
			return Identity()
		}

		// m = 3x^2 / 2y
		num := p.x.Square().Mul(FieldElementFromUint64(3))
		den, ok := p.y.Add(p.y).Invert()
		if !ok {
			return Identity()
		}
		m = num.Mul(den)
	} else {
		// m = (y2 - y1) / (x2 - x1)
		den, ok := q.x.Sub(p.x).Invert()
		if !ok {
			return Identity()
		}
		m = q.y.Sub(p.y).Mul(den)
	}

	rx := m.Square().Sub(p.x).Sub(q.x)
	ry := m.Mul(p.x.Sub(rx)).Sub(p.y)
	return Point{x: rx, y: ry, affine: true}
}

// Double returns p + p.
func (p Point) Double() Point {
	return p.Add(p)
}

// Mul returns k*p using double-and-add over all 256 bits of k, least
// significant first. k is not reduced modulo N.
//
// The conditional add branches on the bits of k.
func (p Point) Mul(k *uint256.Int) Point {
	result := Identity()
	addend := p
	for i := 0; i < 256; i++ {
		if modular.Bit(k, i) {
			result = result.Add(addend)
		}
		addend = addend.Double()
	}
	return result
}

// ScalarMult returns k*p.
func (p Point) ScalarMult(k Scalar) Point {
	v := k.Retrieve()
	return p.Mul(&v)
}

// ScalarBaseMult returns k*G.
func ScalarBaseMult(k Scalar) Point {
	return generator.ScalarMult(k)
}

// String implements fmt.Stringer.
func (p Point) String() string {
	if !p.affine {
		return "identity"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
