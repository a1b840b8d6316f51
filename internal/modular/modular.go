// Package modular implements arithmetic on integers modulo a fixed 256-bit
// prime.
//
// An Element is parameterized by a Modulus marker type, so two moduli produce
// two distinct Go types that cannot be mixed without an explicit conversion.
// Every Element holds a value already reduced into [0, m).
package modular

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

// Params holds the constants derived from a prime modulus.
type Params struct {
	Name string

	m      uint256.Int // the modulus
	invExp uint256.Int // m - 2, the Fermat inversion exponent
	half   uint256.Int // floor(m / 2)
}

// NewParams builds the parameters for the prime modulus given as a 64 digit
// big-endian hex string. It panics on malformed input since moduli are
// compile-time constants.
func NewParams(name, modulusHex string) *Params {
	b, err := hex.DecodeString(modulusHex)
	if err != nil || len(b) != 32 {
		panic(fmt.Sprintf("modular: invalid modulus for %s: %q", name, modulusHex))
	}

	p := &Params{Name: name}
	p.m.SetBytes32(b)
	if p.m.LtUint64(3) {
		panic(fmt.Sprintf("modular: modulus for %s is too small", name))
	}
	p.invExp.SubUint64(&p.m, 2)
	p.half.Rsh(&p.m, 1)
	return p
}

// Modulus returns a copy of the modulus.
func (p *Params) Modulus() uint256.Int {
	return p.m
}

// HalfModulus returns floor(m / 2).
func (p *Params) HalfModulus() uint256.Int {
	return p.half
}

// Modulus is implemented by zero-size marker types that select the modulus of
// an Element.
type Modulus interface {
	Params() *Params
}

// Element is an integer in [0, m) where m is supplied by M. The zero value is
// the additive identity.
type Element[M Modulus] struct {
	v uint256.Int
}

func params[M Modulus]() *Params {
	var m M
	return m.Params()
}

// New reduces x modulo m.
func New[M Modulus](x *uint256.Int) Element[M] {
	var e Element[M]
	p := params[M]()
	if x.Lt(&p.m) {
		e.v.Set(x)
	} else {
		e.v.Mod(x, &p.m)
	}
	return e
}

// FromUint64 returns u modulo m.
func FromUint64[M Modulus](u uint64) Element[M] {
	return New[M](uint256.NewInt(u))
}

// FromBytes interprets b as a big-endian unsigned integer and reduces it
// modulo m. Inputs longer than 32 bytes keep their rightmost 32 bytes.
func FromBytes[M Modulus](b []byte) Element[M] {
	var x uint256.Int
	x.SetBytes(b)
	return New[M](&x)
}

// FromBytesChecked is like FromBytes but reports false instead of reducing
// when the encoded value is not already below m.
func FromBytesChecked[M Modulus](b []byte) (Element[M], bool) {
	var e Element[M]
	if len(b) > 32 {
		return e, false
	}
	e.v.SetBytes(b)
	p := params[M]()
	if !e.v.Lt(&p.m) {
		return Element[M]{}, false
	}
	return e, true
}

// Zero returns the additive identity.
func Zero[M Modulus]() Element[M] {
	return Element[M]{}
}

// One returns the multiplicative identity.
func One[M Modulus]() Element[M] {
	var e Element[M]
	e.v.SetOne()
	return e
}

// Add returns e + o mod m.
func (e Element[M]) Add(o Element[M]) Element[M] {
	var r Element[M]
	r.v.AddMod(&e.v, &o.v, &params[M]().m)
	return r
}

// Sub returns e - o mod m.
func (e Element[M]) Sub(o Element[M]) Element[M] {
	var r Element[M]
	r.v.Sub(&e.v, &o.v)
	if e.v.Lt(&o.v) {
		// Both operands are below m, so adding m once wraps the borrow back
		// into range.
		r.v.Add(&r.v, &params[M]().m)
	}
	return r
}

// Neg returns -e mod m.
func (e Element[M]) Neg() Element[M] {
	return Element[M]{}.Sub(e)
}

// Mul returns e * o mod m.
func (e Element[M]) Mul(o Element[M]) Element[M] {
	var r Element[M]
	r.v.MulMod(&e.v, &o.v, &params[M]().m)
	return r
}

// Square returns e * e mod m.
func (e Element[M]) Square() Element[M] {
	return e.Mul(e)
}

// Pow returns e^exp mod m using left-to-right square and multiply. The
// exponent is a plain 256-bit integer and is not reduced.
func (e Element[M]) Pow(exp *uint256.Int) Element[M] {
	r := One[M]()
	for i := exp.BitLen() - 1; i >= 0; i-- {
		r = r.Square()
		if bit(exp, i) {
			r = r.Mul(e)
		}
	}
	return r
}

// Invert returns the multiplicative inverse of e. The second result is false
// exactly when e is zero.
func (e Element[M]) Invert() (Element[M], bool) {
	if e.IsZero() {
		return Element[M]{}, false
	}
	return e.Pow(&params[M]().invExp), true
}

// IsZero reports whether e is the additive identity.
func (e Element[M]) IsZero() bool {
	return e.v.IsZero()
}

// IsOdd reports whether the canonical value of e is odd.
func (e Element[M]) IsOdd() bool {
	return e.v[0]&1 == 1
}

// IsOverHalfOrder reports whether the canonical value of e is greater than
// floor(m / 2).
func (e Element[M]) IsOverHalfOrder() bool {
	return e.v.Gt(&params[M]().half)
}

// Equal reports whether e and o hold the same value.
func (e Element[M]) Equal(o Element[M]) bool {
	return e.v.Eq(&o.v)
}

// Retrieve returns the canonical integer value of e.
func (e Element[M]) Retrieve() uint256.Int {
	return e.v
}

// Bytes returns the 32-byte big-endian encoding of e.
func (e Element[M]) Bytes() [32]byte {
	return e.v.Bytes32()
}

// String returns e as 64 lowercase hex digits.
func (e Element[M]) String() string {
	b := e.v.Bytes32()
	return hex.EncodeToString(b[:])
}

// Bit reports whether bit i (0 = least significant) of x is set.
func Bit(x *uint256.Int, i int) bool {
	return bit(x, i)
}

func bit(x *uint256.Int, i int) bool {
	return (x[i/64]>>(uint(i)%64))&1 == 1
}
