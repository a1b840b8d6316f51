package secp256k1

import (
	"fmt"

	"github.com/mahdiidarabi/secp256k1-affine/internal/modular"
)

// SEC 1 public key encodings.
const (
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65

	PubKeyFormatCompressedEven byte = 0x02
	PubKeyFormatCompressedOdd  byte = 0x03
	PubKeyFormatUncompressed   byte = 0x04
	PubKeyFormatHybridEven     byte = 0x06
	PubKeyFormatHybridOdd      byte = 0x07
)

// SerializeCompressed returns the 33-byte SEC 1 compressed encoding of p:
// 0x02 or 0x03 depending on the parity of y, then x. The identity has no
// encoding and yields nil.
func (p Point) SerializeCompressed() []byte {
	if !p.affine {
		return nil
	}
	b := make([]byte, 0, PubKeyBytesLenCompressed)
	format := PubKeyFormatCompressedEven
	if p.y.IsOdd() {
		format = PubKeyFormatCompressedOdd
	}
	x := p.x.Bytes()
	b = append(b, format)
	return append(b, x[:]...)
}

// SerializeUncompressed returns the 65-byte SEC 1 encoding 0x04 || x || y.
// The identity yields nil.
func (p Point) SerializeUncompressed() []byte {
	if !p.affine {
		return nil
	}
	b := make([]byte, 0, PubKeyBytesLenUncompressed)
	x, y := p.x.Bytes(), p.y.Bytes()
	b = append(b, PubKeyFormatUncompressed)
	b = append(b, x[:]...)
	return append(b, y[:]...)
}

// ParsePoint decodes a SEC 1 public key in compressed, uncompressed or hybrid
// form. Coordinates must be canonical and the result must lie on the curve.
func ParsePoint(serialized []byte) (Point, error) {
	switch len(serialized) {
	case PubKeyBytesLenUncompressed:
		format := serialized[0]
		switch format {
		case PubKeyFormatUncompressed, PubKeyFormatHybridEven, PubKeyFormatHybridOdd:
		default:
			str := fmt.Sprintf("invalid public key: unsupported format: %x", format)
			return Point{}, makeError(ErrPubKeyInvalidFormat, str)
		}

		x, ok := modular.FromBytesChecked[fieldPrime](serialized[1:33])
		if !ok {
			return Point{}, makeError(ErrPubKeyXTooBig, "invalid public key: x >= field prime")
		}
		y, ok := modular.FromBytesChecked[fieldPrime](serialized[33:])
		if !ok {
			return Point{}, makeError(ErrPubKeyYTooBig, "invalid public key: y >= field prime")
		}

		// The hybrid format byte repeats the parity of y.
		if format != PubKeyFormatUncompressed {
			wantOdd := format == PubKeyFormatHybridOdd
			if y.IsOdd() != wantOdd {
				str := fmt.Sprintf("invalid public key: y oddness does not match "+
					"specified value of %v", wantOdd)
				return Point{}, makeError(ErrPubKeyMismatchedOddness, str)
			}
		}

		p := Point{x: x, y: y, affine: true}
		if !p.IsOnCurve() {
			str := fmt.Sprintf("invalid public key: [%v,%v] not on secp256k1 curve", x, y)
			return Point{}, makeError(ErrPubKeyNotOnCurve, str)
		}
		return p, nil

	case PubKeyBytesLenCompressed:
		format := serialized[0]
		if format != PubKeyFormatCompressedEven && format != PubKeyFormatCompressedOdd {
			str := fmt.Sprintf("invalid public key: unsupported format: %x", format)
			return Point{}, makeError(ErrPubKeyInvalidFormat, str)
		}

		x, ok := modular.FromBytesChecked[fieldPrime](serialized[1:])
		if !ok {
			return Point{}, makeError(ErrPubKeyXTooBig, "invalid public key: x >= field prime")
		}
		y, err := decompressY(x, format == PubKeyFormatCompressedOdd)
		if err != nil {
			return Point{}, err
		}
		return Point{x: x, y: y, affine: true}, nil

	default:
		str := fmt.Sprintf("malformed public key: invalid length: %d", len(serialized))
		return Point{}, makeError(ErrPubKeyInvalidLen, str)
	}
}

// decompressY solves y^2 = x^3 + 7 and picks the root with the requested
// parity.
func decompressY(x FieldElement, odd bool) (FieldElement, error) {
	rhs := x.Square().Mul(x).Add(curveB)
	y, ok := sqrt(rhs)
	if !ok {
		str := fmt.Sprintf("invalid public key: x coordinate %v is not on the secp256k1 curve", x)
		return FieldElement{}, makeError(ErrPubKeyNotOnCurve, str)
	}
	if y.IsOdd() != odd {
		y = y.Neg()
	}
	return y, nil
}
