// Package secp256k1 implements the secp256k1 elliptic curve group from first
// principles: field and scalar arithmetic, affine point addition, doubling and
// scalar multiplication, plus SEC 1 public key encoding.
//
// The curve is y^2 = x^3 + 7 over the prime field of order
// P = 2^256 - 2^32 - 977, with base point G of prime order N.
//
// Arithmetic is performed on affine coordinates with one field inversion per
// group operation. Scalar multiplication branches on the bits of the scalar,
// so this package is not suitable where timing side channels matter.
//
// Basic usage:
//
//	d := secp256k1.ScalarFromUint64(12345)
//	pub := secp256k1.ScalarBaseMult(d)
//	fmt.Printf("%x\n", pub.SerializeCompressed())
package secp256k1
