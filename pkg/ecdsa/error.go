package ecdsa

// These constants are used to identify a specific Error.
const (
	// ErrNonceAtInfinity is returned when k*G is the point at infinity, so
	// the nonce point has no x coordinate.
	ErrNonceAtInfinity = ErrorKind("ErrNonceAtInfinity")

	// ErrRIsZero is returned when the x coordinate of the nonce point
	// reduces to zero modulo the group order.
	ErrRIsZero = ErrorKind("ErrRIsZero")

	// ErrNonceNotInvertible is returned when the nonce has no inverse modulo
	// the group order, which only happens for k = 0.
	ErrNonceNotInvertible = ErrorKind("ErrNonceNotInvertible")

	// ErrSIsZero is returned when the computed s is zero.
	ErrSIsZero = ErrorKind("ErrSIsZero")

	// ErrZeroPrivateKey is returned when a signer is created with the zero
	// scalar.
	ErrZeroPrivateKey = ErrorKind("ErrZeroPrivateKey")

	// ErrPrivateKeyInvalidLen is returned when a serialized private key is
	// not 32 bytes.
	ErrPrivateKeyInvalidLen = ErrorKind("ErrPrivateKeyInvalidLen")

	// ErrSigInvalidLen is returned when a serialized signature is not 65
	// bytes.
	ErrSigInvalidLen = ErrorKind("ErrSigInvalidLen")

	// ErrSigInvalidRecoveryID is returned when the recovery byte of a
	// serialized signature is not one of 0, 1, 27 or 28.
	ErrSigInvalidRecoveryID = ErrorKind("ErrSigInvalidRecoveryID")

	// ErrSigRTooBig is returned when r is not less than the group order.
	ErrSigRTooBig = ErrorKind("ErrSigRTooBig")

	// ErrSigSTooBig is returned when s is not less than the group order.
	ErrSigSTooBig = ErrorKind("ErrSigSTooBig")
)

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to signing or signature decoding. It has
// full support for errors.Is and errors.As.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
