package secp256k1

// These constants are used to identify a specific Error.
const (
	// ErrPubKeyInvalidLen is returned when a serialized public key is not one
	// of the lengths allowed by SEC 1.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat is returned when the format byte of a serialized
	// public key does not match its length.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig is returned when the x coordinate of a serialized
	// public key is not less than the field prime.
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig is returned when the y coordinate of a serialized
	// public key is not less than the field prime.
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve is returned when a serialized public key does not
	// decode to a point on the curve.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrPubKeyMismatchedOddness is returned when a hybrid public key
	// specifies a y oddness that differs from its encoded y coordinate.
	ErrPubKeyMismatchedOddness = ErrorKind("ErrPubKeyMismatchedOddness")

	// ErrPubKeyIsIdentity is returned when the point at infinity is used
	// where a public key is required.
	ErrPubKeyIsIdentity = ErrorKind("ErrPubKeyIsIdentity")

	// ErrPointNotOnCurve is returned when affine coordinates do not satisfy
	// the curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrScalarOverflow is returned when a 32-byte scalar encoding is not
	// less than the group order.
	ErrScalarOverflow = ErrorKind("ErrScalarOverflow")
)

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve points or scalars. It has full
// support for errors.Is and errors.As.
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

func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
