package zzint

import "errors"

// Operations report failure through one of three sentinels; a nil error
// means the operation committed. Wrap-compatible with errors.Is.
var (
	// ErrOutOfMemory reports that storage for a result or a kernel
	// temporary could not be allocated. The outputs of the failed
	// operation keep their previous values.
	ErrOutOfMemory = errors.New("zzint: out of memory")

	// ErrInvalidValue reports an argument outside the operation's domain:
	// a malformed string, a zero divisor or modulus, a negative square
	// root operand, a non-invertible base for a negative exponent.
	ErrInvalidValue = errors.New("zzint: invalid value")

	// ErrRangeExceeded reports a result that cannot be represented: an
	// undersized export buffer, a conversion overflow, or a result whose
	// digit count would exceed MaxDigits.
	ErrRangeExceeded = errors.New("zzint: buffer or range exceeded")
)
