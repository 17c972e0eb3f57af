// errors.go defines the error taxonomy shared by every encode and
// decode operation in the package. This is a leaf file with no
// dependencies on the codec itself, so wire types, generic helpers and
// generated code can all return the same error values without import
// cycles.
package xdr

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a codec failure.
type ErrorCode int

const (
	// ErrIO indicates the underlying reader or writer failed. The
	// cause is preserved, so errors.Is(err, io.ErrUnexpectedEOF)
	// detects short reads through the wrapper.
	ErrIO ErrorCode = iota + 1

	// ErrInvalidUTF8 indicates a decoded string payload was not valid
	// UTF-8.
	ErrInvalidUTF8

	// ErrInvalidCase indicates an encode-time union whose discriminant
	// selects no arm. Produced by union encoders built on this package.
	ErrInvalidCase

	// ErrInvalidEnum indicates a decoded enumerated or boolean value
	// outside its legal set.
	ErrInvalidEnum

	// ErrInvalidLen indicates a length or count outside the bounds the
	// caller declared, or one that cannot be represented in the 4-byte
	// wire count.
	ErrInvalidLen

	// ErrGeneric indicates a failure carrying only a message.
	ErrGeneric
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrIO:
		return "IO"
	case ErrInvalidUTF8:
		return "InvalidUTF8"
	case ErrInvalidCase:
		return "InvalidCase"
	case ErrInvalidEnum:
		return "InvalidEnum"
	case ErrInvalidLen:
		return "InvalidLen"
	case ErrGeneric:
		return "Generic"
	default:
		return fmt.Sprintf("Unknown(%d)", int(e))
	}
}

// Error is the error type returned by every operation in the package.
// Values are immutable after construction and safe to share across
// goroutines.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("xdr: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("xdr: %s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ============================================================================
// Factory Functions
// ============================================================================

// NewIOError creates an IO error wrapping the underlying cause.
// The op names the operation that touched the stream ("read uint32",
// "write opaque data").
func NewIOError(op string, cause error) *Error {
	return &Error{
		Code:    ErrIO,
		Message: op,
		Cause:   cause,
	}
}

// utf8PreviewLen bounds how much of an invalid payload appears in the
// error message.
const utf8PreviewLen = 32

// NewInvalidUTF8Error creates an InvalidUTF8 error describing the
// offending payload.
func NewInvalidUTF8Error(data []byte) *Error {
	preview := data
	suffix := ""
	if len(preview) > utf8PreviewLen {
		preview = preview[:utf8PreviewLen]
		suffix = "..."
	}
	return &Error{
		Code:    ErrInvalidUTF8,
		Message: fmt.Sprintf("invalid UTF-8 sequence: %x%s", preview, suffix),
	}
}

// NewInvalidCaseError creates an InvalidCase error for a union value
// whose discriminant selects no arm.
func NewInvalidCaseError(disc uint32) *Error {
	return &Error{
		Code:    ErrInvalidCase,
		Message: fmt.Sprintf("no union arm for discriminant %d", disc),
	}
}

// NewInvalidEnumError creates an InvalidEnum error for a decoded value
// outside the legal set of the named type.
func NewInvalidEnumError(typ string, value int64) *Error {
	return &Error{
		Code:    ErrInvalidEnum,
		Message: fmt.Sprintf("value %d is not a valid %s", value, typ),
	}
}

// NewInvalidLenError creates an InvalidLen error with the given message.
func NewInvalidLenError(message string) *Error {
	return &Error{
		Code:    ErrInvalidLen,
		Message: message,
	}
}

// NewGenericError creates a Generic error with the given message.
func NewGenericError(message string) *Error {
	return &Error{
		Code:    ErrGeneric,
		Message: message,
	}
}

// ============================================================================
// Error Type Checking Helpers
// ============================================================================

// CodeOf extracts the ErrorCode from an error produced by this package,
// unwrapping as needed. The second return is false when the error did
// not originate here.
func CodeOf(err error) (ErrorCode, bool) {
	var xdrErr *Error
	if errors.As(err, &xdrErr) {
		return xdrErr.Code, true
	}
	return 0, false
}

// IsIOError returns true if the error is an IO error.
func IsIOError(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrIO
}

// IsInvalidUTF8Error returns true if the error is an InvalidUTF8 error.
func IsInvalidUTF8Error(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrInvalidUTF8
}

// IsInvalidCaseError returns true if the error is an InvalidCase error.
func IsInvalidCaseError(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrInvalidCase
}

// IsInvalidEnumError returns true if the error is an InvalidEnum error.
func IsInvalidEnumError(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrInvalidEnum
}

// IsInvalidLenError returns true if the error is an InvalidLen error.
func IsInvalidLenError(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrInvalidLen
}
