package xdr

import "io"

// ============================================================================
// Discriminated Union Helpers
// ============================================================================

// PackDiscriminant writes the uint32 discriminant of a discriminated
// union. This is an alias for PackUint32 that makes union encode code
// self-documenting.
//
// Per RFC 4506 Section 4.15 (Discriminated Union):
// The discriminant is encoded as a 4-byte word before the arm data.
// Union encoders built on this package return InvalidCase (see
// NewInvalidCaseError) when a value holds a discriminant with no arm,
// and their decoders return InvalidEnum for discriminants outside the
// declared set.
func PackDiscriminant(w io.Writer, disc uint32) (int, error) {
	return PackUint32(w, disc)
}

// UnpackDiscriminant reads the uint32 discriminant of a discriminated
// union. This is an alias for UnpackUint32 that makes union decode code
// self-documenting.
func UnpackDiscriminant(r io.Reader) (uint32, int, error) {
	return UnpackUint32(r)
}
