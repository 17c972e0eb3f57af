package xdr

// alignment is the XDR basic block size. Every encoded item occupies a
// multiple of four bytes (RFC 4506 Section 3).
const alignment = 4

// zeros backs the slices returned by Padding and the bulk zero fill in
// fixed-size array encoding. Callers must never write through them.
var zeros [256]byte

// Padding returns the zero bytes that extend n written bytes to the
// next 4-byte boundary. The result has length 0 to 3 and aliases shared
// storage, so it is only valid for writing out, not for modification.
//
// Example:
//
//	Padding(3) → [00]
//	Padding(4) → []
//	Padding(5) → [00 00 00]
func Padding(n int) []byte {
	return zeros[:padLen(n)]
}

// padLen computes (4 - (n % 4)) % 4, the pad size for n bytes of data.
func padLen(n int) int {
	return (alignment - n%alignment) % alignment
}
