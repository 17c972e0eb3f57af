// Package xdr implements the External Data Representation wire format
// defined by RFC 4506.
//
// XDR encodes every item as a multiple of four bytes. Multi-byte
// quantities are big-endian. Variable-length data is preceded by a
// uint32 byte or element count and followed by zero padding up to the
// next 4-byte boundary. Fixed-size data carries no count; its length is
// part of the protocol agreement between peers.
//
// The package exposes two layers:
//
//   - Free functions (PackUint32, UnpackString, PackOpaqueFlex, ...)
//     encode and decode individual items against an io.Writer or
//     io.Reader. Every function reports the number of bytes moved,
//     padding included, so callers can account for stream position.
//
//   - The Packer and Unpacker contracts let composite types encode
//     themselves. Named wire types (Uint32, String, Opaque, ...)
//     implement both, and the generic helpers (PackSeq, UnpackOption,
//     PackArray, ...) work over any implementing type:
//
//	type Entry struct {
//	    Name  xdr.String
//	    Flags xdr.Uint32
//	}
//
//	func (e *Entry) Pack(w io.Writer) (int, error) { ... }
//	func (e *Entry) Unpack(r io.Reader) (int, error) { ... }
//
//	entries, n, err := xdr.UnpackFlex[Entry](r, 128)
//
// Decoding follows an exactly-N-bytes contract: a short read is an IO
// error, never a silent truncation. Length-checked helpers (the Flex
// variants) validate counts before any payload I/O, so a caller-chosen
// maximum bounds worst-case allocation from untrusted input. All errors
// are *Error values carrying an ErrorCode; see errors.go.
//
// The package performs no logging and keeps no mutable package state,
// so distinct streams can be encoded and decoded concurrently. A single
// stream must be confined to one goroutine at a time.
//
// Record marking (the framing RFC 5531 Section 11 layers on top of XDR
// streams over TCP) lives in the sibling record package.
package xdr
