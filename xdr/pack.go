package xdr

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ============================================================================
// Primitive Encoders - Go Values → Wire Format
// ============================================================================

// PackUint32 encodes a 32-bit unsigned integer.
//
// Per RFC 4506 Section 4.2 (Unsigned Integer):
// 4 bytes, big-endian.
func PackUint32(w io.Writer, v uint32) (int, error) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	n, err := w.Write(buf[:])
	if err != nil {
		return n, NewIOError("write uint32", err)
	}
	return n, nil
}

// PackInt32 encodes a 32-bit signed integer.
//
// Per RFC 4506 Section 4.1 (Integer):
// 4 bytes, big-endian, two's complement.
func PackInt32(w io.Writer, v int32) (int, error) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	n, err := w.Write(buf[:])
	if err != nil {
		return n, NewIOError("write int32", err)
	}
	return n, nil
}

// PackUint64 encodes a 64-bit unsigned integer.
//
// Per RFC 4506 Section 4.5 (Hyper Integer):
// 8 bytes, big-endian.
func PackUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	n, err := w.Write(buf[:])
	if err != nil {
		return n, NewIOError("write uint64", err)
	}
	return n, nil
}

// PackInt64 encodes a 64-bit signed integer.
//
// Per RFC 4506 Section 4.5 (Hyper Integer):
// 8 bytes, big-endian, two's complement.
func PackInt64(w io.Writer, v int64) (int, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	n, err := w.Write(buf[:])
	if err != nil {
		return n, NewIOError("write int64", err)
	}
	return n, nil
}

// PackFloat32 encodes a single-precision float.
//
// Per RFC 4506 Section 4.6 (Floating-Point):
// IEEE 754 single-precision bits, big-endian.
func PackFloat32(w io.Writer, v float32) (int, error) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	n, err := w.Write(buf[:])
	if err != nil {
		return n, NewIOError("write float32", err)
	}
	return n, nil
}

// PackFloat64 encodes a double-precision float.
//
// Per RFC 4506 Section 4.7 (Double-Precision Floating-Point):
// IEEE 754 double-precision bits, big-endian.
func PackFloat64(w io.Writer, v float64) (int, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	n, err := w.Write(buf[:])
	if err != nil {
		return n, NewIOError("write float64", err)
	}
	return n, nil
}

// PackBool encodes a boolean.
//
// Per RFC 4506 Section 4.4 (Boolean):
// uint32 with value 0 (false) or 1 (true).
func PackBool(w io.Writer, v bool) (int, error) {
	var word uint32
	if v {
		word = 1
	}
	return PackUint32(w, word)
}

// PackVoid encodes a void value, which occupies zero bytes on the wire
// (RFC 4506 Section 4.16). It exists so union arms and RPC procedures
// without a body compose like any other item.
func PackVoid(io.Writer) (int, error) {
	return 0, nil
}

// PackUint encodes a Go uint as the 4-byte unsigned wire form. Values
// above the 32-bit range cannot be represented and fail with InvalidLen
// before anything is written. Counts and sizes in XDR protocols are
// 32-bit; this keeps native-width Go code honest about that.
func PackUint(w io.Writer, v uint) (int, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, NewInvalidLenError(fmt.Sprintf("uint value %d overflows the 4-byte wire form", v))
	}
	return PackUint32(w, uint32(v))
}

// ============================================================================
// Counted Sequences
// ============================================================================

// PackSeq encodes a variable-length array: a uint32 element count
// followed by each element's wire form.
//
// Per RFC 4506 Section 4.13 (Variable-Length Array):
// Format: [count:uint32][element 0]...[element count-1]
//
// Elements are themselves aligned, so no trailing pad is added. A slice
// longer than 4294967295 elements cannot be counted on the wire and
// fails with InvalidLen before anything is written.
func PackSeq[T any, P PackerPtr[T]](w io.Writer, vals []T) (int, error) {
	if uint64(len(vals)) > math.MaxUint32 {
		return 0, NewInvalidLenError(fmt.Sprintf("sequence count %d overflows the 4-byte count", len(vals)))
	}

	sz, err := PackUint32(w, uint32(len(vals)))
	if err != nil {
		return sz, err
	}

	for i := range vals {
		n, err := P(&vals[i]).Pack(w)
		sz += n
		if err != nil {
			return sz, err
		}
	}
	return sz, nil
}

// PackFlex encodes a variable-length array whose count the caller
// bounds, typically with a limit from the protocol schema. The bound is
// checked before any bytes are written, so a failed call leaves the
// stream untouched. maxLen < 0 (NoMax) disables the bound.
func PackFlex[T any, P PackerPtr[T]](w io.Writer, vals []T, maxLen int) (int, error) {
	if maxLen >= 0 && len(vals) > maxLen {
		return 0, NewInvalidLenError(fmt.Sprintf("sequence length %d exceeds maximum %d", len(vals), maxLen))
	}
	return PackSeq[T, P](w, vals)
}

// ============================================================================
// Opaque Data and Strings
// ============================================================================

// PackOpaque encodes variable-length opaque data.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data):
// Format: [count:uint32][data:count bytes][padding:0-3 bytes]
//
// Example:
//
//	[]byte{0x01, 0x02, 0x03} → [00 00 00 03][01 02 03][00] (8 bytes total)
func PackOpaque(w io.Writer, data []byte) (int, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return 0, NewInvalidLenError(fmt.Sprintf("opaque length %d overflows the 4-byte count", len(data)))
	}

	sz, err := PackUint32(w, uint32(len(data)))
	if err != nil {
		return sz, err
	}

	n, err := w.Write(data)
	sz += n
	if err != nil {
		return sz, NewIOError("write opaque data", err)
	}

	n, err = w.Write(Padding(len(data)))
	sz += n
	if err != nil {
		return sz, NewIOError("write opaque padding", err)
	}
	return sz, nil
}

// PackOpaqueFlex encodes length-bounded opaque data. The bound is
// checked before any bytes are written. maxLen < 0 (NoMax) disables
// the bound.
func PackOpaqueFlex(w io.Writer, data []byte, maxLen int) (int, error) {
	if maxLen >= 0 && len(data) > maxLen {
		return 0, NewInvalidLenError(fmt.Sprintf("opaque length %d exceeds maximum %d", len(data), maxLen))
	}
	return PackOpaque(w, data)
}

// PackString encodes a string.
//
// Per RFC 4506 Section 4.11 (String):
// Identical to opaque encoding over the string's bytes.
// Format: [count:uint32][data:count bytes][padding:0-3 bytes]
//
// Example:
//
//	"ab" → [00 00 00 02][61 62][00 00] (8 bytes total)
func PackString(w io.Writer, s string) (int, error) {
	if uint64(len(s)) > math.MaxUint32 {
		return 0, NewInvalidLenError(fmt.Sprintf("string length %d overflows the 4-byte count", len(s)))
	}

	sz, err := PackUint32(w, uint32(len(s)))
	if err != nil {
		return sz, err
	}

	n, err := io.WriteString(w, s)
	sz += n
	if err != nil {
		return sz, NewIOError("write string data", err)
	}

	n, err = w.Write(Padding(len(s)))
	sz += n
	if err != nil {
		return sz, NewIOError("write string padding", err)
	}
	return sz, nil
}

// PackStringFlex encodes a length-bounded string. The bound applies to
// the byte length, is checked before any bytes are written, and maxLen
// < 0 (NoMax) disables it.
func PackStringFlex(w io.Writer, s string, maxLen int) (int, error) {
	if maxLen >= 0 && len(s) > maxLen {
		return 0, NewInvalidLenError(fmt.Sprintf("string length %d exceeds maximum %d", len(s), maxLen))
	}
	return PackString(w, s)
}

// ============================================================================
// Optional Data
// ============================================================================

// PackOption encodes optional data: a boolean presence flag followed by
// the payload when present.
//
// Per RFC 4506 Section 4.19 (Optional-Data):
// nil → [00 00 00 00]
// &v  → [00 00 00 01][v's wire form]
func PackOption[T any, P PackerPtr[T]](w io.Writer, v *T) (int, error) {
	if v == nil {
		return PackBool(w, false)
	}

	sz, err := PackBool(w, true)
	if err != nil {
		return sz, err
	}

	n, err := P(v).Pack(w)
	return sz + n, err
}
