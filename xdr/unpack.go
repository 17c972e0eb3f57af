package xdr

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// maxSeqPrealloc bounds the capacity handed to make for counted
// sequences and the direct-allocation size for opaque payloads. Decodes
// with larger wire counts grow incrementally as data actually arrives,
// so a corrupt count cannot force a large allocation up front.
const (
	maxSeqPrealloc = 256
	maxDirectAlloc = 64 << 10
)

// ============================================================================
// Primitive Decoders - Wire Format → Go Values
// ============================================================================

// UnpackUint32 decodes a 32-bit unsigned integer.
//
// Per RFC 4506 Section 4.2 (Unsigned Integer):
// 4 bytes, big-endian. A short read fails with an IO error wrapping
// io.EOF or io.ErrUnexpectedEOF.
func UnpackUint32(r io.Reader) (uint32, int, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, n, NewIOError("read uint32", err)
	}
	return binary.BigEndian.Uint32(buf[:]), n, nil
}

// UnpackInt32 decodes a 32-bit signed integer.
//
// Per RFC 4506 Section 4.1 (Integer):
// 4 bytes, big-endian, two's complement.
func UnpackInt32(r io.Reader) (int32, int, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, n, NewIOError("read int32", err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), n, nil
}

// UnpackUint64 decodes a 64-bit unsigned integer.
//
// Per RFC 4506 Section 4.5 (Hyper Integer):
// 8 bytes, big-endian.
func UnpackUint64(r io.Reader) (uint64, int, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, n, NewIOError("read uint64", err)
	}
	return binary.BigEndian.Uint64(buf[:]), n, nil
}

// UnpackInt64 decodes a 64-bit signed integer.
//
// Per RFC 4506 Section 4.5 (Hyper Integer):
// 8 bytes, big-endian, two's complement.
func UnpackInt64(r io.Reader) (int64, int, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, n, NewIOError("read int64", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), n, nil
}

// UnpackFloat32 decodes a single-precision float.
//
// Per RFC 4506 Section 4.6 (Floating-Point):
// IEEE 754 single-precision bits, big-endian.
func UnpackFloat32(r io.Reader) (float32, int, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, n, NewIOError("read float32", err)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:])), n, nil
}

// UnpackFloat64 decodes a double-precision float.
//
// Per RFC 4506 Section 4.7 (Double-Precision Floating-Point):
// IEEE 754 double-precision bits, big-endian.
func UnpackFloat64(r io.Reader) (float64, int, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, n, NewIOError("read float64", err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), n, nil
}

// UnpackBool decodes a boolean.
//
// Per RFC 4506 Section 4.4 (Boolean):
// uint32 where 0 = false and 1 = true. Any other value fails with
// InvalidEnum; booleans are an enum with exactly two members, and
// accepting other words would let peers smuggle data through them.
func UnpackBool(r io.Reader) (bool, int, error) {
	word, n, err := UnpackUint32(r)
	if err != nil {
		return false, n, err
	}
	switch word {
	case 0:
		return false, n, nil
	case 1:
		return true, n, nil
	default:
		return false, n, NewInvalidEnumError("bool", int64(word))
	}
}

// UnpackVoid decodes a void value, consuming zero bytes
// (RFC 4506 Section 4.16).
func UnpackVoid(io.Reader) (int, error) {
	return 0, nil
}

// UnpackUint decodes the 4-byte unsigned wire form into a Go uint, the
// inverse of PackUint. Every 32-bit wire value fits, so this direction
// cannot fail with InvalidLen.
func UnpackUint(r io.Reader) (uint, int, error) {
	v, n, err := UnpackUint32(r)
	return uint(v), n, err
}

// ============================================================================
// Counted Sequences
// ============================================================================

// UnpackSeq decodes a variable-length array: a uint32 element count
// followed by that many elements.
//
// Per RFC 4506 Section 4.13 (Variable-Length Array):
// Format: [count:uint32][element 0]...[element count-1]
//
// No implicit maximum applies; use UnpackFlex when the input is
// untrusted and the protocol declares a bound.
func UnpackSeq[T any, P UnpackerPtr[T]](r io.Reader) ([]T, int, error) {
	count, sz, err := UnpackUint32(r)
	if err != nil {
		return nil, sz, err
	}

	vals, n, err := unpackElems[T, P](r, count)
	sz += n
	if err != nil {
		return nil, sz, err
	}
	return vals, sz, nil
}

// UnpackFlex decodes a variable-length array whose count the caller
// bounds. The count is checked immediately after it is read and before
// any payload I/O, so maxLen caps both wire consumption and allocation
// for untrusted input. maxLen < 0 (NoMax) disables the bound.
func UnpackFlex[T any, P UnpackerPtr[T]](r io.Reader, maxLen int) ([]T, int, error) {
	count, sz, err := UnpackUint32(r)
	if err != nil {
		return nil, sz, err
	}
	if maxLen >= 0 && uint64(count) > uint64(maxLen) {
		return nil, sz, NewInvalidLenError(fmt.Sprintf("sequence count %d exceeds maximum %d", count, maxLen))
	}

	vals, n, err := unpackElems[T, P](r, count)
	sz += n
	if err != nil {
		return nil, sz, err
	}
	return vals, sz, nil
}

// unpackElems decodes count elements after the count word has already
// been consumed.
func unpackElems[T any, P UnpackerPtr[T]](r io.Reader, count uint32) ([]T, int, error) {
	// Capacity is clamped; growth past it comes from elements that
	// actually decoded.
	vals := make([]T, 0, min(int64(count), maxSeqPrealloc))

	sz := 0
	for i := uint32(0); i < count; i++ {
		var v T
		n, err := P(&v).Unpack(r)
		sz += n
		if err != nil {
			return nil, sz, err
		}
		vals = append(vals, v)
	}
	return vals, sz, nil
}

// ============================================================================
// Opaque Data and Strings
// ============================================================================

// UnpackOpaque decodes variable-length opaque data into a freshly
// allocated slice the caller owns.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data):
// Format: [count:uint32][data:count bytes][padding:0-3 bytes]
//
// The full count must be present: a stream that ends mid-payload fails
// with an IO error rather than returning a short result.
func UnpackOpaque(r io.Reader) ([]byte, int, error) {
	count, sz, err := UnpackUint32(r)
	if err != nil {
		return nil, sz, err
	}

	data, n, err := unpackOpaqueBody(r, count)
	sz += n
	if err != nil {
		return nil, sz, err
	}

	n, err = discardPad(r, count)
	sz += n
	if err != nil {
		return nil, sz, err
	}
	return data, sz, nil
}

// UnpackOpaqueFlex decodes length-bounded opaque data. The count is
// checked before any payload I/O; maxLen < 0 (NoMax) disables the
// bound.
func UnpackOpaqueFlex(r io.Reader, maxLen int) ([]byte, int, error) {
	count, sz, err := UnpackUint32(r)
	if err != nil {
		return nil, sz, err
	}
	if maxLen >= 0 && uint64(count) > uint64(maxLen) {
		return nil, sz, NewInvalidLenError(fmt.Sprintf("opaque count %d exceeds maximum %d", count, maxLen))
	}

	data, n, err := unpackOpaqueBody(r, count)
	sz += n
	if err != nil {
		return nil, sz, err
	}

	n, err = discardPad(r, count)
	sz += n
	if err != nil {
		return nil, sz, err
	}
	return data, sz, nil
}

// UnpackString decodes a string.
//
// Per RFC 4506 Section 4.11 (String):
// Opaque encoding whose payload must be valid UTF-8. Invalid payloads
// fail with InvalidUTF8; the byte count is still reported so callers
// can account for the consumed stream.
func UnpackString(r io.Reader) (string, int, error) {
	data, sz, err := UnpackOpaque(r)
	if err != nil {
		return "", sz, err
	}
	if !utf8.Valid(data) {
		return "", sz, NewInvalidUTF8Error(data)
	}
	return string(data), sz, nil
}

// UnpackStringFlex decodes a length-bounded string. The bound applies
// to the byte count and is checked before any payload I/O; maxLen < 0
// (NoMax) disables it.
func UnpackStringFlex(r io.Reader, maxLen int) (string, int, error) {
	data, sz, err := UnpackOpaqueFlex(r, maxLen)
	if err != nil {
		return "", sz, err
	}
	if !utf8.Valid(data) {
		return "", sz, NewInvalidUTF8Error(data)
	}
	return string(data), sz, nil
}

// unpackOpaqueBody reads count raw bytes after the count word has been
// consumed. Counts up to maxDirectAlloc are read into an exact-size
// slice; larger counts are untrusted and grow incrementally.
func unpackOpaqueBody(r io.Reader, count uint32) ([]byte, int, error) {
	if count == 0 {
		return []byte{}, 0, nil
	}

	if count <= maxDirectAlloc {
		data := make([]byte, count)
		n, err := io.ReadFull(r, data)
		if err != nil {
			return nil, n, NewIOError("read opaque data", err)
		}
		return data, n, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(count)))
	n := len(data)
	if err != nil {
		return nil, n, NewIOError("read opaque data", err)
	}
	if uint64(n) < uint64(count) {
		return nil, n, NewIOError("read opaque data", io.ErrUnexpectedEOF)
	}
	return data, n, nil
}

// discardPad consumes the 0-3 pad bytes that follow count bytes of
// variable-length data. Padding is at most 3 bytes, so a stack buffer
// avoids io.CopyN for these tiny reads.
func discardPad(r io.Reader, count uint32) (int, error) {
	p := padLen(int(count % alignment))
	if p == 0 {
		return 0, nil
	}
	var buf [3]byte
	n, err := io.ReadFull(r, buf[:p])
	if err != nil {
		return n, NewIOError("read padding", err)
	}
	return n, nil
}

// ============================================================================
// Optional Data
// ============================================================================

// UnpackOption decodes optional data: a boolean presence flag, then the
// payload when the flag is set.
//
// Per RFC 4506 Section 4.19 (Optional-Data):
// [00 00 00 00]          → nil
// [00 00 00 01][payload] → &payload
//
// The flag shares UnpackBool's legality rule, so flag words other than
// 0 or 1 fail with InvalidEnum.
func UnpackOption[T any, P UnpackerPtr[T]](r io.Reader) (*T, int, error) {
	present, sz, err := UnpackBool(r)
	if err != nil {
		return nil, sz, err
	}
	if !present {
		return nil, sz, nil
	}

	v := new(T)
	n, err := P(v).Unpack(r)
	sz += n
	if err != nil {
		return nil, sz, err
	}
	return v, sz, nil
}
