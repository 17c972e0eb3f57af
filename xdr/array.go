package xdr

import (
	"fmt"
	"io"
)

// ============================================================================
// Fixed-Size Arrays
// ============================================================================
//
// Fixed-size data carries no count on the wire (RFC 4506 Sections 4.9
// and 4.12): both peers know the size from the protocol. The size
// parameter below is that declared size, a schema constant chosen by
// the caller rather than a value read from the stream.

// PackArray encodes exactly size elements with no count prefix. When
// the input slice is longer it is truncated; when shorter, zero-value
// elements fill the remainder so the wire form always matches the
// declared size.
func PackArray[T any, P PackerPtr[T]](w io.Writer, vals []T, size int) (int, error) {
	if size < 0 {
		return 0, NewInvalidLenError(fmt.Sprintf("negative array size %d", size))
	}

	sz := 0
	n := min(len(vals), size)
	for i := 0; i < n; i++ {
		written, err := P(&vals[i]).Pack(w)
		sz += written
		if err != nil {
			return sz, err
		}
	}
	for i := n; i < size; i++ {
		var fill T
		written, err := P(&fill).Pack(w)
		sz += written
		if err != nil {
			return sz, err
		}
	}

	mustAligned(sz)
	return sz, nil
}

// UnpackArray decodes exactly size elements with no count prefix into a
// freshly allocated slice of length size.
func UnpackArray[T any, P UnpackerPtr[T]](r io.Reader, size int) ([]T, int, error) {
	if size < 0 {
		return nil, 0, NewInvalidLenError(fmt.Sprintf("negative array size %d", size))
	}

	vals := make([]T, size)
	sz := 0
	for i := range vals {
		n, err := P(&vals[i]).Unpack(r)
		sz += n
		if err != nil {
			return nil, sz, err
		}
	}

	mustAligned(sz)
	return vals, sz, nil
}

// PackOpaqueArray encodes exactly size raw bytes plus the pad implied
// by size, with no count prefix (RFC 4506 Section 4.9). Longer input is
// truncated; shorter input is extended with zero bytes.
//
// Example:
//
//	data=[AA], size=4 → [AA 00 00 00] (3 fill bytes, no pad)
//	data=[AA], size=3 → [AA 00 00 00] (2 fill bytes, 1 pad byte)
func PackOpaqueArray(w io.Writer, data []byte, size int) (int, error) {
	if size < 0 {
		return 0, NewInvalidLenError(fmt.Sprintf("negative array size %d", size))
	}

	n := min(len(data), size)
	sz, err := w.Write(data[:n])
	if err != nil {
		return sz, NewIOError("write opaque data", err)
	}

	written, err := writeZeros(w, size-n+padLen(size))
	sz += written
	if err != nil {
		return sz, NewIOError("write opaque fill", err)
	}
	return sz, nil
}

// UnpackOpaqueArray decodes exactly size raw bytes plus the pad implied
// by size into a freshly allocated slice.
func UnpackOpaqueArray(r io.Reader, size int) ([]byte, int, error) {
	if size < 0 {
		return nil, 0, NewInvalidLenError(fmt.Sprintf("negative array size %d", size))
	}

	data := make([]byte, size)
	sz, err := io.ReadFull(r, data)
	if err != nil {
		return nil, sz, NewIOError("read opaque data", err)
	}

	n, err := discardPad(r, uint32(size%alignment))
	sz += n
	if err != nil {
		return nil, sz, err
	}
	return data, sz, nil
}

// writeZeros writes n zero bytes in chunks of the shared zero storage.
func writeZeros(w io.Writer, n int) (int, error) {
	total := 0
	for n > 0 {
		c := min(n, len(zeros))
		written, err := w.Write(zeros[:c])
		total += written
		if err != nil {
			return total, err
		}
		n -= c
	}
	return total, nil
}

// mustAligned panics when a fixed-size array's element encoding is not
// a multiple of four bytes. Only a broken Pack or Unpack implementation
// can produce such a count; wire data cannot reach this check.
func mustAligned(n int) {
	if n%alignment != 0 {
		panic(fmt.Sprintf("xdr: fixed array payload is %d bytes, not 4-byte aligned", n))
	}
}
