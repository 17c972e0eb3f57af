package xdr

import (
	"bytes"
	"io"
)

// ============================================================================
// Capability Contracts
// ============================================================================

// Packer is implemented by types that can encode themselves to XDR.
// Pack writes the receiver's wire form, padding included, and reports
// the number of bytes written. On failure it reports the bytes written
// before the failure; the stream must then be considered corrupt.
type Packer interface {
	Pack(w io.Writer) (int, error)
}

// Unpacker is implemented by types that can decode themselves from XDR.
// Unpack consumes exactly the receiver's wire form and reports the
// number of bytes consumed. On failure it reports the bytes consumed
// before the failure; stream position is then unspecified and partial
// data must not be trusted.
type Unpacker interface {
	Unpack(r io.Reader) (int, error)
}

// PackerPtr constrains P to be a pointer to T implementing Packer.
// Generic helpers use it so element types infer from plain slices and
// values at the call site.
type PackerPtr[T any] interface {
	*T
	Packer
}

// UnpackerPtr constrains P to be a pointer to T implementing Unpacker.
type UnpackerPtr[T any] interface {
	*T
	Unpacker
}

// NoMax disables the bound of a length-checked helper. Passing it to a
// Flex function is equivalent to the unchecked form.
const NoMax = -1

// ============================================================================
// Entry Points
// ============================================================================

// Pack encodes v to w.
func Pack(w io.Writer, v Packer) (int, error) {
	if v == nil {
		return 0, NewGenericError("pack: nil value")
	}
	return v.Pack(w)
}

// Unpack decodes from r into v.
func Unpack(r io.Reader, v Unpacker) (int, error) {
	if v == nil {
		return 0, NewGenericError("unpack: nil target")
	}
	return v.Unpack(r)
}

// Marshal encodes v into a freshly allocated byte slice.
func Marshal(v Packer) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Pack(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into v and reports the number of bytes
// consumed. Callers can compare it against len(data) to detect trailing
// garbage.
func Unmarshal(data []byte, v Unpacker) (int, error) {
	return Unpack(bytes.NewReader(data), v)
}
