package xdr

import (
	"bytes"
	"io"
)

// Opaque wraps a raw byte payload for variable-length opaque encoding.
// It tracks whether the bytes are borrowed from the caller or owned by
// the value, the distinction that lets encoders wrap existing buffers
// without copying while decoders hand back storage the caller may keep.
//
// Encode-side use borrows:
//
//	handle := xdr.BorrowOpaque(fh)
//	n, err := handle.Pack(w)
//
// Decode always produces the owned variant with fresh storage.
type Opaque struct {
	data  []byte
	owned bool
}

// BorrowOpaque wraps caller-owned bytes without copying. The caller
// must keep data alive and unmodified for as long as the Opaque is in
// use.
func BorrowOpaque(data []byte) Opaque {
	return Opaque{data: data}
}

// OwnOpaque wraps bytes the Opaque takes ownership of. The caller must
// not use data afterwards.
func OwnOpaque(data []byte) Opaque {
	return Opaque{data: data, owned: true}
}

// Bytes returns the payload. For a borrowed Opaque the slice aliases
// the caller's original storage.
func (o Opaque) Bytes() []byte {
	return o.data
}

// Len returns the payload length in bytes.
func (o Opaque) Len() int {
	return len(o.data)
}

// Owned reports whether the payload storage belongs to the Opaque.
func (o Opaque) Owned() bool {
	return o.owned
}

// Own returns an owned Opaque with the same payload, copying when the
// receiver is borrowed. Use it to detach a decoded or wrapped value
// from storage with a shorter lifetime.
func (o Opaque) Own() Opaque {
	if o.owned {
		return o
	}
	cp := make([]byte, len(o.data))
	copy(cp, o.data)
	return Opaque{data: cp, owned: true}
}

// Equal reports whether two Opaques carry the same bytes. Ownership
// does not participate in equality.
func (o Opaque) Equal(other Opaque) bool {
	return bytes.Equal(o.data, other.data)
}

// Pack encodes the payload as variable-length opaque data.
func (o Opaque) Pack(w io.Writer) (int, error) {
	return PackOpaque(w, o.data)
}

// Unpack decodes variable-length opaque data, replacing the receiver
// with an owned value over fresh storage.
func (o *Opaque) Unpack(r io.Reader) (int, error) {
	data, n, err := UnpackOpaque(r)
	if err != nil {
		return n, err
	}
	*o = Opaque{data: data, owned: true}
	return n, nil
}
