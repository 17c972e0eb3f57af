package xdr

import "io"

// ============================================================================
// Named Wire Types
// ============================================================================
//
// Each primitive gets a named type implementing the Packer and Unpacker
// contracts. Message structs and generated code embed these when a
// field must carry its own codec, and the generic helpers (PackSeq,
// UnpackOption, PackArray, ...) compose over them. Call sites that
// already know the concrete type can use the free functions directly.

// Uint32 is an XDR unsigned integer (RFC 4506 Section 4.2).
type Uint32 uint32

func (v Uint32) Pack(w io.Writer) (int, error) {
	return PackUint32(w, uint32(v))
}

func (v *Uint32) Unpack(r io.Reader) (int, error) {
	u, n, err := UnpackUint32(r)
	if err != nil {
		return n, err
	}
	*v = Uint32(u)
	return n, nil
}

// Int32 is an XDR integer (RFC 4506 Section 4.1).
type Int32 int32

func (v Int32) Pack(w io.Writer) (int, error) {
	return PackInt32(w, int32(v))
}

func (v *Int32) Unpack(r io.Reader) (int, error) {
	i, n, err := UnpackInt32(r)
	if err != nil {
		return n, err
	}
	*v = Int32(i)
	return n, nil
}

// Uint64 is an XDR unsigned hyper integer (RFC 4506 Section 4.5).
type Uint64 uint64

func (v Uint64) Pack(w io.Writer) (int, error) {
	return PackUint64(w, uint64(v))
}

func (v *Uint64) Unpack(r io.Reader) (int, error) {
	u, n, err := UnpackUint64(r)
	if err != nil {
		return n, err
	}
	*v = Uint64(u)
	return n, nil
}

// Int64 is an XDR hyper integer (RFC 4506 Section 4.5).
type Int64 int64

func (v Int64) Pack(w io.Writer) (int, error) {
	return PackInt64(w, int64(v))
}

func (v *Int64) Unpack(r io.Reader) (int, error) {
	i, n, err := UnpackInt64(r)
	if err != nil {
		return n, err
	}
	*v = Int64(i)
	return n, nil
}

// Float32 is an XDR single-precision float (RFC 4506 Section 4.6).
type Float32 float32

func (v Float32) Pack(w io.Writer) (int, error) {
	return PackFloat32(w, float32(v))
}

func (v *Float32) Unpack(r io.Reader) (int, error) {
	f, n, err := UnpackFloat32(r)
	if err != nil {
		return n, err
	}
	*v = Float32(f)
	return n, nil
}

// Float64 is an XDR double-precision float (RFC 4506 Section 4.7).
type Float64 float64

func (v Float64) Pack(w io.Writer) (int, error) {
	return PackFloat64(w, float64(v))
}

func (v *Float64) Unpack(r io.Reader) (int, error) {
	f, n, err := UnpackFloat64(r)
	if err != nil {
		return n, err
	}
	*v = Float64(f)
	return n, nil
}

// Bool is an XDR boolean (RFC 4506 Section 4.4). Decoding enforces the
// 0/1 legal set.
type Bool bool

func (v Bool) Pack(w io.Writer) (int, error) {
	return PackBool(w, bool(v))
}

func (v *Bool) Unpack(r io.Reader) (int, error) {
	b, n, err := UnpackBool(r)
	if err != nil {
		return n, err
	}
	*v = Bool(b)
	return n, nil
}

// Uint is a native-width unsigned integer carried as the 4-byte wire
// form. Packing a value above 4294967295 fails with InvalidLen.
type Uint uint

func (v Uint) Pack(w io.Writer) (int, error) {
	return PackUint(w, uint(v))
}

func (v *Uint) Unpack(r io.Reader) (int, error) {
	u, n, err := UnpackUint(r)
	if err != nil {
		return n, err
	}
	*v = Uint(u)
	return n, nil
}

// String is an XDR string (RFC 4506 Section 4.11). Decoding validates
// UTF-8.
type String string

func (v String) Pack(w io.Writer) (int, error) {
	return PackString(w, string(v))
}

func (v *String) Unpack(r io.Reader) (int, error) {
	s, n, err := UnpackString(r)
	if err != nil {
		return n, err
	}
	*v = String(s)
	return n, nil
}

// Void is the XDR void value (RFC 4506 Section 4.16). It occupies zero
// bytes and exists so bodiless union arms and procedures compose like
// any other item.
type Void struct{}

func (Void) Pack(w io.Writer) (int, error) {
	return PackVoid(w)
}

func (*Void) Unpack(r io.Reader) (int, error) {
	return UnpackVoid(r)
}
