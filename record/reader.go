package record

import (
	"fmt"
	"io"

	"github.com/marmos91/xdrwire/internal/bufpool"
	"github.com/marmos91/xdrwire/internal/bytesize"
)

// Reader reassembles records from a fragment stream.
//
// Read streams the payload of one record and returns io.EOF when the
// record ends; Next advances to the following record. The usual loop:
//
//	rd := record.NewReader(conn, nil)
//	for {
//		rec, err := rd.ReadRecord()
//		if err == io.EOF {
//			break // clean end of stream
//		}
//		if err != nil {
//			return err
//		}
//		// handle rec
//	}
//
// Reader is not safe for concurrent use.
type Reader struct {
	r   io.Reader
	max uint32

	remaining uint32 // unread payload bytes in the current fragment
	last      bool   // current fragment is the record's final one
	started   bool   // a fragment of the current record has been opened
	eor       bool   // current record fully delivered

	err error // sticky failure; the stream position is unusable after it
}

// NewReader creates a Reader over r. A nil cfg uses DefaultConfig.
func NewReader(r io.Reader, cfg *Config) *Reader {
	return &Reader{
		r:   r,
		max: cfg.maxFragment(),
	}
}

// Read streams the current record's payload into p. At the end of the
// record it returns io.EOF; call Next to move to the following record.
//
// On a stream with no further records, Read returns io.EOF without
// consuming anything.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.eor {
		return 0, io.EOF
	}

	// Move to the next fragment whenever the current one is drained.
	for r.remaining == 0 {
		if r.started && r.last {
			r.eor = true
			return 0, io.EOF
		}
		if err := r.openFragment(); err != nil {
			return 0, err
		}
		if r.eor {
			return 0, io.EOF
		}
	}

	if uint64(len(p)) > uint64(r.remaining) {
		p = p[:r.remaining]
	}
	n, err := io.ReadFull(r.r, p)
	r.remaining -= uint32(n)
	if err != nil {
		// A record cut off mid-fragment is a transport failure even
		// when the underlying reader reports a clean EOF.
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = fmt.Errorf("read fragment payload: %w", err)
		return n, r.err
	}

	if r.remaining == 0 && r.last {
		r.eor = true
	}
	return n, nil
}

// openFragment reads and validates the next fragment header of the
// current record. Zero-length non-final fragments are skipped; a
// zero-length final fragment ends the record.
func (r *Reader) openFragment() error {
	h, err := ReadHeader(r.r)
	if err != nil {
		if err == io.EOF && !r.started {
			// Clean stream end at a record boundary.
			return io.EOF
		}
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = fmt.Errorf("read fragment header: %w", err)
		return r.err
	}

	if h.Length > r.max {
		r.err = fmt.Errorf("%w: %s (max %s)",
			ErrFragmentTooLarge,
			bytesize.ByteSize(h.Length),
			bytesize.ByteSize(r.max))
		return r.err
	}

	r.started = true
	r.remaining = h.Length
	r.last = h.Last
	if h.Length == 0 && h.Last {
		r.eor = true
	}
	return nil
}

// Next discards whatever remains of the current record and advances to
// the following one. It returns false with a nil error at a clean end
// of stream, and false with the error otherwise.
func (r *Reader) Next() (bool, error) {
	if r.err != nil {
		return false, r.err
	}

	// Drain the rest of the current record.
	if r.started && !r.eor {
		scratch := bufpool.Get(bufpool.DefaultMediumSize)
		defer bufpool.Put(scratch)
		for {
			_, err := r.Read(scratch)
			if err == io.EOF {
				break
			}
			if err != nil {
				return false, err
			}
		}
	}

	// Open the following record.
	r.started = false
	r.eor = false
	r.remaining = 0
	r.last = false

	if err := r.openFragment(); err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadRecord returns the next whole record. It advances past the
// current record automatically, so repeated calls walk the stream.
// A clean end of stream returns io.EOF.
func (r *Reader) ReadRecord() ([]byte, error) {
	if r.eor {
		ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, io.EOF
		}
	}

	out := []byte{}
	scratch := bufpool.Get(bufpool.DefaultMediumSize)
	defer bufpool.Put(scratch)

	for {
		n, err := r.Read(scratch)
		out = append(out, scratch[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if !r.started {
		// Read hit the end of the stream before any fragment opened.
		return nil, io.EOF
	}
	return out, nil
}
