package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/marmos91/xdrwire/internal/bufpool"
)

// ErrWriterClosed is returned by Write and EndRecord after Close.
var ErrWriterClosed = errors.New("record: writer closed")

// Writer fragments records onto a byte stream.
//
// Write buffers payload bytes; a fragment is emitted as non-final only
// when it fills to the configured maximum and more payload follows, so
// a record smaller than one fragment always travels as a single final
// fragment. EndRecord marks the record boundary:
//
//	wr := record.NewWriter(conn, nil)
//	wr.Write(msg)
//	wr.EndRecord()
//
// Writer is not safe for concurrent use.
type Writer struct {
	w   io.Writer
	max int

	buf  []byte // pooled fragment buffer, one max-sized fragment
	n    int    // pending bytes in buf
	open bool   // a record has begun and awaits EndRecord

	closed bool
	err    error // sticky failure; the stream is corrupt after it
}

// NewWriter creates a Writer over w. A nil cfg uses DefaultConfig.
func NewWriter(w io.Writer, cfg *Config) *Writer {
	max := int(cfg.maxFragment())
	return &Writer{
		w:   w,
		max: max,
		buf: bufpool.Get(max),
	}
}

// Write appends p to the current record. Full fragments are flushed as
// non-final; the remainder stays buffered for EndRecord.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}

	w.open = true
	total := 0
	for {
		c := copy(w.buf[w.n:w.max], p)
		w.n += c
		total += c
		p = p[c:]
		if len(p) == 0 {
			return total, nil
		}
		// More payload follows, so the full buffer cannot be the final
		// fragment.
		if err := w.flush(false); err != nil {
			return total, err
		}
	}
}

// EndRecord emits the buffered payload as the record's final fragment
// and closes the record. A record with no payload still produces a
// zero-length final fragment, which is valid framing.
func (w *Writer) EndRecord() error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.err != nil {
		return w.err
	}

	if err := w.flush(true); err != nil {
		return err
	}
	w.open = false
	return nil
}

// Close ends any open record and releases the fragment buffer. It is
// idempotent; Write and EndRecord fail after it.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	var err error
	if w.open {
		err = w.EndRecord()
	}

	w.closed = true
	bufpool.Put(w.buf)
	w.buf = nil
	return err
}

// flush writes the pending buffer as one fragment.
func (w *Writer) flush(last bool) error {
	if err := WriteHeader(w.w, Header{Last: last, Length: uint32(w.n)}); err != nil {
		w.err = err
		return w.err
	}
	if w.n > 0 {
		if _, err := w.w.Write(w.buf[:w.n]); err != nil {
			w.err = fmt.Errorf("write fragment payload: %w", err)
			return w.err
		}
	}
	w.n = 0
	return nil
}
