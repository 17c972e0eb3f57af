// Package record implements RFC 5531 record marking, the framing that
// carries XDR messages over byte streams.
//
// Per RFC 5531 Section 11 (Record Marking Standard):
// A record is transmitted as one or more fragments. Each fragment
// starts with a 4-byte big-endian header word:
//   - Bit 31: last-fragment flag (1 = final fragment of the record)
//   - Bits 0-30: fragment payload length in bytes
//
// Reader reassembles records from a stream; Writer fragments them. Both
// sit below the XDR codec: transport failures surface as plain I/O
// errors, and io.EOF keeps its stdlib meaning.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/marmos91/xdrwire/internal/bytesize"
)

// lastFragmentFlag is bit 31 of the header word.
const lastFragmentFlag = 0x80000000

// MaxFragmentLen is the largest length the 31-bit header field can
// carry.
const MaxFragmentLen = 1<<31 - 1

// DefaultMaxFragment caps fragment payloads accepted by Reader and
// emitted by Writer when the Config does not say otherwise. Sized for
// 1MB application payloads plus framing overhead.
const DefaultMaxFragment = bytesize.ByteSize((1 << 20) + (1 << 18))

// ErrFragmentTooLarge is returned when a fragment header declares a
// payload above the configured maximum. A corrupt or hostile peer can
// put any length in a header, so the limit is enforced before any
// payload is read.
var ErrFragmentTooLarge = errors.New("record: fragment exceeds maximum size")

// Header is a parsed fragment header.
type Header struct {
	Last   bool
	Length uint32
}

// ReadHeader reads and parses the 4-byte fragment header.
//
// A clean end of stream returns io.EOF unwrapped so callers can detect
// a normal peer disconnect at a record boundary; a header cut short
// returns io.ErrUnexpectedEOF.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}

	word := binary.BigEndian.Uint32(buf[:])
	return Header{
		Last:   word&lastFragmentFlag != 0,
		Length: word & MaxFragmentLen,
	}, nil
}

// WriteHeader writes the 4-byte fragment header.
func WriteHeader(w io.Writer, h Header) error {
	if h.Length > MaxFragmentLen {
		return fmt.Errorf("record: fragment length %d does not fit the 31-bit header field", h.Length)
	}

	word := h.Length
	if h.Last {
		word |= lastFragmentFlag
	}

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], word)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write fragment header: %w", err)
	}
	return nil
}

// Config holds configuration for readers and writers.
type Config struct {
	// MaxFragment caps the payload length of a single fragment.
	// Readers reject larger headers; writers split records at this
	// size. Zero means DefaultMaxFragment.
	MaxFragment bytesize.ByteSize
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxFragment: DefaultMaxFragment}
}

// maxFragment resolves the configured cap. Nil config and zero values
// fall back to the default; values beyond the header field are clamped.
func (c *Config) maxFragment() uint32 {
	if c == nil || c.MaxFragment == 0 {
		return uint32(DefaultMaxFragment)
	}
	if c.MaxFragment > MaxFragmentLen {
		return MaxFragmentLen
	}
	return uint32(c.MaxFragment)
}
