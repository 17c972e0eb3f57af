package record

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/xdrwire/internal/bytesize"
	"github.com/marmos91/xdrwire/xdr"
)

// writeRecords frames each payload as one record using the given
// fragment cap.
func writeRecords(t *testing.T, max int, payloads ...[]byte) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	cfg := &Config{}
	if max > 0 {
		cfg.MaxFragment = bytesize.ByteSize(max)
	}
	wr := NewWriter(buf, cfg)
	for _, p := range payloads {
		_, err := wr.Write(p)
		require.NoError(t, err)
		require.NoError(t, wr.EndRecord())
	}
	require.NoError(t, wr.Close())
	return buf
}

// ============================================================================
// Record Walking Tests
// ============================================================================

func TestReadRecord(t *testing.T) {
	t.Run("WalksRecordsUntilEOF", func(t *testing.T) {
		buf := writeRecords(t, 0, []byte("first"), []byte("second"), []byte("third"))
		rd := NewReader(buf, nil)

		var records [][]byte
		for {
			rec, err := rd.ReadRecord()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			records = append(records, rec)
		}

		require.Len(t, records, 3)
		assert.Equal(t, []byte("first"), records[0])
		assert.Equal(t, []byte("second"), records[1])
		assert.Equal(t, []byte("third"), records[2])
	})

	t.Run("ReassemblesFragmentedRecord", func(t *testing.T) {
		payload := bytes.Repeat([]byte("fragment payload "), 100)
		buf := writeRecords(t, 64, payload)

		rd := NewReader(buf, nil)
		rec, err := rd.ReadRecord()
		require.NoError(t, err)
		assert.Equal(t, payload, rec)
	})

	t.Run("EmptyStreamIsEOF", func(t *testing.T) {
		rd := NewReader(bytes.NewReader(nil), nil)
		_, err := rd.ReadRecord()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("EmptyRecordIsNotEOF", func(t *testing.T) {
		buf := new(bytes.Buffer)
		wr := NewWriter(buf, nil)
		require.NoError(t, wr.EndRecord())

		rd := NewReader(buf, nil)
		rec, err := rd.ReadRecord()
		require.NoError(t, err)
		assert.Empty(t, rec)

		_, err = rd.ReadRecord()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("SkipsZeroLengthIntermediateFragments", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteHeader(buf, Header{Last: false, Length: 0}))
		require.NoError(t, WriteHeader(buf, Header{Last: false, Length: 2}))
		buf.Write([]byte("ab"))
		require.NoError(t, WriteHeader(buf, Header{Last: true, Length: 1}))
		buf.Write([]byte("c"))

		rd := NewReader(buf, nil)
		rec, err := rd.ReadRecord()
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), rec)
	})
}

// ============================================================================
// Streaming Read Tests
// ============================================================================

func TestStreamingRead(t *testing.T) {
	t.Run("ReadEndsAtRecordBoundary", func(t *testing.T) {
		buf := writeRecords(t, 0, []byte("alpha"), []byte("beta"))
		rd := NewReader(buf, nil)

		got, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, []byte("alpha"), got, "Read must stop at the record boundary")

		// Still at the first record's end until Next is called.
		n, err := rd.Read(make([]byte, 16))
		assert.Equal(t, 0, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("NextAdvancesToFollowingRecord", func(t *testing.T) {
		buf := writeRecords(t, 0, []byte("alpha"), []byte("beta"))
		rd := NewReader(buf, nil)

		_, err := io.ReadAll(rd)
		require.NoError(t, err)

		ok, err := rd.Next()
		require.NoError(t, err)
		require.True(t, ok)

		got, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, []byte("beta"), got)

		ok, err = rd.Next()
		require.NoError(t, err)
		assert.False(t, ok, "Next must report the clean end of stream")
	})

	t.Run("NextDiscardsUnreadRemainder", func(t *testing.T) {
		buf := writeRecords(t, 8, bytes.Repeat([]byte("x"), 100), []byte("wanted"))
		rd := NewReader(buf, nil)

		// Touch only the first few bytes of record one.
		_, err := rd.Read(make([]byte, 3))
		require.NoError(t, err)

		ok, err := rd.Next()
		require.NoError(t, err)
		require.True(t, ok)

		rec, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, []byte("wanted"), rec)
	})

	t.Run("NextBeforeAnyReadOpensFirstRecord", func(t *testing.T) {
		buf := writeRecords(t, 0, []byte("only"))
		rd := NewReader(buf, nil)

		ok, err := rd.Next()
		require.NoError(t, err)
		require.True(t, ok)

		rec, err := io.ReadAll(rd)
		require.NoError(t, err)
		assert.Equal(t, []byte("only"), rec)
	})
}

// ============================================================================
// Failure Mode Tests
// ============================================================================

func TestReaderFailures(t *testing.T) {
	t.Run("RejectsOversizedFragmentBeforePayload", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteHeader(buf, Header{Last: true, Length: 1 << 20}))
		buf.Write(bytes.Repeat([]byte("x"), 64))

		rd := NewReader(buf, &Config{MaxFragment: 1024})
		_, err := rd.ReadRecord()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFragmentTooLarge))
		assert.Contains(t, err.Error(), "1.00MiB")
		assert.Equal(t, 64, buf.Len(), "payload must remain unread")
	})

	t.Run("TruncatedPayloadIsUnexpectedEOF", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteHeader(buf, Header{Last: true, Length: 10}))
		buf.Write([]byte("shrt"))

		rd := NewReader(buf, nil)
		_, err := rd.ReadRecord()
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})

	t.Run("MissingFinalFragmentIsUnexpectedEOF", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteHeader(buf, Header{Last: false, Length: 4}))
		buf.Write([]byte("part"))

		rd := NewReader(buf, nil)
		_, err := rd.ReadRecord()
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})

	t.Run("FailureIsSticky", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteHeader(buf, Header{Last: true, Length: 10}))

		rd := NewReader(buf, nil)
		_, err := rd.ReadRecord()
		require.Error(t, err)

		_, err2 := rd.ReadRecord()
		assert.Equal(t, err, err2)

		ok, err3 := rd.Next()
		assert.False(t, ok)
		assert.Equal(t, err, err3)
	})
}

// ============================================================================
// Codec Integration Tests
// ============================================================================

func TestRecordCarriesEncodedMessages(t *testing.T) {
	buf := new(bytes.Buffer)

	wr := NewWriter(buf, nil)
	_, err := xdr.PackString(wr, "mount /export")
	require.NoError(t, err)
	_, err = xdr.PackUint32(wr, 3)
	require.NoError(t, err)
	require.NoError(t, wr.EndRecord())
	_, err = xdr.PackString(wr, "unmount")
	require.NoError(t, err)
	require.NoError(t, wr.Close())

	rd := NewReader(buf, nil)

	msg, _, err := xdr.UnpackString(rd)
	require.NoError(t, err)
	assert.Equal(t, "mount /export", msg)
	vers, _, err := xdr.UnpackUint32(rd)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), vers)

	ok, err := rd.Next()
	require.NoError(t, err)
	require.True(t, ok)

	msg, _, err = xdr.UnpackString(rd)
	require.NoError(t, err)
	assert.Equal(t, "unmount", msg)
}
