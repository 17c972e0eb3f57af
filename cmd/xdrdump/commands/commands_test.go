package commands

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/marmos91/xdrwire/record"
	"github.com/marmos91/xdrwire/xdr"
)

func TestParseTypeList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "only separators",
			input:   ", ,",
			wantErr: true,
		},
		{
			name:     "single type",
			input:    "uint32",
			expected: []string{"uint32"},
		},
		{
			name:     "multiple types",
			input:    "string,uint32,opaque",
			expected: []string{"string", "uint32", "opaque"},
		},
		{
			name:     "spaces and case normalized",
			input:    "String, UINT32 ,bool",
			expected: []string{"string", "uint32", "bool"},
		},
		{
			name:     "empty items filtered out",
			input:    "uint32,,bool,",
			expected: []string{"uint32", "bool"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTypeList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTypeList(%q) = %v, want error", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTypeList(%q): %v", tt.input, err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("parseTypeList(%q) = %v, want %v", tt.input, result, tt.expected)
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseTypeList(%q)[%d] = %q, want %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		wire  []byte
		value string
		bytes int
	}{
		{
			name:  "uint32",
			typ:   "uint32",
			wire:  []byte{0x00, 0x00, 0x00, 0x2a},
			value: "42",
			bytes: 4,
		},
		{
			name:  "int32 negative",
			typ:   "int32",
			wire:  []byte{0xff, 0xff, 0xff, 0xff},
			value: "-1",
			bytes: 4,
		},
		{
			name:  "uint64",
			typ:   "uint64",
			wire:  []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00},
			value: "1099511627776",
			bytes: 8,
		},
		{
			name:  "double",
			typ:   "double",
			wire:  []byte{0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			value: "1.5",
			bytes: 8,
		},
		{
			name:  "bool",
			typ:   "bool",
			wire:  []byte{0x00, 0x00, 0x00, 0x01},
			value: "true",
			bytes: 4,
		},
		{
			name:  "string with padding",
			typ:   "string",
			wire:  []byte{0x00, 0x00, 0x00, 0x02, 'h', 'i', 0x00, 0x00},
			value: `"hi"`,
			bytes: 8,
		},
		{
			name:  "opaque hex preview",
			typ:   "opaque",
			wire:  []byte{0x00, 0x00, 0x00, 0x03, 0xde, 0xad, 0xbe, 0x00},
			value: "3 bytes: deadbe",
			bytes: 8,
		},
		{
			name:  "void consumes nothing",
			typ:   "void",
			wire:  nil,
			value: "void",
			bytes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, n, err := decodeValue(bytes.NewReader(tt.wire), tt.typ, xdr.NoMax)
			if err != nil {
				t.Fatalf("decodeValue(%s): %v", tt.typ, err)
			}
			if value != tt.value {
				t.Errorf("value = %q, want %q", value, tt.value)
			}
			if n != tt.bytes {
				t.Errorf("consumed %d bytes, want %d", n, tt.bytes)
			}
		})
	}
}

func TestDecodeValue_UnknownType(t *testing.T) {
	_, _, err := decodeValue(bytes.NewReader(nil), "hyper", xdr.NoMax)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "hyper") {
		t.Errorf("error %q does not name the bad type", err)
	}
}

func TestDecodeValue_MaxLen(t *testing.T) {
	// Count 5 with a 4-byte limit fails after the count word alone.
	wire := []byte{0x00, 0x00, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00}
	_, n, err := decodeValue(bytes.NewReader(wire), "string", 4)
	if !xdr.IsInvalidLenError(err) {
		t.Fatalf("got %v, want InvalidLen", err)
	}
	if n != 4 {
		t.Errorf("consumed %d bytes, want 4", n)
	}
}

// writeFragment appends one fragment (header plus payload) to buf.
func writeFragment(t *testing.T, buf *bytes.Buffer, payload []byte, last bool) {
	t.Helper()
	err := record.WriteHeader(buf, record.Header{Last: last, Length: uint32(len(payload))})
	if err != nil {
		t.Fatalf("write header: %v", err)
	}
	buf.Write(payload)
}

func TestWalkFragments(t *testing.T) {
	t.Run("two records", func(t *testing.T) {
		var buf bytes.Buffer
		writeFragment(t, &buf, []byte("abc"), false)
		writeFragment(t, &buf, []byte("de"), true)
		writeFragment(t, &buf, []byte("wxyz"), true)

		report, err := walkFragments(&buf, 64)
		if err != nil {
			t.Fatalf("walkFragments: %v", err)
		}
		if report.Records != 2 {
			t.Errorf("records = %d, want 2", report.Records)
		}
		if report.Payload != 9 {
			t.Errorf("payload = %d, want 9", report.Payload)
		}
		if len(report.Fragments) != 3 {
			t.Fatalf("fragments = %d, want 3", len(report.Fragments))
		}

		wantOffsets := []int64{0, 7, 13}
		wantRecords := []int{1, 1, 2}
		wantFragments := []int{1, 2, 1}
		wantLast := []bool{false, true, true}
		for i, f := range report.Fragments {
			if f.Offset != wantOffsets[i] {
				t.Errorf("fragment %d offset = %d, want %d", i, f.Offset, wantOffsets[i])
			}
			if f.Record != wantRecords[i] {
				t.Errorf("fragment %d record = %d, want %d", i, f.Record, wantRecords[i])
			}
			if f.Fragment != wantFragments[i] {
				t.Errorf("fragment %d number = %d, want %d", i, f.Fragment, wantFragments[i])
			}
			if f.Last != wantLast[i] {
				t.Errorf("fragment %d last = %v, want %v", i, f.Last, wantLast[i])
			}
		}
	})

	t.Run("empty stream", func(t *testing.T) {
		report, err := walkFragments(bytes.NewReader(nil), 64)
		if err != nil {
			t.Fatalf("walkFragments: %v", err)
		}
		if report.Records != 0 || len(report.Fragments) != 0 {
			t.Errorf("got %d records, %d fragments, want none", report.Records, len(report.Fragments))
		}
	})

	t.Run("oversized fragment", func(t *testing.T) {
		var buf bytes.Buffer
		writeFragment(t, &buf, bytes.Repeat([]byte{0xaa}, 128), true)

		_, err := walkFragments(&buf, 64)
		if !errors.Is(err, record.ErrFragmentTooLarge) {
			t.Fatalf("got %v, want ErrFragmentTooLarge", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		var buf bytes.Buffer
		writeFragment(t, &buf, []byte("abcdef"), true)
		wire := buf.Bytes()[:buf.Len()-2]

		_, err := walkFragments(bytes.NewReader(wire), 64)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("got %v, want unexpected EOF", err)
		}
	})

	t.Run("missing final fragment", func(t *testing.T) {
		var buf bytes.Buffer
		writeFragment(t, &buf, []byte("abc"), false)

		_, err := walkFragments(&buf, 64)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("got %v, want unexpected EOF", err)
		}
		if !strings.Contains(err.Error(), "missing final fragment") {
			t.Errorf("error %q does not mention the missing final fragment", err)
		}
	})
}

func TestRenderOpaque(t *testing.T) {
	if got := renderOpaque(nil); got != "0 bytes" {
		t.Errorf("renderOpaque(nil) = %q", got)
	}
	if got := renderOpaque([]byte{0xab, 0xcd}); got != "2 bytes: abcd" {
		t.Errorf("renderOpaque(short) = %q", got)
	}

	long := renderOpaque(bytes.Repeat([]byte{0x11}, 20))
	if !strings.HasPrefix(long, "20 bytes: ") || !strings.HasSuffix(long, "...") {
		t.Errorf("renderOpaque(long) = %q", long)
	}
	if strings.Count(long, "11") != opaquePreviewLen {
		t.Errorf("renderOpaque(long) previews %d bytes, want %d", strings.Count(long, "11"), opaquePreviewLen)
	}
}
