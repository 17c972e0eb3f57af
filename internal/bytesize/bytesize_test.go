package bytesize

import (
	"io"
	"testing"

	"github.com/spf13/pflag"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		// Plain numbers
		{"plain zero", "0", 0, false},
		{"plain bytes", "1024", 1024, false},

		// Bytes suffix
		{"bytes B", "1024B", 1024, false},
		{"bytes b lowercase", "1024b", 1024, false},

		// Binary units (×1024)
		{"kibibytes Ki", "1Ki", 1024, false},
		{"kibibytes KiB", "1KiB", 1024, false},
		{"mebibytes Mi", "100Mi", 100 * 1024 * 1024, false},
		{"gibibytes GiB", "1GiB", 1024 * 1024 * 1024, false},
		{"tebibytes Ti", "1Ti", 1024 * 1024 * 1024 * 1024, false},

		// Decimal units (×1000)
		{"kilobytes KB", "1KB", 1000, false},
		{"megabytes MB", "100MB", 100 * 1000 * 1000, false},
		{"terabytes T", "1T", 1000 * 1000 * 1000 * 1000, false},

		// Case insensitivity
		{"lowercase gi", "1gi", 1024 * 1024 * 1024, false},
		{"uppercase GI", "1GI", 1024 * 1024 * 1024, false},

		// Whitespace handling
		{"leading space", "  1Gi", 1024 * 1024 * 1024, false},
		{"space between", "1 Gi", 1024 * 1024 * 1024, false},

		// Floating point
		{"float mebibytes", "1.5Mi", ByteSize(1.5 * 1024 * 1024), false},

		// Fragment limit spellings
		{"default fragment cap", "1280Ki", 1280 * 1024, false},
		{"256KB chunk", "256Ki", 256 * 1024, false},

		// Error cases
		{"empty string", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"invalid unit", "1Xi", 0, true},
		{"negative number", "-1Gi", 0, true},
		{"no number", "Gi", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseByteSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseByteSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseByteSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestByteSize_FlagValue(t *testing.T) {
	var _ pflag.Value = (*ByteSize)(nil)

	t.Run("set from flag argument", func(t *testing.T) {
		var limit ByteSize
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.Var(&limit, "max-fragment", "maximum fragment size")

		if err := fs.Parse([]string{"--max-fragment=256Ki"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}
		if limit != 256*KiB {
			t.Errorf("limit = %d, want %d", limit, 256*KiB)
		}
	})

	t.Run("invalid argument fails parse", func(t *testing.T) {
		var limit ByteSize
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.Var(&limit, "max-fragment", "maximum fragment size")

		if err := fs.Parse([]string{"--max-fragment=1Xi"}); err == nil {
			t.Error("expected parse error for unknown unit")
		}
	})

	t.Run("type names the value", func(t *testing.T) {
		var b ByteSize
		if got := b.Type(); got != "bytesize" {
			t.Errorf("Type() = %q, want %q", got, "bytesize")
		}
	})
}

func TestByteSize_String(t *testing.T) {
	tests := []struct {
		name  string
		input ByteSize
		want  string
	}{
		{"bytes", 512, "512B"},
		{"kibibytes", 2 * KiB, "2.00KiB"},
		{"mebibytes", 100 * MiB, "100.00MiB"},
		{"gibibytes", 1 * GiB, "1.00GiB"},
		{"tebibytes", 2 * TiB, "2.00TiB"},
		{"fragment cap", ByteSize((1<<20)+(1<<18)), "1.25MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.String(); got != tt.want {
				t.Errorf("ByteSize(%d).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestByteSize_Conversions(t *testing.T) {
	size := ByteSize(1024 * 1024)

	if got := size.Uint64(); got != 1024*1024 {
		t.Errorf("ByteSize.Uint64() = %d, want %d", got, 1024*1024)
	}
	if got := size.Int64(); got != 1024*1024 {
		t.Errorf("ByteSize.Int64() = %d, want %d", got, 1024*1024)
	}
}
