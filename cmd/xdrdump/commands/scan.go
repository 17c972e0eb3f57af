package commands

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/marmos91/xdrwire/internal/bytesize"
	"github.com/marmos91/xdrwire/internal/cli/output"
	"github.com/marmos91/xdrwire/internal/logger"
	"github.com/marmos91/xdrwire/xdr"
	"github.com/spf13/cobra"
)

var (
	scanTypes  string
	scanMaxLen = bytesize.MiB
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Decode a sequence of XDR values from a raw capture",
	Long: `Decode XDR-encoded values from a file, one per entry in --types,
printing each decoded value and the bytes it consumed.

Variable-length types (string, opaque) are bounded by --max-len so a
corrupt count cannot make the scan allocate the declared size.

Examples:
  # A string followed by two unsigned integers
  xdrdump scan reply.bin --types string,uint32,uint32

  # An optional value decodes as bool + payload
  xdrdump scan entry.bin --types bool,opaque

  # Machine-readable report
  xdrdump scan reply.bin --types string -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanTypes, "types", "", "Comma-separated XDR types to decode in order")
	scanCmd.Flags().Var(&scanMaxLen, "max-len", "Maximum length accepted for string and opaque counts")
	_ = scanCmd.MarkFlagRequired("types")
}

// scanItem is one decoded value.
type scanItem struct {
	Index int    `json:"index" yaml:"index"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

// scanReport is the result of decoding the requested types.
type scanReport struct {
	Items    []scanItem `json:"items" yaml:"items"`
	Consumed int64      `json:"consumed_bytes" yaml:"consumed_bytes"`
	Trailing int64      `json:"trailing_bytes" yaml:"trailing_bytes"`
}

// Headers implements TableRenderer.
func (r *scanReport) Headers() []string {
	return []string{"#", "TYPE", "VALUE", "BYTES"}
}

// Rows implements TableRenderer.
func (r *scanReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		rows = append(rows, []string{
			strconv.Itoa(it.Index),
			it.Type,
			it.Value,
			strconv.Itoa(it.Bytes),
		})
	}
	return rows
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	types, err := parseTypeList(scanTypes)
	if err != nil {
		return err
	}

	maxLen := xdr.NoMax
	if scanMaxLen > 0 {
		if scanMaxLen > math.MaxInt32 {
			return fmt.Errorf("--max-len %s does not fit a 32-bit XDR count", scanMaxLen)
		}
		maxLen = int(scanMaxLen)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	report := &scanReport{Items: []scanItem{}}

	for i, typ := range types {
		start := report.Consumed
		value, n, err := decodeValue(r, typ, maxLen)
		report.Consumed += int64(n)
		if err != nil {
			return fmt.Errorf("item %d (%s) at offset %d: %w", i+1, typ, start, err)
		}

		logger.Debug("decoded value", "index", i+1, "type", typ, "bytes", n)
		report.Items = append(report.Items, scanItem{
			Index: i + 1,
			Type:  typ,
			Value: value,
			Bytes: n,
		})
	}

	trailing, err := io.Copy(io.Discard, r)
	if err != nil {
		return fmt.Errorf("count trailing bytes: %w", err)
	}
	report.Trailing = trailing

	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, report)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, report)
	default:
		if err := output.PrintTable(os.Stdout, report); err != nil {
			return err
		}
		fmt.Println()
		return output.SimpleTable(os.Stdout, [][2]string{
			{"Consumed", fmt.Sprintf("%d (%s)", report.Consumed, bytesize.ByteSize(report.Consumed))},
			{"Trailing", strconv.FormatInt(report.Trailing, 10)},
		})
	}
}

// parseTypeList splits the --types argument into normalized type names.
func parseTypeList(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		types = append(types, p)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("--types must name at least one XDR type")
	}
	return types, nil
}

// decodeValue decodes a single value of the named type and renders it
// for display. It returns the bytes consumed even on failure.
func decodeValue(r io.Reader, typ string, maxLen int) (string, int, error) {
	switch typ {
	case "uint32":
		v, n, err := xdr.UnpackUint32(r)
		return strconv.FormatUint(uint64(v), 10), n, err
	case "int32":
		v, n, err := xdr.UnpackInt32(r)
		return strconv.FormatInt(int64(v), 10), n, err
	case "uint64":
		v, n, err := xdr.UnpackUint64(r)
		return strconv.FormatUint(v, 10), n, err
	case "int64":
		v, n, err := xdr.UnpackInt64(r)
		return strconv.FormatInt(v, 10), n, err
	case "float":
		v, n, err := xdr.UnpackFloat32(r)
		return strconv.FormatFloat(float64(v), 'g', -1, 32), n, err
	case "double":
		v, n, err := xdr.UnpackFloat64(r)
		return strconv.FormatFloat(v, 'g', -1, 64), n, err
	case "bool":
		v, n, err := xdr.UnpackBool(r)
		return strconv.FormatBool(v), n, err
	case "string":
		v, n, err := xdr.UnpackStringFlex(r, maxLen)
		return strconv.Quote(v), n, err
	case "opaque":
		v, n, err := xdr.UnpackOpaqueFlex(r, maxLen)
		return renderOpaque(v), n, err
	case "void":
		n, err := xdr.UnpackVoid(r)
		return "void", n, err
	default:
		return "", 0, fmt.Errorf("unknown XDR type %q (valid: uint32, int32, uint64, int64, float, double, bool, string, opaque, void)", typ)
	}
}

// opaquePreviewLen caps how many payload bytes renderOpaque shows.
const opaquePreviewLen = 16

// renderOpaque shows the payload length and a short hex preview.
func renderOpaque(b []byte) string {
	if len(b) == 0 {
		return "0 bytes"
	}
	if len(b) <= opaquePreviewLen {
		return fmt.Sprintf("%d bytes: %x", len(b), b)
	}
	return fmt.Sprintf("%d bytes: %x...", len(b), b[:opaquePreviewLen])
}
