package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("input has no header row")

	// ErrInvalidDelimiter is returned for an unsupported delimiter.
	ErrInvalidDelimiter = errors.New("invalid delimiter: must be one of , tab ; |")
)

// Delimiters lists the supported delimiters.
var Delimiters = []rune{',', '\t', ';', '|'}

// ParseDelimiter converts a flag or config value into a delimiter rune.
// It accepts the character itself and the names "comma", "tab",
// "semicolon" and "pipe", plus the escape "\t".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",", "comma":
		return ',', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
}

// Table is the raw content of a delimited file.
type Table struct {
	Header []string
	Rows   [][]string
}

// Option configures a load.
type Option func(*options)

type options struct {
	delimiter rune
}

// WithDelimiter sets the field delimiter. Zero keeps the default.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// Load reads a table from r. The default delimiter is a comma.
func Load(r io.Reader, opts ...Option) (*Table, error) {
	o := &options{delimiter: ','}
	for _, opt := range opts {
		opt(o)
	}

	reader := csv.NewReader(r)
	reader.Comma = o.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// LoadFile reads a table from path. Without an explicit delimiter, files
// with a .tsv or .tab extension are read as tab separated.
func LoadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		opts = append([]Option{WithDelimiter('\t')}, opts...)
	}

	return Load(f, opts...)
}
