package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/seoaudit/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run result in JSON format.
func (w *JSONWriter) Write(run *model.RunResult) (int, error) {
	return w.writeJSON(run)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a run result with tool metadata.
type JSONReport struct {
	// Version is the seoaudit version that generated this report.
	Version string `json:"version"`

	// Summary holds one line per analyzed field for quick access.
	Summary []FieldSummary `json:"summary"`

	// Report is the full run result.
	Report *model.RunResult `json:"report"`
}

// FieldSummary is the headline of one field analysis.
type FieldSummary struct {
	Field            model.Field `json:"field"`
	DuplicateRecords int         `json:"duplicate_records"`
	Rate             float64     `json:"rate"`
	Level            string      `json:"level"`

	// MostRepeated is the displayed value with the highest count, if any.
	MostRepeated      string `json:"most_repeated,omitempty"`
	MostRepeatedCount int    `json:"most_repeated_count,omitempty"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(run *model.RunResult, version string) *JSONReport {
	summary := make([]FieldSummary, 0)
	for _, result := range run.Results() {
		s := FieldSummary{
			Field:            result.Field,
			DuplicateRecords: result.Stats.DuplicateRecords,
			Rate:             result.Stats.Rate(),
			Level:            result.Stats.Level().String(),
		}
		if row, ok := result.MostRepeated(); ok {
			s.MostRepeated = model.Display(row.Value)
			s.MostRepeatedCount = row.DuplicateCount
		}
		summary = append(summary, s)
	}

	return &JSONReport{
		Version: version,
		Summary: summary,
		Report:  run,
	}
}

// FullJSONWriter outputs run results with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the seoaudit version string.
	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the run result wrapped with metadata.
func (w *FullJSONWriter) Write(run *model.RunResult) (int, error) {
	return w.writeJSON(NewJSONReport(run, w.version))
}
