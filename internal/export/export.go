package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/report"
)

// SummaryFile is the name of the text summary written next to the tables.
const SummaryFile = "analysis_summary.txt"

// ErrNoDirectory is returned when the exporter has no target directory.
var ErrNoDirectory = errors.New("export directory is not set")

// Exporter writes the tables of a run as CSV files into a directory.
type Exporter struct {
	// dir is the target directory. It is created when missing.
	dir string

	// logger is used for structured logging.
	logger *slog.Logger

	// withSummary controls whether analysis_summary.txt is written.
	withSummary bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets a custom logger for the exporter.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithSummary controls whether the text summary is written.
func WithSummary(enabled bool) Option {
	return func(e *Exporter) {
		e.withSummary = enabled
	}
}

// New creates an Exporter writing into dir.
func New(dir string, opts ...Option) *Exporter {
	e := &Exporter{
		dir:         dir,
		withSummary: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// FileName returns the file name of a table of a field, e.g.
// "title_duplicate_rollup.csv".
func FileName(field model.Field, table string) string {
	return fmt.Sprintf("%s_%s.csv", field, table)
}

// NgramFileName returns the file name of an n-gram table, e.g.
// "meta_description_3gram_analysis.csv".
func NgramFileName(field model.Field, n int) string {
	return FileName(field, fmt.Sprintf("%dgram_analysis", n))
}

// namedTable is a table and the file it is written to.
type namedTable struct {
	name    string
	records [][]string
}

// Export writes every table of the run and returns the written paths in
// write order. Rollup and detail files are only written for fields with
// duplicates, and only non-empty n-gram tables are written.
func (e *Exporter) Export(run *model.RunResult) ([]string, error) {
	if e.dir == "" {
		return nil, ErrNoDirectory
	}
	if err := os.MkdirAll(e.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	written := make([]string, 0)
	write := func(name string, records [][]string) error {
		if records == nil {
			return nil
		}
		path := filepath.Join(e.dir, name)
		if err := writeCSV(path, records); err != nil {
			return err
		}
		e.logger.Debug("exported table", "path", path, "rows", len(records)-1)
		written = append(written, path)
		return nil
	}

	for _, result := range run.Results() {
		field := result.Field
		tables := []namedTable{
			{FileName(field, "duplicate_rollup"), RollupTable(result)},
			{FileName(field, "duplicate_detail"), DetailTable(result)},
			{FileName(field, "duplicate_summary"), FlatSummaryTable(result)},
			{FileName(field, "pagetype_summary"), PagetypeTable(result)},
		}
		for _, n := range result.NgramSizes() {
			if table := result.Ngrams[n]; !table.IsEmpty() {
				tables = append(tables, namedTable{NgramFileName(field, n), NgramTable(table)})
			}
		}

		for _, t := range tables {
			if err := write(t.name, t.records); err != nil {
				return written, err
			}
		}
	}

	if e.withSummary {
		path := filepath.Join(e.dir, SummaryFile)
		if err := writeSummary(path, run); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	e.logger.Info("export complete", "dir", e.dir, "files", len(written))
	return written, nil
}

// writeCSV writes records to a new file at path.
func writeCSV(path string, records [][]string) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filepath.Base(path), closeErr)
		}
	}()

	if err := csv.NewWriter(f).WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeSummary writes the text summary report to path.
func writeSummary(path string, run *model.RunResult) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", SummaryFile, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", SummaryFile, closeErr)
		}
	}()

	if _, err := report.NewSummaryWriter(f).Write(run); err != nil {
		return fmt.Errorf("write %s: %w", SummaryFile, err)
	}
	return nil
}
