package config

import (
	"fmt"

	"github.com/nao1215/seoaudit/internal/loader"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/report"
)

// AnalysisSection holds the analysis defaults of the configuration file.
// Unset values keep the built-in defaults.
type AnalysisSection struct {
	// Fields lists the content fields to analyze, e.g. [title, meta_description].
	Fields []string `yaml:"fields,omitempty"`

	// Ngrams enables or disables the n-gram analysis.
	Ngrams *bool `yaml:"ngrams,omitempty"`

	// NgramSizes lists the phrase lengths to count.
	NgramSizes []int `yaml:"ngram_sizes,omitempty"`

	// NgramMode is "per-pagetype" or "global".
	NgramMode string `yaml:"ngram_mode,omitempty"`

	// DuplicateMode is "all" or "extra".
	DuplicateMode string `yaml:"duplicate_mode,omitempty"`

	// Concurrency bounds the number of analyses running at once.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// InputSection holds input file settings.
type InputSection struct {
	// Delimiter is ",", "tab", ";" or "|".
	Delimiter string `yaml:"delimiter,omitempty"`
}

// ReportSection holds report output settings.
type ReportSection struct {
	// Format is "text", "markdown", "json" or "html".
	Format string `yaml:"format,omitempty"`

	// ExportDir receives the CSV tables when set.
	ExportDir string `yaml:"export_dir,omitempty"`
}

// File represents the structure of the .seoaudit configuration file.
type File struct {
	// Columns maps field names (url, title, meta_description, pagetype)
	// to source column names. An empty column name leaves the field
	// unmapped.
	Columns map[string]string `yaml:"columns,omitempty"`

	// Analysis holds analysis defaults.
	Analysis AnalysisSection `yaml:"analysis,omitempty"`

	// Stopwords are removed from n-grams in addition to the built-in list.
	Stopwords []string `yaml:"stopwords,omitempty"`

	// Input holds input file settings.
	Input InputSection `yaml:"input,omitempty"`

	// Report holds report output settings.
	Report ReportSection `yaml:"report,omitempty"`
}

// ColumnOverrides returns the column mapping of the file keyed by field.
func (f *File) ColumnOverrides() (map[model.Field]string, error) {
	overrides := make(map[model.Field]string, len(f.Columns))
	for name, column := range f.Columns {
		field, err := model.ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("%w: columns: %w", ErrInvalidConfigFile, err)
		}
		overrides[field] = column
	}
	return overrides, nil
}

// Apply copies the values set in the file onto cfg. Values left unset in
// the file do not change cfg. Apply is meant to run before CLI flags are
// applied, so that flags take precedence.
func (f *File) Apply(cfg *Config) error {
	overrides, err := f.ColumnOverrides()
	if err != nil {
		return err
	}
	for field, column := range overrides {
		cfg.ColumnOverrides[field] = column
	}

	if len(f.Analysis.Fields) > 0 {
		fields := make([]model.Field, 0, len(f.Analysis.Fields))
		for _, name := range f.Analysis.Fields {
			field, err := model.ParseField(name)
			if err != nil {
				return fmt.Errorf("%w: analysis.fields: %w", ErrInvalidConfigFile, err)
			}
			fields = append(fields, field)
		}
		cfg.Fields = fields
	}
	if f.Analysis.Ngrams != nil {
		cfg.IncludeNgrams = *f.Analysis.Ngrams
	}
	if len(f.Analysis.NgramSizes) > 0 {
		cfg.NgramSizes = f.Analysis.NgramSizes
	}
	if f.Analysis.NgramMode != "" {
		mode, err := model.ParseNgramMode(f.Analysis.NgramMode)
		if err != nil {
			return fmt.Errorf("%w: analysis.ngram_mode: %w", ErrInvalidConfigFile, err)
		}
		cfg.NgramMode = mode
	}
	if f.Analysis.DuplicateMode != "" {
		mode, err := model.ParseDuplicateCountMode(f.Analysis.DuplicateMode)
		if err != nil {
			return fmt.Errorf("%w: analysis.duplicate_mode: %w", ErrInvalidConfigFile, err)
		}
		cfg.DuplicateCountMode = mode
	}
	if f.Analysis.Concurrency != 0 {
		cfg.Concurrency = f.Analysis.Concurrency
	}

	if len(f.Stopwords) > 0 {
		cfg.Stopwords = append(cfg.Stopwords, f.Stopwords...)
	}

	if f.Input.Delimiter != "" {
		delim, err := loader.ParseDelimiter(f.Input.Delimiter)
		if err != nil {
			return fmt.Errorf("%w: input.delimiter: %w", ErrInvalidConfigFile, err)
		}
		cfg.Delimiter = delim
	}

	if f.Report.Format != "" {
		format, err := report.ParseFormat(f.Report.Format)
		if err != nil {
			return fmt.Errorf("%w: report.format: %w", ErrInvalidConfigFile, err)
		}
		cfg.Format = format
	}
	if f.Report.ExportDir != "" {
		cfg.ExportDir = f.Report.ExportDir
	}

	return nil
}
