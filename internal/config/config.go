package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "seoaudit"

	// DefaultConcurrency bounds the number of analyses running at once.
	// Two fields with three n-gram sizes each rarely need more.
	DefaultConcurrency = 4

	// DefaultFormat is the report format used when none is configured.
	DefaultFormat = report.FormatText
)

// Config holds all configuration options for seoaudit.
// It is populated from the config file and CLI flags and passed through
// the application rather than kept in global state.
type Config struct {
	// InputFile is the CSV or TSV file to analyze.
	InputFile string

	// Delimiter is the field delimiter of the input file.
	// Zero means comma, or tab for .tsv files.
	Delimiter rune

	// ColumnOverrides maps fields to source column names and take
	// precedence over column inference. An empty column name leaves the
	// field unmapped.
	ColumnOverrides map[model.Field]string

	// Fields lists the content fields to analyze.
	Fields []model.Field

	// IncludeNgrams enables the n-gram frequency analysis.
	IncludeNgrams bool

	// NgramSizes lists the phrase lengths to count.
	NgramSizes []int

	// NgramMode selects per-pagetype or global n-gram counting.
	NgramMode model.NgramMode

	// DuplicateCountMode selects how duplicates are counted per pagetype.
	DuplicateCountMode model.DuplicateCountMode

	// Concurrency bounds the number of analyses running at once.
	Concurrency int

	// Stopwords are removed from n-grams in addition to the built-in list.
	Stopwords []string

	// Timeout aborts the analysis after the given duration.
	// Zero means no timeout.
	Timeout time.Duration

	// Format is the report output format.
	Format report.Format

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ExportDir is the directory receiving the CSV tables.
	// When empty, no tables are exported.
	ExportDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// Quiet disables the progress spinner.
	Quiet bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the file is searched for (see FindConfigFile).
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	defaults := model.DefaultAnalysisConfig()
	return &Config{
		ColumnOverrides:    make(map[model.Field]string),
		Fields:             defaults.ContentFields,
		IncludeNgrams:      defaults.IncludeNgrams,
		NgramSizes:         defaults.NgramSizes,
		NgramMode:          defaults.NgramMode,
		DuplicateCountMode: defaults.DuplicateCountMode,
		Concurrency:        DefaultConcurrency,
		Format:             DefaultFormat,
	}
}

// XDGConfigDir returns the XDG config directory for seoaudit.
// On Linux: ~/.config/seoaudit
// On macOS: ~/Library/Application Support/seoaudit
// On Windows: %APPDATA%\seoaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ToAnalysisConfig returns the analysis settings of the configuration.
func (c *Config) ToAnalysisConfig() model.AnalysisConfig {
	return model.AnalysisConfig{
		ContentFields:      slices.Clone(c.Fields),
		IncludeNgrams:      c.IncludeNgrams,
		NgramSizes:         slices.Clone(c.NgramSizes),
		NgramMode:          c.NgramMode,
		DuplicateCountMode: c.DuplicateCountMode,
		Concurrency:        c.Concurrency,
		ExtraStopwords:     slices.Clone(c.Stopwords),
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrNoInput
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Verbose && c.Quiet {
		return ErrConflictingVerbosity
	}

	if _, err := report.ParseFormat(string(c.Format)); err != nil {
		return err
	}

	for f := range c.ColumnOverrides {
		if !slices.Contains(model.AllFields, f) {
			return fmt.Errorf("%w: %q", model.ErrUnknownField, f)
		}
	}

	if err := c.ToAnalysisConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAnalysis, err)
	}

	return nil
}
