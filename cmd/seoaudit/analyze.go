package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/export"
	"github.com/nao1215/seoaudit/internal/loader"
	seolog "github.com/nao1215/seoaudit/internal/log"
	"github.com/nao1215/seoaudit/internal/mapping"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/pipeline"
	"github.com/nao1215/seoaudit/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a crawl export for duplicate titles and meta descriptions",
		Long: `Analyze loads a CSV or TSV crawl export and reports, for titles and meta
descriptions:
- Duplicate values with the URLs and page types sharing them
- Duplicate counts and rates per page type
- The word sequences (n-grams) repeated most often

Examples:
  # Print the text summary
  seoaudit analyze crawl.csv

  # Write a Markdown report and export every table as CSV
  seoaudit analyze --format markdown -o report.md --export-dir out crawl.csv

  # Map columns manually
  seoaudit analyze --column url=Address --column pagetype=Segment crawl.csv

  # Titles only, bigrams and trigrams counted over the whole site
  seoaudit analyze --fields title --ngram-sizes 2,3 --ngram-mode global crawl.csv

Configuration file (.seoaudit) example:
  columns:
    title: "Title 1"
  stopwords:
    - acme
  report:
    format: markdown`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	// Input flags
	cmd.Flags().StringP("delimiter", "d", "",
		`Field delimiter: ",", "tab", ";" or "|" (default: comma, tab for .tsv)`)
	cmd.Flags().StringArrayP("column", "m", nil,
		"Map a field to a column as field=column (repeatable; empty column unmaps the field)")

	// Analysis flags
	cmd.Flags().StringSlice("fields", nil,
		"Content fields to analyze: title, meta_description (default: both)")
	cmd.Flags().IntSlice("ngram-sizes", nil,
		"N-gram sizes to count (default: 2,3,4)")
	cmd.Flags().String("ngram-mode", "",
		"N-gram counting: per-pagetype or global (default: per-pagetype)")
	cmd.Flags().String("duplicate-mode", "",
		"Duplicate counting per page type: all or extra (default: all)")
	cmd.Flags().Bool("no-ngrams", false,
		"Skip the n-gram analysis")
	cmd.Flags().StringSlice("stopwords", nil,
		"Additional stop words removed from n-grams")
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency,
		"Number of analyses running at once")
	cmd.Flags().DurationP("timeout", "t", 0,
		"Abort the analysis after the given duration and report partial results (0 disables)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seoaudit in current or home directory)")

	// Report flags
	cmd.Flags().StringP("format", "f", string(config.DefaultFormat),
		"Report format: text, markdown, json or html")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().StringP("export-dir", "e", "",
		"Export every table as CSV into the directory")
	cmd.Flags().BoolP("quiet", "q", false,
		"Disable the progress spinner")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, cfg.Timeout)
		defer timeoutCancel()
	}

	return runAnalyze(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	return seolog.NewLogger(os.Stderr, verbose)
}

// loadConfigFile applies the configuration file, if any, to cfg.
// A missing file is an error only when its path was given explicitly.
func loadConfigFile(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := file.Apply(cfg); err != nil {
		return fmt.Errorf("failed to apply config file %s: %w", path, err)
	}
	return nil
}

// parseColumnFlags converts field=column pairs into column overrides.
func parseColumnFlags(pairs []string) (map[model.Field]string, error) {
	overrides := make(map[model.Field]string, len(pairs))
	for _, pair := range pairs {
		name, column, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --column value %q: expected field=column", pair)
		}
		field, err := model.ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("invalid --column value %q: %w", pair, err)
		}
		overrides[field] = strings.TrimSpace(column)
	}
	return overrides, nil
}

// buildConfig creates a Config from the configuration file and cobra
// command flags. Flags override file values only when set explicitly.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadConfigFile(cfg); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.InputFile = args[0]
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if flags.Changed("delimiter") {
		s, err := flags.GetString("delimiter")
		if err != nil {
			return nil, err
		}
		if cfg.Delimiter, err = loader.ParseDelimiter(s); err != nil {
			return nil, err
		}
	}

	if flags.Changed("column") {
		pairs, err := flags.GetStringArray("column")
		if err != nil {
			return nil, err
		}
		overrides, err := parseColumnFlags(pairs)
		if err != nil {
			return nil, err
		}
		for field, column := range overrides {
			cfg.ColumnOverrides[field] = column
		}
	}

	if flags.Changed("fields") {
		names, err := flags.GetStringSlice("fields")
		if err != nil {
			return nil, err
		}
		fields := make([]model.Field, 0, len(names))
		for _, name := range names {
			field, err := model.ParseField(name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		cfg.Fields = fields
	}

	if flags.Changed("ngram-sizes") {
		if cfg.NgramSizes, err = flags.GetIntSlice("ngram-sizes"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("ngram-mode") {
		s, err := flags.GetString("ngram-mode")
		if err != nil {
			return nil, err
		}
		if cfg.NgramMode, err = model.ParseNgramMode(s); err != nil {
			return nil, err
		}
	}

	if flags.Changed("duplicate-mode") {
		s, err := flags.GetString("duplicate-mode")
		if err != nil {
			return nil, err
		}
		if cfg.DuplicateCountMode, err = model.ParseDuplicateCountMode(s); err != nil {
			return nil, err
		}
	}

	if flags.Changed("no-ngrams") {
		noNgrams, err := flags.GetBool("no-ngrams")
		if err != nil {
			return nil, err
		}
		cfg.IncludeNgrams = !noNgrams
	}

	if flags.Changed("stopwords") {
		words, err := flags.GetStringSlice("stopwords")
		if err != nil {
			return nil, err
		}
		cfg.Stopwords = append(cfg.Stopwords, words...)
	}

	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}

	if flags.Changed("format") {
		s, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		if cfg.Format, err = report.ParseFormat(s); err != nil {
			return nil, err
		}
	}

	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	if flags.Changed("export-dir") {
		if cfg.ExportDir, err = flags.GetString("export-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.Quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDataset reads the input file and maps its columns to fields.
func loadDataset(cfg *config.Config, logger *slog.Logger) (*model.Dataset, error) {
	table, err := loader.LoadFile(cfg.InputFile, loader.WithDelimiter(cfg.Delimiter))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.InputFile, err)
	}

	m, err := mapping.Resolve(table.Header, cfg.ColumnOverrides)
	if err != nil {
		return nil, err
	}
	for _, field := range m.Fields() {
		column, _ := m.Column(field)
		logger.Debug("column mapped", "field", field, "column", column)
	}

	ds, err := mapping.Project(m, table.Header, table.Rows)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded",
		"file", cfg.InputFile,
		"rows", ds.Len(),
		"fields", ds.Fields(),
	)
	return ds, nil
}

// startSpinner shows a progress spinner on stderr until the returned
// function is called. The spinner stays silent when stderr is not a terminal.
func startSpinner(quiet bool, records int) func() {
	if quiet {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = fmt.Sprintf(" Analyzing %d records...", records)
	s.Start()
	return s.Stop
}

// runAnalyze executes the analysis and writes the report and exports.
// When the context ends early, the partial results are still written and
// the context error is returned.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	ds, err := loadDataset(cfg, logger)
	if err != nil {
		return err
	}

	orchestrator := pipeline.NewOrchestrator(pipeline.WithOrchestratorLogger(logger))

	startTime := time.Now()
	stop := startSpinner(cfg.Quiet, ds.Len())
	run, runErr := orchestrator.Run(ctx, model.RunRequest{
		Dataset: ds,
		Config:  cfg.ToAnalysisConfig(),
	})
	stop()

	if run == nil {
		return fmt.Errorf("analysis failed: %w", runErr)
	}
	if runErr != nil {
		logger.Warn("analysis interrupted, writing partial results", "error", runErr)
	}
	logger.Info("analysis finished", "elapsed", time.Since(startTime).Round(time.Millisecond))

	if err := outputReport(cfg, run, stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.ExportDir != "" {
		files, err := export.New(cfg.ExportDir, export.WithLogger(logger)).Export(run)
		if err != nil {
			return fmt.Errorf("failed to export tables: %w", err)
		}
		fmt.Fprintf(stderr, "Exported %d files to %s\n", len(files), cfg.ExportDir)
	}

	if runErr != nil {
		if errors.Is(runErr, context.DeadlineExceeded) {
			return fmt.Errorf("analysis timed out after %s, results are partial: %w", cfg.Timeout, runErr)
		}
		return fmt.Errorf("analysis cancelled, results are partial: %w", runErr)
	}
	return nil
}

// outputReport writes the run report in the configured format, to
// cfg.ReportFile when set and to stdout otherwise.
func outputReport(cfg *config.Config, run *model.RunResult, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer, err := report.NewWriter(cfg.Format, output, getVersion())
	if err != nil {
		return err
	}
	_, err = writer.Write(run)
	return err
}
