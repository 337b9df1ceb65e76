package main

import (
	"fmt"
	"io"

	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/loader"
	"github.com/nao1215/seoaudit/internal/mapping"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/spf13/cobra"
)

// NewColumnsCmd creates the columns command.
func NewColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "Show the columns of a crawl export and how they are mapped",
		Long: `Columns prints the header of a CSV or TSV file and the column chosen for
each field (url, title, meta_description, pagetype), taking the configuration
file and --column overrides into account.

The command fails when a required field has no column, so it can be used to
check a file before running analyze.

Examples:
  seoaudit columns crawl.csv
  seoaudit columns --column title="Title 1" crawl.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runColumnsCmd,
	}

	cmd.Flags().StringP("delimiter", "d", "",
		`Field delimiter: ",", "tab", ";" or "|" (default: comma, tab for .tsv)`)
	cmd.Flags().StringArrayP("column", "m", nil,
		"Map a field to a column as field=column (repeatable)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seoaudit in current or home directory)")

	return cmd
}

// runColumnsCmd executes the columns command.
func runColumnsCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return err
	}
	if err := loadConfigFile(cfg); err != nil {
		return err
	}

	if flags.Changed("delimiter") {
		s, err := flags.GetString("delimiter")
		if err != nil {
			return err
		}
		if cfg.Delimiter, err = loader.ParseDelimiter(s); err != nil {
			return err
		}
	}

	pairs, err := flags.GetStringArray("column")
	if err != nil {
		return err
	}
	overrides, err := parseColumnFlags(pairs)
	if err != nil {
		return err
	}
	for field, column := range overrides {
		cfg.ColumnOverrides[field] = column
	}

	table, err := loader.LoadFile(args[0], loader.WithDelimiter(cfg.Delimiter))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	m, err := mapping.Resolve(table.Header, cfg.ColumnOverrides)
	if err != nil {
		return err
	}

	writeColumns(cmd.OutOrStdout(), table, m)

	return m.Validate()
}

// writeColumns prints the header and the resolved mapping.
func writeColumns(w io.Writer, table *loader.Table, m mapping.Mapping) {
	fmt.Fprintf(w, "Columns (%d rows):\n", len(table.Rows))
	for i, column := range table.Header {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, column)
	}

	fmt.Fprintln(w, "\nMapping:")
	for _, field := range model.AllFields {
		column, ok := m.Column(field)
		switch {
		case ok:
			column = fmt.Sprintf("%q", column)
		case field == model.FieldPagetype:
			column = "(not mapped, page type breakdown disabled)"
		default:
			column = "(not found)"
		}
		fmt.Fprintf(w, "  %-18s %s\n", field, column)
	}
}
