package report

import (
	"io"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateLayout is the timestamp layout of text reports.
const dateLayout = "2006-01-02 15:04:05"

// SummaryWriter outputs the plain text summary report.
// Numbers are printed with thousands separators of the configured
// language.
type SummaryWriter struct {
	baseWriter

	// lang selects number formatting.
	lang language.Tag
}

// SummaryWriterOption configures a SummaryWriter.
type SummaryWriterOption func(*SummaryWriter)

// WithLanguage sets the language used to format numbers.
func WithLanguage(tag language.Tag) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.lang = tag
	}
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, opts ...SummaryWriterOption) *SummaryWriter {
	w := &SummaryWriter{
		baseWriter: newBaseWriter(output),
		lang:       language.English,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary of the run. It only reads computed results.
func (w *SummaryWriter) Write(run *model.RunResult) (int, error) {
	var sb strings.Builder
	p := message.NewPrinter(w.lang)

	w.writeHeader(&sb, p, run)
	w.writeOverview(&sb, p, run)
	for _, result := range run.Results() {
		w.writeField(&sb, p, result)
	}
	w.writePagetypes(&sb, p, run)
	w.writeProblems(&sb, run)

	return io.WriteString(w.output, sb.String())
}

// heading writes an underlined section title.
func heading(sb *strings.Builder, title string, underline rune) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(string(underline), len(title)))
	sb.WriteString("\n")
}

// writeHeader writes the report title and timestamp.
func (w *SummaryWriter) writeHeader(sb *strings.Builder, p *message.Printer, run *model.RunResult) {
	heading(sb, "SEO Content Analysis Summary Report", '=')
	sb.WriteString("\n")
	p.Fprintf(sb, "Analysis Date: %s\n", run.GeneratedAt.Format(dateLayout))
}

// writeOverview writes the dataset-level statistics.
func (w *SummaryWriter) writeOverview(sb *strings.Builder, p *message.Printer, run *model.RunResult) {
	sb.WriteString("\n")
	heading(sb, "Overall Statistics", '-')
	p.Fprintf(sb, "Total URLs analyzed: %d\n", run.Overview.TotalURLs)
	p.Fprintf(sb, "Unique URLs: %d\n", run.Overview.UniqueURLs)
	p.Fprintf(sb, "Total page types: %d\n", run.Overview.PagetypeCount)
}

// writeField writes the duplicate statistics of one content field.
func (w *SummaryWriter) writeField(sb *strings.Builder, p *message.Printer, result *model.AnalysisResult) {
	singular := strings.ToLower(result.Field.Label())
	plural := strings.ToLower(result.Field.Plural())
	stats := result.Stats

	sb.WriteString("\n")
	heading(sb, result.Field.Label()+" Analysis", '-')
	if result.TimedOut {
		sb.WriteString("Status: TIMED OUT (partial results)\n")
	}
	p.Fprintf(sb, "Total %s: %d\n", plural, stats.Total)
	p.Fprintf(sb, "Unique %s: %d\n", plural, stats.Unique)
	p.Fprintf(sb, "Duplicate %s: %d\n", plural, stats.DuplicateRecords)

	if row, ok := result.MostRepeated(); ok {
		p.Fprintf(sb, "Number of unique duplicate %s: %d\n", plural, stats.DuplicateValues)
		p.Fprintf(sb, "Most repeated %s: %d occurrences (%q)\n", singular, row.DuplicateCount, model.Display(row.Value))
		p.Fprintf(sb, "Duplication level: %s (%.1f%% of records)\n", stats.Level(), stats.Rate())
	}
}

// writePagetypes writes the per-pagetype breakdown in pagetype order.
func (w *SummaryWriter) writePagetypes(sb *strings.Builder, p *message.Printer, run *model.RunResult) {
	results := run.Results()
	if len(results) == 0 || len(run.Overview.Pagetypes) == 0 {
		return
	}

	sb.WriteString("\n")
	heading(sb, "Analysis by Page Type", '-')

	for _, pagetype := range run.Overview.Pagetypes {
		p.Fprintf(sb, "\nPage Type: %s\n", model.Display(pagetype))

		if row, ok := results[0].PagetypeRowFor(pagetype); ok {
			p.Fprintf(sb, "Total URLs: %d\n", row.Total)
		}
		for _, result := range results {
			row, ok := result.PagetypeRowFor(pagetype)
			if !ok {
				continue
			}
			p.Fprintf(sb, "Duplicate %s: %d", result.Field.Plural(), row.Duplicates)
			if row.Duplicates > 0 {
				p.Fprintf(sb, " (%.1f%%)", row.DuplicationRate)
			}
			sb.WriteString("\n")
		}
	}
}

// writeProblems lists warnings and failed fields.
func (w *SummaryWriter) writeProblems(sb *strings.Builder, run *model.RunResult) {
	if len(run.Warnings) == 0 && len(run.Failures) == 0 {
		return
	}

	sb.WriteString("\n")
	heading(sb, "Warnings", '-')
	for _, warning := range run.Warnings {
		sb.WriteString("  [!] " + warning + "\n")
	}
	for _, failure := range run.Failures {
		sb.WriteString("  [x] " + failure.Field.Label() + ": " + failure.Message + "\n")
	}
}
