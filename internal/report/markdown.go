package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/seoaudit/internal/model"
)

// defaultMaxRows caps the rows of each Markdown table.
const defaultMaxRows = 25

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter

	// maxRows caps the rows of rollup and n-gram tables.
	maxRows int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMaxRows sets the maximum number of rows of each table.
// Non-positive values are ignored.
func WithMaxRows(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if n > 0 {
			w.maxRows = n
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		maxRows:    defaultMaxRows,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(run *model.RunResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeProblems(md, run)
	for _, result := range run.Results() {
		w.writeField(md, result)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and overview table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.RunResult) {
	md.H1("SEO Content Audit Report")
	md.PlainText("")

	fields := make([]string, 0, len(run.Config.ContentFields))
	for _, f := range run.Config.ContentFields {
		fields = append(fields, f.Label())
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", run.ID},
			{"Analysis Date", run.GeneratedAt.Format(dateLayout)},
			{"Total URLs", strconv.Itoa(run.Overview.TotalURLs)},
			{"Unique URLs", strconv.Itoa(run.Overview.UniqueURLs)},
			{"Page Types", strconv.Itoa(run.Overview.PagetypeCount)},
			{"Analyzed Fields", strings.Join(fields, ", ")},
			{"N-gram Mode", string(run.Config.NgramMode)},
			{"Duplicate Count Mode", string(run.Config.DuplicateCountMode)},
		},
	})
	md.PlainText("")
}

// writeProblems writes warnings and failed fields as alerts.
func (w *MarkdownWriter) writeProblems(md *markdown.Markdown, run *model.RunResult) {
	for _, warning := range run.Warnings {
		md.Warningf("%s", warning)
		md.PlainText("")
	}
	for _, failure := range run.Failures {
		md.Cautionf("%s analysis failed: %s", failure.Field.Label(), failure.Message)
		md.PlainText("")
	}
}

// writeField writes every table of one content field.
func (w *MarkdownWriter) writeField(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2(result.Field.Label() + " Analysis")
	md.PlainText("")

	if result.TimedOut {
		md.Warningf("%s analysis timed out. Results are partial.", result.Field.Label())
		md.PlainText("")
	}

	w.writeStats(md, result)
	w.writeAlert(md, result)
	w.writeRollup(md, result)
	w.writePagetypes(md, result)
	w.writeDrilldown(md, result)
	w.writeNgrams(md, result)
}

// writeStats writes the headline numbers of a field.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, result *model.AnalysisResult) {
	stats := result.Stats
	plural := result.Field.Plural()

	rows := [][]string{
		{"Total " + plural, strconv.Itoa(stats.Total)},
		{"Unique " + plural, strconv.Itoa(stats.Unique)},
		{"Duplicate " + plural, strconv.Itoa(stats.DuplicateRecords)},
		{"Unique Duplicated Values", strconv.Itoa(stats.DuplicateValues)},
		{"Duplication Level", stats.Level().String()},
	}
	if row, ok := result.MostRepeated(); ok {
		rows = append(rows, []string{"Most Repeated", fmt.Sprintf("%s (%d)", cell(model.Display(row.Value)), row.DuplicateCount)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes an alert matching the duplication level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AnalysisResult) {
	stats := result.Stats
	label := strings.ToLower(result.Field.Plural())

	switch stats.Level() {
	case model.LevelSevere:
		md.Cautionf("%.1f%% of %s are duplicated. Most pages share their %s with another page.",
			stats.Rate(), label, strings.ToLower(result.Field.Label()))
	case model.LevelHigh:
		md.Warningf("%.1f%% of %s are duplicated.", stats.Rate(), label)
	case model.LevelModerate:
		md.Importantf("%.1f%% of %s are duplicated.", stats.Rate(), label)
	case model.LevelLow:
		md.Note(fmt.Sprintf("Only %.1f%% of %s are duplicated.", stats.Rate(), label))
	default:
		md.Tip(fmt.Sprintf("No duplicate %s found.", label))
	}
	md.PlainText("")
}

// writeRollup writes the most repeated values.
func (w *MarkdownWriter) writeRollup(md *markdown.Markdown, result *model.AnalysisResult) {
	if !result.HasDuplicates() {
		return
	}

	md.H3("Duplicate " + result.Field.Plural())
	md.PlainText("")

	rows := result.Rollup.Rows
	rows = rows[:min(len(rows), w.maxRows)]

	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = []string{
			cell(model.Display(row.Value)),
			strconv.Itoa(row.DuplicateCount),
			cell(row.PagetypeList()),
			cell(strings.Join(model.DisplayAll(row.URLs), ", ")),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{result.Field.Label(), "Count", "Pagetypes", "URLs"},
		Rows:   table,
	})
	md.PlainText("")
	w.writeTruncated(md, len(result.Rollup.Rows))
}

// writePagetypes writes the pagetype summary and its pie chart.
func (w *MarkdownWriter) writePagetypes(md *markdown.Markdown, result *model.AnalysisResult) {
	if len(result.PagetypeSummary) == 0 {
		return
	}

	md.H3("Duplication by Page Type")
	md.PlainText("")

	rows := make([][]string, len(result.PagetypeSummary))
	for i, row := range result.PagetypeSummary {
		rows[i] = []string{
			cell(model.Display(row.Pagetype)),
			strconv.Itoa(row.Total),
			strconv.Itoa(row.Duplicates),
			strconv.FormatFloat(row.DuplicationRate, 'f', 2, 64) + "%",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Pagetype", "Total URLs", "Duplicate " + result.Field.Plural(), "Duplication Rate"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, result)
}

// writePieChart writes a mermaid pie chart of duplicates per pagetype.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.AnalysisResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Duplicate "+result.Field.Plural()+" by Page Type"),
		piechart.WithShowData(true),
	)

	total := 0
	for _, row := range result.PagetypeSummary {
		if row.Duplicates > 0 {
			chart.LabelAndIntValue(model.Display(row.Pagetype), uint64(row.Duplicates))
			total += row.Duplicates
		}
	}
	if total == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeDrilldown writes the duplicate groups of each pagetype as
// collapsible sections.
func (w *MarkdownWriter) writeDrilldown(md *markdown.Markdown, result *model.AnalysisResult) {
	for _, part := range result.DuplicatesByPagetype {
		var sb strings.Builder
		for _, g := range part.Groups {
			sb.WriteString(fmt.Sprintf("- %s (%d): %s\n",
				model.Display(g.Value), g.Count, strings.Join(model.DisplayAll(g.URLs), ", ")))
		}
		md.Details(
			fmt.Sprintf("%s: %d duplicate %s", model.Display(part.Pagetype), part.Records(), strings.ToLower(result.Field.Plural())),
			sb.String(),
		)
	}
	if len(result.DuplicatesByPagetype) > 0 {
		md.PlainText("")
	}
}

// writeNgrams writes one table per n-gram size.
func (w *MarkdownWriter) writeNgrams(md *markdown.Markdown, result *model.AnalysisResult) {
	for _, n := range result.NgramSizes() {
		table := result.Ngrams[n]
		if table.IsEmpty() {
			continue
		}

		md.H3(fmt.Sprintf("Common %d-word Phrases", n))
		md.PlainText("")

		rows := table.Rows[:min(len(table.Rows), w.maxRows)]
		if table.Mode == model.NgramGlobal {
			out := make([][]string, len(rows))
			for i, row := range rows {
				out[i] = []string{
					cell(row.Phrase),
					strconv.Itoa(row.Frequency),
					strconv.FormatFloat(row.Percentage, 'f', 2, 64) + "%",
				}
			}
			md.Table(markdown.TableSet{
				Header: []string{"Phrase", "Frequency", "Percentage"},
				Rows:   out,
			})
		} else {
			out := make([][]string, len(rows))
			for i, row := range rows {
				out[i] = []string{
					cell(model.Display(row.Pagetype)),
					cell(row.Phrase),
					strconv.Itoa(row.Frequency),
				}
			}
			md.Table(markdown.TableSet{
				Header: []string{"Pagetype", "Phrase", "Frequency"},
				Rows:   out,
			})
		}
		md.PlainText("")
		w.writeTruncated(md, len(table.Rows))
	}
}

// writeTruncated notes that a table was cut at maxRows.
func (w *MarkdownWriter) writeTruncated(md *markdown.Markdown, total int) {
	if total > w.maxRows {
		md.PlainTextf("*Showing %d of %d rows. Use --export-dir for the full tables.*", w.maxRows, total)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [seoaudit](https://github.com/nao1215/seoaudit)*")
}

// cell escapes a value for use inside a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
