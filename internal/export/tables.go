package export

import (
	"strconv"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// columnName turns a label into a CSV header name, e.g. "Meta Description"
// becomes "Meta_Description".
func columnName(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// formatRate formats a percentage with 2 decimals.
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RollupTable returns the duplicate rollup of a result as CSV records,
// header first. It returns nil when the field has no duplicates.
func RollupTable(result *model.AnalysisResult) [][]string {
	if !result.HasDuplicates() {
		return nil
	}

	field := result.Field
	records := [][]string{{
		field.Label(),
		"Duplicate_Count",
		"Unique_Pagetypes",
		"Pagetype_List",
		columnName(field.Other().Plural()),
		"URLs",
	}}
	for _, row := range result.Rollup.Rows {
		records = append(records, []string{
			model.Display(row.Value),
			strconv.Itoa(row.DuplicateCount),
			strconv.Itoa(row.UniquePagetypes),
			row.PagetypeList(),
			row.OtherValueList(),
			row.URLList(),
		})
	}
	return records
}

// DetailTable returns one CSV record per duplicated record, header first.
// It returns nil when the field has no duplicates.
func DetailTable(result *model.AnalysisResult) [][]string {
	if !result.HasDuplicates() {
		return nil
	}

	records := [][]string{{"Content", "URL", "Pagetype", "Other_Content"}}
	for _, d := range result.Rollup.Detail {
		records = append(records, []string{
			model.Display(d.Content),
			model.Display(d.URL),
			model.Display(d.Pagetype),
			model.Display(d.OtherContent),
		})
	}
	return records
}

// FlatSummaryTable returns the count of every distinct value, header first.
func FlatSummaryTable(result *model.AnalysisResult) [][]string {
	records := [][]string{{result.Field.Label(), "Duplicate_Count", "Pagetypes"}}
	for _, row := range result.FlatSummary {
		records = append(records, []string{
			model.Display(row.Value),
			strconv.Itoa(row.Count),
			strings.Join(model.DisplayAll(row.Pagetypes), ", "),
		})
	}
	return records
}

// PagetypeTable returns the pagetype summary, header first.
func PagetypeTable(result *model.AnalysisResult) [][]string {
	records := [][]string{{
		"Pagetype",
		"Total_URLs",
		"Duplicate_" + columnName(result.Field.Plural()),
		"Duplication_Rate",
	}}
	for _, row := range result.PagetypeSummary {
		records = append(records, []string{
			model.Display(row.Pagetype),
			strconv.Itoa(row.Total),
			strconv.Itoa(row.Duplicates),
			formatRate(row.DuplicationRate),
		})
	}
	return records
}

// NgramTable returns an n-gram table, header first. Global tables carry a
// percentage column instead of the pagetype column.
func NgramTable(table *model.NgramTable) [][]string {
	if table.Mode == model.NgramGlobal {
		records := [][]string{{"ngram", "frequency", "percentage"}}
		for _, row := range table.Rows {
			records = append(records, []string{
				row.Phrase,
				strconv.Itoa(row.Frequency),
				formatRate(row.Percentage),
			})
		}
		return records
	}

	records := [][]string{{"pagetype", "ngram", "frequency"}}
	for _, row := range table.Rows {
		records = append(records, []string{
			model.Display(row.Pagetype),
			row.Phrase,
			strconv.Itoa(row.Frequency),
		})
	}
	return records
}
