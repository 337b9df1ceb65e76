package duplicate

import (
	"cmp"
	"slices"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/samber/lo"
)

// FlatSummary counts every distinct value of the field, repeated or not,
// with the distinct pagetypes it appears on. Rows are ordered by count
// descending, then value ascending.
func FlatSummary(ds *model.Dataset, field model.Field) []model.FlatDuplicateRow {
	groups := lo.GroupBy(ds.Records(), valueOf(field))

	rows := make([]model.FlatDuplicateRow, 0, len(groups))
	for value, group := range groups {
		rows = append(rows, model.FlatDuplicateRow{
			Value:     value,
			Count:     len(group),
			Pagetypes: sortedUniq(lo.Map(group, func(r model.Record, _ int) string { return r.Pagetype })),
		})
	}
	slices.SortFunc(rows, func(a, b model.FlatDuplicateRow) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Value, b.Value),
		)
	})
	return rows
}

// Stats derives the headline numbers of a field from the flat summary and
// the rollup, so that report figures always match the tables.
func Stats(total int, flat []model.FlatDuplicateRow, rollup *model.Rollup) model.FieldStats {
	unique := lo.CountBy(flat, func(row model.FlatDuplicateRow) bool {
		return row.Value != ""
	})

	stats := model.FieldStats{
		Total:  total,
		Unique: unique,
	}
	if rollup != nil {
		stats.DuplicateRecords = len(rollup.Detail)
		stats.DuplicateValues = len(rollup.Rows)
	}
	return stats
}
