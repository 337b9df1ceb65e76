package duplicate

import (
	"cmp"
	"slices"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/samber/lo"
)

// valueOf returns a mapper reading the given field of a record.
func valueOf(field model.Field) func(model.Record) string {
	return func(r model.Record) string {
		return r.Value(field)
	}
}

// sortedUniq returns the distinct values in ascending order.
func sortedUniq(values []string) []string {
	out := lo.Uniq(values)
	slices.Sort(out)
	return out
}

// BuildRollup groups the records of ds by the given content field and
// returns one rollup row per value occurring at least twice, plus one
// detail row per member record. It returns nil when no value repeats.
//
// Rollup rows are ordered by count descending, then value ascending.
// Detail rows follow dataset order.
func BuildRollup(ds *model.Dataset, field model.Field) *model.Rollup {
	records := ds.Records()
	counts := lo.CountValuesBy(records, valueOf(field))

	members := lo.Filter(records, func(r model.Record, _ int) bool {
		return counts[r.Value(field)] > 1
	})
	if len(members) == 0 {
		return nil
	}

	other := field.Other()
	groups := lo.GroupBy(members, valueOf(field))

	rows := make([]model.RollupRow, 0, len(groups))
	for value, group := range groups {
		pagetypes := sortedUniq(lo.Map(group, func(r model.Record, _ int) string { return r.Pagetype }))

		urls := lo.Map(group, func(r model.Record, _ int) string { return r.URL })
		slices.Sort(urls)

		rows = append(rows, model.RollupRow{
			Value:           value,
			DuplicateCount:  len(group),
			UniquePagetypes: len(pagetypes),
			Pagetypes:       pagetypes,
			URLs:            urls,
			OtherValues:     sortedUniq(lo.Map(group, func(r model.Record, _ int) string { return r.Value(other) })),
		})
	}
	slices.SortFunc(rows, func(a, b model.RollupRow) int {
		return cmp.Or(
			cmp.Compare(b.DuplicateCount, a.DuplicateCount),
			cmp.Compare(a.Value, b.Value),
		)
	})

	detail := lo.Map(members, func(r model.Record, _ int) model.DetailRow {
		return model.DetailRow{
			Content:      r.Value(field),
			URL:          r.URL,
			Pagetype:     r.Pagetype,
			OtherContent: r.Value(other),
		}
	})

	return &model.Rollup{
		Field:  field,
		Rows:   rows,
		Detail: detail,
	}
}
