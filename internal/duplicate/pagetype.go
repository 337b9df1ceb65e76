package duplicate

import (
	"cmp"
	"math"
	"slices"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/samber/lo"
)

// partition splits the records by pagetype. Keys are returned in
// ascending order; records keep dataset order within a partition.
func partition(ds *model.Dataset) ([]string, map[string][]model.Record) {
	parts := lo.GroupBy(ds.Records(), func(r model.Record) string { return r.Pagetype })
	keys := lo.Keys(parts)
	slices.Sort(keys)
	return keys, parts
}

// countDuplicates counts the duplicated records of one partition.
func countDuplicates(records []model.Record, field model.Field, mode model.DuplicateCountMode) int {
	counts := lo.CountValuesBy(records, valueOf(field))

	switch mode {
	case model.DuplicateCountExtra:
		return len(records) - len(counts)
	default:
		return lo.SumBy(lo.Values(counts), func(n int) int {
			if n > 1 {
				return n
			}
			return 0
		})
	}
}

// SummarizePagetypes returns one row per pagetype, in ascending pagetype
// order. Duplicates are counted inside each pagetype independently:
// DuplicateCountAll counts every member of a repeated value, and
// DuplicateCountExtra counts only the occurrences after the first.
func SummarizePagetypes(ds *model.Dataset, field model.Field, mode model.DuplicateCountMode) ([]model.PagetypeRow, error) {
	if _, err := model.ParseDuplicateCountMode(string(mode)); err != nil {
		return nil, err
	}

	keys, parts := partition(ds)
	rows := make([]model.PagetypeRow, 0, len(keys))
	for _, pagetype := range keys {
		records := parts[pagetype]
		dups := countDuplicates(records, field, mode)
		rows = append(rows, model.PagetypeRow{
			Pagetype:        pagetype,
			Total:           len(records),
			Duplicates:      dups,
			DuplicationRate: rate(dups, len(records)),
		})
	}
	return rows, nil
}

// ByPagetype lists, for each pagetype with at least one repeated value,
// the duplicate groups found inside that pagetype. Pagetypes are in
// ascending order; groups are ordered by count descending, then value.
func ByPagetype(ds *model.Dataset, field model.Field) []model.PagetypeDuplicates {
	keys, parts := partition(ds)

	out := make([]model.PagetypeDuplicates, 0)
	for _, pagetype := range keys {
		groups := lo.GroupBy(parts[pagetype], valueOf(field))

		dups := make([]model.DuplicateGroup, 0)
		for value, group := range groups {
			if len(group) < 2 {
				continue
			}
			urls := lo.Map(group, func(r model.Record, _ int) string { return r.URL })
			slices.Sort(urls)
			dups = append(dups, model.DuplicateGroup{
				Value: value,
				Count: len(group),
				URLs:  urls,
			})
		}
		if len(dups) == 0 {
			continue
		}

		slices.SortFunc(dups, func(a, b model.DuplicateGroup) int {
			return cmp.Or(
				cmp.Compare(b.Count, a.Count),
				cmp.Compare(a.Value, b.Value),
			)
		})
		out = append(out, model.PagetypeDuplicates{
			Pagetype: pagetype,
			Groups:   dups,
		})
	}
	return out
}

// rate returns part / total * 100 rounded to 2 decimals.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
