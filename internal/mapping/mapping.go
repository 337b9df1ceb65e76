package mapping

import (
	"fmt"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// Candidates lists, per field, the column names recognized by inference in
// priority order. Names are lowercase.
var Candidates = map[model.Field][]string{
	model.FieldURL: {
		"url", "full url", "page url", "address", "link", "uri", "canonical url", "landing page",
	},
	model.FieldTitle: {
		"title", "page title", "meta title", "seo title", "title tag", "title 1",
	},
	model.FieldMetaDescription: {
		"meta description", "description", "meta desc", "meta description 1", "metadescription", "description 1",
	},
	model.FieldPagetype: {
		"pagetype", "page type", "template", "page template", "type", "category", "content type", "segment",
	},
}

// Mapping maps canonical fields to source column names. A missing key means
// the field is unmapped.
type Mapping map[model.Field]string

// Column returns the source column of the field.
func (m Mapping) Column(f model.Field) (string, bool) {
	col, ok := m[f]
	return col, ok
}

// Missing returns the required fields without a column, in canonical order.
func (m Mapping) Missing() []model.Field {
	missing := make([]model.Field, 0)
	for _, f := range model.RequiredFields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate returns a *MissingMappingError when a required field is unmapped.
func (m Mapping) Validate() error {
	if missing := m.Missing(); len(missing) > 0 {
		return &MissingMappingError{Fields: missing}
	}
	return nil
}

// Fields returns the mapped fields in canonical order.
func (m Mapping) Fields() []model.Field {
	out := make([]model.Field, 0, len(m))
	for _, f := range model.AllFields {
		if _, ok := m[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// normalizeName lowercases and trims a column name for matching.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Infer guesses a mapping from column names. The result may be partial.
func Infer(columns []string) Mapping {
	return infer(columns, Mapping{})
}

// infer completes preset with inferred columns for the remaining fields.
// Columns already used by preset are not assigned again.
func infer(columns []string, preset Mapping) Mapping {
	m := make(Mapping, len(model.AllFields))
	claimed := make(map[int]bool, len(columns))
	for f, col := range preset {
		m[f] = col
		for i, c := range columns {
			if c == col {
				claimed[i] = true
			}
		}
	}

	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = normalizeName(c)
	}

	// Pass 1: exact match, candidate priority order.
	for _, f := range model.AllFields {
		if _, ok := m[f]; ok {
			continue
		}
	exact:
		for _, candidate := range Candidates[f] {
			for i, name := range normalized {
				if !claimed[i] && name == candidate {
					m[f] = columns[i]
					claimed[i] = true
					break exact
				}
			}
		}
	}

	// Pass 2: substring match, column order.
	for _, f := range model.AllFields {
		if _, ok := m[f]; ok {
			continue
		}
		for i, name := range normalized {
			if !claimed[i] && containsAny(name, Candidates[f]) {
				m[f] = columns[i]
				claimed[i] = true
				break
			}
		}
	}

	return m
}

// containsAny reports whether s contains any of the candidates.
func containsAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

// Resolve applies manual overrides and infers the remaining fields.
// Override column names are matched ignoring case and surrounding
// whitespace; an empty override leaves the field unmapped. An override
// naming a column that does not exist returns ErrUnknownColumn.
func Resolve(columns []string, overrides map[model.Field]string) (Mapping, error) {
	preset := make(Mapping, len(overrides))
	unmapped := make(map[model.Field]bool)

	for f, want := range overrides {
		if strings.TrimSpace(want) == "" {
			unmapped[f] = true
			continue
		}
		col, ok := findColumn(columns, want)
		if !ok {
			return nil, fmt.Errorf("%w: %q for field %s", ErrUnknownColumn, want, f)
		}
		preset[f] = col
	}

	m := infer(columns, preset)
	for f := range unmapped {
		delete(m, f)
	}
	return m, nil
}

// findColumn returns the column matching name, exact match first.
func findColumn(columns []string, name string) (string, bool) {
	for _, c := range columns {
		if c == name {
			return c, true
		}
	}
	want := normalizeName(name)
	for _, c := range columns {
		if normalizeName(c) == want {
			return c, true
		}
	}
	return "", false
}

// Project copies raw rows into a Dataset using the mapping. It fails with a
// *MissingMappingError when a required field is unmapped. Short rows yield
// blank values for the missing cells.
func Project(m Mapping, header []string, rows [][]string) (*model.Dataset, error) {
	if missing := m.Missing(); len(missing) > 0 {
		return nil, &MissingMappingError{Fields: missing, Columns: header}
	}

	index := make(map[model.Field]int, len(m))
	for f, col := range m {
		i := indexOf(header, col)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q for field %s", ErrUnknownColumn, col, f)
		}
		index[f] = i
	}

	cell := func(row []string, f model.Field) string {
		i, ok := index[f]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]model.Record, len(rows))
	for i, row := range rows {
		records[i] = model.Record{
			URL:             cell(row, model.FieldURL),
			Pagetype:        cell(row, model.FieldPagetype),
			Title:           cell(row, model.FieldTitle),
			MetaDescription: cell(row, model.FieldMetaDescription),
		}
	}

	return model.NewDataset(records, m.Fields()...), nil
}

// indexOf returns the position of the first column equal to name, or -1.
func indexOf(header []string, name string) int {
	for i, c := range header {
		if c == name {
			return i
		}
	}
	return -1
}
