package model

import (
	"slices"
	"strings"
)

// BlankDisplay is the token rendered in place of a null value.
const BlankDisplay = "[BLANK]"

// NormalizeValue maps blank and whitespace-only strings to the null value
// (the empty string). Other values are returned unchanged, so two values
// that differ only in surrounding whitespace stay distinct.
func NormalizeValue(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Display returns the rendered form of a normalized value.
func Display(s string) string {
	if s == "" {
		return BlankDisplay
	}
	return s
}

// DisplayAll applies Display to every element.
func DisplayAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Display(v)
	}
	return out
}

// Record is one page of the input after column mapping.
type Record struct {
	URL             string `json:"url"`
	Pagetype        string `json:"pagetype"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
}

// Value returns the value of the given field.
func (r Record) Value(f Field) string {
	switch f {
	case FieldURL:
		return r.URL
	case FieldTitle:
		return r.Title
	case FieldMetaDescription:
		return r.MetaDescription
	case FieldPagetype:
		return r.Pagetype
	default:
		return ""
	}
}

// normalized returns a copy of the record with every field normalized.
func (r Record) normalized() Record {
	return Record{
		URL:             NormalizeValue(r.URL),
		Pagetype:        NormalizeValue(r.Pagetype),
		Title:           NormalizeValue(r.Title),
		MetaDescription: NormalizeValue(r.MetaDescription),
	}
}

// Dataset is an ordered, immutable sequence of records together with the set
// of fields that were present in the source.
type Dataset struct {
	records []Record
	fields  map[Field]bool
}

// NewDataset builds a Dataset from records. The fields argument lists the
// fields that were mapped from the source; when it is empty all fields are
// treated as present. Values are normalized and the slice is copied.
func NewDataset(records []Record, fields ...Field) *Dataset {
	if len(fields) == 0 {
		fields = AllFields
	}

	ds := &Dataset{
		records: make([]Record, len(records)),
		fields:  make(map[Field]bool, len(fields)),
	}
	for i, r := range records {
		ds.records[i] = r.normalized()
	}
	for _, f := range fields {
		ds.fields[f] = true
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// IsEmpty reports whether the dataset has no records.
func (d *Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// Record returns the i-th record.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []Record {
	return slices.Clone(d.records)
}

// Has reports whether the field was present in the source.
func (d *Dataset) Has(f Field) bool {
	return d.fields[f]
}

// Fields returns the present fields in canonical order.
func (d *Dataset) Fields() []Field {
	out := make([]Field, 0, len(d.fields))
	for _, f := range AllFields {
		if d.fields[f] {
			out = append(out, f)
		}
	}
	return out
}

// Pagetypes returns the distinct pagetypes in ascending order.
// The blank category, if any, sorts first.
func (d *Dataset) Pagetypes() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range d.records {
		if !seen[r.Pagetype] {
			seen[r.Pagetype] = true
			out = append(out, r.Pagetype)
		}
	}
	slices.Sort(out)
	return out
}

// Overview returns dataset-level statistics.
func (d *Dataset) Overview() Overview {
	urls := make(map[string]bool, len(d.records))
	for _, r := range d.records {
		if r.URL != "" {
			urls[r.URL] = true
		}
	}
	pagetypes := d.Pagetypes()

	return Overview{
		TotalURLs:     len(d.records),
		UniqueURLs:    len(urls),
		PagetypeCount: len(pagetypes),
		Pagetypes:     pagetypes,
	}
}

// Overview holds dataset-level statistics shown at the top of reports.
type Overview struct {
	// TotalURLs is the number of records.
	TotalURLs int `json:"total_urls"`

	// UniqueURLs is the number of distinct non-blank URLs.
	UniqueURLs int `json:"unique_urls"`

	// PagetypeCount is the number of distinct pagetypes, blank included.
	PagetypeCount int `json:"pagetype_count"`

	// Pagetypes lists the distinct pagetypes in ascending order.
	Pagetypes []string `json:"pagetypes"`
}
