package model

import (
	"slices"
	"strings"
)

// RollupRow aggregates every record sharing one duplicated value.
type RollupRow struct {
	// Value is the shared normalized value. Empty means blank.
	Value string `json:"value"`

	// DuplicateCount is the number of records sharing Value.
	DuplicateCount int `json:"duplicate_count"`

	// UniquePagetypes is the number of distinct pagetypes among the members.
	UniquePagetypes int `json:"unique_pagetypes"`

	// Pagetypes lists the distinct member pagetypes in ascending order.
	Pagetypes []string `json:"pagetypes"`

	// URLs lists every member URL in ascending order.
	URLs []string `json:"urls"`

	// OtherValues lists the distinct values of the opposite content field
	// among the members, in ascending order.
	OtherValues []string `json:"other_values"`
}

// PagetypeList returns the pagetypes joined with ", ".
func (r RollupRow) PagetypeList() string {
	return strings.Join(DisplayAll(r.Pagetypes), ", ")
}

// URLList returns the URLs joined with newlines.
func (r RollupRow) URLList() string {
	return strings.Join(DisplayAll(r.URLs), "\n")
}

// OtherValueList returns the other content values joined with newlines.
func (r RollupRow) OtherValueList() string {
	return strings.Join(DisplayAll(r.OtherValues), "\n")
}

// DetailRow is one record that belongs to a duplicate group.
type DetailRow struct {
	Content      string `json:"content"`
	URL          string `json:"url"`
	Pagetype     string `json:"pagetype"`
	OtherContent string `json:"other_content"`
}

// Rollup holds the rollup and detail views for one content field.
type Rollup struct {
	Field  Field       `json:"field"`
	Rows   []RollupRow `json:"rows"`
	Detail []DetailRow `json:"detail"`
}

// FlatDuplicateRow counts the occurrences of one distinct value,
// whether or not it repeats.
type FlatDuplicateRow struct {
	Value     string   `json:"value"`
	Count     int      `json:"count"`
	Pagetypes []string `json:"pagetypes"`
}

// PagetypeRow holds the duplication statistics of one pagetype.
type PagetypeRow struct {
	Pagetype string `json:"pagetype"`
	Total    int    `json:"total_urls"`

	// Duplicates is counted within the pagetype only, according to the
	// DuplicateCountMode of the run.
	Duplicates int `json:"duplicates"`

	// DuplicationRate is Duplicates / Total * 100, rounded to 2 decimals.
	DuplicationRate float64 `json:"duplication_rate"`
}

// DuplicateGroup is a set of records of one pagetype sharing a value.
type DuplicateGroup struct {
	Value string   `json:"value"`
	Count int      `json:"count"`
	URLs  []string `json:"urls"`
}

// PagetypeDuplicates lists the duplicate groups found inside one pagetype.
type PagetypeDuplicates struct {
	Pagetype string           `json:"pagetype"`
	Groups   []DuplicateGroup `json:"groups"`
}

// Records returns the number of records across all groups.
func (p PagetypeDuplicates) Records() int {
	total := 0
	for _, g := range p.Groups {
		total += g.Count
	}
	return total
}

// NgramRow is one ranked phrase of an n-gram table.
type NgramRow struct {
	// Pagetype is set in per-pagetype mode only.
	Pagetype string `json:"pagetype"`

	Phrase    string `json:"phrase"`
	Frequency int    `json:"frequency"`

	// Percentage is the share of all n-gram occurrences, rounded to
	// 2 decimals. Set in global mode only.
	Percentage float64 `json:"percentage,omitempty"`
}

// NgramTable is the ranked output of one n-gram pass.
type NgramTable struct {
	N    int       `json:"n"`
	Mode NgramMode `json:"mode"`

	// Total is the number of n-gram occurrences counted before filtering.
	Total int        `json:"total"`
	Rows  []NgramRow `json:"rows"`
}

// IsEmpty reports whether the table has no rows.
func (t *NgramTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// FieldStats holds the headline numbers of one content field.
type FieldStats struct {
	// Total is the number of records.
	Total int `json:"total"`

	// Unique is the number of distinct non-blank values.
	Unique int `json:"unique"`

	// DuplicateRecords is the number of records whose value occurs more
	// than once in the dataset.
	DuplicateRecords int `json:"duplicate_records"`

	// DuplicateValues is the number of distinct values that occur more
	// than once.
	DuplicateValues int `json:"duplicate_values"`
}

// AnalysisResult is the bundle of tables computed for one content field.
type AnalysisResult struct {
	Field Field `json:"field"`

	Stats FieldStats `json:"stats"`

	// Rollup is nil when no value repeats.
	Rollup *Rollup `json:"rollup,omitempty"`

	FlatSummary          []FlatDuplicateRow   `json:"flat_summary"`
	PagetypeSummary      []PagetypeRow        `json:"pagetype_summary"`
	DuplicatesByPagetype []PagetypeDuplicates `json:"duplicates_by_pagetype"`

	// Ngrams holds one table per size. Sizes without rows are absent.
	Ngrams map[int]*NgramTable `json:"ngrams,omitempty"`

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// TimedOut is set when the run was cancelled before all steps finished.
	// Tables of completed steps stay valid.
	TimedOut bool `json:"timed_out,omitempty"`

	// Error holds the step failure, if any.
	Error        error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// NewAnalysisResult creates an empty result for the given field.
func NewAnalysisResult(field Field) *AnalysisResult {
	return &AnalysisResult{
		Field:                field,
		FlatSummary:          make([]FlatDuplicateRow, 0),
		PagetypeSummary:      make([]PagetypeRow, 0),
		DuplicatesByPagetype: make([]PagetypeDuplicates, 0),
		Ngrams:               make(map[int]*NgramTable),
		PerformedSteps:       make([]string, 0),
	}
}

// HasDuplicates reports whether any value repeats.
func (r *AnalysisResult) HasDuplicates() bool {
	return r != nil && r.Rollup != nil && len(r.Rollup.Rows) > 0
}

// MostRepeated returns the rollup row with the highest count.
func (r *AnalysisResult) MostRepeated() (RollupRow, bool) {
	if !r.HasDuplicates() {
		return RollupRow{}, false
	}
	return r.Rollup.Rows[0], true
}

// NgramSizes returns the sizes that produced a table, ascending.
func (r *AnalysisResult) NgramSizes() []int {
	sizes := make([]int, 0, len(r.Ngrams))
	for n := range r.Ngrams {
		sizes = append(sizes, n)
	}
	slices.Sort(sizes)
	return sizes
}

// PagetypeRowFor returns the summary row of the given pagetype.
func (r *AnalysisResult) PagetypeRowFor(pagetype string) (PagetypeRow, bool) {
	for _, row := range r.PagetypeSummary {
		if row.Pagetype == pagetype {
			return row, true
		}
	}
	return PagetypeRow{}, false
}
