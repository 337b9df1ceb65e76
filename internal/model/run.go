package model

import (
	"fmt"
	"slices"
	"time"
)

// NgramMode selects how n-gram counts are aggregated.
type NgramMode string

const (
	// NgramPerPagetype counts phrases within each pagetype and keeps only
	// phrases that occur more than once there.
	NgramPerPagetype NgramMode = "per-pagetype"

	// NgramGlobal pools every record and keeps all phrases with their
	// percentage share of all occurrences.
	NgramGlobal NgramMode = "global"
)

// ParseNgramMode converts a name into an NgramMode.
func ParseNgramMode(s string) (NgramMode, error) {
	switch NgramMode(s) {
	case NgramPerPagetype, "pagetype", "per_pagetype":
		return NgramPerPagetype, nil
	case NgramGlobal:
		return NgramGlobal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNgramMode, s)
	}
}

// DuplicateCountMode selects how the pagetype summary counts duplicates.
type DuplicateCountMode string

const (
	// DuplicateCountAll counts every record whose value repeats within the
	// pagetype, first occurrence included.
	DuplicateCountAll DuplicateCountMode = "all"

	// DuplicateCountExtra counts only the second and later occurrences.
	DuplicateCountExtra DuplicateCountMode = "extra"
)

// ParseDuplicateCountMode converts a name into a DuplicateCountMode.
func ParseDuplicateCountMode(s string) (DuplicateCountMode, error) {
	switch DuplicateCountMode(s) {
	case DuplicateCountAll:
		return DuplicateCountAll, nil
	case DuplicateCountExtra:
		return DuplicateCountExtra, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDuplicateMode, s)
	}
}

// DefaultNgramSizes are the sizes analyzed when none are configured.
var DefaultNgramSizes = []int{2, 3, 4}

// AnalysisConfig is the configuration consumed by the analysis engine.
type AnalysisConfig struct {
	// ContentFields lists the fields to analyze.
	ContentFields []Field `json:"content_fields"`

	// IncludeNgrams enables the n-gram passes.
	IncludeNgrams bool `json:"include_ngrams"`

	// NgramSizes lists the n-gram sizes to compute.
	NgramSizes []int `json:"ngram_sizes"`

	NgramMode          NgramMode          `json:"ngram_mode"`
	DuplicateCountMode DuplicateCountMode `json:"duplicate_count_mode"`

	// Concurrency bounds the number of concurrent units of work.
	// Zero means no limit.
	Concurrency int `json:"concurrency"`

	// ExtraStopwords are added to the built-in stop word list.
	ExtraStopwords []string `json:"extra_stopwords,omitempty"`
}

// DefaultAnalysisConfig returns the configuration used when nothing is set:
// both content fields, n-grams of size 2, 3 and 4 counted per pagetype,
// and keep-all duplicate counting.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		ContentFields:      slices.Clone(ContentFields),
		IncludeNgrams:      true,
		NgramSizes:         slices.Clone(DefaultNgramSizes),
		NgramMode:          NgramPerPagetype,
		DuplicateCountMode: DuplicateCountAll,
		Concurrency:        4,
	}
}

// Validate checks the configuration.
func (c AnalysisConfig) Validate() error {
	if len(c.ContentFields) == 0 {
		return ErrNoContentFields
	}
	for _, f := range c.ContentFields {
		if !f.IsContent() {
			return fmt.Errorf("%w: %q", ErrNotContentField, f)
		}
	}
	for _, n := range c.NgramSizes {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidNgramSize, n)
		}
	}
	if _, err := ParseNgramMode(string(c.NgramMode)); err != nil {
		return err
	}
	if _, err := ParseDuplicateCountMode(string(c.DuplicateCountMode)); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// Wants reports whether the field is requested.
func (c AnalysisConfig) Wants(f Field) bool {
	return slices.Contains(c.ContentFields, f)
}

// RunRequest is the input of one analysis run.
type RunRequest struct {
	Dataset *Dataset
	Config  AnalysisConfig
}

// FieldFailure records why a requested field has no result.
type FieldFailure struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// RunResult is the output of one analysis run. A nil field result means the
// field was not requested or its analysis failed; see Failures.
type RunResult struct {
	// ID identifies the run. IDs sort by start time.
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Config      AnalysisConfig `json:"config"`
	Overview    Overview       `json:"overview"`

	Title           *AnalysisResult `json:"title,omitempty"`
	MetaDescription *AnalysisResult `json:"meta_description,omitempty"`

	Warnings []string       `json:"warnings,omitempty"`
	Failures []FieldFailure `json:"failures,omitempty"`
}

// Result returns the result of the given field.
func (r *RunResult) Result(f Field) *AnalysisResult {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldMetaDescription:
		return r.MetaDescription
	default:
		return nil
	}
}

// SetResult stores the result of the given field.
func (r *RunResult) SetResult(f Field, result *AnalysisResult) {
	switch f {
	case FieldTitle:
		r.Title = result
	case FieldMetaDescription:
		r.MetaDescription = result
	}
}

// Results returns the non-nil results in canonical field order.
func (r *RunResult) Results() []*AnalysisResult {
	out := make([]*AnalysisResult, 0, len(ContentFields))
	for _, f := range ContentFields {
		if res := r.Result(f); res != nil {
			out = append(out, res)
		}
	}
	return out
}

// AddWarning appends a warning, skipping exact duplicates.
func (r *RunResult) AddWarning(msg string) {
	if !slices.Contains(r.Warnings, msg) {
		r.Warnings = append(r.Warnings, msg)
	}
}

// AddFailure records a field failure.
func (r *RunResult) AddFailure(f Field, err error) {
	r.Failures = append(r.Failures, FieldFailure{Field: f, Message: err.Error()})
}
