package model

import "errors"

var (
	// ErrUnknownField is returned when a field name is not one of the
	// canonical fields.
	ErrUnknownField = errors.New("unknown field")

	// ErrEmptyDataset is reported as a warning when a run receives a dataset
	// without records. All tables of such a run are empty.
	ErrEmptyDataset = errors.New("dataset contains no records")

	// ErrNilDataset is returned when a RunRequest carries no dataset.
	ErrNilDataset = errors.New("dataset is nil")

	// ErrNoContentFields is returned when no content field is requested.
	ErrNoContentFields = errors.New("no content field requested: choose title, meta_description or both")

	// ErrNotContentField is returned when a non-content field is requested
	// for analysis.
	ErrNotContentField = errors.New("field cannot be analyzed: only title and meta_description are content fields")

	// ErrInvalidNgramSize is returned when an n-gram size is smaller than 1.
	ErrInvalidNgramSize = errors.New("invalid n-gram size: must be at least 1")

	// ErrUnknownNgramMode is returned for an unrecognized n-gram mode.
	ErrUnknownNgramMode = errors.New("unknown n-gram mode: must be per-pagetype or global")

	// ErrUnknownDuplicateMode is returned for an unrecognized duplicate count mode.
	ErrUnknownDuplicateMode = errors.New("unknown duplicate count mode: must be all or extra")

	// ErrInvalidConcurrency is returned when concurrency is negative.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be non-negative")
)
