package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Apply() and can
// be checked with errors.Is().
var (
	// ErrNoInput is returned when no input file is specified.
	ErrNoInput = errors.New("no input file specified")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrConflictingVerbosity is returned when both --verbose and --quiet
	// are specified.
	ErrConflictingVerbosity = errors.New("conflicting options: --verbose and --quiet cannot be used together")

	// ErrInvalidAnalysis wraps an invalid analysis setting such as an
	// unknown mode or a non-positive n-gram size.
	ErrInvalidAnalysis = errors.New("invalid analysis settings")

	// ErrInvalidConfigFile is returned when the configuration file holds
	// a value that cannot be interpreted.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
