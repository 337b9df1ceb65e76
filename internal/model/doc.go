// Package model defines the core data structures used throughout seoaudit.
//
// This package contains the following main types:
//   - Record and Dataset: mapped input rows, immutable for one run
//   - Rollup, PagetypeRow, NgramTable: derived analysis tables
//   - AnalysisResult: the bundle of tables computed for one content field
//   - RunRequest and RunResult: the input and output of one analysis run
//
// Blank and whitespace-only values are normalized to the empty string when a
// Dataset is built. The empty string is the only null representation inside
// the engine; renderers display it as BlankDisplay.
//
// The models are serializable to JSON for report output.
package model
