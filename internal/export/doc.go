// Package export writes the tables of an analysis run to CSV files.
//
// File names follow the pattern <field>_<table>.csv, for example
// title_duplicate_rollup.csv or meta_description_2gram_analysis.csv.
// The text summary is written as analysis_summary.txt.
package export
