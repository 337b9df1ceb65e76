// Package duplicate detects records sharing a content value and summarizes
// them as rollup, detail, flat summary, per-pagetype and drill-down tables.
//
// Grouping compares normalized values, so every blank value falls into a
// single group. A value is duplicated when it occurs at least twice, and
// every occurrence of it (the first included) is a member of its group.
package duplicate
