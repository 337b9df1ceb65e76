// Package mapping resolves heterogeneous input column names to the
// canonical record fields and projects raw rows into a model.Dataset.
//
// Inference runs in two passes. The first pass looks for a column equal to
// one of a field's candidate names, in candidate priority order. The second
// pass, for fields still unresolved, takes the first column (in source
// order) containing any candidate as a substring. Matching ignores case and
// surrounding whitespace, and a column is never assigned to two fields.
package mapping
