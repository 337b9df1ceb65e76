// Package ngram extracts contiguous word phrases from token sequences and
// ranks their frequencies.
//
// Two aggregation modes are supported. In per-pagetype mode phrases are
// counted within each pagetype and only phrases occurring more than once
// are kept. In global mode all records are pooled, every phrase is kept,
// and each row carries its percentage share of all occurrences.
//
// Tokens are computed once per record in a Corpus and reused for every
// n-gram size.
package ngram
