// Package tokenize turns free text into significant word tokens.
//
// Tokenization is deliberately simple: text is lowercased, everything that
// is not an ASCII letter or whitespace is removed, the rest is split on
// whitespace, and single-letter words and stop words are dropped. Digits,
// punctuation and accented letters never survive.
package tokenize
