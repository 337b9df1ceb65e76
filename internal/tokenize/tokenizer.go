package tokenize

import (
	"slices"
	"strings"
	"unicode"
)

// DefaultStopwords is the built-in English stop word list.
var DefaultStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
	"from", "has", "have", "he", "her", "his", "how", "if", "in", "into",
	"is", "it", "its", "not", "of", "on", "or", "our", "she", "so",
	"than", "that", "the", "their", "they", "this", "to", "was", "we", "what",
	"when", "which", "with", "you", "your",
}

// Tokenizer handles text normalization and stop word removal.
// A Tokenizer is safe for concurrent use once constructed.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// New creates a tokenizer with DefaultStopwords plus the given extra words.
func New(extra ...string) *Tokenizer {
	return NewWithStopwords(append(slices.Clone(DefaultStopwords), extra...))
}

// NewWithStopwords creates a tokenizer with exactly the given stop words.
func NewWithStopwords(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stops[w] = struct{}{}
		}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize splits text into significant tokens in source order.
// Empty or blank input yields an empty slice.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := strings.Map(keepASCIILetterOrSpace, strings.ToLower(text))

	tokens := make([]string, 0)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || t.IsStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// IsStopword reports whether the lowercased word is a stop word.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// Stopwords returns the stop word list in ascending order.
func (t *Tokenizer) Stopwords() []string {
	out := make([]string, 0, len(t.stopwords))
	for w := range t.stopwords {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// keepASCIILetterOrSpace drops every rune that is not a lowercase ASCII
// letter or whitespace. It runs after lowercasing.
func keepASCIILetterOrSpace(r rune) rune {
	if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
		return r
	}
	return -1
}
