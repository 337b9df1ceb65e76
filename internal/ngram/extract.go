package ngram

import "strings"

// Extract returns the space-joined phrases of n consecutive tokens, in
// first-occurrence order. It returns an empty slice when n < 1 or when
// there are fewer than n tokens.
func Extract(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return []string{}
	}

	phrases := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		phrases = append(phrases, strings.Join(tokens[i:i+n], " "))
	}
	return phrases
}
