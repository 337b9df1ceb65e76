package ngram

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/nao1215/seoaudit/internal/model"
)

// defaultCheckInterval is the number of documents counted between two
// context checks.
const defaultCheckInterval = 512

// Engine counts and ranks n-gram frequencies over a Corpus.
// An Engine is stateless between calls and safe for concurrent use.
type Engine struct {
	logger        *slog.Logger
	checkInterval int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCheckInterval sets how many documents are counted between two
// cancellation checks. Non-positive values are ignored.
func WithCheckInterval(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.checkInterval = n
		}
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		checkInterval: defaultCheckInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Count builds the ranked n-gram table of size n in the given mode.
// A table without rows is a valid result. Count returns the context error
// if the context is cancelled while counting.
func (e *Engine) Count(ctx context.Context, corpus *Corpus, n int, mode model.NgramMode) (*model.NgramTable, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidNgramSize, n)
	}

	switch mode {
	case model.NgramPerPagetype:
		return e.countPerPagetype(ctx, corpus, n)
	case model.NgramGlobal:
		return e.countGlobal(ctx, corpus, n)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownNgramMode, mode)
	}
}

// countPerPagetype counts phrases within each pagetype and keeps the ones
// occurring more than once there. Rows are sorted by pagetype ascending,
// frequency descending, then phrase ascending.
func (e *Engine) countPerPagetype(ctx context.Context, corpus *Corpus, n int) (*model.NgramTable, error) {
	counts := make(map[string]map[string]int)
	total := 0

	for i, doc := range corpus.Documents() {
		if err := e.checkContext(ctx, i); err != nil {
			return nil, err
		}

		byPhrase, ok := counts[doc.Pagetype]
		if !ok {
			byPhrase = make(map[string]int)
			counts[doc.Pagetype] = byPhrase
		}
		for _, phrase := range Extract(doc.Tokens, n) {
			byPhrase[phrase]++
			total++
		}
	}

	rows := make([]model.NgramRow, 0)
	for pagetype, byPhrase := range counts {
		for phrase, count := range byPhrase {
			if count > 1 {
				rows = append(rows, model.NgramRow{
					Pagetype:  pagetype,
					Phrase:    phrase,
					Frequency: count,
				})
			}
		}
	}

	slices.SortFunc(rows, func(a, b model.NgramRow) int {
		return cmp.Or(
			cmp.Compare(a.Pagetype, b.Pagetype),
			cmp.Compare(b.Frequency, a.Frequency),
			cmp.Compare(a.Phrase, b.Phrase),
		)
	})

	e.logger.Debug("counted n-grams",
		"field", corpus.Field(),
		"n", n,
		"mode", model.NgramPerPagetype,
		"occurrences", total,
		"rows", len(rows),
	)

	return &model.NgramTable{
		N:     n,
		Mode:  model.NgramPerPagetype,
		Total: total,
		Rows:  rows,
	}, nil
}

// countGlobal pools every document and keeps all phrases with their share
// of all occurrences. Rows are sorted by frequency descending, then phrase
// ascending.
func (e *Engine) countGlobal(ctx context.Context, corpus *Corpus, n int) (*model.NgramTable, error) {
	counts := make(map[string]int)
	total := 0

	for i, doc := range corpus.Documents() {
		if err := e.checkContext(ctx, i); err != nil {
			return nil, err
		}
		for _, phrase := range Extract(doc.Tokens, n) {
			counts[phrase]++
			total++
		}
	}

	rows := make([]model.NgramRow, 0, len(counts))
	for phrase, count := range counts {
		rows = append(rows, model.NgramRow{
			Phrase:     phrase,
			Frequency:  count,
			Percentage: round2(float64(count) / float64(total) * 100),
		})
	}

	slices.SortFunc(rows, func(a, b model.NgramRow) int {
		return cmp.Or(
			cmp.Compare(b.Frequency, a.Frequency),
			cmp.Compare(a.Phrase, b.Phrase),
		)
	})

	e.logger.Debug("counted n-grams",
		"field", corpus.Field(),
		"n", n,
		"mode", model.NgramGlobal,
		"occurrences", total,
		"rows", len(rows),
	)

	return &model.NgramTable{
		N:     n,
		Mode:  model.NgramGlobal,
		Total: total,
		Rows:  rows,
	}, nil
}

// checkContext returns the context error every checkInterval documents.
func (e *Engine) checkContext(ctx context.Context, i int) error {
	if i%e.checkInterval != 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// round2 rounds to 2 decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
