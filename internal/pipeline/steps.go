package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nao1215/seoaudit/internal/duplicate"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/ngram"
	"github.com/nao1215/seoaudit/internal/tokenize"
	"golang.org/x/sync/errgroup"
)

// RollupStep builds the duplicate rollup and its detail table.
type RollupStep struct {
	ds *model.Dataset
}

// NewRollupStep creates a new rollup step over the dataset.
func NewRollupStep(ds *model.Dataset) *RollupStep {
	return &RollupStep{ds: ds}
}

// Name returns the step name.
func (s *RollupStep) Name() string {
	return "rollup"
}

// Do executes the rollup step.
func (s *RollupStep) Do(_ context.Context, result *model.AnalysisResult) error {
	result.Rollup = duplicate.BuildRollup(s.ds, result.Field)
	return nil
}

// SummaryStep builds the flat duplicate summary and the field statistics.
// It reads the rollup, so it must run after RollupStep.
type SummaryStep struct {
	ds *model.Dataset
}

// NewSummaryStep creates a new summary step over the dataset.
func NewSummaryStep(ds *model.Dataset) *SummaryStep {
	return &SummaryStep{ds: ds}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "duplicate_summary"
}

// Do executes the summary step.
func (s *SummaryStep) Do(_ context.Context, result *model.AnalysisResult) error {
	result.FlatSummary = duplicate.FlatSummary(s.ds, result.Field)
	result.Stats = duplicate.Stats(s.ds.Len(), result.FlatSummary, result.Rollup)
	return nil
}

// PagetypeStep builds the per-pagetype duplication summary.
type PagetypeStep struct {
	ds   *model.Dataset
	mode model.DuplicateCountMode
}

// NewPagetypeStep creates a new pagetype summary step.
func NewPagetypeStep(ds *model.Dataset, mode model.DuplicateCountMode) *PagetypeStep {
	return &PagetypeStep{ds: ds, mode: mode}
}

// Name returns the step name.
func (s *PagetypeStep) Name() string {
	return "pagetype_summary"
}

// Do executes the pagetype summary step.
func (s *PagetypeStep) Do(_ context.Context, result *model.AnalysisResult) error {
	rows, err := duplicate.SummarizePagetypes(s.ds, result.Field, s.mode)
	if err != nil {
		return fmt.Errorf("summarize pagetypes: %w", err)
	}
	result.PagetypeSummary = rows
	return nil
}

// DrilldownStep groups repeated values within each pagetype.
type DrilldownStep struct {
	ds *model.Dataset
}

// NewDrilldownStep creates a new drilldown step over the dataset.
func NewDrilldownStep(ds *model.Dataset) *DrilldownStep {
	return &DrilldownStep{ds: ds}
}

// Name returns the step name.
func (s *DrilldownStep) Name() string {
	return "duplicates_by_pagetype"
}

// Do executes the drilldown step.
func (s *DrilldownStep) Do(_ context.Context, result *model.AnalysisResult) error {
	result.DuplicatesByPagetype = duplicate.ByPagetype(s.ds, result.Field)
	return nil
}

// NgramStep counts n-gram frequencies for every requested size.
// The field is tokenized once and the sizes are counted concurrently.
type NgramStep struct {
	ds          *model.Dataset
	tokenizer   *tokenize.Tokenizer
	engine      *ngram.Engine
	sizes       []int
	mode        model.NgramMode
	concurrency int
	logger      *slog.Logger
}

// NgramStepOption configures an NgramStep.
type NgramStepOption func(*NgramStep)

// WithNgramSizes sets the n-gram sizes to count.
func WithNgramSizes(sizes []int) NgramStepOption {
	return func(s *NgramStep) {
		s.sizes = sizes
	}
}

// WithNgramMode sets the counting mode.
func WithNgramMode(mode model.NgramMode) NgramStepOption {
	return func(s *NgramStep) {
		s.mode = mode
	}
}

// WithNgramConcurrency sets how many sizes are counted at the same time.
func WithNgramConcurrency(n int) NgramStepOption {
	return func(s *NgramStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithNgramTokenizer sets the tokenizer used to build the corpus.
func WithNgramTokenizer(tok *tokenize.Tokenizer) NgramStepOption {
	return func(s *NgramStep) {
		s.tokenizer = tok
	}
}

// WithNgramEngine sets the frequency engine.
func WithNgramEngine(engine *ngram.Engine) NgramStepOption {
	return func(s *NgramStep) {
		s.engine = engine
	}
}

// WithNgramLogger sets a custom logger for the n-gram step.
func WithNgramLogger(logger *slog.Logger) NgramStepOption {
	return func(s *NgramStep) {
		s.logger = logger
	}
}

// NewNgramStep creates a new n-gram step over the dataset.
func NewNgramStep(ds *model.Dataset, opts ...NgramStepOption) *NgramStep {
	s := &NgramStep{
		ds:          ds,
		sizes:       model.DefaultNgramSizes,
		mode:        model.NgramPerPagetype,
		concurrency: len(model.DefaultNgramSizes),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.tokenizer == nil {
		s.tokenizer = tokenize.New()
	}
	if s.engine == nil {
		s.engine = ngram.NewEngine(ngram.WithLogger(s.logger))
	}

	return s
}

// Name returns the step name.
func (s *NgramStep) Name() string {
	return "ngrams"
}

// Do executes the n-gram step. Tables without rows are not stored.
// Tables finished before a cancellation are kept.
func (s *NgramStep) Do(ctx context.Context, result *model.AnalysisResult) error {
	corpus := ngram.NewCorpus(s.ds, result.Field, s.tokenizer)

	sizes := slices.Clone(s.sizes)
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, n := range sizes {
		g.Go(func() error {
			table, err := s.engine.Count(ctx, corpus, n, s.mode)
			if err != nil {
				return fmt.Errorf("count %d-grams: %w", n, err)
			}
			if table.IsEmpty() {
				s.logger.Debug("no n-grams found",
					"field", result.Field,
					"n", n,
				)
				return nil
			}

			mu.Lock()
			result.Ngrams[n] = table
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// DefaultPipeline creates the standard analysis pipeline for a dataset:
// rollup, flat summary, pagetype summary, drilldown and, when requested,
// n-grams.
func DefaultPipeline(ds *model.Dataset, cfg model.AnalysisConfig, opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewRollupStep(ds),
		NewSummaryStep(ds),
		NewPagetypeStep(ds, cfg.DuplicateCountMode),
		NewDrilldownStep(ds),
	)

	if cfg.IncludeNgrams && len(cfg.NgramSizes) > 0 {
		p.AddStep(NewNgramStep(ds,
			WithNgramSizes(cfg.NgramSizes),
			WithNgramMode(cfg.NgramMode),
			WithNgramConcurrency(cfg.Concurrency),
			WithNgramTokenizer(tokenize.New(cfg.ExtraStopwords...)),
			WithNgramLogger(p.logger),
		))
	}

	return p
}
