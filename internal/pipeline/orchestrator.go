package pipeline

import (
	"cmp"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// PipelineFactory creates the pipeline that analyzes one content field.
type PipelineFactory func(ds *model.Dataset, cfg model.AnalysisConfig) *Pipeline

// Orchestrator runs the analysis of every requested content field.
// Fields are analyzed concurrently and independently: a failure in one
// field never prevents the other from completing.
type Orchestrator struct {
	// pipelineFactory creates a fresh pipeline for each field.
	pipelineFactory PipelineFactory

	// logger is used for run-level logging.
	logger *slog.Logger

	// now returns the time stamped on results.
	now func() time.Time

	// newID returns the identifier of a run started at the given time.
	newID func(time.Time) string
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets a custom logger for the orchestrator and the
// pipelines it creates.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithPipelineFactory replaces the default pipeline.
func WithPipelineFactory(factory PipelineFactory) OrchestratorOption {
	return func(o *Orchestrator) {
		o.pipelineFactory = factory
	}
}

// WithClock sets the function used to stamp results.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithRunID sets the function generating run identifiers.
func WithRunID(newID func(time.Time) string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

// newULIDGenerator returns a generator of ULIDs that sort by run start
// time. IDs generated within the same millisecond stay ordered.
func newULIDGenerator() func(time.Time) string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func(t time.Time) string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Timestamp(t), entropy).String()
	}
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		now:   time.Now,
		newID: newULIDGenerator(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.pipelineFactory == nil {
		o.pipelineFactory = func(ds *model.Dataset, cfg model.AnalysisConfig) *Pipeline {
			return DefaultPipeline(ds, cfg, WithLogger(o.logger))
		}
	}

	return o
}

// Analyze runs the pipeline of a single content field.
//
// It returns a *MissingFieldResultError when the dataset does not carry
// the field. Step failures and panics are returned as a *FieldError; on
// cancellation the partial result is returned with TimedOut set.
func (o *Orchestrator) Analyze(ctx context.Context, ds *model.Dataset, field model.Field, cfg model.AnalysisConfig) (result *model.AnalysisResult, err error) {
	if ds == nil {
		return nil, model.ErrNilDataset
	}
	if !field.IsContent() {
		return nil, fmt.Errorf("%w: %q", model.ErrNotContentField, field)
	}
	if !ds.Has(field) {
		return nil, &MissingFieldResultError{Field: field}
	}

	result = model.NewAnalysisResult(field)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("analysis panicked",
				"field", field,
				"panic", r,
			)
			err = &FieldError{Field: field, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
			result.Error = err
			result.ErrorMessage = err.Error()
		}
	}()

	p := o.pipelineFactory(ds, cfg)
	if execErr := p.Execute(ctx, result); execErr != nil {
		return result, &FieldError{Field: field, Err: execErr}
	}
	return result, nil
}

// Run analyzes every content field requested by the configuration.
//
// The returned RunResult holds one result per successfully analyzed field;
// failed or unrequested fields are nil and failures are listed in
// RunResult.Failures. An invalid configuration or a nil dataset is
// returned as an error. When the context is cancelled, Run returns the
// partial RunResult together with the context error.
func (o *Orchestrator) Run(ctx context.Context, req model.RunRequest) (*model.RunResult, error) {
	if req.Dataset == nil {
		return nil, model.ErrNilDataset
	}
	cfg := req.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	ds := req.Dataset
	startedAt := o.now()
	run := &model.RunResult{
		ID:          o.newID(startedAt),
		GeneratedAt: startedAt,
		Config:      cfg,
		Overview:    ds.Overview(),
	}
	if ds.IsEmpty() {
		run.AddWarning(model.ErrEmptyDataset.Error())
	}

	fields := make([]model.Field, 0, len(model.ContentFields))
	for _, f := range model.ContentFields {
		if cfg.Wants(f) {
			fields = append(fields, f)
		}
	}

	o.logger.Info("starting analysis",
		"run", run.ID,
		"records", ds.Len(),
		"fields", fields,
		"concurrency", cfg.Concurrency,
	)
	startTime := time.Now()

	limit := cfg.Concurrency
	if limit == 0 {
		limit = len(fields)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, field := range fields {
		g.Go(func() error {
			result, err := o.Analyze(gctx, ds, field, cfg)

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				run.SetResult(field, result)
				return nil
			}

			var missing *MissingFieldResultError
			switch {
			case errors.As(err, &missing):
				o.logger.Warn("field skipped", "field", field, "reason", err)
				run.AddWarning(err.Error())
			case result != nil && result.TimedOut:
				o.logger.Warn("field analysis cancelled", "field", field)
				run.SetResult(field, result)
			default:
				o.logger.Error("field analysis failed", "field", field, "error", err)
			}
			run.AddFailure(field, err)

			// The error is recorded in the run result so that the other
			// field keeps going.
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers record their errors in the run result

	slices.SortStableFunc(run.Failures, func(a, b model.FieldFailure) int {
		return cmp.Compare(fieldOrder(a.Field), fieldOrder(b.Field))
	})

	o.logger.Info("analysis complete",
		"fields", fields,
		"failures", len(run.Failures),
		"elapsed", time.Since(startTime),
	)

	if err := ctx.Err(); err != nil {
		return run, err
	}
	return run, nil
}

// fieldOrder returns the canonical position of a field.
func fieldOrder(f model.Field) int {
	return slices.Index(model.AllFields, f)
}
