package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/seoaudit/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the result
// accumulated by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// It fills its own tables of the result and must not modify tables
	// written by other steps.
	Do(ctx context.Context, result *model.AnalysisResult) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs the analysis steps of one content field in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. The last error is recorded in the result.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
//
// The context is checked before each step. On cancellation the result is
// marked as timed out and the tables of completed steps are left as they
// are. Cancellation always stops the pipeline, regardless of
// continueOnError.
func (p *Pipeline) Execute(ctx context.Context, result *model.AnalysisResult) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"field", result.Field,
				"reason", ctx.Err(),
			)
			result.TimedOut = true
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"field", result.Field,
		)

		if err := step.Do(ctx, result); err != nil {
			if isCancellation(err) {
				p.logger.Warn("step cancelled",
					"step", step.Name(),
					"field", result.Field,
					"reason", err,
				)
				result.TimedOut = true
				return err
			}

			p.logger.Error("step failed",
				"step", step.Name(),
				"field", result.Field,
				"error", err,
			)

			result.Error = err
			result.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
			continue
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"field", result.Field,
		)
		result.PerformedSteps = append(result.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// isCancellation reports whether err comes from a done context.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
