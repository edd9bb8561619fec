package orchestration

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gatoreducator/gatorgrade/internal/models"
	"github.com/gatoreducator/gatorgrade/internal/reporting"
	"golang.org/x/sync/errgroup"
)

// ProgressListener receives progress updates. With more than one worker it is
// called from multiple goroutines.
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

const (
	EventCheckStart    EventType = "check_start"
	EventCheckComplete EventType = "check_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType   EventType
	Description string
	CheckNum    int
	TotalChecks int
	// Outcome is only set for [EventCheckComplete].
	Outcome *models.Outcome
}

// Result is what a pipeline run hands to the caller.
type Result struct {
	Report      string
	Summary     models.Summary
	OverallPass bool
}

// Runner drives a batch of check specs through the invoker, the aggregator and
// the report renderer. It keeps no state between runs.
type Runner struct {
	invoker     *Invoker
	workers     int
	textOptions reporting.TextOptions

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets how many checks may run at once. Values below 2 run the
// checks sequentially.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithTextOptions sets the options used to render the report.
func WithTextOptions(opts reporting.TextOptions) RunnerOption {
	return func(r *Runner) {
		r.textOptions = opts
	}
}

// NewRunner creates a Runner that resolves check types with resolver.
func NewRunner(resolver Resolver, opts ...RunnerOption) *Runner {
	r := &Runner{
		invoker: NewInvoker(resolver),
		workers: 1,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run invokes every spec, in order, and returns the rendered report and the
// overall verdict. Every spec produces exactly one outcome, regardless of how
// earlier checks went. An empty batch fails.
func (r *Runner) Run(ctx context.Context, specs []models.CheckSpec) Result {
	var outcomes []models.Outcome
	if r.workers > 1 && len(specs) > 1 {
		outcomes = r.runConcurrent(ctx, specs)
	} else {
		outcomes = r.runSequential(ctx, specs)
	}

	summary := models.Aggregate(outcomes)
	slog.Debug("Checks complete",
		"passed", summary.PassedCount,
		"total", summary.TotalCount,
		"errors", summary.ErrorCount(),
		"durationMs", summary.DurationMs())

	return Result{
		Report:      reporting.RenderText(summary, r.textOptions),
		Summary:     summary,
		OverallPass: summary.OverallPass,
	}
}

func (r *Runner) runSequential(ctx context.Context, specs []models.CheckSpec) []models.Outcome {
	outcomes := make([]models.Outcome, 0, len(specs))
	for i, spec := range specs {
		outcomes = append(outcomes, r.invoke(ctx, spec, i+1, len(specs)))
	}
	return outcomes
}

// runConcurrent runs the checks on a bounded worker pool. Workers only send
// their outcome; this goroutine is the single reducer that puts each one back
// at its submission index.
func (r *Runner) runConcurrent(ctx context.Context, specs []models.CheckSpec) []models.Outcome {
	type indexedOutcome struct {
		index   int
		outcome models.Outcome
	}

	results := make(chan indexedOutcome, len(specs))

	go func() {
		var g errgroup.Group
		g.SetLimit(r.workers)

		for i, spec := range specs {
			g.Go(func() error {
				results <- indexedOutcome{index: i, outcome: r.invoke(ctx, spec, i+1, len(specs))}
				return nil
			})
		}

		_ = g.Wait()
		close(results)
	}()

	outcomes := make([]models.Outcome, len(specs))
	for res := range results {
		outcomes[res.index] = res.outcome
	}
	return outcomes
}

func (r *Runner) invoke(ctx context.Context, spec models.CheckSpec, num, total int) models.Outcome {
	r.notifyProgress(ProgressEvent{
		EventType:   EventCheckStart,
		Description: spec.DisplayName(),
		CheckNum:    num,
		TotalChecks: total,
	})

	outcome := r.invoker.Invoke(ctx, spec)

	r.notifyProgress(ProgressEvent{
		EventType:   EventCheckComplete,
		Description: spec.DisplayName(),
		CheckNum:    num,
		TotalChecks: total,
		Outcome:     &outcome,
	})

	return outcome
}
