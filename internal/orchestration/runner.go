package orchestration

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"intentforge/internal/models"
	"intentforge/internal/oracle"
	"intentforge/internal/validation"
)

// Default runner settings. Jobs are oracle round trips that spend most of
// their time waiting on the network, so the worker count is deliberately
// high.
const (
	DefaultWorkers     = 100
	DefaultMaxAttempts = 4
	DefaultRetryDelay  = 2 * time.Second
)

// Runner drives a partition's jobs through the oracle concurrently and
// validates every response before accepting it.
type Runner struct {
	generator oracle.Generator

	workers     int
	maxAttempts int
	retryDelay  time.Duration

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart      EventType = "run_start"
	EventRunComplete   EventType = "run_complete"
	EventRunAborted    EventType = "run_aborted"
	EventJobComplete   EventType = "job_complete"
	EventAttemptFailed EventType = "attempt_failed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType EventType
	JobID     string
	Action    models.Action
	Completed int
	Total     int
	Attempt   int
	Err       error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithMaxAttempts caps how many times a job is tried before the run aborts.
func WithMaxAttempts(n int) RunnerOption {
	return func(r *Runner) {
		r.maxAttempts = n
	}
}

// WithRetryDelay sets the base delay between attempts. The wait after a
// failed attempt n is n times this value.
func WithRetryDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.retryDelay = d
	}
}

// NewRunner creates a new runner
func NewRunner(generator oracle.Generator, opts ...RunnerOption) *Runner {
	r := &Runner{
		generator:   generator,
		workers:     DefaultWorkers,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		listeners:   []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	if r.maxAttempts < 1 {
		r.maxAttempts = 1
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

// Run generates and validates one scenario per job. Workers claim jobs from
// a shared cursor, but each result lands at its job's slot, so the returned
// slice is in job order no matter which worker finished first. The first job
// to exhaust its attempt budget cancels the rest of the run and Run reports
// it as a *RunAbortError.
func (r *Runner) Run(ctx context.Context, jobs []models.Job) ([]models.Scenario, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	r.notifyProgress(ProgressEvent{EventType: EventRunStart, Total: len(jobs)})

	results := make([]models.Scenario, len(jobs))

	var cursor atomic.Int64
	var completed atomic.Int64

	workers := r.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				idx := int(cursor.Add(1) - 1)
				if idx >= len(jobs) {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}

				scenario, err := r.runJob(gctx, jobs[idx])
				if err != nil {
					return err
				}
				results[idx] = scenario

				r.notifyProgress(ProgressEvent{
					EventType: EventJobComplete,
					JobID:     jobs[idx].ID(),
					Action:    jobs[idx].Action,
					Completed: int(completed.Add(1)),
					Total:     len(jobs),
				})
			}
		})
	}

	if err := g.Wait(); err != nil {
		r.notifyProgress(ProgressEvent{EventType: EventRunAborted, Total: len(jobs), Err: err})
		return nil, err
	}

	r.notifyProgress(ProgressEvent{EventType: EventRunComplete, Completed: len(jobs), Total: len(jobs)})
	return results, nil
}

// runJob tries a single job until it yields a valid scenario or the attempt
// budget runs out, waiting longer after each failure.
func (r *Runner) runJob(ctx context.Context, job models.Job) (models.Scenario, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		raw, err := r.generator.Generate(ctx, job)
		if err == nil {
			var scenario models.Scenario
			scenario, err = validation.Validate(job, raw)
			if err == nil {
				return scenario, nil
			}
		}
		lastErr = err

		// A sibling worker aborting the run cancels the context; the failure
		// above is fallout from that, not this job's own.
		if ctx.Err() != nil {
			return models.Scenario{}, ctx.Err()
		}

		slog.Warn("job attempt failed",
			"job", job.ID(),
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"error", err)
		r.notifyProgress(ProgressEvent{
			EventType: EventAttemptFailed,
			JobID:     job.ID(),
			Action:    job.Action,
			Attempt:   attempt,
			Err:       err,
		})

		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return models.Scenario{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * r.retryDelay):
		}
	}

	return models.Scenario{}, &RunAbortError{Job: job, Attempts: r.maxAttempts, Err: lastErr}
}
