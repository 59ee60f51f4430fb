package orchestration

import (
	"fmt"

	"intentforge/internal/models"
)

// RunAbortError reports a job that exhausted its attempt budget. One aborted
// job fails the whole partition: no partial dataset is written for the run.
type RunAbortError struct {
	Job      models.Job
	Attempts int
	Err      error
}

func (e *RunAbortError) Error() string {
	return fmt.Sprintf("aborting run: job %s failed after %d attempts: %v", e.Job.ID(), e.Attempts, e.Err)
}

func (e *RunAbortError) Unwrap() error {
	return e.Err
}
