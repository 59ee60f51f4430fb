package validation

import "fmt"

// ValidationError reports a structural or grammar violation in an extracted
// payload. It is attempt-scoped: the scheduler retries the job.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid payload: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func errorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
