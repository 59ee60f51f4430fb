package main

import (
	"errors"
	"fmt"
	"os"

	"intentforge/internal/orchestration"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Run completed, artifacts written
	ExitAborted = 1 // A job exhausted its attempt budget and the run aborted
	ExitError   = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var abortErr *orchestration.RunAbortError
		if errors.As(err, &abortErr) {
			os.Exit(ExitAborted)
		}

		os.Exit(ExitError)
	}
}
