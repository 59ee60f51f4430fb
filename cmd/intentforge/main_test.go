package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentforge/internal/config"
	"intentforge/internal/models"
	"intentforge/internal/orchestration"
)

// pinEnv clears the process environment variables the config package reads
// so tests see defaults regardless of the host shell.
func pinEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvModel, "")
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvConcurrency, "")
}

// runCommand executes the root command with the given args and returns the
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAbortErrorDetection(t *testing.T) {
	abort := &orchestration.RunAbortError{
		Job:      models.Job{Action: models.ActionReply, Partition: "train", Index: 3},
		Attempts: 4,
		Err:      errors.New("status 500"),
	}

	tests := []struct {
		name    string
		err     error
		isAbort bool
	}{
		{
			name:    "abort error",
			err:     abort,
			isAbort: true,
		},
		{
			name:    "wrapped abort error",
			err:     fmt.Errorf("partition train: %w", abort),
			isAbort: true,
		},
		{
			name:    "config error",
			err:     errors.New("TOGETHER_API_KEY is not set"),
			isAbort: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var abortErr *orchestration.RunAbortError
			assert.Equal(t, tt.isAbort, errors.As(tt.err, &abortErr))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "intentforge dev\n", output)
}
