// Package oracle calls the external text-generation service that writes
// scenarios, one request per job, and extracts the JSON payload from its
// free-form answer.
package oracle

import (
	"context"
	"encoding/json"

	"intentforge/internal/models"
)

//go:generate go tool mockgen -source=oracle.go -destination=../orchestration/mock_generator_test.go -package=orchestration

// Generator produces one raw scenario payload per job. Implementations are
// safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, job models.Job) (json.RawMessage, error)
}

// Params are the sampling knobs forwarded verbatim to the completion API.
// Zero values are omitted from the request.
type Params struct {
	Temperature float64 `mapstructure:"temperature" yaml:"temperature,omitempty"`
	TopP        float64 `mapstructure:"top_p" yaml:"top_p,omitempty"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens,omitempty"`
}

// DefaultParams returns the sampling defaults used when a profile sets none.
func DefaultParams() Params {
	return Params{Temperature: 0.8, MaxTokens: 2048}
}
