// Package config resolves run settings from explicit options, the
// environment, and built-in defaults, and loads the optional
// intentforge.yaml generation profile.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvAPIKey      = "TOGETHER_API_KEY"
	EnvModel       = "INTENTFORGE_MODEL"
	EnvConcurrency = "INTENTFORGE_CONCURRENCY"
	EnvBaseURL     = "INTENTFORGE_BASE_URL"
)

// Default values for run settings. These are the single source of truth;
// New() references them and no other code should duplicate them.
const (
	DefaultModel       = "deepseek-ai/DeepSeek-V3"
	DefaultBaseURL     = "https://api.together.xyz"
	DefaultConcurrency = 100
	DefaultTotalRows   = 4000
)

// Config carries the resolved settings for one invocation. Values set by
// options win over the environment, which wins over defaults.
type Config struct {
	apiKey      string
	model       string
	baseURL     string
	concurrency int

	lookupEnv func(string) (string, bool)
}

// Option configures a Config.
type Option func(*Config)

// WithModel sets the oracle model id.
func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

// WithBaseURL sets the oracle endpoint base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.baseURL = url
	}
}

// WithConcurrency sets the worker count.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		c.concurrency = n
	}
}

// WithAPIKey sets the oracle credential.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.apiKey = key
	}
}

// WithLookupEnv replaces the environment lookup, for tests.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *Config) {
		c.lookupEnv = fn
	}
}

// New builds a Config from options, filling unset values from the
// environment and then from defaults. A zero-value option setting is
// treated as unset.
func New(opts ...Option) (*Config, error) {
	c := &Config{lookupEnv: os.LookupEnv}
	for _, o := range opts {
		if o == nil {
			panic("config: nil Option")
		}
		o(c)
	}

	if c.apiKey == "" {
		if v, ok := c.lookupEnv(EnvAPIKey); ok {
			c.apiKey = v
		}
	}
	if c.model == "" {
		if v, ok := c.lookupEnv(EnvModel); ok && v != "" {
			c.model = v
		} else {
			c.model = DefaultModel
		}
	}
	if c.baseURL == "" {
		if v, ok := c.lookupEnv(EnvBaseURL); ok && v != "" {
			c.baseURL = v
		} else {
			c.baseURL = DefaultBaseURL
		}
	}
	if c.concurrency == 0 {
		if v, ok := c.lookupEnv(EnvConcurrency); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvConcurrency, v)
			}
			c.concurrency = n
		} else {
			c.concurrency = DefaultConcurrency
		}
	}
	if c.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", c.concurrency)
	}

	return c, nil
}

// APIKey returns the oracle credential, possibly empty.
func (c *Config) APIKey() string { return c.apiKey }

// Model returns the oracle model id.
func (c *Config) Model() string { return c.model }

// BaseURL returns the oracle endpoint base URL.
func (c *Config) BaseURL() string { return c.baseURL }

// Concurrency returns the worker count.
func (c *Config) Concurrency() int { return c.concurrency }

// RequireAPIKey returns a configuration error when no oracle credential is
// present. Callers treat this as fatal before any job is built.
func (c *Config) RequireAPIKey() error {
	if c.apiKey == "" {
		return fmt.Errorf("%s is not set: an oracle credential is required", EnvAPIKey)
	}
	return nil
}
