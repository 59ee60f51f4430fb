package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"intentforge/internal/models"
	"intentforge/internal/prompts"
)

const chatCompletionsPath = "/v1/chat/completions"

// Config configures the HTTP oracle client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Params  Params

	// Grounding overrides the embedded grounding document when non-empty.
	Grounding string
}

// Client calls an OpenAI-compatible chat-completions endpoint. One request
// per job; retry policy belongs to the scheduler, not the transport.
type Client struct {
	cfg        Config
	grounding  string
	httpClient *http.Client
}

// NewClient builds a client with a connection pool sized for the worker
// count the scheduler runs. Per-request timeouts are intentionally left to
// the transport defaults.
func NewClient(cfg Config) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("oracle: base URL required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("oracle: model required")
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          128,
		MaxIdleConnsPerHost:   128,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	grounding := cfg.Grounding
	if grounding == "" {
		grounding = prompts.Grounding()
	}

	return &Client{
		cfg:        cfg,
		grounding:  grounding,
		httpClient: &http.Client{Transport: tr},
	}, nil
}

// NewClientWithHTTPClient is intended for tests; a custom RoundTripper keeps
// them off the network.
func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

// Generate issues one scenario-generation request for the job and extracts
// the JSON payload from the response text.
func (c *Client) Generate(ctx context.Context, job models.Job) (json.RawMessage, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.GeneratorInstructions},
			{Role: "system", Content: c.grounding},
			{Role: "user", Content: prompts.RenderScenario(job)},
		},
		Temperature: c.cfg.Params.Temperature,
		TopP:        c.cfg.Params.TopP,
		MaxTokens:   c.cfg.Params.MaxTokens,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return nil, fmt.Errorf("encoding oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+chatCompletionsPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("building oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{Reason: "malformed completion envelope", Err: err}
	}

	text := extractChatText(parsed)
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Reason: "no textual content"}
	}
	return ExtractJSON(text)
}

func extractChatText(resp chatResponse) string {
	for _, c := range resp.Choices {
		if strings.TrimSpace(c.Message.Content) != "" {
			return c.Message.Content
		}
		if strings.TrimSpace(c.Text) != "" {
			return c.Text
		}
	}
	return ""
}
