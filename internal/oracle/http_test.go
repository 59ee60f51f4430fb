package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentforge/internal/models"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func testJob() models.Job {
	return models.Job{
		Action:      models.ActionUpdateTask,
		Partition:   "train",
		Theme:       "contractor follow-up",
		Index:       2,
		GlobalIndex: 17,
		Style:       "casual",
	}
}

func chatOK(content string) *http.Response {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripperFunc) *Client {
	t.Helper()
	c, err := NewClientWithHTTPClient(Config{
		BaseURL: "http://oracle",
		APIKey:  "key-123",
		Model:   "deepseek-ai/DeepSeek-V3",
		Params:  Params{Temperature: 0.8, MaxTokens: 2048},
	}, &http.Client{Transport: rt})
	require.NoError(t, err)
	return c
}

func TestClientGenerateSendsPrimedRequest(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/v1/chat/completions", req.URL.Path)
		assert.Equal(t, "Bearer key-123", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		var parsed chatRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&parsed))
		assert.Equal(t, "deepseek-ai/DeepSeek-V3", parsed.Model)
		assert.InDelta(t, 0.8, parsed.Temperature, 1e-9)
		assert.Equal(t, 2048, parsed.MaxTokens)

		require.Len(t, parsed.Messages, 3)
		assert.Equal(t, "system", parsed.Messages[0].Role)
		assert.Equal(t, "system", parsed.Messages[1].Role)
		assert.Equal(t, "user", parsed.Messages[2].Role)
		assert.Contains(t, parsed.Messages[1].Content, "Task ledger")
		assert.Contains(t, parsed.Messages[2].Content, "contractor follow-up")
		assert.Contains(t, parsed.Messages[2].Content, "update_task")

		return chatOK("```json\n{\"user\":\"hey\"}\n```"), nil
	})

	raw, err := client.Generate(context.Background(), testJob())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"hey"}`, string(raw))
}

func TestClientGenerateTransportErrorStatus(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(bytes.NewReader([]byte(`{"error":"rate limited"}`))),
		}, nil
	})

	_, err := client.Generate(context.Background(), testJob())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusTooManyRequests, transportErr.StatusCode)
	assert.Contains(t, transportErr.Body, "rate limited")
}

func TestClientGenerateTransportErrorNetwork(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})

	_, err := client.Generate(context.Background(), testJob())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.StatusCode)
	assert.Contains(t, transportErr.Error(), "connection refused")
}

func TestClientGenerateNoContent(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return chatOK(""), nil
	})

	_, err := client.Generate(context.Background(), testJob())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "no textual content")
}

func TestClientGenerateNonJSONContent(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return chatOK("I will not produce JSON today."), nil
	})

	_, err := client.Generate(context.Background(), testJob())
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestClientGenerateLegacyTextChoice(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{{"text": `{"user":"legacy"}`}},
		})
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(body)),
		}, nil
	})

	raw, err := client.Generate(context.Background(), testJob())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"legacy"}`, string(raw))
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{Model: "m"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://oracle"})
	assert.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://oracle/", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "http://oracle", c.cfg.BaseURL)
}
