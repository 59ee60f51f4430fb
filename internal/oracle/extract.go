package oracle

import (
	"encoding/json"
	"strings"
)

const jsonFence = "```json"

// ExtractJSON pulls a JSON payload out of free-form oracle text. A fenced
// code block labeled json wins when present; otherwise the whole text must
// parse. Returns a *ParseError when neither yields valid JSON or the text is
// empty.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Reason: "no textual content"}
	}

	if idx := strings.Index(trimmed, jsonFence); idx >= 0 {
		candidate := trimmed[idx+len(jsonFence):]
		if end := strings.Index(candidate, "```"); end >= 0 {
			candidate = candidate[:end]
		}
		if raw, err := parseJSON(candidate); err == nil {
			return raw, nil
		}
	}

	raw, err := parseJSON(trimmed)
	if err != nil {
		return nil, &ParseError{Reason: "not valid JSON", Err: err}
	}
	return raw, nil
}

func parseJSON(s string) (json.RawMessage, error) {
	s = strings.TrimSpace(s)
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return json.RawMessage(s), nil
}
