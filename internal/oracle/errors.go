package oracle

import (
	"fmt"
	"strings"
)

// TransportError reports an oracle call that failed at the network or HTTP
// layer. StatusCode and Body are set when the service answered with a
// non-success status; Err is set when the request never produced a response.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle request failed: %v", e.Err)
	}
	body := strings.TrimSpace(e.Body)
	if len(body) > 240 {
		body = body[:240] + "..."
	}
	return fmt.Sprintf("oracle returned HTTP %d: %s", e.StatusCode, body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports an oracle response whose text carried no extractable
// JSON payload, or no text at all.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("oracle response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
