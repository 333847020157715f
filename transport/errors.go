package transport

import (
	"fmt"
	"strings"
)

// HTTPError is a non-2xx response with its status and, when the body parsed
// as the backend's error envelope, the embedded message and detail.
type HTTPError struct {
	StatusCode int
	Message    string
	Detail     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// HasMessage reports whether the server supplied a structured message.
func (e *HTTPError) HasMessage() bool {
	return e != nil && strings.TrimSpace(e.Message) != ""
}
