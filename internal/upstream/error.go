package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// BodyKind classifies an upstream error response body. The backend
// sometimes returns a plain message string, sometimes a structured JSON
// document, and on network failure nothing at all; handlers pattern-match
// on this instead of probing the raw bytes.
type BodyKind int

const (
	// BodyNone means no usable body (network failure or empty response).
	BodyNone BodyKind = iota

	// BodyPlain means the body is a plain message string, safe to show
	// to the user verbatim.
	BodyPlain

	// BodyStructured means the body is a JSON document. Handlers fall
	// back to a localized generic message.
	BodyStructured
)

// Error is a failed upstream call: either a non-2xx response or no
// response at all (Status 0).
type Error struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Kind classifies Body.
	Kind BodyKind

	// Plain is the message text when Kind is BodyPlain.
	Plain string

	// Raw is the unparsed response body, kept for logging.
	Raw []byte
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return "upstream unreachable"
	}
	if e.Kind == BodyPlain {
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Plain)
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

// Unauthorized reports whether the upstream rejected the session cookie.
// Callers must treat the local session as stale and prompt re-login.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Message returns the upstream's own message when the body was a plain
// string, and the given fallback otherwise. This is the deliberate
// pass-through: the upstream's text is trusted and displayed directly.
func (e *Error) Message(fallback string) string {
	if e.Kind == BodyPlain && e.Plain != "" {
		return e.Plain
	}
	return fallback
}

// newError builds an *Error from a non-2xx response body.
func newError(status int, body []byte) *Error {
	kind, plain := classifyBody(body)
	return &Error{Status: status, Kind: kind, Plain: plain, Raw: body}
}

// classifyBody decides whether a response body is a plain message string
// or a structured document. A JSON-encoded string counts as plain (the
// backend serializes bare messages that way); objects and arrays are
// structured; anything that isn't JSON is taken as raw text.
func classifyBody(body []byte) (BodyKind, string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return BodyNone, ""
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return BodyPlain, trimmed
	}
	if s, ok := decoded.(string); ok {
		return BodyPlain, s
	}
	return BodyStructured, ""
}
