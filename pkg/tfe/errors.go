package tfe

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the typed remote-call failure returned by every client method.
// It keeps the HTTP status and the API's own error text so callers can
// build a single user-facing message without losing the diagnostic payload.
type Error struct {
	// Op is the method and path of the failed call, e.g. "GET /api/v2/organizations".
	Op string

	// Status is the HTTP status code, or 0 for transport-level failures.
	Status int

	// Message is the error text reported by the API.
	Message string

	// Err is the underlying transport error, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": %d %s", e.Status, http.StatusText(e.Status))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// errorDocument is the JSON:API error envelope.
type errorDocument struct {
	Errors []struct {
		Status string `json:"status"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func errorFromResponse(op string, status int, body []byte) *Error {
	apiErr := &Error{Op: op, Status: status}

	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
		parts := make([]string, 0, len(doc.Errors))
		for _, e := range doc.Errors {
			msg := e.Title
			if e.Detail != "" {
				if msg != "" {
					msg += ": "
				}
				msg += e.Detail
			}
			if msg != "" {
				parts = append(parts, msg)
			}
		}
		apiErr.Message = strings.Join(parts, "; ")
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}
