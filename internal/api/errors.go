package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an API operation failed.
type Kind string

const (
	// KindTransport means the request never produced an HTTP response.
	KindTransport Kind = "transport"
	// KindTimeout means the request exceeded its deadline.
	KindTimeout Kind = "timeout"
	// KindCanceled means the caller's context was canceled (screen unmounted).
	KindCanceled Kind = "canceled"
	// KindApplication means the backend answered with a non-success status.
	KindApplication Kind = "application"
	// KindContract means a success body did not match the endpoint schema.
	KindContract Kind = "contract"
)

// Error is the single error type returned by Client operations.
type Error struct {
	Operation string
	Kind      Kind
	// Status is the HTTP status code, zero for transport failures.
	Status int
	// Message is the text extracted from an application error body, or a
	// client-side note for other kinds.
	Message string
	// Fields holds per-field messages from validation-style error bodies
	// such as {"username": ["A user with that username already exists."]}.
	Fields map[string][]string
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api %s [%s", e.Operation, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " %d", e.Status)
	}
	b.WriteString("]")
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

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind, or "" for errors that did not come from the client.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf extracts the HTTP status of an application error, or zero.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Message returns the text the backend put in an error body, or fallback.
// Only application errors carry backend text; the client's own notes on
// transport and contract failures are for logs, not for the user.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindApplication && e.Message != "" {
		return e.Message
	}
	return fallback
}

// FieldError returns the first message the backend attached to field.
func FieldError(err error, field string) (string, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	msgs, ok := e.Fields[field]
	if !ok {
		return "", false
	}
	if len(msgs) == 0 {
		return "", true
	}
	return msgs[0], true
}

// IsUsernameTaken reports whether a signup failed on the username field.
func IsUsernameTaken(err error) bool {
	_, ok := FieldError(err, "username")
	return ok && StatusOf(err) != 0
}

// messageKeys are checked in order; the first string value wins.
var messageKeys = []string{"error", "message", "detail"}

// parseErrorBody pulls a message and per-field errors out of an error response.
// Bodies that are not JSON objects yield nothing; the caller falls back to a generic string.
func parseErrorBody(body []byte) (string, map[string][]string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil
	}

	var message string
	for _, key := range messageKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			message = s
			break
		}
	}

	var fields map[string][]string
	for k, v := range raw {
		if k == "error" || k == "message" || k == "detail" {
			continue
		}
		var list []string
		if json.Unmarshal(v, &list) != nil {
			var single string
			if json.Unmarshal(v, &single) != nil {
				continue
			}
			list = []string{single}
		}
		if fields == nil {
			fields = make(map[string][]string)
		}
		fields[k] = list
	}
	return message, fields
}
