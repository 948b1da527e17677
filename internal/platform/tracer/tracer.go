// Package tracer follows each backend call as one span, from request to the
// client's classification of the outcome.
package tracer

import "context"

// Call identifies one request to the backend.
type Call struct {
	Operation string
	Method    string
	Path      string
	RequestID string
}

// SpanName is "api.<operation>".
func (c Call) SpanName() string {
	return SpanPrefixAPI + c.Operation
}

// Span follows one call. End must be called exactly once.
type Span interface {
	// Responded records the HTTP status once response headers arrive.
	Responded(status int)
	// Decoded marks a success body that passed schema validation.
	Decoded()
	// End closes the span. failure is the client's error kind, empty on success.
	End(failure string, err error)
}

// Tracer starts call spans. Implementations must be safe for concurrent use.
type Tracer interface {
	StartCall(ctx context.Context, call Call) (context.Context, Span)
}

const SpanPrefixAPI = "api."

// FailureCanceled is the failure kind of a call abandoned by its caller.
// It is recorded on the span but does not mark it as an error.
const FailureCanceled = "canceled"

// Attribute keys.
const (
	AttrOperation  = "tcis.api.operation"
	AttrRequestID  = "tcis.request_id"
	AttrMethod     = "http.request.method"
	AttrPath       = "url.path"
	AttrStatusCode = "http.response.status_code"
	AttrErrorKind  = "error.type"
)

// EventResponseDecoded is added when a success body validates.
const EventResponseDecoded = "response.decoded"
