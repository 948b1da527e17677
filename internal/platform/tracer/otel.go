package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer taken from the global provider.
const InstrumentationName = "tcis/api"

// OTelTracer emits one client-kind span per backend call.
type OTelTracer struct {
	tracer trace.Tracer
}

// OTelOption configures the OTelTracer.
type OTelOption func(*OTelTracer)

// WithOTelTracer injects a pre-configured OpenTelemetry tracer.
func WithOTelTracer(t trace.Tracer) OTelOption {
	return func(o *OTelTracer) {
		o.tracer = t
	}
}

// NewOTel uses the global provider unless a tracer is injected.
func NewOTel(opts ...OTelOption) *OTelTracer {
	t := &OTelTracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer(InstrumentationName)
	}
	return t
}

func (t *OTelTracer) StartCall(ctx context.Context, call Call) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, call.SpanName(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrOperation, call.Operation),
			attribute.String(AttrMethod, call.Method),
			attribute.String(AttrPath, call.Path),
			attribute.String(AttrRequestID, call.RequestID),
		),
	)
	return ctx, &callSpan{span: span}
}

type callSpan struct {
	span trace.Span
}

func (s *callSpan) Responded(status int) {
	s.span.SetAttributes(attribute.Int(AttrStatusCode, status))
}

func (s *callSpan) Decoded() {
	s.span.AddEvent(EventResponseDecoded)
}

// End maps the client's failure kind onto the span status. Canceled calls keep
// an unset status; every other failure is an error whose description is the kind.
func (s *callSpan) End(failure string, err error) {
	switch {
	case failure == "":
		s.span.SetStatus(codes.Ok, "")
	case failure == FailureCanceled:
		s.span.SetAttributes(attribute.String(AttrErrorKind, failure))
	default:
		s.span.SetAttributes(attribute.String(AttrErrorKind, failure))
		if err != nil {
			s.span.RecordError(err)
		}
		s.span.SetStatus(codes.Error, failure)
	}
	s.span.End()
}
