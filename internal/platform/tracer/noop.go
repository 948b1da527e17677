package tracer

import "context"

type discard struct{}

// NewNoop returns a Tracer that drops every span.
func NewNoop() Tracer { return discard{} }

func (discard) StartCall(ctx context.Context, _ Call) (context.Context, Span) {
	return ctx, discard{}
}

func (discard) Responded(int)     {}
func (discard) Decoded()          {}
func (discard) End(string, error) {}
