package tracer

import (
	"context"
	"sync"
)

// FinishedCall is what a Recorder keeps of one ended span.
type FinishedCall struct {
	Call    Call
	Status  int
	Decoded bool
	Failure string
	Err     error
}

// Recorder keeps ended calls in memory for assertions in tests.
type Recorder struct {
	mu       sync.Mutex
	finished []FinishedCall
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) StartCall(ctx context.Context, call Call) (context.Context, Span) {
	return ctx, &recordedSpan{rec: r, data: FinishedCall{Call: call}}
}

// Finished returns the ended calls in end order.
func (r *Recorder) Finished() []FinishedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FinishedCall(nil), r.finished...)
}

type recordedSpan struct {
	rec  *Recorder
	data FinishedCall
}

func (s *recordedSpan) Responded(status int) { s.data.Status = status }
func (s *recordedSpan) Decoded()             { s.data.Decoded = true }

func (s *recordedSpan) End(failure string, err error) {
	s.data.Failure, s.data.Err = failure, err
	s.rec.mu.Lock()
	s.rec.finished = append(s.rec.finished, s.data)
	s.rec.mu.Unlock()
}
