// Package screens holds one controller per screen. A controller owns the screen's form
// and display state, fetches on Mount, submits through the API client and reports
// failures as blocking alerts through a Presenter. Results that arrive after Unmount
// are dropped.
package screens

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tcis/internal/api"
	"tcis/internal/navigation"
	"tcis/internal/platform/metrics"
	"tcis/internal/printing"
	"tcis/internal/session"
	dErrors "tcis/pkg/domain-errors"
)

// Presenter shows a blocking alert to the user.
type Presenter interface {
	Alert(title, message string)
}

// Screen is the lifecycle every controller shares.
type Screen interface {
	// Mount starts the screen's lifetime and runs its initial fetch, if any.
	Mount(ctx context.Context) error
	// Unmount cancels in-flight requests; their results are discarded.
	Unmount()
}

// Alert titles.
const (
	TitleError            = "Error"
	TitleSuccess          = "Success"
	TitleLoginFailed      = "Login Failed"
	TitleSignupError      = "Signup Error"
	TitleDisputeSubmitted = "Dispute Submitted"
	TitleLoggedOut        = "Logged Out"
)

// Deps are the collaborators shared by all controllers.
type Deps struct {
	API       api.Client
	Session   *session.Store
	Navigator *navigation.Navigator
	Presenter Presenter
	Printer   printing.Printer
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

var errUnmounted = dErrors.New(dErrors.CodeUnmounted, "screen is not mounted")

// base carries the lifetime, busy flag and alert plumbing every controller embeds.
// mu also guards the embedding controller's state.
type base struct {
	name navigation.Screen
	deps Deps

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	busy   bool
}

func newBase(name navigation.Screen, deps Deps) base {
	return base{name: name, deps: deps.withDefaults()}
}

// start begins a new lifetime, ending any previous one.
func (b *base) start(parent context.Context) context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
	b.ctx, b.cancel = context.WithCancel(parent)
	return b.ctx
}

// Unmount ends the lifetime. Calling it twice is harmless.
func (b *base) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}

// Mounted reports whether the screen has a live lifetime.
func (b *base) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx != nil && b.ctx.Err() == nil
}

// Busy reports whether a submission is in flight.
func (b *base) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

func (b *base) lifetime() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil || b.ctx.Err() != nil {
		return nil, errUnmounted
	}
	return b.ctx, nil
}

// acquire marks the screen busy for one submission.
func (b *base) acquire() (context.Context, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil || b.ctx.Err() != nil {
		return nil, nil, errUnmounted
	}
	if b.busy {
		return nil, nil, dErrors.New(dErrors.CodeBusy, "a submission is already in progress")
	}
	b.busy = true
	return b.ctx, func() {
		b.mu.Lock()
		b.busy = false
		b.mu.Unlock()
	}, nil
}

// discarded reports whether a result must be dropped because the screen went away.
func (b *base) discarded(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	b.deps.Metrics.RecordDiscarded(string(b.name))
	b.deps.Logger.Debug("discarding result of unmounted screen", "screen", string(b.name))
	return true
}

func (b *base) alert(title, message string) {
	b.deps.Metrics.RecordAlert(title)
	if b.deps.Presenter != nil {
		b.deps.Presenter.Alert(title, message)
	}
}

// invalid alerts a local validation failure and returns it as a CodeValidation error.
func (b *base) invalid(message string) error {
	b.alert(TitleError, message)
	return dErrors.New(dErrors.CodeValidation, message)
}

// swallow logs a failure the screen deliberately does not show.
func (b *base) swallow(ctx context.Context, operation string, err error) {
	b.deps.Logger.WarnContext(ctx, "request failed",
		"screen", string(b.name),
		"operation", operation,
		"error", err,
	)
}

func (b *base) identity() (session.Identity, error) {
	if b.deps.Session == nil {
		return session.Identity{}, dErrors.New(dErrors.CodeNoSession, "not signed in")
	}
	return b.deps.Session.Identity()
}
