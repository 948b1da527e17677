package e2e

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"time"

	"tcis/e2e/steps/common"
	"tcis/internal/api"
	"tcis/internal/api/apitest"
	"tcis/internal/navigation"
	"tcis/internal/screens"
	"tcis/internal/session"
	"tcis/pkg/domain"
)

// TestContext holds the client stack one scenario drives: an in-process fake
// backend, the real HTTP client and the screen controllers on top of it.
type TestContext struct {
	ctx     context.Context
	backend *apitest.Backend
	server  *httptest.Server
	client  *api.HTTPClient
	session *session.Store
	nav     *navigation.Navigator
	logger  *slog.Logger

	mu     sync.Mutex
	alerts  []common.Alert
	screen  screens.Screen
	lastErr error
}

// NewTestContext starts a fresh backend for one scenario.
func NewTestContext() (*TestContext, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := apitest.New(apitest.WithLogger(logger))
	server := httptest.NewServer(backend.Router())

	nav, err := navigation.New(domain.RolePolice, navigation.WithLogger(logger))
	if err != nil {
		server.Close()
		return nil, err
	}
	return &TestContext{
		ctx:     context.Background(),
		backend: backend,
		server:  server,
		client:  api.NewHTTPClient(server.URL, api.WithLogger(logger), api.WithTimeout(10*time.Second)),
		session: session.NewStore(session.WithLogger(logger)),
		nav:     nav,
		logger:  logger,
	}, nil
}

// Close unmounts the current screen and stops the backend.
func (tc *TestContext) Close() {
	tc.mu.Lock()
	screen := tc.screen
	tc.mu.Unlock()
	if screen != nil {
		screen.Unmount()
	}
	tc.server.Close()
}

func (tc *TestContext) Context() context.Context         { return tc.ctx }
func (tc *TestContext) Backend() *apitest.Backend        { return tc.backend }
func (tc *TestContext) Navigator() *navigation.Navigator { return tc.nav }
func (tc *TestContext) Session() *session.Store          { return tc.session }

// Deps returns controller dependencies whose alerts are recorded on tc.
func (tc *TestContext) Deps() screens.Deps {
	return screens.Deps{
		API:       tc.client,
		Session:   tc.session,
		Navigator: tc.nav,
		Presenter: tc,
		Logger:    tc.logger,
	}
}

// Alert implements screens.Presenter.
func (tc *TestContext) Alert(title, message string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.alerts = append(tc.alerts, common.Alert{Title: title, Message: message})
}

func (tc *TestContext) Alerts() []common.Alert {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]common.Alert(nil), tc.alerts...)
}

// Show unmounts the previous screen and mounts s.
func (tc *TestContext) Show(s screens.Screen) error {
	tc.mu.Lock()
	prev := tc.screen
	tc.screen = s
	tc.mu.Unlock()
	if prev != nil {
		prev.Unmount()
	}
	return s.Mount(tc.ctx)
}

func (tc *TestContext) Screen() screens.Screen {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.screen
}

// LastError keeps the error of the most recent action for assertion steps.
func (tc *TestContext) LastError() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.lastErr
}

func (tc *TestContext) SetLastError(err error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.lastErr = err
}
