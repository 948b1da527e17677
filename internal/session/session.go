// Package session holds the signed-in identity for the lifetime of one sign-in.
// Nothing here is persisted; a restart always begins signed out.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tcis/internal/platform/metrics"
	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

// Identity is who is signed in, as returned by login or signup.
type Identity struct {
	UserID    domain.UserID
	FirstName string
	LastName  string
	Role      domain.Role
}

// DisplayName is shown in greetings and drawer headers.
func (i Identity) DisplayName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}

// Session is one sign-in. ID correlates log lines of the same sign-in.
type Session struct {
	ID        string
	Identity  Identity
	StartedAt time.Time
}

// Store owns the current session. Begin at login/signup, Clear at logout.
type Store struct {
	mu      sync.RWMutex
	current *Session
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for session lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics used for the active session gauge.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin replaces any current session with a new one for id.
func (s *Store) Begin(id Identity) (Session, error) {
	if id.UserID.IsNil() {
		return Session{}, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if !id.Role.Valid() {
		return Session{}, dErrors.New(dErrors.CodeValidation, "role must be Police or Driver")
	}

	sess := Session{ID: uuid.NewString(), Identity: id, StartedAt: s.now()}
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.metrics.SetSessionActive(true)
	s.logger.Info("session started",
		"session_id", sess.ID,
		"user_id", id.UserID,
		"role", id.Role.String(),
	)
	return sess, nil
}

// Clear ends the current session. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	s.ended(prev, "session ended")
}

// Abandon ends the session only while sessionID is still the current one. A sign-in
// whose navigation failed uses it to undo its own Begin without touching a newer session.
func (s *Store) Abandon(sessionID string) {
	s.mu.Lock()
	var prev *Session
	if s.current != nil && s.current.ID == sessionID {
		prev, s.current = s.current, nil
	}
	s.mu.Unlock()

	s.ended(prev, "session abandoned")
}

func (s *Store) ended(prev *Session, msg string) {
	if prev == nil {
		return
	}
	s.metrics.SetSessionActive(false)
	s.logger.Info(msg,
		"session_id", prev.ID,
		"user_id", prev.Identity.UserID,
		"duration_ms", s.now().Sub(prev.StartedAt).Milliseconds(),
	)
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Identity returns the signed-in identity or a CodeNoSession error.
func (s *Store) Identity() (Identity, error) {
	sess, ok := s.Current()
	if !ok {
		return Identity{}, dErrors.New(dErrors.CodeNoSession, "not signed in")
	}
	return sess.Identity, nil
}

// Update replaces the display names after a profile save. Role and user id never change.
func (s *Store) Update(firstName, lastName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current.Identity.FirstName = firstName
	s.current.Identity.LastName = lastName
}
