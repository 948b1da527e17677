// Package api is the client side of the citation backend contract: one typed method
// per endpoint, each issuing exactly one request. Nothing is retried, cached or queued.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"

	"tcis/internal/api/models"
	"tcis/internal/platform/metrics"
	"tcis/internal/platform/tracer"
	"tcis/pkg/domain"
)

// Client is the full set of operations the screens rely on.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
	Logout(ctx context.Context) error

	ActiveTickets(ctx context.Context, userID domain.UserID) ([]models.Ticket, error)
	AddTicket(ctx context.Context, ticket models.NewTicket) error
	Violations(ctx context.Context) ([]models.Violation, error)
	Drivers(ctx context.Context) ([]models.User, error)
	SearchTickets(ctx context.Context, start, end domain.Date) ([]models.Ticket, error)
	IssuedTickets(ctx context.Context, userID domain.UserID) ([]models.Ticket, error)
	TicketFine(ctx context.Context, ticketID string) (*models.TicketFine, error)

	SubmitDispute(ctx context.Context, req models.DisputeRequest) (*models.DisputeReceipt, error)
	Disputes(ctx context.Context, userID domain.UserID) ([]models.Dispute, error)

	AddPayment(ctx context.Context, req models.PaymentRequest) error

	Profile(ctx context.Context, userID domain.UserID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID domain.UserID, update models.ProfileUpdate) (*models.Profile, error)

	PoliceCounts(ctx context.Context, userID domain.UserID) (*models.TicketCounts, error)
	RecentActivity(ctx context.Context, userID domain.UserID) ([]models.Activity, error)
}

// DefaultUserAgent identifies the client to the backend.
const DefaultUserAgent = "tcis/1.0"

// HTTPClient implements Client against the backend's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
	requestID  func() string
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (tests use httptest servers' clients).
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the logger instance for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics instance for the client.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// WithTracer sets the tracer used for per-operation spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *HTTPClient) {
		c.tracer = t
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithRequestIDFunc overrides the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *HTTPClient) {
		c.requestID = fn
	}
}

// NewHTTPClient creates a client rooted at baseURL (no trailing slash).
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		logger:     slog.New(slog.DiscardHandler),
		tracer:     tracer.NewNoop(),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one request/response pair.
type call struct {
	operation   string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// success lists accepted status codes; nil accepts any response.
	success []int
	// decode parses and validates the success body; nil ignores it.
	decode func(body []byte) error
}

var (
	statusOK      = []int{http.StatusOK}
	statusCreated = []int{http.StatusCreated}
	statusOKOrNew = []int{http.StatusOK, http.StatusCreated}
)

// jsonCall builds a call with a JSON-encoded body.
func jsonCall(operation, method, path string, payload any, success []int) (call, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return call{}, &Error{Operation: operation, Kind: KindContract, Message: "failed to marshal request", Err: err}
	}
	return call{
		operation:   operation,
		method:      method,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
		success:     success,
	}, nil
}

// do executes c and classifies the outcome. It never retries.
func (c *HTTPClient) do(ctx context.Context, cl call) (err error) {
	requestID := c.requestID()
	start := time.Now()

	ctx, span := c.tracer.StartCall(ctx, tracer.Call{
		Operation: cl.operation,
		Method:    cl.method,
		Path:      cl.path,
		RequestID: requestID,
	})
	defer func() {
		var failure string
		if err != nil {
			failure = string(KindOf(err))
		}
		span.End(failure, err)
		c.metrics.ObserveRequest(cl.operation, outcomeFor(err), time.Since(start).Seconds())
	}()

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		return &Error{Operation: cl.operation, Kind: KindContract, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &Error{Operation: cl.operation, Kind: classifyTransport(ctx, err), Err: err}
		c.logger.WarnContext(ctx, "api request failed",
			"operation", cl.operation,
			"request_id", requestID,
			"kind", apiErr.Kind,
			"error", err,
		)
		return apiErr
	}
	defer resp.Body.Close()

	span.Responded(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Operation: cl.operation, Kind: classifyTransport(ctx, err), Status: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	if cl.success != nil && !slices.Contains(cl.success, resp.StatusCode) {
		message, fields := parseErrorBody(body)
		c.logger.InfoContext(ctx, "api request rejected",
			"operation", cl.operation,
			"request_id", requestID,
			"status", resp.StatusCode,
			"message", message,
		)
		return &Error{
			Operation: cl.operation,
			Kind:      KindApplication,
			Status:    resp.StatusCode,
			Message:   message,
			Fields:    fields,
		}
	}

	if cl.decode != nil {
		if err := cl.decode(body); err != nil {
			c.logger.WarnContext(ctx, "api response did not match schema",
				"operation", cl.operation,
				"request_id", requestID,
				"status", resp.StatusCode,
				"error", err,
			)
			return &Error{Operation: cl.operation, Kind: KindContract, Status: resp.StatusCode, Message: "unexpected response", Err: err}
		}
		span.Decoded()
	}

	c.logger.DebugContext(ctx, "api request completed",
		"operation", cl.operation,
		"request_id", requestID,
		"status", resp.StatusCode,
	)
	return nil
}

func classifyTransport(ctx context.Context, err error) Kind {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return KindCanceled
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch KindOf(err) {
	case KindApplication:
		return metrics.OutcomeApplication
	case KindContract:
		return metrics.OutcomeContract
	case KindCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeTransport
	}
}

// path joins a route prefix and an identifier with the backend's trailing slash.
func path(prefix string, id fmt.Stringer) string {
	return prefix + url.PathEscape(id.String()) + "/"
}
