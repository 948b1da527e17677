package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for API requests.
const (
	OutcomeSuccess     = "success"
	OutcomeApplication = "application_error"
	OutcomeTransport   = "transport_error"
	OutcomeContract    = "contract_error"
	OutcomeCanceled    = "canceled"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	// Navigation metrics
	NavigationTransitions *prometheus.CounterVec
	ActiveSessions        prometheus.Gauge
	// Screen metrics
	AlertsShown      *prometheus.CounterVec
	DiscardedResults *prometheus.CounterVec
	TicketsPrinted   prometheus.Counter
}

// New creates all metrics and registers them with reg. Pass prometheus.DefaultRegisterer
// in binaries and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		APIRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tcis_api_requests_total",
			Help: "Total number of citation API requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		APIRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tcis_api_request_duration_seconds",
			Help:    "Latency of citation API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		NavigationTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tcis_navigation_transitions_total",
			Help: "Total number of navigation graph transitions",
		}, []string{"from", "to"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "tcis_active_sessions",
			Help: "1 while an identity is signed in, 0 otherwise",
		}),
		AlertsShown: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tcis_alerts_total",
			Help: "Total number of blocking alerts shown by title",
		}, []string{"title"}),
		DiscardedResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tcis_discarded_results_total",
			Help: "Results that arrived after their screen was unmounted",
		}, []string{"screen"}),
		TicketsPrinted: f.NewCounter(prometheus.CounterOpts{
			Name: "tcis_tickets_printed_total",
			Help: "Total number of ticket documents sent to the printer",
		}),
	}
}

// ObserveRequest records one completed API request.
func (m *Metrics) ObserveRequest(operation, outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(operation, outcome).Inc()
	m.APIRequestDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordTransition records a navigation transition.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.NavigationTransitions.WithLabelValues(from, to).Inc()
}

// SetSessionActive flips the active session gauge.
func (m *Metrics) SetSessionActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.ActiveSessions.Set(1)
		return
	}
	m.ActiveSessions.Set(0)
}

// RecordAlert records a blocking alert shown to the user.
func (m *Metrics) RecordAlert(title string) {
	if m == nil {
		return
	}
	m.AlertsShown.WithLabelValues(title).Inc()
}

// RecordDiscarded records a result dropped because its screen had gone away.
func (m *Metrics) RecordDiscarded(screen string) {
	if m == nil {
		return
	}
	m.DiscardedResults.WithLabelValues(screen).Inc()
}

// IncrementPrinted records a printed ticket.
func (m *Metrics) IncrementPrinted() {
	if m == nil {
		return
	}
	m.TicketsPrinted.Inc()
}
