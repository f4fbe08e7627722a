package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the playback pipeline.
type Metrics struct {
	registry             *prometheus.Registry
	requestsTotal        prometheus.Counter
	errorsTotal          prometheus.Counter
	sessionsStartedTotal prometheus.Counter
	sessionsEndedTotal   prometheus.Counter
	segmentsFetchedTotal prometheus.Counter
	segmentBytesTotal    prometheus.Counter
	fetchErrorsTotal     prometheus.Counter
	activeSessions       prometheus.Gauge
}

// New creates and registers Prometheus metrics for the player.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	sessionsStartedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_sessions_started_total",
		Help: "Total number of playback sessions started",
	})
	sessionsEndedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_sessions_ended_total",
		Help: "Total number of playback sessions ended",
	})
	segmentsFetchedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_segments_fetched_total",
		Help: "Total number of media segments fetched and buffered",
	})
	segmentBytesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_segment_bytes_total",
		Help: "Total segment payload bytes fetched",
	})
	fetchErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "player_fetch_errors_total",
		Help: "Total number of failed segment batch fetches",
	})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "player_active_sessions",
		Help: "Number of registered playback sessions",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		sessionsStartedTotal,
		sessionsEndedTotal,
		segmentsFetchedTotal,
		segmentBytesTotal,
		fetchErrorsTotal,
		activeSessions,
	)

	return &Metrics{
		registry:             registry,
		requestsTotal:        requestsTotal,
		errorsTotal:          errorsTotal,
		sessionsStartedTotal: sessionsStartedTotal,
		sessionsEndedTotal:   sessionsEndedTotal,
		segmentsFetchedTotal: segmentsFetchedTotal,
		segmentBytesTotal:    segmentBytesTotal,
		fetchErrorsTotal:     fetchErrorsTotal,
		activeSessions:       activeSessions,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the HTTP error counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncSessionsStarted increments the sessions started counter.
func (m *Metrics) IncSessionsStarted() {
	m.sessionsStartedTotal.Inc()
}

// IncSessionsEnded increments the sessions ended counter.
func (m *Metrics) IncSessionsEnded() {
	m.sessionsEndedTotal.Inc()
}

// AddSegmentsFetched records a successfully buffered batch of n segments
// totalling bytes payload bytes.
func (m *Metrics) AddSegmentsFetched(n, bytes int) {
	m.segmentsFetchedTotal.Add(float64(n))
	m.segmentBytesTotal.Add(float64(bytes))
}

// IncFetchErrors increments the failed batch counter.
func (m *Metrics) IncFetchErrors() {
	m.fetchErrorsTotal.Inc()
}

// SetActiveSessions sets the active sessions gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g.
// active sessions).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
