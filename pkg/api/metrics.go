package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API. A nil *Metrics records nothing.
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Analysis metrics
	analysesTotal        *prometheus.CounterVec
	charactersAnalyzed   prometheus.Counter
	unrepresentableChars prometheus.Counter
	misreadsTotal        *prometheus.CounterVec
	inputLimitRejections prometheus.Counter

	// Tutor metrics
	tutorRequestsTotal   *prometheus.CounterVec
	tutorRequestDuration prometheus.Histogram

	// Snippet store metrics
	snippetOperationsTotal *prometheus.CounterVec

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg.
// A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		// HTTP request metrics
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mojilens_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mojilens_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Analysis metrics
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_analyses_total",
				Help: "Total number of analysis operations",
			},
			[]string{"operation"},
		),

		charactersAnalyzed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mojilens_characters_analyzed_total",
				Help: "Total number of characters broken down",
			},
		),

		unrepresentableChars: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mojilens_unrepresentable_characters_total",
				Help: "Total number of characters that failed the legacy round trip",
			},
		),

		misreadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_misreads_total",
				Help: "Total number of mojibake simulations by target encoding and outcome",
			},
			[]string{"encoding", "status"},
		),

		inputLimitRejections: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mojilens_input_limit_rejections_total",
				Help: "Total number of requests rejected for exceeding the character limit",
			},
		),

		// Tutor metrics
		tutorRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_tutor_requests_total",
				Help: "Total number of tutor requests",
			},
			[]string{"status"},
		),

		tutorRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mojilens_tutor_request_duration_seconds",
				Help:    "Tutor request duration in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),

		// Snippet metrics
		snippetOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_snippet_operations_total",
				Help: "Total number of snippet store operations",
			},
			[]string{"operation", "status"},
		),

		// Authentication metrics
		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		// Health check metrics
		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mojilens_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

func statusLabel(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAnalysis records one analyze or mojibake call over chars characters,
// of which unrepresentable failed the legacy round trip
func (m *Metrics) RecordAnalysis(operation string, chars, unrepresentable int) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(operation).Inc()
	m.charactersAnalyzed.Add(float64(chars))
	m.unrepresentableChars.Add(float64(unrepresentable))
}

// RecordMisread records a mojibake simulation outcome
func (m *Metrics) RecordMisread(encoding, status string) {
	if m == nil {
		return
	}
	m.misreadsTotal.WithLabelValues(encoding, status).Inc()
}

// RecordInputLimitRejection records a request refused for being too long
func (m *Metrics) RecordInputLimitRejection() {
	if m == nil {
		return
	}
	m.inputLimitRejections.Inc()
}

// RecordTutorRequest records a tutor round trip
func (m *Metrics) RecordTutorRequest(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.tutorRequestsTotal.WithLabelValues(statusLabel(success)).Inc()
	m.tutorRequestDuration.Observe(duration.Seconds())
}

// RecordSnippetOperation records a snippet store operation
func (m *Metrics) RecordSnippetOperation(operation string, success bool) {
	if m == nil {
		return
	}
	m.snippetOperationsTotal.WithLabelValues(operation, statusLabel(success)).Inc()
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	if m == nil {
		return
	}
	m.authRequestsTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	if m == nil {
		return
	}
	m.healthChecksTotal.WithLabelValues(statusLabel(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Record request in flight
		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// Create response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
