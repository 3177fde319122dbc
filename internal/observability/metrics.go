package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes Prometheus counters and histograms for the service.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
	VotesCastTotal   prometheus.Counter
	VerifyFailsTotal *prometheus.CounterVec
}

// NewMetrics registers all service metrics on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voting_http_requests_total",
			Help: "Total HTTP requests by path, method and status",
		}, []string{"path", "method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voting_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"path", "method"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voting_errors_total",
			Help: "Total handled errors by path, method and code",
		}, []string{"path", "method", "code"}),
		VotesCastTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voting_votes_cast_total",
			Help: "Total successfully cast votes",
		}),
		VerifyFailsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voting_verification_failures_total",
			Help: "Total failed identity verifications by error code",
		}, []string{"code"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordVoteCast counts a successful cast.
func (m *Metrics) RecordVoteCast() {
	if m == nil {
		return
	}
	m.VotesCastTotal.Inc()
}

// RecordVerifyFailure counts a failed verification by code.
func (m *Metrics) RecordVerifyFailure(code string) {
	if m == nil {
		return
	}
	m.VerifyFailsTotal.WithLabelValues(code).Inc()
}
