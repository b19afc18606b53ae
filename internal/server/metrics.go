// Package server provides the HTTP API of bigcalc: single-engine
// evaluation, cross-engine comparison, health checks and Prometheus
// metrics.
package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/bigcalc/internal/metrics"
)

// Metrics tracks request-level counters. Evaluation metrics are recorded
// by the service through the same registry.
type Metrics struct {
	registry       *metrics.Registry
	activeRequests prometheus.Gauge
	totalRequests  *prometheus.CounterVec
}

// NewMetrics registers the server metrics in reg.
func NewMetrics(reg *metrics.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Name:      "active_requests",
			Help:      "Current number of requests being served.",
		}),
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "requests_total",
			Help:      "Requests served, by path and status code.",
		}, []string{"path", "code"}),
	}
	reg.MustRegister(m.activeRequests, m.totalRequests)
	return m
}

// handleMetrics serves the registry in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.registry.Handler().ServeHTTP(w, r)
}

// statusRecorder captures the status code and body size written by a
// handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  uint64
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += uint64(n)
	return n, err
}

// metricsMiddleware tracks in-flight and completed requests.
func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.activeRequests.Inc()
		defer s.metrics.activeRequests.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(sr, r)
		s.metrics.totalRequests.WithLabelValues(path, strconv.Itoa(sr.status)).Inc()
	}
}
