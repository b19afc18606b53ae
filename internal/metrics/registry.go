package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric exported by bigcalc.
const Namespace = "bigcalc"

// Registry owns a Prometheus registry and the evaluation metrics recorded
// into it. Each Registry is independent, so tests can build as many as
// they need without duplicate registration.
type Registry struct {
	reg *prometheus.Registry

	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	resultBits  *prometheus.HistogramVec
}

// NewRegistry creates a registry with the Go runtime and process
// collectors, the heap gauges of a MemoryCollector and the evaluation
// metrics.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "evaluations_total",
			Help:      "Number of expression evaluations by engine, operation and status.",
		}, []string{"engine", "op", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time of expression evaluations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"engine", "op"}),
		resultBits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "result_bits",
			Help:      "Bit length of successful evaluation results.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}, []string{"op"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		NewMemoryCollector(),
		r.evaluations,
		r.duration,
		r.resultBits,
	)
	return r
}

// MustRegister registers additional collectors, such as the HTTP server's.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.reg.MustRegister(cs...)
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveEvaluation records the outcome of one engine evaluation. bits is
// ignored when err is non-nil.
func (r *Registry) ObserveEvaluation(engine, op string, d time.Duration, bits int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.evaluations.WithLabelValues(engine, op, status).Inc()
	r.duration.WithLabelValues(engine, op).Observe(d.Seconds())
	if err == nil {
		r.resultBits.WithLabelValues(op).Observe(float64(bits))
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
