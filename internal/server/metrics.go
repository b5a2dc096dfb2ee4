package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry           *prometheus.Registry
	generationRequests *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	exports            *prometheus.CounterVec
	rateLimited        prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		generationRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_wizard",
			Name:      "generation_requests_total",
			Help:      "Text generation requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		generationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resume_wizard",
			Name:      "generation_duration_seconds",
			Help:      "Latency of text generation calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}, []string{"operation"}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_wizard",
			Name:      "exports_total",
			Help:      "Export attempts by format and outcome.",
		}, []string{"format", "outcome"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "resume_wizard",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observeGeneration records one generation call
func (m *metrics) observeGeneration(operation string, start time.Time, err error) {
	m.generationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.generationRequests.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
