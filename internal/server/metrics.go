package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics are the backend's Prometheus collectors, registered on their own
// registry so tests can create servers freely.
type Metrics struct {
	Registry    *prometheus.Registry
	Requests    *prometheus.CounterVec
	Latency     *prometheus.HistogramVec
	Projections *prometheus.CounterVec
	WeightedROI prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sip",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sip",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		Projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sip",
			Name:      "projections_total",
			Help:      "Future value projections by outcome.",
		}, []string{"result"}),
		WeightedROI: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sip",
			Name:      "plan_weighted_avg_roi_percent",
			Help:      "Weighted average ROI of the cached plan.",
		}),
	}
	m.Registry.MustRegister(
		m.Requests, m.Latency, m.Projections, m.WeightedROI,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
