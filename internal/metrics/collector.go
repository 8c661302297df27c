// Package metrics exposes prometheus collectors for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal  *prometheus.CounterVec
	hierarchiesBuilt   *prometheus.CounterVec
	leadsAssigned      *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
}

// NewCollector registers all collectors on a private registry so several
// collectors can coexist (tests, embedded servers).
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		hierarchiesBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hierarchies_built_total",
				Help:      "Hierarchy builds by result (ok, truncated, failed)",
			},
			[]string{"result"},
		),
		leadsAssigned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leads_assigned_total",
				Help:      "Lead placements by outcome (assigned, unassigned)",
			},
			[]string{"outcome"},
		),
		evaluationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Time spent processing one evaluation request",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
	}
}

func (c *Collector) RecordRequest(route string, status int) {
	c.httpRequestsTotal.WithLabelValues(route, statusLabel(status)).Inc()
}

func (c *Collector) RecordBuild(result string) {
	c.hierarchiesBuilt.WithLabelValues(result).Inc()
}

func (c *Collector) RecordAssignment(assigned bool) {
	outcome := "unassigned"
	if assigned {
		outcome = "assigned"
	}
	c.leadsAssigned.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveEvaluation(d time.Duration) {
	c.evaluationDuration.Observe(d.Seconds())
}

// Handler serves the registry in the prometheus text format. Build it once
// and reuse it; each call wraps a fresh adaptor.
func (c *Collector) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}),
	)
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
