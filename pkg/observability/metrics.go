package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "herald"

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	interactions      *prometheus.CounterVec
	signatureFailures prometheus.Counter
	publishes         *prometheus.CounterVec
	publishDuration   prometheus.Histogram
	completions       *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "interactions_total",
				Help:      "Verified interactions by type and outcome.",
			},
			[]string{"type", "outcome"},
		),
		signatureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signature_failures_total",
			Help:      "Requests rejected because the signature did not verify.",
		}),
		publishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publishes_total",
				Help:      "Task publish attempts by command and result.",
			},
			[]string{"command", "result"},
		),
		publishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Duration of task publish attempts.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 3},
		}),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completions_total",
				Help:      "Completion deliveries by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "code"},
		),
	}

	m.registry.MustRegister(
		m.interactions,
		m.signatureFailures,
		m.publishes,
		m.publishDuration,
		m.completions,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSignatureFailure counts a rejected signature.
func (m *Metrics) ObserveSignatureFailure() {
	m.signatureFailures.Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInteraction: func(_ context.Context, e *domain.InteractionEvent) {
			m.interactions.WithLabelValues(e.InteractionType.String(), interactionOutcome(e)).Inc()
		},
		OnPublish: func(_ context.Context, e *domain.PublishEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.publishes.WithLabelValues(e.CommandName, result).Inc()
			m.publishDuration.Observe(e.Duration.Seconds())
		},
		OnCompletion: func(_ context.Context, e *domain.CompletionEvent) {
			m.completions.WithLabelValues(e.CommandName, completionOutcome(e)).Inc()
		},
	}
}

func interactionOutcome(e *domain.InteractionEvent) string {
	switch {
	case e.ResponseStatus == http.StatusMethodNotAllowed:
		return "rejected"
	case e.InteractionType == domain.InteractionHandshake:
		return "acknowledged"
	case e.Deferred:
		return "deferred"
	default:
		return "immediate"
	}
}

func completionOutcome(e *domain.CompletionEvent) string {
	switch {
	case e.Duplicate:
		return "duplicate"
	case e.Delivered:
		return "delivered"
	case e.AckStatus >= http.StatusInternalServerError:
		return "redeliver"
	default:
		return "failed"
	}
}
