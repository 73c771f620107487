package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	persistTotal    *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	persistInFlight prometheus.Gauge
	queueLag        *prometheus.HistogramVec
	outcomesTotal   *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	persistTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "neethi",
			Subsystem: "worker",
			Name:      "audit_persist_total",
			Help:      "Total persisted audit events by status.",
		},
		[]string{"service", "status"},
	)
	persistDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "neethi",
			Subsystem: "worker",
			Name:      "audit_persist_duration_seconds",
			Help:      "Audit event persistence duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	persistInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "neethi",
			Subsystem: "worker",
			Name:      "audit_persist_in_flight",
			Help:      "Number of in-flight audit event writes.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "neethi",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between verification check and persistence start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	outcomesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "neethi",
			Subsystem: "verification",
			Name:      "outcomes_total",
			Help:      "Total per-candidate verification outcomes seen on the audit stream.",
		},
		[]string{"service", "existence", "relevance", "retained"},
	)

	registry.MustRegister(persistTotal, persistDuration, persistInFlight, queueLag, outcomesTotal)

	return &WorkerMetrics{
		registry:        registry,
		persistTotal:    persistTotal,
		persistDuration: persistDuration,
		persistInFlight: persistInFlight,
		queueLag:        queueLag,
		outcomesTotal:   outcomesTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartEvent() {
	m.persistInFlight.Inc()
}

func (m *WorkerMetrics) FinishEvent(service string, duration time.Duration, err error) {
	m.persistInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.persistTotal.WithLabelValues(service, status).Inc()
	m.persistDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) ObserveVerificationOutcome(service, existence, relevance string, retained bool) {
	if existence == "" {
		existence = "unknown"
	}
	if relevance == "" {
		relevance = "unchecked"
	}
	m.outcomesTotal.WithLabelValues(service, existence, relevance, strconv.FormatBool(retained)).Inc()
}
