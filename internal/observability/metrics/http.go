package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	stageDuration     *prometheus.HistogramVec
	degradedTotal     *prometheus.CounterVec
	responsesTotal    *prometheus.CounterVec
	citationsReturned *prometheus.HistogramVec
	cacheLookupsTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "neethi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "neethi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "neethi",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "neethi",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each retrieval pipeline stage in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	degradedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "neethi",
			Subsystem: "pipeline",
			Name:      "degraded_total",
			Help:      "Total responses carrying a degraded flag, by reason.",
		},
		[]string{"service", "reason"},
	)
	responsesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "neethi",
			Subsystem: "pipeline",
			Name:      "responses_total",
			Help:      "Total completed responses by verification status and query type.",
		},
		[]string{"service", "status", "query_type"},
	)
	citationsReturned := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "neethi",
			Subsystem: "pipeline",
			Name:      "citations_returned",
			Help:      "Distribution of citations per completed response.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service"},
	)
	cacheLookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "neethi",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total response cache lookups by result.",
		},
		[]string{"service", "result"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		stageDuration,
		degradedTotal,
		responsesTotal,
		citationsReturned,
		cacheLookupsTotal,
	)

	return &HTTPServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		stageDuration:     stageDuration,
		degradedTotal:     degradedTotal,
		responsesTotal:    responsesTotal,
		citationsReturned: citationsReturned,
		cacheLookupsTotal: cacheLookupsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/sections/"):
		return "/v1/sections/{act_code}/{section_number}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordStageDuration(service, stage string, duration time.Duration) {
	if stage == "" {
		stage = "unknown"
	}
	m.stageDuration.WithLabelValues(service, stage).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordDegraded(service, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.degradedTotal.WithLabelValues(service, reason).Inc()
}

func (m *HTTPServerMetrics) RecordResponse(service, status, queryType string, citationCount int) {
	if status == "" {
		status = "unknown"
	}
	if queryType == "" {
		queryType = "unknown"
	}
	m.responsesTotal.WithLabelValues(service, status, queryType).Inc()
	m.citationsReturned.WithLabelValues(service).Observe(float64(citationCount))
}

func (m *HTTPServerMetrics) RecordCacheLookup(service string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(service, result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
