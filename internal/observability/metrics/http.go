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

	checkEvaluationsTotal *prometheus.CounterVec
	checkDuration         *prometheus.HistogramVec
	checkDueReminders     *prometheus.HistogramVec
	remindersSurfaced     prometheus.Counter
	timelineBuildsTotal   *prometheus.CounterVec
	exportsTotal          *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jtd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jtd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jtd",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	checkEvaluationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jtd",
			Subsystem: "reminder_check",
			Name:      "evaluations_total",
			Help:      "Total due-check evaluation passes by status.",
		},
		[]string{"service", "status"},
	)
	checkDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jtd",
			Subsystem: "reminder_check",
			Name:      "evaluation_duration_seconds",
			Help:      "Due-check evaluation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	checkDueReminders := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jtd",
			Subsystem: "reminder_check",
			Name:      "due_reminders",
			Help:      "Distribution of due reminders found per evaluation pass.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service"},
	)
	remindersSurfaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jtd",
			Subsystem: "reminder_check",
			Name:      "surfaced_total",
			Help:      "Total reminders surfaced as notifications.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	timelineBuildsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jtd",
			Subsystem: "timeline",
			Name:      "builds_total",
			Help:      "Total timeline aggregations by status.",
		},
		[]string{"service", "status"},
	)
	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jtd",
			Subsystem: "export",
			Name:      "reports_total",
			Help:      "Total generated application reports by status.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		checkEvaluationsTotal,
		checkDuration,
		checkDueReminders,
		remindersSurfaced,
		timelineBuildsTotal,
		exportsTotal,
	)

	return &HTTPServerMetrics{
		registry:              registry,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		checkEvaluationsTotal: checkEvaluationsTotal,
		checkDuration:         checkDuration,
		checkDueReminders:     checkDueReminders,
		remindersSurfaced:     remindersSurfaced,
		timelineBuildsTotal:   timelineBuildsTotal,
		exportsTotal:          exportsTotal,
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

// normalizePath collapses record ids so metric cardinality stays bounded.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		switch {
		case i == 0, part == "":
			continue
		case isResourceName(part):
			continue
		default:
			parts[i] = "{id}"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func isResourceName(segment string) bool {
	switch segment {
	case "applications", "notes", "communications", "reminders", "documents",
		"checklist", "checklist-items", "templates", "patterns", "timeline",
		"stats", "appointments", "export", "due", "dismiss", "complete",
		"snooze", "toggle", "search", "seed", "duplicate", "default",
		"check-interval", "healthz", "metrics", "v1":
		return true
	default:
		return false
	}
}

// EngineMetrics adapts the server registry to the due-check engine's
// observation points.
type EngineMetrics struct {
	service string
	metrics *HTTPServerMetrics
}

func (m *HTTPServerMetrics) ForEngine(service string) *EngineMetrics {
	return &EngineMetrics{service: service, metrics: m}
}

func (e *EngineMetrics) ObserveEvaluation(duration time.Duration, due int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	e.metrics.checkEvaluationsTotal.WithLabelValues(e.service, status).Inc()
	e.metrics.checkDuration.WithLabelValues(e.service).Observe(duration.Seconds())
	if err == nil {
		e.metrics.checkDueReminders.WithLabelValues(e.service).Observe(float64(due))
	}
}

func (e *EngineMetrics) ReminderSurfaced() {
	e.metrics.remindersSurfaced.Inc()
}

func (m *HTTPServerMetrics) RecordTimelineBuild(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.timelineBuildsTotal.WithLabelValues(service, status).Inc()
}

func (m *HTTPServerMetrics) RecordReportExport(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.exportsTotal.WithLabelValues(service, status).Inc()
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
