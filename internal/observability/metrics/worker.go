package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type NotifierMetrics struct {
	registry *prometheus.Registry

	deliverTotal    *prometheus.CounterVec
	deliverDuration *prometheus.HistogramVec
	deliverInFlight prometheus.Gauge
	surfaceLag      *prometheus.HistogramVec
}

func NewNotifierMetrics(service string) *NotifierMetrics {
	registry := prometheus.NewRegistry()

	deliverTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jtd",
			Subsystem: "notifier",
			Name:      "deliveries_total",
			Help:      "Total reminder deliveries by status.",
		},
		[]string{"service", "status"},
	)
	deliverDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jtd",
			Subsystem: "notifier",
			Name:      "delivery_duration_seconds",
			Help:      "Reminder delivery duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	deliverInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jtd",
			Subsystem: "notifier",
			Name:      "deliveries_in_flight",
			Help:      "Number of in-flight reminder deliveries.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	surfaceLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jtd",
			Subsystem: "notifier",
			Name:      "surface_lag_seconds",
			Help:      "Delay between a reminder being surfaced and delivery start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(deliverTotal, deliverDuration, deliverInFlight, surfaceLag)

	return &NotifierMetrics{
		registry:        registry,
		deliverTotal:    deliverTotal,
		deliverDuration: deliverDuration,
		deliverInFlight: deliverInFlight,
		surfaceLag:      surfaceLag,
	}
}

func (m *NotifierMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *NotifierMetrics) StartDelivery() {
	m.deliverInFlight.Inc()
}

func (m *NotifierMetrics) FinishDelivery(service string, duration time.Duration, err error) {
	m.deliverInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.deliverTotal.WithLabelValues(service, status).Inc()
	m.deliverDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *NotifierMetrics) ObserveSurfaceLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.surfaceLag.WithLabelValues(service).Observe(lag.Seconds())
}
