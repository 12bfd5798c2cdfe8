package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eddieyong/financetracker/internal/event_bus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exposed on /metrics. Each instance owns its registry so tests
// can build as many as they like.
type Metrics struct {
	registry        *prometheus.Registry
	events          *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moneytracker",
			Name:      "store_events_total",
			Help:      "State transitions published by the finance store.",
		}, []string{"type"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moneytracker",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(m.events, m.requestDuration)
	return m
}

// Subscribe counts every event type the store publishes.
func (m *Metrics) Subscribe(bus *event_bus.EventBus) {
	for _, eventType := range event_bus.AllTypes {
		bus.Subscribe(eventType, func(e event_bus.Event) error {
			m.events.WithLabelValues(string(e.Type)).Inc()
			return nil
		})
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
