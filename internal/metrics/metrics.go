// metrics — метрики Prometheus сервиса лидов: входящие HTTP-запросы,
// исходящие запросы к партнёру и захваченные лиды.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crefaz"

// Metrics — набор коллекторов. Реализует interceptors.Observer.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	partnerRequests *prometheus.CounterVec
	partnerDuration *prometheus.HistogramVec
	leadsCaptured   *prometheus.CounterVec
}

// New регистрирует коллекторы в reg. nil -> prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Incoming HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Incoming HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		partnerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "partner",
			Name:      "requests_total",
			Help:      "Outgoing partner API requests by method and status code.",
		}, []string{"method", "code"}),
		partnerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "partner",
			Name:      "request_duration_seconds",
			Help:      "Outgoing partner API request latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
		leadsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "captured_total",
			Help:      "Landing page submissions by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.partnerRequests, m.partnerDuration, m.leadsCaptured)

	return m
}

// ObserveHTTPRequest фиксирует обработанный входящий запрос.
func (m *Metrics) ObserveHTTPRequest(route, method string, code int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObservePartnerRequest(method, code string, dur time.Duration) {
	m.partnerRequests.WithLabelValues(method, code).Inc()
	m.partnerDuration.WithLabelValues(method).Observe(dur.Seconds())
}

// LeadCaptured считает отправку формы: created, duplicate, invalid или error.
func (m *Metrics) LeadCaptured(outcome string) {
	m.leadsCaptured.WithLabelValues(outcome).Inc()
}
