// Package metrics exposes prometheus instrumentation for webhook ingestion.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics exposes counters/histograms for webhook ingestion.
type WebhookMetrics struct {
	ingestTotal    *prometheus.CounterVec
	processLatency *prometheus.HistogramVec
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		ingestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webhook",
			Subsystem: "ingest",
			Name:      "requests_total",
			Help:      "Total inbound lead webhooks",
		}, []string{"provider", "format", "status"}),
		processLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "webhook",
			Subsystem: "ingest",
			Name:      "latency_seconds",
			Help:      "Latency of webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.ingestTotal, m.processLatency)
	return m
}

func (m *WebhookMetrics) ObserveIngest(provider, format, status string) {
	if m == nil {
		return
	}
	m.ingestTotal.WithLabelValues(provider, format, status).Inc()
}

func (m *WebhookMetrics) ObserveLatency(format string, seconds float64) {
	if m == nil {
		return
	}
	m.processLatency.WithLabelValues(format).Observe(seconds)
}
