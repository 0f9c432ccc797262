package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// FormMetrics counts rendered PayPal form slots by kind and outcome.
type FormMetrics struct {
	rendered *prometheus.CounterVec
}

// NewFormMetrics registers the form metrics on the provided registerer.
func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	if reg == nil {
		return &FormMetrics{}
	}
	rendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "payment_forms_total",
		Help:      "PayPal form slots rendered, by form kind and outcome.",
	}, []string{"kind", "outcome"})
	reg.MustRegister(rendered)
	return &FormMetrics{rendered: rendered}
}

// RecordForm increments the counter for one rendered slot.
func (m *FormMetrics) RecordForm(kind, outcome string) {
	if m == nil || m.rendered == nil {
		return
	}
	m.rendered.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
