package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Verification outcomes: match, mismatch, unknown_product
	Verifications *prometheus.CounterVec
}

// NewMetrics creates and registers the verification metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prodauth_verifications_total",
			Help: "Product verification checks by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementVerification records a verification outcome. Nil-safe.
func (m *Metrics) IncrementVerification(outcome string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}
