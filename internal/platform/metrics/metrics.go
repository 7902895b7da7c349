package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry-level Prometheus metrics. Per-module metrics
// (verification outcomes, store latencies) live next to their modules.
type Metrics struct {
	ManufacturersRegistered prometheus.Counter
	ProductsRegistered      prometheus.Counter
	CustodyEvents           prometheus.Counter
	OwnershipTransfers      prometheus.Counter
	MutationFailures        *prometheus.CounterVec
}

// New creates and registers all registry mutation metrics.
func New() *Metrics {
	return &Metrics{
		ManufacturersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prodauth_manufacturers_registered_total",
			Help: "Total manufacturers added to the registry",
		}),
		ProductsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prodauth_products_registered_total",
			Help: "Total product records created",
		}),
		CustodyEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prodauth_custody_events_total",
			Help: "Total distributor custody events appended",
		}),
		OwnershipTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prodauth_ownership_transfers_total",
			Help: "Total ownership transfer events appended",
		}),
		MutationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prodauth_mutation_failures_total",
			Help: "Rejected mutations by operation and error code",
		}, []string{"operation", "code"}),
	}
}

// The increment helpers are nil-safe so services can run without metrics wired.

func (m *Metrics) IncrementManufacturersRegistered() {
	if m != nil {
		m.ManufacturersRegistered.Inc()
	}
}

func (m *Metrics) IncrementProductsRegistered() {
	if m != nil {
		m.ProductsRegistered.Inc()
	}
}

func (m *Metrics) IncrementCustodyEvents() {
	if m != nil {
		m.CustodyEvents.Inc()
	}
}

func (m *Metrics) IncrementOwnershipTransfers() {
	if m != nil {
		m.OwnershipTransfers.Inc()
	}
}

// IncrementFailure records a rejected mutation by operation and error code.
func (m *Metrics) IncrementFailure(operation, code string) {
	if m != nil {
		m.MutationFailures.WithLabelValues(operation, code).Inc()
	}
}
