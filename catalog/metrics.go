package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts catalog operations. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	projects   prometheus.Gauge
}

// NewMetrics registers the catalog collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_catalog_operations_total",
				Help: "Catalog operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		projects: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portfolio_catalog_projects",
				Help: "Number of projects currently in the catalog",
			},
		),
	}
	reg.MustRegister(m.operations, m.projects)
	return m
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) observeNoop(operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, "noop").Inc()
}

func (m *Metrics) setProjects(n int) {
	if m == nil {
		return
	}
	m.projects.Set(float64(n))
}
