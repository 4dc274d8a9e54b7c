// Package metrics exposes the Prometheus collectors of the shortener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shortener"

// Store labels.
const (
	StoreDatabase = "database"
	StoreFile     = "file"
	StoreBuffer   = "buffer"
)

// Metrics groups the collectors registered for one process.
type Metrics struct {
	LinksCreated      prometheus.Counter
	Redirects         *prometheus.CounterVec
	PersistenceErrors *prometheus.CounterVec
	ClicksDropped     prometheus.Counter
	DatabaseConnected prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LinksCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Number of short links created.",
		}),
		Redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Number of resolve attempts by result.",
		}, []string{"result"}),
		PersistenceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "Number of failed writes by durable store.",
		}, []string{"store"}),
		ClicksDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_dropped_total",
			Help:      "Click increments dropped because the queue was full.",
		}),
		DatabaseConnected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "database_connected",
			Help:      "1 when the relational store is in use, 0 in file mode.",
		}),
	}
}

// NewForTest returns collectors bound to a private registry.
func NewForTest() *Metrics {
	return New(prometheus.NewRegistry())
}
