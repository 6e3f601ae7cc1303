package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the incident map service.
type Metrics struct {
	Mutations     *prometheus.CounterVec // labels: operation={add,update,remove}, outcome={ok,invalid,not_found,flush_failed}
	Searches      *prometheus.CounterVec // labels: outcome={found,no_match,geocode_error,rejected}
	FlushFailures prometheus.Counter
	IncidentCount prometheus.Gauge

	GeocodeDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors with the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_map",
			Name:      "store_mutations_total",
			Help:      "Incident store mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_map",
			Name:      "searches_total",
			Help:      "Location searches by outcome.",
		}, []string{"outcome"}),
		FlushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_map",
			Name:      "slot_flush_failures_total",
			Help:      "Durable slot writes that failed after an in-memory mutation.",
		}),
		IncidentCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_map",
			Name:      "incident_count",
			Help:      "Current number of incident records in the collection.",
		}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_map",
			Name:      "geocode_duration_seconds",
			Help:      "Geocoding request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.Mutations,
		m.Searches,
		m.FlushFailures,
		m.IncidentCount,
		m.GeocodeDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered collectors so parallel tests do
// not trip the default registry's duplicate check.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Mutations:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_map", Name: "store_mutations_total"}, []string{"operation", "outcome"}),
		Searches:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_map", Name: "searches_total"}, []string{"outcome"}),
		FlushFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_map", Name: "slot_flush_failures_total"}),
		IncidentCount:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_map", Name: "incident_count"}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_map", Name: "geocode_duration_seconds"}),
	}
}
