// Package metrics exposes the dashboard's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	DatasetRows      prometheus.Gauge
	DatasetIncidents prometheus.Gauge
	LoadDuration     prometheus.Gauge
	LiveSessions     prometheus.Gauge
	Requests         *prometheus.CounterVec
	Interactions     *prometheus.CounterVec
	EmptyResults     prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DatasetRows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "citracker_dataset_rows",
			Help: "Rows in the canonical fact table",
		}),
		DatasetIncidents: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "citracker_dataset_incidents",
			Help: "Distinct incidents in the canonical fact table",
		}),
		LoadDuration: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "citracker_dataset_load_seconds",
			Help: "Wall time of the last dataset load and canonicalization",
		}),
		LiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "citracker_live_sessions",
			Help: "Sessions currently held in the state store",
		}),
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citracker_requests_total",
			Help: "Dashboard API requests by route and status class",
		}, []string{"route", "status"}),
		Interactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citracker_interactions_total",
			Help: "Chart click and reset events by section",
		}, []string{"section", "kind"}),
		EmptyResults: promauto.NewCounter(prometheus.CounterOpts{
			Name: "citracker_empty_results_total",
			Help: "Chart responses with no matching incidents",
		}),
	}
}
