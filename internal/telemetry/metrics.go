// Package telemetry holds the Prometheus collectors of the service.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is private to the service so tests can run without the default registerer.
	Registry = prometheus.NewRegistry()

	InsightRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_insight_refreshes_total",
			Help: "Insight refresh cycles by outcome (applied, stale, failed)",
		},
		[]string{"result"},
	)

	InsightsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_insights_rejected_total",
			Help: "Insight records dropped by normalization",
		},
	)

	Transfers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_transfers_total",
			Help: "Hub transfers by outcome",
		},
		[]string{"result"},
	)

	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_notifications_total",
			Help: "Notifications appended by type",
		},
		[]string{"type"},
	)

	ImageGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_image_generations_total",
			Help: "Product image enrichment attempts by outcome",
		},
		[]string{"result"},
	)

	CollaboratorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_collaborator_duration_seconds",
			Help:    "Latency of external analysis and image calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"collaborator"},
	)
)

func init() {
	Registry.MustRegister(
		InsightRefreshes,
		InsightsRejected,
		Transfers,
		Notifications,
		ImageGenerations,
		CollaboratorLatency,
		prometheus.NewGoCollector(),
	)
}

// Handler serves the collectors in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
