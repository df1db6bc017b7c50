package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections is the number of currently open peer connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_active_connections",
		Help: "Number of currently connected peers.",
	})

	// ActiveRooms is the number of rooms with at least one member.
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_active_rooms",
		Help: "Number of active rooms.",
	})

	// RoomsCreated counts rooms created since process start.
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signaling_rooms_created_total",
		Help: "Total number of rooms created.",
	})

	// SignalsRelayed counts successfully relayed signal payloads.
	SignalsRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signaling_signals_relayed_total",
		Help: "Total number of signal payloads relayed between peers.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
