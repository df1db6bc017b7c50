package httpx

import (
	"log/slog"
	"net/http"

	"github.com/Pvbhat123/signaling-Server/internal/app"
	"github.com/Pvbhat123/signaling-Server/internal/signaling"
	"github.com/Pvbhat123/signaling-Server/internal/ws"
	"github.com/Pvbhat123/signaling-Server/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, hub *signaling.Hub) http.Handler {
	mw := NewMiddleware(cfg)
	wss := ws.NewServer(logger, hub)
	statsAPI := &StatsAPI{Hub: hub}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	mux.Handle("/ws", http.HandlerFunc(wss.ServeWS))

	// Read-only observability
	mux.Handle("GET /api/stats", http.HandlerFunc(statsAPI.Get))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
