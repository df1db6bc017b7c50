package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pvbhat123/signaling-Server/internal/signaling"
)

// Server owns the websocket endpoint and feeds transport events into the hub.
type Server struct {
	log *slog.Logger
	hub *signaling.Hub
}

func NewServer(logger *slog.Logger, hub *signaling.Hub) *Server {
	return &Server{log: logger, hub: hub}
}

// ServeWS handles a /ws connection for its whole lifetime: accept, assign an
// id, pump inbound requests into the hub, and reconcile on exit whether the
// peer left cleanly or the socket just died.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sock, err := Accept(w, r)
	if err != nil {
		s.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(uuid.NewString(), sock)

	// Outbound writer
	go c.WriteLoop(ctx)

	s.hub.Connect(c.ID(), c)

	for {
		data, ok := c.Read(ctx)
		if !ok {
			break
		}

		var req signaling.Request
		if err := json.Unmarshal(data, &req); err != nil {
			// A malformed frame costs only its own request.
			s.log.Debug("ws.frame.malformed", "conn", c.ID(), "err", err)
			c.Send(signaling.Event{Type: signaling.EventError, Reason: "malformed message"})
			continue
		}
		s.hub.Dispatch(c.ID(), req)
	}

	s.hub.Disconnect(c.ID())
	_ = c.Close()
}
