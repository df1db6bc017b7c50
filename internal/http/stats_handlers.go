package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/Pvbhat123/signaling-Server/internal/signaling"
)

type StatsAPI struct{ Hub *signaling.Hub }

type statsResponse struct {
	Connections int `json:"connections"`
	Rooms       int `json:"rooms"`
}

// Get reports current live connection and active room counts.
func (a *StatsAPI) Get(w http.ResponseWriter, r *http.Request) {
	conns, rooms := a.Hub.Stats()
	writeJSON(w, statsResponse{Connections: conns, Rooms: rooms})
}

// send JSON with proper headers
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
