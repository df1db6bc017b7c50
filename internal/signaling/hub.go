package signaling

import (
	"log/slog"

	"github.com/Pvbhat123/signaling-Server/pkg/metrics"
)

// Hub bridges transport events into the room registry and fans the resulting
// notifications back out. Recipient sets are computed inside the registry's
// lock; the sends themselves happen here, outside it.
type Hub struct {
	log    *slog.Logger
	rooms  *RoomManager
	conns  *ConnectionRegistry
	router *SignalRouter
}

func NewHub(logger *slog.Logger) *Hub {
	rooms := NewRoomManager()
	conns := NewConnectionRegistry()
	return &Hub{
		log:    logger,
		rooms:  rooms,
		conns:  conns,
		router: NewSignalRouter(rooms, conns),
	}
}

// Connect records a new live connection and tells the peer its assigned id.
// No room state is touched.
func (h *Hub) Connect(connID string, s Sender) {
	h.conns.Add(connID, s)
	metrics.ActiveConnections.Inc()
	h.log.Info("peer.connected", "conn", connID)
	s.Send(Event{Type: EventConnected, Peer: connID})
}

// Disconnect reconciles an abrupt or orderly connection loss: the peer is
// removed from every room it belonged to and each room's remaining members
// hear a single userLeft. Rooms emptied by the removal are already gone and
// notify nobody.
func (h *Hub) Disconnect(connID string) {
	h.conns.Remove(connID)
	metrics.ActiveConnections.Dec()

	departures := h.rooms.RemoveFromAll(connID)
	metrics.ActiveRooms.Set(float64(h.rooms.Count()))
	for _, d := range departures {
		h.fanout(d.Remaining, Event{Type: EventUserLeft, Room: d.Room, Peer: connID})
	}
	h.log.Info("peer.disconnected", "conn", connID, "rooms", len(departures))
}

// Dispatch handles one inbound request from connID. Every failure is
// answered with a single error event to the offending peer and nothing else;
// no request can damage registry state.
func (h *Hub) Dispatch(connID string, req Request) {
	switch req.Type {
	case KindCreateRoom:
		h.handleCreateRoom(connID)
	case KindJoinRoom:
		h.handleJoinRoom(connID, req.Room)
	case KindSignal:
		h.handleSignal(connID, req)
	case KindLeaveRoom:
		h.handleLeaveRoom(connID, req.Room)
	default:
		h.sendTo(connID, Event{Type: EventError, Reason: "unknown message type"})
	}
}

func (h *Hub) handleCreateRoom(connID string) {
	roomID := h.rooms.Create()
	metrics.RoomsCreated.Inc()
	metrics.ActiveRooms.Set(float64(h.rooms.Count()))
	h.log.Info("room.created", "room", roomID, "conn", connID)
	h.sendTo(connID, Event{Type: EventRoomCreated, Room: roomID})
}

func (h *Hub) handleJoinRoom(connID, roomID string) {
	others, joined, err := h.rooms.Join(roomID, connID)
	if err != nil {
		h.log.Debug("room.join.rejected", "room", roomID, "conn", connID, "err", err)
		h.sendTo(connID, Event{Type: EventError, Reason: "Room does not exist"})
		return
	}
	if !joined {
		return
	}
	h.log.Info("room.joined", "room", roomID, "conn", connID)
	h.fanout(others, Event{Type: EventUserJoined, Room: roomID, Peer: connID})
}

func (h *Hub) handleSignal(connID string, req Request) {
	if err := h.router.Route(connID, req.Room, req.To, req.Signal); err != nil {
		// The two failure kinds are deliberately not distinguished to the
		// client.
		h.log.Debug("signal.rejected", "room", req.Room, "from", connID, "to", req.To, "err", err)
		h.sendTo(connID, Event{Type: EventError, Reason: "Target client or room does not exist"})
		return
	}
	metrics.SignalsRelayed.Inc()
}

func (h *Hub) handleLeaveRoom(connID, roomID string) {
	remaining, removed := h.rooms.Leave(roomID, connID)
	if !removed {
		return
	}
	metrics.ActiveRooms.Set(float64(h.rooms.Count()))
	h.log.Info("room.left", "room", roomID, "conn", connID)
	h.fanout(remaining, Event{Type: EventUserLeft, Room: roomID, Peer: connID})
}

// Stats returns the current live connection and active room counts.
func (h *Hub) Stats() (conns, rooms int) {
	return h.conns.Count(), h.rooms.Count()
}

func (h *Hub) sendTo(connID string, e Event) {
	if s, ok := h.conns.Get(connID); ok {
		s.Send(e)
	}
}

func (h *Hub) fanout(connIDs []string, e Event) {
	for _, id := range connIDs {
		h.sendTo(id, e)
	}
}
