package signaling

import "encoding/json"

// SignalRouter relays an opaque negotiation payload from one peer to another
// through a room. Only the target's membership is validated; the sender does
// not have to be in the room itself.
type SignalRouter struct {
	rooms *RoomManager
	conns *ConnectionRegistry
}

func NewSignalRouter(rooms *RoomManager, conns *ConnectionRegistry) *SignalRouter {
	return &SignalRouter{rooms: rooms, conns: conns}
}

// Route unicasts {from, signal} to the target connection. It returns
// ErrRoomNotFound or ErrTargetNotInRoom without delivering anything; on
// success exactly one peer hears about it and no state changes.
func (r *SignalRouter) Route(fromID, roomID, toID string, payload json.RawMessage) error {
	if err := r.rooms.Check(roomID, toID); err != nil {
		return err
	}
	// A member that raced a disconnect may already be gone; the send is then
	// a no-op, same as a dead socket.
	if target, ok := r.conns.Get(toID); ok {
		target.Send(Event{Type: EventSignal, From: fromID, Signal: payload})
	}
	return nil
}
